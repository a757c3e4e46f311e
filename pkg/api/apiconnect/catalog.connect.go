package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/shoplist/pkg/api"
)

// CatalogServiceName is the fully-qualified name of the CatalogService service.
const CatalogServiceName = "shoplist.v1.CatalogService"

// Procedures of CatalogService.
const (
	CatalogServiceCreateMerchantProcedure      = "/shoplist.v1.CatalogService/CreateMerchant"
	CatalogServiceRenameMerchantProcedure      = "/shoplist.v1.CatalogService/RenameMerchant"
	CatalogServiceListMerchantsProcedure       = "/shoplist.v1.CatalogService/ListMerchants"
	CatalogServiceDeleteMerchantProcedure      = "/shoplist.v1.CatalogService/DeleteMerchant"
	CatalogServiceCreateCategoryProcedure      = "/shoplist.v1.CatalogService/CreateCategory"
	CatalogServiceSetCategoryActiveProcedure   = "/shoplist.v1.CatalogService/SetCategoryActive"
	CatalogServiceListCategoriesProcedure      = "/shoplist.v1.CatalogService/ListCategories"
	CatalogServiceCreateReferenceItemProcedure = "/shoplist.v1.CatalogService/CreateReferenceItem"
	CatalogServiceListReferenceItemsProcedure  = "/shoplist.v1.CatalogService/ListReferenceItems"
)

// CatalogServiceHandler is implemented by the server.
type CatalogServiceHandler interface {
	CreateMerchant(context.Context, *connect.Request[api.CreateMerchantRequest]) (*connect.Response[api.MerchantResponse], error)
	RenameMerchant(context.Context, *connect.Request[api.RenameMerchantRequest]) (*connect.Response[api.MerchantResponse], error)
	ListMerchants(context.Context, *connect.Request[api.ListMerchantsRequest]) (*connect.Response[api.ListMerchantsResponse], error)
	DeleteMerchant(context.Context, *connect.Request[api.DeleteMerchantRequest]) (*connect.Response[api.DeleteMerchantResponse], error)
	CreateCategory(context.Context, *connect.Request[api.CreateCategoryRequest]) (*connect.Response[api.CategoryResponse], error)
	SetCategoryActive(context.Context, *connect.Request[api.SetCategoryActiveRequest]) (*connect.Response[api.CategoryResponse], error)
	ListCategories(context.Context, *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error)
	CreateReferenceItem(context.Context, *connect.Request[api.CreateReferenceItemRequest]) (*connect.Response[api.CreateReferenceItemResponse], error)
	ListReferenceItems(context.Context, *connect.Request[api.ListReferenceItemsRequest]) (*connect.Response[api.ListReferenceItemsResponse], error)
}

// NewCatalogServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewCatalogServiceHandler(svc CatalogServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + CatalogServiceName + "/", routes{
		CatalogServiceCreateMerchantProcedure:      connect.NewUnaryHandler(CatalogServiceCreateMerchantProcedure, svc.CreateMerchant, opts...),
		CatalogServiceRenameMerchantProcedure:      connect.NewUnaryHandler(CatalogServiceRenameMerchantProcedure, svc.RenameMerchant, opts...),
		CatalogServiceListMerchantsProcedure:       connect.NewUnaryHandler(CatalogServiceListMerchantsProcedure, svc.ListMerchants, opts...),
		CatalogServiceDeleteMerchantProcedure:      connect.NewUnaryHandler(CatalogServiceDeleteMerchantProcedure, svc.DeleteMerchant, opts...),
		CatalogServiceCreateCategoryProcedure:      connect.NewUnaryHandler(CatalogServiceCreateCategoryProcedure, svc.CreateCategory, opts...),
		CatalogServiceSetCategoryActiveProcedure:   connect.NewUnaryHandler(CatalogServiceSetCategoryActiveProcedure, svc.SetCategoryActive, opts...),
		CatalogServiceListCategoriesProcedure:      connect.NewUnaryHandler(CatalogServiceListCategoriesProcedure, svc.ListCategories, opts...),
		CatalogServiceCreateReferenceItemProcedure: connect.NewUnaryHandler(CatalogServiceCreateReferenceItemProcedure, svc.CreateReferenceItem, opts...),
		CatalogServiceListReferenceItemsProcedure:  connect.NewUnaryHandler(CatalogServiceListReferenceItemsProcedure, svc.ListReferenceItems, opts...),
	}
}

// CatalogServiceClient is a client for the CatalogService service.
type CatalogServiceClient struct {
	createMerchant      *connect.Client[api.CreateMerchantRequest, api.MerchantResponse]
	renameMerchant      *connect.Client[api.RenameMerchantRequest, api.MerchantResponse]
	listMerchants       *connect.Client[api.ListMerchantsRequest, api.ListMerchantsResponse]
	deleteMerchant      *connect.Client[api.DeleteMerchantRequest, api.DeleteMerchantResponse]
	createCategory      *connect.Client[api.CreateCategoryRequest, api.CategoryResponse]
	setCategoryActive   *connect.Client[api.SetCategoryActiveRequest, api.CategoryResponse]
	listCategories      *connect.Client[api.ListCategoriesRequest, api.ListCategoriesResponse]
	createReferenceItem *connect.Client[api.CreateReferenceItemRequest, api.CreateReferenceItemResponse]
	listReferenceItems  *connect.Client[api.ListReferenceItemsRequest, api.ListReferenceItemsResponse]
}

// NewCatalogServiceClient constructs a client for the CatalogService service.
func NewCatalogServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *CatalogServiceClient {
	opts = clientOptions(opts)
	return &CatalogServiceClient{
		createMerchant:      connect.NewClient[api.CreateMerchantRequest, api.MerchantResponse](httpClient, baseURL+CatalogServiceCreateMerchantProcedure, opts...),
		renameMerchant:      connect.NewClient[api.RenameMerchantRequest, api.MerchantResponse](httpClient, baseURL+CatalogServiceRenameMerchantProcedure, opts...),
		listMerchants:       connect.NewClient[api.ListMerchantsRequest, api.ListMerchantsResponse](httpClient, baseURL+CatalogServiceListMerchantsProcedure, opts...),
		deleteMerchant:      connect.NewClient[api.DeleteMerchantRequest, api.DeleteMerchantResponse](httpClient, baseURL+CatalogServiceDeleteMerchantProcedure, opts...),
		createCategory:      connect.NewClient[api.CreateCategoryRequest, api.CategoryResponse](httpClient, baseURL+CatalogServiceCreateCategoryProcedure, opts...),
		setCategoryActive:   connect.NewClient[api.SetCategoryActiveRequest, api.CategoryResponse](httpClient, baseURL+CatalogServiceSetCategoryActiveProcedure, opts...),
		listCategories:      connect.NewClient[api.ListCategoriesRequest, api.ListCategoriesResponse](httpClient, baseURL+CatalogServiceListCategoriesProcedure, opts...),
		createReferenceItem: connect.NewClient[api.CreateReferenceItemRequest, api.CreateReferenceItemResponse](httpClient, baseURL+CatalogServiceCreateReferenceItemProcedure, opts...),
		listReferenceItems:  connect.NewClient[api.ListReferenceItemsRequest, api.ListReferenceItemsResponse](httpClient, baseURL+CatalogServiceListReferenceItemsProcedure, opts...),
	}
}

func (c *CatalogServiceClient) CreateMerchant(ctx context.Context, req *connect.Request[api.CreateMerchantRequest]) (*connect.Response[api.MerchantResponse], error) {
	return c.createMerchant.CallUnary(ctx, req)
}

func (c *CatalogServiceClient) RenameMerchant(ctx context.Context, req *connect.Request[api.RenameMerchantRequest]) (*connect.Response[api.MerchantResponse], error) {
	return c.renameMerchant.CallUnary(ctx, req)
}

func (c *CatalogServiceClient) ListMerchants(ctx context.Context, req *connect.Request[api.ListMerchantsRequest]) (*connect.Response[api.ListMerchantsResponse], error) {
	return c.listMerchants.CallUnary(ctx, req)
}

func (c *CatalogServiceClient) DeleteMerchant(ctx context.Context, req *connect.Request[api.DeleteMerchantRequest]) (*connect.Response[api.DeleteMerchantResponse], error) {
	return c.deleteMerchant.CallUnary(ctx, req)
}

func (c *CatalogServiceClient) CreateCategory(ctx context.Context, req *connect.Request[api.CreateCategoryRequest]) (*connect.Response[api.CategoryResponse], error) {
	return c.createCategory.CallUnary(ctx, req)
}

func (c *CatalogServiceClient) SetCategoryActive(ctx context.Context, req *connect.Request[api.SetCategoryActiveRequest]) (*connect.Response[api.CategoryResponse], error) {
	return c.setCategoryActive.CallUnary(ctx, req)
}

func (c *CatalogServiceClient) ListCategories(ctx context.Context, req *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	return c.listCategories.CallUnary(ctx, req)
}

func (c *CatalogServiceClient) CreateReferenceItem(ctx context.Context, req *connect.Request[api.CreateReferenceItemRequest]) (*connect.Response[api.CreateReferenceItemResponse], error) {
	return c.createReferenceItem.CallUnary(ctx, req)
}

func (c *CatalogServiceClient) ListReferenceItems(ctx context.Context, req *connect.Request[api.ListReferenceItemsRequest]) (*connect.Response[api.ListReferenceItemsResponse], error) {
	return c.listReferenceItems.CallUnary(ctx, req)
}
