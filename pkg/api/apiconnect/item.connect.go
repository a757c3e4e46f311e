package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/shoplist/pkg/api"
)

// ItemServiceName is the fully-qualified name of the ItemService service.
const ItemServiceName = "shoplist.v1.ItemService"

// Procedures of ItemService.
const (
	ItemServiceRequestItemProcedure   = "/shoplist.v1.ItemService/RequestItem"
	ItemServiceGetItemProcedure       = "/shoplist.v1.ItemService/GetItem"
	ItemServiceListItemsProcedure     = "/shoplist.v1.ItemService/ListItems"
	ItemServiceMarkPurchasedProcedure = "/shoplist.v1.ItemService/MarkPurchased"
	ItemServiceMarkCancelledProcedure = "/shoplist.v1.ItemService/MarkCancelled"
	ItemServiceUpdateItemProcedure    = "/shoplist.v1.ItemService/UpdateItem"
)

// ItemServiceHandler is implemented by the server.
type ItemServiceHandler interface {
	RequestItem(context.Context, *connect.Request[api.RequestItemRequest]) (*connect.Response[api.RequestItemResponse], error)
	GetItem(context.Context, *connect.Request[api.GetItemRequest]) (*connect.Response[api.GetItemResponse], error)
	ListItems(context.Context, *connect.Request[api.ListItemsRequest]) (*connect.Response[api.ListItemsResponse], error)
	MarkPurchased(context.Context, *connect.Request[api.MarkItemRequest]) (*connect.Response[api.MarkItemResponse], error)
	MarkCancelled(context.Context, *connect.Request[api.MarkItemRequest]) (*connect.Response[api.MarkItemResponse], error)
	UpdateItem(context.Context, *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error)
}

// NewItemServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewItemServiceHandler(svc ItemServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + ItemServiceName + "/", routes{
		ItemServiceRequestItemProcedure:   connect.NewUnaryHandler(ItemServiceRequestItemProcedure, svc.RequestItem, opts...),
		ItemServiceGetItemProcedure:       connect.NewUnaryHandler(ItemServiceGetItemProcedure, svc.GetItem, opts...),
		ItemServiceListItemsProcedure:     connect.NewUnaryHandler(ItemServiceListItemsProcedure, svc.ListItems, opts...),
		ItemServiceMarkPurchasedProcedure: connect.NewUnaryHandler(ItemServiceMarkPurchasedProcedure, svc.MarkPurchased, opts...),
		ItemServiceMarkCancelledProcedure: connect.NewUnaryHandler(ItemServiceMarkCancelledProcedure, svc.MarkCancelled, opts...),
		ItemServiceUpdateItemProcedure:    connect.NewUnaryHandler(ItemServiceUpdateItemProcedure, svc.UpdateItem, opts...),
	}
}

// ItemServiceClient is a client for the ItemService service.
type ItemServiceClient struct {
	requestItem   *connect.Client[api.RequestItemRequest, api.RequestItemResponse]
	getItem       *connect.Client[api.GetItemRequest, api.GetItemResponse]
	listItems     *connect.Client[api.ListItemsRequest, api.ListItemsResponse]
	markPurchased *connect.Client[api.MarkItemRequest, api.MarkItemResponse]
	markCancelled *connect.Client[api.MarkItemRequest, api.MarkItemResponse]
	updateItem    *connect.Client[api.UpdateItemRequest, api.UpdateItemResponse]
}

// NewItemServiceClient constructs a client for the ItemService service.
func NewItemServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ItemServiceClient {
	opts = clientOptions(opts)
	return &ItemServiceClient{
		requestItem:   connect.NewClient[api.RequestItemRequest, api.RequestItemResponse](httpClient, baseURL+ItemServiceRequestItemProcedure, opts...),
		getItem:       connect.NewClient[api.GetItemRequest, api.GetItemResponse](httpClient, baseURL+ItemServiceGetItemProcedure, opts...),
		listItems:     connect.NewClient[api.ListItemsRequest, api.ListItemsResponse](httpClient, baseURL+ItemServiceListItemsProcedure, opts...),
		markPurchased: connect.NewClient[api.MarkItemRequest, api.MarkItemResponse](httpClient, baseURL+ItemServiceMarkPurchasedProcedure, opts...),
		markCancelled: connect.NewClient[api.MarkItemRequest, api.MarkItemResponse](httpClient, baseURL+ItemServiceMarkCancelledProcedure, opts...),
		updateItem:    connect.NewClient[api.UpdateItemRequest, api.UpdateItemResponse](httpClient, baseURL+ItemServiceUpdateItemProcedure, opts...),
	}
}

func (c *ItemServiceClient) RequestItem(ctx context.Context, req *connect.Request[api.RequestItemRequest]) (*connect.Response[api.RequestItemResponse], error) {
	return c.requestItem.CallUnary(ctx, req)
}

func (c *ItemServiceClient) GetItem(ctx context.Context, req *connect.Request[api.GetItemRequest]) (*connect.Response[api.GetItemResponse], error) {
	return c.getItem.CallUnary(ctx, req)
}

func (c *ItemServiceClient) ListItems(ctx context.Context, req *connect.Request[api.ListItemsRequest]) (*connect.Response[api.ListItemsResponse], error) {
	return c.listItems.CallUnary(ctx, req)
}

func (c *ItemServiceClient) MarkPurchased(ctx context.Context, req *connect.Request[api.MarkItemRequest]) (*connect.Response[api.MarkItemResponse], error) {
	return c.markPurchased.CallUnary(ctx, req)
}

func (c *ItemServiceClient) MarkCancelled(ctx context.Context, req *connect.Request[api.MarkItemRequest]) (*connect.Response[api.MarkItemResponse], error) {
	return c.markCancelled.CallUnary(ctx, req)
}

func (c *ItemServiceClient) UpdateItem(ctx context.Context, req *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error) {
	return c.updateItem.CallUnary(ctx, req)
}
