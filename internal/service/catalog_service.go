package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/shoplist/internal/catalog"
	"github.com/mmynk/shoplist/internal/models"
	"github.com/mmynk/shoplist/internal/session"
	"github.com/mmynk/shoplist/pkg/api"
	"github.com/mmynk/shoplist/pkg/api/apiconnect"
)

var _ apiconnect.CatalogServiceHandler = (*CatalogService)(nil)

// CatalogService implements the Connect CatalogService.
type CatalogService struct {
	catalog *catalog.Service
	groups  groupResolver
	logger  *slog.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(catalog *catalog.Service, selector *session.Selector, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		catalog: catalog,
		groups:  groupResolver{selector: selector},
		logger:  logger.With("service", "catalog_rpc"),
	}
}

func (s *CatalogService) CreateMerchant(ctx context.Context, req *connect.Request[api.CreateMerchantRequest]) (*connect.Response[api.MerchantResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	groupID, err := s.groups.resolve(ctx, c, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "CreateMerchant", err)
	}
	merchant, err := s.catalog.CreateMerchant(ctx, groupID, req.Msg.Name, c.UserID)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "CreateMerchant", err)
	}
	return connect.NewResponse(&api.MerchantResponse{Merchant: toAPIMerchant(merchant)}), nil
}

func (s *CatalogService) RenameMerchant(ctx context.Context, req *connect.Request[api.RenameMerchantRequest]) (*connect.Response[api.MerchantResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	merchant, err := s.catalog.RenameMerchant(ctx, req.Msg.MerchantID, req.Msg.Name, c.UserID)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "RenameMerchant", err)
	}
	return connect.NewResponse(&api.MerchantResponse{Merchant: toAPIMerchant(merchant)}), nil
}

func (s *CatalogService) ListMerchants(ctx context.Context, req *connect.Request[api.ListMerchantsRequest]) (*connect.Response[api.ListMerchantsResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	groupID, err := s.groups.resolve(ctx, c, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "ListMerchants", err)
	}
	merchants, err := s.catalog.ListMerchants(ctx, groupID, c.UserID)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "ListMerchants", err)
	}

	out := make([]*api.Merchant, len(merchants))
	for i, m := range merchants {
		out[i] = toAPIMerchant(m)
	}
	return connect.NewResponse(&api.ListMerchantsResponse{Merchants: out}), nil
}

func (s *CatalogService) DeleteMerchant(ctx context.Context, req *connect.Request[api.DeleteMerchantRequest]) (*connect.Response[api.DeleteMerchantResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	if err := s.catalog.DeleteMerchant(ctx, req.Msg.MerchantID, c.UserID); err != nil {
		return nil, toConnectError(ctx, s.logger, "DeleteMerchant", err)
	}
	return connect.NewResponse(&api.DeleteMerchantResponse{}), nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, req *connect.Request[api.CreateCategoryRequest]) (*connect.Response[api.CategoryResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	groupID, err := s.groups.resolve(ctx, c, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "CreateCategory", err)
	}
	category, err := s.catalog.CreateCategory(ctx, groupID, req.Msg.Name, c.UserID)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "CreateCategory", err)
	}
	return connect.NewResponse(&api.CategoryResponse{Category: toAPICategory(category)}), nil
}

func (s *CatalogService) SetCategoryActive(ctx context.Context, req *connect.Request[api.SetCategoryActiveRequest]) (*connect.Response[api.CategoryResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	category, err := s.catalog.SetCategoryActive(ctx, req.Msg.CategoryID, req.Msg.Active, c.UserID)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "SetCategoryActive", err)
	}
	return connect.NewResponse(&api.CategoryResponse{Category: toAPICategory(category)}), nil
}

// ListCategories lists active categories, or all of them when asked.
func (s *CatalogService) ListCategories(ctx context.Context, req *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	groupID, err := s.groups.resolve(ctx, c, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "ListCategories", err)
	}

	var categories []*models.Category
	if req.Msg.IncludeInactive {
		categories, err = s.catalog.ListAllCategories(ctx, groupID, c.UserID)
	} else {
		categories, err = s.catalog.ListActiveCategories(ctx, groupID, c.UserID)
	}
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "ListCategories", err)
	}

	out := make([]*api.Category, len(categories))
	for i, cat := range categories {
		out[i] = toAPICategory(cat)
	}
	return connect.NewResponse(&api.ListCategoriesResponse{Categories: out}), nil
}

func (s *CatalogService) CreateReferenceItem(ctx context.Context, req *connect.Request[api.CreateReferenceItemRequest]) (*connect.Response[api.CreateReferenceItemResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	groupID, err := s.groups.resolve(ctx, c, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "CreateReferenceItem", err)
	}
	ref, err := s.catalog.CreateReferenceItem(ctx, catalog.CreateReferenceInput{
		GroupID:        groupID,
		CategoryID:     req.Msg.CategoryID,
		Description:    req.Msg.Description,
		Recommendation: req.Msg.Recommendation,
	}, c.UserID)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "CreateReferenceItem", err)
	}
	return connect.NewResponse(&api.CreateReferenceItemResponse{ReferenceItem: toAPIReferenceItem(ref)}), nil
}

func (s *CatalogService) ListReferenceItems(ctx context.Context, req *connect.Request[api.ListReferenceItemsRequest]) (*connect.Response[api.ListReferenceItemsResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	groupID, err := s.groups.resolve(ctx, c, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "ListReferenceItems", err)
	}
	refs, err := s.catalog.ListReferenceItems(ctx, groupID, c.UserID)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "ListReferenceItems", err)
	}

	out := make([]*api.ReferenceItem, len(refs))
	for i, r := range refs {
		out[i] = toAPIReferenceItem(r)
	}
	return connect.NewResponse(&api.ListReferenceItemsResponse{ReferenceItems: out}), nil
}
