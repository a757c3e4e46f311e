package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/shoplist/internal/ledger"
	"github.com/mmynk/shoplist/internal/models"
	"github.com/mmynk/shoplist/internal/session"
	"github.com/mmynk/shoplist/pkg/api"
	"github.com/mmynk/shoplist/pkg/api/apiconnect"
)

var _ apiconnect.ItemServiceHandler = (*ItemService)(nil)

// ItemService implements the Connect ItemService on top of the item ledger.
type ItemService struct {
	ledger *ledger.Service
	groups groupResolver
	logger *slog.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(ledger *ledger.Service, selector *session.Selector, logger *slog.Logger) *ItemService {
	return &ItemService{
		ledger: ledger,
		groups: groupResolver{selector: selector},
		logger: logger.With("service", "item_rpc"),
	}
}

// RequestItem adds an item to the group's list, or returns a notice when an
// equivalent open item already exists.
func (s *ItemService) RequestItem(ctx context.Context, req *connect.Request[api.RequestItemRequest]) (*connect.Response[api.RequestItemResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	groupID, err := s.groups.resolve(ctx, c, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "RequestItem", err)
	}

	out, err := s.ledger.RequestItem(ctx, ledger.RequestItemInput{
		GroupID:     groupID,
		Description: req.Msg.Description,
		Quantity:    req.Msg.Quantity,
		MerchantID:  req.Msg.MerchantID,
	}, c.UserID)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "RequestItem", err)
	}

	resp := &api.RequestItemResponse{}
	if out.IsNotice() {
		resp.Notice = toAPINotice(out.Notice)
	} else {
		resp.Item = toAPIItem(out.Value)
	}
	return connect.NewResponse(resp), nil
}

// GetItem returns a single item.
func (s *ItemService) GetItem(ctx context.Context, req *connect.Request[api.GetItemRequest]) (*connect.Response[api.GetItemResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	item, err := s.ledger.GetItem(ctx, req.Msg.ItemID, c.UserID)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "GetItem", err)
	}
	return connect.NewResponse(&api.GetItemResponse{Item: toAPIItem(item)}), nil
}

// ListItems lists the group's items in the requested state.
func (s *ItemService) ListItems(ctx context.Context, req *connect.Request[api.ListItemsRequest]) (*connect.Response[api.ListItemsResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	groupID, err := s.groups.resolve(ctx, c, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "ListItems", err)
	}

	var items []*models.Item
	switch models.ItemState(req.Msg.State) {
	case "", models.ItemOpen:
		if req.Msg.Limit > 0 || req.Msg.Offset > 0 {
			items, err = s.ledger.ListOpenPage(ctx, groupID, c.UserID, req.Msg.Limit, req.Msg.Offset)
		} else {
			items, err = s.ledger.ListOpen(ctx, groupID, c.UserID)
		}
	case models.ItemPurchased:
		items, err = s.ledger.ListPurchased(ctx, groupID, c.UserID)
	case models.ItemCancelled:
		items, err = s.ledger.ListCancelled(ctx, groupID, c.UserID)
	default:
		err = models.NewValidationError("state", fmt.Sprintf("unknown state %q", req.Msg.State))
	}
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "ListItems", err)
	}

	return connect.NewResponse(&api.ListItemsResponse{Items: toAPIItems(items)}), nil
}

// MarkPurchased closes an open item as bought.
func (s *ItemService) MarkPurchased(ctx context.Context, req *connect.Request[api.MarkItemRequest]) (*connect.Response[api.MarkItemResponse], error) {
	return s.mark(ctx, "MarkPurchased", req.Msg.ItemID, s.ledger.MarkPurchased)
}

// MarkCancelled closes an open item without buying it.
func (s *ItemService) MarkCancelled(ctx context.Context, req *connect.Request[api.MarkItemRequest]) (*connect.Response[api.MarkItemResponse], error) {
	return s.mark(ctx, "MarkCancelled", req.Msg.ItemID, s.ledger.MarkCancelled)
}

func (s *ItemService) mark(ctx context.Context, op, itemID string, fn func(ctx context.Context, itemID, actor string) (*models.Item, error)) (*connect.Response[api.MarkItemResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	item, err := fn(ctx, itemID, c.UserID)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, op, err)
	}
	return connect.NewResponse(&api.MarkItemResponse{Item: toAPIItem(item)}), nil
}

// UpdateItem edits an open item.
func (s *ItemService) UpdateItem(ctx context.Context, req *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	item, err := s.ledger.UpdateItem(ctx, req.Msg.ItemID, ledger.ItemUpdate{
		Description: req.Msg.Description,
		Quantity:    req.Msg.Quantity,
		MerchantID:  req.Msg.MerchantID,
	}, c.UserID)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "UpdateItem", err)
	}
	return connect.NewResponse(&api.UpdateItemResponse{Item: toAPIItem(item)}), nil
}
