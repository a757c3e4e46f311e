package ledger

import (
	"context"
	"fmt"

	"github.com/mmynk/shoplist/internal/models"
	"github.com/mmynk/shoplist/internal/storage"
)

// ListOpen returns the open items of a group ordered by description,
// case-insensitively, with ties broken by ID.
func (s *Service) ListOpen(ctx context.Context, groupID, actor string) ([]*models.Item, error) {
	return s.ListOpenPage(ctx, groupID, actor, 0, 0)
}

// ListOpenPage returns one page of ListOpen. A zero limit returns everything
// from offset onwards.
func (s *Service) ListOpenPage(ctx context.Context, groupID, actor string, limit, offset int) ([]*models.Item, error) {
	if limit < 0 || offset < 0 {
		return nil, models.NewValidationError("page", "limit and offset must not be negative")
	}
	return s.list(ctx, actor, storage.ItemFilter{
		GroupID: groupID,
		State:   models.ItemOpen,
		Limit:   limit,
		Offset:  offset,
	})
}

// ListPurchased returns the purchased items of a group, most recent first.
func (s *Service) ListPurchased(ctx context.Context, groupID, actor string) ([]*models.Item, error) {
	return s.list(ctx, actor, storage.ItemFilter{GroupID: groupID, State: models.ItemPurchased})
}

// ListCancelled returns the cancelled items of a group, most recent first.
func (s *Service) ListCancelled(ctx context.Context, groupID, actor string) ([]*models.Item, error) {
	return s.list(ctx, actor, storage.ItemFilter{GroupID: groupID, State: models.ItemCancelled})
}

func (s *Service) list(ctx context.Context, actor string, filter storage.ItemFilter) ([]*models.Item, error) {
	group, err := s.groups.GetGroup(ctx, filter.GroupID)
	if err != nil {
		return nil, err
	}
	if !group.IsMember(actor) {
		return nil, fmt.Errorf("list items of group %s: %w", filter.GroupID, models.ErrPermission)
	}

	items, err := s.store.ListItems(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}
