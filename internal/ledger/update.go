package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/shoplist/internal/models"
	"github.com/mmynk/shoplist/internal/storage"
)

// UpdateItem changes the editable fields of an item. Only the requester or
// a leader may edit, and only while the item is open.
func (s *Service) UpdateItem(ctx context.Context, itemID string, update ItemUpdate, actor string) (*models.Item, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	var item *models.Item
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		item, err = s.authorize(ctx, itemID, actor)
		if err != nil {
			return err
		}
		if !item.ToPurchase() {
			return fmt.Errorf("item %s is %s: %w", itemID, item.State(), models.ErrInvalidState)
		}

		if update.Description != nil {
			description := models.NormalizeName(*update.Description)
			other, err := s.store.FindOpenItem(ctx, item.GroupID, description)
			switch {
			case err == nil && other.ID != item.ID:
				return fmt.Errorf("item %q: %w", description, models.ErrDuplicateItem)
			case err != nil && !errors.Is(err, models.ErrNotFound):
				return fmt.Errorf("find open item: %w", err)
			}
			item.Description = description
		}
		if update.Quantity != nil {
			item.Quantity = normalizeQuantity(*update.Quantity)
		}
		if update.MerchantID != nil {
			item.MerchantID = *update.MerchantID
		}
		if err := s.checkMerchant(ctx, item.MerchantID, item.GroupID); err != nil {
			return err
		}

		if err := s.store.UpdateItem(ctx, item); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				return fmt.Errorf("item %q: %w", item.Description, models.ErrDuplicateItem)
			}
			return fmt.Errorf("update item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "item updated",
		slog.String("item_id", itemID),
		slog.String("by", actor),
	)
	return item, nil
}
