// Package ledger implements the item lifecycle of a group's shopping list.
//
// An item starts open and moves once to either purchased or cancelled.
// Within a group at most one open item carries a given description,
// compared case-insensitively; asking for it again yields a duplicate
// notice instead of a second row.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/shoplist/internal/metrics"
	"github.com/mmynk/shoplist/internal/models"
	"github.com/mmynk/shoplist/internal/storage"
)

// Store is the persistence the ledger needs.
type Store interface {
	storage.TxRunner
	storage.ItemStore
	GetMerchant(ctx context.Context, merchantID string) (*models.Merchant, error)
}

// Groups looks up groups for membership and leadership checks.
type Groups interface {
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
}

// Service provides item operations.
type Service struct {
	store  Store
	groups Groups
	log    *slog.Logger
	now    func() time.Time
}

// NewService creates a new ledger service.
func NewService(log *slog.Logger, store Store, groups Groups) *Service {
	return &Service{
		store:  store,
		groups: groups,
		log:    log.With("service", "ledger"),
		now:    time.Now,
	}
}

// RequestItem adds an open item to the group's list, or returns a duplicate
// notice when an open item with the same description is already listed.
func (s *Service) RequestItem(ctx context.Context, input RequestItemInput, requester string) (models.Outcome[models.Item], error) {
	if err := input.Validate(); err != nil {
		return models.Outcome[models.Item]{}, err
	}

	item := &models.Item{
		Description: models.NormalizeName(input.Description),
		Quantity:    input.quantity(),
		GroupID:     input.GroupID,
		RequestedBy: requester,
		MerchantID:  input.MerchantID,
		RequestedAt: s.now().Unix(),
	}

	var duplicate bool
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		group, err := s.groups.GetGroup(ctx, input.GroupID)
		if err != nil {
			return err
		}
		if !group.IsMember(requester) {
			return fmt.Errorf("request item in group %s: %w", input.GroupID, models.ErrPermission)
		}
		if err := s.checkMerchant(ctx, item.MerchantID, item.GroupID); err != nil {
			return err
		}

		_, err = s.store.FindOpenItem(ctx, item.GroupID, item.Description)
		if err == nil {
			duplicate = true
			return nil
		}
		if !errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("find open item: %w", err)
		}

		if err := s.store.CreateItem(ctx, item); err != nil {
			// A concurrent request won the race; the open-item index rejected ours.
			if errors.Is(err, storage.ErrDuplicate) {
				duplicate = true
				return nil
			}
			return fmt.Errorf("create item: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Outcome[models.Item]{}, err
	}

	if duplicate {
		metrics.RecordItemRequest(string(models.NoticeDuplicateItem))
		s.log.DebugContext(ctx, "duplicate item request",
			slog.String("group_id", item.GroupID),
			slog.String("description", item.Description),
		)
		return models.Noticed[models.Item](models.NoticeDuplicateItem, "Already listed : "+item.Description), nil
	}

	metrics.RecordItemRequest("created")
	s.log.InfoContext(ctx, "item requested",
		slog.String("group_id", item.GroupID),
		slog.String("item_id", item.ID),
		slog.String("requested_by", requester),
	)
	return models.Created(item), nil
}

// GetItem returns an item of a group the actor belongs to.
func (s *Service) GetItem(ctx context.Context, itemID, actor string) (*models.Item, error) {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	group, err := s.groups.GetGroup(ctx, item.GroupID)
	if err != nil {
		return nil, err
	}
	if !group.IsMember(actor) {
		return nil, fmt.Errorf("item %s: %w", itemID, models.ErrPermission)
	}
	return item, nil
}

// MarkPurchased records that actor bought the item.
func (s *Service) MarkPurchased(ctx context.Context, itemID, actor string) (*models.Item, error) {
	at := s.now().Unix()
	item, err := s.finish(ctx, itemID, actor, func(ctx context.Context) (bool, error) {
		return s.store.MarkItemPurchased(ctx, itemID, actor, at)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordItemTransition(string(models.ItemPurchased))
	s.log.InfoContext(ctx, "item purchased",
		slog.String("item_id", itemID),
		slog.String("by", actor),
	)
	return item, nil
}

// MarkCancelled records that actor cancelled the item.
func (s *Service) MarkCancelled(ctx context.Context, itemID, actor string) (*models.Item, error) {
	item, err := s.finish(ctx, itemID, actor, func(ctx context.Context) (bool, error) {
		return s.store.MarkItemCancelled(ctx, itemID, actor)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordItemTransition(string(models.ItemCancelled))
	s.log.InfoContext(ctx, "item cancelled",
		slog.String("item_id", itemID),
		slog.String("by", actor),
	)
	return item, nil
}

// finish moves an open item to a terminal state. Permission is checked before
// state, so strangers learn nothing about the item.
func (s *Service) finish(ctx context.Context, itemID, actor string, mark func(ctx context.Context) (bool, error)) (*models.Item, error) {
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

		changed, err := mark(ctx)
		if err != nil {
			return fmt.Errorf("close item: %w", err)
		}
		if !changed {
			return fmt.Errorf("item %s: %w", itemID, models.ErrInvalidState)
		}

		item, err = s.store.GetItem(ctx, itemID)
		if err != nil {
			return fmt.Errorf("reload item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// authorize loads the item and checks that actor is its requester or a
// leader of its group.
func (s *Service) authorize(ctx context.Context, itemID, actor string) (*models.Item, error) {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if item.RequestedBy == actor {
		return item, nil
	}

	group, err := s.groups.GetGroup(ctx, item.GroupID)
	if err != nil {
		return nil, err
	}
	if !group.IsLeader(actor) {
		return nil, fmt.Errorf("item %s: %w", itemID, models.ErrPermission)
	}
	return item, nil
}

// checkMerchant verifies that a preferred merchant belongs to the group.
func (s *Service) checkMerchant(ctx context.Context, merchantID, groupID string) error {
	if merchantID == "" {
		return nil
	}
	merchant, err := s.store.GetMerchant(ctx, merchantID)
	if errors.Is(err, models.ErrNotFound) {
		return models.NewValidationError("merchant_id", "unknown merchant")
	}
	if err != nil {
		return fmt.Errorf("get merchant: %w", err)
	}
	if merchant.GroupID != groupID {
		return models.NewValidationError("merchant_id", "belongs to another group")
	}
	return nil
}
