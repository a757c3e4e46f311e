// Package catalog manages the merchants, categories and reference items of
// a group.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/shoplist/internal/models"
	"github.com/mmynk/shoplist/internal/storage"
)

const maxNameLen = 100

// Store is the persistence the catalog needs.
type Store interface {
	storage.TxRunner
	storage.CatalogStore
}

// Groups looks up groups for membership and leadership checks.
type Groups interface {
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
}

// Service provides catalog operations.
type Service struct {
	store  Store
	groups Groups
	log    *slog.Logger
	now    func() time.Time
}

// NewService creates a new catalog service.
func NewService(log *slog.Logger, store Store, groups Groups) *Service {
	return &Service{
		store:  store,
		groups: groups,
		log:    log.With("service", "catalog"),
		now:    time.Now,
	}
}

// CreateMerchant adds a merchant to the group. Names are title-cased and
// unique per group regardless of case.
func (s *Service) CreateMerchant(ctx context.Context, groupID, name, actor string) (*models.Merchant, error) {
	name, err := validName("name", name)
	if err != nil {
		return nil, err
	}

	merchant := &models.Merchant{
		Name:      name,
		GroupID:   groupID,
		CreatedAt: s.now().Unix(),
	}

	err = s.store.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.requireMember(ctx, groupID, actor); err != nil {
			return err
		}
		if err := s.checkMerchantName(ctx, groupID, name, ""); err != nil {
			return err
		}
		if err := s.store.CreateMerchant(ctx, merchant); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				return fmt.Errorf("merchant %q: %w", name, models.ErrDuplicateMerchant)
			}
			return fmt.Errorf("create merchant: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "merchant created",
		slog.String("group_id", groupID),
		slog.String("merchant_id", merchant.ID),
		slog.String("name", merchant.Name),
	)
	return merchant, nil
}

// RenameMerchant changes a merchant's name. Any member may rename.
func (s *Service) RenameMerchant(ctx context.Context, merchantID, name, actor string) (*models.Merchant, error) {
	name, err := validName("name", name)
	if err != nil {
		return nil, err
	}

	var merchant *models.Merchant
	err = s.store.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		merchant, err = s.store.GetMerchant(ctx, merchantID)
		if err != nil {
			return fmt.Errorf("get merchant: %w", err)
		}
		if _, err := s.requireMember(ctx, merchant.GroupID, actor); err != nil {
			return err
		}
		if err := s.checkMerchantName(ctx, merchant.GroupID, name, merchant.ID); err != nil {
			return err
		}
		if err := s.store.RenameMerchant(ctx, merchantID, name); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				return fmt.Errorf("merchant %q: %w", name, models.ErrDuplicateMerchant)
			}
			return fmt.Errorf("rename merchant: %w", err)
		}
		merchant.Name = name
		return nil
	})
	if err != nil {
		return nil, err
	}
	return merchant, nil
}

// ListMerchants returns the group's merchants ordered by name.
func (s *Service) ListMerchants(ctx context.Context, groupID, actor string) ([]*models.Merchant, error) {
	if _, err := s.requireMember(ctx, groupID, actor); err != nil {
		return nil, err
	}
	merchants, err := s.store.ListMerchants(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list merchants: %w", err)
	}
	return merchants, nil
}

// DeleteMerchant removes a merchant. Only leaders of its group may; items
// that preferred it keep existing without a merchant.
func (s *Service) DeleteMerchant(ctx context.Context, merchantID, requester string) error {
	var groupID string
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		merchant, err := s.store.GetMerchant(ctx, merchantID)
		if err != nil {
			return fmt.Errorf("get merchant: %w", err)
		}
		groupID = merchant.GroupID

		group, err := s.groups.GetGroup(ctx, merchant.GroupID)
		if err != nil {
			return err
		}
		if !group.IsLeader(requester) {
			return fmt.Errorf("delete merchant %s: %w", merchantID, models.ErrPermission)
		}
		if err := s.store.DeleteMerchant(ctx, merchantID); err != nil {
			return fmt.Errorf("delete merchant: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "merchant deleted",
		slog.String("group_id", groupID),
		slog.String("merchant_id", merchantID),
		slog.String("by", requester),
	)
	return nil
}

// checkMerchantName fails with ErrDuplicateMerchant if another merchant of
// the group already uses name.
func (s *Service) checkMerchantName(ctx context.Context, groupID, name, selfID string) error {
	existing, err := s.store.GetMerchantByName(ctx, groupID, name)
	if errors.Is(err, models.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup merchant: %w", err)
	}
	if existing.ID == selfID {
		return nil
	}
	return fmt.Errorf("merchant %q: %w", name, models.ErrDuplicateMerchant)
}

func (s *Service) requireMember(ctx context.Context, groupID, actor string) (*models.Group, error) {
	group, err := s.groups.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsMember(actor) {
		return nil, fmt.Errorf("group %s: %w", groupID, models.ErrPermission)
	}
	return group, nil
}

func (s *Service) requireLeader(ctx context.Context, groupID, actor string) (*models.Group, error) {
	group, err := s.groups.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsLeader(actor) {
		return nil, fmt.Errorf("group %s: %w", groupID, models.ErrPermission)
	}
	return group, nil
}

func validName(field, raw string) (string, error) {
	name := models.NormalizeName(raw)
	if name == "" {
		return "", models.NewValidationError(field, "required")
	}
	if len(name) > maxNameLen {
		return "", models.NewValidationError(field, "max 100 characters")
	}
	return name, nil
}
