// Package registry owns groups, their membership and the leader and
// manager roles.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/shoplist/internal/models"
	"github.com/mmynk/shoplist/internal/storage"
)

// Store is the persistence the registry needs.
type Store interface {
	storage.TxRunner
	storage.GroupStore
}

// Service provides group and membership operations.
type Service struct {
	store Store
	log   *slog.Logger
	now   func() time.Time
}

// NewService creates a new registry service.
func NewService(log *slog.Logger, store Store) *Service {
	return &Service{
		store: store,
		log:   log.With("service", "registry"),
		now:   time.Now,
	}
}

// CreateGroup creates a disabled group whose manager, sole member and sole
// leader is the creator.
func (s *Service) CreateGroup(ctx context.Context, input CreateGroupInput, creator string) (*models.Group, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if creator == "" {
		return nil, models.NewValidationError("creator", "required")
	}

	group := &models.Group{
		Name:      input.normalizedName(),
		Purpose:   input.normalizedPurpose(),
		CreatedAt: s.now().Unix(),
		ManagerID: creator,
		Members:   []string{creator},
		Leaders:   []string{creator},
		Disabled:  true,
	}

	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		_, err := s.store.GetGroupByName(ctx, group.Name)
		if err == nil {
			return fmt.Errorf("group %q: %w", group.Name, models.ErrDuplicateName)
		}
		if !errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("lookup group name: %w", err)
		}

		if err := s.store.CreateGroup(ctx, group); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				return fmt.Errorf("group %q: %w", group.Name, models.ErrDuplicateName)
			}
			return fmt.Errorf("create group: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "group created",
		slog.String("group_id", group.ID),
		slog.String("name", group.Name),
		slog.String("manager_id", creator),
	)
	return group, nil
}

// GetGroup returns a group by ID.
func (s *Service) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}
	return group, nil
}

// GroupExists reports whether the group still exists.
func (s *Service) GroupExists(ctx context.Context, groupID string) (bool, error) {
	return s.store.GroupExists(ctx, groupID)
}

// ListMemberOf returns the groups the user belongs to, ordered by name.
func (s *Service) ListMemberOf(ctx context.Context, userID string) ([]*models.Group, error) {
	groups, err := s.store.ListGroupsByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list member groups: %w", err)
	}
	return groups, nil
}

// ListManagedBy returns the groups the user manages, ordered by name.
func (s *Service) ListManagedBy(ctx context.Context, userID string) ([]*models.Group, error) {
	groups, err := s.store.ListGroupsByManager(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list managed groups: %w", err)
	}
	return groups, nil
}

// IsMember reports whether user belongs to the group.
func (s *Service) IsMember(ctx context.Context, groupID, user string) (bool, error) {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return false, err
	}
	return group.IsMember(user), nil
}

// IsLeader reports whether user leads the group.
func (s *Service) IsLeader(ctx context.Context, groupID, user string) (bool, error) {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return false, err
	}
	return group.IsLeader(user), nil
}

// IsManager reports whether user manages the group.
func (s *Service) IsManager(ctx context.Context, groupID, user string) (bool, error) {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return false, err
	}
	return group.IsManager(user), nil
}

// DeleteGroup deletes the group and everything it owns. Only the manager may.
func (s *Service) DeleteGroup(ctx context.Context, groupID, requester string) error {
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		group, err := s.GetGroup(ctx, groupID)
		if err != nil {
			return err
		}
		if !group.IsManager(requester) {
			return fmt.Errorf("delete group %s: %w", groupID, models.ErrPermission)
		}
		if err := s.store.DeleteGroup(ctx, groupID); err != nil {
			return fmt.Errorf("delete group: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "group deleted",
		slog.String("group_id", groupID),
		slog.String("by", requester),
	)
	return nil
}

// ActivateGroup clears the disabled flag. Only the manager may.
func (s *Service) ActivateGroup(ctx context.Context, groupID, actor string) (*models.Group, error) {
	var group *models.Group
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		group, err = s.GetGroup(ctx, groupID)
		if err != nil {
			return err
		}
		if !group.IsManager(actor) {
			return fmt.Errorf("activate group %s: %w", groupID, models.ErrPermission)
		}
		if err := s.store.SetGroupDisabled(ctx, groupID, false); err != nil {
			return fmt.Errorf("activate group: %w", err)
		}
		group.Disabled = false
		return nil
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}
