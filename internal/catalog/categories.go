package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/shoplist/internal/models"
)

// CreateCategory adds an active category to the group.
func (s *Service) CreateCategory(ctx context.Context, groupID, name, actor string) (*models.Category, error) {
	name, err := validName("name", name)
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:    name,
		GroupID: groupID,
		Active:  true,
	}
	err = s.store.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.requireMember(ctx, groupID, actor); err != nil {
			return err
		}
		if err := s.store.CreateCategory(ctx, category); err != nil {
			return fmt.Errorf("create category: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "category created",
		slog.String("group_id", groupID),
		slog.String("category_id", category.ID),
	)
	return category, nil
}

// SetCategoryActive hides or restores a category. Only leaders may.
func (s *Service) SetCategoryActive(ctx context.Context, categoryID string, active bool, actor string) (*models.Category, error) {
	var category *models.Category
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		category, err = s.store.GetCategory(ctx, categoryID)
		if err != nil {
			return fmt.Errorf("get category: %w", err)
		}
		if _, err := s.requireLeader(ctx, category.GroupID, actor); err != nil {
			return err
		}
		if err := s.store.SetCategoryActive(ctx, categoryID, active); err != nil {
			return fmt.Errorf("update category: %w", err)
		}
		category.Active = active
		return nil
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// ListActiveCategories returns the categories offered for selection.
func (s *Service) ListActiveCategories(ctx context.Context, groupID, actor string) ([]*models.Category, error) {
	return s.listCategories(ctx, groupID, actor, true)
}

// ListAllCategories returns every category of the group, including hidden ones.
func (s *Service) ListAllCategories(ctx context.Context, groupID, actor string) ([]*models.Category, error) {
	return s.listCategories(ctx, groupID, actor, false)
}

func (s *Service) listCategories(ctx context.Context, groupID, actor string, activeOnly bool) ([]*models.Category, error) {
	if _, err := s.requireMember(ctx, groupID, actor); err != nil {
		return nil, err
	}
	categories, err := s.store.ListCategories(ctx, groupID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}
