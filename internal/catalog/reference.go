package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmynk/shoplist/internal/models"
)

// CreateReferenceInput holds the parameters for a reference item.
type CreateReferenceInput struct {
	GroupID        string
	CategoryID     string
	Description    string
	Recommendation string
}

// CreateReferenceItem adds a suggested item to the group's catalog. The
// category must belong to the same group.
func (s *Service) CreateReferenceItem(ctx context.Context, input CreateReferenceInput, actor string) (*models.ReferenceItem, error) {
	description, err := validName("description", input.Description)
	if err != nil {
		return nil, err
	}
	if input.CategoryID == "" {
		return nil, models.NewValidationError("category_id", "required")
	}

	ref := &models.ReferenceItem{
		Description:    description,
		Recommendation: strings.TrimSpace(input.Recommendation),
		CategoryID:     input.CategoryID,
		CreatedBy:      actor,
		GroupID:        input.GroupID,
		CreatedAt:      s.now().Unix(),
	}
	err = s.store.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.requireMember(ctx, input.GroupID, actor); err != nil {
			return err
		}
		category, err := s.store.GetCategory(ctx, input.CategoryID)
		if err != nil {
			return fmt.Errorf("get category: %w", err)
		}
		if category.GroupID != input.GroupID {
			return models.NewValidationError("category_id", "belongs to another group")
		}
		if err := s.store.CreateReferenceItem(ctx, ref); err != nil {
			return fmt.Errorf("create reference item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ref, nil
}

// ListReferenceItems returns the group's reference items ordered by description.
func (s *Service) ListReferenceItems(ctx context.Context, groupID, actor string) ([]*models.ReferenceItem, error) {
	if _, err := s.requireMember(ctx, groupID, actor); err != nil {
		return nil, err
	}
	refs, err := s.store.ListReferenceItems(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list reference items: %w", err)
	}
	return refs, nil
}
