package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/mmynk/shoplist/internal/models"
)

// CreateMerchant persists a new merchant.
func (s *SQLiteStore) CreateMerchant(ctx context.Context, merchant *models.Merchant) error {
	if merchant.ID == "" {
		merchant.ID = uuid.New().String()
	}
	if merchant.CreatedAt == 0 {
		merchant.CreatedAt = time.Now().Unix()
	}

	_, err := s.q(ctx).ExecContext(ctx,
		"INSERT INTO merchants (id, group_id, name, created_at) VALUES (?, ?, ?, ?)",
		merchant.ID, merchant.GroupID, merchant.Name, merchant.CreatedAt,
	)
	return mapError(err, "insert merchant")
}

// GetMerchant retrieves a merchant by ID.
func (s *SQLiteStore) GetMerchant(ctx context.Context, merchantID string) (*models.Merchant, error) {
	m := &models.Merchant{}
	err := s.q(ctx).QueryRowContext(ctx,
		"SELECT id, group_id, name, created_at FROM merchants WHERE id = ?", merchantID,
	).Scan(&m.ID, &m.GroupID, &m.Name, &m.CreatedAt)
	if err != nil {
		return nil, mapError(err, "get merchant "+merchantID)
	}
	return m, nil
}

// GetMerchantByName retrieves a merchant of a group by name, case-insensitively.
func (s *SQLiteStore) GetMerchantByName(ctx context.Context, groupID, name string) (*models.Merchant, error) {
	m := &models.Merchant{}
	err := s.q(ctx).QueryRowContext(ctx,
		"SELECT id, group_id, name, created_at FROM merchants WHERE group_id = ? AND name = ? COLLATE NOCASE",
		groupID, name,
	).Scan(&m.ID, &m.GroupID, &m.Name, &m.CreatedAt)
	if err != nil {
		return nil, mapError(err, "get merchant by name")
	}
	return m, nil
}

// ListMerchants returns the merchants of a group ordered by name.
func (s *SQLiteStore) ListMerchants(ctx context.Context, groupID string) ([]*models.Merchant, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		"SELECT id, group_id, name, created_at FROM merchants WHERE group_id = ? ORDER BY name COLLATE NOCASE, id",
		groupID,
	)
	if err != nil {
		return nil, mapError(err, "list merchants")
	}
	defer rows.Close()

	var merchants []*models.Merchant
	for rows.Next() {
		m := &models.Merchant{}
		if err := rows.Scan(&m.ID, &m.GroupID, &m.Name, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan merchant: %w", err)
		}
		merchants = append(merchants, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate merchants: %w", err)
	}
	return merchants, nil
}

// RenameMerchant changes the name of a merchant.
func (s *SQLiteStore) RenameMerchant(ctx context.Context, merchantID, name string) error {
	res, err := s.q(ctx).ExecContext(ctx, "UPDATE merchants SET name = ? WHERE id = ?", name, merchantID)
	if err != nil {
		return mapError(err, "rename merchant")
	}
	return expectRow(res, "merchant "+merchantID)
}

// DeleteMerchant removes a merchant. Items keep existing without a merchant.
func (s *SQLiteStore) DeleteMerchant(ctx context.Context, merchantID string) error {
	return s.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.q(ctx).ExecContext(ctx,
			"UPDATE items SET merchant_id = NULL WHERE merchant_id = ?", merchantID); err != nil {
			return mapError(err, "detach merchant items")
		}
		res, err := s.q(ctx).ExecContext(ctx, "DELETE FROM merchants WHERE id = ?", merchantID)
		if err != nil {
			return mapError(err, "delete merchant")
		}
		return expectRow(res, "merchant "+merchantID)
	})
}

// CreateCategory persists a new category.
func (s *SQLiteStore) CreateCategory(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	_, err := s.q(ctx).ExecContext(ctx,
		"INSERT INTO categories (id, group_id, name, active) VALUES (?, ?, ?, ?)",
		category.ID, category.GroupID, category.Name, boolToInt(category.Active),
	)
	return mapError(err, "insert category")
}

// GetCategory retrieves a category by ID.
func (s *SQLiteStore) GetCategory(ctx context.Context, categoryID string) (*models.Category, error) {
	row := s.q(ctx).QueryRowContext(ctx,
		"SELECT id, group_id, name, active FROM categories WHERE id = ?", categoryID)
	c, err := scanCategory(row)
	if err != nil {
		return nil, mapError(err, "get category "+categoryID)
	}
	return c, nil
}

// ListCategories returns the categories of a group ordered by name,
// optionally restricted to active ones.
func (s *SQLiteStore) ListCategories(ctx context.Context, groupID string, activeOnly bool) ([]*models.Category, error) {
	query := sq.Select("id", "group_id", "name", "active").
		From("categories").
		Where(sq.Eq{"group_id": groupID}).
		OrderBy("name COLLATE NOCASE", "id")
	if activeOnly {
		query = query.Where(sq.Eq{"active": 1})
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build category query: %w", err)
	}
	rows, err := s.q(ctx).QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, mapError(err, "list categories")
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return categories, nil
}

// SetCategoryActive updates the active flag of a category.
func (s *SQLiteStore) SetCategoryActive(ctx context.Context, categoryID string, active bool) error {
	res, err := s.q(ctx).ExecContext(ctx,
		"UPDATE categories SET active = ? WHERE id = ?", boolToInt(active), categoryID)
	if err != nil {
		return mapError(err, "update category")
	}
	return expectRow(res, "category "+categoryID)
}

// CreateReferenceItem persists a new reference item.
func (s *SQLiteStore) CreateReferenceItem(ctx context.Context, ref *models.ReferenceItem) error {
	if ref.ID == "" {
		ref.ID = uuid.New().String()
	}
	if ref.CreatedAt == 0 {
		ref.CreatedAt = time.Now().Unix()
	}

	query := sq.Insert("reference_items").
		Columns("id", "group_id", "category_id", "description", "recommendation", "created_by", "created_at").
		Values(ref.ID, ref.GroupID, ref.CategoryID, ref.Description, ref.Recommendation, nullString(ref.CreatedBy), ref.CreatedAt)
	stmt, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build reference item insert: %w", err)
	}
	_, err = s.q(ctx).ExecContext(ctx, stmt, args...)
	return mapError(err, "insert reference item")
}

// ListReferenceItems returns the reference items of a group ordered by description.
func (s *SQLiteStore) ListReferenceItems(ctx context.Context, groupID string) ([]*models.ReferenceItem, error) {
	stmt, args, err := sq.Select("id", "group_id", "category_id", "description", "recommendation", "created_by", "created_at").
		From("reference_items").
		Where(sq.Eq{"group_id": groupID}).
		OrderBy("description COLLATE NOCASE", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build reference item query: %w", err)
	}

	rows, err := s.q(ctx).QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, mapError(err, "list reference items")
	}
	defer rows.Close()

	var refs []*models.ReferenceItem
	for rows.Next() {
		ref := &models.ReferenceItem{}
		var createdBy sql.NullString
		if err := rows.Scan(&ref.ID, &ref.GroupID, &ref.CategoryID, &ref.Description,
			&ref.Recommendation, &createdBy, &ref.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reference item: %w", err)
		}
		ref.CreatedBy = createdBy.String
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reference items: %w", err)
	}
	return refs, nil
}

func scanCategory(row scanner) (*models.Category, error) {
	c := &models.Category{}
	var active int
	if err := row.Scan(&c.ID, &c.GroupID, &c.Name, &active); err != nil {
		return nil, err
	}
	c.Active = active != 0
	return c, nil
}
