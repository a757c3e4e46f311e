package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/mmynk/shoplist/internal/models"
	"github.com/mmynk/shoplist/internal/storage"
)

var itemColumns = []string{
	"id", "group_id", "description", "quantity", "requested_by",
	"purchased_by", "cancelled_by", "merchant_id", "requested_at", "purchased_at",
}

// openItem matches items that are neither purchased nor cancelled.
var openItem = sq.And{sq.Eq{"purchased_at": nil}, sq.Eq{"cancelled_by": nil}}

// CreateItem persists a new item. A unique violation means an open item
// with the same description already exists in the group.
func (s *SQLiteStore) CreateItem(ctx context.Context, item *models.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.RequestedAt == 0 {
		item.RequestedAt = time.Now().Unix()
	}
	if item.Quantity == "" {
		item.Quantity = models.DefaultQuantity
	}

	stmt, args, err := sq.Insert("items").
		Columns(itemColumns...).
		Values(item.ID, item.GroupID, item.Description, item.Quantity, item.RequestedBy,
			nullString(item.PurchasedBy), nullString(item.CancelledBy), nullString(item.MerchantID),
			item.RequestedAt, nullInt(item.PurchasedAt)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build item insert: %w", err)
	}
	_, err = s.q(ctx).ExecContext(ctx, stmt, args...)
	return mapError(err, "insert item")
}

// GetItem retrieves an item by ID.
func (s *SQLiteStore) GetItem(ctx context.Context, itemID string) (*models.Item, error) {
	stmt, args, err := sq.Select(itemColumns...).From("items").Where(sq.Eq{"id": itemID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build item query: %w", err)
	}
	item, err := scanItem(s.q(ctx).QueryRowContext(ctx, stmt, args...))
	if err != nil {
		return nil, mapError(err, "get item "+itemID)
	}
	return item, nil
}

// FindOpenItem returns the open item of a group matching description case-insensitively.
func (s *SQLiteStore) FindOpenItem(ctx context.Context, groupID, description string) (*models.Item, error) {
	stmt, args, err := sq.Select(itemColumns...).
		From("items").
		Where(sq.Eq{"group_id": groupID}).
		Where("description = ? COLLATE NOCASE", description).
		Where(openItem).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build open item query: %w", err)
	}
	item, err := scanItem(s.q(ctx).QueryRowContext(ctx, stmt, args...))
	if err != nil {
		return nil, mapError(err, "find open item")
	}
	return item, nil
}

// ListItems returns the items of a group matching the filter.
// Open items are ordered by description case-insensitively, other states
// by most recent first.
func (s *SQLiteStore) ListItems(ctx context.Context, filter storage.ItemFilter) ([]*models.Item, error) {
	query := sq.Select(itemColumns...).From("items").Where(sq.Eq{"group_id": filter.GroupID})

	switch filter.State {
	case models.ItemOpen:
		query = query.Where(openItem).OrderBy("description COLLATE NOCASE", "id")
	case models.ItemPurchased:
		query = query.Where(sq.NotEq{"purchased_at": nil}).OrderBy("purchased_at DESC", "id")
	case models.ItemCancelled:
		query = query.Where(sq.Eq{"purchased_at": nil}).Where(sq.NotEq{"cancelled_by": nil}).
			OrderBy("requested_at DESC", "id")
	case "":
		query = query.OrderBy("description COLLATE NOCASE", "id")
	default:
		return nil, fmt.Errorf("unknown item state %q", filter.State)
	}

	switch {
	case filter.Limit > 0:
		query = query.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	case filter.Offset > 0:
		// SQLite only accepts OFFSET after a LIMIT; -1 means no limit.
		query = query.Suffix("LIMIT -1 OFFSET ?", filter.Offset)
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build item list query: %w", err)
	}
	rows, err := s.q(ctx).QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, mapError(err, "list items")
	}
	defer rows.Close()

	items := []*models.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}

// UpdateItem saves the editable fields of an item: description, quantity and merchant.
func (s *SQLiteStore) UpdateItem(ctx context.Context, item *models.Item) error {
	stmt, args, err := sq.Update("items").
		Set("description", item.Description).
		Set("quantity", item.Quantity).
		Set("merchant_id", nullString(item.MerchantID)).
		Where(sq.Eq{"id": item.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build item update: %w", err)
	}
	res, err := s.q(ctx).ExecContext(ctx, stmt, args...)
	if err != nil {
		return mapError(err, "update item")
	}
	return expectRow(res, "item "+item.ID)
}

// MarkItemPurchased records a purchase if the item is still open.
func (s *SQLiteStore) MarkItemPurchased(ctx context.Context, itemID, userID string, at int64) (bool, error) {
	return s.closeItem(ctx, sq.Update("items").
		Set("purchased_by", userID).
		Set("purchased_at", at).
		Where(sq.Eq{"id": itemID}).
		Where(openItem))
}

// MarkItemCancelled records a cancellation if the item is still open.
func (s *SQLiteStore) MarkItemCancelled(ctx context.Context, itemID, userID string) (bool, error) {
	return s.closeItem(ctx, sq.Update("items").
		Set("cancelled_by", userID).
		Where(sq.Eq{"id": itemID}).
		Where(openItem))
}

func (s *SQLiteStore) closeItem(ctx context.Context, update sq.UpdateBuilder) (bool, error) {
	stmt, args, err := update.ToSql()
	if err != nil {
		return false, fmt.Errorf("build item close: %w", err)
	}
	res, err := s.q(ctx).ExecContext(ctx, stmt, args...)
	if err != nil {
		return false, mapError(err, "close item")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}

func scanItem(row scanner) (*models.Item, error) {
	item := &models.Item{}
	var purchasedBy, cancelledBy, merchantID sql.NullString
	var purchasedAt sql.NullInt64
	if err := row.Scan(&item.ID, &item.GroupID, &item.Description, &item.Quantity, &item.RequestedBy,
		&purchasedBy, &cancelledBy, &merchantID, &item.RequestedAt, &purchasedAt); err != nil {
		return nil, err
	}
	item.PurchasedBy = purchasedBy.String
	item.CancelledBy = cancelledBy.String
	item.MerchantID = merchantID.String
	item.PurchasedAt = purchasedAt.Int64
	return item, nil
}
