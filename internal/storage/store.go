// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/shoplist/internal/models"
)

// Errors returned by every Store implementation. Constraint violations are
// reported as ErrDuplicate, never as driver-specific errors. ErrNotFound is
// the domain sentinel so callers can test for it without translation.
var (
	ErrNotFound  = models.ErrNotFound
	ErrDuplicate = errors.New("record already exists")
)

// TxRunner runs fn inside a transaction carried by the context passed to fn.
// Store calls made with that context join the transaction. A nested RunInTx
// joins the outer transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// GroupStore persists groups and their member and leader sets.
type GroupStore interface {
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	GetGroupByName(ctx context.Context, name string) (*models.Group, error)
	GroupExists(ctx context.Context, groupID string) (bool, error)
	ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error)
	ListGroupsByManager(ctx context.Context, userID string) ([]*models.Group, error)
	SetGroupDisabled(ctx context.Context, groupID string, disabled bool) error
	AddGroupMember(ctx context.Context, groupID, userID string) error
	RemoveGroupMember(ctx context.Context, groupID, userID string) error
	AddGroupLeader(ctx context.Context, groupID, userID string) error
	RemoveGroupLeader(ctx context.Context, groupID, userID string) error
	CountGroupMembers(ctx context.Context, groupID string) (int, error)
	DeleteGroup(ctx context.Context, groupID string) error
}

// CatalogStore persists merchants, categories and reference items.
type CatalogStore interface {
	CreateMerchant(ctx context.Context, merchant *models.Merchant) error
	GetMerchant(ctx context.Context, merchantID string) (*models.Merchant, error)
	GetMerchantByName(ctx context.Context, groupID, name string) (*models.Merchant, error)
	ListMerchants(ctx context.Context, groupID string) ([]*models.Merchant, error)
	RenameMerchant(ctx context.Context, merchantID, name string) error
	DeleteMerchant(ctx context.Context, merchantID string) error

	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategory(ctx context.Context, categoryID string) (*models.Category, error)
	ListCategories(ctx context.Context, groupID string, activeOnly bool) ([]*models.Category, error)
	SetCategoryActive(ctx context.Context, categoryID string, active bool) error

	CreateReferenceItem(ctx context.Context, ref *models.ReferenceItem) error
	ListReferenceItems(ctx context.Context, groupID string) ([]*models.ReferenceItem, error)
}

// ItemFilter selects items of one group.
type ItemFilter struct {
	GroupID string
	// State restricts the result to one lifecycle state; empty means all.
	State models.ItemState
	// Limit caps the number of rows; zero means no limit.
	Limit  int
	Offset int
}

// ItemStore persists items.
type ItemStore interface {
	CreateItem(ctx context.Context, item *models.Item) error
	GetItem(ctx context.Context, itemID string) (*models.Item, error)
	// FindOpenItem returns the open item of the group whose description
	// matches case-insensitively, or ErrNotFound.
	FindOpenItem(ctx context.Context, groupID, description string) (*models.Item, error)
	ListItems(ctx context.Context, filter ItemFilter) ([]*models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	// MarkItemPurchased and MarkItemCancelled only touch open items and
	// report whether a row changed.
	MarkItemPurchased(ctx context.Context, itemID, userID string, at int64) (bool, error)
	MarkItemCancelled(ctx context.Context, itemID, userID string) (bool, error)
}

// SupportStore persists support tickets.
type SupportStore interface {
	CreateTicket(ctx context.Context, ticket *models.SupportTicket) error
	GetTicket(ctx context.Context, ticketID string) (*models.SupportTicket, error)
	UpdateTicket(ctx context.Context, ticket *models.SupportTicket) error
	CountTicketsByUser(ctx context.Context, userID string) (int, error)
	ListTicketsByUser(ctx context.Context, userID string) ([]*models.SupportTicket, error)
}

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
}

// SessionStore is a key-value store scoped per user session.
type SessionStore interface {
	// Get returns the value and whether it was present.
	Get(ctx context.Context, sessionID, key string) (string, bool, error)
	Set(ctx context.Context, sessionID, key, value string) error
	Delete(ctx context.Context, sessionID, key string) error
}

// Store defines the full set of persistence operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	TxRunner
	GroupStore
	CatalogStore
	ItemStore
	SupportStore
	UserStore

	// Close releases any resources held by the store.
	Close() error
}
