package models

// Merchant represents a shop that items can be requested from.
type Merchant struct {
	// ID is the unique identifier for the merchant (UUID format).
	ID string

	// Name is the merchant name. Unique within a group, case-insensitively.
	Name string

	// GroupID is the group this merchant belongs to.
	GroupID string

	// CreatedAt is the Unix timestamp when the merchant was added.
	CreatedAt int64
}

// Category groups reference items. Inactive categories are hidden from
// selection but never deleted.
type Category struct {
	ID      string
	Name    string
	GroupID string
	Active  bool
}

// ReferenceItem is an entry in a group's catalog of suggested items.
// It is independent of Item and has no lifecycle.
type ReferenceItem struct {
	ID             string
	Description    string
	Recommendation string

	// CategoryID is required and must belong to the same group.
	CategoryID string

	// CreatedBy is the user who added the entry; empty if unknown.
	CreatedBy string

	GroupID   string
	CreatedAt int64
}
