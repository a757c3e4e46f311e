package models

import "fmt"

// DefaultQuantity is used when an item is requested without a quantity.
const DefaultQuantity = "1"

// ItemState is the lifecycle state of an Item, derived from its fields.
type ItemState string

const (
	// ItemOpen is the initial state: neither purchased nor cancelled.
	ItemOpen ItemState = "open"
	// ItemPurchased is terminal.
	ItemPurchased ItemState = "purchased"
	// ItemCancelled is terminal.
	ItemCancelled ItemState = "cancelled"
)

// Item represents a purchase request within a group.
//
// The state is not stored. An item is open while PurchasedAt is zero and
// CancelledBy is empty; once either is set the item never becomes open again.
// Restoring a cancelled item means requesting a new one.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	ID string

	// Description is the title-cased name of the item (e.g., "Whole Milk").
	Description string

	// Quantity is free text (e.g., "2", "1kg"). Defaults to "1".
	Quantity string

	// GroupID is the group whose list the item is on.
	GroupID string

	// RequestedBy is the user who asked for the item. Required.
	RequestedBy string

	// PurchasedBy is the user who bought the item; empty while not purchased.
	PurchasedBy string

	// CancelledBy is the user who cancelled the item; empty while not cancelled.
	CancelledBy string

	// MerchantID is the preferred merchant; empty if none.
	MerchantID string

	// RequestedAt is the Unix timestamp when the item was requested.
	RequestedAt int64

	// PurchasedAt is the Unix timestamp of purchase; zero while not purchased.
	PurchasedAt int64
}

// ToPurchase reports whether the item is still open.
func (i *Item) ToPurchase() bool {
	return i.PurchasedAt == 0 && i.CancelledBy == ""
}

// State returns the lifecycle state of the item.
func (i *Item) State() ItemState {
	switch {
	case i.PurchasedAt != 0:
		return ItemPurchased
	case i.CancelledBy != "":
		return ItemCancelled
	default:
		return ItemOpen
	}
}

// NameQty returns the description followed by the quantity in brackets.
func (i *Item) NameQty() string {
	if i.Quantity == "" {
		return i.Description
	}
	return fmt.Sprintf("%s [%s]", i.Description, i.Quantity)
}
