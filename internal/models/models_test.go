package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"milk", "Milk"},
		{"  whole   MILK ", "Whole Milk"},
		{"Corner shop", "Corner Shop"},
		{"   ", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.in))
		})
	}
}

func TestItemState(t *testing.T) {
	item := &Item{Description: "Milk", Quantity: "2"}
	assert.True(t, item.ToPurchase())
	assert.Equal(t, ItemOpen, item.State())
	assert.Equal(t, "Milk [2]", item.NameQty())

	cancelled := &Item{Description: "Milk", CancelledBy: "bob"}
	assert.False(t, cancelled.ToPurchase())
	assert.Equal(t, ItemCancelled, cancelled.State())
	assert.Equal(t, "Milk", cancelled.NameQty())

	purchased := &Item{Description: "Milk", PurchasedBy: "bob", PurchasedAt: 1700000000}
	assert.False(t, purchased.ToPurchase())
	assert.Equal(t, ItemPurchased, purchased.State())
}

func TestGroupRoles(t *testing.T) {
	g := &Group{
		Purpose:   "Weekly groceries",
		ManagerID: "alice",
		Members:   []string{"alice", "bob"},
		Leaders:   []string{"alice"},
	}

	assert.True(t, g.IsMember("bob"))
	assert.False(t, g.IsLeader("bob"))
	assert.True(t, g.IsManager("alice"))
	assert.False(t, g.IsManager(""))
	assert.True(t, g.LeadersAreMembers())
	assert.Equal(t, "Created by Alice - Weekly groceries", g.Info("Alice"))

	g.Leaders = append(g.Leaders, "carol")
	assert.False(t, g.LeadersAreMembers())
}

func TestOutcome(t *testing.T) {
	created := Created(&Item{ID: "i1"})
	assert.False(t, created.IsNotice())
	assert.Equal(t, "i1", created.Value.ID)

	noticed := Noticed[Item](NoticeDuplicateItem, "Already listed : Milk")
	assert.True(t, noticed.IsNotice())
	assert.Nil(t, noticed.Value)
	assert.Equal(t, NoticeDuplicateItem, noticed.Notice.Kind)
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("name", "required")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "validation: name: required", err.Error())

	multi := &ValidationError{Errors: []FieldError{{"name", "required"}, {"purpose", "too long"}}}
	assert.Contains(t, multi.Error(), "2 errors")
}
