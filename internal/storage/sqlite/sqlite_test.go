package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mmynk/shoplist/internal/models"
	"github.com/mmynk/shoplist/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func createTestGroup(t *testing.T, store *SQLiteStore, name string) *models.Group {
	t.Helper()
	group := &models.Group{
		Name:      name,
		Purpose:   "Groceries",
		ManagerID: "alice",
		Members:   []string{"alice", "bob"},
		Leaders:   []string{"alice"},
		Disabled:  true,
	}
	if err := store.CreateGroup(context.Background(), group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	return group
}

func TestGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateGroup generates ID and stores roles", func(t *testing.T) {
		group := createTestGroup(t, store, "Flat")
		if group.ID == "" {
			t.Error("Expected group ID to be generated")
		}
		if group.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}

		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if got.Name != "Flat" || got.ManagerID != "alice" || !got.Disabled {
			t.Errorf("Unexpected group: %+v", got)
		}
		if len(got.Members) != 2 || len(got.Leaders) != 1 {
			t.Errorf("Expected 2 members and 1 leader, got %v / %v", got.Members, got.Leaders)
		}
	})

	t.Run("Group names are unique case-insensitively", func(t *testing.T) {
		createTestGroup(t, store, "Office")
		err := store.CreateGroup(ctx, &models.Group{Name: "OFFICE", ManagerID: "bob"})
		if !errors.Is(err, storage.ErrDuplicate) {
			t.Errorf("Expected ErrDuplicate, got %v", err)
		}

		got, err := store.GetGroupByName(ctx, "office")
		if err != nil {
			t.Fatalf("GetGroupByName failed: %v", err)
		}
		if got.Name != "Office" {
			t.Errorf("Expected Office, got %s", got.Name)
		}
	})

	t.Run("Group names fold non-ASCII case", func(t *testing.T) {
		createTestGroup(t, store, "Über Flat")
		err := store.CreateGroup(ctx, &models.Group{Name: "über flat", ManagerID: "bob"})
		if !errors.Is(err, storage.ErrDuplicate) {
			t.Errorf("Expected ErrDuplicate, got %v", err)
		}

		got, err := store.GetGroupByName(ctx, "ÜBER FLAT")
		if err != nil {
			t.Fatalf("GetGroupByName failed: %v", err)
		}
		if got.Name != "Über Flat" {
			t.Errorf("Expected the stored spelling, got %s", got.Name)
		}
	})

	t.Run("Leaders must be members", func(t *testing.T) {
		group := createTestGroup(t, store, "Club")
		err := store.AddGroupLeader(ctx, group.ID, "mallory")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for non-member leader, got %v", err)
		}
	})

	t.Run("Removing a member drops the leader role", func(t *testing.T) {
		group := createTestGroup(t, store, "Band")
		if err := store.RemoveGroupMember(ctx, group.ID, "alice"); err != nil {
			t.Fatalf("RemoveGroupMember failed: %v", err)
		}
		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if len(got.Leaders) != 0 {
			t.Errorf("Expected no leaders, got %v", got.Leaders)
		}
		n, err := store.CountGroupMembers(ctx, group.ID)
		if err != nil {
			t.Fatalf("CountGroupMembers failed: %v", err)
		}
		if n != 1 {
			t.Errorf("Expected 1 member, got %d", n)
		}
	})

	t.Run("ListGroupsByMember orders by name", func(t *testing.T) {
		groups, err := store.ListGroupsByMember(ctx, "bob")
		if err != nil {
			t.Fatalf("ListGroupsByMember failed: %v", err)
		}
		if len(groups) < 2 {
			t.Fatalf("Expected several groups, got %d", len(groups))
		}
		for i := 1; i < len(groups); i++ {
			if groups[i-1].Name > groups[i].Name {
				t.Errorf("Groups out of order: %s before %s", groups[i-1].Name, groups[i].Name)
			}
		}
	})

	t.Run("DeleteGroup removes everything the group owns", func(t *testing.T) {
		group := createTestGroup(t, store, "Doomed")
		merchant := &models.Merchant{GroupID: group.ID, Name: "Market"}
		if err := store.CreateMerchant(ctx, merchant); err != nil {
			t.Fatalf("CreateMerchant failed: %v", err)
		}
		item := &models.Item{GroupID: group.ID, Description: "Milk", RequestedBy: "alice", MerchantID: merchant.ID}
		if err := store.CreateItem(ctx, item); err != nil {
			t.Fatalf("CreateItem failed: %v", err)
		}

		if err := store.DeleteGroup(ctx, group.ID); err != nil {
			t.Fatalf("DeleteGroup failed: %v", err)
		}
		if _, err := store.GetGroup(ctx, group.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for deleted group, got %v", err)
		}
		if _, err := store.GetItem(ctx, item.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected item to be deleted, got %v", err)
		}
		if err := store.DeleteGroup(ctx, group.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestItems(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	group := createTestGroup(t, store, "Flat")

	t.Run("Only one open item per description", func(t *testing.T) {
		first := &models.Item{GroupID: group.ID, Description: "Bread", RequestedBy: "alice"}
		if err := store.CreateItem(ctx, first); err != nil {
			t.Fatalf("CreateItem failed: %v", err)
		}
		if first.Quantity != models.DefaultQuantity {
			t.Errorf("Expected default quantity, got %q", first.Quantity)
		}

		err := store.CreateItem(ctx, &models.Item{GroupID: group.ID, Description: "bread", RequestedBy: "bob"})
		if !errors.Is(err, storage.ErrDuplicate) {
			t.Fatalf("Expected ErrDuplicate, got %v", err)
		}

		found, err := store.FindOpenItem(ctx, group.ID, "BREAD")
		if err != nil {
			t.Fatalf("FindOpenItem failed: %v", err)
		}
		if found.ID != first.ID {
			t.Errorf("Expected %s, got %s", first.ID, found.ID)
		}

		changed, err := store.MarkItemPurchased(ctx, first.ID, "bob", 1700000000)
		if err != nil || !changed {
			t.Fatalf("MarkItemPurchased = %v, %v", changed, err)
		}
		changed, err = store.MarkItemCancelled(ctx, first.ID, "bob")
		if err != nil {
			t.Fatalf("MarkItemCancelled failed: %v", err)
		}
		if changed {
			t.Error("Closed items must not change state again")
		}

		again := &models.Item{GroupID: group.ID, Description: "Bread", RequestedBy: "bob"}
		if err := store.CreateItem(ctx, again); err != nil {
			t.Errorf("Expected a new open item after purchase, got %v", err)
		}
	})

	t.Run("ListItems filters by state", func(t *testing.T) {
		for _, desc := range []string{"Cheese", "apples"} {
			if err := store.CreateItem(ctx, &models.Item{GroupID: group.ID, Description: desc, RequestedBy: "alice"}); err != nil {
				t.Fatalf("CreateItem failed: %v", err)
			}
		}

		open, err := store.ListItems(ctx, storage.ItemFilter{GroupID: group.ID, State: models.ItemOpen})
		if err != nil {
			t.Fatalf("ListItems failed: %v", err)
		}
		var names []string
		for _, item := range open {
			names = append(names, item.Description)
		}
		want := []string{"apples", "Bread", "Cheese"}
		if len(names) != len(want) {
			t.Fatalf("Expected %v, got %v", want, names)
		}
		for i := range want {
			if names[i] != want[i] {
				t.Errorf("Expected %v, got %v", want, names)
				break
			}
		}

		page, err := store.ListItems(ctx, storage.ItemFilter{GroupID: group.ID, State: models.ItemOpen, Limit: 1, Offset: 1})
		if err != nil {
			t.Fatalf("ListItems failed: %v", err)
		}
		if len(page) != 1 || page[0].Description != "Bread" {
			t.Errorf("Unexpected page: %+v", page)
		}

		purchased, err := store.ListItems(ctx, storage.ItemFilter{GroupID: group.ID, State: models.ItemPurchased})
		if err != nil {
			t.Fatalf("ListItems failed: %v", err)
		}
		if len(purchased) != 1 {
			t.Errorf("Expected 1 purchased item, got %d", len(purchased))
		}
	})

	t.Run("DeleteMerchant detaches items", func(t *testing.T) {
		merchant := &models.Merchant{GroupID: group.ID, Name: "Bakery"}
		if err := store.CreateMerchant(ctx, merchant); err != nil {
			t.Fatalf("CreateMerchant failed: %v", err)
		}
		item := &models.Item{GroupID: group.ID, Description: "Rolls", RequestedBy: "alice", MerchantID: merchant.ID}
		if err := store.CreateItem(ctx, item); err != nil {
			t.Fatalf("CreateItem failed: %v", err)
		}

		if err := store.DeleteMerchant(ctx, merchant.ID); err != nil {
			t.Fatalf("DeleteMerchant failed: %v", err)
		}
		got, err := store.GetItem(ctx, item.ID)
		if err != nil {
			t.Fatalf("GetItem failed: %v", err)
		}
		if got.MerchantID != "" {
			t.Errorf("Expected merchant to be cleared, got %q", got.MerchantID)
		}
	})
}

func TestSessions(t *testing.T) {
	store := newTestStore(t)
	sessions := store.Sessions()
	ctx := context.Background()

	if _, ok, err := sessions.Get(ctx, "s1", "list"); err != nil || ok {
		t.Fatalf("Get on empty session = %v, %v", ok, err)
	}

	if err := sessions.Set(ctx, "s1", "list", "g1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := sessions.Set(ctx, "s1", "list", "g2"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value, ok, err := sessions.Get(ctx, "s1", "list")
	if err != nil || !ok || value != "g2" {
		t.Fatalf("Get = %q, %v, %v; want g2", value, ok, err)
	}

	if _, ok, _ := sessions.Get(ctx, "s2", "list"); ok {
		t.Error("Sessions must not share values")
	}

	if err := sessions.Delete(ctx, "s1", "list"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := sessions.Get(ctx, "s1", "list"); ok {
		t.Error("Expected value to be deleted")
	}
}

func TestUsersAndTickets(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("alice@example.com", "Alice", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	err := store.CreateUser(ctx, models.NewUser("ALICE@example.com", "Other", "hash"))
	if !errors.Is(err, storage.ErrDuplicate) {
		t.Errorf("Expected ErrDuplicate for same email, got %v", err)
	}
	if _, err := store.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	bob := models.NewUser("bob@example.com", "Bob", "hash")
	if err := store.CreateUser(ctx, bob); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	users, err := store.GetUsersByIDs(ctx, []string{user.ID, bob.ID, "missing"})
	if err != nil {
		t.Fatalf("GetUsersByIDs failed: %v", err)
	}
	if len(users) != 2 || users[user.ID].DisplayName != "Alice" || users[bob.ID].DisplayName != "Bob" {
		t.Errorf("Unexpected users %+v", users)
	}
	if users, err := store.GetUsersByIDs(ctx, nil); err != nil || len(users) != 0 {
		t.Errorf("Expected empty map for no IDs, got %v, %v", users, err)
	}

	for i := 0; i < 3; i++ {
		if err := store.CreateTicket(ctx, &models.SupportTicket{RaisedBy: user.ID, Issue: "help"}); err != nil {
			t.Fatalf("CreateTicket failed: %v", err)
		}
	}
	n, err := store.CountTicketsByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("CountTicketsByUser failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Expected 3 tickets, got %d", n)
	}
}
