package registry

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/shoplist/internal/models"
	"github.com/mmynk/shoplist/internal/storage/sqlite"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, _ := newTestServiceWithStore(t)
	return svc
}

func newTestServiceWithStore(t *testing.T) (*Service, *sqlite.SQLiteStore) {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), store), store
}

type groupChildren struct {
	merchant  *models.Merchant
	category  *models.Category
	reference *models.ReferenceItem
	item      *models.Item
}

// seedChildren gives the group one row of everything it owns.
func seedChildren(t *testing.T, store *sqlite.SQLiteStore, groupID string) groupChildren {
	t.Helper()
	ctx := context.Background()
	c := groupChildren{
		merchant: &models.Merchant{GroupID: groupID, Name: "Market"},
		category: &models.Category{GroupID: groupID, Name: "Dairy", Active: true},
	}
	require.NoError(t, store.CreateMerchant(ctx, c.merchant))
	require.NoError(t, store.CreateCategory(ctx, c.category))

	c.reference = &models.ReferenceItem{GroupID: groupID, CategoryID: c.category.ID, Description: "Butter"}
	require.NoError(t, store.CreateReferenceItem(ctx, c.reference))

	c.item = &models.Item{GroupID: groupID, Description: "Milk", RequestedBy: "alice", MerchantID: c.merchant.ID}
	require.NoError(t, store.CreateItem(ctx, c.item))
	return c
}

func requireChildrenGone(t *testing.T, store *sqlite.SQLiteStore, groupID string, c groupChildren) {
	t.Helper()
	ctx := context.Background()

	_, err := store.GetMerchant(ctx, c.merchant.ID)
	assert.ErrorIs(t, err, models.ErrNotFound, "merchant")
	_, err = store.GetCategory(ctx, c.category.ID)
	assert.ErrorIs(t, err, models.ErrNotFound, "category")
	_, err = store.GetItem(ctx, c.item.ID)
	assert.ErrorIs(t, err, models.ErrNotFound, "item")

	refs, err := store.ListReferenceItems(ctx, groupID)
	require.NoError(t, err)
	assert.Empty(t, refs, "reference items")
}

func requireLeadersAreMembers(t *testing.T, svc *Service, groupID string) {
	t.Helper()
	group, err := svc.GetGroup(context.Background(), groupID)
	require.NoError(t, err)
	assert.True(t, group.LeadersAreMembers(), "leaders %v not within members %v", group.Leaders, group.Members)
}

func TestCreateGroup(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	group, err := svc.CreateGroup(ctx, CreateGroupInput{Name: "  Flat  42 ", Purpose: "Weekly groceries"}, "alice")
	require.NoError(t, err)

	assert.NotEmpty(t, group.ID)
	assert.Equal(t, "Flat 42", group.Name)
	assert.Equal(t, "alice", group.ManagerID)
	assert.Equal(t, []string{"alice"}, group.Members)
	assert.Equal(t, []string{"alice"}, group.Leaders)
	assert.True(t, group.Disabled)

	stored, err := svc.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, group.Name, stored.Name)
	assert.True(t, stored.Disabled)
	requireLeadersAreMembers(t, svc, group.ID)
}

func TestCreateGroup_DuplicateName(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.CreateGroup(ctx, CreateGroupInput{Name: "Flat 42", Purpose: "Groceries"}, "alice")
	require.NoError(t, err)

	_, err = svc.CreateGroup(ctx, CreateGroupInput{Name: "FLAT 42", Purpose: "Other"}, "bob")
	assert.ErrorIs(t, err, models.ErrDuplicateName)

	groups, err := svc.ListMemberOf(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestCreateGroup_DuplicateNonASCIIName(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.CreateGroup(ctx, CreateGroupInput{Name: "Über Flat", Purpose: "Groceries"}, "alice")
	require.NoError(t, err)

	_, err = svc.CreateGroup(ctx, CreateGroupInput{Name: "über  FLAT", Purpose: "Other"}, "bob")
	assert.ErrorIs(t, err, models.ErrDuplicateName)

	groups, err := svc.ListMemberOf(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestCreateGroup_Validation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateGroup(context.Background(), CreateGroupInput{Name: "   "}, "alice")
	require.ErrorIs(t, err, models.ErrValidation)

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Errors, 2)
}

func TestMembership(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	group, err := svc.CreateGroup(ctx, CreateGroupInput{Name: "Flat", Purpose: "Groceries"}, "alice")
	require.NoError(t, err)

	t.Run("non-leader cannot add members", func(t *testing.T) {
		err := svc.AddMember(ctx, group.ID, "carol", "mallory")
		assert.ErrorIs(t, err, models.ErrPermission)
	})

	t.Run("leader adds member", func(t *testing.T) {
		require.NoError(t, svc.AddMember(ctx, group.ID, "bob", "alice"))
		ok, err := svc.IsMember(ctx, group.ID, "bob")
		require.NoError(t, err)
		assert.True(t, ok)
		requireLeadersAreMembers(t, svc, group.ID)
	})

	t.Run("adding a member twice is a no-op", func(t *testing.T) {
		require.NoError(t, svc.AddMember(ctx, group.ID, "bob", "alice"))
		g, err := svc.GetGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"alice", "bob"}, g.Members)
	})

	t.Run("leader must be a member", func(t *testing.T) {
		err := svc.AddLeader(ctx, group.ID, "carol", "alice")
		assert.ErrorIs(t, err, models.ErrInvalidLeader)
		requireLeadersAreMembers(t, svc, group.ID)
	})

	t.Run("promote and demote", func(t *testing.T) {
		require.NoError(t, svc.AddLeader(ctx, group.ID, "bob", "alice"))
		ok, err := svc.IsLeader(ctx, group.ID, "bob")
		require.NoError(t, err)
		assert.True(t, ok)

		require.NoError(t, svc.RemoveLeader(ctx, group.ID, "bob", "alice"))
		ok, err = svc.IsLeader(ctx, group.ID, "bob")
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = svc.IsMember(ctx, group.ID, "bob")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("removing a leader drops the role", func(t *testing.T) {
		require.NoError(t, svc.AddLeader(ctx, group.ID, "bob", "alice"))

		deleted, err := svc.RemoveMember(ctx, group.ID, "bob", "alice")
		require.NoError(t, err)
		assert.False(t, deleted)

		ok, err := svc.IsLeader(ctx, group.ID, "bob")
		require.NoError(t, err)
		assert.False(t, ok)
		requireLeadersAreMembers(t, svc, group.ID)
	})

	t.Run("removing a non-member", func(t *testing.T) {
		_, err := svc.RemoveMember(ctx, group.ID, "zed", "alice")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestRemoveLastMemberDeletesGroup(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestServiceWithStore(t)

	group, err := svc.CreateGroup(ctx, CreateGroupInput{Name: "Solo", Purpose: "Just me"}, "alice")
	require.NoError(t, err)
	children := seedChildren(t, store, group.ID)

	deleted, err := svc.LeaveGroup(ctx, group.ID, "alice")
	require.NoError(t, err)
	assert.True(t, deleted)

	exists, err := svc.GroupExists(ctx, group.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = svc.GetGroup(ctx, group.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	requireChildrenGone(t, store, group.ID, children)
}

func TestDeleteGroup(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestServiceWithStore(t)

	group, err := svc.CreateGroup(ctx, CreateGroupInput{Name: "Flat", Purpose: "Groceries"}, "alice")
	require.NoError(t, err)
	children := seedChildren(t, store, group.ID)
	require.NoError(t, svc.AddMember(ctx, group.ID, "bob", "alice"))
	require.NoError(t, svc.AddLeader(ctx, group.ID, "bob", "alice"))

	err = svc.DeleteGroup(ctx, group.ID, "bob")
	assert.ErrorIs(t, err, models.ErrPermission)

	require.NoError(t, svc.DeleteGroup(ctx, group.ID, "alice"))

	exists, err := svc.GroupExists(ctx, group.ID)
	require.NoError(t, err)
	assert.False(t, exists)
	requireChildrenGone(t, store, group.ID, children)

	err = svc.DeleteGroup(ctx, group.ID, "alice")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestActivateGroup(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	group, err := svc.CreateGroup(ctx, CreateGroupInput{Name: "Flat", Purpose: "Groceries"}, "alice")
	require.NoError(t, err)

	_, err = svc.ActivateGroup(ctx, group.ID, "bob")
	assert.ErrorIs(t, err, models.ErrPermission)

	activated, err := svc.ActivateGroup(ctx, group.ID, "alice")
	require.NoError(t, err)
	assert.False(t, activated.Disabled)

	ok, err := svc.IsManager(ctx, group.ID, "alice")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestListGroups(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	for _, name := range []string{"zeta", "Alpha", "mid"} {
		_, err := svc.CreateGroup(ctx, CreateGroupInput{Name: name, Purpose: "p"}, "alice")
		require.NoError(t, err)
	}

	groups, err := svc.ListMemberOf(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, "Alpha", groups[0].Name)
	assert.Equal(t, "mid", groups[1].Name)
	assert.Equal(t, "zeta", groups[2].Name)

	managed, err := svc.ListManagedBy(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, managed, 3)
}
