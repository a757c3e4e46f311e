package catalog_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/shoplist/internal/catalog"
	"github.com/mmynk/shoplist/internal/models"
	"github.com/mmynk/shoplist/internal/registry"
	"github.com/mmynk/shoplist/internal/storage/sqlite"
)

type fixture struct {
	store   *sqlite.SQLiteStore
	groups  *registry.Service
	catalog *catalog.Service
	group   *models.Group
}

// newFixture returns a group managed by alice with bob as a plain member.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	groups := registry.NewService(log, store)

	group, err := groups.CreateGroup(ctx, registry.CreateGroupInput{Name: "Flat", Purpose: "Groceries"}, "alice")
	require.NoError(t, err)
	require.NoError(t, groups.AddMember(ctx, group.ID, "bob", "alice"))

	return &fixture{
		store:   store,
		groups:  groups,
		catalog: catalog.NewService(log, store, groups),
		group:   group,
	}
}

func TestCreateMerchant(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	m, err := f.catalog.CreateMerchant(ctx, f.group.ID, "  corner  shop ", "bob")
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "Corner Shop", m.Name)
	assert.Equal(t, f.group.ID, m.GroupID)

	_, err = f.catalog.CreateMerchant(ctx, f.group.ID, "Market", "mallory")
	assert.ErrorIs(t, err, models.ErrPermission)

	_, err = f.catalog.CreateMerchant(ctx, f.group.ID, "   ", "bob")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestCreateMerchant_Duplicate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.catalog.CreateMerchant(ctx, f.group.ID, "Acme", "alice")
	require.NoError(t, err)

	_, err = f.catalog.CreateMerchant(ctx, f.group.ID, "ACME", "bob")
	assert.ErrorIs(t, err, models.ErrDuplicateMerchant)

	merchants, err := f.catalog.ListMerchants(ctx, f.group.ID, "alice")
	require.NoError(t, err)
	assert.Len(t, merchants, 1)

	// The same name is free in another group.
	other, err := f.groups.CreateGroup(ctx, registry.CreateGroupInput{Name: "Office", Purpose: "Snacks"}, "alice")
	require.NoError(t, err)
	_, err = f.catalog.CreateMerchant(ctx, other.ID, "Acme", "alice")
	assert.NoError(t, err)
}

func TestRenameMerchant(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	acme, err := f.catalog.CreateMerchant(ctx, f.group.ID, "Acme", "alice")
	require.NoError(t, err)
	_, err = f.catalog.CreateMerchant(ctx, f.group.ID, "Bazaar", "alice")
	require.NoError(t, err)

	renamed, err := f.catalog.RenameMerchant(ctx, acme.ID, "acme market", "bob")
	require.NoError(t, err)
	assert.Equal(t, "Acme Market", renamed.Name)

	// Renaming to its own name in another case is allowed.
	_, err = f.catalog.RenameMerchant(ctx, acme.ID, "ACME MARKET", "bob")
	require.NoError(t, err)

	_, err = f.catalog.RenameMerchant(ctx, acme.ID, "bazaar", "bob")
	assert.ErrorIs(t, err, models.ErrDuplicateMerchant)
}

func TestDeleteMerchant(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	m, err := f.catalog.CreateMerchant(ctx, f.group.ID, "Acme", "alice")
	require.NoError(t, err)

	err = f.catalog.DeleteMerchant(ctx, m.ID, "bob")
	assert.ErrorIs(t, err, models.ErrPermission)

	require.NoError(t, f.catalog.DeleteMerchant(ctx, m.ID, "alice"))

	merchants, err := f.catalog.ListMerchants(ctx, f.group.ID, "alice")
	require.NoError(t, err)
	assert.Empty(t, merchants)

	err = f.catalog.DeleteMerchant(ctx, m.ID, "alice")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCategories(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	dairy, err := f.catalog.CreateCategory(ctx, f.group.ID, "dairy", "bob")
	require.NoError(t, err)
	assert.True(t, dairy.Active)
	assert.Equal(t, "Dairy", dairy.Name)

	_, err = f.catalog.CreateCategory(ctx, f.group.ID, "bakery", "bob")
	require.NoError(t, err)

	_, err = f.catalog.SetCategoryActive(ctx, dairy.ID, false, "bob")
	assert.ErrorIs(t, err, models.ErrPermission)

	hidden, err := f.catalog.SetCategoryActive(ctx, dairy.ID, false, "alice")
	require.NoError(t, err)
	assert.False(t, hidden.Active)

	active, err := f.catalog.ListActiveCategories(ctx, f.group.ID, "bob")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Bakery", active[0].Name)

	all, err := f.catalog.ListAllCategories(ctx, f.group.ID, "bob")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Bakery", all[0].Name)
	assert.Equal(t, "Dairy", all[1].Name)
}

func TestReferenceItems(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	dairy, err := f.catalog.CreateCategory(ctx, f.group.ID, "Dairy", "alice")
	require.NoError(t, err)

	ref, err := f.catalog.CreateReferenceItem(ctx, catalog.CreateReferenceInput{
		GroupID:        f.group.ID,
		CategoryID:     dairy.ID,
		Description:    "oat milk",
		Recommendation: " the barista one ",
	}, "bob")
	require.NoError(t, err)
	assert.Equal(t, "Oat Milk", ref.Description)
	assert.Equal(t, "the barista one", ref.Recommendation)
	assert.Equal(t, "bob", ref.CreatedBy)

	other, err := f.groups.CreateGroup(ctx, registry.CreateGroupInput{Name: "Office", Purpose: "Snacks"}, "alice")
	require.NoError(t, err)
	_, err = f.catalog.CreateReferenceItem(ctx, catalog.CreateReferenceInput{
		GroupID:     other.ID,
		CategoryID:  dairy.ID,
		Description: "Butter",
	}, "alice")
	assert.ErrorIs(t, err, models.ErrValidation)

	refs, err := f.catalog.ListReferenceItems(ctx, f.group.ID, "alice")
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, ref.ID, refs[0].ID)
}
