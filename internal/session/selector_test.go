package session_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/shoplist/internal/models"
	"github.com/mmynk/shoplist/internal/registry"
	"github.com/mmynk/shoplist/internal/session"
	"github.com/mmynk/shoplist/internal/storage/sqlite"
)

type fixture struct {
	store    *sqlite.SQLiteStore
	groups   *registry.Service
	selector *session.Selector
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	groups := registry.NewService(log, store)
	return &fixture{
		store:    store,
		groups:   groups,
		selector: session.NewSelector(log, store.Sessions(), groups),
	}
}

func (f *fixture) createGroup(t *testing.T, name, creator string) *models.Group {
	t.Helper()
	g, err := f.groups.CreateGroup(context.Background(), registry.CreateGroupInput{Name: name, Purpose: "test"}, creator)
	require.NoError(t, err)
	return g
}

func TestResolveActiveGroup_NoGroups(t *testing.T) {
	f := newFixture(t)

	groupID, err := f.selector.ResolveActiveGroup(context.Background(), "s1", "alice")
	require.NoError(t, err)
	assert.Empty(t, groupID)
}

func TestResolveActiveGroup_PicksFirstByName(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.createGroup(t, "Zoo", "alice")
	first := f.createGroup(t, "attic", "alice")

	groupID, err := f.selector.ResolveActiveGroup(ctx, "s1", "alice")
	require.NoError(t, err)
	assert.Equal(t, first.ID, groupID)

	cached, ok, err := f.store.Sessions().Get(ctx, "s1", "list")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first.ID, cached)
}

func TestResolveActiveGroup_ClearsStaleSelection(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	g := f.createGroup(t, "Flat", "alice")
	require.NoError(t, f.selector.SelectGroup(ctx, "s1", "alice", g.ID))
	require.NoError(t, f.groups.DeleteGroup(ctx, g.ID, "alice"))

	groupID, err := f.selector.ResolveActiveGroup(ctx, "s1", "alice")
	require.NoError(t, err)
	assert.Empty(t, groupID)

	_, ok, err := f.store.Sessions().Get(ctx, "s1", "list")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolveActiveGroup_FormerMemberMovesOn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	alpha := f.createGroup(t, "Alpha", "alice")
	zeta := f.createGroup(t, "Zeta", "carol")
	require.NoError(t, f.groups.AddMember(ctx, alpha.ID, "bob", "alice"))
	require.NoError(t, f.groups.AddMember(ctx, zeta.ID, "bob", "carol"))

	require.NoError(t, f.selector.SelectGroup(ctx, "s1", "bob", alpha.ID))
	_, err := f.groups.RemoveMember(ctx, alpha.ID, "bob", "alice")
	require.NoError(t, err)

	groupID, err := f.selector.ResolveActiveGroup(ctx, "s1", "bob")
	require.NoError(t, err)
	assert.Equal(t, zeta.ID, groupID)

	cached, ok, err := f.store.Sessions().Get(ctx, "s1", "list")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, zeta.ID, cached)
}

func TestResolveActiveGroup_FormerMemberWithoutGroups(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	alpha := f.createGroup(t, "Alpha", "alice")
	require.NoError(t, f.groups.AddMember(ctx, alpha.ID, "bob", "alice"))
	require.NoError(t, f.selector.SelectGroup(ctx, "s1", "bob", alpha.ID))
	_, err := f.groups.RemoveMember(ctx, alpha.ID, "bob", "alice")
	require.NoError(t, err)

	groupID, err := f.selector.ResolveActiveGroup(ctx, "s1", "bob")
	require.NoError(t, err)
	assert.Empty(t, groupID)

	_, ok, err := f.store.Sessions().Get(ctx, "s1", "list")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSelectGroup(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	a := f.createGroup(t, "Alpha", "alice")
	b := f.createGroup(t, "Beta", "alice")
	other := f.createGroup(t, "Other", "bob")

	require.NoError(t, f.selector.SelectGroup(ctx, "s1", "alice", b.ID))
	groupID, err := f.selector.ResolveActiveGroup(ctx, "s1", "alice")
	require.NoError(t, err)
	assert.Equal(t, b.ID, groupID)

	// last write wins
	require.NoError(t, f.selector.SelectGroup(ctx, "s1", "alice", a.ID))
	groupID, err = f.selector.ResolveActiveGroup(ctx, "s1", "alice")
	require.NoError(t, err)
	assert.Equal(t, a.ID, groupID)

	err = f.selector.SelectGroup(ctx, "s1", "alice", other.ID)
	assert.ErrorIs(t, err, models.ErrPermission)

	err = f.selector.SelectGroup(ctx, "s1", "alice", "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)

	groupID, err = f.selector.ResolveActiveGroup(ctx, "s1", "alice")
	require.NoError(t, err)
	assert.Equal(t, a.ID, groupID)
}

func TestClearSelection(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.createGroup(t, "Alpha", "alice")
	b := f.createGroup(t, "Beta", "alice")
	require.NoError(t, f.selector.SelectGroup(ctx, "s1", "alice", b.ID))
	require.NoError(t, f.selector.ClearSelection(ctx, "s1"))

	_, ok, err := f.store.Sessions().Get(ctx, "s1", "list")
	require.NoError(t, err)
	assert.False(t, ok)
}
