package support

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/shoplist/internal/models"
	"github.com/mmynk/shoplist/internal/notify"
	"github.com/mmynk/shoplist/internal/storage/sqlite"
)

type recordingSender struct {
	sent []notify.Message
	err  error
}

func (r *recordingSender) Send(_ context.Context, msg notify.Message) error {
	r.sent = append(r.sent, msg)
	return r.err
}

func newTestService(t *testing.T, sender notify.Sender) *Service {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	svc := NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), store, sender, Config{
		NotifyTo: []string{"support@example.com"},
	})
	svc.now = func() time.Time { return time.Unix(1700000000, 0) }
	return svc
}

func TestRaiseTicket(t *testing.T) {
	ctx := context.Background()
	sender := &recordingSender{}
	svc := newTestService(t, sender)

	out, err := svc.RaiseTicket(ctx, "alice", "  The list does not load ")
	require.NoError(t, err)
	require.False(t, out.IsNotice())

	ticket := out.Value
	assert.NotEmpty(t, ticket.ID)
	assert.Equal(t, "alice", ticket.RaisedBy)
	assert.Equal(t, "The list does not load", ticket.Issue)
	assert.False(t, ticket.Resolved)
	assert.Equal(t, int64(1700000000), ticket.RaisedAt)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"support@example.com"}, sender.sent[0].To)
	assert.Contains(t, sender.sent[0].Body, "The list does not load")

	_, err = svc.RaiseTicket(ctx, "alice", "   ")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestRaiseTicket_NotifyFailureIsIgnored(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp down")}
	svc := newTestService(t, sender)

	out, err := svc.RaiseTicket(context.Background(), "alice", "help")
	require.NoError(t, err)
	assert.NotNil(t, out.Value)
}

func TestRaiseTicket_Throttled(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, notify.Discard{})

	for i := 0; i < 10; i++ {
		out, err := svc.RaiseTicket(ctx, "alice", fmt.Sprintf("issue %d", i))
		require.NoError(t, err)
		require.False(t, out.IsNotice(), "ticket %d throttled", i+1)
	}

	for i := 0; i < 2; i++ {
		out, err := svc.RaiseTicket(ctx, "alice", "one more")
		require.NoError(t, err)
		require.True(t, out.IsNotice())
		assert.Nil(t, out.Value)
		assert.Equal(t, models.NoticeThrottled, out.Notice.Kind)
		assert.Equal(t, throttledMessage, out.Notice.Message)
	}

	tickets, err := svc.ListTickets(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, tickets, 10)

	// Other users are unaffected.
	out, err := svc.RaiseTicket(ctx, "bob", "hello")
	require.NoError(t, err)
	assert.False(t, out.IsNotice())
}

func TestResolveTicket(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, notify.Discard{})

	out, err := svc.RaiseTicket(ctx, "alice", "broken")
	require.NoError(t, err)

	started, err := svc.StartTicket(ctx, out.Value.ID)
	require.NoError(t, err)
	assert.True(t, started.InProgress)

	resolved, err := svc.ResolveTicket(ctx, out.Value.ID, " fixed ")
	require.NoError(t, err)
	assert.True(t, resolved.Resolved)
	assert.False(t, resolved.InProgress)
	assert.Equal(t, "fixed", resolved.Resolution)
	assert.Equal(t, int64(1700000000), resolved.ClosedAt)

	_, err = svc.ResolveTicket(ctx, out.Value.ID, "again")
	assert.ErrorIs(t, err, models.ErrInvalidState)

	_, err = svc.StartTicket(ctx, out.Value.ID)
	assert.ErrorIs(t, err, models.ErrInvalidState)

	_, err = svc.ResolveTicket(ctx, "missing", "x")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
