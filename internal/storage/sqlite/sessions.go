package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/mmynk/shoplist/internal/storage"
)

// SessionStore keeps per-session values in the sessions table.
type SessionStore struct {
	s *SQLiteStore
}

var _ storage.SessionStore = (*SessionStore)(nil)

// Sessions returns a session store backed by the same database.
func (s *SQLiteStore) Sessions() *SessionStore {
	return &SessionStore{s: s}
}

// Get returns the value stored under key for the session.
func (ss *SessionStore) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	var value string
	err := ss.s.q(ctx).QueryRowContext(ctx,
		"SELECT value FROM sessions WHERE session_id = ? AND key = ?", sessionID, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, mapError(err, "get session value")
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (ss *SessionStore) Set(ctx context.Context, sessionID, key, value string) error {
	_, err := ss.s.q(ctx).ExecContext(ctx,
		`INSERT INTO sessions (session_id, key, value, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (session_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		sessionID, key, value, time.Now().Unix(),
	)
	return mapError(err, "set session value")
}

// Delete removes key from the session. Deleting a missing key is a no-op.
func (ss *SessionStore) Delete(ctx context.Context, sessionID, key string) error {
	_, err := ss.s.q(ctx).ExecContext(ctx,
		"DELETE FROM sessions WHERE session_id = ? AND key = ?", sessionID, key)
	return mapError(err, "delete session value")
}
