// Package session resolves which group a user session is working against.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/shoplist/internal/models"
	"github.com/mmynk/shoplist/internal/storage"
)

// activeGroupKey is the session key holding the selected group ID.
const activeGroupKey = "list"

// Groups is the part of the group registry the selector reads.
type Groups interface {
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	ListMemberOf(ctx context.Context, userID string) ([]*models.Group, error)
}

// Selector caches the active group per session.
type Selector struct {
	sessions storage.SessionStore
	groups   Groups
	log      *slog.Logger
}

// NewSelector creates a new Selector.
func NewSelector(log *slog.Logger, sessions storage.SessionStore, groups Groups) *Selector {
	return &Selector{
		sessions: sessions,
		groups:   groups,
		log:      log.With("service", "session"),
	}
}

// ResolveActiveGroup returns the group the session operates against, or ""
// when the user belongs to no group. A cached selection pointing at a deleted
// group, or at a group the user has since left, is cleared. Without a usable
// selection the user's first group by name is picked and cached.
func (s *Selector) ResolveActiveGroup(ctx context.Context, sessionID, userID string) (string, error) {
	groupID, ok, err := s.sessions.Get(ctx, sessionID, activeGroupKey)
	if err != nil {
		return "", fmt.Errorf("read session: %w", err)
	}

	if ok {
		group, err := s.groups.GetGroup(ctx, groupID)
		switch {
		case err == nil && group.IsMember(userID):
			return groupID, nil
		case err != nil && !errors.Is(err, models.ErrNotFound):
			return "", fmt.Errorf("check group: %w", err)
		}

		s.log.InfoContext(ctx, "clearing stale group selection",
			slog.String("session_id", sessionID),
			slog.String("group_id", groupID),
		)
		if err := s.sessions.Delete(ctx, sessionID, activeGroupKey); err != nil {
			return "", fmt.Errorf("clear session: %w", err)
		}
	}

	groups, err := s.groups.ListMemberOf(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(groups) == 0 {
		return "", nil
	}

	groupID = groups[0].ID
	if err := s.sessions.Set(ctx, sessionID, activeGroupKey, groupID); err != nil {
		return "", fmt.Errorf("write session: %w", err)
	}
	return groupID, nil
}

// SelectGroup overwrites the session's selection. The group must exist and
// the user must be one of its members. Concurrent selections in the same
// session are last-write-wins.
func (s *Selector) SelectGroup(ctx context.Context, sessionID, userID, groupID string) error {
	group, err := s.groups.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if !group.IsMember(userID) {
		return fmt.Errorf("select group %s: %w", groupID, models.ErrPermission)
	}

	if err := s.sessions.Set(ctx, sessionID, activeGroupKey, groupID); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// ClearSelection forgets the session's selection.
func (s *Selector) ClearSelection(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID, activeGroupKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
