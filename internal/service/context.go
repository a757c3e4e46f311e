package service

import (
	"context"

	"github.com/mmynk/shoplist/internal/auth"
	"github.com/mmynk/shoplist/internal/middleware"
	"github.com/mmynk/shoplist/internal/session"
)

// caller is the identity an RPC runs as.
type caller struct {
	UserID    string
	SessionID string
}

func callerFrom(ctx context.Context) (caller, error) {
	c := caller{
		UserID:    middleware.GetUserID(ctx),
		SessionID: middleware.GetSessionID(ctx),
	}
	if c.UserID == "" {
		return caller{}, auth.ErrMissingToken
	}
	// Tokens without a session claim share one session per user.
	if c.SessionID == "" {
		c.SessionID = "user:" + c.UserID
	}
	return c, nil
}

// groupResolver picks the group an RPC works on: the one named in the
// request, or else the session's active group.
type groupResolver struct {
	selector *session.Selector
}

func (r groupResolver) resolve(ctx context.Context, c caller, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	groupID, err := r.selector.ResolveActiveGroup(ctx, c.SessionID, c.UserID)
	if err != nil {
		return "", err
	}
	if groupID == "" {
		return "", errNoActiveGroup
	}
	return groupID, nil
}
