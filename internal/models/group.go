package models

import (
	"fmt"
	"slices"
)

// Group represents a named collection of users sharing one shopping list.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group. Unique, compared case-insensitively.
	Name string

	// Purpose describes what the group is for (e.g., "Weekly groceries").
	Purpose string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64

	// ManagerID is the user who owns the group and may delete it.
	// The manager is usually, but not necessarily, a member.
	ManagerID string

	// Members is the list of user IDs in this group, ordered by ID.
	Members []string

	// Leaders is the list of user IDs with elevated privileges.
	// Always a subset of Members.
	Leaders []string

	// Disabled is set on creation and cleared when the manager activates the group.
	Disabled bool
}

// IsMember reports whether userID is one of the group's members.
func (g *Group) IsMember(userID string) bool {
	return slices.Contains(g.Members, userID)
}

// IsLeader reports whether userID is one of the group's leaders.
func (g *Group) IsLeader(userID string) bool {
	return slices.Contains(g.Leaders, userID)
}

// IsManager reports whether userID manages the group.
func (g *Group) IsManager(userID string) bool {
	return userID != "" && g.ManagerID == userID
}

// LeadersAreMembers reports whether every leader is also a member.
func (g *Group) LeadersAreMembers() bool {
	for _, l := range g.Leaders {
		if !g.IsMember(l) {
			return false
		}
	}
	return true
}

// Info returns a short human-readable description of the group.
func (g *Group) Info(managerName string) string {
	return fmt.Sprintf("Created by %s - %s", managerName, g.Purpose)
}
