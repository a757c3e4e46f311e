package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/shoplist/internal/models"
	"github.com/mmynk/shoplist/internal/storage"
)

const groupColumns = "id, name, purpose, manager_id, disabled, created_at"

// CreateGroup persists a new group together with its members and leaders.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	// Generate IDs if not set
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	return s.RunInTx(ctx, func(ctx context.Context) error {
		_, err := s.q(ctx).ExecContext(ctx,
			"INSERT INTO shop_groups (id, name, name_key, purpose, manager_id, disabled, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			group.ID, group.Name, models.FoldName(group.Name), group.Purpose, group.ManagerID, boolToInt(group.Disabled), group.CreatedAt,
		)
		if err != nil {
			return mapError(err, "insert group")
		}

		for _, userID := range group.Members {
			if err := s.AddGroupMember(ctx, group.ID, userID); err != nil {
				return err
			}
		}
		for _, userID := range group.Leaders {
			if err := s.AddGroupLeader(ctx, group.ID, userID); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetGroup retrieves a group by ID, including members and leaders.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	row := s.q(ctx).QueryRowContext(ctx,
		"SELECT "+groupColumns+" FROM shop_groups WHERE id = ?", groupID)
	group, err := scanGroup(row)
	if err != nil {
		return nil, mapError(err, "get group "+groupID)
	}
	if err := s.loadRoles(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// GetGroupByName retrieves a group by name. Names are compared by their
// case-folded key, which also covers non-ASCII letters.
func (s *SQLiteStore) GetGroupByName(ctx context.Context, name string) (*models.Group, error) {
	row := s.q(ctx).QueryRowContext(ctx,
		"SELECT "+groupColumns+" FROM shop_groups WHERE name_key = ?", models.FoldName(name))
	group, err := scanGroup(row)
	if err != nil {
		return nil, mapError(err, "get group by name")
	}
	if err := s.loadRoles(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// GroupExists reports whether a group with the given ID exists.
func (s *SQLiteStore) GroupExists(ctx context.Context, groupID string) (bool, error) {
	var exists int
	err := s.q(ctx).QueryRowContext(ctx, "SELECT 1 FROM shop_groups WHERE id = ?", groupID).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, mapError(err, "check group existence")
	}
	return true, nil
}

// ListGroupsByMember returns the groups the user belongs to, ordered by name.
func (s *SQLiteStore) ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error) {
	return s.listGroups(ctx,
		`SELECT g.id, g.name, g.purpose, g.manager_id, g.disabled, g.created_at
		 FROM shop_groups g JOIN group_members m ON m.group_id = g.id
		 WHERE m.user_id = ?
		 ORDER BY g.name COLLATE NOCASE, g.id`,
		userID,
	)
}

// ListGroupsByManager returns the groups the user manages, ordered by name.
func (s *SQLiteStore) ListGroupsByManager(ctx context.Context, userID string) ([]*models.Group, error) {
	return s.listGroups(ctx,
		"SELECT "+groupColumns+" FROM shop_groups WHERE manager_id = ? ORDER BY name COLLATE NOCASE, id",
		userID,
	)
}

// SetGroupDisabled updates the disabled flag of a group.
func (s *SQLiteStore) SetGroupDisabled(ctx context.Context, groupID string, disabled bool) error {
	res, err := s.q(ctx).ExecContext(ctx,
		"UPDATE shop_groups SET disabled = ? WHERE id = ?", boolToInt(disabled), groupID)
	if err != nil {
		return mapError(err, "update group")
	}
	return expectRow(res, "group "+groupID)
}

// AddGroupMember adds a user to a group. Adding an existing member is a no-op.
func (s *SQLiteStore) AddGroupMember(ctx context.Context, groupID, userID string) error {
	_, err := s.q(ctx).ExecContext(ctx,
		"INSERT OR IGNORE INTO group_members (group_id, user_id) VALUES (?, ?)", groupID, userID)
	return mapError(err, "insert group member")
}

// RemoveGroupMember removes a user from a group, including any leadership.
func (s *SQLiteStore) RemoveGroupMember(ctx context.Context, groupID, userID string) error {
	return s.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.RemoveGroupLeader(ctx, groupID, userID); err != nil {
			return err
		}
		_, err := s.q(ctx).ExecContext(ctx,
			"DELETE FROM group_members WHERE group_id = ? AND user_id = ?", groupID, userID)
		return mapError(err, "delete group member")
	})
}

// AddGroupLeader makes a member a leader. The user must already be a member.
func (s *SQLiteStore) AddGroupLeader(ctx context.Context, groupID, userID string) error {
	_, err := s.q(ctx).ExecContext(ctx,
		"INSERT OR IGNORE INTO group_leaders (group_id, user_id) VALUES (?, ?)", groupID, userID)
	return mapError(err, "insert group leader")
}

// RemoveGroupLeader drops the leader role of a user.
func (s *SQLiteStore) RemoveGroupLeader(ctx context.Context, groupID, userID string) error {
	_, err := s.q(ctx).ExecContext(ctx,
		"DELETE FROM group_leaders WHERE group_id = ? AND user_id = ?", groupID, userID)
	return mapError(err, "delete group leader")
}

// CountGroupMembers returns the number of members of a group.
func (s *SQLiteStore) CountGroupMembers(ctx context.Context, groupID string) (int, error) {
	var n int
	err := s.q(ctx).QueryRowContext(ctx,
		"SELECT COUNT(*) FROM group_members WHERE group_id = ?", groupID).Scan(&n)
	if err != nil {
		return 0, mapError(err, "count group members")
	}
	return n, nil
}

// DeleteGroup removes a group and everything it owns.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, groupID string) error {
	exists, err := s.GroupExists(ctx, groupID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}

	// Children first: reference items point at categories.
	stmts := []string{
		"DELETE FROM reference_items WHERE group_id = ?",
		"DELETE FROM items WHERE group_id = ?",
		"DELETE FROM categories WHERE group_id = ?",
		"DELETE FROM merchants WHERE group_id = ?",
		"DELETE FROM group_leaders WHERE group_id = ?",
		"DELETE FROM group_members WHERE group_id = ?",
		"DELETE FROM shop_groups WHERE id = ?",
	}
	return s.RunInTx(ctx, func(ctx context.Context) error {
		for _, stmt := range stmts {
			if _, err := s.q(ctx).ExecContext(ctx, stmt, groupID); err != nil {
				return mapError(err, "delete group")
			}
		}
		return nil
	})
}

func (s *SQLiteStore) listGroups(ctx context.Context, query string, args ...any) ([]*models.Group, error) {
	rows, err := s.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "list groups")
	}

	var groups []*models.Group
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	// Roles are loaded after the cursor is closed; the store runs on one connection.
	for _, group := range groups {
		if err := s.loadRoles(ctx, group); err != nil {
			return nil, err
		}
	}
	return groups, nil
}

// loadRoles fills the member and leader lists of a group.
func (s *SQLiteStore) loadRoles(ctx context.Context, group *models.Group) error {
	members, err := s.userIDs(ctx, "SELECT user_id FROM group_members WHERE group_id = ? ORDER BY user_id", group.ID)
	if err != nil {
		return fmt.Errorf("failed to get members: %w", err)
	}
	leaders, err := s.userIDs(ctx, "SELECT user_id FROM group_leaders WHERE group_id = ? ORDER BY user_id", group.ID)
	if err != nil {
		return fmt.Errorf("failed to get leaders: %w", err)
	}
	group.Members = members
	group.Leaders = leaders
	return nil
}

func (s *SQLiteStore) userIDs(ctx context.Context, query, groupID string) ([]string, error) {
	rows, err := s.q(ctx).QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGroup(row scanner) (*models.Group, error) {
	group := &models.Group{}
	var disabled int
	if err := row.Scan(&group.ID, &group.Name, &group.Purpose, &group.ManagerID, &disabled, &group.CreatedAt); err != nil {
		return nil, err
	}
	group.Disabled = disabled != 0
	return group, nil
}

// expectRow returns storage.ErrNotFound when an update or delete matched nothing.
func expectRow(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, storage.ErrNotFound)
	}
	return nil
}
