package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/shoplist/internal/models"
)

// AddMember adds user to the group. The actor must be a leader or the manager.
func (s *Service) AddMember(ctx context.Context, groupID, user, actor string) error {
	if user == "" {
		return models.NewValidationError("user", "required")
	}
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		group, err := s.GetGroup(ctx, groupID)
		if err != nil {
			return err
		}
		if err := canManageMembers(group, actor); err != nil {
			return err
		}
		if err := s.store.AddGroupMember(ctx, groupID, user); err != nil {
			return fmt.Errorf("add member: %w", err)
		}
		return s.checkLeaders(ctx, groupID)
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "member added",
		slog.String("group_id", groupID),
		slog.String("user_id", user),
		slog.String("by", actor),
	)
	return nil
}

// RemoveMember removes user from the group, together with any leader role.
// Users may always remove themselves; removing someone else takes a leader
// or the manager. Removing the last member deletes the group, which is
// reported by the returned bool.
func (s *Service) RemoveMember(ctx context.Context, groupID, user, actor string) (bool, error) {
	var deleted bool
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		group, err := s.GetGroup(ctx, groupID)
		if err != nil {
			return err
		}
		if actor != user {
			if err := canManageMembers(group, actor); err != nil {
				return err
			}
		}
		if !group.IsMember(user) {
			return fmt.Errorf("member %s of group %s: %w", user, groupID, models.ErrNotFound)
		}

		if err := s.store.RemoveGroupMember(ctx, groupID, user); err != nil {
			return fmt.Errorf("remove member: %w", err)
		}

		remaining, err := s.store.CountGroupMembers(ctx, groupID)
		if err != nil {
			return fmt.Errorf("count members: %w", err)
		}
		if remaining == 0 {
			if err := s.store.DeleteGroup(ctx, groupID); err != nil {
				return fmt.Errorf("delete empty group: %w", err)
			}
			deleted = true
			return nil
		}
		return s.checkLeaders(ctx, groupID)
	})
	if err != nil {
		return false, err
	}

	s.log.InfoContext(ctx, "member removed",
		slog.String("group_id", groupID),
		slog.String("user_id", user),
		slog.String("by", actor),
		slog.Bool("group_deleted", deleted),
	)
	return deleted, nil
}

// LeaveGroup removes the user from the group on their own behalf.
func (s *Service) LeaveGroup(ctx context.Context, groupID, user string) (bool, error) {
	return s.RemoveMember(ctx, groupID, user, user)
}

// AddLeader promotes a member to leader. Fails with ErrInvalidLeader if the
// user is not a member.
func (s *Service) AddLeader(ctx context.Context, groupID, user, actor string) error {
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		group, err := s.GetGroup(ctx, groupID)
		if err != nil {
			return err
		}
		if err := canManageMembers(group, actor); err != nil {
			return err
		}
		if !group.IsMember(user) {
			return fmt.Errorf("user %s: %w", user, models.ErrInvalidLeader)
		}
		if err := s.store.AddGroupLeader(ctx, groupID, user); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return fmt.Errorf("user %s: %w", user, models.ErrInvalidLeader)
			}
			return fmt.Errorf("add leader: %w", err)
		}
		return s.checkLeaders(ctx, groupID)
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "leader added",
		slog.String("group_id", groupID),
		slog.String("user_id", user),
		slog.String("by", actor),
	)
	return nil
}

// RemoveLeader drops the leader role of user. The user stays a member.
func (s *Service) RemoveLeader(ctx context.Context, groupID, user, actor string) error {
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		group, err := s.GetGroup(ctx, groupID)
		if err != nil {
			return err
		}
		if err := canManageMembers(group, actor); err != nil {
			return err
		}
		if err := s.store.RemoveGroupLeader(ctx, groupID, user); err != nil {
			return fmt.Errorf("remove leader: %w", err)
		}
		return s.checkLeaders(ctx, groupID)
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "leader removed",
		slog.String("group_id", groupID),
		slog.String("user_id", user),
		slog.String("by", actor),
	)
	return nil
}

// checkLeaders fails the surrounding transaction if a leader is not a member.
func (s *Service) checkLeaders(ctx context.Context, groupID string) error {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if !group.LeadersAreMembers() {
		return fmt.Errorf("group %s: %w", groupID, models.ErrInvalidLeader)
	}
	return nil
}

func canManageMembers(group *models.Group, actor string) error {
	if group.IsLeader(actor) || group.IsManager(actor) {
		return nil
	}
	return fmt.Errorf("manage members of group %s: %w", group.ID, models.ErrPermission)
}
