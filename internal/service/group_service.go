package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/shoplist/internal/models"
	"github.com/mmynk/shoplist/internal/registry"
	"github.com/mmynk/shoplist/internal/session"
	"github.com/mmynk/shoplist/pkg/api"
	"github.com/mmynk/shoplist/pkg/api/apiconnect"
)

var _ apiconnect.GroupServiceHandler = (*GroupService)(nil)

// UserDirectory looks up several accounts at once.
type UserDirectory interface {
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
}

// GroupService implements the Connect GroupService.
type GroupService struct {
	groups   *registry.Service
	selector *session.Selector
	users    UserDirectory
	logger   *slog.Logger
}

// NewGroupService creates a new GroupService.
func NewGroupService(groups *registry.Service, selector *session.Selector, users UserDirectory, logger *slog.Logger) *GroupService {
	return &GroupService{
		groups:   groups,
		selector: selector,
		users:    users,
		logger:   logger.With("service", "group_rpc"),
	}
}

// CreateGroup creates a group managed by the caller and selects it.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}

	group, err := s.groups.CreateGroup(ctx, registry.CreateGroupInput{
		Name:    req.Msg.Name,
		Purpose: req.Msg.Purpose,
	}, c.UserID)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "CreateGroup", err)
	}

	// The group is committed; a failed selection is only logged.
	if err := s.selector.SelectGroup(ctx, c.SessionID, c.UserID, group.ID); err != nil {
		s.logger.WarnContext(ctx, "select new group failed",
			slog.String("group_id", group.ID),
			slog.String("error", err.Error()),
		)
	}

	return connect.NewResponse(&api.CreateGroupResponse{Group: s.toAPI(ctx, group)}), nil
}

// GetGroup returns a group the caller belongs to or manages.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}

	group, err := s.groups.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "GetGroup", err)
	}
	if !group.IsMember(c.UserID) && !group.IsManager(c.UserID) {
		return nil, toConnectError(ctx, s.logger, "GetGroup", models.ErrPermission)
	}

	return connect.NewResponse(&api.GetGroupResponse{Group: s.toAPI(ctx, group)}), nil
}

// ListGroups lists the groups the caller belongs to, or manages.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}

	var groups []*models.Group
	if req.Msg.Managed {
		groups, err = s.groups.ListManagedBy(ctx, c.UserID)
	} else {
		groups, err = s.groups.ListMemberOf(ctx, c.UserID)
	}
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "ListGroups", err)
	}

	return connect.NewResponse(&api.ListGroupsResponse{Groups: s.toAPIList(ctx, groups)}), nil
}

// AddMember adds a user to a group.
func (s *GroupService) AddMember(ctx context.Context, req *connect.Request[api.MembershipRequest]) (*connect.Response[api.MembershipResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	if err := s.groups.AddMember(ctx, req.Msg.GroupID, req.Msg.UserID, c.UserID); err != nil {
		return nil, toConnectError(ctx, s.logger, "AddMember", err)
	}
	return connect.NewResponse(&api.MembershipResponse{}), nil
}

// RemoveMember removes a user from a group.
func (s *GroupService) RemoveMember(ctx context.Context, req *connect.Request[api.MembershipRequest]) (*connect.Response[api.MembershipResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	deleted, err := s.groups.RemoveMember(ctx, req.Msg.GroupID, req.Msg.UserID, c.UserID)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "RemoveMember", err)
	}
	return connect.NewResponse(&api.MembershipResponse{GroupDeleted: deleted}), nil
}

// LeaveGroup removes the caller from a group.
func (s *GroupService) LeaveGroup(ctx context.Context, req *connect.Request[api.LeaveGroupRequest]) (*connect.Response[api.MembershipResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	deleted, err := s.groups.LeaveGroup(ctx, req.Msg.GroupID, c.UserID)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "LeaveGroup", err)
	}
	return connect.NewResponse(&api.MembershipResponse{GroupDeleted: deleted}), nil
}

// AddLeader promotes a member to leader.
func (s *GroupService) AddLeader(ctx context.Context, req *connect.Request[api.MembershipRequest]) (*connect.Response[api.MembershipResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	if err := s.groups.AddLeader(ctx, req.Msg.GroupID, req.Msg.UserID, c.UserID); err != nil {
		return nil, toConnectError(ctx, s.logger, "AddLeader", err)
	}
	return connect.NewResponse(&api.MembershipResponse{}), nil
}

// RemoveLeader demotes a leader.
func (s *GroupService) RemoveLeader(ctx context.Context, req *connect.Request[api.MembershipRequest]) (*connect.Response[api.MembershipResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	if err := s.groups.RemoveLeader(ctx, req.Msg.GroupID, req.Msg.UserID, c.UserID); err != nil {
		return nil, toConnectError(ctx, s.logger, "RemoveLeader", err)
	}
	return connect.NewResponse(&api.MembershipResponse{}), nil
}

// DeleteGroup deletes a group managed by the caller.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	if err := s.groups.DeleteGroup(ctx, req.Msg.GroupID, c.UserID); err != nil {
		return nil, toConnectError(ctx, s.logger, "DeleteGroup", err)
	}
	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

// ActivateGroup enables a group managed by the caller.
func (s *GroupService) ActivateGroup(ctx context.Context, req *connect.Request[api.ActivateGroupRequest]) (*connect.Response[api.ActivateGroupResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	group, err := s.groups.ActivateGroup(ctx, req.Msg.GroupID, c.UserID)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "ActivateGroup", err)
	}
	return connect.NewResponse(&api.ActivateGroupResponse{Group: s.toAPI(ctx, group)}), nil
}

// SelectGroup makes a group the session's active group.
func (s *GroupService) SelectGroup(ctx context.Context, req *connect.Request[api.SelectGroupRequest]) (*connect.Response[api.SelectGroupResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	if err := s.selector.SelectGroup(ctx, c.SessionID, c.UserID, req.Msg.GroupID); err != nil {
		return nil, toConnectError(ctx, s.logger, "SelectGroup", err)
	}
	return connect.NewResponse(&api.SelectGroupResponse{}), nil
}

// GetActiveGroup returns the session's active group, if any.
func (s *GroupService) GetActiveGroup(ctx context.Context, req *connect.Request[api.GetActiveGroupRequest]) (*connect.Response[api.GetActiveGroupResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}

	groupID, err := s.selector.ResolveActiveGroup(ctx, c.SessionID, c.UserID)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "GetActiveGroup", err)
	}
	if groupID == "" {
		return connect.NewResponse(&api.GetActiveGroupResponse{}), nil
	}

	group, err := s.groups.GetGroup(ctx, groupID)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "GetActiveGroup", err)
	}
	return connect.NewResponse(&api.GetActiveGroupResponse{Group: s.toAPI(ctx, group)}), nil
}

// toAPI converts a group, labelling it with the manager's display name.
func (s *GroupService) toAPI(ctx context.Context, g *models.Group) *api.Group {
	return s.toAPIList(ctx, []*models.Group{g})[0]
}

// toAPIList converts groups, looking up all manager names in one query.
// Unknown managers are labelled by their ID.
func (s *GroupService) toAPIList(ctx context.Context, groups []*models.Group) []*api.Group {
	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ManagerID)
	}
	users, err := s.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		s.logger.WarnContext(ctx, "load group managers failed", slog.String("error", err.Error()))
	}

	out := make([]*api.Group, len(groups))
	for i, g := range groups {
		name := g.ManagerID
		if u, ok := users[g.ManagerID]; ok {
			name = u.DisplayName
		}
		out[i] = toAPIGroup(g, name)
	}
	return out
}
