package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/shoplist/pkg/api"
)

// GroupServiceName is the fully-qualified name of the GroupService service.
const GroupServiceName = "shoplist.v1.GroupService"

// Procedures of GroupService.
const (
	GroupServiceCreateGroupProcedure    = "/shoplist.v1.GroupService/CreateGroup"
	GroupServiceGetGroupProcedure       = "/shoplist.v1.GroupService/GetGroup"
	GroupServiceListGroupsProcedure     = "/shoplist.v1.GroupService/ListGroups"
	GroupServiceAddMemberProcedure      = "/shoplist.v1.GroupService/AddMember"
	GroupServiceRemoveMemberProcedure   = "/shoplist.v1.GroupService/RemoveMember"
	GroupServiceLeaveGroupProcedure     = "/shoplist.v1.GroupService/LeaveGroup"
	GroupServiceAddLeaderProcedure      = "/shoplist.v1.GroupService/AddLeader"
	GroupServiceRemoveLeaderProcedure   = "/shoplist.v1.GroupService/RemoveLeader"
	GroupServiceDeleteGroupProcedure    = "/shoplist.v1.GroupService/DeleteGroup"
	GroupServiceActivateGroupProcedure  = "/shoplist.v1.GroupService/ActivateGroup"
	GroupServiceSelectGroupProcedure    = "/shoplist.v1.GroupService/SelectGroup"
	GroupServiceGetActiveGroupProcedure = "/shoplist.v1.GroupService/GetActiveGroup"
)

// GroupServiceHandler is implemented by the server.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	AddMember(context.Context, *connect.Request[api.MembershipRequest]) (*connect.Response[api.MembershipResponse], error)
	RemoveMember(context.Context, *connect.Request[api.MembershipRequest]) (*connect.Response[api.MembershipResponse], error)
	LeaveGroup(context.Context, *connect.Request[api.LeaveGroupRequest]) (*connect.Response[api.MembershipResponse], error)
	AddLeader(context.Context, *connect.Request[api.MembershipRequest]) (*connect.Response[api.MembershipResponse], error)
	RemoveLeader(context.Context, *connect.Request[api.MembershipRequest]) (*connect.Response[api.MembershipResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
	ActivateGroup(context.Context, *connect.Request[api.ActivateGroupRequest]) (*connect.Response[api.ActivateGroupResponse], error)
	SelectGroup(context.Context, *connect.Request[api.SelectGroupRequest]) (*connect.Response[api.SelectGroupResponse], error)
	GetActiveGroup(context.Context, *connect.Request[api.GetActiveGroupRequest]) (*connect.Response[api.GetActiveGroupResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + GroupServiceName + "/", routes{
		GroupServiceCreateGroupProcedure:    connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...),
		GroupServiceGetGroupProcedure:       connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opts...),
		GroupServiceListGroupsProcedure:     connect.NewUnaryHandler(GroupServiceListGroupsProcedure, svc.ListGroups, opts...),
		GroupServiceAddMemberProcedure:      connect.NewUnaryHandler(GroupServiceAddMemberProcedure, svc.AddMember, opts...),
		GroupServiceRemoveMemberProcedure:   connect.NewUnaryHandler(GroupServiceRemoveMemberProcedure, svc.RemoveMember, opts...),
		GroupServiceLeaveGroupProcedure:     connect.NewUnaryHandler(GroupServiceLeaveGroupProcedure, svc.LeaveGroup, opts...),
		GroupServiceAddLeaderProcedure:      connect.NewUnaryHandler(GroupServiceAddLeaderProcedure, svc.AddLeader, opts...),
		GroupServiceRemoveLeaderProcedure:   connect.NewUnaryHandler(GroupServiceRemoveLeaderProcedure, svc.RemoveLeader, opts...),
		GroupServiceDeleteGroupProcedure:    connect.NewUnaryHandler(GroupServiceDeleteGroupProcedure, svc.DeleteGroup, opts...),
		GroupServiceActivateGroupProcedure:  connect.NewUnaryHandler(GroupServiceActivateGroupProcedure, svc.ActivateGroup, opts...),
		GroupServiceSelectGroupProcedure:    connect.NewUnaryHandler(GroupServiceSelectGroupProcedure, svc.SelectGroup, opts...),
		GroupServiceGetActiveGroupProcedure: connect.NewUnaryHandler(GroupServiceGetActiveGroupProcedure, svc.GetActiveGroup, opts...),
	}
}

// GroupServiceClient is a client for the GroupService service.
type GroupServiceClient struct {
	createGroup    *connect.Client[api.CreateGroupRequest, api.CreateGroupResponse]
	getGroup       *connect.Client[api.GetGroupRequest, api.GetGroupResponse]
	listGroups     *connect.Client[api.ListGroupsRequest, api.ListGroupsResponse]
	addMember      *connect.Client[api.MembershipRequest, api.MembershipResponse]
	removeMember   *connect.Client[api.MembershipRequest, api.MembershipResponse]
	leaveGroup     *connect.Client[api.LeaveGroupRequest, api.MembershipResponse]
	addLeader      *connect.Client[api.MembershipRequest, api.MembershipResponse]
	removeLeader   *connect.Client[api.MembershipRequest, api.MembershipResponse]
	deleteGroup    *connect.Client[api.DeleteGroupRequest, api.DeleteGroupResponse]
	activateGroup  *connect.Client[api.ActivateGroupRequest, api.ActivateGroupResponse]
	selectGroup    *connect.Client[api.SelectGroupRequest, api.SelectGroupResponse]
	getActiveGroup *connect.Client[api.GetActiveGroupRequest, api.GetActiveGroupResponse]
}

// NewGroupServiceClient constructs a client for the GroupService service.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GroupServiceClient {
	opts = clientOptions(opts)
	return &GroupServiceClient{
		createGroup:    connect.NewClient[api.CreateGroupRequest, api.CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		getGroup:       connect.NewClient[api.GetGroupRequest, api.GetGroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opts...),
		listGroups:     connect.NewClient[api.ListGroupsRequest, api.ListGroupsResponse](httpClient, baseURL+GroupServiceListGroupsProcedure, opts...),
		addMember:      connect.NewClient[api.MembershipRequest, api.MembershipResponse](httpClient, baseURL+GroupServiceAddMemberProcedure, opts...),
		removeMember:   connect.NewClient[api.MembershipRequest, api.MembershipResponse](httpClient, baseURL+GroupServiceRemoveMemberProcedure, opts...),
		leaveGroup:     connect.NewClient[api.LeaveGroupRequest, api.MembershipResponse](httpClient, baseURL+GroupServiceLeaveGroupProcedure, opts...),
		addLeader:      connect.NewClient[api.MembershipRequest, api.MembershipResponse](httpClient, baseURL+GroupServiceAddLeaderProcedure, opts...),
		removeLeader:   connect.NewClient[api.MembershipRequest, api.MembershipResponse](httpClient, baseURL+GroupServiceRemoveLeaderProcedure, opts...),
		deleteGroup:    connect.NewClient[api.DeleteGroupRequest, api.DeleteGroupResponse](httpClient, baseURL+GroupServiceDeleteGroupProcedure, opts...),
		activateGroup:  connect.NewClient[api.ActivateGroupRequest, api.ActivateGroupResponse](httpClient, baseURL+GroupServiceActivateGroupProcedure, opts...),
		selectGroup:    connect.NewClient[api.SelectGroupRequest, api.SelectGroupResponse](httpClient, baseURL+GroupServiceSelectGroupProcedure, opts...),
		getActiveGroup: connect.NewClient[api.GetActiveGroupRequest, api.GetActiveGroupResponse](httpClient, baseURL+GroupServiceGetActiveGroupProcedure, opts...),
	}
}

func (c *GroupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *GroupServiceClient) AddMember(ctx context.Context, req *connect.Request[api.MembershipRequest]) (*connect.Response[api.MembershipResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *GroupServiceClient) RemoveMember(ctx context.Context, req *connect.Request[api.MembershipRequest]) (*connect.Response[api.MembershipResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}

func (c *GroupServiceClient) LeaveGroup(ctx context.Context, req *connect.Request[api.LeaveGroupRequest]) (*connect.Response[api.MembershipResponse], error) {
	return c.leaveGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) AddLeader(ctx context.Context, req *connect.Request[api.MembershipRequest]) (*connect.Response[api.MembershipResponse], error) {
	return c.addLeader.CallUnary(ctx, req)
}

func (c *GroupServiceClient) RemoveLeader(ctx context.Context, req *connect.Request[api.MembershipRequest]) (*connect.Response[api.MembershipResponse], error) {
	return c.removeLeader.CallUnary(ctx, req)
}

func (c *GroupServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ActivateGroup(ctx context.Context, req *connect.Request[api.ActivateGroupRequest]) (*connect.Response[api.ActivateGroupResponse], error) {
	return c.activateGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) SelectGroup(ctx context.Context, req *connect.Request[api.SelectGroupRequest]) (*connect.Response[api.SelectGroupResponse], error) {
	return c.selectGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) GetActiveGroup(ctx context.Context, req *connect.Request[api.GetActiveGroupRequest]) (*connect.Response[api.GetActiveGroupResponse], error) {
	return c.getActiveGroup.CallUnary(ctx, req)
}
