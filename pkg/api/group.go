package api

type CreateGroupRequest struct {
	Name    string `json:"name"`
	Purpose string `json:"purpose"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

// ListGroupsRequest lists the caller's groups. With Managed set, only the
// groups the caller manages are returned.
type ListGroupsRequest struct {
	Managed bool `json:"managed"`
}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

// MembershipRequest names a group and a user for member and leader changes.
type MembershipRequest struct {
	GroupID string `json:"groupId"`
	UserID  string `json:"userId"`
}

type MembershipResponse struct {
	// GroupDeleted is set when removing the last member deleted the group.
	GroupDeleted bool `json:"groupDeleted,omitempty"`
}

type LeaveGroupRequest struct {
	GroupID string `json:"groupId"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"groupId"`
}

type DeleteGroupResponse struct{}

type ActivateGroupRequest struct {
	GroupID string `json:"groupId"`
}

type ActivateGroupResponse struct {
	Group *Group `json:"group"`
}

type SelectGroupRequest struct {
	GroupID string `json:"groupId"`
}

type SelectGroupResponse struct{}

type GetActiveGroupRequest struct{}

// GetActiveGroupResponse carries the session's group; nil when the caller
// belongs to no group.
type GetActiveGroupResponse struct {
	Group *Group `json:"group,omitempty"`
}
