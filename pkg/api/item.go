package api

// RequestItemRequest asks for an item. An empty GroupID means the session's
// active group.
type RequestItemRequest struct {
	GroupID     string `json:"groupId,omitempty"`
	Description string `json:"description"`
	Quantity    string `json:"quantity,omitempty"`
	MerchantID  string `json:"merchantId,omitempty"`
}

// RequestItemResponse carries either the new item or a duplicate notice.
type RequestItemResponse struct {
	Item   *Item   `json:"item,omitempty"`
	Notice *Notice `json:"notice,omitempty"`
}

type GetItemRequest struct {
	ItemID string `json:"itemId"`
}

type GetItemResponse struct {
	Item *Item `json:"item"`
}

// ListItemsRequest lists items of one state ("open", "purchased" or
// "cancelled"; default "open"). Limit and Offset page open items.
type ListItemsRequest struct {
	GroupID string `json:"groupId,omitempty"`
	State   string `json:"state,omitempty"`
	Limit   int    `json:"limit,omitempty"`
	Offset  int    `json:"offset,omitempty"`
}

type ListItemsResponse struct {
	Items []*Item `json:"items"`
}

type MarkItemRequest struct {
	ItemID string `json:"itemId"`
}

type MarkItemResponse struct {
	Item *Item `json:"item"`
}

// UpdateItemRequest changes the fields that are set.
type UpdateItemRequest struct {
	ItemID      string  `json:"itemId"`
	Description *string `json:"description,omitempty"`
	Quantity    *string `json:"quantity,omitempty"`
	MerchantID  *string `json:"merchantId,omitempty"`
}

type UpdateItemResponse struct {
	Item *Item `json:"item"`
}
