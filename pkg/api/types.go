package api

// User is the public view of an account.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   int64  `json:"createdAt"`
}

// Group is a shopping group.
type Group struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Purpose   string   `json:"purpose"`
	Info      string   `json:"info"`
	ManagerID string   `json:"managerId"`
	Members   []string `json:"members"`
	Leaders   []string `json:"leaders"`
	Disabled  bool     `json:"disabled"`
	CreatedAt int64    `json:"createdAt"`
}

// Item is an entry on a group's list.
type Item struct {
	ID          string `json:"id"`
	GroupID     string `json:"groupId"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	State       string `json:"state"`
	RequestedBy string `json:"requestedBy"`
	PurchasedBy string `json:"purchasedBy,omitempty"`
	CancelledBy string `json:"cancelledBy,omitempty"`
	MerchantID  string `json:"merchantId,omitempty"`
	RequestedAt int64  `json:"requestedAt"`
	PurchasedAt int64  `json:"purchasedAt,omitempty"`
}

// Merchant is a shop of a group.
type Merchant struct {
	ID        string `json:"id"`
	GroupID   string `json:"groupId"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"createdAt"`
}

// Category groups reference items.
type Category struct {
	ID      string `json:"id"`
	GroupID string `json:"groupId"`
	Name    string `json:"name"`
	Active  bool   `json:"active"`
}

// ReferenceItem is a suggested item in a group's catalog.
type ReferenceItem struct {
	ID             string `json:"id"`
	GroupID        string `json:"groupId"`
	CategoryID     string `json:"categoryId"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
	CreatedBy      string `json:"createdBy,omitempty"`
	CreatedAt      int64  `json:"createdAt"`
}

// Ticket is a support request.
type Ticket struct {
	ID         string `json:"id"`
	RaisedBy   string `json:"raisedBy"`
	Issue      string `json:"issue"`
	InProgress bool   `json:"inProgress"`
	Resolved   bool   `json:"resolved"`
	Resolution string `json:"resolution,omitempty"`
	RaisedAt   int64  `json:"raisedAt"`
	ClosedAt   int64  `json:"closedAt,omitempty"`
}

// Notice is a soft, user-facing outcome returned instead of a new entity.
type Notice struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
