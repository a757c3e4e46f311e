package api

type CreateMerchantRequest struct {
	GroupID string `json:"groupId,omitempty"`
	Name    string `json:"name"`
}

type RenameMerchantRequest struct {
	MerchantID string `json:"merchantId"`
	Name       string `json:"name"`
}

type MerchantResponse struct {
	Merchant *Merchant `json:"merchant"`
}

type ListMerchantsRequest struct {
	GroupID string `json:"groupId,omitempty"`
}

type ListMerchantsResponse struct {
	Merchants []*Merchant `json:"merchants"`
}

type DeleteMerchantRequest struct {
	MerchantID string `json:"merchantId"`
}

type DeleteMerchantResponse struct{}

type CreateCategoryRequest struct {
	GroupID string `json:"groupId,omitempty"`
	Name    string `json:"name"`
}

type SetCategoryActiveRequest struct {
	CategoryID string `json:"categoryId"`
	Active     bool   `json:"active"`
}

type CategoryResponse struct {
	Category *Category `json:"category"`
}

// ListCategoriesRequest lists active categories, or all with IncludeInactive.
type ListCategoriesRequest struct {
	GroupID         string `json:"groupId,omitempty"`
	IncludeInactive bool   `json:"includeInactive,omitempty"`
}

type ListCategoriesResponse struct {
	Categories []*Category `json:"categories"`
}

type CreateReferenceItemRequest struct {
	GroupID        string `json:"groupId,omitempty"`
	CategoryID     string `json:"categoryId"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation,omitempty"`
}

type CreateReferenceItemResponse struct {
	ReferenceItem *ReferenceItem `json:"referenceItem"`
}

type ListReferenceItemsRequest struct {
	GroupID string `json:"groupId,omitempty"`
}

type ListReferenceItemsResponse struct {
	ReferenceItems []*ReferenceItem `json:"referenceItems"`
}
