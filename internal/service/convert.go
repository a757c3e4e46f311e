package service

import (
	"github.com/mmynk/shoplist/internal/models"
	"github.com/mmynk/shoplist/pkg/api"
)

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

func toAPIGroup(g *models.Group, managerName string) *api.Group {
	return &api.Group{
		ID:        g.ID,
		Name:      g.Name,
		Purpose:   g.Purpose,
		Info:      g.Info(managerName),
		ManagerID: g.ManagerID,
		Members:   g.Members,
		Leaders:   g.Leaders,
		Disabled:  g.Disabled,
		CreatedAt: g.CreatedAt,
	}
}

func toAPIItem(i *models.Item) *api.Item {
	return &api.Item{
		ID:          i.ID,
		GroupID:     i.GroupID,
		Description: i.Description,
		Quantity:    i.Quantity,
		State:       string(i.State()),
		RequestedBy: i.RequestedBy,
		PurchasedBy: i.PurchasedBy,
		CancelledBy: i.CancelledBy,
		MerchantID:  i.MerchantID,
		RequestedAt: i.RequestedAt,
		PurchasedAt: i.PurchasedAt,
	}
}

func toAPIItems(items []*models.Item) []*api.Item {
	out := make([]*api.Item, len(items))
	for i, item := range items {
		out[i] = toAPIItem(item)
	}
	return out
}

func toAPIMerchant(m *models.Merchant) *api.Merchant {
	return &api.Merchant{
		ID:        m.ID,
		GroupID:   m.GroupID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
}

func toAPICategory(c *models.Category) *api.Category {
	return &api.Category{
		ID:      c.ID,
		GroupID: c.GroupID,
		Name:    c.Name,
		Active:  c.Active,
	}
}

func toAPIReferenceItem(r *models.ReferenceItem) *api.ReferenceItem {
	return &api.ReferenceItem{
		ID:             r.ID,
		GroupID:        r.GroupID,
		CategoryID:     r.CategoryID,
		Description:    r.Description,
		Recommendation: r.Recommendation,
		CreatedBy:      r.CreatedBy,
		CreatedAt:      r.CreatedAt,
	}
}

func toAPITicket(t *models.SupportTicket) *api.Ticket {
	return &api.Ticket{
		ID:         t.ID,
		RaisedBy:   t.RaisedBy,
		Issue:      t.Issue,
		InProgress: t.InProgress,
		Resolved:   t.Resolved,
		Resolution: t.Resolution,
		RaisedAt:   t.RaisedAt,
		ClosedAt:   t.ClosedAt,
	}
}

func toAPINotice(n *models.Notice) *api.Notice {
	return &api.Notice{Kind: string(n.Kind), Message: n.Message}
}
