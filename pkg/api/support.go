package api

type RaiseTicketRequest struct {
	Issue string `json:"issue"`
}

// RaiseTicketResponse carries either the new ticket or a throttled notice.
type RaiseTicketResponse struct {
	Ticket *Ticket `json:"ticket,omitempty"`
	Notice *Notice `json:"notice,omitempty"`
}

type ListTicketsRequest struct{}

type ListTicketsResponse struct {
	Tickets []*Ticket `json:"tickets"`
}

type StartTicketRequest struct {
	TicketID string `json:"ticketId"`
}

type ResolveTicketRequest struct {
	TicketID   string `json:"ticketId"`
	Resolution string `json:"resolution"`
}

type TicketResponse struct {
	Ticket *Ticket `json:"ticket"`
}
