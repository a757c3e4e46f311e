package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/shoplist/internal/models"
	"github.com/mmynk/shoplist/internal/support"
	"github.com/mmynk/shoplist/pkg/api"
	"github.com/mmynk/shoplist/pkg/api/apiconnect"
)

var _ apiconnect.SupportServiceHandler = (*SupportService)(nil)

// SupportService implements the Connect SupportService. Starting and
// resolving tickets is reserved for support admins.
type SupportService struct {
	support *support.Service
	isAdmin func(userID string) bool
	logger  *slog.Logger
}

// NewSupportService creates a new SupportService.
func NewSupportService(support *support.Service, isAdmin func(userID string) bool, logger *slog.Logger) *SupportService {
	return &SupportService{
		support: support,
		isAdmin: isAdmin,
		logger:  logger.With("service", "support_rpc"),
	}
}

// RaiseTicket logs an issue, or returns a notice when the caller is throttled.
func (s *SupportService) RaiseTicket(ctx context.Context, req *connect.Request[api.RaiseTicketRequest]) (*connect.Response[api.RaiseTicketResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	out, err := s.support.RaiseTicket(ctx, c.UserID, req.Msg.Issue)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "RaiseTicket", err)
	}

	resp := &api.RaiseTicketResponse{}
	if out.IsNotice() {
		resp.Notice = toAPINotice(out.Notice)
	} else {
		resp.Ticket = toAPITicket(out.Value)
	}
	return connect.NewResponse(resp), nil
}

// ListTickets lists the caller's tickets.
func (s *SupportService) ListTickets(ctx context.Context, req *connect.Request[api.ListTicketsRequest]) (*connect.Response[api.ListTicketsResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	tickets, err := s.support.ListTickets(ctx, c.UserID)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "ListTickets", err)
	}

	out := make([]*api.Ticket, len(tickets))
	for i, t := range tickets {
		out[i] = toAPITicket(t)
	}
	return connect.NewResponse(&api.ListTicketsResponse{Tickets: out}), nil
}

func (s *SupportService) StartTicket(ctx context.Context, req *connect.Request[api.StartTicketRequest]) (*connect.Response[api.TicketResponse], error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, toConnectError(ctx, s.logger, "StartTicket", err)
	}
	ticket, err := s.support.StartTicket(ctx, req.Msg.TicketID)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "StartTicket", err)
	}
	return connect.NewResponse(&api.TicketResponse{Ticket: toAPITicket(ticket)}), nil
}

func (s *SupportService) ResolveTicket(ctx context.Context, req *connect.Request[api.ResolveTicketRequest]) (*connect.Response[api.TicketResponse], error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, toConnectError(ctx, s.logger, "ResolveTicket", err)
	}
	ticket, err := s.support.ResolveTicket(ctx, req.Msg.TicketID, req.Msg.Resolution)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "ResolveTicket", err)
	}
	return connect.NewResponse(&api.TicketResponse{Ticket: toAPITicket(ticket)}), nil
}

func (s *SupportService) requireAdmin(ctx context.Context) error {
	c, err := callerFrom(ctx)
	if err != nil {
		return err
	}
	if s.isAdmin == nil || !s.isAdmin(c.UserID) {
		return models.ErrPermission
	}
	return nil
}
