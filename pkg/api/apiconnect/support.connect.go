package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/shoplist/pkg/api"
)

// SupportServiceName is the fully-qualified name of the SupportService service.
const SupportServiceName = "shoplist.v1.SupportService"

// Procedures of SupportService.
const (
	SupportServiceRaiseTicketProcedure   = "/shoplist.v1.SupportService/RaiseTicket"
	SupportServiceListTicketsProcedure   = "/shoplist.v1.SupportService/ListTickets"
	SupportServiceStartTicketProcedure   = "/shoplist.v1.SupportService/StartTicket"
	SupportServiceResolveTicketProcedure = "/shoplist.v1.SupportService/ResolveTicket"
)

// SupportServiceHandler is implemented by the server.
type SupportServiceHandler interface {
	RaiseTicket(context.Context, *connect.Request[api.RaiseTicketRequest]) (*connect.Response[api.RaiseTicketResponse], error)
	ListTickets(context.Context, *connect.Request[api.ListTicketsRequest]) (*connect.Response[api.ListTicketsResponse], error)
	StartTicket(context.Context, *connect.Request[api.StartTicketRequest]) (*connect.Response[api.TicketResponse], error)
	ResolveTicket(context.Context, *connect.Request[api.ResolveTicketRequest]) (*connect.Response[api.TicketResponse], error)
}

// NewSupportServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewSupportServiceHandler(svc SupportServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + SupportServiceName + "/", routes{
		SupportServiceRaiseTicketProcedure:   connect.NewUnaryHandler(SupportServiceRaiseTicketProcedure, svc.RaiseTicket, opts...),
		SupportServiceListTicketsProcedure:   connect.NewUnaryHandler(SupportServiceListTicketsProcedure, svc.ListTickets, opts...),
		SupportServiceStartTicketProcedure:   connect.NewUnaryHandler(SupportServiceStartTicketProcedure, svc.StartTicket, opts...),
		SupportServiceResolveTicketProcedure: connect.NewUnaryHandler(SupportServiceResolveTicketProcedure, svc.ResolveTicket, opts...),
	}
}

// SupportServiceClient is a client for the SupportService service.
type SupportServiceClient struct {
	raiseTicket   *connect.Client[api.RaiseTicketRequest, api.RaiseTicketResponse]
	listTickets   *connect.Client[api.ListTicketsRequest, api.ListTicketsResponse]
	startTicket   *connect.Client[api.StartTicketRequest, api.TicketResponse]
	resolveTicket *connect.Client[api.ResolveTicketRequest, api.TicketResponse]
}

// NewSupportServiceClient constructs a client for the SupportService service.
func NewSupportServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SupportServiceClient {
	opts = clientOptions(opts)
	return &SupportServiceClient{
		raiseTicket:   connect.NewClient[api.RaiseTicketRequest, api.RaiseTicketResponse](httpClient, baseURL+SupportServiceRaiseTicketProcedure, opts...),
		listTickets:   connect.NewClient[api.ListTicketsRequest, api.ListTicketsResponse](httpClient, baseURL+SupportServiceListTicketsProcedure, opts...),
		startTicket:   connect.NewClient[api.StartTicketRequest, api.TicketResponse](httpClient, baseURL+SupportServiceStartTicketProcedure, opts...),
		resolveTicket: connect.NewClient[api.ResolveTicketRequest, api.TicketResponse](httpClient, baseURL+SupportServiceResolveTicketProcedure, opts...),
	}
}

func (c *SupportServiceClient) RaiseTicket(ctx context.Context, req *connect.Request[api.RaiseTicketRequest]) (*connect.Response[api.RaiseTicketResponse], error) {
	return c.raiseTicket.CallUnary(ctx, req)
}

func (c *SupportServiceClient) ListTickets(ctx context.Context, req *connect.Request[api.ListTicketsRequest]) (*connect.Response[api.ListTicketsResponse], error) {
	return c.listTickets.CallUnary(ctx, req)
}

func (c *SupportServiceClient) StartTicket(ctx context.Context, req *connect.Request[api.StartTicketRequest]) (*connect.Response[api.TicketResponse], error) {
	return c.startTicket.CallUnary(ctx, req)
}

func (c *SupportServiceClient) ResolveTicket(ctx context.Context, req *connect.Request[api.ResolveTicketRequest]) (*connect.Response[api.TicketResponse], error) {
	return c.resolveTicket.CallUnary(ctx, req)
}
