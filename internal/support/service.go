// Package support records issues raised by users.
package support

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mmynk/shoplist/internal/metrics"
	"github.com/mmynk/shoplist/internal/models"
	"github.com/mmynk/shoplist/internal/notify"
	"github.com/mmynk/shoplist/internal/storage"
)

// DefaultMaxTickets is the number of logged tickets after which a user is throttled.
const DefaultMaxTickets = 10

const (
	maxIssueLen = 2000

	throttledMessage = "You have a number of outstanding requests already, please wait for these to be resolved"
)

// Store is the persistence the support log needs.
type Store interface {
	storage.TxRunner
	storage.SupportStore
}

// Config controls the support log.
type Config struct {
	// MaxTickets is how many tickets a user may log before being throttled.
	MaxTickets int
	// NotifyTo receives a notification for every new ticket.
	NotifyTo []string
}

// Service provides support ticket operations.
type Service struct {
	store  Store
	sender notify.Sender
	cfg    Config
	log    *slog.Logger
	now    func() time.Time
}

// NewService creates a new support service.
func NewService(log *slog.Logger, store Store, sender notify.Sender, cfg Config) *Service {
	if cfg.MaxTickets <= 0 {
		cfg.MaxTickets = DefaultMaxTickets
	}
	return &Service{
		store:  store,
		sender: sender,
		cfg:    cfg,
		log:    log.With("service", "support"),
		now:    time.Now,
	}
}

// RaiseTicket logs an issue for user. Once the user has MaxTickets tickets
// in any state, a throttled notice is returned instead and nothing is stored.
func (s *Service) RaiseTicket(ctx context.Context, user, issue string) (models.Outcome[models.SupportTicket], error) {
	issue = strings.TrimSpace(issue)
	if issue == "" {
		return models.Outcome[models.SupportTicket]{}, models.NewValidationError("issue", "required")
	}
	if len(issue) > maxIssueLen {
		return models.Outcome[models.SupportTicket]{}, models.NewValidationError("issue", "max 2000 characters")
	}

	ticket := &models.SupportTicket{
		RaisedBy: user,
		Issue:    issue,
		RaisedAt: s.now().Unix(),
	}

	var throttled bool
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		n, err := s.store.CountTicketsByUser(ctx, user)
		if err != nil {
			return fmt.Errorf("count tickets: %w", err)
		}
		if n >= s.cfg.MaxTickets {
			throttled = true
			return nil
		}
		if err := s.store.CreateTicket(ctx, ticket); err != nil {
			return fmt.Errorf("create ticket: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Outcome[models.SupportTicket]{}, err
	}

	if throttled {
		metrics.RecordTicket(string(models.NoticeThrottled))
		s.log.InfoContext(ctx, "ticket throttled", slog.String("user_id", user))
		return models.Noticed[models.SupportTicket](models.NoticeThrottled, throttledMessage), nil
	}

	metrics.RecordTicket("created")
	s.log.InfoContext(ctx, "ticket raised",
		slog.String("ticket_id", ticket.ID),
		slog.String("user_id", user),
	)
	s.notify(ctx, ticket)
	return models.Created(ticket), nil
}

// StartTicket marks a ticket as being worked on.
func (s *Service) StartTicket(ctx context.Context, ticketID string) (*models.SupportTicket, error) {
	return s.update(ctx, ticketID, func(t *models.SupportTicket) {
		t.InProgress = true
	})
}

// ResolveTicket closes a ticket with a resolution. A ticket is resolved once.
func (s *Service) ResolveTicket(ctx context.Context, ticketID, resolution string) (*models.SupportTicket, error) {
	closedAt := s.now().Unix()
	ticket, err := s.update(ctx, ticketID, func(t *models.SupportTicket) {
		t.InProgress = false
		t.Resolved = true
		t.Resolution = strings.TrimSpace(resolution)
		t.ClosedAt = closedAt
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "ticket resolved", slog.String("ticket_id", ticketID))
	return ticket, nil
}

// ListTickets returns the tickets raised by user, newest first.
func (s *Service) ListTickets(ctx context.Context, user string) ([]*models.SupportTicket, error) {
	tickets, err := s.store.ListTicketsByUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

func (s *Service) update(ctx context.Context, ticketID string, apply func(*models.SupportTicket)) (*models.SupportTicket, error) {
	var ticket *models.SupportTicket
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		ticket, err = s.store.GetTicket(ctx, ticketID)
		if err != nil {
			return fmt.Errorf("get ticket: %w", err)
		}
		if ticket.Resolved {
			return fmt.Errorf("ticket %s already resolved: %w", ticketID, models.ErrInvalidState)
		}
		apply(ticket)
		if err := s.store.UpdateTicket(ctx, ticket); err != nil {
			return fmt.Errorf("update ticket: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// notify tells the support inbox about a new ticket. Failures are logged only.
func (s *Service) notify(ctx context.Context, ticket *models.SupportTicket) {
	if len(s.cfg.NotifyTo) == 0 {
		return
	}
	msg := notify.Message{
		To:      s.cfg.NotifyTo,
		Subject: "Support request " + ticket.ID,
		Body:    fmt.Sprintf("Raised by %s:\n\n%s", ticket.RaisedBy, ticket.Issue),
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		s.log.WarnContext(ctx, "failed to send ticket notification",
			slog.String("ticket_id", ticket.ID),
			slog.String("error", err.Error()),
		)
	}
}
