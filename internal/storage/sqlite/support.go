package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/shoplist/internal/models"
)

const ticketColumns = "id, raised_by, issue, in_progress, resolved, resolution, raised_at, closed_at"

// CreateTicket persists a new support ticket.
func (s *SQLiteStore) CreateTicket(ctx context.Context, ticket *models.SupportTicket) error {
	// Generate ID if not set
	if ticket.ID == "" {
		ticket.ID = uuid.New().String()
	}
	if ticket.RaisedAt == 0 {
		ticket.RaisedAt = time.Now().Unix()
	}

	_, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO support_tickets (id, raised_by, issue, in_progress, resolved, resolution, raised_at, closed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ticket.ID, ticket.RaisedBy, ticket.Issue, boolToInt(ticket.InProgress), boolToInt(ticket.Resolved),
		ticket.Resolution, ticket.RaisedAt, nullInt(ticket.ClosedAt),
	)
	return mapError(err, "insert ticket")
}

// GetTicket retrieves a ticket by ID.
func (s *SQLiteStore) GetTicket(ctx context.Context, ticketID string) (*models.SupportTicket, error) {
	row := s.q(ctx).QueryRowContext(ctx,
		"SELECT "+ticketColumns+" FROM support_tickets WHERE id = ?", ticketID)
	ticket, err := scanTicket(row)
	if err != nil {
		return nil, mapError(err, "get ticket "+ticketID)
	}
	return ticket, nil
}

// UpdateTicket saves the progress fields of a ticket.
func (s *SQLiteStore) UpdateTicket(ctx context.Context, ticket *models.SupportTicket) error {
	res, err := s.q(ctx).ExecContext(ctx,
		`UPDATE support_tickets SET in_progress = ?, resolved = ?, resolution = ?, closed_at = ?
		 WHERE id = ?`,
		boolToInt(ticket.InProgress), boolToInt(ticket.Resolved), ticket.Resolution, nullInt(ticket.ClosedAt),
		ticket.ID,
	)
	if err != nil {
		return mapError(err, "update ticket")
	}
	return expectRow(res, "ticket "+ticket.ID)
}

// CountTicketsByUser returns how many tickets the user has logged, in any state.
func (s *SQLiteStore) CountTicketsByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.q(ctx).QueryRowContext(ctx,
		"SELECT COUNT(*) FROM support_tickets WHERE raised_by = ?", userID).Scan(&n)
	if err != nil {
		return 0, mapError(err, "count tickets")
	}
	return n, nil
}

// ListTicketsByUser retrieves all tickets raised by a user, newest first.
func (s *SQLiteStore) ListTicketsByUser(ctx context.Context, userID string) ([]*models.SupportTicket, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		"SELECT "+ticketColumns+" FROM support_tickets WHERE raised_by = ? ORDER BY raised_at DESC, id",
		userID,
	)
	if err != nil {
		return nil, mapError(err, "list tickets")
	}
	defer rows.Close()

	var tickets []*models.SupportTicket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tickets: %w", err)
	}
	return tickets, nil
}

func scanTicket(row scanner) (*models.SupportTicket, error) {
	t := &models.SupportTicket{}
	var inProgress, resolved int
	var closedAt sql.NullInt64
	if err := row.Scan(&t.ID, &t.RaisedBy, &t.Issue, &inProgress, &resolved, &t.Resolution,
		&t.RaisedAt, &closedAt); err != nil {
		return nil, err
	}
	t.InProgress = inProgress != 0
	t.Resolved = resolved != 0
	t.ClosedAt = closedAt.Int64
	return t, nil
}
