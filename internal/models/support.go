package models

// SupportTicket represents an issue raised by a user.
type SupportTicket struct {
	// ID is the unique identifier for the ticket (UUID format).
	ID string

	// RaisedBy is the user who logged the issue.
	RaisedBy string

	// Issue is the free-text description of the problem.
	Issue string

	// InProgress is set when someone starts working on the ticket.
	InProgress bool

	// Resolved is set once; a resolved ticket cannot be resolved again.
	Resolved bool

	// Resolution describes how the issue was closed.
	Resolution string

	// RaisedAt is the Unix timestamp when the ticket was logged.
	RaisedAt int64

	// ClosedAt is the Unix timestamp of resolution; zero while open.
	ClosedAt int64
}
