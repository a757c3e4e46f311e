// Package notify sends outbound notifications such as support mail.
package notify

import (
	"context"
	"log/slog"
	"strings"
)

// Message is an outbound notification.
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Sender delivers notifications. Callers treat delivery as fire-and-forget:
// a failed send is logged, never surfaced to the user.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender writes notifications to the log instead of delivering them.
type LogSender struct {
	log *slog.Logger
}

var _ Sender = (*LogSender)(nil)

// NewLogSender creates a LogSender.
func NewLogSender(log *slog.Logger) *LogSender {
	return &LogSender{log: log.With("component", "notify")}
}

// Send logs the message.
func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.log.InfoContext(ctx, "notification",
		slog.String("to", strings.Join(msg.To, ",")),
		slog.String("subject", msg.Subject),
		slog.Int("body_len", len(msg.Body)),
	)
	return nil
}

// Discard drops every message.
type Discard struct{}

// Send does nothing.
func (Discard) Send(context.Context, Message) error { return nil }
