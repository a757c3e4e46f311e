package models

// NoticeKind identifies a soft outcome that short-circuits a write
// without being a failure.
type NoticeKind string

const (
	// NoticeDuplicateItem means an equivalent open item already exists.
	NoticeDuplicateItem NoticeKind = "duplicate_item"
	// NoticeThrottled means the user has too many support tickets logged.
	NoticeThrottled NoticeKind = "throttled"
)

// Notice is a user-facing message returned instead of a new entity.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// Outcome is the result of an operation that either produces a value or a
// notice. Exactly one of Value and Notice is set; errors travel separately.
type Outcome[T any] struct {
	Value  *T
	Notice *Notice
}

// Created wraps a newly created value.
func Created[T any](v *T) Outcome[T] {
	return Outcome[T]{Value: v}
}

// Noticed wraps a soft notice.
func Noticed[T any](kind NoticeKind, message string) Outcome[T] {
	return Outcome[T]{Notice: &Notice{Kind: kind, Message: message}}
}

// IsNotice reports whether the outcome is a notice rather than a value.
func (o Outcome[T]) IsNotice() bool {
	return o.Notice != nil
}
