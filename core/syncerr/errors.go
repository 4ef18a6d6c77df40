package syncerr

import (
	"errors"
	"fmt"
)

// Kind classifies a sync failure. The set is closed: every error produced
// by the sync core carries exactly one of these kinds.
type Kind int

const (
	// KindSetup indicates invalid or missing configuration at construction
	// time. Fatal, blocks any operation.
	KindSetup Kind = iota + 1
	// KindNotFound indicates a requested external or internal ID does not
	// exist. Surfaced to the caller, does not abort a batch.
	KindNotFound
	// KindFieldMapping indicates a source field absent from the mapping
	// table. Logged, field skipped, record continues.
	KindFieldMapping
	// KindFieldTransform indicates a per-field transform failed. The field
	// is left at its cleared default, record continues.
	KindFieldTransform
	// KindValidation indicates a record-level invariant failed. The
	// record's changes are discarded, not committed.
	KindValidation
	// KindMediaFetch indicates a remote image fetch or validation failed.
	// The image field is cleared, record continues.
	KindMediaFetch
	// KindRequest indicates a source adapter network, timeout or non-2xx
	// failure.
	KindRequest
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindSetup:
		return "setup"
	case KindNotFound:
		return "not_found"
	case KindFieldMapping:
		return "field_mapping"
	case KindFieldTransform:
		return "field_transform"
	case KindValidation:
		return "validation"
	case KindMediaFetch:
		return "media_fetch"
	case KindRequest:
		return "request"
	default:
		return "unknown"
	}
}

// Error is a structured sync error. Field and RecordID are optional context
// set where the failure is scoped to a single field or record.
type Error struct {
	Kind     Kind
	Msg      string
	Field    string
	RecordID string
	Err      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	if e.Field != "" {
		msg += fmt.Sprintf(" (field %q)", e.Field)
	}
	if e.RecordID != "" {
		msg += fmt.Sprintf(" (record %q)", e.RecordID)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap creates an error of the given kind wrapping a cause.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// WithField returns a copy of the error scoped to a field name.
func (e *Error) WithField(field string) *Error {
	c := *e
	c.Field = field
	return &c
}

// WithRecord returns a copy of the error scoped to a record ID.
func (e *Error) WithRecord(id string) *Error {
	c := *e
	c.RecordID = id
	return &c
}

// KindOf returns the kind of err if it is (or wraps) a sync error,
// and zero otherwise.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}

// IsKind reports whether err is (or wraps) a sync error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
