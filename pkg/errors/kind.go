package errors

import "fmt"

// Kind classifies domain failures so that transports can map them
// to their own status codes without parsing messages.
type Kind int

const (
	KindUnknown Kind = iota

	// InvalidRange is returned when a meeting is rejected by scheduling policy
	InvalidRange

	// Conflict is returned when a meeting overlaps an already booked one
	Conflict

	// NotFound is returned for unknown titles and when no meeting is ahead
	NotFound

	// InvalidArgument is returned when a request lacks required data
	InvalidArgument
)

func (k Kind) String() string {
	switch k {
	case InvalidRange:
		return "invalid_range"
	case Conflict:
		return "conflict"
	case NotFound:
		return "not_found"
	case InvalidArgument:
		return "invalid_argument"
	default:
		return "unknown"
	}
}

type kindError struct {
	kind   Kind
	reason string
}

func (e *kindError) Error() string {
	return e.reason
}

func New(kind Kind, reason string) error {
	return &kindError{kind: kind, reason: reason}
}

func Newf(kind Kind, reasonFormat string, args ...any) error {
	return New(kind, fmt.Sprintf(reasonFormat, args...))
}

// KindOf returns the kind of the first kinded error in the chain.
func KindOf(err error) Kind {
	var ke *kindError
	if As(err, &ke) {
		return ke.kind
	}
	return KindUnknown
}

// Reason returns the human-readable reason of a kinded error without
// any wrapping context, or err.Error() for plain errors.
func Reason(err error) string {
	if err == nil {
		return ""
	}

	var ke *kindError
	if As(err, &ke) {
		return ke.reason
	}
	return err.Error()
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
