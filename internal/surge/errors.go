package surge

import (
	"errors"
	"fmt"
)

// Kind classifies client errors so callers can branch on failure class
// without matching message strings.
type Kind int

const (
	KindUnclassified Kind = iota
	KindServiceNotRunning
	KindBackendUnavailable
	KindExecutionFailed
	KindConfigInvalid
	KindNotFound
	KindParseFailure
	KindTransportFailure
	KindPermissionDenied
)

func (k Kind) String() string {
	switch k {
	case KindServiceNotRunning:
		return "service not running"
	case KindBackendUnavailable:
		return "backend unavailable"
	case KindExecutionFailed:
		return "execution failed"
	case KindConfigInvalid:
		return "config invalid"
	case KindNotFound:
		return "not found"
	case KindParseFailure:
		return "parse failure"
	case KindTransportFailure:
		return "transport failure"
	case KindPermissionDenied:
		return "permission denied"
	default:
		return "unclassified"
	}
}

// Error is the client error type. Message carries the kind-specific detail;
// Err, when set, is the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the Kind from err, or KindUnclassified for foreign errors.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnclassified
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}

func errServiceNotRunning() error {
	return &Error{Kind: KindServiceNotRunning, Message: "Surge is not running"}
}

func errBackendUnavailable(reason string) error {
	return &Error{Kind: KindBackendUnavailable, Message: reason}
}

func errExecutionFailed(command, stderr string) error {
	return &Error{Kind: KindExecutionFailed, Message: fmt.Sprintf("%s: %s", command, stderr)}
}

func errNotFound(kind, key string) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %q", kind, key)}
}

func errParseFailure(source string, err error) error {
	return &Error{Kind: KindParseFailure, Message: source, Err: err}
}

func errTransportFailure(err error) error {
	return &Error{Kind: KindTransportFailure, Err: err}
}

func errPermissionDenied(message string) error {
	return &Error{Kind: KindPermissionDenied, Message: message}
}
