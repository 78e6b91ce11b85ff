package homework

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind classifies a structural problem with an API response.
type Kind int

const (
	KindNotMapping Kind = iota + 1
	KindMissingKey
	KindWrongType
	KindMissingField
	KindUnknownStatus
)

// Sentinels matched by ValidationError.Is.
var (
	ErrNotMapping    = errors.New("response is not a mapping")
	ErrMissingKey    = errors.New("response key is missing")
	ErrWrongType     = errors.New("response field has the wrong type")
	ErrMissingField  = errors.New("homework field is missing")
	ErrUnknownStatus = errors.New("unknown homework status")

	// ErrNoUpdate is returned by Format when there is nothing to report. It is not a failure.
	ErrNoUpdate = errors.New("no new updates")
)

func (k Kind) String() string {
	switch k {
	case KindNotMapping:
		return "not_mapping"
	case KindMissingKey:
		return "missing_key"
	case KindWrongType:
		return "wrong_type"
	case KindMissingField:
		return "missing_field"
	case KindUnknownStatus:
		return "unknown_status"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindNotMapping:
		return ErrNotMapping
	case KindMissingKey:
		return ErrMissingKey
	case KindWrongType:
		return ErrWrongType
	case KindMissingField:
		return ErrMissingField
	case KindUnknownStatus:
		return ErrUnknownStatus
	default:
		return nil
	}
}

// ValidationError describes why a response or a homework could not be used.
type ValidationError struct {
	Kind   Kind
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

// Is reports whether target is the sentinel for this error's kind.
func (e *ValidationError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

func newValidationError(kind Kind, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// jsonKind names the JSON type of a decoded value.
func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number, float64, int, int64:
		return "number"
	case string:
		return "string"
	case []any:
		return "list"
	case map[string]any:
		return "mapping"
	default:
		return fmt.Sprintf("%T", v)
	}
}
