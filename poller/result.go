package poller

import (
	"errors"

	"github.com/s0up4200/homeworkbot/filter"
	"github.com/s0up4200/homeworkbot/homework"
	"github.com/s0up4200/homeworkbot/practicum"
)

// Outcome is how a cycle ended.
type Outcome int

const (
	// OutcomeChanged: a new status message was rendered and relayed.
	OutcomeChanged Outcome = iota + 1
	// OutcomeUnchanged: the rendered message equals the last one sent.
	OutcomeUnchanged
	// OutcomeNoUpdate: the query window holds no homeworks.
	OutcomeNoUpdate
	// OutcomeFiltered: the notification filter rejected the change.
	OutcomeFiltered
	// OutcomeFailed: the cycle failed and was reported through the error path.
	OutcomeFailed
	// OutcomeCancelled: the context ended mid-cycle.
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeChanged:
		return "changed"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeNoUpdate:
		return "no_update"
	case OutcomeFiltered:
		return "filtered"
	case OutcomeFailed:
		return "failed"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// FailureKind classifies why a cycle failed.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureRequest
	FailureStatus
	FailureDecode
	FailureStructure
	FailureFilter
	FailureOther
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureRequest:
		return "request"
	case FailureStatus:
		return "unexpected_status"
	case FailureDecode:
		return "decode"
	case FailureStructure:
		return "structure"
	case FailureFilter:
		return "filter"
	default:
		return "other"
	}
}

// CycleResult summarises one polling cycle.
type CycleResult struct {
	Outcome Outcome
	Failure FailureKind
	// Message is the rendered status or the "Program failure: ..." text.
	Message string
	// Notified is true when the message was handed to the notifier.
	Notified bool
	Err      error
}

func classify(err error) FailureKind {
	var (
		reqErr    *practicum.RequestError
		statusErr *practicum.UnexpectedStatusError
		decodeErr *practicum.DecodeError
		validErr  *homework.ValidationError
		evalErr   *filter.EvaluationError
	)
	switch {
	case err == nil:
		return FailureNone
	case errors.As(err, &reqErr):
		return FailureRequest
	case errors.As(err, &statusErr):
		return FailureStatus
	case errors.As(err, &decodeErr):
		return FailureDecode
	case errors.As(err, &validErr):
		return FailureStructure
	case errors.As(err, &evalErr):
		return FailureFilter
	default:
		return FailureOther
	}
}
