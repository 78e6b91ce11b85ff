package homework

import (
	"encoding/json"
	"strconv"
	"time"
)

// Response keys and homework fields as served by the API.
const (
	KeyHomeworks   = "homeworks"
	KeyCurrentDate = "current_date"

	FieldID              = "id"
	FieldName            = "homework_name"
	FieldStatus          = "status"
	FieldLessonName      = "lesson_name"
	FieldReviewerComment = "reviewer_comment"
	FieldDateUpdated     = "date_updated"
)

// Status is a review status code
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

// Verdicts holds the text sent for each known status.
var Verdicts = map[Status]string{
	StatusApproved:  "The work has been reviewed: the reviewer liked everything. Hooray!",
	StatusReviewing: "The work has been taken for review by the reviewer.",
	StatusRejected:  "The work has been reviewed: the reviewer has comments.",
}

// Known reports whether the status has a verdict.
func (s Status) Known() bool {
	_, ok := Verdicts[s]
	return ok
}

// Verdict returns the text for the status, or an empty string for unknown codes.
func (s Status) Verdict() string {
	return Verdicts[s]
}

// StatusReport is a validated API response.
type StatusReport struct {
	// Homeworks holds the raw list items, newest first.
	Homeworks []any
	// CurrentDate is the server time in Unix seconds, zero when not numeric.
	CurrentDate int64
}

// Homework is one tracked item as decoded from JSON.
type Homework map[string]any

func (h Homework) str(field string) string {
	s, _ := h[field].(string)
	return s
}

// Name returns the homework name.
func (h Homework) Name() string { return h.str(FieldName) }

// Status returns the raw status code.
func (h Homework) Status() Status { return Status(h.str(FieldStatus)) }

// LessonName returns the lesson title, if any.
func (h Homework) LessonName() string { return h.str(FieldLessonName) }

// ReviewerComment returns the reviewer's comment, if any.
func (h Homework) ReviewerComment() string { return h.str(FieldReviewerComment) }

// ID returns the numeric homework id or zero.
func (h Homework) ID() int64 {
	return toInt64(h[FieldID])
}

// DateUpdated parses the RFC 3339 update timestamp. Invalid values yield the zero time.
func (h Homework) DateUpdated() time.Time {
	t, err := time.Parse(time.RFC3339, h.str(FieldDateUpdated))
	if err != nil {
		return time.Time{}
	}
	return t
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
		if f, err := n.Float64(); err == nil {
			return int64(f)
		}
	case float64:
		return int64(n)
	case int:
		return int64(n)
	case int64:
		return n
	case string:
		if i, err := strconv.ParseInt(n, 10, 64); err == nil {
			return i
		}
	}
	return 0
}
