package homework

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatKnownStatuses(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{
			status: StatusApproved,
			want:   `Changed review status for "A". The work has been reviewed: the reviewer liked everything. Hooray!`,
		},
		{
			status: StatusReviewing,
			want:   `Changed review status for "A". The work has been taken for review by the reviewer.`,
		},
		{
			status: StatusRejected,
			want:   `Changed review status for "A". The work has been reviewed: the reviewer has comments.`,
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			items := []any{map[string]any{"homework_name": "A", "status": string(tt.status)}}

			update, err := Format(items)
			require.NoError(t, err)
			assert.Equal(t, tt.want, update.Message)
			assert.Equal(t, "A", update.Homework.Name())
			assert.Equal(t, tt.status, update.Homework.Status())
		})
	}
}

func TestFormatEmptyIsNoUpdate(t *testing.T) {
	_, err := Format(nil)
	assert.ErrorIs(t, err, ErrNoUpdate)

	_, err = Format([]any{})
	assert.ErrorIs(t, err, ErrNoUpdate)
}

func TestFormatUsesFirstItemOnly(t *testing.T) {
	items := []any{
		map[string]any{"homework_name": "newest", "status": "reviewing"},
		map[string]any{"homework_name": "older", "status": "bogus"},
	}

	update, err := Format(items)
	require.NoError(t, err)
	assert.Contains(t, update.Message, `"newest"`)
}

func TestFormatFailures(t *testing.T) {
	tests := []struct {
		name     string
		item     any
		sentinel error
		message  string
	}{
		{
			name:     "missing name",
			item:     map[string]any{"status": "approved"},
			sentinel: ErrMissingField,
			message:  `homework has no "homework_name" field`,
		},
		{
			name:     "missing status",
			item:     map[string]any{"homework_name": "A"},
			sentinel: ErrMissingField,
			message:  `homework has no "status" field`,
		},
		{
			name:     "unknown status",
			item:     map[string]any{"homework_name": "A", "status": "lost"},
			sentinel: ErrUnknownStatus,
			message:  `unexpected homework status: "lost"`,
		},
		{
			name:     "non-string name",
			item:     map[string]any{"homework_name": 12.0, "status": "approved"},
			sentinel: ErrWrongType,
			message:  `"homework_name" is a number, expected a string`,
		},
		{
			name:     "item is not a mapping",
			item:     "A",
			sentinel: ErrWrongType,
			message:  "homework is a string, expected a mapping",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Format([]any{tt.item})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestHomeworkAccessors(t *testing.T) {
	hw := Homework(decode(t, `{
		"id": 124,
		"homework_name": "user__hw_python_oop.zip",
		"status": "rejected",
		"lesson_name": "Final project",
		"reviewer_comment": "Fix the tests",
		"date_updated": "2020-02-13T16:42:47Z"
	}`).(map[string]any))

	assert.Equal(t, int64(124), hw.ID())
	assert.Equal(t, "user__hw_python_oop.zip", hw.Name())
	assert.Equal(t, StatusRejected, hw.Status())
	assert.Equal(t, "Final project", hw.LessonName())
	assert.Equal(t, "Fix the tests", hw.ReviewerComment())
	assert.Equal(t, time.Date(2020, 2, 13, 16, 42, 47, 0, time.UTC), hw.DateUpdated())

	assert.True(t, StatusApproved.Known())
	assert.False(t, Status("lost").Known())
	assert.Empty(t, Status("lost").Verdict())
}
