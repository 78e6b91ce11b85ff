package filter

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/homeworkbot/homework"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		wantNil    bool
		wantErr    bool
	}{
		{name: "empty expression", expression: "  ", wantNil: true},
		{name: "valid expression", expression: `status != "reviewing"`},
		{name: "helpers", expression: `icontains(lesson, "final") and hoursSince(updated) < 48`},
		{name: "invalid syntax", expression: `status == "unclosed`, wantErr: true},
		{name: "not boolean", expression: `1 + 2`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)
			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				assert.True(t, errors.As(err, &compErr))
				assert.Contains(t, err.Error(), "compilation error")
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, f)
			} else {
				assert.NotNil(t, f)
			}
		})
	}
}

func TestMatch(t *testing.T) {
	hw := homework.Homework{
		"id":               float64(7),
		"homework_name":    "hw_final.zip",
		"status":           "rejected",
		"lesson_name":      "Final Project",
		"reviewer_comment": "Almost there",
		"date_updated":     time.Now().Add(-2 * time.Hour).UTC().Format(time.RFC3339),
	}

	tests := []struct {
		expression string
		want       bool
	}{
		{`status != "reviewing"`, true},
		{`status == "approved"`, false},
		{`icontains(lesson, "final")`, true},
		{`lesson contains "final"`, false},
		{`istartsWith(name, "HW_")`, true},
		{`iendsWith(comment, "nowhere")`, false},
		{`hoursSince(updated) < 24`, true},
		{`daysSince(updated) >= 1`, false},
		{`id == 7 and known`, true},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			f, err := Compile(tt.expression)
			require.NoError(t, err)

			got, err := f.Match(hw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.expression, f.Expression())
		})
	}
}

func TestNilFilterMatchesEverything(t *testing.T) {
	var f *Filter
	ok, err := f.Match(homework.Homework{"status": "reviewing"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, f.Expression())
}

func TestMatchEvaluationError(t *testing.T) {
	f, err := Compile(`int(name) > 0`)
	require.NoError(t, err)

	_, err = f.Match(homework.Homework{"homework_name": "A"})
	require.Error(t, err)

	var evalErr *EvaluationError
	require.True(t, errors.As(err, &evalErr))
	assert.Equal(t, "A", evalErr.Homework)
}
