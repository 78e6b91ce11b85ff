// Package filter gates status notifications with expr-lang expressions.
//
// An expression sees the newest homework's fields and a few helpers, and must
// evaluate to a boolean:
//
//	status != "reviewing"
//	icontains(lesson, "final") or status == "approved"
//	name startsWith "hw_"
//	hoursSince(updated) < 24
package filter

import (
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/homeworkbot/homework"
)

// Filter is a compiled notification filter. A nil *Filter matches everything.
type Filter struct {
	expression string
	program    *vm.Program
}

// Compile compiles expression. An empty expression yields a nil filter.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, nil
	}

	program, err := expr.Compile(expression,
		expr.Env(helperFunctions()),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return &Filter{expression: expression, program: program}, nil
}

// Expression returns the source expression.
func (f *Filter) Expression() string {
	if f == nil {
		return ""
	}
	return f.expression
}

// Match reports whether a status change of hw should be relayed.
func (f *Filter) Match(hw homework.Homework) (bool, error) {
	if f == nil {
		return true, nil
	}

	result, err := expr.Run(f.program, runtimeEnvironment(hw))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			Homework:   hw.Name(),
			Reason:     "failed to evaluate expression",
			Err:        err,
		}
	}

	// AsBool at compile time guarantees the type.
	return result.(bool), nil
}

func helperFunctions() map[string]any {
	return map[string]any{
		// Case-insensitive variants of the contains/startsWith/endsWith operators.
		"icontains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"istartsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"iendsWith": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"hoursSince": func(t time.Time) float64 {
			return time.Since(t).Hours()
		},
		"daysSince": func(t time.Time) int {
			return int(time.Since(t).Hours() / 24)
		},
	}
}

func runtimeEnvironment(hw homework.Homework) map[string]any {
	env := make(map[string]any, 16)
	maps.Copy(env, helperFunctions())

	env["id"] = hw.ID()
	env["name"] = hw.Name()
	env["status"] = string(hw.Status())
	env["lesson"] = hw.LessonName()
	env["comment"] = hw.ReviewerComment()
	env["updated"] = hw.DateUpdated()
	env["known"] = hw.Status().Known()

	return env
}
