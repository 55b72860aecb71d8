// Package validate runs declarative per-field checks over an inbound
// request body. All rules are evaluated before anything is reported,
// so one response carries the complete set of violations instead of
// failing on the first broken field.
package validate

import (
	"context"
	"fmt"
	"strings"
)

// Violation is one broken rule on one field.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the aggregate result of a failed pipeline run. It
// implements error so services can return it through their normal
// error path; handlers unwrap it into a 400 response body.
type Errors struct {
	Violations []Violation
}

func (e *Errors) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Rule checks one aspect of a candidate record. A rule may read
// external state (the unique-email rule queries the users collection)
// but must never write any. The error return is reserved for
// infrastructure failures during the check itself — a failed lookup is
// an error, an already-taken email is a Violation.
type Rule interface {
	Check(ctx context.Context) ([]Violation, error)
}

// RuleFunc adapts a plain function to the Rule interface.
type RuleFunc func(ctx context.Context) ([]Violation, error)

func (f RuleFunc) Check(ctx context.Context) ([]Violation, error) { return f(ctx) }

// Run evaluates every rule and aggregates the violations. It returns
// *Errors when at least one rule was broken, a plain error when a rule
// itself could not run, and nil when the record is accepted. Rules are
// never short-circuited by earlier violations.
func Run(ctx context.Context, rules ...Rule) error {
	var all []Violation
	for _, r := range rules {
		vs, err := r.Check(ctx)
		if err != nil {
			return err
		}
		all = append(all, vs...)
	}
	if len(all) > 0 {
		return &Errors{Violations: all}
	}
	return nil
}
