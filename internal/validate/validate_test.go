package validate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLookup implements EmailLookup with canned answers.
type fakeLookup struct {
	taken map[string]bool
	err   error
}

func (f *fakeLookup) EmailTaken(_ context.Context, email string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.taken[strings.ToLower(email)], nil
}

func violations(t *testing.T, err error) []Violation {
	t.Helper()
	var verrs *Errors
	require.ErrorAs(t, err, &verrs)
	return verrs.Violations
}

func TestRunAccepted(t *testing.T) {
	err := Run(context.Background(),
		Length("fullName", "Alice Smith", 3, 50),
		Email("email", "alice@test.com"),
		MinLength("password", "secret1", 6),
	)
	assert.NoError(t, err)
}

// Every rule must be evaluated before reporting; one bad field must
// not hide another.
func TestRunAggregatesAllViolations(t *testing.T) {
	err := Run(context.Background(),
		Length("fullName", "ab", 3, 50),
		Email("email", "not-an-email"),
		MinLength("password", "short", 6),
	)
	vs := violations(t, err)
	require.Len(t, vs, 3)

	fields := []string{vs[0].Field, vs[1].Field, vs[2].Field}
	assert.Equal(t, []string{"fullName", "email", "password"}, fields)
}

func TestLengthRule(t *testing.T) {
	ctx := context.Background()
	assert.NoError(t, Run(ctx, Length("title", "buy milk", 1, 100)))
	assert.NoError(t, Run(ctx, Length("title", "x", 1, 100)))
	// Length counts the trimmed value.
	assert.Error(t, Run(ctx, Length("title", "   ", 1, 100)))
	assert.Error(t, Run(ctx, Length("title", strings.Repeat("x", 101), 1, 100)))
	// Runes, not bytes.
	assert.NoError(t, Run(ctx, Length("title", strings.Repeat("ї", 100), 1, 100)))
}

func TestOneOfRule(t *testing.T) {
	ctx := context.Background()
	assert.NoError(t, Run(ctx, OneOf("priority", "medium", "low", "medium", "high")))
	// Empty passes: the field is optional, Required guards mandatory use.
	assert.NoError(t, Run(ctx, OneOf("priority", "", "low", "medium", "high")))

	err := Run(ctx, OneOf("priority", "urgent", "low", "medium", "high"))
	vs := violations(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, "priority", vs[0].Field)
	assert.Contains(t, vs[0].Message, "low, medium, high")
}

func TestEmailRule(t *testing.T) {
	ctx := context.Background()
	assert.NoError(t, Run(ctx, Email("email", "alice@test.com")))
	assert.Error(t, Run(ctx, Email("email", "alice")))
	assert.Error(t, Run(ctx, Email("email", "alice@test")))
	assert.Error(t, Run(ctx, Email("email", "@test.com")))
	assert.Error(t, Run(ctx, Email("email", "")))
}

func TestRequiredRule(t *testing.T) {
	ctx := context.Background()
	assert.NoError(t, Run(ctx, Required("password", "x")))
	assert.Error(t, Run(ctx, Required("password", "")))
	assert.Error(t, Run(ctx, Required("password", "   ")))
}

func TestUniqueEmailRule(t *testing.T) {
	ctx := context.Background()
	lookup := &fakeLookup{taken: map[string]bool{"alice@test.com": true}}

	// Taken address is a violation, not an error.
	err := Run(ctx, UniqueEmail("email", "alice@test.com", lookup))
	vs := violations(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, "email", vs[0].Field)

	assert.NoError(t, Run(ctx, UniqueEmail("email", "bob@test.com", lookup)))
}

// A failed lookup is infrastructure trouble and must surface as a
// plain error, never as a 400-style violation.
func TestUniqueEmailLookupFailure(t *testing.T) {
	lookupErr := errors.New("store unavailable")
	err := Run(context.Background(),
		UniqueEmail("email", "alice@test.com", &fakeLookup{err: lookupErr}))
	require.ErrorIs(t, err, lookupErr)

	var verrs *Errors
	assert.False(t, errors.As(err, &verrs))
}

func TestErrorsMessage(t *testing.T) {
	err := &Errors{Violations: []Violation{
		{Field: "title", Message: "title is required"},
		{Field: "priority", Message: "bad value"},
	}}
	assert.Equal(t, "validation failed: title: title is required; priority: bad value", err.Error())
}
