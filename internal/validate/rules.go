package validate

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// emailPattern is deliberately loose: something@something.tld. Real
// deliverability cannot be validated by a regexp anyway.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Required fails when value is empty after trimming.
func Required(field, value string) Rule {
	return RuleFunc(func(context.Context) ([]Violation, error) {
		if strings.TrimSpace(value) == "" {
			return []Violation{{Field: field, Message: field + " is required"}}, nil
		}
		return nil, nil
	})
}

// Length fails when the trimmed value is shorter than min or longer
// than max. Lengths are counted in runes, not bytes.
func Length(field, value string, min, max int) Rule {
	return RuleFunc(func(context.Context) ([]Violation, error) {
		n := utf8.RuneCountInString(strings.TrimSpace(value))
		if n < min || n > max {
			return []Violation{{
				Field:   field,
				Message: fieldLengthMessage(field, min, max),
			}}, nil
		}
		return nil, nil
	})
}

// MinLength fails when value (not trimmed — passwords keep their
// spaces) is shorter than min runes.
func MinLength(field, value string, min int) Rule {
	return RuleFunc(func(context.Context) ([]Violation, error) {
		if utf8.RuneCountInString(value) < min {
			return []Violation{{
				Field:   field,
				Message: fieldMinLengthMessage(field, min),
			}}, nil
		}
		return nil, nil
	})
}

// OneOf fails when the value is not a member of allowed. Empty values
// pass; combine with Required when the field is mandatory.
func OneOf(field, value string, allowed ...string) Rule {
	return RuleFunc(func(context.Context) ([]Violation, error) {
		if value == "" {
			return nil, nil
		}
		for _, a := range allowed {
			if value == a {
				return nil, nil
			}
		}
		return []Violation{{
			Field:   field,
			Message: field + " must be one of: " + strings.Join(allowed, ", "),
		}}, nil
	})
}

// Email fails on anything that does not look like an address.
func Email(field, value string) Rule {
	return RuleFunc(func(context.Context) ([]Violation, error) {
		if !emailPattern.MatchString(strings.TrimSpace(value)) {
			return []Violation{{Field: field, Message: "invalid email format"}}, nil
		}
		return nil, nil
	})
}

// EmailLookup answers whether an address is already registered. The
// users repository implements it; the comparison must be
// case-insensitive on the repository side.
type EmailLookup interface {
	EmailTaken(ctx context.Context, email string) (bool, error)
}

// UniqueEmail is the one rule with a side channel: it performs a
// read-only lookup against the users collection. An address that is
// already registered is a violation like any other; only a failure of
// the lookup itself surfaces as an error.
func UniqueEmail(field, value string, users EmailLookup) Rule {
	return RuleFunc(func(ctx context.Context) ([]Violation, error) {
		taken, err := users.EmailTaken(ctx, strings.TrimSpace(value))
		if err != nil {
			return nil, err
		}
		if taken {
			return []Violation{{Field: field, Message: "a user with this email already exists"}}, nil
		}
		return nil, nil
	})
}

func fieldLengthMessage(field string, min, max int) string {
	return fmt.Sprintf("%s must be between %d and %d characters", field, min, max)
}

func fieldMinLengthMessage(field string, min int) string {
	return fmt.Sprintf("%s must be at least %d characters", field, min)
}
