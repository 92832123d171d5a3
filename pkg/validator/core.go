package validator

import (
	"errors"
	"slices"
	"strings"
)

// FieldError is one failed rule.
type FieldError struct {
	Field   string
	Code    string
	Message string
}

// Errors is the error returned by Apply. Its message joins the field messages with "; ".
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

// Fields lists the rejected fields once each, in the order they failed.
func (e Errors) Fields() []string {
	var fields []string
	for _, fe := range e {
		if !slices.Contains(fields, fe.Field) {
			fields = append(fields, fe.Field)
		}
	}
	return fields
}

// Rule pairs a check with the FieldError reported when it fails.
type Rule struct {
	Check func() bool
	Error FieldError
}

// Apply evaluates every rule and returns Errors for the failures, or nil.
func Apply(rules ...Rule) error {
	var failed Errors
	for _, r := range rules {
		if !r.Check() {
			failed = append(failed, r.Error)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return failed
}

// FromError returns the Errors in err's chain, or nil.
func FromError(err error) Errors {
	var e Errors
	if errors.As(err, &e) {
		return e
	}
	return nil
}
