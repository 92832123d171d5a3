package validator

import (
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	CodeRequired = "required"
	CodeLength   = "length"
	CodeFormat   = "format"
	CodeChoice   = "choice"
)

// RequiredString fails when value is empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: FieldError{
			Field:   field,
			Message: field + " is required",
			Code:    CodeRequired,
		},
	}
}

// Required fails when present is false. Used for values that are not strings, such as uploaded files.
func Required(field string, present bool, message string) Rule {
	if message == "" {
		message = field + " is required"
	}
	return Rule{
		Check: func() bool { return present },
		Error: FieldError{Field: field, Message: message, Code: CodeRequired},
	}
}

// MaxLenString counts runes, not bytes.
func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= max },
		Error: FieldError{
			Field:   field,
			Message: fmt.Sprintf("%s must be at most %d characters long", field, max),
			Code:    CodeLength,
		},
	}
}

// ValidEmail accepts a bare RFC 5322 address whose domain has at least one dot.
// An empty value passes; combine with RequiredString when the field is mandatory.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if value == "" {
				return true
			}
			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != value {
				return false
			}
			local, domain, ok := strings.Cut(addr.Address, "@")
			if !ok || local == "" {
				return false
			}
			if !strings.Contains(domain, ".") {
				return false
			}
			for part := range strings.SplitSeq(domain, ".") {
				if part == "" {
					return false
				}
			}
			return true
		},
		Error: FieldError{
			Field:   field,
			Message: field + " must be a valid email address",
			Code:    CodeFormat,
		},
	}
}

// OneOf fails when value is not one of choices.
func OneOf(field, value string, choices ...string) Rule {
	return Rule{
		Check: func() bool { return slices.Contains(choices, value) },
		Error: FieldError{
			Field:   field,
			Message: fmt.Sprintf("%s must be one of: %s", field, strings.Join(choices, ", ")),
			Code:    CodeChoice,
		},
	}
}
