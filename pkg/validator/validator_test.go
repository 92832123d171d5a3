package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardmia/ecgportal/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("all rules pass", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.RequiredString("name", "Dr. Ana"),
			validator.ValidEmail("email", "ana@clinic.example"),
		)
		assert.NoError(t, err)
	})

	t.Run("collects every failure in order", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.RequiredString("name", "  "),
			validator.RequiredString("email", ""),
			validator.RequiredString("specialization", "Cardiology"),
		)
		require.Error(t, err)

		ve := validator.FromError(err)
		require.Len(t, ve, 2)
		assert.Equal(t, []string{"name", "email"}, ve.Fields())
		assert.Equal(t, "name is required; email is required", err.Error())
	})
}

func TestErrors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "validation failed", validator.Errors{}.Error())

	e := validator.Errors{
		{Field: "email", Code: validator.CodeRequired, Message: "email is required"},
		{Field: "email", Code: validator.CodeFormat, Message: "email must be a valid email address"},
		{Field: "name", Code: validator.CodeRequired, Message: "name is required"},
	}
	assert.Equal(t, []string{"email", "name"}, e.Fields())
	assert.Equal(t, "email is required; email must be a valid email address; name is required", e.Error())
}

func TestFromError(t *testing.T) {
	t.Parallel()

	err := validator.Apply(validator.RequiredString("doctorId", ""))
	wrapped := fmt.Errorf("upload: %w", err)

	assert.Len(t, validator.FromError(wrapped), 1)
	assert.Nil(t, validator.FromError(nil))
	assert.Nil(t, validator.FromError(errors.New("boom")))
}

func TestRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rule validator.Rule
		ok   bool
	}{
		{"required ok", validator.RequiredString("f", "x"), true},
		{"required blank", validator.RequiredString("f", " \t"), false},
		{"required flag set", validator.Required("file", true, ""), true},
		{"required flag unset", validator.Required("file", false, "PDF file is required"), false},
		{"max len ascii", validator.MaxLenString("f", "abcd", 4), true},
		{"max len too long", validator.MaxLenString("f", "abcde", 4), false},
		{"max len counts runes", validator.MaxLenString("f", "héllo", 5), true},
		{"email ok", validator.ValidEmail("email", "ana@clinic.example"), true},
		{"email empty passes", validator.ValidEmail("email", ""), true},
		{"email no domain dot", validator.ValidEmail("email", "ana@localhost"), false},
		{"email with display name", validator.ValidEmail("email", "Ana <ana@clinic.example>"), false},
		{"email empty label", validator.ValidEmail("email", "ana@clinic..example"), false},
		{"email garbage", validator.ValidEmail("email", "not-an-email"), false},
		{"one of ok", validator.OneOf("status", "reviewed", "pending", "reviewed"), true},
		{"one of miss", validator.OneOf("status", "archived", "pending", "reviewed"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.ok, tt.rule.Check())
		})
	}
}

func TestRuleMessages(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "doctorId is required", validator.RequiredString("doctorId", "").Error.Message)
	assert.Equal(t, "PDF file is required", validator.Required("file", false, "PDF file is required").Error.Message)
	assert.Equal(t, "file is required", validator.Required("file", false, "").Error.Message)
	assert.Equal(t, "status must be one of: pending, reviewed",
		validator.OneOf("status", "", "pending", "reviewed").Error.Message)
	assert.Equal(t, validator.CodeLength, validator.MaxLenString("name", "", 1).Error.Code)
}
