package validator_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("all pass", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.RequiredString("subject", "hello"),
			validator.ValidEmail("contactInfo", "a@b.co"),
		)
		assert.NoError(t, err)
	})

	t.Run("collects every failure", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.RequiredString("subject", "  "),
			validator.RequiredString("body", ""),
			validator.ValidUUID("userId", "nope"),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, validator.ErrValidationFailed)
		assert.True(t, validator.IsValidationError(err))

		errs := validator.ExtractValidationErrors(err)
		assert.Equal(t, []string{"subject", "body", "userId"}, errs.Fields())
		assert.Equal(t, []string{"field is required"}, errs.Get("body"))
		assert.True(t, errs.Has("userId"))
		assert.Len(t, errs.Map(), 3)
		assert.Contains(t, err.Error(), "userId: must be a valid UUID")
	})

	t.Run("when skips rule", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.When(false, validator.ValidEmail("contactInfo", "")),
			validator.When(true, validator.RequiredString("subject", "x")),
		)
		assert.NoError(t, err)
	})

	t.Run("plain errors are not validation errors", func(t *testing.T) {
		t.Parallel()
		assert.False(t, validator.IsValidationError(errors.New("boom")))
		assert.Nil(t, validator.ExtractValidationErrors(nil))
	})
}

func TestRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rule validator.Rule
		ok   bool
	}{
		{"email ok", validator.ValidEmail("e", "user@example.com"), true},
		{"email display name", validator.ValidEmail("e", "User <user@example.com>"), false},
		{"email no dot", validator.ValidEmail("e", "user@localhost"), false},
		{"email empty label", validator.ValidEmail("e", "user@example..com"), false},
		{"email empty", validator.ValidEmail("e", ""), false},
		{"uuid ok", validator.ValidUUID("u", "2f1b6b1e-8a0c-4f4e-9a55-3f2f8f0b7c11"), true},
		{"uuid braces", validator.ValidUUID("u", "{2f1b6b1e-8a0c-4f4e-9a55-3f2f8f0b7c11}"), false},
		{"uuid garbage", validator.ValidUUID("u", "123"), false},
		{"in list folded", validator.InListCaseInsensitive("type", " email ", []string{"EMAIL"}), true},
		{"in list miss", validator.InListCaseInsensitive("type", "SMS", []string{"EMAIL"}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.ok, tt.rule.Check())
		})
	}
}
