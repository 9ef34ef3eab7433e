package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsAndKinds(t *testing.T) {
	cases := []struct {
		err  error
		kind Kind
	}{
		{Validation("Email '%s' is not valid!", "x"), KindValidation},
		{NotFound("User with id = %d not found!", 42), KindNotFound},
		{Forbidden("User with id %d is not the owner!", 7), KindForbidden},
		{UnsupportedState("Unknown state: %s", "TROLOLO"), KindUnsupportedState},
	}

	for _, tc := range cases {
		assert.True(t, IsKind(tc.err, tc.kind))
	}

	assert.Equal(t, "User with id = 42 not found!", NotFound("User with id = %d not found!", 42).Error())
}

func TestIsKind_WrappedAndForeign(t *testing.T) {
	wrapped := fmt.Errorf("handling request: %w", NotFound("gone"))
	assert.True(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(wrapped, KindValidation))

	assert.False(t, IsKind(errors.New("plain"), KindNotFound))
	assert.False(t, IsKind(nil, KindNotFound))
}
