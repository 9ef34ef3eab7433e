package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/apperr"
	"shareit/internal/database"
)

func TestLimitOffset(t *testing.T) {
	limit, offset, err := limitOffset(0, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, limit)
	assert.Equal(t, 0, offset)

	limit, offset, err = limitOffset(3, intPtr(7))
	require.NoError(t, err)
	assert.Equal(t, 7, limit)
	assert.Equal(t, 3, offset)

	_, _, err = limitOffset(-1, nil)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, _, err = limitOffset(0, intPtr(-1))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestMapNotFound(t *testing.T) {
	err := mapNotFound(database.ErrNotFound, "User with id = %d not found!", 7)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Equal(t, "User with id = 7 not found!", err.Error())

	plain := fmt.Errorf("disk on fire")
	assert.True(t, errors.Is(mapNotFound(plain, "ignored"), plain))
}
