package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/models"
)

func createTestRequest(t *testing.T, db *DB, creatorID int64, description string, created time.Time) *models.ItemRequest {
	t.Helper()
	request := &models.ItemRequest{Description: description, CreatorID: creatorID, Created: created}
	require.NoError(t, db.CreateRequest(context.Background(), request))
	return request
}

func TestRequestCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	created := time.Now().UTC().Truncate(time.Millisecond)
	request := createTestRequest(t, db, 1, "need a ladder", created)

	got, err := db.GetRequest(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, "need a ladder", got.Description)
	assert.Equal(t, int64(1), got.CreatorID)
	assert.True(t, got.Created.Equal(created))
}

func TestGetRequest_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetRequest(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetRequestsByCreator_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	createTestRequest(t, db, 1, "old", now.Add(-time.Hour))
	createTestRequest(t, db, 1, "new", now)
	createTestRequest(t, db, 2, "someone else", now)

	requests, err := db.GetRequestsByCreator(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, "new", requests[0].Description)
	assert.Equal(t, "old", requests[1].Description)
}

func TestGetRequestsExcludingCreator(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	createTestRequest(t, db, 1, "mine", now)
	createTestRequest(t, db, 2, "theirs older", now.Add(-time.Hour))
	createTestRequest(t, db, 3, "theirs newer", now)

	requests, err := db.GetRequestsExcludingCreator(context.Background(), 1, 20, 0)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, "theirs newer", requests[0].Description)

	paged, err := db.GetRequestsExcludingCreator(context.Background(), 1, 1, 1)
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "theirs older", paged[0].Description)
}
