package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/apperr"
)

func TestRequestAdd(t *testing.T) {
	f := newFixture(t)
	user := f.addUser(t, "Abdula", "abdula@example.com")

	request, err := f.requests.Add(context.Background(), user.ID, "need a ladder")
	require.NoError(t, err)
	assert.NotZero(t, request.ID)
	assert.Equal(t, "need a ladder", request.Description)
	assert.NotNil(t, request.Items)
	assert.Empty(t, request.Items)
}

func TestRequestAdd_UnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.requests.Add(context.Background(), 42, "need a ladder")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Equal(t, "User with id = 42 not found!", err.Error())
}

func TestRequestGetOwn_AnnotatedWithItems(t *testing.T) {
	f := newFixture(t)
	requester := f.addUser(t, "Requester", "requester@example.com")
	owner := f.addUser(t, "Owner", "owner@example.com")

	request, err := f.requests.Add(context.Background(), requester.ID, "need a drill")
	require.NoError(t, err)

	answer, err := f.items.Add(context.Background(), owner.ID, "Drill", "Cordless drill", true, &request.ID)
	require.NoError(t, err)

	own, err := f.requests.GetOwn(context.Background(), requester.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	require.Len(t, own[0].Items, 1)
	assert.Equal(t, answer.ID, own[0].Items[0].ID)
	assert.Equal(t, request.ID, *own[0].Items[0].RequestID)
}

func TestRequestGetAll_OmittedSizeYieldsEmpty(t *testing.T) {
	f := newFixture(t)
	requester := f.addUser(t, "Requester", "requester@example.com")
	other := f.addUser(t, "Other", "other@example.com")

	_, err := f.requests.Add(context.Background(), other.ID, "need a hammer")
	require.NoError(t, err)

	requests, err := f.requests.GetAll(context.Background(), requester.ID, 0, nil)
	require.NoError(t, err)
	assert.NotNil(t, requests)
	assert.Empty(t, requests)
}

func TestRequestGetAll_ExcludesOwn(t *testing.T) {
	f := newFixture(t)
	requester := f.addUser(t, "Requester", "requester@example.com")
	other := f.addUser(t, "Other", "other@example.com")

	_, err := f.requests.Add(context.Background(), requester.ID, "mine")
	require.NoError(t, err)
	theirs, err := f.requests.Add(context.Background(), other.ID, "theirs")
	require.NoError(t, err)

	requests, err := f.requests.GetAll(context.Background(), requester.ID, 0, intPtr(20))
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, theirs.ID, requests[0].ID)
}

func TestRequestGetAll_NegativePagination(t *testing.T) {
	f := newFixture(t)
	requester := f.addUser(t, "Requester", "requester@example.com")

	_, err := f.requests.GetAll(context.Background(), requester.ID, -1, intPtr(20))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	assert.Equal(t, "Parameters 'from' and 'size' must be positive!", err.Error())
}

func TestRequestGetByID(t *testing.T) {
	f := newFixture(t)
	requester := f.addUser(t, "Requester", "requester@example.com")

	request, err := f.requests.Add(context.Background(), requester.ID, "need a saw")
	require.NoError(t, err)

	got, err := f.requests.GetByID(context.Background(), requester.ID, request.ID)
	require.NoError(t, err)
	assert.Equal(t, request.ID, got.ID)

	_, err = f.requests.GetByID(context.Background(), requester.ID, 42)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Equal(t, "ItemRequest with id = 42 not found!", err.Error())
}
