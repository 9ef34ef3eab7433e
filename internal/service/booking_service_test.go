package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/apperr"
	"shareit/internal/models"
)

func TestBookingAdd(t *testing.T) {
	f := newFixture(t)
	owner := f.addUser(t, "Owner", "owner@example.com")
	booker := f.addUser(t, "Booker", "booker@example.com")
	item := f.addItem(t, owner.ID, "Drill", true)

	now := time.Now()
	booking, err := f.bookings.Add(context.Background(), booker.ID, item.ID, now.Add(time.Hour), now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, models.StatusWaiting, booking.Status)
	assert.Equal(t, booker.ID, booking.Booker.ID)
	assert.Equal(t, item.ID, booking.Item.ID)
}

func TestBookingAdd_Validation(t *testing.T) {
	f := newFixture(t)
	owner := f.addUser(t, "Owner", "owner@example.com")
	booker := f.addUser(t, "Booker", "booker@example.com")
	available := f.addItem(t, owner.ID, "Drill", true)
	unavailable := f.addItem(t, owner.ID, "Broken drill", false)

	now := time.Now()
	ctx := context.Background()

	cases := []struct {
		name       string
		bookerID   int64
		itemID     int64
		start, end time.Time
		kind       apperr.Kind
		message    string
	}{
		{"unknown booker", 42, available.ID, now.Add(time.Hour), now.Add(2 * time.Hour),
			apperr.KindNotFound, "User with id = 42 not found!"},
		{"unknown item", booker.ID, 42, now.Add(time.Hour), now.Add(2 * time.Hour),
			apperr.KindNotFound, "Item with id = 42 not found!"},
		{"unavailable item", booker.ID, unavailable.ID, now.Add(time.Hour), now.Add(2 * time.Hour),
			apperr.KindValidation, "Booking item is not available!"},
		{"start in the past", booker.ID, available.ID, now.Add(-time.Hour), now.Add(2 * time.Hour),
			apperr.KindValidation, "Booking start date cant be in the past!"},
		{"end in the past", booker.ID, available.ID, now.Add(time.Hour), now.Add(-time.Hour),
			apperr.KindValidation, "Booking end date cant be in the past!"},
		{"end before start", booker.ID, available.ID, now.Add(2 * time.Hour), now.Add(time.Hour),
			apperr.KindValidation, "Booking end date cant be before start date!"},
		{"end equals start", booker.ID, available.ID, now.Add(time.Hour), now.Add(time.Hour),
			apperr.KindValidation, "Booking end date cant be before start date!"},
		{"own item", owner.ID, available.ID, now.Add(time.Hour), now.Add(2 * time.Hour),
			apperr.KindNotFound, "You cant booking your own items!"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.bookings.Add(ctx, tc.bookerID, tc.itemID, tc.start, tc.end)
			require.Error(t, err)
			assert.True(t, apperr.IsKind(err, tc.kind))
			assert.Equal(t, tc.message, err.Error())
		})
	}
}

func TestBookingConsider(t *testing.T) {
	f := newFixture(t)
	owner := f.addUser(t, "Owner", "owner@example.com")
	booker := f.addUser(t, "Booker", "booker@example.com")
	item := f.addItem(t, owner.ID, "Drill", true)

	now := time.Now()
	ctx := context.Background()
	booking := f.addBooking(t, item.ID, booker.ID, now.Add(time.Hour), now.Add(2*time.Hour), models.StatusWaiting)

	// The booker cannot decide their own booking
	_, err := f.bookings.Consider(ctx, booker.ID, booking.ID, true)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Equal(t, "Booker can't change booking status!", err.Error())

	// A third user is rejected as non-owner
	stranger := f.addUser(t, "Stranger", "stranger@example.com")
	_, err = f.bookings.Consider(ctx, stranger.ID, booking.ID, true)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	assert.Equal(t, "User is not the owner of the booking item!", err.Error())

	decided, err := f.bookings.Consider(ctx, owner.ID, booking.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, decided.Status)

	// Re-approving an approved booking fails with the specific message
	_, err = f.bookings.Consider(ctx, owner.ID, booking.ID, true)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	assert.Equal(t, "Booking is already approved!", err.Error())

	// Any other transition from a decided status fails too
	_, err = f.bookings.Consider(ctx, owner.ID, booking.ID, false)
	require.Error(t, err)
	assert.Equal(t, "Booking status cant be changed!", err.Error())
}

func TestBookingConsider_Reject(t *testing.T) {
	f := newFixture(t)
	owner := f.addUser(t, "Owner", "owner@example.com")
	booker := f.addUser(t, "Booker", "booker@example.com")
	item := f.addItem(t, owner.ID, "Drill", true)

	now := time.Now()
	booking := f.addBooking(t, item.ID, booker.ID, now.Add(time.Hour), now.Add(2*time.Hour), models.StatusWaiting)

	decided, err := f.bookings.Consider(context.Background(), owner.ID, booking.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, decided.Status)
}

func TestBookingGetByID_OnlyParticipants(t *testing.T) {
	f := newFixture(t)
	owner := f.addUser(t, "Owner", "owner@example.com")
	booker := f.addUser(t, "Booker", "booker@example.com")
	stranger := f.addUser(t, "Stranger", "stranger@example.com")
	item := f.addItem(t, owner.ID, "Drill", true)

	now := time.Now()
	ctx := context.Background()
	booking := f.addBooking(t, item.ID, booker.ID, now.Add(time.Hour), now.Add(2*time.Hour), models.StatusWaiting)

	for _, userID := range []int64{owner.ID, booker.ID} {
		details, err := f.bookings.GetByID(ctx, userID, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, booking.ID, details.ID)
	}

	_, err := f.bookings.GetByID(ctx, stranger.ID, booking.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Equal(t, "User is not the owner or booker in requested Booking!", err.Error())
}

func TestBookingList_UnknownState(t *testing.T) {
	f := newFixture(t)
	booker := f.addUser(t, "Booker", "booker@example.com")

	// The state is checked before anything else, even for a user with no items
	for _, list := range []func() error{
		func() error { _, err := f.bookings.GetBookerBookings(context.Background(), booker.ID, "TROLOLO", 0, nil); return err },
		func() error { _, err := f.bookings.GetOwnerBookings(context.Background(), booker.ID, "TROLOLO", 0, nil); return err },
	} {
		err := list()
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindUnsupportedState))
		assert.Equal(t, "Unknown state: UNSUPPORTED_STATUS", err.Error())
	}
}

func TestBookingGetOwnerBookings_RequiresItems(t *testing.T) {
	f := newFixture(t)
	owner := f.addUser(t, "Owner", "owner@example.com")

	_, err := f.bookings.GetOwnerBookings(context.Background(), owner.ID, models.StateAll, 0, nil)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	assert.Equal(t, "No items found for this owner!", err.Error())
}

func TestBookingGetBookerBookings_NewestFirst(t *testing.T) {
	f := newFixture(t)
	owner := f.addUser(t, "Owner", "owner@example.com")
	booker := f.addUser(t, "Booker", "booker@example.com")
	item := f.addItem(t, owner.ID, "Drill", true)

	now := time.Now()
	early := f.addBooking(t, item.ID, booker.ID, now.Add(time.Hour), now.Add(2*time.Hour), models.StatusWaiting)
	late := f.addBooking(t, item.ID, booker.ID, now.Add(10*time.Hour), now.Add(11*time.Hour), models.StatusWaiting)

	bookings, err := f.bookings.GetBookerBookings(context.Background(), booker.ID, models.StateAll, 0, nil)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, late.ID, bookings[0].ID)
	assert.Equal(t, early.ID, bookings[1].ID)
	assert.Equal(t, "Booker", bookings[0].Booker.Name)
	assert.Equal(t, "Drill", bookings[0].Item.Name)
}

func TestBookingList_NegativePagination(t *testing.T) {
	f := newFixture(t)
	booker := f.addUser(t, "Booker", "booker@example.com")

	_, err := f.bookings.GetBookerBookings(context.Background(), booker.ID, models.StateAll, -1, nil)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	assert.Equal(t, "Parameters 'from' and 'size' must be positive!", err.Error())

	_, err = f.bookings.GetBookerBookings(context.Background(), booker.ID, models.StateAll, 0, intPtr(-5))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}
