package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"shareit/internal/database"
	"shareit/internal/models"
)

type fixture struct {
	db       *database.DB
	users    *UserService
	items    *ItemService
	bookings *BookingService
	requests *RequestService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zerolog.Nop()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"), &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &fixture{
		db:       db,
		users:    NewUserService(db, &logger),
		items:    NewItemService(db, db, db, db, &logger),
		bookings: NewBookingService(db, db, db, &logger),
		requests: NewRequestService(db, db, db, &logger),
	}
}

func (f *fixture) addUser(t *testing.T, name, email string) *models.User {
	t.Helper()
	user, err := f.users.Create(context.Background(), name, email)
	require.NoError(t, err)
	return user
}

func (f *fixture) addItem(t *testing.T, ownerID int64, name string, available bool) *models.ItemDetails {
	t.Helper()
	item, err := f.items.Add(context.Background(), ownerID, name, name+" description", available, nil)
	require.NoError(t, err)
	return item
}

func (f *fixture) addBooking(t *testing.T, itemID, bookerID int64, start, end time.Time, status string) *models.Booking {
	t.Helper()
	booking := &models.Booking{Start: start, End: end, ItemID: itemID, BookerID: bookerID, Status: status}
	require.NoError(t, f.db.CreateBooking(context.Background(), booking))
	return booking
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }
