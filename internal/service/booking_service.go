package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"shareit/internal/apperr"
	"shareit/internal/domain"
	"shareit/internal/models"
)

type BookingService struct {
	bookings domain.BookingRepository
	items    domain.ItemRepository
	users    domain.UserRepository
	logger   *zerolog.Logger
}

func NewBookingService(
	bookings domain.BookingRepository,
	items domain.ItemRepository,
	users domain.UserRepository,
	logger *zerolog.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		items:    items,
		users:    users,
		logger:   logger,
	}
}

func (s *BookingService) Add(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*models.BookingDetails, error) {
	booker, err := s.users.GetUser(ctx, bookerID)
	if err != nil {
		return nil, mapNotFound(err, "User with id = %d not found!", bookerID)
	}
	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return nil, mapNotFound(err, "Item with id = %d not found!", itemID)
	}

	if !item.Available {
		return nil, apperr.Validation("Booking item is not available!")
	}
	now := time.Now()
	if start.Before(now) {
		return nil, apperr.Validation("Booking start date cant be in the past!")
	}
	if end.Before(now) {
		return nil, apperr.Validation("Booking end date cant be in the past!")
	}
	if !end.After(start) {
		return nil, apperr.Validation("Booking end date cant be before start date!")
	}
	if booker.ID == item.OwnerID {
		return nil, apperr.NotFound("You cant booking your own items!")
	}

	booking := &models.Booking{
		Start:    start,
		End:      end,
		ItemID:   item.ID,
		BookerID: booker.ID,
		Status:   models.StatusWaiting,
	}
	if err := s.bookings.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("booking_id", booking.ID).Int64("item_id", itemID).Int64("booker_id", bookerID).Msg("created new booking")
	details := booking.Details(*booker, *item)
	return &details, nil
}

// Consider approves or rejects a waiting booking. Only the item's owner may
// decide; the booker can never change the status, and decided bookings stay
// decided.
func (s *BookingService) Consider(ctx context.Context, ownerID, bookingID int64, approved bool) (*models.BookingDetails, error) {
	booking, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, mapNotFound(err, "Booking with id = %d not found!", bookingID)
	}
	item, err := s.items.GetItem(ctx, booking.ItemID)
	if err != nil {
		return nil, mapNotFound(err, "Item with id = %d not found!", booking.ItemID)
	}

	if ownerID == booking.BookerID {
		return nil, apperr.NotFound("Booker can't change booking status!")
	}
	if ownerID != item.OwnerID {
		return nil, apperr.Forbidden("User is not the owner of the booking item!")
	}

	booker, err := s.users.GetUser(ctx, booking.BookerID)
	if err != nil {
		return nil, mapNotFound(err, "User with id = %d not found!", booking.BookerID)
	}

	if approved && booking.Status == models.StatusApproved {
		return nil, apperr.Validation("Booking is already approved!")
	}
	if booking.Status != models.StatusWaiting {
		return nil, apperr.Validation("Booking status cant be changed!")
	}

	status := models.StatusRejected
	if approved {
		status = models.StatusApproved
	}
	if err := s.bookings.UpdateBookingStatus(ctx, bookingID, status); err != nil {
		return nil, mapNotFound(err, "Booking with id = %d not found!", bookingID)
	}
	booking.Status = status

	s.logger.Info().Int64("booking_id", bookingID).Str("status", status).Msg("updated booking status")
	details := booking.Details(*booker, *item)
	return &details, nil
}

// GetByID returns the booking to its booker or the item's owner only.
func (s *BookingService) GetByID(ctx context.Context, userID, bookingID int64) (*models.BookingDetails, error) {
	booking, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, mapNotFound(err, "Booking with id = %d not found!", bookingID)
	}
	item, err := s.items.GetItem(ctx, booking.ItemID)
	if err != nil {
		return nil, mapNotFound(err, "Item with id = %d not found!", booking.ItemID)
	}

	if userID != booking.BookerID && userID != item.OwnerID {
		return nil, apperr.NotFound("User is not the owner or booker in requested Booking!")
	}

	booker, err := s.users.GetUser(ctx, booking.BookerID)
	if err != nil {
		return nil, mapNotFound(err, "User with id = %d not found!", booking.BookerID)
	}

	details := booking.Details(*booker, *item)
	return &details, nil
}

// GetBookerBookings lists the user's own bookings filtered by state.
func (s *BookingService) GetBookerBookings(ctx context.Context, bookerID int64, state string, from int, size *int) ([]models.BookingDetails, error) {
	if err := validateState(state); err != nil {
		return nil, err
	}
	limit, offset, err := limitOffset(from, size)
	if err != nil {
		return nil, err
	}

	booker, err := s.users.GetUser(ctx, bookerID)
	if err != nil {
		return nil, mapNotFound(err, "User with id = %d not found!", bookerID)
	}

	bookings, err := s.bookings.ListBookerBookings(ctx, bookerID, state, time.Now(), limit, offset)
	if err != nil {
		return nil, err
	}

	details := make([]models.BookingDetails, 0, len(bookings))
	for i := range bookings {
		item, err := s.items.GetItem(ctx, bookings[i].ItemID)
		if err != nil {
			return nil, mapNotFound(err, "Item with id = %d not found!", bookings[i].ItemID)
		}
		details = append(details, bookings[i].Details(*booker, *item))
	}
	return details, nil
}

// GetOwnerBookings lists bookings of all the owner's items filtered by state.
// The owner must have at least one item.
func (s *BookingService) GetOwnerBookings(ctx context.Context, ownerID int64, state string, from int, size *int) ([]models.BookingDetails, error) {
	if err := validateState(state); err != nil {
		return nil, err
	}
	limit, offset, err := limitOffset(from, size)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetUser(ctx, ownerID); err != nil {
		return nil, mapNotFound(err, "User with id = %d not found!", ownerID)
	}

	items, err := s.items.GetItemsByOwner(ctx, ownerID, -1, 0)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperr.Validation("No items found for this owner!")
	}

	itemIDs := make([]int64, len(items))
	mappedItems := make(map[int64]models.Item, len(items))
	for i, item := range items {
		itemIDs[i] = item.ID
		mappedItems[item.ID] = item
	}

	bookings, err := s.bookings.ListOwnerBookings(ctx, itemIDs, state, time.Now(), limit, offset)
	if err != nil {
		return nil, err
	}

	details := make([]models.BookingDetails, 0, len(bookings))
	for i := range bookings {
		booker, err := s.users.GetUser(ctx, bookings[i].BookerID)
		if err != nil {
			return nil, mapNotFound(err, "User with id = %d not found!", bookings[i].BookerID)
		}
		details = append(details, bookings[i].Details(*booker, mappedItems[bookings[i].ItemID]))
	}
	return details, nil
}

func validateState(state string) error {
	switch state {
	case models.StateAll, models.StateCurrent, models.StatePast,
		models.StateFuture, models.StateWaiting, models.StateRejected:
		return nil
	default:
		return apperr.UnsupportedState("Unknown state: UNSUPPORTED_STATUS")
	}
}
