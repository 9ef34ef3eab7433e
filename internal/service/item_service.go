package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"shareit/internal/apperr"
	"shareit/internal/domain"
	"shareit/internal/models"
)

type ItemService struct {
	items    domain.ItemRepository
	users    domain.UserRepository
	bookings domain.BookingRepository
	comments domain.CommentRepository
	logger   *zerolog.Logger
}

func NewItemService(
	items domain.ItemRepository,
	users domain.UserRepository,
	bookings domain.BookingRepository,
	comments domain.CommentRepository,
	logger *zerolog.Logger,
) *ItemService {
	return &ItemService{
		items:    items,
		users:    users,
		bookings: bookings,
		comments: comments,
		logger:   logger,
	}
}

func (s *ItemService) Add(ctx context.Context, userID int64, name, description string, available bool, requestID *int64) (*models.ItemDetails, error) {
	owner, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, mapNotFound(err, "User with id = %d not found!", userID)
	}

	item := &models.Item{
		Name:        name,
		Description: description,
		Available:   available,
		OwnerID:     owner.ID,
		RequestID:   requestID,
	}
	if err := s.items.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("item_id", item.ID).Int64("owner_id", userID).Msg("added new item")
	details := item.Details(nil, nil, nil)
	return &details, nil
}

// Update applies patch semantics and is allowed only for the item's owner.
func (s *ItemService) Update(ctx context.Context, userID, itemID int64, patch models.ItemPatch) (*models.ItemDetails, error) {
	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return nil, mapNotFound(err, "Item with id = %d not found!", itemID)
	}
	if item.OwnerID != userID {
		return nil, apperr.Forbidden("User with id %d is not the owner!", userID)
	}

	if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
		item.Name = *patch.Name
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) != "" {
		item.Description = *patch.Description
	}
	if patch.Available != nil {
		item.Available = *patch.Available
	}

	if err := s.items.UpdateItem(ctx, item); err != nil {
		return nil, mapNotFound(err, "Item with id = %d not found!", itemID)
	}

	s.logger.Info().Int64("item_id", item.ID).Msg("updated item")
	details := item.Details(nil, nil, nil)
	return &details, nil
}

// GetByID returns the item with its comments. Last and next booking info is
// attached only when the requester is the owner.
func (s *ItemService) GetByID(ctx context.Context, userID, itemID int64) (*models.ItemDetails, error) {
	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return nil, mapNotFound(err, "Item with id = %d not found!", itemID)
	}

	comments, err := s.comments.GetCommentsByItemIDs(ctx, []int64{itemID})
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	if item.OwnerID != userID {
		details := item.Details(nil, nil, comments)
		return &details, nil
	}

	bookings, err := s.bookings.GetBookingsByItemIDs(ctx, []int64{itemID})
	if err != nil {
		return nil, err
	}
	info := findLastAndNextBooking(bookings, []int64{itemID}, time.Now())[itemID]
	details := item.Details(info.last, info.next, comments)
	return &details, nil
}

// GetByUser lists the owner's items with last/next booking and comments,
// aggregated in one batched pass over the bookings and comments tables.
func (s *ItemService) GetByUser(ctx context.Context, userID int64, from int, size *int) ([]models.ItemDetails, error) {
	limit, offset, err := limitOffset(from, size)
	if err != nil {
		return nil, err
	}

	items, err := s.items.GetItemsByOwner(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]int64, len(items))
	for i, item := range items {
		itemIDs[i] = item.ID
	}

	bookings, err := s.bookings.GetBookingsByItemIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.GetCommentsByItemIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	itemComments := make(map[int64][]models.Comment)
	for _, comment := range comments {
		itemComments[comment.ItemID] = append(itemComments[comment.ItemID], comment)
	}
	itemBookings := findLastAndNextBooking(bookings, itemIDs, time.Now())

	details := make([]models.ItemDetails, 0, len(items))
	for i := range items {
		item := &items[i]
		info := itemBookings[item.ID]
		details = append(details, item.Details(info.last, info.next, itemComments[item.ID]))
	}
	return details, nil
}

// Search returns available items matching the text. A blank query
// short-circuits to an empty result without touching the datastore.
func (s *ItemService) Search(ctx context.Context, text string, from int, size *int) ([]models.ItemDetails, error) {
	if strings.TrimSpace(text) == "" {
		return []models.ItemDetails{}, nil
	}

	limit, offset, err := limitOffset(from, size)
	if err != nil {
		return nil, err
	}

	items, err := s.items.SearchItems(ctx, text, limit, offset)
	if err != nil {
		return nil, err
	}

	details := make([]models.ItemDetails, 0, len(items))
	for i := range items {
		details = append(details, items[i].Details(nil, nil, nil))
	}
	return details, nil
}

// AddComment requires the author to have an approved booking of the item
// that has already started. The author name is denormalized at write time.
func (s *ItemService) AddComment(ctx context.Context, userID, itemID int64, text string) (*models.Comment, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, mapNotFound(err, "User with id = %d not found!", userID)
	}

	used, err := s.bookings.HasApprovedPastBooking(ctx, itemID, userID, time.Now())
	if err != nil {
		return nil, err
	}
	if !used {
		return nil, apperr.Validation("User with id = %d doesn't use item with id = %d!", userID, itemID)
	}

	comment := &models.Comment{
		ItemID:     itemID,
		Text:       text,
		AuthorName: user.Name,
		Created:    time.Now(),
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("comment_id", comment.ID).Int64("item_id", itemID).Msg("added new comment")
	return comment, nil
}

type bookingInfo struct {
	last *models.Booking
	next *models.Booking
}

// findLastAndNextBooking picks, per item, the booking with the latest end
// among those ended by now and the booking with the earliest start among
// future ones.
func findLastAndNextBooking(bookings []models.Booking, itemIDs []int64, now time.Time) map[int64]*bookingInfo {
	result := make(map[int64]*bookingInfo, len(itemIDs))
	for _, id := range itemIDs {
		result[id] = &bookingInfo{}
	}

	for i := range bookings {
		booking := &bookings[i]
		info, ok := result[booking.ItemID]
		if !ok {
			continue
		}

		if !booking.End.After(now) {
			if info.last == nil || booking.End.After(info.last.End) {
				info.last = booking
			}
		}
		if booking.Start.After(now) {
			if info.next == nil || booking.Start.Before(info.next.Start) {
				info.next = booking
			}
		}
	}
	return result
}
