// Package domain declares the repository contracts consumed by the service
// layer. The sqlite-backed database package implements all of them on a
// single receiver.
package domain

import (
	"context"
	"time"

	"shareit/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error
	GetAllUsers(ctx context.Context) ([]models.User, error)
}

type ItemRepository interface {
	CreateItem(ctx context.Context, item *models.Item) error
	GetItem(ctx context.Context, id int64) (*models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	GetItemsByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]models.Item, error)
	SearchItems(ctx context.Context, text string, limit, offset int) ([]models.Item, error)
	GetItemsByRequestIDs(ctx context.Context, requestIDs []int64) ([]models.Item, error)
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status string) error
	GetBookingsByItemIDs(ctx context.Context, itemIDs []int64) ([]models.Booking, error)
	ListBookerBookings(ctx context.Context, bookerID int64, state string, now time.Time, limit, offset int) ([]models.Booking, error)
	ListOwnerBookings(ctx context.Context, itemIDs []int64, state string, now time.Time, limit, offset int) ([]models.Booking, error)
	HasApprovedPastBooking(ctx context.Context, itemID, bookerID int64, before time.Time) (bool, error)
}

type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentsByItemIDs(ctx context.Context, itemIDs []int64) ([]models.Comment, error)
}

type RequestRepository interface {
	CreateRequest(ctx context.Context, request *models.ItemRequest) error
	GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error)
	GetRequestsByCreator(ctx context.Context, creatorID int64) ([]models.ItemRequest, error)
	GetRequestsExcludingCreator(ctx context.Context, creatorID int64, limit, offset int) ([]models.ItemRequest, error)
}
