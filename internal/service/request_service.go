package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"shareit/internal/apperr"
	"shareit/internal/domain"
	"shareit/internal/models"
)

type RequestService struct {
	requests domain.RequestRepository
	users    domain.UserRepository
	items    domain.ItemRepository
	logger   *zerolog.Logger
}

func NewRequestService(
	requests domain.RequestRepository,
	users domain.UserRepository,
	items domain.ItemRepository,
	logger *zerolog.Logger,
) *RequestService {
	return &RequestService{
		requests: requests,
		users:    users,
		items:    items,
		logger:   logger,
	}
}

func (s *RequestService) Add(ctx context.Context, userID int64, description string) (*models.ItemRequestDetails, error) {
	creator, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, mapNotFound(err, "User with id = %d not found!", userID)
	}

	request := &models.ItemRequest{
		Description: description,
		CreatorID:   creator.ID,
		Created:     time.Now(),
	}
	if err := s.requests.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("request_id", request.ID).Int64("creator_id", userID).Msg("created new item request")
	details := request.Details(nil)
	return &details, nil
}

// GetOwn lists the user's own requests, newest first, unpaged.
func (s *RequestService) GetOwn(ctx context.Context, userID int64) ([]models.ItemRequestDetails, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, mapNotFound(err, "User with id = %d not found!", userID)
	}

	requests, err := s.requests.GetRequestsByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, requests)
}

// GetAll lists other users' requests. An omitted size yields an empty list
// rather than a default page.
func (s *RequestService) GetAll(ctx context.Context, userID int64, from int, size *int) ([]models.ItemRequestDetails, error) {
	if size == nil {
		return []models.ItemRequestDetails{}, nil
	}
	if from < 0 || *size < 0 {
		return nil, apperr.Validation("Parameters 'from' and 'size' must be positive!")
	}

	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, mapNotFound(err, "User with id = %d not found!", userID)
	}

	requests, err := s.requests.GetRequestsExcludingCreator(ctx, userID, *size, from)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, requests)
}

func (s *RequestService) GetByID(ctx context.Context, userID, requestID int64) (*models.ItemRequestDetails, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, mapNotFound(err, "User with id = %d not found!", userID)
	}

	request, err := s.requests.GetRequest(ctx, requestID)
	if err != nil {
		return nil, mapNotFound(err, "ItemRequest with id = %d not found!", requestID)
	}

	annotated, err := s.annotate(ctx, []models.ItemRequest{*request})
	if err != nil {
		return nil, err
	}
	return &annotated[0], nil
}

// annotate attaches to each request the items answering it, fetched with a
// single IN query.
func (s *RequestService) annotate(ctx context.Context, requests []models.ItemRequest) ([]models.ItemRequestDetails, error) {
	requestIDs := make([]int64, len(requests))
	for i, request := range requests {
		requestIDs[i] = request.ID
	}

	items, err := s.items.GetItemsByRequestIDs(ctx, requestIDs)
	if err != nil {
		return nil, err
	}

	answered := make(map[int64][]models.ItemShort)
	for i := range items {
		if items[i].RequestID == nil {
			continue
		}
		answered[*items[i].RequestID] = append(answered[*items[i].RequestID], items[i].Short())
	}

	details := make([]models.ItemRequestDetails, 0, len(requests))
	for i := range requests {
		details = append(details, requests[i].Details(answered[requests[i].ID]))
	}
	return details, nil
}
