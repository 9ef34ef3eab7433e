package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"shareit/internal/apperr"
	"shareit/internal/domain"
	"shareit/internal/models"
)

var emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,6}$`)

type UserService struct {
	repo   domain.UserRepository
	logger *zerolog.Logger
}

func NewUserService(repo domain.UserRepository, logger *zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) Create(ctx context.Context, name, email string) (*models.User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	user := &models.User{Name: name, Email: email}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("created new user")
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "User with id = %d not found!", id)
	}
	return user, nil
}

// Update applies patch semantics: nil or blank fields leave the stored
// value unchanged.
func (s *UserService) Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "User with id = %d not found!", id)
	}

	if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
		user.Name = *patch.Name
	}
	if patch.Email != nil && strings.TrimSpace(*patch.Email) != "" {
		if err := validateEmail(*patch.Email); err != nil {
			return nil, err
		}
		user.Email = *patch.Email
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, mapNotFound(err, "User with id = %d not found!", id)
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("updated user")
	return user, nil
}

// Delete removes the user and returns the deleted record. Items and
// bookings of the user are left in place.
func (s *UserService) Delete(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "User with id = %d not found!", id)
	}

	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return nil, mapNotFound(err, "User with id = %d not found!", id)
	}

	s.logger.Info().Int64("user_id", id).Msg("deleted user")
	return user, nil
}

func (s *UserService) GetAll(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return apperr.Validation("Email '%s' is not valid!", email)
	}
	return nil
}
