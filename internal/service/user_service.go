package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"taskpad/internal/cache"
	apperrors "taskpad/internal/errors"
	"taskpad/internal/model"
	"taskpad/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// RegistrationResult reports the outcome of a registration attempt.
// AlreadyExists is a normal outcome, not an error: InsertedID is nil and
// User points at the record that won the email.
type RegistrationResult struct {
	InsertedID    *uuid.UUID
	AlreadyExists bool
	User          *model.User
}

// UserService is the user registry: idempotent creation keyed by email.
type UserService interface {
	Register(ctx context.Context, in RegisterUserInput) (*RegistrationResult, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id.String())
}

// Register creates the user unless the email is already taken. The insert is
// conditional on the unique email index, so two concurrent registrations with
// the same email resolve to one row; the loser reads back the winner.
func (s *userService) Register(ctx context.Context, in RegisterUserInput) (*RegistrationResult, error) {
	if err := ValidateRegisterUser(in); err != nil {
		return nil, err
	}

	user := &model.User{
		Email:      in.Email,
		Attributes: datatypes.JSONMap(in.Attributes),
	}
	created, err := s.repo.CreateIfAbsent(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	if !created {
		existing, err := s.repo.FindByEmail(ctx, in.Email)
		if err != nil {
			return nil, fmt.Errorf("read back existing user: %w", err)
		}
		return &RegistrationResult{AlreadyExists: true, User: existing}, nil
	}

	id := user.ID
	return &RegistrationResult{InsertedID: &id, User: user}, nil
}

// GetUser retrieves a user by ID with caching.
func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}
