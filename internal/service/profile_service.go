package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// ProfileInput carries the profile form. A blank Password keeps the current one.
type ProfileInput struct {
	Handle   string
	Email    string
	Password string
}

// ProfileService reads and updates the signed-in user's account.
type ProfileService interface {
	Get(ctx context.Context, userID uint) (*model.User, error)
	Update(ctx context.Context, userID uint, in ProfileInput) (*model.User, error)
}

type profileService struct {
	userRepo repository.UserRepository
}

// NewProfileService creates a new profile service.
func NewProfileService(userRepo repository.UserRepository) ProfileService {
	return &profileService{userRepo: userRepo}
}

func (s *profileService) Get(ctx context.Context, userID uint) (*model.User, error) {
	user, found, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if !found {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

// Update changes handle and email, and the password when one is given. Handle and
// email must not belong to another user.
func (s *profileService) Update(ctx context.Context, userID uint, in ProfileInput) (*model.User, error) {
	var hashed string
	if strings.TrimSpace(in.Password) != "" {
		var err error
		if hashed, err = hashPassword(in.Password); err != nil {
			return nil, err
		}
	}

	var updated *model.User
	err := s.userRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		user, found, err := repo.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if !found {
			return apperrors.ErrUserNotFound
		}
		if err := checkAvailable(ctx, repo, userID, in.Handle, in.Email); err != nil {
			return err
		}

		user.Handle = in.Handle
		user.Email = in.Email
		if hashed != "" {
			user.PasswordHash = hashed
		}
		updated = user
		return repo.Update(ctx, user)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		if conflict := checkAvailable(ctx, s.userRepo, userID, in.Handle, in.Email); conflict != nil {
			return nil, conflict
		}
		return nil, apperrors.ErrHandleTaken
	}
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return updated, nil
}
