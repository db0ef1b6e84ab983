package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

const bcryptCost = 10

// RegisterInput carries the registration form.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Handle    string
	Password  string
}

// AuthService handles registration and login.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, handle, password string) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

// Register creates a user with a hashed password. The handle is checked before the
// email, and both checks run in the same transaction as the insert.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	hashedPassword, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Handle:       in.Handle,
		PasswordHash: hashedPassword,
	}

	err = s.userRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		if err := checkAvailable(ctx, repo, 0, in.Handle, in.Email); err != nil {
			return err
		}
		return repo.Create(ctx, user)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// A concurrent registration won the race; report which field collided.
		if conflict := checkAvailable(ctx, s.userRepo, 0, in.Handle, in.Email); conflict != nil {
			return nil, conflict
		}
		return nil, apperrors.ErrHandleTaken
	}
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	return user, nil
}

// Login authenticates by handle and password.
func (s *authService) Login(ctx context.Context, handle, password string) (*model.User, error) {
	user, found, err := s.userRepo.FindByHandle(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !found {
		return nil, apperrors.ErrInvalidCredentials
	}

	if isBcryptHash(user.PasswordHash) {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			return nil, apperrors.ErrInvalidCredentials
		}
		return user, nil
	}

	// Rows written before hashing was introduced hold the password in clear text.
	if subtle.ConstantTimeCompare([]byte(user.PasswordHash), []byte(password)) != 1 {
		return nil, apperrors.ErrInvalidCredentials
	}
	if hashed, err := hashPassword(password); err == nil {
		user.PasswordHash = hashed
		if err := s.userRepo.Update(ctx, user); err != nil {
			log.Warn().Err(err).Uint("user_id", user.ID).Msg("upgrade legacy password")
		}
	}
	return user, nil
}

// ResolveAdmins maps catalog admin handles to user ids. Handles with no
// registered user are returned in missing.
func ResolveAdmins(ctx context.Context, repo repository.UserRepository, handles []string) ([]uint, []string, error) {
	var ids []uint
	var missing []string
	for _, handle := range handles {
		user, found, err := repo.FindByHandle(ctx, handle)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve admin %q: %w", handle, err)
		}
		if !found {
			missing = append(missing, handle)
			continue
		}
		ids = append(ids, user.ID)
	}
	return ids, missing, nil
}

// checkAvailable returns ErrHandleTaken or ErrEmailTaken when another user than
// selfID already holds handle or email.
func checkAvailable(ctx context.Context, repo repository.UserRepository, selfID uint, handle, email string) error {
	other, found, err := repo.FindByHandle(ctx, handle)
	if err != nil {
		return err
	}
	if found && other.ID != selfID {
		return apperrors.ErrHandleTaken
	}

	other, found, err = repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if found && other.ID != selfID {
		return apperrors.ErrEmailTaken
	}
	return nil
}

// maxPasswordBytes is the bcrypt input limit. It counts bytes, not characters.
const maxPasswordBytes = 72

func hashPassword(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", apperrors.NewValidationError("password", apperrors.ErrPasswordTooLong)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
