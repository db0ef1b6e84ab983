package repository

import (
	"context"

	"gorm.io/gorm"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
)

// UserRepository defines persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, bool, error)
	FindByHandle(ctx context.Context, handle string) (*model.User, bool, error)
	FindByEmail(ctx context.Context, email string) (*model.User, bool, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo UserRepository) error) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return apperrors.NewQueryError("create user", r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return apperrors.NewQueryError("update user", r.db.WithContext(ctx).Save(user).Error)
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, bool, error) {
	return first[model.User](r.db.WithContext(ctx).Where("id_usuario = ?", id), "find user by id")
}

func (r *userRepository) FindByHandle(ctx context.Context, handle string) (*model.User, bool, error) {
	return first[model.User](r.db.WithContext(ctx).Where("usuario = ?", handle), "find user by username")
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, bool, error) {
	return first[model.User](r.db.WithContext(ctx).Where("correo = ?", email), "find user by email")
}

// WithTransaction executes a function within a database transaction.
func (r *userRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo UserRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &userRepository{db: tx})
	})
}
