package repository

import (
	"context"

	"gorm.io/gorm"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
)

// CategoryRepository defines category persistence operations.
type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id uint) (*model.Category, bool, error)
	Create(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id uint) error
	CountProducts(ctx context.Context, id uint) (int64, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo CategoryRepository) error) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, apperrors.NewQueryError("list categories", err)
	}
	return categories, nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*model.Category, bool, error) {
	return first[model.Category](r.db.WithContext(ctx).Where("id = ?", id), "find category by id")
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	return apperrors.NewQueryError("create category", r.db.WithContext(ctx).Create(category).Error)
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	return apperrors.NewQueryError("delete category",
		r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Category{}).Error)
}

// CountProducts returns how many products reference category id.
func (r *categoryRepository) CountProducts(ctx context.Context, id uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Product{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		return 0, apperrors.NewQueryError("count category products", err)
	}
	return count, nil
}

// WithTransaction executes a function within a database transaction.
func (r *categoryRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo CategoryRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &categoryRepository{db: tx})
	})
}
