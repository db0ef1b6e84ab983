package repository

import (
	"context"

	"gorm.io/gorm"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
)

// ProductRepository defines product persistence operations.
type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id uint) (*model.Product, bool, error)
	ListCatalog(ctx context.Context, categoryID *uint) ([]model.CatalogEntry, error)
	ListExcept(ctx context.Context, id uint) ([]model.Product, error)
	Create(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id uint) error
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// List returns every product.
func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, apperrors.NewQueryError("list products", err)
	}
	return products, nil
}

// FindByID returns the product with id, or found=false.
func (r *productRepository) FindByID(ctx context.Context, id uint) (*model.Product, bool, error) {
	return first[model.Product](r.db.WithContext(ctx).Where("id = ?", id), "find product by id")
}

// ListCatalog returns products with their category name, optionally filtered by category.
func (r *productRepository) ListCatalog(ctx context.Context, categoryID *uint) ([]model.CatalogEntry, error) {
	q := r.db.WithContext(ctx).
		Table("products AS p").
		Select("p.*, c.name AS category_name").
		Joins("LEFT JOIN categories AS c ON c.id = p.category_id").
		Order("p.id")
	if categoryID != nil {
		q = q.Where("p.category_id = ?", *categoryID)
	}

	var entries []model.CatalogEntry
	if err := q.Scan(&entries).Error; err != nil {
		return nil, apperrors.NewQueryError("list catalog", err)
	}
	return entries, nil
}

// ListExcept returns every product but id.
func (r *productRepository) ListExcept(ctx context.Context, id uint) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.WithContext(ctx).Where("id <> ?", id).Order("id").Find(&products).Error; err != nil {
		return nil, apperrors.NewQueryError("list other products", err)
	}
	return products, nil
}

// Create inserts product.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return apperrors.NewQueryError("create product", r.db.WithContext(ctx).Create(product).Error)
}

// Delete removes the product and every cart row that references it. Absent ids are a no-op.
func (r *productRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Product{}).Error
	})
	return apperrors.NewQueryError("delete product", err)
}
