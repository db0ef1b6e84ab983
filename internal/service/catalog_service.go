package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// ProductInput carries the add-product form. Price is the raw form value.
type ProductInput struct {
	Name        string
	Description string
	Price       string
	Image       string
	CategoryID  uint
}

// CatalogService handles product and category browsing and maintenance.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	Catalog(ctx context.Context, categoryID *uint) ([]model.CatalogEntry, []model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetProduct(ctx context.Context, id uint) (*model.Product, error)
	ProductPage(ctx context.Context, id uint) (*model.Product, []model.Product, error)
	AddProduct(ctx context.Context, in ProductInput) (*model.Product, error)
	RemoveProduct(ctx context.Context, id uint) error
	AddCategory(ctx context.Context, name string) (*model.Category, error)
	RemoveCategory(ctx context.Context, id uint) error
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) CatalogService {
	return &catalogService{productRepo: productRepo, categoryRepo: categoryRepo}
}

func (s *catalogService) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Catalog returns the products, optionally of one category, and every category for the filter.
func (s *catalogService) Catalog(ctx context.Context, categoryID *uint) ([]model.CatalogEntry, []model.Category, error) {
	entries, err := s.productRepo.ListCatalog(ctx, categoryID)
	if err != nil {
		return nil, nil, fmt.Errorf("list catalog: %w", err)
	}
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list categories: %w", err)
	}
	return entries, categories, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id uint) (*model.Product, error) {
	product, found, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if !found {
		return nil, apperrors.ErrProductNotFound
	}
	return product, nil
}

// ProductPage returns the product and every other product.
func (s *catalogService) ProductPage(ctx context.Context, id uint) (*model.Product, []model.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	others, err := s.productRepo.ListExcept(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list other products: %w", err)
	}
	return product, others, nil
}

// AddProduct inserts a product into an existing category.
func (s *catalogService) AddProduct(ctx context.Context, in ProductInput) (*model.Product, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(in.Price))
	if err != nil || price.IsNegative() {
		return nil, apperrors.NewValidationError("price", apperrors.ErrInvalidPrice)
	}

	_, found, err := s.categoryRepo.FindByID(ctx, in.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	if !found {
		return nil, apperrors.ErrCategoryNotFound
	}

	product := &model.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       price.Round(2),
		Image:       in.Image,
		CategoryID:  in.CategoryID,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("add product: %w", err)
	}
	return product, nil
}

// RemoveProduct deletes the product and its cart rows. Unknown ids are a no-op.
func (s *catalogService) RemoveProduct(ctx context.Context, id uint) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove product: %w", err)
	}
	return nil
}

func (s *catalogService) AddCategory(ctx context.Context, name string) (*model.Category, error) {
	category := &model.Category{Name: name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("add category: %w", err)
	}
	return category, nil
}

// RemoveCategory deletes a category no product references. Unknown ids are a no-op.
func (s *catalogService) RemoveCategory(ctx context.Context, id uint) error {
	err := s.categoryRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.CategoryRepository) error {
		count, err := repo.CountProducts(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperrors.ErrCategoryInUse
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("remove category: %w", err)
	}
	return nil
}
