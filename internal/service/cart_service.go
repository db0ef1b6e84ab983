package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// CartService handles the per-user shopping cart.
type CartService interface {
	Get(ctx context.Context, userID uint) (model.Cart, error)
	Add(ctx context.Context, userID, productID uint, quantity int) error
	Update(ctx context.Context, userID, productID uint, quantity int) error
	Remove(ctx context.Context, userID, productID uint) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates a new cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{cartRepo: cartRepo, productRepo: productRepo}
}

// ParseQuantity parses a form quantity. Only integers greater than zero are accepted.
func ParseQuantity(raw string) (int, error) {
	quantity, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || quantity <= 0 {
		return 0, apperrors.NewValidationError("quantity", apperrors.ErrInvalidQuantity)
	}
	return quantity, nil
}

func (s *cartService) Get(ctx context.Context, userID uint) (model.Cart, error) {
	lines, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return model.Cart{}, fmt.Errorf("get cart: %w", err)
	}
	return model.NewCart(lines), nil
}

// Add puts quantity units of an existing product in the cart, incrementing any
// existing line.
func (s *cartService) Add(ctx context.Context, userID, productID uint, quantity int) error {
	if quantity <= 0 {
		return apperrors.NewValidationError("quantity", apperrors.ErrInvalidQuantity)
	}

	_, found, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("find product: %w", err)
	}
	if !found {
		return apperrors.ErrProductNotFound
	}

	if err := s.cartRepo.Add(ctx, userID, productID, quantity); err != nil {
		return fmt.Errorf("add to cart: %w", err)
	}
	return nil
}

// Update overwrites the quantity of a line already in the cart.
func (s *cartService) Update(ctx context.Context, userID, productID uint, quantity int) error {
	if quantity <= 0 {
		return apperrors.NewValidationError("quantity", apperrors.ErrInvalidQuantity)
	}
	if err := s.cartRepo.SetQuantity(ctx, userID, productID, quantity); err != nil {
		return fmt.Errorf("update cart: %w", err)
	}
	return nil
}

func (s *cartService) Remove(ctx context.Context, userID, productID uint) error {
	if err := s.cartRepo.Remove(ctx, userID, productID); err != nil {
		return fmt.Errorf("remove from cart: %w", err)
	}
	return nil
}
