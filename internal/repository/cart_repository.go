package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
)

// CartRepository defines cart persistence operations.
type CartRepository interface {
	Add(ctx context.Context, userID, productID uint, quantity int) error
	SetQuantity(ctx context.Context, userID, productID uint, quantity int) error
	Remove(ctx context.Context, userID, productID uint) error
	Find(ctx context.Context, userID, productID uint) (*model.CartItem, bool, error)
	ListByUser(ctx context.Context, userID uint) ([]model.CartLine, error)
}

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a new cart repository.
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// Add inserts the (user, product) row with quantity, or increments the existing row,
// in a single statement.
func (r *cartRepository) Add(ctx context.Context, userID, productID uint, quantity int) error {
	item := model.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "usuario_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"cantidad": gorm.Expr("cantidad + ?", quantity),
		}),
	}).Create(&item).Error
	return apperrors.NewQueryError("add cart item", err)
}

// SetQuantity overwrites the quantity of an existing row. Absent rows are left absent.
func (r *cartRepository) SetQuantity(ctx context.Context, userID, productID uint, quantity int) error {
	err := r.db.WithContext(ctx).Model(&model.CartItem{}).
		Where("usuario_id = ? AND product_id = ?", userID, productID).
		Update("cantidad", quantity).Error
	return apperrors.NewQueryError("update cart item", err)
}

// Remove deletes the row. Absent rows are a no-op.
func (r *cartRepository) Remove(ctx context.Context, userID, productID uint) error {
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND product_id = ?", userID, productID).
		Delete(&model.CartItem{}).Error
	return apperrors.NewQueryError("remove cart item", err)
}

func (r *cartRepository) Find(ctx context.Context, userID, productID uint) (*model.CartItem, bool, error) {
	return first[model.CartItem](
		r.db.WithContext(ctx).Where("usuario_id = ? AND product_id = ?", userID, productID),
		"find cart item",
	)
}

// ListByUser returns the cart lines of userID joined with their products.
func (r *cartRepository) ListByUser(ctx context.Context, userID uint) ([]model.CartLine, error) {
	var lines []model.CartLine
	err := r.db.WithContext(ctx).Raw(
		`SELECT p.id AS product_id, p.name, p.description, p.price, c.cantidad AS quantity, p.image
		FROM cart c JOIN products p ON c.product_id = p.id
		WHERE c.usuario_id = ?
		ORDER BY c.id`,
		userID,
	).Scan(&lines).Error
	if err != nil {
		return nil, apperrors.NewQueryError("list cart", err)
	}
	return lines, nil
}
