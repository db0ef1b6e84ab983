package model

import "github.com/shopspring/decimal"

// CartItem associates a user with a product and a quantity.
// (UserID, ProductID) is unique.
type CartItem struct {
	ID        uint `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    uint `json:"user_id" gorm:"column:usuario_id;not null;uniqueIndex:idx_cart_user_product"`
	ProductID uint `json:"product_id" gorm:"column:product_id;not null;uniqueIndex:idx_cart_user_product;index"`
	Quantity  int  `json:"quantity" gorm:"column:cantidad;not null;default:1"`
}

// TableName keeps the legacy table name.
func (CartItem) TableName() string {
	return "cart"
}

// CartLine is one row of a rendered cart.
type CartLine struct {
	ProductID   uint            `json:"product_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Image       string          `json:"image"`
}

// Subtotal is Price times Quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the full cart of one user.
type Cart struct {
	Lines []CartLine      `json:"lines"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// NewCart computes totals for lines.
func NewCart(lines []CartLine) Cart {
	cart := Cart{Lines: lines, Total: decimal.Zero}
	if cart.Lines == nil {
		cart.Lines = []CartLine{}
	}
	for _, line := range cart.Lines {
		cart.Total = cart.Total.Add(line.Subtotal())
		cart.Count += line.Quantity
	}
	return cart
}
