package model

import "github.com/shopspring/decimal"

// Product is a catalog item.
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string          `json:"name" gorm:"not null"`
	Description string          `json:"description" gorm:"not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Image       string          `json:"image" gorm:"not null"`
	CategoryID  uint            `json:"category_id" gorm:"not null;index"`
}

// TableName pins the table name.
func (Product) TableName() string {
	return "products"
}

// CatalogEntry is a product joined with its category name.
// CategoryName is empty for products whose category no longer exists.
type CatalogEntry struct {
	Product      `gorm:"embedded"`
	CategoryName string `json:"category_name" gorm:"column:category_name"`
}
