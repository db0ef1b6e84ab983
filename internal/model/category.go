package model

// Category groups products in the catalog.
type Category struct {
	ID   uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"not null"`
}

// TableName pins the table name.
func (Category) TableName() string {
	return "categories"
}
