package model

import "github.com/google/uuid"

type Product struct {
	BaseModel
	SKU           string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Name          string     `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description   string     `gorm:"type:text" json:"description"`
	Price         int64      `gorm:"not null;default:0" json:"price" validate:"gte=0"`
	StockQuantity int        `gorm:"not null;default:0" json:"stock_quantity" validate:"gte=0"` // Never goes negative
	CategoryID    *uuid.UUID `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category      *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty" validate:"-"`
	ImageRef      string     `gorm:"type:varchar(512)" json:"image_ref,omitempty"`

	// Relations
	Transactions []Transaction `json:"transactions,omitempty" validate:"-"`
}
