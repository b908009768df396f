package model

import "github.com/google/uuid"

type TransactionType string

const (
	TxPurchase TransactionType = "PURCHASE"
	TxSale     TransactionType = "SALE"
)

// Transaction is an append-only ledger entry for a stock-affecting event.
// Rows are created exactly once by the purchase/sale path and never
// updated or deleted afterwards.
type Transaction struct {
	BaseModel
	Type       TransactionType `gorm:"type:varchar(10);not null" json:"type" validate:"required,oneof=PURCHASE SALE"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product    *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
	SupplierID *uuid.UUID      `gorm:"type:uuid" json:"supplier_id,omitempty"` // Required iff PURCHASE
	Supplier   *Supplier       `gorm:"foreignKey:SupplierID" json:"supplier,omitempty" validate:"-"`
	Quantity   int             `gorm:"not null" json:"quantity" validate:"required,gt=0"`

	Description string `gorm:"type:text" json:"description"`
	Note        string `gorm:"type:text" json:"note"`

	// Stock level after this transaction committed
	ResultingStockQuantity int `gorm:"not null" json:"resulting_stock_quantity"`
}
