package service

import (
	"errors"
	"fmt"

	"go-inventory-console/internal/model"
	"go-inventory-console/internal/repository"
	"go-inventory-console/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound   = errors.New("Product Not Found")
	ErrSupplierNotFound  = errors.New("Supplier Not Found")
	ErrCategoryNotFound  = errors.New("Category Not Found")
	ErrSKUExists         = errors.New("A product with this SKU already exists")
	ErrInsufficientStock = errors.New("Insufficient stock to complete this sale")
)

type InventoryService interface {
	CreateProduct(req *model.Product, actorID string) error
	UpdateProduct(id uuid.UUID, req *model.Product, actorID string) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	GetAllProducts() ([]model.Product, error)
	GetProductByID(id uuid.UUID) (*model.Product, error)
	SearchProducts(input string) ([]model.Product, error)

	Purchase(req *StockRequest, actorID string) (*model.Transaction, error)
	Sell(req *StockRequest, actorID string) (*model.Transaction, error)

	GetAllTransactions() ([]model.Transaction, error)
	GetTransactionByID(id uuid.UUID) (*model.Transaction, error)
}

// StockRequest carries a purchase or sale submission. SupplierID is
// required for purchases only.
type StockRequest struct {
	ProductID   uuid.UUID `json:"product_id" validate:"uuid_required"`
	SupplierID  uuid.UUID `json:"supplier_id"`
	Quantity    int       `json:"quantity" validate:"required,gt=0"`
	Description string    `json:"description"`
	Note        string    `json:"note"`
}

type inventoryService struct {
	productRepo     repository.ProductRepository
	supplierRepo    repository.SupplierRepository
	categoryRepo    repository.CategoryRepository
	transactionRepo repository.TransactionRepository
	db              *gorm.DB
}

func NewInventoryService(
	pRepo repository.ProductRepository,
	sRepo repository.SupplierRepository,
	cRepo repository.CategoryRepository,
	tRepo repository.TransactionRepository,
	db *gorm.DB,
) InventoryService {
	return &inventoryService{
		productRepo:     pRepo,
		supplierRepo:    sRepo,
		categoryRepo:    cRepo,
		transactionRepo: tRepo,
		db:              db,
	}
}

func (s *inventoryService) CreateProduct(req *model.Product, actorID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// SKU must stay unique
	existing, _ := s.productRepo.FindBySKU(req.SKU)
	if existing != nil && existing.ID != uuid.Nil {
		return ErrSKUExists
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*req.CategoryID); err != nil {
			return ErrCategoryNotFound
		}
	}

	req.CreatedBy = actorID
	req.UpdatedBy = actorID

	return s.productRepo.Create(req)
}

// UpdateProduct applies a partial update: only fields the request actually
// carries replace the stored values. Stock quantity moves through the
// purchase/sale path, not here, unless an admin explicitly corrects it to a
// non-negative value.
func (s *inventoryService) UpdateProduct(id uuid.UUID, req *model.Product, actorID string) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.SKU != "" && req.SKU != existing.SKU {
		duplicate, _ := s.productRepo.FindBySKU(req.SKU)
		if duplicate != nil && duplicate.ID != uuid.Nil {
			return nil, ErrSKUExists
		}
		existing.SKU = req.SKU
	}
	if req.Description != "" {
		existing.Description = req.Description
	}
	if req.Price > 0 {
		existing.Price = req.Price
	}
	if req.StockQuantity >= 0 && req.StockQuantity != existing.StockQuantity {
		existing.StockQuantity = req.StockQuantity
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*req.CategoryID); err != nil {
			return nil, ErrCategoryNotFound
		}
		existing.CategoryID = req.CategoryID
	}
	if req.ImageRef != "" {
		existing.ImageRef = req.ImageRef
	}
	existing.UpdatedBy = actorID

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *inventoryService) DeleteProduct(id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(id)
}

func (s *inventoryService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *inventoryService) GetProductByID(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *inventoryService) SearchProducts(input string) ([]model.Product, error) {
	return s.productRepo.Search(input)
}

func (s *inventoryService) Purchase(req *StockRequest, actorID string) (*model.Transaction, error) {
	if req.SupplierID == uuid.Nil {
		return nil, errors.New("Validation failed: Field 'supplier_id' is required for purchases")
	}
	if _, err := s.supplierRepo.FindByID(req.SupplierID); err != nil {
		return nil, ErrSupplierNotFound
	}
	return s.recordTransaction(model.TxPurchase, req, actorID)
}

func (s *inventoryService) Sell(req *StockRequest, actorID string) (*model.Transaction, error) {
	return s.recordTransaction(model.TxSale, req, actorID)
}

// recordTransaction applies the stock delta and appends the ledger entry in
// one database transaction. The product row is locked for the duration so
// concurrent submissions cannot interleave their stock math.
func (s *inventoryService) recordTransaction(txType model.TransactionType, req *StockRequest, actorID string) (*model.Transaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	var entry *model.Transaction

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&product, "id = ?", req.ProductID).Error; err != nil {
			return ErrProductNotFound
		}

		newStock := product.StockQuantity
		switch txType {
		case model.TxPurchase:
			newStock += req.Quantity
		case model.TxSale:
			// Stock sufficiency invariant: a sale may not drive the
			// quantity below zero.
			if product.StockQuantity < req.Quantity {
				return ErrInsufficientStock
			}
			newStock -= req.Quantity
		}

		if err := s.productRepo.UpdateStock(tx, product.ID, newStock, actorID); err != nil {
			return err
		}

		record := &model.Transaction{
			Type:                   txType,
			ProductID:              product.ID,
			Quantity:               req.Quantity,
			Description:            req.Description,
			Note:                   req.Note,
			ResultingStockQuantity: newStock,
		}
		if txType == model.TxPurchase {
			supplierID := req.SupplierID
			record.SupplierID = &supplierID
		}
		record.CreatedBy = actorID
		record.UpdatedBy = actorID

		if err := tx.Create(record).Error; err != nil {
			return err
		}

		product.StockQuantity = newStock
		record.Product = &product
		entry = record
		return nil
	})

	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *inventoryService) GetAllTransactions() ([]model.Transaction, error) {
	return s.transactionRepo.FindAll()
}

func (s *inventoryService) GetTransactionByID(id uuid.UUID) (*model.Transaction, error) {
	return s.transactionRepo.FindByID(id)
}
