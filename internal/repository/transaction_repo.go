package repository

import (
	"time"

	"go-inventory-console/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	FindAll() ([]model.Transaction, error)
	FindByID(id uuid.UUID) (*model.Transaction, error)
	GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error)
	GetDashboardStats() (*DashboardStats, error)
}

// StockMovementData aggregates ledger quantities per day for chart data
type StockMovementData struct {
	Date      string `json:"date"`
	Purchased int    `json:"purchased"`
	Sold      int    `json:"sold"`
}

// DashboardStats for overview stats
type DashboardStats struct {
	TotalProducts     int64 `json:"total_products"`
	TotalTransactions int64 `json:"total_transactions"`
	LowStockCount     int64 `json:"low_stock_count"`
	TotalValuation    int64 `json:"total_valuation"`
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) FindAll() ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Preload("Product").Preload("Supplier").Order("created_at DESC").Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.Preload("Product").Preload("Supplier").First(&transaction, "id = ?", id).Error
	return &transaction, err
}

func (r *transactionRepo) GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error) {
	var results []StockMovementData

	rows, err := r.db.Model(&model.Transaction{}).
		Select(`
			DATE(created_at) as date,
			COALESCE(SUM(CASE WHEN type = 'PURCHASE' THEN quantity ELSE 0 END), 0) as purchased,
			COALESCE(SUM(CASE WHEN type = 'SALE' THEN quantity ELSE 0 END), 0) as sold
		`).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Date, &data.Purchased, &data.Sold); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

func (r *transactionRepo) GetDashboardStats() (*DashboardStats, error) {
	var stats DashboardStats

	r.db.Model(&model.Product{}).Count(&stats.TotalProducts)
	r.db.Model(&model.Transaction{}).Count(&stats.TotalTransactions)

	// Low stock threshold: fewer than 10 units on hand
	r.db.Model(&model.Product{}).Where("stock_quantity < ?", 10).Count(&stats.LowStockCount)

	// Valuation: SUM of stock_quantity * price
	r.db.Model(&model.Product{}).Select("COALESCE(SUM(stock_quantity * price), 0)").Scan(&stats.TotalValuation)

	return &stats, nil
}
