package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-inventory-console/internal/authz"
	"go-inventory-console/internal/handler"
	"go-inventory-console/internal/middleware"
	"go-inventory-console/internal/model"
	"go-inventory-console/internal/repository"
	"go-inventory-console/internal/service"
	"go-inventory-console/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup database
	db := database.ConnectDB()
	db.AutoMigrate(&model.User{}, &model.Category{}, &model.Supplier{}, &model.Product{}, &model.Transaction{})

	// 3. Seed default admin user
	seedAdmin(db)

	// 4. Dependency injection (wiring layers)
	productRepo := repository.NewProductRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	userRepo := repository.NewUserRepo(db)

	invService := service.NewInventoryService(productRepo, supplierRepo, categoryRepo, txRepo, db)
	dashService := service.NewDashboardService(txRepo)
	authService := service.NewAuthService(userRepo)

	invHandler := handler.NewInventoryHandler(invService)
	supplierHandler := handler.NewSupplierHandler(supplierRepo)
	categoryHandler := handler.NewCategoryHandler(categoryRepo)
	dashHandler := handler.NewDashboardHandler(dashService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userRepo)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Inventory API v1.0",
	})

	app.Use(logger.New())  // Request logging
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())

	// 6. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Reads for any authenticated staff member
	protected.Get("/products", invHandler.GetProducts)
	protected.Get("/products/:id", invHandler.GetProduct)
	protected.Get("/suppliers", supplierHandler.GetSuppliers)
	protected.Get("/suppliers/:id", supplierHandler.GetSupplier)
	protected.Get("/categories", categoryHandler.GetCategories)
	protected.Get("/transactions", invHandler.GetTransactions)
	protected.Get("/transactions/:id", invHandler.GetTransaction)
	protected.Get("/dashboard/stats", dashHandler.GetDashboardStats)
	protected.Get("/dashboard/stock-movement", dashHandler.GetStockMovement)
	protected.Get("/me", userHandler.GetCurrentUser)

	// Catalog mutations are admin work
	adminOnly := middleware.RequireAccess(authz.AdminOnly)
	protected.Post("/products", adminOnly, invHandler.CreateProduct)
	protected.Put("/products/:id", adminOnly, invHandler.UpdateProduct)
	protected.Delete("/products/:id", adminOnly, invHandler.DeleteProduct)
	protected.Post("/suppliers", adminOnly, supplierHandler.CreateSupplier)
	protected.Put("/suppliers/:id", adminOnly, supplierHandler.UpdateSupplier)
	protected.Delete("/suppliers/:id", adminOnly, supplierHandler.DeleteSupplier)
	protected.Post("/categories", adminOnly, categoryHandler.CreateCategory)
	protected.Put("/categories/:id", adminOnly, categoryHandler.UpdateCategory)
	protected.Delete("/categories/:id", adminOnly, categoryHandler.DeleteCategory)
	protected.Get("/users", adminOnly, userHandler.GetUsers)

	// Stock transactions are manager-exclusive
	protected.Post("/purchases", middleware.RequireManager(), invHandler.CreatePurchase)
	protected.Post("/sales", middleware.RequireManager(), invHandler.CreateSale)

	// 7. Graceful shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedAdmin creates the default admin user if it doesn't exist
func seedAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}

	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	admin := &model.User{
		Email:    email,
		Name:     "Administrator",
		Role:     authz.RoleAdmin,
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	if err := admin.SetPassword(password); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
	} else {
		log.Printf("Admin user created: %s", email)
	}
}
