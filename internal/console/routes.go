package console

import (
	"go-inventory-console/internal/authz"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes declares every screen with its required access class.
// The guard is the sole integration point: no screen mounts without a
// decision from the policy.
func RegisterRoutes(app *fiber.App, guard *Guard, h *Handler) {
	// Public entry points
	app.Post("/register", guard.Protect(authz.Public), h.Register)
	app.Post("/login", guard.Protect(authz.Public), h.Login)
	app.Get("/login", guard.Protect(authz.Public), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": 200, "message": "Please log in"})
	})

	// Admin screens
	app.Get("/category", guard.Protect(authz.AdminOnly), h.Categories)
	app.Post("/category", guard.Protect(authz.AdminOnly), h.AddCategory)
	app.Put("/category/:categoryId", guard.Protect(authz.AdminOnly), h.EditCategory)
	app.Delete("/category/:categoryId", guard.Protect(authz.AdminOnly), h.RemoveCategory)

	app.Post("/add-supplier", guard.Protect(authz.AdminOnly), h.AddSupplier)
	app.Get("/edit-supplier/:supplierId", guard.Protect(authz.AdminOnly), h.SupplierDetails)
	app.Put("/edit-supplier/:supplierId", guard.Protect(authz.AdminOnly), h.EditSupplier)
	app.Delete("/supplier/:supplierId", guard.Protect(authz.AdminOnly), h.RemoveSupplier)

	app.Post("/add-product", guard.Protect(authz.AdminOnly), h.AddProduct)
	app.Put("/edit-product/:productId", guard.Protect(authz.AdminOnly), h.EditProduct)
	app.Delete("/product/:productId", guard.Protect(authz.AdminOnly), h.RemoveProduct)

	// Admin and manager screens
	app.Get("/supplier", guard.Protect(authz.AdminOrManager), h.Suppliers)
	app.Get("/product", guard.Protect(authz.AdminOrManager), h.Products)

	// Authenticated screens. Purchase/sell carry a second, manager-only
	// gate inside the handler and again inside the processor.
	app.Get("/purchase", guard.Protect(authz.Authenticated), h.PurchasePage)
	app.Post("/purchase", guard.Protect(authz.Authenticated), h.SubmitPurchase)
	app.Get("/sell", guard.Protect(authz.Authenticated), h.SellPage)
	app.Post("/sell", guard.Protect(authz.Authenticated), h.SubmitSale)

	app.Get("/transaction", guard.Protect(authz.Authenticated), h.Transactions)
	app.Get("/transaction/:transactionId", guard.Protect(authz.Authenticated), h.TransactionDetails)

	app.Get("/profile", guard.Protect(authz.Authenticated), h.Profile)
	app.Get("/dashboard", guard.Protect(authz.Authenticated), h.Dashboard)
	app.Post("/logout", guard.Protect(authz.Authenticated), h.Logout)
}
