package handler

import (
	"errors"

	"go-inventory-console/internal/model"
	"go-inventory-console/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	if input := c.Query("search"); input != "" {
		products, err := h.service.SearchProducts(input)
		if err != nil {
			return fail(c, 500, "Internal Server Error")
		}
		if len(products) == 0 {
			return fail(c, 404, "Product Not Found")
		}
		return ok(c, 200, "success", fiber.Map{"products": products})
	}

	products, err := h.service.GetAllProducts()
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}
	return ok(c, 200, "success", fiber.Map{"products": products})
}

func (h *InventoryHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid product ID")
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		return fail(c, 404, "Product Not Found")
	}
	return ok(c, 200, "success", fiber.Map{"product": product})
}

func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return fail(c, 400, "Invalid JSON")
	}

	if err := h.service.CreateProduct(&product, actorID(c)); err != nil {
		if errors.Is(err, service.ErrSKUExists) {
			return fail(c, 409, err.Error())
		}
		if errors.Is(err, service.ErrCategoryNotFound) {
			return fail(c, 404, err.Error())
		}
		return fail(c, 400, err.Error())
	}

	return ok(c, 201, "Product successfully saved", fiber.Map{"product": product})
}

func (h *InventoryHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid product ID")
	}

	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return fail(c, 400, "Invalid JSON")
	}

	updated, err := h.service.UpdateProduct(id, &product, actorID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound), errors.Is(err, service.ErrCategoryNotFound):
			return fail(c, 404, err.Error())
		case errors.Is(err, service.ErrSKUExists):
			return fail(c, 409, err.Error())
		default:
			return fail(c, 400, err.Error())
		}
	}

	return ok(c, 200, "Product Updated successfully", fiber.Map{"product": updated})
}

func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid product ID")
	}

	if err := h.service.DeleteProduct(id); err != nil {
		return fail(c, 404, "Product Not Found")
	}
	return ok(c, 200, "Product Deleted successfully", nil)
}

// CreatePurchase records received inventory
// POST /api/v1/purchases
func (h *InventoryHandler) CreatePurchase(c *fiber.Ctx) error {
	var req service.StockRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}

	entry, err := h.service.Purchase(&req, actorID(c))
	if err != nil {
		return stockError(c, err)
	}

	return ok(c, 201, "Purchase recorded successfully", fiber.Map{
		"transaction": entry,
		"product":     entry.Product,
	})
}

// CreateSale records issued inventory
// POST /api/v1/sales
func (h *InventoryHandler) CreateSale(c *fiber.Ctx) error {
	var req service.StockRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}

	entry, err := h.service.Sell(&req, actorID(c))
	if err != nil {
		return stockError(c, err)
	}

	return ok(c, 201, "Sale recorded successfully", fiber.Map{
		"transaction": entry,
		"product":     entry.Product,
	})
}

func stockError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrProductNotFound), errors.Is(err, service.ErrSupplierNotFound):
		return fail(c, 404, err.Error())
	case errors.Is(err, service.ErrInsufficientStock):
		return fail(c, 422, err.Error())
	default:
		return fail(c, 400, err.Error())
	}
}

func (h *InventoryHandler) GetTransactions(c *fiber.Ctx) error {
	transactions, err := h.service.GetAllTransactions()
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}
	return ok(c, 200, "success", fiber.Map{"transactions": transactions})
}

func (h *InventoryHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid transaction ID")
	}

	tx, err := h.service.GetTransactionByID(id)
	if err != nil {
		return fail(c, 404, "Transaction Not Found")
	}
	return ok(c, 200, "success", fiber.Map{"transaction": tx})
}
