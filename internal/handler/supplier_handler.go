package handler

import (
	"go-inventory-console/internal/model"
	"go-inventory-console/internal/repository"
	"go-inventory-console/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// SupplierHandler is plain CRUD over the supplier repository
type SupplierHandler struct {
	repo repository.SupplierRepository
}

func NewSupplierHandler(repo repository.SupplierRepository) *SupplierHandler {
	return &SupplierHandler{repo: repo}
}

func (h *SupplierHandler) GetSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.repo.FindAll()
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}
	return ok(c, 200, "success", fiber.Map{"suppliers": suppliers})
}

func (h *SupplierHandler) GetSupplier(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid supplier ID")
	}

	supplier, err := h.repo.FindByID(id)
	if err != nil {
		return fail(c, 404, "Supplier Not Found")
	}
	return ok(c, 200, "success", fiber.Map{"supplier": supplier})
}

func (h *SupplierHandler) CreateSupplier(c *fiber.Ctx) error {
	var supplier model.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		return fail(c, 400, "Invalid JSON")
	}
	if errs := validator.ValidateStruct(&supplier); len(errs) > 0 {
		return fail(c, 400, "Supplier name is required")
	}

	supplier.CreatedBy = actorID(c)
	supplier.UpdatedBy = actorID(c)
	if err := h.repo.Create(&supplier); err != nil {
		return fail(c, 500, "Failed to save supplier")
	}
	return ok(c, 201, "Supplier successfully saved", fiber.Map{"supplier": supplier})
}

func (h *SupplierHandler) UpdateSupplier(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid supplier ID")
	}

	existing, err := h.repo.FindByID(id)
	if err != nil {
		return fail(c, 404, "Supplier Not Found")
	}

	var req model.Supplier
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}

	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.ContactInfo != "" {
		existing.ContactInfo = req.ContactInfo
	}
	if req.Address != "" {
		existing.Address = req.Address
	}
	existing.UpdatedBy = actorID(c)

	if err := h.repo.Update(existing); err != nil {
		return fail(c, 500, "Failed to update supplier")
	}
	return ok(c, 200, "Supplier Updated successfully", fiber.Map{"supplier": existing})
}

func (h *SupplierHandler) DeleteSupplier(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid supplier ID")
	}

	if _, err := h.repo.FindByID(id); err != nil {
		return fail(c, 404, "Supplier Not Found")
	}
	if err := h.repo.Delete(id); err != nil {
		return fail(c, 500, "Failed to delete supplier")
	}
	return ok(c, 200, "Supplier Deleted successfully", nil)
}
