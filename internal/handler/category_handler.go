package handler

import (
	"go-inventory-console/internal/model"
	"go-inventory-console/internal/repository"
	"go-inventory-console/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	repo repository.CategoryRepository
}

func NewCategoryHandler(repo repository.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{repo: repo}
}

func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.repo.FindAll()
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}
	return ok(c, 200, "success", fiber.Map{"categories": categories})
}

func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var category model.Category
	if err := c.BodyParser(&category); err != nil {
		return fail(c, 400, "Invalid JSON")
	}
	if errs := validator.ValidateStruct(&category); len(errs) > 0 {
		return fail(c, 400, "Category name is required")
	}

	category.CreatedBy = actorID(c)
	category.UpdatedBy = actorID(c)
	if err := h.repo.Create(&category); err != nil {
		return fail(c, 409, "A category with this name already exists")
	}
	return ok(c, 201, "Category successfully saved", fiber.Map{"category": category})
}

func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid category ID")
	}

	existing, err := h.repo.FindByID(id)
	if err != nil {
		return fail(c, 404, "Category Not Found")
	}

	var req model.Category
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}
	if req.Name != "" {
		existing.Name = req.Name
	}
	existing.UpdatedBy = actorID(c)

	if err := h.repo.Update(existing); err != nil {
		return fail(c, 500, "Failed to update category")
	}
	return ok(c, 200, "Category Updated successfully", fiber.Map{"category": existing})
}

func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid category ID")
	}

	if _, err := h.repo.FindByID(id); err != nil {
		return fail(c, 404, "Category Not Found")
	}
	if err := h.repo.Delete(id); err != nil {
		return fail(c, 500, "Failed to delete category")
	}
	return ok(c, 200, "Category Deleted successfully", nil)
}
