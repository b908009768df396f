package handler

import (
	"go-inventory-console/internal/model"
	"go-inventory-console/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	repo repository.UserRepository
}

func NewUserHandler(repo repository.UserRepository) *UserHandler {
	return &UserHandler{repo: repo}
}

// GetUsers lists staff accounts without credential material
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.repo.FindAll()
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}

	responses := make([]model.UserResponse, len(users))
	for i := range users {
		responses[i] = users[i].ToResponse()
	}
	return ok(c, 200, "success", fiber.Map{"users": responses})
}

// GetCurrentUser returns the authenticated caller's own profile
func (h *UserHandler) GetCurrentUser(c *fiber.Ctx) error {
	id, err := parseUUID(actorID(c))
	if err != nil {
		return fail(c, 401, "Unauthorized")
	}

	user, err := h.repo.FindByID(id)
	if err != nil {
		return fail(c, 404, "user not found")
	}
	return ok(c, 200, "success", fiber.Map{"user": user.ToResponse()})
}
