package handler

import (
	"errors"

	"go-inventory-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles account creation
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		return fail(c, 400, "Email, password, and name are required")
	}
	if len(req.Password) < 6 {
		return fail(c, 400, "Password must be at least 6 characters")
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return fail(c, 409, err.Error())
		}
		return fail(c, 400, err.Error())
	}

	return ok(c, 201, "User registered successfully", fiber.Map{"user": user})
}

// Login handles user authentication
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}

	if req.Email == "" || req.Password == "" {
		return fail(c, 400, "Email and password are required")
	}

	response, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return fail(c, 401, err.Error())
	}

	return ok(c, 200, "success", fiber.Map{
		"token":      response.Token,
		"expires_at": response.ExpiresAt,
		"user":       response.User,
	})
}
