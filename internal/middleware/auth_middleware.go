package middleware

import (
	"strings"

	"go-inventory-console/internal/authz"
	"go-inventory-console/internal/repository"
	"go-inventory-console/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the bearer token and sets the caller's identity in
// the request context
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"status": 401, "message": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"status": 401, "message": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"status": 401, "message": "Invalid or expired token"})
		}

		// The role claim alone is not trusted across the user's lifetime:
		// deactivation and role changes must take effect before expiry.
		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"status": 401, "message": "User not found"})
		}
		if !user.IsActive {
			return c.Status(401).JSON(fiber.Map{"status": 401, "message": "User account is inactive"})
		}

		c.Locals("user_id", user.ID.String())
		c.Locals("user_email", user.Email)
		c.Locals("user_name", user.Name)
		c.Locals("user_role", user.Role)

		return c.Next()
	}
}

// RoleFromCtx reads the authenticated caller's role set by RequireAuth.
// Absence reads as unauthenticated, which every policy check denies.
func RoleFromCtx(c *fiber.Ctx) authz.Role {
	role, ok := c.Locals("user_role").(authz.Role)
	if !ok {
		return authz.RoleNone
	}
	return role
}

// RequireAccess applies the authorization policy for the given access class
func RequireAccess(class authz.AccessClass) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if authz.Authorize(class, RoleFromCtx(c)) == authz.Allow {
			return c.Next()
		}
		return c.Status(403).JSON(fiber.Map{"status": 403, "message": "Access Denied"})
	}
}

// RequireManager gates stock transaction recording. Admins are denied here
// on purpose, the gate is manager-exclusive.
func RequireManager() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if authz.CanRecordTransactions(RoleFromCtx(c)) {
			return c.Next()
		}
		return c.Status(403).JSON(fiber.Map{"status": 403, "message": "Only Managers can record stock transactions"})
	}
}
