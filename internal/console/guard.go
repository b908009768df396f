package console

import (
	"go-inventory-console/internal/authz"
	"go-inventory-console/internal/session"

	"github.com/gofiber/fiber/v2"
)

// Guard applies the authorization policy at every protected screen
// boundary. It reads the role from the session context, never mutates it,
// and resolves denials entirely by itself: anonymous callers are sent to
// the login entry point, under-privileged ones get a static denial.
type Guard struct {
	sessions  *session.Context
	loginPath string
}

func NewGuard(sessions *session.Context) *Guard {
	return &Guard{sessions: sessions, loginPath: "/login"}
}

// Protect returns middleware enforcing class for the routes behind it.
func (g *Guard) Protect(class authz.AccessClass) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := g.sessions.CurrentRole()
		if authz.Authorize(class, role) == authz.Allow {
			return c.Next()
		}
		if !g.sessions.IsAuthenticated() {
			return c.Redirect(g.loginPath, fiber.StatusSeeOther)
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  fiber.StatusForbidden,
			"message": "Access Denied",
		})
	}
}
