package handler

import "github.com/gofiber/fiber/v2"

// ok answers the standard envelope: status, message, plus any payload
// fields the screen needs.
func ok(c *fiber.Ctx, status int, message string, payload fiber.Map) error {
	body := fiber.Map{"status": status, "message": message}
	for k, v := range payload {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"status": status, "message": message})
}

func actorID(c *fiber.Ctx) string {
	id, ok := c.Locals("user_id").(string)
	if !ok {
		return "system"
	}
	return id
}
