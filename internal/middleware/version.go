package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// VersionMiddleware parses the X-Api-Version header, rejects unsupported
// majors and stores the negotiated version in context.
func VersionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := c.Get("X-Api-Version", "1.0.0")

		// Support version aliases
		if version == "1" || version == "1.0" {
			version = "1.0.0"
		}

		if !strings.HasPrefix(version, "1.") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Unsupported API version: " + version,
			})
		}

		c.Locals("apiVersion", version)

		return c.Next()
	}
}
