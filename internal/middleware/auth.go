package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/itracol/collections-backend/internal/config"
	"github.com/itracol/collections-backend/internal/services"
	"github.com/itracol/collections-backend/internal/types"
)

// Auth verifies the token carried in a mutation body and stores the
// resulting claim in the request context. Token failure is surfaced here,
// before any ownership logic runs; ownership itself is checked per-resource
// in the handlers.
func Auth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Token string `json:"token"`
		}
		if err := c.BodyParser(&body); err != nil || body.Token == "" {
			return types.NewInvalidTokenError()
		}

		claim, err := services.VerifyToken(cfg, body.Token)
		if err != nil {
			return err
		}

		c.Locals("claim", claim)
		return c.Next()
	}
}

// ClaimFromContext returns the claim stored by Auth.
func ClaimFromContext(c *fiber.Ctx) (services.Claim, error) {
	claim, ok := c.Locals("claim").(services.Claim)
	if !ok {
		return services.Claim{}, types.NewInvalidTokenError()
	}
	return claim, nil
}
