package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/itracol/collections-backend/internal/types"
)

// parsePayload decodes the mutation envelope {token, payload} and unmarshals
// the payload into dest. The token was already consumed by the auth
// middleware; handlers only care about the payload.
func parsePayload(c *fiber.Ctx, dest interface{}) error {
	var envelope struct {
		Payload json.RawMessage `json:"payload"`
	}
	if err := c.BodyParser(&envelope); err != nil {
		return types.NewValidationError("Invalid request body")
	}
	if len(envelope.Payload) == 0 {
		return types.NewValidationError("\"payload\" is required")
	}
	if err := json.Unmarshal(envelope.Payload, dest); err != nil {
		return types.NewValidationError("Invalid payload: " + err.Error())
	}
	return nil
}

// parseIDParam reads a numeric path parameter.
func parseIDParam(c *fiber.Ctx, name string) (uint64, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id < 0 {
		return 0, types.NewValidationError("\"" + name + "\" must be a number")
	}
	return uint64(id), nil
}
