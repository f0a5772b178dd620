package utils

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/itracol/collections-backend/internal/types"
)

// InternalErrorMessage is the generic message for unexpected failures;
// detail is logged, never exposed.
const InternalErrorMessage = "Sorry, we have some problems on server..."

// Success sends a 200 response with the standard envelope, merging the
// given payload fields.
func Success(c *fiber.Ctx, data fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range data {
		body[k] = v
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

// SuccessMessage sends a bare success acknowledgement.
func SuccessMessage(c *fiber.Ctx, message string) error {
	return Success(c, fiber.Map{"message": message})
}

// ErrorResponse sends an error in the standard envelope.
func ErrorResponse(c *fiber.Ctx, message string, status int) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// ErrorHandler maps errors to the response envelope clients parse. Known
// domain errors keep their message; anything else is a masked 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var customErr *types.CustomError
	if errors.As(err, &customErr) {
		return ErrorResponse(c, customErr.Message, customErr.Code)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ErrorResponse(c, fiberErr.Message, fiberErr.Code)
	}

	log.Printf("Unhandled error on %s %s: %v", c.Method(), c.OriginalURL(), err)
	return ErrorResponse(c, InternalErrorMessage, fiber.StatusInternalServerError)
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SuccessResponseStruct defines the schema for acknowledgement responses
type SuccessResponseStruct struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
