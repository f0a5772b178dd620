package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/itracol/collections-backend/internal/config"
	"github.com/itracol/collections-backend/internal/services"
	"github.com/itracol/collections-backend/internal/types"
	"github.com/itracol/collections-backend/internal/utils"
	"github.com/itracol/collections-backend/internal/validation"
	"gorm.io/gorm"
)

// AccountHandler handles authentication and registration
type AccountHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// Authenticate handles POST /api/account
// @Summary Authenticate a user
// @Description Check credentials and issue a signed token
// @Tags Account
// @Accept json
// @Produce json
// @Param body body validation.UserPayload true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /account [post]
func (h *AccountHandler) Authenticate(c *fiber.Ctx) error {
	var credentials validation.UserPayload
	if err := c.BodyParser(&credentials); err != nil {
		return types.NewAuthenticationError()
	}

	user, err := services.AuthenticateUser(h.DB, credentials.Name, credentials.Password)
	if err != nil {
		return err
	}

	token, err := services.IssueToken(h.Cfg, user)
	if err != nil {
		return err
	}

	return utils.Success(c, fiber.Map{
		"message": "User authenticated successfully!",
		"user":    user,
		"token":   token,
	})
}

// Signup handles POST /api/account/signup
// @Summary Register a new user
// @Description Validate credentials, create the user and issue a token
// @Tags Account
// @Accept json
// @Produce json
// @Param body body validation.UserPayload true "New user"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /account/signup [post]
func (h *AccountHandler) Signup(c *fiber.Ctx) error {
	var payload validation.UserPayload
	if err := c.BodyParser(&payload); err != nil {
		return types.NewValidationError("Invalid request body")
	}

	if err := validation.First(validation.User(payload)); err != nil {
		return err
	}

	user, err := services.CreateUser(h.DB, payload.Name, payload.Password)
	if err != nil {
		return err
	}

	token, err := services.IssueToken(h.Cfg, user)
	if err != nil {
		return err
	}

	return utils.Success(c, fiber.Map{
		"message": "New user was created successfully!",
		"user":    user,
		"token":   token,
	})
}
