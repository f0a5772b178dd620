package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/itracol/collections-backend/internal/services"
	"github.com/itracol/collections-backend/internal/utils"
	"gorm.io/gorm"
)

// UsersHandler handles user listing
type UsersHandler struct {
	DB *gorm.DB
}

// List handles GET /api/users
// @Summary List all users
// @Tags Users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /users [get]
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := services.ListUsers(h.DB)
	if err != nil {
		return err
	}
	return utils.Success(c, fiber.Map{"users": users})
}
