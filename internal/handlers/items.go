package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/itracol/collections-backend/internal/middleware"
	"github.com/itracol/collections-backend/internal/services"
	"github.com/itracol/collections-backend/internal/types"
	"github.com/itracol/collections-backend/internal/utils"
	"github.com/itracol/collections-backend/internal/validation"
	"gorm.io/gorm"
)

// ItemsHandler handles item routes
type ItemsHandler struct {
	DB *gorm.DB
}

// ListForCollection handles GET /api/items/:collectionId
// @Summary List the items of a collection
// @Tags Items
// @Produce json
// @Param collectionId path int true "Collection ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /items/{collectionId} [get]
func (h *ItemsHandler) ListForCollection(c *fiber.Ctx) error {
	collectionID, err := parseIDParam(c, "collectionId")
	if err != nil {
		return err
	}

	if _, err := services.GetCollection(h.DB, collectionID); err != nil {
		return err
	}

	items, err := services.GetItemsForCollection(h.DB, collectionID)
	if err != nil {
		return err
	}
	return utils.Success(c, fiber.Map{"items": items})
}

// GetOne handles GET /api/items/one/:itemId. Besides the raw row it returns
// an "active" map keyed by the display labels the parent collection's schema
// enables.
// @Summary Get one item
// @Tags Items
// @Produce json
// @Param itemId path int true "Item ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /items/one/{itemId} [get]
func (h *ItemsHandler) GetOne(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "itemId")
	if err != nil {
		return err
	}

	item, err := services.GetItem(h.DB, id)
	if err != nil {
		return err
	}

	collection, err := services.GetCollection(h.DB, item.CollectionID)
	if err != nil {
		return err
	}

	doc, err := collection.SchemaDocument()
	if err != nil {
		return err
	}

	return utils.Success(c, fiber.Map{
		"item":   item,
		"active": services.ActiveValues(doc, item),
	})
}

// Create handles POST /api/items/create
// @Summary Create an item
// @Tags Items
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /items/create [post]
func (h *ItemsHandler) Create(c *fiber.Ctx) error {
	claim, err := middleware.ClaimFromContext(c)
	if err != nil {
		return err
	}

	var payload validation.ItemPayload
	if err := parsePayload(c, &payload); err != nil {
		return err
	}

	if err := validation.First(validation.NewItem(payload)); err != nil {
		return err
	}

	if err := services.AuthorizeCollectionMutation(h.DB, claim, payload.CollectionID.Uint64()); err != nil {
		return err
	}

	item, err := services.CreateItem(h.DB, payload)
	if err != nil {
		return err
	}

	return utils.Success(c, fiber.Map{
		"message": "New item was created successfully!",
		"newItem": item,
	})
}

// Update handles PUT /api/items/update
// @Summary Update an item
// @Tags Items
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /items/update [put]
func (h *ItemsHandler) Update(c *fiber.Ctx) error {
	claim, err := middleware.ClaimFromContext(c)
	if err != nil {
		return err
	}

	var payload struct {
		ItemID  types.FlexUint64       `json:"itemId"`
		NewItem validation.ItemPayload `json:"newItem"`
	}
	if err := parsePayload(c, &payload); err != nil {
		return err
	}

	if err := services.AuthorizeItemMutation(h.DB, claim, payload.ItemID.Uint64()); err != nil {
		return err
	}

	if err := validation.First(validation.UpdateItem(payload.NewItem)); err != nil {
		return err
	}

	if err := services.UpdateItem(h.DB, payload.ItemID.Uint64(), payload.NewItem); err != nil {
		return err
	}
	return utils.SuccessMessage(c, "Item was updated successfully!")
}

// Delete handles DELETE /api/items/delete
// @Summary Delete an item
// @Tags Items
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /items/delete [delete]
func (h *ItemsHandler) Delete(c *fiber.Ctx) error {
	claim, err := middleware.ClaimFromContext(c)
	if err != nil {
		return err
	}

	var payload struct {
		ItemID types.FlexUint64 `json:"itemId"`
	}
	if err := parsePayload(c, &payload); err != nil {
		return err
	}

	if err := services.AuthorizeItemMutation(h.DB, claim, payload.ItemID.Uint64()); err != nil {
		return err
	}

	if err := services.DeleteItem(h.DB, payload.ItemID.Uint64()); err != nil {
		return err
	}
	return utils.SuccessMessage(c, "Item was deleted successfully!")
}
