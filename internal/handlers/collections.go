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

// CollectionsHandler handles collection routes
type CollectionsHandler struct {
	DB *gorm.DB
}

// ListForUser handles GET /api/collections/user-:user_id
// @Summary List a user's collections
// @Tags Collections
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /collections/user-{user_id} [get]
func (h *CollectionsHandler) ListForUser(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "user_id")
	if err != nil {
		return err
	}

	if _, err := services.GetUser(h.DB, userID); err != nil {
		return err
	}

	collections, err := services.GetCollectionsForUser(h.DB, userID)
	if err != nil {
		return err
	}
	return utils.Success(c, fiber.Map{"collections": collections})
}

// GetOne handles GET /api/collections/one/:collectionId
// @Summary Get one collection
// @Tags Collections
// @Produce json
// @Param collectionId path int true "Collection ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /collections/one/{collectionId} [get]
func (h *CollectionsHandler) GetOne(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "collectionId")
	if err != nil {
		return err
	}

	collection, err := services.GetCollection(h.DB, id)
	if err != nil {
		return err
	}
	return utils.Success(c, fiber.Map{"collection": collection})
}

// GetMany handles POST /api/collections/many; the payload is a list of ids
// (a bare id is tolerated).
// @Summary Get several collections by id
// @Tags Collections
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /collections/many [post]
func (h *CollectionsHandler) GetMany(c *fiber.Ctx) error {
	var body struct {
		Payload types.FlexList[types.FlexUint64] `json:"payload"`
	}
	if err := c.BodyParser(&body); err != nil {
		return types.NewValidationError("Invalid request body")
	}

	ids := make([]uint64, 0, len(body.Payload))
	for _, id := range body.Payload.Slice() {
		ids = append(ids, id.Uint64())
	}

	collections, err := services.GetManyCollections(h.DB, ids)
	if err != nil {
		return err
	}
	return utils.Success(c, fiber.Map{"collections": collections})
}

// Largest handles GET /api/collections/largest
// @Summary Top five collections by item count
// @Tags Collections
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /collections/largest [get]
func (h *CollectionsHandler) Largest(c *fiber.Ctx) error {
	collections, err := services.GetLargestCollections(h.DB)
	if err != nil {
		return err
	}
	return utils.Success(c, fiber.Map{"collections": collections})
}

// Create handles POST /api/collections/create
// @Summary Create a collection
// @Tags Collections
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /collections/create [post]
func (h *CollectionsHandler) Create(c *fiber.Ctx) error {
	claim, err := middleware.ClaimFromContext(c)
	if err != nil {
		return err
	}

	var payload validation.CollectionPayload
	if err := parsePayload(c, &payload); err != nil {
		return err
	}

	if err := validation.First(validation.NewCollection(payload)); err != nil {
		return err
	}

	if err := services.AuthorizeOwner(claim, payload.UserID.Uint64()); err != nil {
		return err
	}

	collection, err := services.CreateCollection(h.DB, payload)
	if err != nil {
		return err
	}

	return utils.Success(c, fiber.Map{
		"message":       "New collection was created successfully!",
		"newCollection": collection,
	})
}

// UpdateImage handles PUT /api/collections/updateImageUrl
// @Summary Update a collection's image URL
// @Tags Collections
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /collections/updateImageUrl [put]
func (h *CollectionsHandler) UpdateImage(c *fiber.Ctx) error {
	claim, err := middleware.ClaimFromContext(c)
	if err != nil {
		return err
	}

	var payload struct {
		CollectionID types.FlexUint64 `json:"collectionId"`
		ImageURL     string           `json:"imageUrl"`
	}
	if err := parsePayload(c, &payload); err != nil {
		return err
	}

	if len(payload.ImageURL) > validation.MaxImageURLLen {
		return types.NewValidationError("\"imageUrl\" is too long")
	}

	if err := services.AuthorizeCollectionMutation(h.DB, claim, payload.CollectionID.Uint64()); err != nil {
		return err
	}

	if err := services.UpdateCollectionImage(h.DB, payload.CollectionID.Uint64(), payload.ImageURL); err != nil {
		return err
	}
	return utils.SuccessMessage(c, "Image updated successfully!")
}

// Update handles PUT /api/collections/update
// @Summary Update a collection
// @Tags Collections
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /collections/update [put]
func (h *CollectionsHandler) Update(c *fiber.Ctx) error {
	claim, err := middleware.ClaimFromContext(c)
	if err != nil {
		return err
	}

	var payload struct {
		CollectionID  types.FlexUint64             `json:"collectionId"`
		NewCollection validation.CollectionPayload `json:"newCollection"`
	}
	if err := parsePayload(c, &payload); err != nil {
		return err
	}

	if err := services.AuthorizeCollectionMutation(h.DB, claim, payload.CollectionID.Uint64()); err != nil {
		return err
	}

	if err := validation.First(validation.UpdateCollection(payload.NewCollection)); err != nil {
		return err
	}

	if err := services.UpdateCollection(h.DB, payload.CollectionID.Uint64(), payload.NewCollection); err != nil {
		return err
	}
	return utils.SuccessMessage(c, "Collection was updated successfully!")
}

// Delete handles DELETE /api/collections/delete; items are removed with the
// collection in one transaction.
// @Summary Delete a collection and its items
// @Tags Collections
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /collections/delete [delete]
func (h *CollectionsHandler) Delete(c *fiber.Ctx) error {
	claim, err := middleware.ClaimFromContext(c)
	if err != nil {
		return err
	}

	var payload struct {
		CollectionID types.FlexUint64 `json:"collectionId"`
	}
	if err := parsePayload(c, &payload); err != nil {
		return err
	}

	if err := services.AuthorizeCollectionMutation(h.DB, claim, payload.CollectionID.Uint64()); err != nil {
		return err
	}

	if err := services.DeleteCollection(h.DB, payload.CollectionID.Uint64()); err != nil {
		return err
	}
	return utils.SuccessMessage(c, "Collection was deleted successfully!")
}
