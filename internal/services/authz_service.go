package services

import (
	"errors"

	"github.com/itracol/collections-backend/internal/models"
	"github.com/itracol/collections-backend/internal/types"
	"gorm.io/gorm"
)

// canMutate is the single ownership rule: the caller mutates a resource iff
// they own it or hold admin rights. Collections apply it directly, items
// after resolving their parent collection.
func canMutate(claim Claim, ownerID uint64) bool {
	return claim.IsAdmin || claim.UserID == ownerID
}

// AuthorizeOwner applies the ownership rule against a bare user id, e.g.
// creating a collection on someone's behalf.
func AuthorizeOwner(claim Claim, userID uint64) error {
	if !canMutate(claim, userID) {
		return types.NewUnauthorizedError()
	}
	return nil
}

// AuthorizeCollectionMutation resolves the collection's owner and applies
// the ownership rule. A missing collection is NotFound, not Unauthorized.
func AuthorizeCollectionMutation(db *gorm.DB, claim Claim, collectionID uint64) error {
	var coll models.Collection
	if err := db.Select("id", "user_id").First(&coll, collectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.NewNotFoundError("No such collection!")
		}
		return err
	}

	if !canMutate(claim, coll.UserID) {
		return types.NewUnauthorizedError()
	}
	return nil
}

// AuthorizeItemMutation is the two-hop variant: item to collection to owner.
// Either hop missing is NotFound.
func AuthorizeItemMutation(db *gorm.DB, claim Claim, itemID uint64) error {
	var item models.Item
	if err := db.Select("id", "collection_id").First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.NewNotFoundError("No such item!")
		}
		return err
	}

	return AuthorizeCollectionMutation(db, claim, item.CollectionID)
}
