package services

import (
	"encoding/json"
	"errors"

	"github.com/itracol/collections-backend/internal/models"
	"github.com/itracol/collections-backend/internal/schema"
	"github.com/itracol/collections-backend/internal/types"
	"github.com/itracol/collections-backend/internal/validation"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// TopCollectionsLimit is the size of the largest-collections listing.
const TopCollectionsLimit = 5

// GetCollection fetches one collection by id.
func GetCollection(db *gorm.DB, id uint64) (*models.Collection, error) {
	var coll models.Collection
	if err := db.First(&coll, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("No such collection!")
		}
		return nil, err
	}
	return &coll, nil
}

// GetCollectionsForUser lists a user's collections. The caller resolves the
// user first; an unknown user is its 404, an empty list here is not.
func GetCollectionsForUser(db *gorm.DB, userID uint64) ([]models.Collection, error) {
	var colls []models.Collection
	if err := db.Where("user_id = ?", userID).Order("id").Find(&colls).Error; err != nil {
		return nil, err
	}
	return colls, nil
}

// GetManyCollections fetches the collections for a list of ids. Unknown ids
// are silently skipped.
func GetManyCollections(db *gorm.DB, ids []uint64) ([]models.Collection, error) {
	var colls []models.Collection
	if len(ids) == 0 {
		return colls, nil
	}
	if err := db.Where("id IN ?", ids).Find(&colls).Error; err != nil {
		return nil, err
	}
	return colls, nil
}

// GetLargestCollections returns the top collections ordered descending by
// item count, ties broken by store-default order.
func GetLargestCollections(db *gorm.DB) ([]models.Collection, error) {
	var colls []models.Collection
	err := db.Model(&models.Collection{}).
		Clauses(hints.CommentBefore("select", "largest_collections")).
		Select("collections.*, COUNT(items.id) AS item_count").
		Joins("LEFT JOIN items ON items.collection_id = collections.id").
		Group("collections.id").
		Order("item_count DESC").
		Limit(TopCollectionsLimit).
		Find(&colls).Error
	if err != nil {
		return nil, err
	}
	return colls, nil
}

// CreateCollection maps a validated payload onto a new collection row,
// normalizing the items schema through Apply.
func CreateCollection(db *gorm.DB, p validation.CollectionPayload) (*models.Collection, error) {
	doc, err := schema.Apply(p.ItemsSchema)
	if err != nil {
		return nil, types.NewValidationError(err.Error())
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	coll := models.Collection{
		UserID:      p.UserID.Uint64(),
		Name:        *p.Name,
		ItemsSchema: models.JSON{JSON: raw},
	}
	if p.Topic != nil {
		coll.Topic = models.Topic(*p.Topic)
	}
	if p.Description != nil {
		coll.Description = *p.Description
	}
	if p.ImageURL != nil {
		coll.ImageURL = *p.ImageURL
	}

	if err := db.Create(&coll).Error; err != nil {
		return nil, err
	}
	return &coll, nil
}

// UpdateCollection replaces the mutable fields of a collection. The owner
// id is immutable and never touched.
func UpdateCollection(db *gorm.DB, id uint64, p validation.CollectionPayload) error {
	doc, err := schema.Apply(p.ItemsSchema)
	if err != nil {
		return types.NewValidationError(err.Error())
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	coll, err := GetCollection(db, id)
	if err != nil {
		return err
	}

	coll.Name = *p.Name
	coll.ItemsSchema = models.JSON{JSON: raw}
	if p.Topic != nil {
		coll.Topic = models.Topic(*p.Topic)
	}
	if p.Description != nil {
		coll.Description = *p.Description
	}
	if p.ImageURL != nil {
		coll.ImageURL = *p.ImageURL
	}

	return db.Save(coll).Error
}

// UpdateCollectionImage replaces only the image URL.
func UpdateCollectionImage(db *gorm.DB, id uint64, imageURL string) error {
	result := db.Model(&models.Collection{}).Where("id = ?", id).Update("image_url", imageURL)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return types.NewNotFoundError("No such collection!")
	}
	return nil
}

// DeleteCollection removes a collection and all of its items in one
// transaction, so a crash cannot orphan items or strand the row.
func DeleteCollection(db *gorm.DB, id uint64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var coll models.Collection
		if err := tx.Select("id").First(&coll, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewNotFoundError("No such collection!")
			}
			return err
		}

		if err := tx.Where("collection_id = ?", id).Delete(&models.Item{}).Error; err != nil {
			return err
		}
		return tx.Delete(&coll).Error
	})
}
