package services

import (
	"encoding/json"
	"errors"

	"github.com/itracol/collections-backend/internal/models"
	"github.com/itracol/collections-backend/internal/schema"
	"github.com/itracol/collections-backend/internal/types"
	"github.com/itracol/collections-backend/internal/validation"
	"gorm.io/gorm"
)

// GetItem fetches one item by id.
func GetItem(db *gorm.DB, id uint64) (*models.Item, error) {
	var item models.Item
	if err := db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("No such item!")
		}
		return nil, err
	}
	return &item, nil
}

// GetItemsForCollection lists the items of a collection. The caller resolves
// the collection first; an empty list here is not a 404.
func GetItemsForCollection(db *gorm.DB, collectionID uint64) ([]models.Item, error) {
	var items []models.Item
	if err := db.Where("collection_id = ?", collectionID).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CreateItem maps a validated payload onto a new item row under its
// collection.
func CreateItem(db *gorm.DB, p validation.ItemPayload) (*models.Item, error) {
	item := models.Item{
		CollectionID: p.CollectionID.Uint64(),
	}
	assignItemFields(&item, p)

	if err := db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem replaces every mutable field of an item: updates are full-row
// at the field level, never partial. The parent collection is immutable.
func UpdateItem(db *gorm.DB, id uint64, p validation.ItemPayload) error {
	item, err := GetItem(db, id)
	if err != nil {
		return err
	}

	assignItemFields(item, p)
	return db.Save(item).Error
}

// DeleteItem removes one item.
func DeleteItem(db *gorm.DB, id uint64) error {
	result := db.Delete(&models.Item{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return types.NewNotFoundError("No such item!")
	}
	return nil
}

// assignItemFields copies the 15 slots plus name and tags from a validated
// payload. Null date slots fall back to the stored default.
func assignItemFields(item *models.Item, p validation.ItemPayload) {
	item.Name = *p.Name
	item.Tags = models.JSON{JSON: append([]byte(nil), p.Tags...)}

	item.CustomStr1Value = *p.CustomStr1Value
	item.CustomStr2Value = *p.CustomStr2Value
	item.CustomStr3Value = *p.CustomStr3Value

	item.CustomInt1Value = *p.CustomInt1Value
	item.CustomInt2Value = *p.CustomInt2Value
	item.CustomInt3Value = *p.CustomInt3Value

	item.CustomDate1Value = dateOrDefault(p.CustomDate1Value)
	item.CustomDate2Value = dateOrDefault(p.CustomDate2Value)
	item.CustomDate3Value = dateOrDefault(p.CustomDate3Value)

	item.CustomBool1Value = *p.CustomBool1Value
	item.CustomBool2Value = *p.CustomBool2Value
	item.CustomBool3Value = *p.CustomBool3Value

	item.CustomMultext1Value = *p.CustomMultext1Value
	item.CustomMultext2Value = *p.CustomMultext2Value
	item.CustomMultext3Value = *p.CustomMultext3Value
}

func dateOrDefault(raw json.RawMessage) types.Date {
	var d types.Date
	if len(raw) == 0 || d.UnmarshalJSON(raw) != nil || d.Time().IsZero() {
		return types.NewDate(2024, 1, 1)
	}
	return d
}

// ActiveValues renders the consumer-facing view of an item: display label to
// value for the slots the collection's schema document enables. Inactive
// slots are treated as absent. An enabled but unnamed slot falls back to its
// positional key.
func ActiveValues(doc schema.Document, item *models.Item) map[string]interface{} {
	out := make(map[string]interface{})
	for _, s := range doc.Active() {
		label := doc[s].Name
		if label == "" {
			label = s.Key()
		}
		out[label] = item.SlotValue(s)
	}
	return out
}
