package helpers

import (
	"encoding/json"
	"testing"

	"gorm.io/gorm"

	"github.com/itracol/collections-backend/internal/models"
	"github.com/itracol/collections-backend/internal/schema"
	"github.com/itracol/collections-backend/internal/services"
)

// CreateTestUser creates a user through the service layer so the password is
// hashed the same way signup hashes it.
func CreateTestUser(t *testing.T, db *gorm.DB, name, password string, isAdmin bool) *models.User {
	t.Helper()

	user, err := services.CreateUser(db, name, password)
	if err != nil {
		t.Fatalf("Failed to create user %s: %v", name, err)
	}

	if isAdmin {
		if err := db.Model(user).Update("is_admin", true).Error; err != nil {
			t.Fatalf("Failed to promote user %s: %v", name, err)
		}
		user.IsAdmin = true
	}
	return user
}

// CreateTestCollection creates a collection with the default slot document.
func CreateTestCollection(t *testing.T, db *gorm.DB, userID uint64, name string) *models.Collection {
	t.Helper()
	return CreateTestCollectionWithSchema(t, db, userID, name, schema.Default())
}

// CreateTestCollectionWithSchema creates a collection with the given slot
// document.
func CreateTestCollectionWithSchema(t *testing.T, db *gorm.DB, userID uint64, name string, doc schema.Document) *models.Collection {
	t.Helper()

	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal slot document: %v", err)
	}

	coll := models.Collection{
		UserID:      userID,
		Name:        name,
		Topic:       models.TopicOther,
		ItemsSchema: models.JSON{JSON: raw},
	}
	if err := db.Create(&coll).Error; err != nil {
		t.Fatalf("Failed to create collection %s: %v", name, err)
	}
	return &coll
}

// CreateTestItem creates an item in a collection with empty slot values.
func CreateTestItem(t *testing.T, db *gorm.DB, collectionID uint64, name string) *models.Item {
	t.Helper()

	item := models.Item{
		CollectionID: collectionID,
		Name:         name,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("Failed to create item %s: %v", name, err)
	}
	return &item
}

// ItemPayloadFixture returns a full, valid item payload for the token
// envelope. Each field can be overridden after the fact.
func ItemPayloadFixture(collectionID uint64, name string) map[string]interface{} {
	return map[string]interface{}{
		"collection_id": collectionID,
		"name":          name,
		"tags":          []string{},

		"custom_str1_value": "",
		"custom_str2_value": "",
		"custom_str3_value": "",

		"custom_int1_value": 0,
		"custom_int2_value": 0,
		"custom_int3_value": 0,

		"custom_date1_value": nil,
		"custom_date2_value": nil,
		"custom_date3_value": nil,

		"custom_bool1_value": false,
		"custom_bool2_value": false,
		"custom_bool3_value": false,

		"custom_multext1_value": "",
		"custom_multext2_value": "",
		"custom_multext3_value": "",
	}
}

// CollectionPayloadFixture returns a valid collection payload with the
// default slot document.
func CollectionPayloadFixture(userID uint64, name string) map[string]interface{} {
	return map[string]interface{}{
		"user_id":     userID,
		"name":        name,
		"topic":       "other",
		"itemsSchema": schema.Default(),
	}
}
