package unit

import (
	"fmt"
	"strings"
	"testing"

	"github.com/itracol/collections-backend/internal/models"
	"github.com/itracol/collections-backend/internal/schema"
	"github.com/itracol/collections-backend/tests/helpers"
)

// TestCreateItem tests POST /api/items/create
func TestCreateItem(t *testing.T) {
	app, db, _ := helpers.NewTestApp(t)

	token, userID := helpers.AcquireAccount(t, app, helpers.UniqueUserName(), helpers.GeneratePassword())
	coll := helpers.CreateTestCollection(t, db, userID, "Books")

	payload := helpers.ItemPayloadFixture(coll.ID, "Moby Dick")
	payload["custom_str1_value"] = "Herman Melville"
	payload["custom_int1_value"] = 720
	payload["custom_date1_value"] = "1851-10-18"
	payload["custom_bool1_value"] = true

	resp := helpers.DoJSON(t, app, "POST", "/api/items/create", helpers.Mutation(token, payload))
	helpers.AssertStatus(t, resp, 200)
	body := helpers.ParseEnvelope(t, resp, true)
	helpers.AssertMessage(t, body, "New item was created successfully!")

	item, ok := body["newItem"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected newItem in response, got %v", body)
	}
	if item["name"] != "Moby Dick" {
		t.Errorf("Expected item name Moby Dick, got %q", item["name"])
	}
	if item["custom_str1_value"] != "Herman Melville" {
		t.Errorf("Expected str1 slot persisted, got %q", item["custom_str1_value"])
	}
	if item["custom_date1_value"] != "1851-10-18" {
		t.Errorf("Expected date slot 1851-10-18, got %q", item["custom_date1_value"])
	}
	// Null date slots fall back to the stored default
	if item["custom_date2_value"] != "2024-01-01" {
		t.Errorf("Expected defaulted date slot 2024-01-01, got %q", item["custom_date2_value"])
	}
}

// TestCreateItemValidation tests the all-slots-required rule and slot shapes
func TestCreateItemValidation(t *testing.T) {
	app, db, _ := helpers.NewTestApp(t)

	token, userID := helpers.AcquireAccount(t, app, helpers.UniqueUserName(), helpers.GeneratePassword())
	coll := helpers.CreateTestCollection(t, db, userID, "Books")

	// Missing a slot fails, there are no partial payloads
	payload := helpers.ItemPayloadFixture(coll.ID, "Incomplete")
	delete(payload, "custom_bool2_value")
	resp := helpers.DoJSON(t, app, "POST", "/api/items/create", helpers.Mutation(token, payload))
	helpers.AssertStatus(t, resp, 400)
	helpers.ParseEnvelope(t, resp, false)

	// Date slots are required too: null is fine, an absent key is not
	payload = helpers.ItemPayloadFixture(coll.ID, "No Date Key")
	delete(payload, "custom_date1_value")
	resp = helpers.DoJSON(t, app, "POST", "/api/items/create", helpers.Mutation(token, payload))
	helpers.AssertStatus(t, resp, 400)
	helpers.ParseEnvelope(t, resp, false)

	// String slot boundary: 255 passes, 256 fails
	payload = helpers.ItemPayloadFixture(coll.ID, "Boundary")
	payload["custom_str1_value"] = strings.Repeat("x", 255)
	resp = helpers.DoJSON(t, app, "POST", "/api/items/create", helpers.Mutation(token, payload))
	helpers.AssertStatus(t, resp, 200)
	helpers.ParseEnvelope(t, resp, true)

	payload["custom_str1_value"] = strings.Repeat("x", 256)
	resp = helpers.DoJSON(t, app, "POST", "/api/items/create", helpers.Mutation(token, payload))
	helpers.AssertStatus(t, resp, 400)
	helpers.ParseEnvelope(t, resp, false)

	// Characters above 'z' are rejected in string slots
	payload = helpers.ItemPayloadFixture(coll.ID, "Charset")
	payload["custom_str1_value"] = "curly{brace"
	resp = helpers.DoJSON(t, app, "POST", "/api/items/create", helpers.Mutation(token, payload))
	helpers.AssertStatus(t, resp, 400)
	helpers.ParseEnvelope(t, resp, false)

	// Unknown parent collection is a 404
	payload = helpers.ItemPayloadFixture(999999, "Orphan")
	resp = helpers.DoJSON(t, app, "POST", "/api/items/create", helpers.Mutation(token, payload))
	helpers.AssertStatus(t, resp, 404)
	body := helpers.ParseEnvelope(t, resp, false)
	helpers.AssertMessage(t, body, "No such collection!")
}

// TestListItems tests GET /api/items/:collectionId
func TestListItems(t *testing.T) {
	app, db, _ := helpers.NewTestApp(t)

	_, userID := helpers.AcquireAccount(t, app, helpers.UniqueUserName(), helpers.GeneratePassword())
	coll := helpers.CreateTestCollection(t, db, userID, "Books")
	helpers.CreateTestItem(t, db, coll.ID, "Moby Dick")

	resp := helpers.DoJSON(t, app, "GET", fmt.Sprintf("/api/items/%d", coll.ID), nil)
	helpers.AssertStatus(t, resp, 200)
	body := helpers.ParseEnvelope(t, resp, true)

	items, ok := body["items"].([]interface{})
	if !ok || len(items) != 1 {
		t.Fatalf("Expected 1 item, got %v", body["items"])
	}
	if items[0].(map[string]interface{})["name"] != "Moby Dick" {
		t.Errorf("Expected Moby Dick, got %v", items[0])
	}

	// Unknown collection is a 404, an empty collection is not
	resp = helpers.DoJSON(t, app, "GET", "/api/items/999999", nil)
	helpers.AssertStatus(t, resp, 404)
	body = helpers.ParseEnvelope(t, resp, false)
	helpers.AssertMessage(t, body, "No such collection!")

	empty := helpers.CreateTestCollection(t, db, userID, "Empty")
	resp = helpers.DoJSON(t, app, "GET", fmt.Sprintf("/api/items/%d", empty.ID), nil)
	helpers.AssertStatus(t, resp, 200)
	body = helpers.ParseEnvelope(t, resp, true)
	if items := body["items"].([]interface{}); len(items) != 0 {
		t.Errorf("Expected an empty list, got %v", items)
	}
}

// TestGetItemActiveValues verifies the label to value rendering of one item
func TestGetItemActiveValues(t *testing.T) {
	app, db, _ := helpers.NewTestApp(t)

	_, userID := helpers.AcquireAccount(t, app, helpers.UniqueUserName(), helpers.GeneratePassword())

	doc := schema.Default()
	doc[schema.Str1] = schema.Field{Name: "Author", State: true}
	doc[schema.Bool1] = schema.Field{State: true} // enabled but unnamed
	coll := helpers.CreateTestCollectionWithSchema(t, db, userID, "Books", doc)

	item := helpers.CreateTestItem(t, db, coll.ID, "Moby Dick")
	if err := db.Model(item).Update("custom_str1_value", "Herman Melville").Error; err != nil {
		t.Fatalf("Failed to set slot value: %v", err)
	}

	resp := helpers.DoJSON(t, app, "GET", fmt.Sprintf("/api/items/one/%d", item.ID), nil)
	helpers.AssertStatus(t, resp, 200)
	body := helpers.ParseEnvelope(t, resp, true)

	active, ok := body["active"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected an active map, got %v", body)
	}
	if len(active) != 2 {
		t.Errorf("Expected 2 active slots, got %d: %v", len(active), active)
	}
	if active["Author"] != "Herman Melville" {
		t.Errorf("Expected Author slot value, got %v", active["Author"])
	}
	// An enabled but unnamed slot falls back to its positional key
	if _, present := active["custom_bool1"]; !present {
		t.Errorf("Expected custom_bool1 fallback key, got %v", active)
	}

	// Unknown item is a clean 404
	resp = helpers.DoJSON(t, app, "GET", "/api/items/one/999999", nil)
	helpers.AssertStatus(t, resp, 404)
	body = helpers.ParseEnvelope(t, resp, false)
	helpers.AssertMessage(t, body, "No such item!")
}

// TestUpdateItem tests PUT /api/items/update
func TestUpdateItem(t *testing.T) {
	app, db, _ := helpers.NewTestApp(t)

	token, userID := helpers.AcquireAccount(t, app, helpers.UniqueUserName(), helpers.GeneratePassword())
	coll := helpers.CreateTestCollection(t, db, userID, "Books")
	item := helpers.CreateTestItem(t, db, coll.ID, "Moby Dick")

	newItem := helpers.ItemPayloadFixture(coll.ID, "Moby Dick Revised")
	delete(newItem, "collection_id")
	newItem["custom_int1_value"] = 99

	resp := helpers.DoJSON(t, app, "PUT", "/api/items/update",
		helpers.Mutation(token, map[string]interface{}{
			"itemId":  item.ID,
			"newItem": newItem,
		}))
	helpers.AssertStatus(t, resp, 200)
	body := helpers.ParseEnvelope(t, resp, true)
	helpers.AssertMessage(t, body, "Item was updated successfully!")

	var updated models.Item
	if err := db.First(&updated, item.ID).Error; err != nil {
		t.Fatalf("Failed to reload item: %v", err)
	}
	if updated.Name != "Moby Dick Revised" || updated.CustomInt1Value != 99 {
		t.Errorf("Update not persisted: %+v", updated)
	}
	if updated.CollectionID != coll.ID {
		t.Errorf("Parent collection must not change on update, got %d", updated.CollectionID)
	}
}

// TestItemMutationByNonOwner verifies the two-hop ownership rule
func TestItemMutationByNonOwner(t *testing.T) {
	app, db, _ := helpers.NewTestApp(t)

	_, aliceID := helpers.AcquireAccount(t, app, helpers.UniqueUserName(), helpers.GeneratePassword())
	bobToken, _ := helpers.AcquireAccount(t, app, helpers.UniqueUserName(), helpers.GeneratePassword())

	coll := helpers.CreateTestCollection(t, db, aliceID, "Private")
	item := helpers.CreateTestItem(t, db, coll.ID, "Guarded")

	resp := helpers.DoJSON(t, app, "DELETE", "/api/items/delete",
		helpers.Mutation(bobToken, map[string]interface{}{"itemId": item.ID}))
	helpers.AssertStatus(t, resp, 401)
	body := helpers.ParseEnvelope(t, resp, false)
	helpers.AssertMessage(t, body, "User unauthorized")

	var count int64
	db.Model(&models.Item{}).Where("id = ?", item.ID).Count(&count)
	if count != 1 {
		t.Error("Item must survive an unauthorized delete")
	}
}

// TestDeleteItem tests DELETE /api/items/delete
func TestDeleteItem(t *testing.T) {
	app, db, _ := helpers.NewTestApp(t)

	token, userID := helpers.AcquireAccount(t, app, helpers.UniqueUserName(), helpers.GeneratePassword())
	coll := helpers.CreateTestCollection(t, db, userID, "Books")
	item := helpers.CreateTestItem(t, db, coll.ID, "Expendable")

	resp := helpers.DoJSON(t, app, "DELETE", "/api/items/delete",
		helpers.Mutation(token, map[string]interface{}{"itemId": item.ID}))
	helpers.AssertStatus(t, resp, 200)
	body := helpers.ParseEnvelope(t, resp, true)
	helpers.AssertMessage(t, body, "Item was deleted successfully!")

	resp = helpers.DoJSON(t, app, "DELETE", "/api/items/delete",
		helpers.Mutation(token, map[string]interface{}{"itemId": item.ID}))
	helpers.AssertStatus(t, resp, 404)
	body = helpers.ParseEnvelope(t, resp, false)
	helpers.AssertMessage(t, body, "No such item!")
}

// TestItemStoreDefaults tests column defaults for rows created outside the
// validation layer
func TestItemStoreDefaults(t *testing.T) {
	db := helpers.NewTestDB(t)

	user := helpers.CreateTestUser(t, db, helpers.UniqueUserName(), helpers.GeneratePassword(), false)
	coll := helpers.CreateTestCollection(t, db, user.ID, "Books")

	item := helpers.CreateTestItem(t, db, coll.ID, "")

	var stored models.Item
	if err := db.First(&stored, item.ID).Error; err != nil {
		t.Fatalf("Failed to reload item: %v", err)
	}
	if stored.Name != "New Item" {
		t.Errorf("Expected default item name, got %q", stored.Name)
	}
	if got := stored.CustomDate1Value.String(); got != "2024-01-01" {
		t.Errorf("Expected default date slot, got %q", got)
	}
}
