package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itracol/collections-backend/internal/schema"
	"github.com/itracol/collections-backend/internal/types"
)

func strPtr(s string) *string        { return &s }
func intPtr(i int64) *int64          { return &i }
func boolPtr(b bool) *bool           { return &b }
func idPtr(v uint64) *types.FlexUint64 {
	f := types.FlexUint64(v)
	return &f
}

func validItemPayload() ItemPayload {
	return ItemPayload{
		CollectionID: idPtr(1),
		Name:         strPtr("Moby Dick"),
		Tags:         json.RawMessage(`[]`),

		CustomStr1Value: strPtr(""), CustomStr2Value: strPtr(""), CustomStr3Value: strPtr(""),
		CustomInt1Value: intPtr(0), CustomInt2Value: intPtr(0), CustomInt3Value: intPtr(0),
		CustomDate1Value: json.RawMessage(`null`), CustomDate2Value: json.RawMessage(`null`), CustomDate3Value: json.RawMessage(`null`),
		CustomBool1Value: boolPtr(false), CustomBool2Value: boolPtr(false), CustomBool3Value: boolPtr(false),
		CustomMultext1Value: strPtr(""), CustomMultext2Value: strPtr(""), CustomMultext3Value: strPtr(""),
	}
}

func validCollectionPayload() CollectionPayload {
	raw, _ := json.Marshal(schema.Default())
	return CollectionPayload{
		UserID:      idPtr(1),
		Name:        strPtr("Books"),
		Topic:       strPtr("books"),
		ItemsSchema: raw,
	}
}

func TestUserValidation(t *testing.T) {
	assert.Empty(t, User(UserPayload{Name: "alice42", Password: "Passw0rd!"}))

	cases := []struct {
		label string
		p     UserPayload
		field string
	}{
		{"empty name", UserPayload{Name: "", Password: "Passw0rd!"}, "name"},
		{"upper case name", UserPayload{Name: "Alice", Password: "Passw0rd!"}, "name"},
		{"name too long", UserPayload{Name: strings.Repeat("a", 65), Password: "Passw0rd!"}, "name"},
		{"password too short", UserPayload{Name: "alice", Password: "short"}, "password"},
		{"password above range", UserPayload{Name: "alice", Password: "Passw0rd{}"}, "password"},
		{"password with space", UserPayload{Name: "alice", Password: "Pass w0rd!"}, "password"},
	}
	for _, tc := range cases {
		violations := User(tc.p)
		require.NotEmpty(t, violations, tc.label)
		assert.Equal(t, tc.field, violations[0].Field, tc.label)
	}
}

func TestCollectionValidation(t *testing.T) {
	assert.Empty(t, NewCollection(validCollectionPayload()))

	p := validCollectionPayload()
	p.UserID = nil
	violations := NewCollection(p)
	require.NotEmpty(t, violations)
	assert.Equal(t, "user_id", violations[0].Field)

	// user_id is not part of updates
	assert.Empty(t, UpdateCollection(p))

	p = validCollectionPayload()
	p.Name = strPtr(strings.Repeat("b", 256))
	assert.NotEmpty(t, NewCollection(p))

	p = validCollectionPayload()
	p.Topic = strPtr("astronomy")
	assert.NotEmpty(t, NewCollection(p))

	// Topic is optional, the store defaults it
	p = validCollectionPayload()
	p.Topic = nil
	assert.Empty(t, NewCollection(p))

	p = validCollectionPayload()
	p.Description = strPtr("curly {braces} are out of range")
	assert.NotEmpty(t, NewCollection(p))

	p = validCollectionPayload()
	p.ImageURL = strPtr(strings.Repeat("u", MaxImageURLLen+1))
	assert.NotEmpty(t, NewCollection(p))

	p = validCollectionPayload()
	p.ItemsSchema = nil
	violations = NewCollection(p)
	require.NotEmpty(t, violations)
	assert.Equal(t, "itemsSchema", violations[0].Field)

	p = validCollectionPayload()
	p.ItemsSchema = json.RawMessage(`{"custom_str1":{"name":"","state":false}}`)
	assert.NotEmpty(t, NewCollection(p))
}

func TestItemValidation(t *testing.T) {
	assert.Empty(t, NewItem(validItemPayload()))

	p := validItemPayload()
	p.CollectionID = nil
	violations := NewItem(p)
	require.NotEmpty(t, violations)
	assert.Equal(t, "collection_id", violations[0].Field)

	// collection_id is not part of updates
	assert.Empty(t, UpdateItem(p))

	// Empty item names are allowed
	p = validItemPayload()
	p.Name = strPtr("")
	assert.Empty(t, NewItem(p))

	p = validItemPayload()
	p.Name = strPtr("no-hyphens")
	assert.NotEmpty(t, NewItem(p))

	p = validItemPayload()
	p.Tags = nil
	assert.NotEmpty(t, NewItem(p))

	p = validItemPayload()
	p.Tags = json.RawMessage(`{not json`)
	assert.NotEmpty(t, NewItem(p))

	p = validItemPayload()
	p.CustomStr2Value = nil
	violations = NewItem(p)
	require.NotEmpty(t, violations)
	assert.Equal(t, "custom_str2_value", violations[0].Field)

	p = validItemPayload()
	p.CustomStr1Value = strPtr(strings.Repeat("x", 256))
	assert.NotEmpty(t, NewItem(p))

	// Absent date slots are violations; explicit null is allowed
	p = validItemPayload()
	p.CustomDate1Value = nil
	violations = NewItem(p)
	require.NotEmpty(t, violations)
	assert.Equal(t, "custom_date1_value", violations[0].Field)

	p = validItemPayload()
	p.CustomDate2Value = json.RawMessage(`"1851-10-18"`)
	assert.Empty(t, NewItem(p))

	p = validItemPayload()
	p.CustomDate3Value = json.RawMessage(`"not a date"`)
	violations = NewItem(p)
	require.NotEmpty(t, violations)
	assert.Equal(t, "custom_date3_value", violations[0].Field)

	p = validItemPayload()
	p.CustomMultext1Value = strPtr("line one\nline two")
	assert.Empty(t, NewItem(p))

	p = validItemPayload()
	p.CustomMultext1Value = strPtr("pipe | char")
	assert.NotEmpty(t, NewItem(p))
}

func TestFirstSurfacesValidationError(t *testing.T) {
	assert.NoError(t, First(nil))

	err := First([]Violation{
		{Field: "name", Reason: "is required"},
		{Field: "tags", Reason: "is required"},
	})
	require.Error(t, err)

	var customErr *types.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, 400, customErr.Code)
	assert.Contains(t, customErr.Message, "name")
	assert.NotContains(t, customErr.Message, "tags")
}
