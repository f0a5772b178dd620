// Package validation holds the structural payload checks applied before any
// store mutation. Validation is total and side-effect-free: each validator
// returns the full list of violations in field declaration order and callers
// surface the first one.
package validation

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/itracol/collections-backend/internal/models"
	"github.com/itracol/collections-backend/internal/schema"
	"github.com/itracol/collections-backend/internal/types"
)

// Character classes are literal ranges carried over from the original rules:
// [!-z] is printable ASCII 0x21-0x7A, which excludes '{', '|', '}', '~' and
// all non-ASCII text.
var (
	userNameRe    = regexp.MustCompile(`^[a-z0-9]{1,64}$`)
	passwordRe    = regexp.MustCompile(`^[!-z]{8,64}$`)
	collNameRe    = regexp.MustCompile(`^[a-zA-Z0-9 ]{1,255}$`)
	descriptionRe = regexp.MustCompile(`^[!-z \n]*$`)
	itemNameRe    = regexp.MustCompile(`^[a-zA-Z0-9 ]{0,255}$`)
	strSlotRe     = regexp.MustCompile(`^[!-z ]{0,255}$`)
	multextSlotRe = regexp.MustCompile(`^[!-z \n]*$`)
)

// MaxImageURLLen bounds the collection image URL.
const MaxImageURLLen = 1024

// Violation names a failed field and a human-readable reason.
type Violation struct {
	Field  string
	Reason string
}

// Message renders the violation in the style clients already parse.
func (v Violation) Message() string {
	return fmt.Sprintf("%q %s", v.Field, v.Reason)
}

// First converts a violation list into the surfaced validation error, or nil.
func First(violations []Violation) error {
	if len(violations) == 0 {
		return nil
	}
	return types.NewValidationError(violations[0].Message())
}

// UserPayload is the signup/authenticate request body.
type UserPayload struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// User validates a signup payload. The password is checked pre-hash.
func User(p UserPayload) []Violation {
	var out []Violation
	if !userNameRe.MatchString(p.Name) {
		out = append(out, Violation{"name", "must be 1-64 lowercase alphanumeric characters"})
	}
	if !passwordRe.MatchString(p.Password) {
		out = append(out, Violation{"password", "must be 8-64 printable characters"})
	}
	return out
}

// CollectionPayload is the create/update body for a collection. Pointer
// fields distinguish absent from empty.
type CollectionPayload struct {
	UserID      *types.FlexUint64 `json:"user_id"`
	Name        *string           `json:"name"`
	Topic       *string           `json:"topic"`
	Description *string           `json:"description"`
	ImageURL    *string           `json:"imageUrl"`
	ItemsSchema json.RawMessage   `json:"itemsSchema"`
}

// NewCollection validates a create payload, owner id included.
func NewCollection(p CollectionPayload) []Violation {
	var out []Violation
	if p.UserID == nil {
		out = append(out, Violation{"user_id", "is required"})
	}
	return append(out, collectionFields(p)...)
}

// UpdateCollection validates an update payload. The owner never changes, so
// user_id is not part of it.
func UpdateCollection(p CollectionPayload) []Violation {
	return collectionFields(p)
}

func collectionFields(p CollectionPayload) []Violation {
	var out []Violation
	if p.Name == nil {
		out = append(out, Violation{"name", "is required"})
	} else if !collNameRe.MatchString(*p.Name) {
		out = append(out, Violation{"name", "must be 1-255 alphanumeric characters or spaces"})
	}
	if p.Topic != nil && !models.Topic(*p.Topic).Valid() {
		out = append(out, Violation{"topic", "must be one of [books, signs, silverware, other]"})
	}
	if p.Description != nil && !descriptionRe.MatchString(*p.Description) {
		out = append(out, Violation{"description", "fails to match the required pattern"})
	}
	if p.ImageURL != nil && len(*p.ImageURL) > MaxImageURLLen {
		out = append(out, Violation{"imageUrl", fmt.Sprintf("length must be less than or equal to %d characters long", MaxImageURLLen)})
	}
	if len(p.ItemsSchema) == 0 {
		out = append(out, Violation{"itemsSchema", "is required"})
	} else if _, err := schema.Apply(p.ItemsSchema); err != nil {
		out = append(out, Violation{"itemsSchema", err.Error()})
	}
	return out
}

// ItemPayload is the create/update body for an item. Every slot plus name and
// tags is required: updates are full-row replacements. Date slots are kept
// raw because a *types.Date cannot tell an absent key (a violation) from an
// explicit null (allowed, falls back to the stored default).
type ItemPayload struct {
	CollectionID *types.FlexUint64 `json:"collection_id"`
	Name         *string           `json:"name"`
	Tags         json.RawMessage   `json:"tags"`

	CustomStr1Value *string `json:"custom_str1_value"`
	CustomStr2Value *string `json:"custom_str2_value"`
	CustomStr3Value *string `json:"custom_str3_value"`

	CustomInt1Value *int64 `json:"custom_int1_value"`
	CustomInt2Value *int64 `json:"custom_int2_value"`
	CustomInt3Value *int64 `json:"custom_int3_value"`

	CustomDate1Value json.RawMessage `json:"custom_date1_value"`
	CustomDate2Value json.RawMessage `json:"custom_date2_value"`
	CustomDate3Value json.RawMessage `json:"custom_date3_value"`

	CustomBool1Value *bool `json:"custom_bool1_value"`
	CustomBool2Value *bool `json:"custom_bool2_value"`
	CustomBool3Value *bool `json:"custom_bool3_value"`

	CustomMultext1Value *string `json:"custom_multext1_value"`
	CustomMultext2Value *string `json:"custom_multext2_value"`
	CustomMultext3Value *string `json:"custom_multext3_value"`
}

// NewItem validates a create payload, parent collection id included.
func NewItem(p ItemPayload) []Violation {
	var out []Violation
	if p.CollectionID == nil {
		out = append(out, Violation{"collection_id", "is required"})
	}
	return append(out, itemFields(p)...)
}

// UpdateItem validates an update payload. The parent collection never
// changes.
func UpdateItem(p ItemPayload) []Violation {
	return itemFields(p)
}

func itemFields(p ItemPayload) []Violation {
	var out []Violation
	if p.Name == nil {
		out = append(out, Violation{"name", "is required"})
	} else if !itemNameRe.MatchString(*p.Name) {
		out = append(out, Violation{"name", "must be 0-255 alphanumeric characters or spaces"})
	}
	if len(p.Tags) == 0 {
		out = append(out, Violation{"tags", "is required"})
	} else if !json.Valid(p.Tags) {
		out = append(out, Violation{"tags", "must be valid JSON"})
	}

	strSlots := []struct {
		field string
		value *string
	}{
		{"custom_str1_value", p.CustomStr1Value},
		{"custom_str2_value", p.CustomStr2Value},
		{"custom_str3_value", p.CustomStr3Value},
	}
	for _, s := range strSlots {
		if s.value == nil {
			out = append(out, Violation{s.field, "is required"})
		} else if !strSlotRe.MatchString(*s.value) {
			out = append(out, Violation{s.field, "fails to match the required pattern"})
		}
	}

	intSlots := []struct {
		field string
		value *int64
	}{
		{"custom_int1_value", p.CustomInt1Value},
		{"custom_int2_value", p.CustomInt2Value},
		{"custom_int3_value", p.CustomInt3Value},
	}
	for _, s := range intSlots {
		if s.value == nil {
			out = append(out, Violation{s.field, "is required"})
		}
	}

	dateSlots := []struct {
		field string
		raw   json.RawMessage
	}{
		{"custom_date1_value", p.CustomDate1Value},
		{"custom_date2_value", p.CustomDate2Value},
		{"custom_date3_value", p.CustomDate3Value},
	}
	for _, s := range dateSlots {
		if len(s.raw) == 0 {
			out = append(out, Violation{s.field, "is required"})
			continue
		}
		if string(s.raw) == "null" {
			continue
		}
		var d types.Date
		if err := d.UnmarshalJSON(s.raw); err != nil {
			out = append(out, Violation{s.field, "must be a valid date"})
		}
	}

	boolSlots := []struct {
		field string
		value *bool
	}{
		{"custom_bool1_value", p.CustomBool1Value},
		{"custom_bool2_value", p.CustomBool2Value},
		{"custom_bool3_value", p.CustomBool3Value},
	}
	for _, s := range boolSlots {
		if s.value == nil {
			out = append(out, Violation{s.field, "is required"})
		}
	}

	multextSlots := []struct {
		field string
		value *string
	}{
		{"custom_multext1_value", p.CustomMultext1Value},
		{"custom_multext2_value", p.CustomMultext2Value},
		{"custom_multext3_value", p.CustomMultext3Value},
	}
	for _, s := range multextSlots {
		if s.value == nil {
			out = append(out, Violation{s.field, "is required"})
		} else if !multextSlotRe.MatchString(*s.value) {
			out = append(out, Violation{s.field, "fails to match the required pattern"})
		}
	}

	return out
}
