package models

import (
	"time"

	"github.com/itracol/collections-backend/internal/schema"
	"github.com/itracol/collections-backend/internal/types"
	"gorm.io/gorm"
)

// Item is a catalog entry in a collection. The 15 custom slots are always
// stored, enabled or not; the owning collection's schema document decides
// which ones a consumer should surface.
type Item struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	CollectionID uint64 `gorm:"not null;index:idx_item_collection" json:"collection_id"`
	Name         string `gorm:"size:255;not null;default:'New Item'" json:"name"`
	Tags         JSON   `gorm:"not null" json:"tags"`

	CustomStr1Value string `gorm:"size:255;not null;default:''" json:"custom_str1_value"`
	CustomStr2Value string `gorm:"size:255;not null;default:''" json:"custom_str2_value"`
	CustomStr3Value string `gorm:"size:255;not null;default:''" json:"custom_str3_value"`

	CustomInt1Value int64 `gorm:"not null;default:0" json:"custom_int1_value"`
	CustomInt2Value int64 `gorm:"not null;default:0" json:"custom_int2_value"`
	CustomInt3Value int64 `gorm:"not null;default:0" json:"custom_int3_value"`

	CustomDate1Value types.Date `gorm:"not null" json:"custom_date1_value"`
	CustomDate2Value types.Date `gorm:"not null" json:"custom_date2_value"`
	CustomDate3Value types.Date `gorm:"not null" json:"custom_date3_value"`

	CustomBool1Value bool `gorm:"not null;default:false" json:"custom_bool1_value"`
	CustomBool2Value bool `gorm:"not null;default:false" json:"custom_bool2_value"`
	CustomBool3Value bool `gorm:"not null;default:false" json:"custom_bool3_value"`

	CustomMultext1Value string `gorm:"type:text;not null" json:"custom_multext1_value"`
	CustomMultext2Value string `gorm:"type:text;not null" json:"custom_multext2_value"`
	CustomMultext3Value string `gorm:"type:text;not null" json:"custom_multext3_value"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Item
func (Item) TableName() string {
	return "items"
}

// defaultSlotDate matches the original table default for date slots.
var defaultSlotDate = types.NewDate(2024, time.January, 1)

// BeforeCreate fills store-level defaults for rows created without going
// through the validation layer. Unset date slots get the table default since
// a zero date is not a valid DATE value everywhere.
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.Name == "" {
		i.Name = "New Item"
	}
	if i.CustomDate1Value.Time().IsZero() {
		i.CustomDate1Value = defaultSlotDate
	}
	if i.CustomDate2Value.Time().IsZero() {
		i.CustomDate2Value = defaultSlotDate
	}
	if i.CustomDate3Value.Time().IsZero() {
		i.CustomDate3Value = defaultSlotDate
	}
	if len(i.Tags.JSON) == 0 {
		i.Tags.JSON = []byte(`""`)
	}
	return nil
}

// SlotValue returns the stored value for a slot. The switch is exhaustive
// over the closed enum.
func (i *Item) SlotValue(s schema.Slot) interface{} {
	switch s {
	case schema.Str1:
		return i.CustomStr1Value
	case schema.Str2:
		return i.CustomStr2Value
	case schema.Str3:
		return i.CustomStr3Value
	case schema.Int1:
		return i.CustomInt1Value
	case schema.Int2:
		return i.CustomInt2Value
	case schema.Int3:
		return i.CustomInt3Value
	case schema.Date1:
		return i.CustomDate1Value
	case schema.Date2:
		return i.CustomDate2Value
	case schema.Date3:
		return i.CustomDate3Value
	case schema.Bool1:
		return i.CustomBool1Value
	case schema.Bool2:
		return i.CustomBool2Value
	case schema.Bool3:
		return i.CustomBool3Value
	case schema.Multext1:
		return i.CustomMultext1Value
	case schema.Multext2:
		return i.CustomMultext2Value
	case schema.Multext3:
		return i.CustomMultext3Value
	}
	return nil
}
