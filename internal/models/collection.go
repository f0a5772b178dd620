package models

import (
	"encoding/json"

	"github.com/itracol/collections-backend/internal/schema"
	"gorm.io/gorm"
	gormschema "gorm.io/gorm/schema"
)

// DefaultImageURL is the placeholder image assigned to collections created
// without one.
const DefaultImageURL = "https://firebasestorage.googleapis.com/v0/b/itra-collections.appspot.com/o/default%2Fdefault_collection_image.jpg?alt=media&token=7389f98e-03bc-4a79-8880-10009d41d818"

// Topic is the closed set of collection topics.
type Topic string

const (
	TopicBooks      Topic = "books"
	TopicSigns      Topic = "signs"
	TopicSilverware Topic = "silverware"
	TopicOther      Topic = "other"
)

// Valid reports whether t is one of the known topics.
func (t Topic) Valid() bool {
	switch t {
	case TopicBooks, TopicSigns, TopicSilverware, TopicOther:
		return true
	}
	return false
}

// GormDBDataType keeps the enum constraint in the store where the dialect
// supports it.
func (Topic) GormDBDataType(db *gorm.DB, field *gormschema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "ENUM('books','signs','silverware','other')"
	case "sqlserver", "mssql":
		return "NVARCHAR(32)"
	}
	return "VARCHAR(32)"
}

// Collection is a named group of items owned by a user. ItemsSchema holds the
// serialized slot document; UserID is immutable after creation.
type Collection struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint64 `gorm:"not null;index:idx_collection_user" json:"user_id"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Topic       Topic  `gorm:"not null" json:"topic"`
	Description string `gorm:"type:text;not null" json:"description"`
	ImageURL    string `gorm:"size:1024;not null" json:"imageUrl"`
	ItemsSchema JSON   `gorm:"not null" json:"itemsSchema"`
	Items       []Item `gorm:"foreignKey:CollectionID" json:"-"`
}

// TableName overrides the table name for Collection
func (Collection) TableName() string {
	return "collections"
}

// BeforeCreate fills store-level defaults, mirroring the original table
// definitions, for rows created without going through the validation layer.
func (c *Collection) BeforeCreate(tx *gorm.DB) error {
	if c.Name == "" {
		c.Name = "My collection"
	}
	if c.Topic == "" {
		c.Topic = TopicOther
	}
	if c.ImageURL == "" {
		c.ImageURL = DefaultImageURL
	}
	if len(c.ItemsSchema.JSON) == 0 {
		doc, err := json.Marshal(schema.Default())
		if err != nil {
			return err
		}
		c.ItemsSchema.JSON = doc
	}
	return nil
}

// SchemaDocument decodes the stored items schema. Rows predating a slot
// decode with that slot defaulted.
func (c *Collection) SchemaDocument() (schema.Document, error) {
	var doc schema.Document
	if len(c.ItemsSchema.JSON) == 0 {
		return schema.Default(), nil
	}
	if err := json.Unmarshal(c.ItemsSchema.JSON, &doc); err != nil {
		return schema.Document{}, err
	}
	return doc, nil
}
