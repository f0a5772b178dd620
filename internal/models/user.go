package models

import "encoding/json"

// User is an account that owns collections. Password holds a bcrypt hash and
// is nulled on every serialized response.
type User struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"uniqueIndex;size:64;not null" json:"name"`
	Password string `gorm:"size:255;not null" json:"-"`
	IsAdmin  bool   `gorm:"not null;default:false" json:"isAdmin"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// MarshalJSON emits an explicit null password, matching the API contract
// that the field is present but never populated.
func (u User) MarshalJSON() ([]byte, error) {
	type userAlias User
	return json.Marshal(struct {
		userAlias
		Password interface{} `json:"password"`
	}{userAlias: userAlias(u), Password: nil})
}
