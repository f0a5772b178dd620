package services

import (
	"errors"
	"strings"

	"github.com/itracol/collections-backend/internal/models"
	"github.com/itracol/collections-backend/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 10

// CreateUser registers a new user with a bcrypt password hash. A
// unique-constraint violation on the name maps to the duplicate-name error.
func CreateUser(db *gorm.DB, name, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:     name,
		Password: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, types.NewDuplicateNameError()
		}
		return nil, err
	}

	return &user, nil
}

// AuthenticateUser checks credentials. The failure is identical for an
// unknown name and a wrong password so callers cannot enumerate users.
func AuthenticateUser(db *gorm.DB, name, password string) (*models.User, error) {
	var user models.User
	if err := db.Where("name = ?", name).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewAuthenticationError()
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, types.NewAuthenticationError()
	}

	return &user, nil
}

// GetUser fetches a user by id.
func GetUser(db *gorm.DB, id uint64) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("No such userpage exists")
		}
		return nil, err
	}
	return &user, nil
}

// ListUsers returns all users. Password hashes never leave the model's
// serializer anyway.
func ListUsers(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	if err := db.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// isDuplicateErr recognizes unique-constraint violations across the
// supported dialects, with the translated GORM error as the primary signal.
func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || // mysql/mariadb
		strings.Contains(msg, "duplicate key") || // postgres, sqlserver
		strings.Contains(msg, "UNIQUE constraint") // sqlite
}
