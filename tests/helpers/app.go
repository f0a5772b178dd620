package helpers

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/itracol/collections-backend/internal/config"
	"github.com/itracol/collections-backend/internal/database"
	"github.com/itracol/collections-backend/internal/handlers"
	"github.com/itracol/collections-backend/internal/middleware"
	"github.com/itracol/collections-backend/internal/utils"
)

// TestConfig returns a config suitable for in-process tests.
func TestConfig() *config.Config {
	return &config.Config{
		Port:      "3004",
		DBType:    "sqlite",
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
	}
}

// NewTestDB creates a migrated in-memory SQLite database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// NewTestApp wires the full route table over an in-memory database. The
// returned app is driven with app.Test.
func NewTestApp(t *testing.T) (*fiber.App, *gorm.DB, *config.Config) {
	t.Helper()

	cfg := TestConfig()
	db := NewTestDB(t)

	app := NewTestAppWithDB(cfg, db)
	return app, db, cfg
}

// NewTestAppWithDB wires the full route table over an existing database.
func NewTestAppWithDB(cfg *config.Config, db *gorm.DB) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: utils.ErrorHandler,
	})

	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())

	accountHandler := &handlers.AccountHandler{DB: db, Cfg: cfg}
	usersHandler := &handlers.UsersHandler{DB: db}
	collectionsHandler := &handlers.CollectionsHandler{DB: db}
	itemsHandler := &handlers.ItemsHandler{DB: db}

	api.Post("/account", accountHandler.Authenticate)
	api.Post("/account/signup", accountHandler.Signup)

	api.Get("/users", usersHandler.List)

	collections := api.Group("/collections")
	collections.Get("/user-:user_id", collectionsHandler.ListForUser)
	collections.Get("/one/:collectionId", collectionsHandler.GetOne)
	collections.Post("/many", collectionsHandler.GetMany)
	collections.Get("/largest", collectionsHandler.Largest)
	collections.Post("/create", middleware.Auth(cfg), collectionsHandler.Create)
	collections.Put("/updateImageUrl", middleware.Auth(cfg), collectionsHandler.UpdateImage)
	collections.Put("/update", middleware.Auth(cfg), collectionsHandler.Update)
	collections.Delete("/delete", middleware.Auth(cfg), collectionsHandler.Delete)

	items := api.Group("/items")
	items.Get("/one/:itemId", itemsHandler.GetOne)
	items.Get("/:collectionId", itemsHandler.ListForCollection)
	items.Post("/create", middleware.Auth(cfg), itemsHandler.Create)
	items.Put("/update", middleware.Auth(cfg), itemsHandler.Update)
	items.Delete("/delete", middleware.Auth(cfg), itemsHandler.Delete)

	return app
}
