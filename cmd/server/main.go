package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/joho/godotenv"

	"github.com/itracol/collections-backend/internal/config"
	"github.com/itracol/collections-backend/internal/database"
	"github.com/itracol/collections-backend/internal/handlers"
	"github.com/itracol/collections-backend/internal/middleware"
	"github.com/itracol/collections-backend/internal/services"
	"github.com/itracol/collections-backend/internal/utils"

	_ "github.com/itracol/collections-backend/docs/api" // Swagger docs
)

// @title Collections API
// @version 1.0.0
// @description Backend for the collections cataloguing application

// @contact.name API Support
// @contact.url https://github.com/itracol/collections-backend

// @license.name MIT

// @host localhost:3004
// @BasePath /api
// @schemes http https

func main() {
	// Local development reads .env; the file is absent in containers
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: utils.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigin,
		AllowHeaders: "Origin, Content-Type, Accept, X-Api-Version",
	}))

	// Prometheus metrics
	prometheus := fiberprometheus.New("collections-backend")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	api.Get("/health", func(c *fiber.Ctx) error {
		result := services.HealthCheck(cfg, db)
		status := fiber.StatusOK
		if result.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(result)
	})

	// Create handlers
	accountHandler := &handlers.AccountHandler{DB: db, Cfg: cfg}
	usersHandler := &handlers.UsersHandler{DB: db}
	collectionsHandler := &handlers.CollectionsHandler{DB: db}
	itemsHandler := &handlers.ItemsHandler{DB: db}

	// Account routes
	api.Post("/account", accountHandler.Authenticate)
	api.Post("/account/signup", accountHandler.Signup)

	// User routes
	api.Get("/users", usersHandler.List)

	// Collection routes (public reads, token-guarded mutations)
	collections := api.Group("/collections")
	collections.Get("/user-:user_id", collectionsHandler.ListForUser)
	collections.Get("/one/:collectionId", collectionsHandler.GetOne)
	collections.Post("/many", collectionsHandler.GetMany)
	collections.Get("/largest", collectionsHandler.Largest)
	collections.Post("/create", middleware.Auth(cfg), collectionsHandler.Create)
	collections.Put("/updateImageUrl", middleware.Auth(cfg), collectionsHandler.UpdateImage)
	collections.Put("/update", middleware.Auth(cfg), collectionsHandler.Update)
	collections.Delete("/delete", middleware.Auth(cfg), collectionsHandler.Delete)

	// Item routes (public reads, token-guarded mutations)
	items := api.Group("/items")
	items.Get("/one/:itemId", itemsHandler.GetOne)
	items.Get("/:collectionId", itemsHandler.ListForCollection)
	items.Post("/create", middleware.Auth(cfg), itemsHandler.Create)
	items.Put("/update", middleware.Auth(cfg), itemsHandler.Update)
	items.Delete("/delete", middleware.Auth(cfg), itemsHandler.Delete)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Resource not found",
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}
