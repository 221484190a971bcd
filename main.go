package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"tracker/database"
	"tracker/handlers"
	"tracker/middleware"
	"tracker/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Initialize database
	database.InitDB()
	defer database.CloseDB()

	// State owner: load the persisted challenge state through the gateway
	stateStore := database.NewStateStore(database.GetDB())
	tracker, err := services.NewTracker(stateStore)
	if err != nil {
		log.Fatalf("Failed to initialize tracker: %v", err)
	}

	// Offline asset cache: install the current generation, purge stale ones
	staticDir := getEnv("STATIC_DIR", "./static")
	cache := services.NewAssetCache(os.Getenv("CACHE_VERSION"), staticDir, database.NewCacheStore(database.GetDB()))
	if err := cache.Install(); err != nil {
		log.Printf("Warning: asset precache incomplete: %v", err)
	}
	if err := cache.Activate(); err != nil {
		log.Fatalf("Failed to activate asset cache: %v", err)
	}

	// Snapshot retention
	cleanup := services.NewCleanupService(stateStore, getEnvInt("SNAPSHOT_KEEP", 20), 24*time.Hour)
	cleanup.Start()
	defer cleanup.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    1 * 1024 * 1024, // 1MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
	}))

	// Apply rate limiting to all routes
	app.Use(middleware.FiberRateLimitMiddleware())

	hub := handlers.NewHub()
	h := handlers.New(tracker, cache, hub)

	// API Routes
	api := app.Group("/api")

	api.Get("/state", h.GetState)

	// Day routes
	days := api.Group("/days")
	days.Get("/:idx", h.GetDay)
	days.Patch("/:idx", h.PatchDay)
	days.Post("/:idx/water", h.AddWater)
	days.Post("/:idx/complete", h.CompleteDay)

	// Destructive actions get the stricter limiter
	days.Post("/:idx/fail", middleware.FiberDestructiveRateLimitMiddleware(), h.FailDay)
	days.Post("/:idx/reset", middleware.FiberDestructiveRateLimitMiddleware(), h.ResetDay)

	api.Get("/calendar", h.GetCalendar)
	api.Get("/stats", h.GetStats)

	// Settings routes
	api.Get("/settings", h.GetSettings)
	api.Put("/settings", h.SaveSettings)
	api.Put("/settings/profile", h.SwitchProfile)
	api.Post("/wipe", middleware.FiberDestructiveRateLimitMiddleware(), h.WipeAll)

	// Snapshot and backup routes
	api.Get("/snapshots", h.ListSnapshots)
	api.Post("/snapshots", h.CreateSnapshot)
	api.Get("/export", h.Export)

	// WebSocket state-change events
	app.Use("/ws", handlers.WebSocketUpgrade)
	app.Get("/ws", h.WebSocket())

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"cache":     cache.Version(),
		})
	})

	// PWA assets, served cache-first
	app.Get("/*", h.Asset)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("🚀 HTTP server starting on port %s", port)
	log.Printf("📅 Challenge start date: %s", services.FormatDate(tracker.StartDate()))
	log.Printf("👤 Active profile: %s", tracker.ActiveProfile())
	log.Printf("🗃 Asset cache generation: %s", cache.Version())

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
