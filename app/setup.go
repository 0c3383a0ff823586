package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/taskhub/task-manager-api/config"
	"github.com/taskhub/task-manager-api/database"
	"github.com/taskhub/task-manager-api/handlers"
	"github.com/taskhub/task-manager-api/middleware"
	"github.com/taskhub/task-manager-api/router"
	"github.com/taskhub/task-manager-api/storage"
)

// NewApp wires middleware, stores, handlers, and routes around an
// injected database handle. Tests call this with their own handle.
func NewApp(db *sql.DB, cfg *config.Config) *fiber.App {
	users := storage.NewUserStore(db)
	tasks := storage.NewTaskStore(db)

	sessions := session.New(session.Config{
		KeyLookup:      "cookie:" + cfg.CookieName,
		Expiration:     7 * 24 * time.Hour,
		CookieHTTPOnly: true,
	})

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
	}))
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path} ${latency}\n",
	}))

	jwtSecret := []byte(cfg.JWTSecret)
	authH := handlers.NewAuthHandler(users, sessions, jwtSecret)
	taskH := handlers.NewTaskHandler(tasks)
	router.SetupRoutes(app, authH, taskH, middleware.RequireAuth(sessions, users, jwtSecret))

	config.AddSwaggerRoutes(app)

	return app
}

// SetupAndRunApp boots the server: env, config, database, app, listen.
func SetupAndRunApp() error {
	if err := config.LoadENV(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.PostgresURI)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.SeedDemoData {
		users := storage.NewUserStore(db)
		tasks := storage.NewTaskStore(db)
		if err := database.SeedDemoData(ctx, users, tasks); err != nil {
			return err
		}
	}

	app := NewApp(db, cfg)
	return app.Listen(":" + cfg.Port)
}
