package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taskhub/task-manager-api/handlers"
)

// SetupRoutes registers the route table. Logout stays outside the auth
// group so it is idempotent for anonymous callers.
func SetupRoutes(app *fiber.App, authH *handlers.AuthHandler, taskH *handlers.TaskHandler, requireAuth fiber.Handler) {
	app.Get("/health", handlers.HandleHealthCheck)

	api := app.Group("/api")
	api.Post("/register", authH.Register)
	api.Post("/login", authH.Login)
	api.Post("/logout", authH.Logout)

	authed := api.Group("", requireAuth)
	authed.Get("/user", authH.Me)
	authed.Post("/token", authH.Token)

	authed.Get("/tasks", taskH.List)
	authed.Post("/tasks", taskH.Create)
	authed.Get("/tasks/:id", taskH.GetOne)
	authed.Patch("/tasks/:id", taskH.Update)
	authed.Delete("/tasks/:id", taskH.Delete)
}
