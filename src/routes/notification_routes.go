package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/davidromero/Backend-LinkHub/src/controllers"
)

func NotificationRoutes(app *fiber.App, ct *controllers.NotificationController, protect fiber.Handler) {
	notification := app.Group("/api/notifications", protect)

	notification.Get("/", ct.List)
	notification.Put("/:id/read", ct.MarkRead)
	notification.Delete("/:id", ct.Delete)
}
