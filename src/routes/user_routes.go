package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/davidromero/Backend-LinkHub/src/controllers"
)

func UserRoutes(app *fiber.App, ct *controllers.UserController, protect fiber.Handler) {
	user := app.Group("/api/users", protect)

	user.Get("/", ct.Suggestions)
	user.Put("/profile", ct.UpdateProfile)
	user.Get("/search/:query", ct.Search)
	user.Get("/:id", ct.GetByID)
}
