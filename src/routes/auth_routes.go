package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/davidromero/Backend-LinkHub/src/controllers"
)

func AuthRoutes(app *fiber.App, ct *controllers.AuthController, protect fiber.Handler) {
	auth := app.Group("/api/auth")

	auth.Post("/register", ct.Register)
	auth.Post("/login", ct.Login)
	auth.Get("/me", protect, ct.Me)
}
