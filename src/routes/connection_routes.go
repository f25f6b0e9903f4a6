package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/davidromero/Backend-LinkHub/src/controllers"
)

// ConnectionRoutes wires the connection workflow: sending, listing,
// accepting and rejecting requests, listing and removing connections, and
// the status probe.
func ConnectionRoutes(app *fiber.App, ct *controllers.ConnectionController, protect fiber.Handler) {
	connection := app.Group("/api/connections", protect)

	connection.Post("/request", ct.SendRequest)
	connection.Get("/requests", ct.ListRequests)
	connection.Put("/:id/accept", ct.Accept)
	connection.Put("/:id/reject", ct.Reject)
	connection.Get("/status/:userId", ct.Status)
	connection.Get("/", ct.List)
	connection.Delete("/:userId", ct.Remove)
}
