package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/davidromero/Backend-LinkHub/src/controllers"
)

func PostRoutes(app *fiber.App, ct *controllers.PostController, protect fiber.Handler) {
	post := app.Group("/api/posts", protect)

	post.Post("/", ct.Create)
	post.Get("/", ct.Feed)
	post.Get("/user/:userId", ct.ByUser)
	post.Put("/:id/like", ct.ToggleLike)
	post.Post("/:id/comment", ct.Comment)
	post.Put("/:id", ct.Edit)
	post.Delete("/:id", ct.Delete)
}
