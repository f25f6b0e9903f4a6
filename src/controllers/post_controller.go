package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/davidromero/Backend-LinkHub/src/lib"
	"github.com/davidromero/Backend-LinkHub/src/services"
)

type PostController struct {
	service *services.PostService
}

func NewPostController(service *services.PostService) *PostController {
	return &PostController{service: service}
}

// Create creates a post, image optional (base64 payload or URL).
func (ct *PostController) Create(c *fiber.Ctx) error {
	var body struct {
		Content string `json:"content"`
		Image   string `json:"image"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	user := actingUser(c)
	post, err := ct.service.Create(c.Context(), user.Id, body.Content, body.Image)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// Feed returns the newest posts, authors and comment users populated.
func (ct *PostController) Feed(c *fiber.Ctx) error {
	posts, err := ct.service.Feed(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(posts)
}

// ByUser returns a single user's posts, newest first.
func (ct *PostController) ByUser(c *fiber.Ctx) error {
	userID, err := primitive.ObjectIDFromHex(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid user ID format"))
	}

	posts, err := ct.service.ByUser(c.Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(posts)
}

// Edit replaces a post's content. Author only.
func (ct *PostController) Edit(c *fiber.Ctx) error {
	postID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid post ID format"))
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	user := actingUser(c)
	post, err := ct.service.Edit(c.Context(), postID, user.Id, body.Content)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

// ToggleLike likes or unlikes a post for the authenticated user.
func (ct *PostController) ToggleLike(c *fiber.Ctx) error {
	postID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid post ID format"))
	}

	user := actingUser(c)
	post, err := ct.service.ToggleLike(c.Context(), postID, user.Id)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

// Comment appends a comment to a post.
func (ct *PostController) Comment(c *fiber.Ctx) error {
	postID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid post ID format"))
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	user := actingUser(c)
	post, err := ct.service.Comment(c.Context(), postID, user.Id, body.Text)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

// Delete removes a post. Author only.
func (ct *PostController) Delete(c *fiber.Ctx) error {
	postID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid post ID format"))
	}

	user := actingUser(c)
	if err := ct.service.Delete(c.Context(), postID, user.Id); err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(lib.MessageResponse("Post deleted successfully"))
}
