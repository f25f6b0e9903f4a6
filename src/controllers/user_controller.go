package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/davidromero/Backend-LinkHub/src/lib"
	"github.com/davidromero/Backend-LinkHub/src/models"
	"github.com/davidromero/Backend-LinkHub/src/repository"
)

const (
	searchLimit     = 20
	suggestionLimit = 10
)

type UserController struct {
	users repository.UserRepository
}

func NewUserController(users repository.UserRepository) *UserController {
	return &UserController{users: users}
}

// profileResponse is a user document with the connections set resolved to
// identity summaries.
type profileResponse struct {
	*models.User
	Connections []models.UserSummary `json:"connections"`
}

// GetByID returns a user's profile, connections populated.
func (ct *UserController) GetByID(c *fiber.Ctx) error {
	userID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid user ID format"))
	}

	user, err := ct.users.FindByID(c.Context(), userID)
	if err != nil {
		return fail(c, err)
	}

	connections, err := ct.users.Summaries(c.Context(), user.Connections)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(profileResponse{User: user, Connections: connections})
}

// UpdateProfile applies partial profile updates for the authenticated
// user. Email and password are not reachable from here.
func (ct *UserController) UpdateProfile(c *fiber.Ctx) error {
	var body struct {
		FirstName      *string              `json:"firstName"`
		LastName       *string              `json:"lastName"`
		Headline       *string              `json:"headline"`
		Location       *string              `json:"location"`
		Industry       *string              `json:"industry"`
		About          *string              `json:"about"`
		ProfilePicture *string              `json:"profilePicture"`
		CoverPhoto     *string              `json:"coverPhoto"`
		Skills         *[]string            `json:"skills"`
		Experience     *[]models.Experience `json:"experience"`
		Education      *[]models.Education  `json:"education"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	user := actingUser(c)
	updated, err := ct.users.UpdateProfile(c.Context(), user.Id, repository.ProfileUpdate{
		FirstName:      body.FirstName,
		LastName:       body.LastName,
		Headline:       body.Headline,
		Location:       body.Location,
		Industry:       body.Industry,
		About:          body.About,
		ProfilePicture: body.ProfilePicture,
		CoverPhoto:     body.CoverPhoto,
		Skills:         body.Skills,
		Experience:     body.Experience,
		Education:      body.Education,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

// Search finds users by first name, last name or headline.
func (ct *UserController) Search(c *fiber.Ctx) error {
	query := c.Params("query")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Search query is required"))
	}

	results, err := ct.users.Search(c.Context(), query, searchLimit)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(results)
}

// Suggestions lists users the authenticated user is not yet connected
// with.
func (ct *UserController) Suggestions(c *fiber.Ctx) error {
	user := actingUser(c)
	results, err := ct.users.Suggestions(c.Context(), user, suggestionLimit)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(results)
}
