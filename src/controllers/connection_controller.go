package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/davidromero/Backend-LinkHub/src/lib"
	"github.com/davidromero/Backend-LinkHub/src/services"
)

type ConnectionController struct {
	service *services.ConnectionService
}

func NewConnectionController(service *services.ConnectionService) *ConnectionController {
	return &ConnectionController{service: service}
}

// SendRequest creates a pending connection request to the user named in
// the body.
func (ct *ConnectionController) SendRequest(c *fiber.Ctx) error {
	var body struct {
		RecipientID string `json:"recipientId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}
	if body.RecipientID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Recipient ID is required"))
	}
	recipientID, err := primitive.ObjectIDFromHex(body.RecipientID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid user ID format"))
	}

	user := actingUser(c)
	conn, err := ct.service.Request(c.Context(), user.Id, recipientID)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(conn)
}

// ListRequests returns the pending requests addressed to the
// authenticated user, requester summaries embedded.
func (ct *ConnectionController) ListRequests(c *fiber.Ctx) error {
	user := actingUser(c)
	requests, err := ct.service.ListIncoming(c.Context(), user.Id)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(requests)
}

// Accept accepts a pending request addressed to the authenticated user.
func (ct *ConnectionController) Accept(c *fiber.Ctx) error {
	requestID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request ID format"))
	}

	user := actingUser(c)
	conn, err := ct.service.Accept(c.Context(), requestID, user.Id)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(conn)
}

// Reject rejects a pending request addressed to the authenticated user.
func (ct *ConnectionController) Reject(c *fiber.Ctx) error {
	requestID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request ID format"))
	}

	user := actingUser(c)
	conn, err := ct.service.Reject(c.Context(), requestID, user.Id)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(conn)
}

// List returns the authenticated user's connections as identity
// summaries.
func (ct *ConnectionController) List(c *fiber.Ctx) error {
	user := actingUser(c)
	connections, err := ct.service.Connections(c.Context(), user.Id)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(connections)
}

// Remove disconnects the authenticated user from another user. Removing
// an absent connection still succeeds.
func (ct *ConnectionController) Remove(c *fiber.Ctx) error {
	otherID, err := primitive.ObjectIDFromHex(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid user ID format"))
	}

	user := actingUser(c)
	if err := ct.service.Remove(c.Context(), user.Id, otherID); err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(lib.MessageResponse("Connection removed successfully"))
}

// Status reports the relationship between the authenticated user and
// another user.
func (ct *ConnectionController) Status(c *fiber.Ctx) error {
	otherID, err := primitive.ObjectIDFromHex(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid user ID format"))
	}

	user := actingUser(c)
	info, err := ct.service.StatusBetween(c.Context(), user, otherID)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(info)
}
