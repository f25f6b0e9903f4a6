package controllers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/davidromero/Backend-LinkHub/src/lib"
	"github.com/davidromero/Backend-LinkHub/src/models"
)

var (
	logger      = slog.Default()
	development bool
)

// Init sets the package logger and whether 500 responses may expose
// internal error detail.
func Init(l *slog.Logger, dev bool) {
	logger = l
	development = dev
}

// fail renders any error into the `{message}` envelope. Domain errors map
// to their HTTP status; anything else is a 500 whose detail leaks only in
// development.
func fail(c *fiber.Ctx, err error) error {
	var derr *models.DomainError
	if errors.As(err, &derr) && derr.Code != models.CodeUnexpected {
		return c.Status(derr.HTTPStatus()).JSON(lib.MessageResponse(derr.Message))
	}

	logger.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	message := "Server error"
	if development {
		message = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse(message))
}

// actingUser returns the authenticated user injected by the auth
// middleware before any protected handler runs.
func actingUser(c *fiber.Ctx) *models.User {
	return c.Locals("user").(*models.User)
}
