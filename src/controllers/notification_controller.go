package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/davidromero/Backend-LinkHub/src/lib"
	"github.com/davidromero/Backend-LinkHub/src/models"
	"github.com/davidromero/Backend-LinkHub/src/repository"
)

type NotificationController struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
}

func NewNotificationController(notifications repository.NotificationRepository, users repository.UserRepository) *NotificationController {
	return &NotificationController{notifications: notifications, users: users}
}

// List returns the authenticated user's notifications, newest first, with
// related users resolved to summaries.
func (ct *NotificationController) List(c *fiber.Ctx) error {
	user := actingUser(c)
	notifications, err := ct.notifications.ListFor(c.Context(), user.Id)
	if err != nil {
		return fail(c, err)
	}

	ids := []primitive.ObjectID{}
	seen := map[primitive.ObjectID]bool{}
	for _, notification := range notifications {
		if !notification.RelatedUser.IsZero() && !seen[notification.RelatedUser] {
			seen[notification.RelatedUser] = true
			ids = append(ids, notification.RelatedUser)
		}
	}
	summaries, err := ct.users.Summaries(c.Context(), ids)
	if err != nil {
		return fail(c, err)
	}
	byID := make(map[primitive.ObjectID]models.UserSummary, len(summaries))
	for _, summary := range summaries {
		byID[summary.ID] = summary
	}

	views := []models.NotificationView{}
	for _, notification := range notifications {
		view := models.NotificationView{
			ID:        notification.Id,
			Type:      notification.Type,
			Read:      notification.Read,
			CreatedAt: notification.CreatedAt,
		}
		if summary, ok := byID[notification.RelatedUser]; ok {
			view.RelatedUser = &summary
		}
		if !notification.RelatedPost.IsZero() {
			post := notification.RelatedPost
			view.RelatedPost = &post
		}
		views = append(views, view)
	}
	return c.Status(fiber.StatusOK).JSON(views)
}

// MarkRead marks one of the authenticated user's notifications as read.
func (ct *NotificationController) MarkRead(c *fiber.Ctx) error {
	notificationID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid notification ID format"))
	}

	user := actingUser(c)
	notification, err := ct.notifications.MarkRead(c.Context(), notificationID, user.Id)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(notification)
}

// Delete removes one of the authenticated user's notifications.
func (ct *NotificationController) Delete(c *fiber.Ctx) error {
	notificationID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid notification ID format"))
	}

	user := actingUser(c)
	if err := ct.notifications.Delete(c.Context(), notificationID, user.Id); err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(lib.MessageResponse("Notification deleted successfully"))
}
