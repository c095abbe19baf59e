package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"amersur-crm/internal/domain"
	"amersur-crm/internal/middleware"
	"amersur-crm/internal/service/notification"
)

type NotificationHandler struct {
	notifService notification.Service
}

func NewNotificationHandler(notifService notification.Service) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

// List returns the current user's notifications, normalized and
// deduplicated, newest first, capped at 100, plus the unread count.
// Supports ?since=<RFC3339> and ?unread=true filters.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	params := domain.NotificacionListParams{
		UnreadOnly: c.Query("unread") == "true",
	}

	if since := c.Query("since"); since != "" {
		parsed, err := time.Parse(time.RFC3339, since)
		if err != nil {
			return middleware.BadRequest("Invalid since timestamp")
		}
		params.Since = &parsed
	}

	result, err := h.notifService.List(c.Context(), userID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// Actions handles POST /notificaciones. The only supported action is
// mark_all_read.
func (h *NotificationHandler) Actions(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var body struct {
		Action string `json:"action"`
	}
	if err := c.BodyParser(&body); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if body.Action != "mark_all_read" {
		return middleware.BadRequest("Acción no válida")
	}

	marked, err := h.notifService.MarkAllAsRead(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":     true,
		"markedCount": marked,
	})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	id := c.Params("id")
	if id == "" {
		return middleware.BadRequest("Invalid notification ID")
	}

	if err := h.notifService.MarkAsRead(c.Context(), userID, id); err != nil {
		if errors.Is(err, notification.ErrNotFound) {
			return middleware.NotFound("Notificación no encontrada")
		}
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	count, err := h.notifService.GetUnreadCount(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count": count,
	})
}
