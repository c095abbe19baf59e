package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"amersur-crm/internal/domain"
	"amersur-crm/internal/middleware"
	"amersur-crm/internal/repository"
)

type PushHandler struct {
	subRepo repository.PushSubscriptionRepository
}

func NewPushHandler(subRepo repository.PushSubscriptionRepository) *PushHandler {
	return &PushHandler{subRepo: subRepo}
}

// Subscribe stores the browser push subscription the front end obtained
// from the push service. Re-subscribing the same endpoint refreshes its
// keys.
func (h *PushHandler) Subscribe(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var body struct {
		Endpoint string `json:"endpoint"`
		Keys     struct {
			P256dh string `json:"p256dh"`
			Auth   string `json:"auth"`
		} `json:"keys"`
	}
	if err := c.BodyParser(&body); err != nil {
		return middleware.BadRequest("Invalid subscription payload")
	}
	if body.Endpoint == "" || body.Keys.P256dh == "" || body.Keys.Auth == "" {
		return middleware.BadRequest("Incomplete subscription payload")
	}

	sub := &domain.PushSubscription{
		ID:        uuid.New(),
		UsuarioID: userID,
		Endpoint:  body.Endpoint,
		P256dh:    body.Keys.P256dh,
		Auth:      body.Keys.Auth,
	}
	if err := h.subRepo.Upsert(c.Context(), sub); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"id":      sub.ID,
	})
}

func (h *PushHandler) Unsubscribe(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var body struct {
		Endpoint string `json:"endpoint"`
	}
	if err := c.BodyParser(&body); err != nil || body.Endpoint == "" {
		return middleware.BadRequest("Endpoint required")
	}

	if err := h.subRepo.DeleteByEndpoint(c.Context(), userID, body.Endpoint); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}
