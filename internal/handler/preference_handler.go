package handler

import (
	"github.com/gofiber/fiber/v2"

	"amersur-crm/internal/domain"
	"amersur-crm/internal/middleware"
	"amersur-crm/internal/repository"
)

type PreferenceHandler struct {
	prefRepo repository.PreferenceRepository
}

func NewPreferenceHandler(prefRepo repository.PreferenceRepository) *PreferenceHandler {
	return &PreferenceHandler{prefRepo: prefRepo}
}

// GetPreferences returns the user's channel preferences, falling back to the
// all-enabled defaults when nothing was saved yet.
func (h *PreferenceHandler) GetPreferences(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	prefs, err := h.prefRepo.GetByUser(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(prefs)
}

func (h *PreferenceHandler) UpdatePreferences(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var body struct {
		EmailEnabled         bool `json:"email_enabled"`
		PushEnabled          bool `json:"push_enabled"`
		RecordatoriosEnabled bool `json:"recordatorios_enabled"`
	}
	if err := c.BodyParser(&body); err != nil {
		return middleware.BadRequest("Invalid preferences payload")
	}

	prefs := &domain.NotificationPreferences{
		UsuarioID:            userID,
		EmailEnabled:         body.EmailEnabled,
		PushEnabled:          body.PushEnabled,
		RecordatoriosEnabled: body.RecordatoriosEnabled,
	}
	if err := h.prefRepo.Upsert(c.Context(), prefs); err != nil {
		return err
	}

	return c.JSON(prefs)
}
