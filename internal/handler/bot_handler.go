package handler

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"

	"amersur-crm/internal/config"
	"amersur-crm/internal/domain"
	"amersur-crm/internal/service/botstate"
)

type BotHandler struct {
	store  *botstate.Store
	config *config.Config
}

func NewBotHandler(store *botstate.Store, cfg *config.Config) *BotHandler {
	return &BotHandler{store: store, config: cfg}
}

// GetStatus returns the current bot state snapshot (debugging aid for the
// dashboard).
func (h *BotHandler) GetStatus(c *fiber.Ctx) error {
	return c.JSON(h.store.Get())
}

// UpdateStatus receives state reports from the WhatsApp bot process. The
// bot authenticates with a pre-shared key; the credential check happens
// before any state is touched. The body is a partial update: absent fields
// keep their previous value.
func (h *BotHandler) UpdateStatus(c *fiber.Ctx) error {
	if h.config.WhatsAppBotAPIKey == "" {
		log.Error().Msg("WHATSAPP_BOT_API_KEY not configured")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server misconfiguration",
		})
	}

	if botAPIKey(c) != h.config.WhatsAppBotAPIKey {
		log.Warn().Str("ip", c.IP()).Msg("bot status update with invalid API key")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	// A malformed body is treated as an empty update, not an error: the bot
	// retries aggressively and a dropped report is cheaper than a stuck one.
	var partial domain.BotStateUpdate
	if err := json.Unmarshal(c.Body(), &partial); err != nil {
		partial = domain.BotStateUpdate{}
	}

	previous := h.store.Get()
	h.store.Update(partial)

	// Connected with an explicitly null QR means pairing completed: drop any
	// stale code. Redundant when the merge already cleared it, but harmless.
	if partial.Connected != nil && *partial.Connected && partial.QR.Set && partial.QR.Value == nil {
		h.store.ClearQR()
	}

	current := h.store.Get()
	if stateChanged(previous, current) {
		log.Info().
			Bool("connected", current.Connected).
			Bool("has_qr", current.QR != nil).
			Msg("bot state updated")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Estado actualizado",
	})
}

// Stream is the dashboard's real-time view of the bot state over
// Server-Sent Events. Admin-only, checked once at connection open. The
// first frame is the current snapshot; every subsequent mutation is pushed
// as it happens, with a comment heartbeat to keep intermediaries from
// closing the idle connection.
func (h *BotHandler) Stream(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	heartbeat := h.config.StreamHeartbeat
	if heartbeat <= 0 {
		heartbeat = 30 * time.Second
	}

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		h.streamStates(w, heartbeat)
	}))

	return nil
}

// streamStates runs the SSE writer loop until a write or flush fails, which
// is how a closed connection surfaces here; the heartbeat bounds how long a
// dead connection's listener can linger. Cleanup (stop ticker, unsubscribe)
// runs exactly once no matter which path exits the loop.
func (h *BotHandler) streamStates(w *bufio.Writer, heartbeat time.Duration) {
	// The listener never blocks the store: frames go into a buffered
	// channel and a stalled client drops frames instead of stalling the
	// broadcast.
	frames := make(chan domain.BotState, 8)
	listenerID := h.store.Subscribe(func(state domain.BotState) {
		select {
		case frames <- state:
		default:
		}
	})

	ticker := time.NewTicker(heartbeat)

	var cleanupOnce sync.Once
	cleanup := func() {
		cleanupOnce.Do(func() {
			ticker.Stop()
			h.store.Unsubscribe(listenerID)
		})
	}
	defer cleanup()

	if err := writeStateFrame(w, h.store.Get()); err != nil {
		cleanup()
		return
	}

	for {
		select {
		case state := <-frames:
			if err := writeStateFrame(w, state); err != nil {
				cleanup()
				return
			}
		case <-ticker.C:
			// Comment-only frame; clients ignore it.
			if _, err := fmt.Fprint(w, ": heartbeat\n\n"); err != nil {
				cleanup()
				return
			}
			if err := w.Flush(); err != nil {
				cleanup()
				return
			}
		}
	}
}

func writeStateFrame(w *bufio.Writer, state domain.BotState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	return w.Flush()
}

// botAPIKey reads the bot credential from x-api-key, falling back to a
// bearer token.
func botAPIKey(c *fiber.Ctx) string {
	if key := c.Get("x-api-key"); key != "" {
		return key
	}
	return strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
}

func stateChanged(previous, current domain.BotState) bool {
	return previous.Connected != current.Connected ||
		!equalPtr(previous.PhoneNumber, current.PhoneNumber) ||
		(previous.QR == nil) != (current.QR == nil) ||
		!equalPtr(previous.Error, current.Error)
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
