package handler_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"amersur-crm/internal/config"
	"amersur-crm/internal/domain"
	"amersur-crm/internal/handler"
	"amersur-crm/internal/middleware"
	"amersur-crm/internal/service/auth"
	"amersur-crm/internal/service/botstate"
)

const testBotKey = "test-bot-key"

func newBotApp(store *botstate.Store, cfg *config.Config, claims *auth.Claims) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	h := handler.NewBotHandler(store, cfg)

	app.Post("/status", h.UpdateStatus)

	injectClaims := func(c *fiber.Ctx) error {
		if claims != nil {
			c.Locals(middleware.ClaimsContextKey, claims)
		}
		return c.Next()
	}
	app.Get("/status", injectClaims, middleware.RequireAdmin(), h.GetStatus)
	app.Get("/stream", injectClaims, middleware.RequireAdmin(), h.Stream)

	return app
}

func postStatus(t *testing.T, app *fiber.App, apiKey, body string) int {
	t.Helper()
	req := httptest.NewRequest("POST", "/status", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("x-api-key", apiKey)
	}
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	return resp.StatusCode
}

func TestBotHandler_UpdateStatus_Auth(t *testing.T) {
	t.Run("Unconfigured key is a server error", func(t *testing.T) {
		store := botstate.NewStore()
		app := newBotApp(store, &config.Config{}, nil)

		code := postStatus(t, app, "anything", `{"connected":true}`)

		assert.Equal(t, fiber.StatusInternalServerError, code)
		assert.False(t, store.Get().Connected, "state untouched on misconfiguration")
	})

	t.Run("Wrong key is rejected before touching state", func(t *testing.T) {
		store := botstate.NewStore()
		app := newBotApp(store, &config.Config{WhatsAppBotAPIKey: testBotKey}, nil)

		code := postStatus(t, app, "wrong", `{"connected":true}`)

		assert.Equal(t, fiber.StatusUnauthorized, code)
		assert.False(t, store.Get().Connected)
	})

	t.Run("Bearer token works as fallback credential", func(t *testing.T) {
		store := botstate.NewStore()
		app := newBotApp(store, &config.Config{WhatsAppBotAPIKey: testBotKey}, nil)

		req := httptest.NewRequest("POST", "/status", strings.NewReader(`{"connected":true}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+testBotKey)
		resp, err := app.Test(req, -1)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.True(t, store.Get().Connected)
	})
}

func TestBotHandler_UpdateStatus_Merge(t *testing.T) {
	store := botstate.NewStore()
	app := newBotApp(store, &config.Config{WhatsAppBotAPIKey: testBotKey}, nil)

	code := postStatus(t, app, testBotKey, `{"connected":false,"qr":"ABC123"}`)
	assert.Equal(t, fiber.StatusOK, code)

	state := store.Get()
	assert.False(t, state.Connected)
	assert.Equal(t, "ABC123", *state.QR)
	assert.Nil(t, state.PhoneNumber)
	assert.Nil(t, state.Error)

	// A later report that omits qr must not clear it.
	code = postStatus(t, app, testBotKey, `{"phoneNumber":"+51999888777"}`)
	assert.Equal(t, fiber.StatusOK, code)

	state = store.Get()
	assert.Equal(t, "ABC123", *state.QR)
	assert.Equal(t, "+51999888777", *state.PhoneNumber)
}

func TestBotHandler_UpdateStatus_ConnectClearsQR(t *testing.T) {
	store := botstate.NewStore()
	app := newBotApp(store, &config.Config{WhatsAppBotAPIKey: testBotKey}, nil)

	postStatus(t, app, testBotKey, `{"connected":false,"qr":"ABC123"}`)
	code := postStatus(t, app, testBotKey, `{"connected":true,"qr":null,"phoneNumber":"+51999888777"}`)

	assert.Equal(t, fiber.StatusOK, code)
	state := store.Get()
	assert.True(t, state.Connected)
	assert.Nil(t, state.QR)
	assert.Equal(t, "+51999888777", *state.PhoneNumber)
}

func TestBotHandler_UpdateStatus_MalformedBody(t *testing.T) {
	store := botstate.NewStore()
	app := newBotApp(store, &config.Config{WhatsAppBotAPIKey: testBotKey}, nil)

	postStatus(t, app, testBotKey, `{"qr":"ABC123"}`)
	code := postStatus(t, app, testBotKey, `{not json`)

	// Malformed body is an empty update: accepted, nothing changes.
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "ABC123", *store.Get().QR)
}

func TestBotHandler_UpdateStatus_FansOutToSubscribers(t *testing.T) {
	store := botstate.NewStore()
	app := newBotApp(store, &config.Config{WhatsAppBotAPIKey: testBotKey}, nil)

	var first, second []domain.BotState
	store.Subscribe(func(s domain.BotState) { first = append(first, s) })
	store.Subscribe(func(s domain.BotState) { second = append(second, s) })

	postStatus(t, app, testBotKey, `{"connected":false,"qr":"ABC123"}`)

	assert.Len(t, first, 1)
	assert.Len(t, second, 1)
	for _, got := range []domain.BotState{first[0], second[0]} {
		assert.False(t, got.Connected)
		assert.Equal(t, "ABC123", *got.QR)
		assert.Nil(t, got.PhoneNumber)
		assert.Nil(t, got.Error)
	}
	assert.Equal(t, first[0], second[0])
}

func TestBotHandler_Stream_Authorization(t *testing.T) {
	store := botstate.NewStore()
	cfg := &config.Config{WhatsAppBotAPIKey: testBotKey}

	t.Run("No session is unauthorized", func(t *testing.T) {
		app := newBotApp(store, cfg, nil)
		resp, err := app.Test(httptest.NewRequest("GET", "/stream", nil), -1)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Non-admin is forbidden with no stream opened", func(t *testing.T) {
		app := newBotApp(store, cfg, &auth.Claims{Rol: "vendedor"})
		resp, err := app.Test(httptest.NewRequest("GET", "/stream", nil), -1)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		assert.Equal(t, 0, store.SubscriberCount(), "no listener registered for a rejected stream")
	})
}

func TestBotHandler_GetStatus(t *testing.T) {
	store := botstate.NewStore()
	cfg := &config.Config{WhatsAppBotAPIKey: testBotKey}
	app := newBotApp(store, cfg, &auth.Claims{Rol: "admin"})

	resp, err := app.Test(httptest.NewRequest("GET", "/status", nil), -1)

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
