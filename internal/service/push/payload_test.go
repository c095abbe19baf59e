package push_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"amersur-crm/internal/service/push"
)

func TestResolvePayload_Defaults(t *testing.T) {
	t.Run("Empty payload yields pure defaults", func(t *testing.T) {
		p := push.ResolvePayload(nil)

		assert.Equal(t, push.DefaultTitle, p.Title)
		assert.Equal(t, "", p.Body)
		assert.Equal(t, push.DefaultIcon, p.Icon)
		assert.Equal(t, push.DefaultBadge, p.Badge)
		assert.Equal(t, "", p.Tag)
		assert.False(t, p.Renotify)
		assert.Nil(t, p.Data)
	})

	t.Run("Malformed JSON becomes plain-text body", func(t *testing.T) {
		p := push.ResolvePayload([]byte("cliente Juan respondió"))

		assert.Equal(t, push.DefaultTitle, p.Title)
		assert.Equal(t, "cliente Juan respondió", p.Body)
		assert.Equal(t, push.DefaultIcon, p.Icon)
	})

	t.Run("Each field defaults independently", func(t *testing.T) {
		p := push.ResolvePayload([]byte(`{"title":"Venta","renotify":true}`))

		assert.Equal(t, "Venta", p.Title)
		assert.Equal(t, "", p.Body)
		assert.Equal(t, push.DefaultIcon, p.Icon)
		assert.Equal(t, push.DefaultBadge, p.Badge)
		assert.True(t, p.Renotify)
	})

	t.Run("Empty title falls back to default", func(t *testing.T) {
		p := push.ResolvePayload([]byte(`{"title":"","body":"hola"}`))

		assert.Equal(t, push.DefaultTitle, p.Title)
		assert.Equal(t, "hola", p.Body)
	})

	t.Run("Full payload passes through", func(t *testing.T) {
		raw := []byte(`{
			"title": "Lead asignado",
			"body": "Se te asignó el lead de Juan",
			"icon": "/icons/lead.png",
			"badge": "/icons/lead-badge.png",
			"tag": "lead-123",
			"renotify": true,
			"data": {"url": "/dashboard/clientes/c-1", "tipo": "lead_asignado"}
		}`)
		p := push.ResolvePayload(raw)

		assert.Equal(t, "Lead asignado", p.Title)
		assert.Equal(t, "Se te asignó el lead de Juan", p.Body)
		assert.Equal(t, "/icons/lead.png", p.Icon)
		assert.Equal(t, "/icons/lead-badge.png", p.Badge)
		assert.Equal(t, "lead-123", p.Tag)
		assert.True(t, p.Renotify)
		assert.Equal(t, "lead_asignado", p.Data["tipo"])
	})
}

func TestPayload_ClickURL(t *testing.T) {
	t.Run("Uses data url when present", func(t *testing.T) {
		p := push.ResolvePayload([]byte(`{"data":{"url":"/dashboard/ventas/v-9"}}`))
		assert.Equal(t, "/dashboard/ventas/v-9", p.ClickURL())
	})

	t.Run("Falls back to dashboard", func(t *testing.T) {
		assert.Equal(t, push.DefaultURL, push.ResolvePayload(nil).ClickURL())
		assert.Equal(t, push.DefaultURL, push.ResolvePayload([]byte(`{"data":{"url":42}}`)).ClickURL())
	})
}
