package notification_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"amersur-crm/internal/domain"
	"amersur-crm/internal/service/notification"
)

func TestDedupe_ByID(t *testing.T) {
	now := time.Now()
	items := []domain.NotificacionItem{
		{ID: "1", Tipo: domain.TipoVenta, Titulo: "first", CreatedAt: now},
		{ID: "1", Tipo: domain.TipoVenta, Titulo: "duplicate", CreatedAt: now},
		{ID: "2", Tipo: domain.TipoVenta, CreatedAt: now},
	}

	out := notification.Dedupe(items)

	assert.Len(t, out, 2)
	assert.Equal(t, "1", out[0].ID)
	assert.Equal(t, "2", out[1].ID)
	assert.Equal(t, "first", out[0].Titulo, "first occurrence wins")
}

func TestDedupe_FallbackKey(t *testing.T) {
	instant := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	// Two id-less notifications of the same type created in the same
	// instant collapse; a different type at the same instant survives.
	items := []domain.NotificacionItem{
		{Tipo: domain.TipoSistema, CreatedAt: instant},
		{Tipo: domain.TipoSistema, CreatedAt: instant},
		{Tipo: domain.TipoCliente, CreatedAt: instant},
	}

	out := notification.Dedupe(items)

	assert.Len(t, out, 2)
	assert.Equal(t, domain.TipoSistema, out[0].Tipo)
	assert.Equal(t, domain.TipoCliente, out[1].Tipo)
}

func TestDedupe_MixedKeys(t *testing.T) {
	instant := time.Now()
	items := []domain.NotificacionItem{
		{ID: "1", Tipo: domain.TipoSistema, CreatedAt: instant},
		{Tipo: domain.TipoSistema, CreatedAt: instant},
		{Tipo: domain.TipoSistema, CreatedAt: instant.Add(time.Nanosecond)},
	}

	out := notification.Dedupe(items)

	// The id-bearing item and the id-less one use different keys, and the
	// nanosecond difference separates the two id-less ones.
	assert.Len(t, out, 3)
}

func TestDedupe_DoesNotMutateInput(t *testing.T) {
	now := time.Now()
	items := []domain.NotificacionItem{
		{ID: "1", Tipo: domain.TipoVenta, CreatedAt: now},
		{ID: "1", Tipo: domain.TipoVenta, CreatedAt: now},
	}

	out := notification.Dedupe(items)

	assert.Len(t, items, 2, "input slice length unchanged")
	assert.Len(t, out, 1)
	out[0].Titulo = "changed"
	assert.Empty(t, items[0].Titulo)
}

func TestDedupe_Empty(t *testing.T) {
	assert.Empty(t, notification.Dedupe(nil))
}
