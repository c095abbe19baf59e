package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificacionTipo string

const (
	TipoEvento       NotificacionTipo = "evento"
	TipoRecordatorio NotificacionTipo = "recordatorio"
	TipoSistema      NotificacionTipo = "sistema"
	TipoVenta        NotificacionTipo = "venta"
	TipoReserva      NotificacionTipo = "reserva"
	TipoCliente      NotificacionTipo = "cliente"
	TipoProyecto     NotificacionTipo = "proyecto"
	TipoLote         NotificacionTipo = "lote"
	TipoLeadAsignado NotificacionTipo = "lead_asignado"
)

func (t NotificacionTipo) IsValid() bool {
	switch t {
	case TipoEvento, TipoRecordatorio, TipoSistema, TipoVenta, TipoReserva,
		TipoCliente, TipoProyecto, TipoLote, TipoLeadAsignado:
		return true
	}
	return false
}

type NotificacionPrioridad string

const (
	PrioridadBaja    NotificacionPrioridad = "baja"
	PrioridadMedia   NotificacionPrioridad = "media"
	PrioridadAlta    NotificacionPrioridad = "alta"
	PrioridadUrgente NotificacionPrioridad = "urgente"
)

func (p NotificacionPrioridad) IsValid() bool {
	switch p {
	case PrioridadBaja, PrioridadMedia, PrioridadAlta, PrioridadUrgente:
		return true
	}
	return false
}

// NotificacionRecord is the persisted row as stored: tipo is free-form,
// leida and updated_at may be null, data is an opaque JSON payload.
type NotificacionRecord struct {
	ID        string          `json:"id" db:"id"`
	UsuarioID uuid.UUID       `json:"usuario_id" db:"usuario_id"`
	Tipo      string          `json:"tipo" db:"tipo"`
	Titulo    string          `json:"titulo" db:"titulo"`
	Mensaje   string          `json:"mensaje" db:"mensaje"`
	Leida     *bool           `json:"leida" db:"leida"`
	Data      json.RawMessage `json:"data" db:"data"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time      `json:"updated_at" db:"updated_at"`
}

// NotificacionItem is the normalized, client-facing shape: tipo and
// prioridad are always valid enum values and leida is a concrete boolean.
type NotificacionItem struct {
	ID        string                `json:"id"`
	Tipo      NotificacionTipo      `json:"tipo"`
	Titulo    string                `json:"titulo"`
	Mensaje   string                `json:"mensaje"`
	Leida     bool                  `json:"leida"`
	Prioridad NotificacionPrioridad `json:"prioridad"`
	Data      json.RawMessage       `json:"data,omitempty"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt *time.Time            `json:"updatedAt,omitempty"`
}

// NotificacionListParams filters the per-user notification query. Limit is
// capped at 100 newest-first records.
type NotificacionListParams struct {
	Since      *time.Time
	UnreadOnly bool
	Limit      int
}

func (p *NotificacionListParams) Validate() {
	if p.Limit < 1 || p.Limit > 100 {
		p.Limit = 100
	}
}

// PushSubscription is one browser push endpoint registered by a user.
type PushSubscription struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UsuarioID uuid.UUID `json:"usuario_id" db:"usuario_id"`
	Endpoint  string    `json:"endpoint" db:"endpoint"`
	P256dh    string    `json:"p256dh" db:"p256dh"`
	Auth      string    `json:"auth" db:"auth"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NotificationPreferences gates delivery channels per user. Users without a
// stored row get everything enabled.
type NotificationPreferences struct {
	UsuarioID            uuid.UUID `json:"usuario_id" db:"usuario_id"`
	EmailEnabled         bool      `json:"email_enabled" db:"email_enabled"`
	PushEnabled          bool      `json:"push_enabled" db:"push_enabled"`
	RecordatoriosEnabled bool      `json:"recordatorios_enabled" db:"recordatorios_enabled"`
}

func DefaultPreferences(usuarioID uuid.UUID) NotificationPreferences {
	return NotificationPreferences{
		UsuarioID:            usuarioID,
		EmailEnabled:         true,
		PushEnabled:          true,
		RecordatoriosEnabled: true,
	}
}
