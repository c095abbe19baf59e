package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Evento is the slice of an agenda event the reminder sweep needs: who owns
// it, when its reminder fires, and whether it was already notified.
type Evento struct {
	ID                  uuid.UUID       `json:"id" db:"id"`
	UsuarioID           uuid.UUID       `json:"usuario_id" db:"usuario_id"`
	Titulo              string          `json:"titulo" db:"titulo"`
	Descripcion         *string         `json:"descripcion,omitempty" db:"descripcion"`
	FechaInicio         time.Time       `json:"fecha_inicio" db:"fecha_inicio"`
	RecordatorioEn      *time.Time      `json:"recordatorio_en,omitempty" db:"recordatorio_en"`
	RecordatorioWeb     bool            `json:"recordatorio_web" db:"recordatorio_web"`
	RecordatorioEnviado bool            `json:"recordatorio_enviado" db:"recordatorio_enviado"`
	Data                json.RawMessage `json:"data,omitempty" db:"data"`
}
