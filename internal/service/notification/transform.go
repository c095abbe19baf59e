package notification

import (
	"encoding/json"

	"amersur-crm/internal/domain"
)

// Normalize converts raw notification rows into the strict client-facing
// shape. It is total: unknown tipo collapses to "sistema", prioridad comes
// from the data payload only when it is a valid value (otherwise "media"),
// and a null leida becomes false. Order is preserved and the input is never
// mutated.
func Normalize(records []domain.NotificacionRecord) []domain.NotificacionItem {
	items := make([]domain.NotificacionItem, 0, len(records))
	for _, rec := range records {
		items = append(items, normalizeOne(rec))
	}
	return items
}

func normalizeOne(rec domain.NotificacionRecord) domain.NotificacionItem {
	tipo := domain.NotificacionTipo(rec.Tipo)
	if !tipo.IsValid() {
		tipo = domain.TipoSistema
	}

	leida := rec.Leida != nil && *rec.Leida

	return domain.NotificacionItem{
		ID:        rec.ID,
		Tipo:      tipo,
		Titulo:    rec.Titulo,
		Mensaje:   rec.Mensaje,
		Leida:     leida,
		Prioridad: extractPrioridad(rec.Data),
		Data:      rec.Data,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

// extractPrioridad reads data.prioridad when it is a string holding a valid
// priority. Anything else (missing data, malformed JSON, wrong type,
// unknown value) defaults to media. No other field of data is interpreted.
func extractPrioridad(data json.RawMessage) domain.NotificacionPrioridad {
	if len(data) == 0 {
		return domain.PrioridadMedia
	}

	var payload struct {
		Prioridad *string `json:"prioridad"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.Prioridad == nil {
		return domain.PrioridadMedia
	}

	prioridad := domain.NotificacionPrioridad(*payload.Prioridad)
	if !prioridad.IsValid() {
		return domain.PrioridadMedia
	}
	return prioridad
}
