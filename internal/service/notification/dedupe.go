package notification

import (
	"time"

	"amersur-crm/internal/domain"
)

// Dedupe removes duplicate notifications, keeping the first occurrence of
// each identity key. The key is the id when present; items without an id
// fall back to tipo + created_at, so two id-less notifications of the same
// type created in the same instant collapse into one. That false-positive
// is a known limitation kept for compatibility with the original client
// behavior. The input slice is not modified.
func Dedupe(items []domain.NotificacionItem) []domain.NotificacionItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]domain.NotificacionItem, 0, len(items))

	for _, item := range items {
		key := item.ID
		if key == "" {
			key = string(item.Tipo) + "|" + item.CreatedAt.Format(time.RFC3339Nano)
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}

	return out
}
