package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"amersur-crm/internal/domain"
)

type EventRepository interface {
	ListDueReminders(ctx context.Context, now time.Time, limit int) ([]domain.Evento, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID) error
}

type eventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) ListDueReminders(ctx context.Context, now time.Time, limit int) ([]domain.Evento, error) {
	var eventos []domain.Evento
	query := `
		SELECT id, usuario_id, titulo, descripcion, fecha_inicio,
		       recordatorio_en, recordatorio_web, recordatorio_enviado, data
		FROM crm.evento
		WHERE recordatorio_web = true
		  AND recordatorio_enviado = false
		  AND recordatorio_en IS NOT NULL
		  AND recordatorio_en <= $1
		ORDER BY recordatorio_en ASC
		LIMIT $2`
	err := r.db.SelectContext(ctx, &eventos, query, now, limit)
	return eventos, err
}

func (r *eventRepository) MarkReminderSent(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE crm.evento SET recordatorio_enviado = true WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
