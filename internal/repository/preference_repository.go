package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"amersur-crm/internal/domain"
)

type PreferenceRepository interface {
	// GetByUser returns the user's stored channel preferences, or the
	// all-enabled defaults when the user never saved any.
	GetByUser(ctx context.Context, userID uuid.UUID) (domain.NotificationPreferences, error)
	Upsert(ctx context.Context, prefs *domain.NotificationPreferences) error
}

type preferenceRepository struct {
	db *sqlx.DB
}

func NewPreferenceRepository(db *sqlx.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) GetByUser(ctx context.Context, userID uuid.UUID) (domain.NotificationPreferences, error) {
	var prefs domain.NotificationPreferences
	query := `
		SELECT usuario_id, email_enabled, push_enabled, recordatorios_enabled
		FROM crm.notificacion_preferencias
		WHERE usuario_id = $1`
	err := r.db.GetContext(ctx, &prefs, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DefaultPreferences(userID), nil
	}
	return prefs, err
}

func (r *preferenceRepository) Upsert(ctx context.Context, prefs *domain.NotificationPreferences) error {
	query := `
		INSERT INTO crm.notificacion_preferencias (usuario_id, email_enabled, push_enabled, recordatorios_enabled)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (usuario_id)
		DO UPDATE SET email_enabled = EXCLUDED.email_enabled,
		              push_enabled = EXCLUDED.push_enabled,
		              recordatorios_enabled = EXCLUDED.recordatorios_enabled`
	_, err := r.db.ExecContext(ctx, query,
		prefs.UsuarioID, prefs.EmailEnabled, prefs.PushEnabled, prefs.RecordatoriosEnabled)
	return err
}
