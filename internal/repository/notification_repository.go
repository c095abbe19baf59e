package repository

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"amersur-crm/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notif *domain.NotificacionRecord) error
	ListByUser(ctx context.Context, userID uuid.UUID, params domain.NotificacionListParams) ([]domain.NotificacionRecord, error)
	// MarkAsRead returns how many rows matched: 0 means the notification
	// does not exist or belongs to another user.
	MarkAsRead(ctx context.Context, userID uuid.UUID, id string) (int64, error)
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notif *domain.NotificacionRecord) error {
	query := `
		INSERT INTO crm.notificacion (id, usuario_id, tipo, titulo, mensaje, leida, data)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, false), $7)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		notif.ID, notif.UsuarioID, notif.Tipo, notif.Titulo, notif.Mensaje, notif.Leida, notif.Data,
	).Scan(&notif.CreatedAt)
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, params domain.NotificacionListParams) ([]domain.NotificacionRecord, error) {
	params.Validate()

	query := `
		SELECT id, usuario_id, tipo, titulo, mensaje, leida, data, created_at, updated_at
		FROM crm.notificacion
		WHERE usuario_id = $1`
	args := []interface{}{userID}

	if params.UnreadOnly {
		query += ` AND leida = false`
	}
	if params.Since != nil {
		args = append(args, *params.Since)
		query += ` AND created_at > $2`
	}

	query += ` ORDER BY created_at DESC LIMIT ` + strconv.Itoa(params.Limit)

	var records []domain.NotificacionRecord
	err := r.db.SelectContext(ctx, &records, query, args...)
	return records, err
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, userID uuid.UUID, id string) (int64, error) {
	query := `
		UPDATE crm.notificacion
		SET leida = true, updated_at = NOW()
		WHERE id = $1 AND usuario_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `
		UPDATE crm.notificacion
		SET leida = true, updated_at = NOW()
		WHERE usuario_id = $1 AND leida = false`
	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM crm.notificacion WHERE usuario_id = $1 AND leida = false`
	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}
