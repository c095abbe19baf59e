package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"amersur-crm/internal/domain"
	"amersur-crm/internal/repository"
	"amersur-crm/internal/service/email"
	"amersur-crm/internal/service/push"
)

const (
	unreadCountKeyPrefix = "notif:unread:"
	unreadCountTTL       = 30 * time.Second
)

// ErrNotFound means the notification does not exist or belongs to another
// user; callers map it to a 404.
var ErrNotFound = errors.New("notification not found")

type ListResult struct {
	Data        []domain.NotificacionItem `json:"data"`
	UnreadCount int64                     `json:"unreadCount"`
}

// CreateInput describes a notification to persist and deliver. Email and URL
// feed the secondary channels; the in-app list only needs the record itself.
type CreateInput struct {
	UsuarioID uuid.UUID
	Tipo      domain.NotificacionTipo
	Titulo    string
	Mensaje   string
	Data      map[string]any
	Email     *string
	URL       string
}

type Service interface {
	List(ctx context.Context, userID uuid.UUID, params domain.NotificacionListParams) (ListResult, error)
	MarkAsRead(ctx context.Context, userID uuid.UUID, id string) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error)
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	Create(ctx context.Context, input CreateInput) (*domain.NotificacionRecord, error)
}

type service struct {
	notifRepo repository.NotificationRepository
	prefRepo  repository.PreferenceRepository
	emailSvc  email.Service
	pushSvc   push.Service
	redis     *redis.Client
}

func NewService(
	notifRepo repository.NotificationRepository,
	prefRepo repository.PreferenceRepository,
	emailSvc email.Service,
	pushSvc push.Service,
	redisClient *redis.Client,
) Service {
	return &service{
		notifRepo: notifRepo,
		prefRepo:  prefRepo,
		emailSvc:  emailSvc,
		pushSvc:   pushSvc,
		redis:     redisClient,
	}
}

// List returns the user's normalized, deduplicated notifications newest
// first, capped at 100, together with the unread count.
func (s *service) List(ctx context.Context, userID uuid.UUID, params domain.NotificacionListParams) (ListResult, error) {
	records, err := s.notifRepo.ListByUser(ctx, userID, params)
	if err != nil {
		return ListResult{}, fmt.Errorf("failed to list notifications: %w", err)
	}

	unread, err := s.GetUnreadCount(ctx, userID)
	if err != nil {
		return ListResult{}, err
	}

	return ListResult{
		Data:        Dedupe(Normalize(records)),
		UnreadCount: unread,
	}, nil
}

func (s *service) MarkAsRead(ctx context.Context, userID uuid.UUID, id string) error {
	matched, err := s.notifRepo.MarkAsRead(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	if matched == 0 {
		return ErrNotFound
	}
	s.invalidateUnreadCount(ctx, userID)
	return nil
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	marked, err := s.notifRepo.MarkAllAsRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	s.invalidateUnreadCount(ctx, userID)
	return marked, nil
}

// GetUnreadCount serves the badge counter, which every dashboard page polls.
// Redis is a read-through cache with a short TTL; on any cache error the
// count comes straight from postgres.
func (s *service) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	cacheKey := unreadCountKeyPrefix + userID.String()

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
				return count, nil
			}
		}
	}

	count, err := s.notifRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	if s.redis != nil {
		_ = s.redis.Set(ctx, cacheKey, strconv.FormatInt(count, 10), unreadCountTTL).Err()
	}

	return count, nil
}

// Create persists the notification and dispatches the secondary channels
// (email, web push) according to the user's preferences. Channel failures
// are logged, never surfaced: once the row is stored, Create succeeds.
func (s *service) Create(ctx context.Context, input CreateInput) (*domain.NotificacionRecord, error) {
	var data json.RawMessage
	if input.Data != nil {
		encoded, err := json.Marshal(input.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to encode notification data: %w", err)
		}
		data = encoded
	}

	record := &domain.NotificacionRecord{
		ID:        uuid.New().String(),
		UsuarioID: input.UsuarioID,
		Tipo:      string(input.Tipo),
		Titulo:    input.Titulo,
		Mensaje:   input.Mensaje,
		Data:      data,
	}

	if err := s.notifRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	s.invalidateUnreadCount(ctx, input.UsuarioID)

	s.dispatchChannels(ctx, record, input)

	return record, nil
}

func (s *service) dispatchChannels(ctx context.Context, record *domain.NotificacionRecord, input CreateInput) {
	prefs, err := s.prefRepo.GetByUser(ctx, input.UsuarioID)
	if err != nil {
		log.Warn().Err(err).Str("usuario_id", input.UsuarioID.String()).Msg("failed to load notification preferences, skipping channels")
		return
	}

	_, isRecordatorio := input.Data["recordatorio_id"]
	if isRecordatorio && !prefs.RecordatoriosEnabled {
		return
	}

	if prefs.EmailEnabled && s.emailSvc != nil {
		if input.Email == nil || *input.Email == "" {
			log.Info().Str("usuario_id", input.UsuarioID.String()).Msg("email channel skipped: user has no address")
		} else if err := s.emailSvc.SendNotificationEmail(ctx, *input.Email, input.Titulo, input.Mensaje, string(input.Tipo)); err != nil {
			log.Warn().Err(err).Str("usuario_id", input.UsuarioID.String()).Msg("email channel failed")
		}
	}

	if prefs.PushEnabled && s.pushSvc != nil {
		payload := push.Payload{
			Title: input.Titulo,
			Body:  input.Mensaje,
			Icon:  push.DefaultIcon,
			Badge: push.DefaultBadge,
			Data:  pushData(record, input),
		}
		if err := s.pushSvc.Send(ctx, input.UsuarioID, payload); err != nil {
			log.Warn().Err(err).Str("usuario_id", input.UsuarioID.String()).Msg("push channel failed")
		}
	}
}

func pushData(record *domain.NotificacionRecord, input CreateInput) map[string]any {
	data := make(map[string]any, len(input.Data)+3)
	for k, v := range input.Data {
		data[k] = v
	}
	if input.URL != "" {
		if _, ok := data["url"]; !ok {
			data["url"] = input.URL
		}
	}
	if _, ok := data["url"]; !ok {
		data["url"] = push.DefaultURL
	}
	data["tipo"] = record.Tipo
	data["created_at"] = record.CreatedAt.Format(time.RFC3339)
	return data
}

func (s *service) invalidateUnreadCount(ctx context.Context, userID uuid.UUID) {
	if s.redis == nil {
		return
	}
	_ = s.redis.Del(ctx, unreadCountKeyPrefix+userID.String()).Err()
}
