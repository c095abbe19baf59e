package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"amersur-crm/internal/domain"
	"amersur-crm/internal/repository"
	"amersur-crm/internal/service/notification"
)

const sweepBatchSize = 50

// Service turns due agenda reminders into recordatorio notifications on a
// fixed schedule. Each event is marked as notified only after its
// notification was stored, so a crashed sweep retries on the next tick.
type Service interface {
	Start()
	Stop()
	RunOnce(ctx context.Context) (int, error)
}

type service struct {
	eventRepo repository.EventRepository
	notifSvc  notification.Service
	cron      *cron.Cron
}

func NewService(eventRepo repository.EventRepository, notifSvc notification.Service) Service {
	return &service{
		eventRepo: eventRepo,
		notifSvc:  notifSvc,
		cron:      cron.New(),
	}
}

func (s *service) Start() {
	_, err := s.cron.AddFunc("* * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
		defer cancel()

		sent, err := s.RunOnce(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("reminder sweep failed")
			return
		}
		if sent > 0 {
			log.Info().Int("sent", sent).Msg("reminder sweep dispatched notifications")
		}
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to schedule reminder sweep")
		return
	}
	s.cron.Start()
}

func (s *service) Stop() {
	s.cron.Stop()
}

// RunOnce processes one batch of due reminders and returns how many
// notifications were dispatched. A failure on one event does not stop the
// rest of the batch.
func (s *service) RunOnce(ctx context.Context) (int, error) {
	eventos, err := s.eventRepo.ListDueReminders(ctx, time.Now(), sweepBatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list due reminders: %w", err)
	}

	sent := 0
	for _, evento := range eventos {
		if err := s.notify(ctx, evento); err != nil {
			log.Warn().Err(err).Str("evento_id", evento.ID.String()).Msg("failed to dispatch reminder")
			continue
		}
		sent++
	}

	return sent, nil
}

func (s *service) notify(ctx context.Context, evento domain.Evento) error {
	mensaje := fmt.Sprintf("Tu evento %q comienza el %s", evento.Titulo, evento.FechaInicio.Format("02/01/2006 15:04"))
	if evento.Descripcion != nil && *evento.Descripcion != "" {
		mensaje = fmt.Sprintf("%s. %s", mensaje, *evento.Descripcion)
	}

	_, err := s.notifSvc.Create(ctx, notification.CreateInput{
		UsuarioID: evento.UsuarioID,
		Tipo:      domain.TipoRecordatorio,
		Titulo:    "Recordatorio: " + evento.Titulo,
		Mensaje:   mensaje,
		Data: map[string]any{
			"evento_id":       evento.ID.String(),
			"recordatorio_id": evento.ID.String(),
			"url":             "/dashboard/agenda",
		},
	})
	if err != nil {
		return err
	}

	return s.eventRepo.MarkReminderSent(ctx, evento.ID)
}
