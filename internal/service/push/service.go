package push

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"amersur-crm/internal/config"
	"amersur-crm/internal/repository"
)

type Service interface {
	// Send delivers the payload to every push subscription the user has
	// registered. Delivery is best-effort: dead subscriptions are pruned,
	// other failures are logged and swallowed.
	Send(ctx context.Context, userID uuid.UUID, payload Payload) error
}

type service struct {
	subRepo repository.PushSubscriptionRepository
	config  *config.Config
}

func NewService(subRepo repository.PushSubscriptionRepository, cfg *config.Config) Service {
	return &service{subRepo: subRepo, config: cfg}
}

func (s *service) Send(ctx context.Context, userID uuid.UUID, payload Payload) error {
	if s.config.VAPIDPrivateKey == "" || s.config.VAPIDPublicKey == "" {
		log.Debug().Msg("push disabled: VAPID keys not configured")
		return nil
	}

	subs, err := s.subRepo.ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list push subscriptions: %w", err)
	}
	if len(subs) == 0 {
		return nil
	}

	message, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode push payload: %w", err)
	}

	options := &webpush.Options{
		Subscriber:      s.config.PushSubject,
		VAPIDPublicKey:  s.config.VAPIDPublicKey,
		VAPIDPrivateKey: s.config.VAPIDPrivateKey,
		TTL:             60,
	}

	for _, sub := range subs {
		resp, err := webpush.SendNotification(message, &webpush.Subscription{
			Endpoint: sub.Endpoint,
			Keys: webpush.Keys{
				P256dh: sub.P256dh,
				Auth:   sub.Auth,
			},
		}, options)
		if err != nil {
			log.Warn().Err(err).Str("endpoint", sub.Endpoint).Msg("push delivery failed")
			continue
		}

		if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
			if err := s.subRepo.Delete(ctx, sub.ID); err != nil {
				log.Warn().Err(err).Str("subscription_id", sub.ID.String()).Msg("failed to prune dead push subscription")
			}
		}
		resp.Body.Close()
	}

	return nil
}
