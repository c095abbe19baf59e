package service

import (
	"github.com/redis/go-redis/v9"

	"amersur-crm/internal/config"
	"amersur-crm/internal/repository"
	"amersur-crm/internal/service/auth"
	"amersur-crm/internal/service/botstate"
	"amersur-crm/internal/service/email"
	"amersur-crm/internal/service/notification"
	"amersur-crm/internal/service/push"
	"amersur-crm/internal/service/reminder"
)

type Services struct {
	Auth         auth.Service
	BotState     *botstate.Store
	Email        email.Service
	Push         push.Service
	Notification notification.Service
	Reminder     reminder.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, cfg *config.Config) *Services {
	authService := auth.NewService(cfg)
	botStateStore := botstate.NewStore()
	emailService := email.NewService(cfg)
	pushService := push.NewService(repos.PushSubscription, cfg)
	notificationService := notification.NewService(repos.Notification, repos.Preference, emailService, pushService, redis)
	reminderService := reminder.NewService(repos.Event, notificationService)

	return &Services{
		Auth:         authService,
		BotState:     botStateStore,
		Email:        emailService,
		Push:         pushService,
		Notification: notificationService,
		Reminder:     reminderService,
	}
}
