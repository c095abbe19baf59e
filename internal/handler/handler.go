package handler

import (
	"amersur-crm/internal/config"
	"amersur-crm/internal/repository"
	"amersur-crm/internal/service"
)

type Handlers struct {
	Bot          *BotHandler
	Notification *NotificationHandler
	Push         *PushHandler
	Preference   *PreferenceHandler
}

func NewHandlers(services *service.Services, repos *repository.Repositories, cfg *config.Config) *Handlers {
	return &Handlers{
		Bot:          NewBotHandler(services.BotState, cfg),
		Notification: NewNotificationHandler(services.Notification),
		Push:         NewPushHandler(repos.PushSubscription),
		Preference:   NewPreferenceHandler(repos.Preference),
	}
}
