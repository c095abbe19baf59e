package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Notification     NotificationRepository
	PushSubscription PushSubscriptionRepository
	Event            EventRepository
	Preference       PreferenceRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Notification:     NewNotificationRepository(db),
		PushSubscription: NewPushSubscriptionRepository(db),
		Event:            NewEventRepository(db),
		Preference:       NewPreferenceRepository(db),
	}
}
