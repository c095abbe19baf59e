package notification_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"amersur-crm/internal/domain"
	"amersur-crm/internal/service/push"
)

type notificationRepoMock struct {
	mock.Mock
}

func (m *notificationRepoMock) Create(ctx context.Context, notif *domain.NotificacionRecord) error {
	args := m.Called(ctx, notif)
	return args.Error(0)
}

func (m *notificationRepoMock) ListByUser(ctx context.Context, userID uuid.UUID, params domain.NotificacionListParams) ([]domain.NotificacionRecord, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NotificacionRecord), args.Error(1)
}

func (m *notificationRepoMock) MarkAsRead(ctx context.Context, userID uuid.UUID, id string) (int64, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *notificationRepoMock) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *notificationRepoMock) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type preferenceRepoMock struct {
	mock.Mock
}

func (m *preferenceRepoMock) GetByUser(ctx context.Context, userID uuid.UUID) (domain.NotificationPreferences, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.NotificationPreferences), args.Error(1)
}

func (m *preferenceRepoMock) Upsert(ctx context.Context, prefs *domain.NotificationPreferences) error {
	args := m.Called(ctx, prefs)
	return args.Error(0)
}

type emailServiceMock struct {
	mock.Mock
}

func (m *emailServiceMock) SendNotificationEmail(ctx context.Context, toEmail, titulo, mensaje, tipo string) error {
	args := m.Called(ctx, toEmail, titulo, mensaje, tipo)
	return args.Error(0)
}

type pushServiceMock struct {
	mock.Mock
}

func (m *pushServiceMock) Send(ctx context.Context, userID uuid.UUID, payload push.Payload) error {
	args := m.Called(ctx, userID, payload)
	return args.Error(0)
}
