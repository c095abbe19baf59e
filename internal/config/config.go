package config

import (
	"os"
	"time"
)

type Config struct {
	Port        string
	Environment string

	DatabaseURL string

	RedisURL string

	JWTSecret string

	CORSOrigins string

	// Pre-shared credential the WhatsApp bot presents on state reports.
	WhatsAppBotAPIKey string

	VAPIDPublicKey  string
	VAPIDPrivateKey string
	PushSubject     string

	ResendAPIKey string
	FromEmail    string
	AppBaseURL   string

	StreamHeartbeat time.Duration
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),

		WhatsAppBotAPIKey: getEnv("WHATSAPP_BOT_API_KEY", ""),

		VAPIDPublicKey:  getEnv("VAPID_PUBLIC_KEY", ""),
		VAPIDPrivateKey: getEnv("VAPID_PRIVATE_KEY", ""),
		PushSubject:     getEnv("PUSH_SUBJECT", "mailto:notificaciones@amersurcrm.com"),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@amersurcrm.com"),
		AppBaseURL:   getEnv("APP_BASE_URL", "http://localhost:3000"),

		StreamHeartbeat: getDurationEnv("STREAM_HEARTBEAT", 30*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
