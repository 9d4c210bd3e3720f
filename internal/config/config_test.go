package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/swapo?sslmode=disable")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, DeliverySync, cfg.NotificationDelivery)
	assert.Equal(t, StorageLocal, cfg.StorageDriver)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Len(t, cfg.AllowedOrigins, 2)
	assert.False(t, cfg.Google.Enabled())
}

func TestParse_OriginsAreTrimmed(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://swapo.app, https://admin.swapo.app")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://swapo.app", "https://admin.swapo.app"}, cfg.AllowedOrigins)
}

func TestParse_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "short")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://swapo.app")

	_, err := Parse()
	assert.Error(t, err)
}

func TestParse_QueueDeliveryRequiresRedis(t *testing.T) {
	t.Setenv("NOTIFICATION_DELIVERY", DeliveryQueue)
	t.Setenv("REDIS_URL", "")

	_, err := Parse()
	assert.Error(t, err)

	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, DeliveryQueue, cfg.NotificationDelivery)
}

func TestParse_DatabaseURLFromParts(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("POSTGRESQL_HOST", "pg")
	t.Setenv("POSTGRESQL_USER", "swapo")
	t.Setenv("POSTGRESQL_PASSWORD", "p@ss")
	t.Setenv("POSTGRESQL_DBNAME", "swapo")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "postgres://swapo:p%40ss@pg:5432/swapo?sslmode=disable", cfg.DatabaseURL)
}
