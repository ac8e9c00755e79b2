package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_STORAGE", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.App.Storage)
	assert.Equal(t, 3*time.Second, cfg.DB.LockTimeout)
	assert.Equal(t, 1, cfg.Numbering.OrderStart)
	assert.Equal(t, 3400, cfg.Numbering.RequestStart)
	assert.Equal(t, 30*time.Minute, cfg.Idempotency.TTL)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("APP_STORAGE", "memory")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_LOCK_TIMEOUT_MS", "500")
	t.Setenv("ORDER_NUMBER_START", "1200")
	t.Setenv("ALERTS_HIGH_VALUE_EXIT", "250000.50")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 500*time.Millisecond, cfg.DB.LockTimeout)
	assert.Equal(t, 1200, cfg.Numbering.OrderStart)
	assert.Equal(t, "250000.50", cfg.Alerts.HighValueExit)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestValidate(t *testing.T) {
	t.Setenv("APP_STORAGE", "mongo")
	t.Setenv("APP_ENV", "production")
	t.Setenv("ALERTS_HIGH_VALUE_EXIT", "mucho")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_STORAGE")
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "ALERTS_HIGH_VALUE_EXIT")
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "bodega", Password: "p@ss:w/rd", DBName: "bodega", SSLMode: "disable"}
	assert.Equal(t, "postgres://bodega:p%40ss%3Aw%2Frd@db:5432/bodega?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
