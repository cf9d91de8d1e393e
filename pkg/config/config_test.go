package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "backoffice-api", cfg.App.Name)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 3, cfg.Order.MaxAttempts)
	assert.Equal(t, 24*time.Hour, cfg.Redis.IdempotencyTTL)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())

	loc, err := cfg.Report.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoad_VariablesDeEntornoTienenPrioridad(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("ORDER_MAX_ATTEMPTS", "5")
	t.Setenv("IDEMPOTENCY_TTL", "90m")
	t.Setenv("REPORT_TIMEZONE", "America/Bogota")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 5, cfg.Order.MaxAttempts)
	assert.Equal(t, 90*time.Minute, cfg.Redis.IdempotencyTTL)
	assert.Equal(t, "America/Bogota", cfg.Report.Timezone)
}

func TestLoad_RechazaReintentosInvalidos(t *testing.T) {
	t.Setenv("ORDER_MAX_ATTEMPTS", "0")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_RechazaZonaHorariaDesconocida(t *testing.T) {
	t.Setenv("REPORT_TIMEZONE", "Marte/Olympus")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "shop", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/shop?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://other/db"
	assert.Equal(t, "postgres://other/db", c.ConnectionString())
}
