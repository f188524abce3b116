package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StoragePostgres, cfg.App.Storage)
	assert.Equal(t, 10, cfg.DB.MaxConns)
	assert.False(t, cfg.DB.Migrate)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.InDelta(t, 1.2, cfg.Consumption.SafetyFactor, 1e-9)
	assert.InDelta(t, 0.3, cfg.Consumption.MinConfidence, 1e-9)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("APP_STORAGE", "MEMORY")
	t.Setenv("DB_MIGRATE", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("CONSUMPTION_SAFETY_FACTOR", "1.5")
	t.Setenv("CACHE_TTL_SECONDS", "30")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StorageMemory, cfg.App.Storage)
	assert.True(t, cfg.DB.Migrate)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.InDelta(t, 1.5, cfg.Consumption.SafetyFactor, 1e-9)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
}

func TestLoad_ErroresDeConfiguracion(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := config.Load()
	assert.Error(t, err, "JWT_SECRET vacío")

	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("APP_STORAGE", "mongo")
	_, err = config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "acs", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/acs?sslmode=disable", c.ConnectionString())
}
