package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/infrastructure/cache"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/infrastructure/memory"
)

func seed(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Repos().Materials.Create(context.Background(), &entity.Material{
		ID:          "mat-m",
		Name:        "Cable UTP",
		UnitMeasure: "m",
		UnitCost:    decimal.NewFromInt(1000),
		Status:      entity.MaterialStatusActive,
	}))
	return store
}

// Redis caído: las lecturas siguen funcionando contra el repositorio de fondo.
func TestMaterialCache_SinRedisLeeDelRepositorio(t *testing.T) {
	store := seed(t)
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	repo := cache.NewMaterialRepo(store.Repos().Materials, rdb, time.Minute, zerolog.Nop())
	m, err := repo.GetByID(context.Background(), "mat-m")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "Cable UTP", m.Name)

	missing, err := repo.GetByID(context.Background(), "no-existe")
	require.NoError(t, err)
	assert.Nil(t, missing)

	m.Name = "Cable UTP cat6"
	require.NoError(t, repo.Update(context.Background(), m))
}
