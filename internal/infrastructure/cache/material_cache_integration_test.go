//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/infrastructure/cache"
)

func TestMaterialCache_LecturaEInvalidacion(t *testing.T) {
	ctx := context.Background()
	redisC, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisC.Terminate(context.Background()) })

	addr, err := redisC.PortEndpoint(ctx, "6379/tcp", "")
	require.NoError(t, err)
	rdb, err := cache.NewClient(ctx, addr, "", 0)
	require.NoError(t, err)
	defer rdb.Close()

	store := seed(t)
	repo := cache.NewMaterialRepo(store.Repos().Materials, rdb, time.Minute, zerolog.Nop())

	_, err = repo.GetByID(ctx, "mat-m")
	require.NoError(t, err)
	n, err := rdb.Exists(ctx, "material:mat-m").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "la primera lectura llena la caché")

	// Cambio por fuera del decorador: la caché sigue sirviendo la copia vieja hasta invalidar.
	m, err := store.Repos().Materials.GetByID(ctx, "mat-m")
	require.NoError(t, err)
	m.Name = "Cable UTP cat6"
	require.NoError(t, store.Repos().Materials.Update(ctx, m))

	cached, err := repo.GetByID(ctx, "mat-m")
	require.NoError(t, err)
	assert.Equal(t, "Cable UTP", cached.Name)

	repo.Invalidate(ctx, "mat-m")
	fresh, err := repo.GetByID(ctx, "mat-m")
	require.NoError(t, err)
	assert.Equal(t, "Cable UTP cat6", fresh.Name)
}
