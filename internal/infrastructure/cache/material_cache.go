// Package cache decora el catálogo de materiales con una caché read-through en Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const keyPrefix = "material:"

// MaterialRepo lee de Redis y, si falla o no está, del repositorio de fondo.
// Un Redis caído degrada a lecturas directas; nunca rompe la operación.
type MaterialRepo struct {
	next repository.MaterialRepository
	rdb  redis.Cmdable
	ttl  time.Duration
	log  zerolog.Logger
}

// NewMaterialRepo construye el decorador.
func NewMaterialRepo(next repository.MaterialRepository, rdb redis.Cmdable, ttl time.Duration, log zerolog.Logger) *MaterialRepo {
	return &MaterialRepo{
		next: next,
		rdb:  rdb,
		ttl:  ttl,
		log:  log.With().Str("component", "material_cache").Logger(),
	}
}

// NewClient abre el cliente de Redis y verifica la conexión.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	raw, err := r.rdb.Get(ctx, keyPrefix+id).Bytes()
	switch {
	case err == nil:
		var m entity.Material
		if jerr := json.Unmarshal(raw, &m); jerr == nil {
			return &m, nil
		}
		r.log.Warn().Str("material_id", id).Msg("entrada de caché corrupta")
	case !errors.Is(err, redis.Nil):
		r.log.Warn().Err(err).Str("material_id", id).Msg("redis no disponible, lectura directa")
	}

	m, err := r.next.GetByID(ctx, id)
	if err != nil || m == nil {
		return m, err
	}
	if raw, err := json.Marshal(m); err == nil {
		if err := r.rdb.Set(ctx, keyPrefix+id, raw, r.ttl).Err(); err != nil {
			r.log.Debug().Err(err).Str("material_id", id).Msg("no se pudo guardar en caché")
		}
	}
	return m, nil
}

func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	if err := r.next.Create(ctx, m); err != nil {
		return err
	}
	r.Invalidate(ctx, m.ID)
	return nil
}

func (r *MaterialRepo) Update(ctx context.Context, m *entity.Material) error {
	if err := r.next.Update(ctx, m); err != nil {
		return err
	}
	r.Invalidate(ctx, m.ID)
	return nil
}

// List no se cachea: los filtros y la paginación varían demasiado.
func (r *MaterialRepo) List(ctx context.Context, f repository.MaterialFilter) ([]*entity.Material, error) {
	return r.next.List(ctx, f)
}

// Invalidate descarta la copia en caché del material.
func (r *MaterialRepo) Invalidate(ctx context.Context, id string) {
	if err := r.rdb.Del(ctx, keyPrefix+id).Err(); err != nil {
		r.log.Warn().Err(err).Str("material_id", id).Msg("no se pudo invalidar la caché")
	}
}
