package memory

import (
	"context"
	"sort"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo catálogo de materiales en memoria.
type MaterialRepo struct {
	access accessor
}

// Create agrega un material; ErrDuplicate si el ID ya existe.
func (r *MaterialRepo) Create(_ context.Context, m *entity.Material) error {
	return r.access(func(st *state) error {
		if _, ok := st.materials[m.ID]; ok {
			return domain.ErrDuplicate
		}
		st.materials[m.ID] = *m
		return nil
	})
}

// GetByID devuelve (nil, nil) si no existe.
func (r *MaterialRepo) GetByID(_ context.Context, id string) (*entity.Material, error) {
	var out *entity.Material
	err := r.access(func(st *state) error {
		if m, ok := st.materials[id]; ok {
			out = &m
		}
		return nil
	})
	return out, err
}

// Update reemplaza el material.
func (r *MaterialRepo) Update(_ context.Context, m *entity.Material) error {
	return r.access(func(st *state) error {
		if _, ok := st.materials[m.ID]; !ok {
			return domain.NotFoundf("material %s", m.ID)
		}
		st.materials[m.ID] = *m
		return nil
	})
}

// List ordena por nombre.
func (r *MaterialRepo) List(_ context.Context, f repository.MaterialFilter) ([]*entity.Material, error) {
	var out []*entity.Material
	err := r.access(func(st *state) error {
		for _, m := range st.materials {
			if f.Category != "" && m.Category != f.Category {
				continue
			}
			if f.Status != "" && m.Status != f.Status {
				continue
			}
			out = append(out, &m)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, f.Limit, f.Offset), err
}
