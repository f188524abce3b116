package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.MaterialControlRepository = (*MaterialControlRepo)(nil)

// MaterialControlRepo controles de material en memoria.
type MaterialControlRepo struct {
	access accessor
}

// Create guarda una copia del control.
func (r *MaterialControlRepo) Create(_ context.Context, c *entity.MaterialControl) error {
	return r.access(func(st *state) error {
		if _, ok := st.controls[c.ID]; ok {
			return domain.ErrDuplicate
		}
		st.controls[c.ID] = copyControl(*c)
		return nil
	})
}

// GetByID devuelve (nil, nil) si no existe.
func (r *MaterialControlRepo) GetByID(_ context.Context, id string) (*entity.MaterialControl, error) {
	var out *entity.MaterialControl
	err := r.access(func(st *state) error {
		if c, ok := st.controls[id]; ok {
			cp := copyControl(c)
			out = &cp
		}
		return nil
	})
	return out, err
}

// GetForUpdate igual que GetByID; el mutex de la transacción serializa las transiciones.
func (r *MaterialControlRepo) GetForUpdate(ctx context.Context, id string) (*entity.MaterialControl, error) {
	return r.GetByID(ctx, id)
}

// Update reemplaza el control.
func (r *MaterialControlRepo) Update(_ context.Context, c *entity.MaterialControl) error {
	return r.access(func(st *state) error {
		if _, ok := st.controls[c.ID]; !ok {
			return domain.NotFoundf("control %s", c.ID)
		}
		st.controls[c.ID] = copyControl(*c)
		return nil
	})
}

// List ordena por fecha de asignación, más reciente primero.
func (r *MaterialControlRepo) List(_ context.Context, f repository.ControlFilter) ([]*entity.MaterialControl, error) {
	var out []*entity.MaterialControl
	err := r.access(func(st *state) error {
		for _, c := range st.controls {
			if !matchControl(&c, f) {
				continue
			}
			cp := copyControl(c)
			out = append(out, &cp)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AssignedAt.Equal(out[j].AssignedAt) {
			return out[i].AssignedAt.After(out[j].AssignedAt)
		}
		return out[i].ID < out[j].ID
	})
	return page(out, f.Limit, f.Offset), err
}

// SumUnresolvedDiscrepancy suma valor_descuadre de los descuadres sin resolver.
func (r *MaterialControlRepo) SumUnresolvedDiscrepancy(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.access(func(st *state) error {
		for _, c := range st.controls {
			if c.HasDiscrepancy && !c.DiscrepancyResolved {
				total = total.Add(c.DiscrepancyValue)
			}
		}
		return nil
	})
	return total, err
}

// CountByStatus cantidad de controles por estado.
func (r *MaterialControlRepo) CountByStatus(_ context.Context) (map[string]int, error) {
	out := make(map[string]int)
	err := r.access(func(st *state) error {
		for _, c := range st.controls {
			out[c.Status]++
		}
		return nil
	})
	return out, err
}

func matchControl(c *entity.MaterialControl, f repository.ControlFilter) bool {
	if f.TechnicianID != "" && c.TechnicianID != f.TechnicianID {
		return false
	}
	if f.WorkOrderID != "" && (c.WorkOrderID == nil || *c.WorkOrderID != f.WorkOrderID) {
		return false
	}
	if f.MaterialID != "" && c.Line(f.MaterialID) == nil {
		return false
	}
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, c.Status) {
		return false
	}
	if f.HasDiscrepancy != nil && c.HasDiscrepancy != *f.HasDiscrepancy {
		return false
	}
	if f.Resolved != nil && c.DiscrepancyResolved != *f.Resolved {
		return false
	}
	return true
}
