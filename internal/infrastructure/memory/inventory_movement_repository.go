package memory

import (
	"context"
	"sort"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo kardex append-only en memoria.
type InventoryMovementRepo struct {
	access accessor
}

// Create agrega el movimiento al final del kardex.
func (r *InventoryMovementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	return r.access(func(st *state) error {
		st.movements = append(st.movements, *m)
		return nil
	})
}

// List devuelve los movimientos más recientes primero.
func (r *InventoryMovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	err := r.access(func(st *state) error {
		for i := len(st.movements) - 1; i >= 0; i-- {
			m := st.movements[i]
			if !matchMovement(m, f) {
				continue
			}
			out = append(out, &m)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return page(out, f.Limit, f.Offset), err
}

func matchMovement(m entity.InventoryMovement, f repository.MovementFilter) bool {
	switch {
	case f.TechnicianID != "" && m.TechnicianID != f.TechnicianID:
		return false
	case f.MaterialID != "" && m.MaterialID != f.MaterialID:
		return false
	case f.Type != "" && m.Type != f.Type:
		return false
	case f.Origin != "" && m.Origin != f.Origin:
		return false
	case f.OriginRefID != "" && m.OriginRefID != f.OriginRefID:
		return false
	case f.From != nil && m.Date.Before(*f.From):
		return false
	case f.To != nil && m.Date.After(*f.To):
		return false
	}
	return true
}
