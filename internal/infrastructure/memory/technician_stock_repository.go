package memory

import (
	"context"
	"sort"
	"time"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/inventory"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.TechnicianStockRepository = (*TechnicianStockRepo)(nil)

// TechnicianStockRepo ledger de inventario por técnico en memoria.
type TechnicianStockRepo struct {
	access accessor
	now    func() time.Time
}

// EnsureInventory crea el inventario vacío del técnico si no existe.
func (r *TechnicianStockRepo) EnsureInventory(_ context.Context, technicianID string) error {
	return r.access(func(st *state) error {
		if _, ok := st.inventories[technicianID]; !ok {
			now := r.now()
			st.inventories[technicianID] = inventoryHeader{createdAt: now, updatedAt: now}
		}
		return nil
	})
}

// GetInventory devuelve el inventario con sus filas ordenadas por material.
func (r *TechnicianStockRepo) GetInventory(_ context.Context, technicianID string) (*entity.TechnicianInventory, error) {
	var out *entity.TechnicianInventory
	err := r.access(func(st *state) error {
		h, ok := st.inventories[technicianID]
		if !ok {
			return nil
		}
		out = &entity.TechnicianInventory{
			TechnicianID: technicianID,
			CreatedAt:    h.createdAt,
			UpdatedAt:    h.updatedAt,
		}
		for k, s := range st.stock {
			if k.technicianID == technicianID {
				out.Items = append(out.Items, s)
			}
		}
		sort.Slice(out.Items, func(i, j int) bool { return out.Items[i].MaterialID < out.Items[j].MaterialID })
		return nil
	})
	return out, err
}

// LockInventory en memoria equivale a GetInventory: la transacción ya tiene el mutex.
func (r *TechnicianStockRepo) LockInventory(ctx context.Context, technicianID string) (*entity.TechnicianInventory, error) {
	return r.GetInventory(ctx, technicianID)
}

// GetForUpdate devuelve (nil, nil) si la fila no existe.
func (r *TechnicianStockRepo) GetForUpdate(_ context.Context, technicianID, materialID string) (*entity.TechnicianStock, error) {
	var out *entity.TechnicianStock
	err := r.access(func(st *state) error {
		if s, ok := st.stock[stockKey{technicianID, materialID}]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

// Reserve aparta qty del disponible.
func (r *TechnicianStockRepo) Reserve(_ context.Context, technicianID, materialID string, qty decimal.Decimal) (*entity.TechnicianStock, error) {
	return r.mutate(technicianID, materialID, false, func(s *entity.TechnicianStock) error {
		return inventory.ApplyReserve(s, qty)
	})
}

// CommitToUse pasa qty de apartado a consumido.
func (r *TechnicianStockRepo) CommitToUse(_ context.Context, technicianID, materialID string, qty decimal.Decimal) (*entity.TechnicianStock, error) {
	return r.mutate(technicianID, materialID, false, func(s *entity.TechnicianStock) error {
		return inventory.ApplyCommitToUse(s, qty)
	})
}

// Credit suma qty; crea la fila si no existe.
func (r *TechnicianStockRepo) Credit(_ context.Context, technicianID, materialID string, qty decimal.Decimal) (*entity.TechnicianStock, error) {
	return r.mutate(technicianID, materialID, true, func(s *entity.TechnicianStock) error {
		inventory.ApplyCredit(s, qty)
		return nil
	})
}

// Consume descuenta qty del stock libre.
func (r *TechnicianStockRepo) Consume(_ context.Context, technicianID, materialID string, qty decimal.Decimal) (*entity.TechnicianStock, error) {
	return r.mutate(technicianID, materialID, false, func(s *entity.TechnicianStock) error {
		return inventory.ApplyConsume(s, qty)
	})
}

// SetCounted fija la cantidad física contada.
func (r *TechnicianStockRepo) SetCounted(_ context.Context, technicianID, materialID string, counted decimal.Decimal) (*entity.TechnicianStock, error) {
	return r.mutate(technicianID, materialID, false, func(s *entity.TechnicianStock) error {
		_, err := inventory.ApplyAdjust(s, counted)
		return err
	})
}

// mutate aplica fn sobre una copia de la fila y solo la guarda si fn no falla.
func (r *TechnicianStockRepo) mutate(technicianID, materialID string, create bool, fn func(s *entity.TechnicianStock) error) (*entity.TechnicianStock, error) {
	var out *entity.TechnicianStock
	err := r.access(func(st *state) error {
		key := stockKey{technicianID, materialID}
		s, ok := st.stock[key]
		if !ok {
			if !create {
				return domain.NotFoundf("inventario del técnico %s sin material %s", technicianID, materialID)
			}
			s = entity.TechnicianStock{
				TechnicianID: technicianID,
				MaterialID:   materialID,
				OnHand:       decimal.Zero,
				Reserved:     decimal.Zero,
				Available:    decimal.Zero,
			}
		}
		if err := fn(&s); err != nil {
			return err
		}
		now := r.now()
		s.UpdatedAt = now
		st.stock[key] = s
		h := st.inventories[technicianID]
		if h.createdAt.IsZero() {
			h.createdAt = now
		}
		h.updatedAt = now
		st.inventories[technicianID] = h
		out = &s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListBelowMinimum filas de materiales activos con disponible menor que el mínimo.
func (r *TechnicianStockRepo) ListBelowMinimum(_ context.Context, technicianID string) ([]repository.LowStockItem, error) {
	var out []repository.LowStockItem
	err := r.access(func(st *state) error {
		for k, s := range st.stock {
			if technicianID != "" && k.technicianID != technicianID {
				continue
			}
			m, ok := st.materials[k.materialID]
			if !ok || !m.IsActive() || !m.MinimumStock.IsPositive() {
				continue
			}
			if !s.Available.LessThan(m.MinimumStock) {
				continue
			}
			out = append(out, repository.LowStockItem{
				TechnicianID: k.technicianID,
				MaterialID:   k.materialID,
				MaterialName: m.Name,
				UnitMeasure:  m.UnitMeasure,
				Available:    s.Available,
				MinimumStock: m.MinimumStock,
				UnitCost:     m.UnitCost,
			})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		di := out[i].MinimumStock.Sub(out[i].Available)
		dj := out[j].MinimumStock.Sub(out[j].Available)
		if !di.Equal(dj) {
			return di.GreaterThan(dj)
		}
		if out[i].TechnicianID != out[j].TechnicianID {
			return out[i].TechnicianID < out[j].TechnicianID
		}
		return out[i].MaterialID < out[j].MaterialID
	})
	return out, err
}
