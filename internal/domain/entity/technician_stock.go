package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TechnicianStock es la fila de inventario de un material en poder de un técnico.
// Invariante: Available = OnHand - Reserved, y las tres cantidades >= 0.
type TechnicianStock struct {
	TechnicianID string
	MaterialID   string
	OnHand       decimal.Decimal // cantidad_actual
	Reserved     decimal.Decimal // cantidad_apartada
	Available    decimal.Decimal // cantidad_disponible
	UpdatedAt    time.Time
}

// Consistent verifica el invariante del ledger.
func (s *TechnicianStock) Consistent() bool {
	if s.OnHand.IsNegative() || s.Reserved.IsNegative() || s.Available.IsNegative() {
		return false
	}
	return s.Available.Equal(s.OnHand.Sub(s.Reserved))
}

// TechnicianInventory agrupa el inventario de un técnico (una por técnico).
// Se crea en forma perezosa y nunca se elimina.
type TechnicianInventory struct {
	TechnicianID string
	Items        []TechnicianStock
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Find devuelve la fila del material o nil.
func (inv *TechnicianInventory) Find(materialID string) *TechnicianStock {
	if inv == nil {
		return nil
	}
	for i := range inv.Items {
		if inv.Items[i].MaterialID == materialID {
			return &inv.Items[i]
		}
	}
	return nil
}
