package inventory

import (
	"fmt"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Reglas puras del ledger. Las usan el almacén en memoria y las pruebas; el adaptador
// PostgreSQL expresa las mismas guardas en sentencias UPDATE condicionales.
// Ninguna regla modifica el stock si retorna error.

// QuantityScale decimales que admiten las cantidades de material (NUMERIC(14,3) en PostgreSQL).
const QuantityScale = 3

// CheckQuantityScale rechaza cantidades con más de QuantityScale decimales; el almacén
// no debe redondearlas en silencio.
func CheckQuantityScale(field string, q decimal.Decimal) error {
	if !q.Equal(q.Truncate(QuantityScale)) {
		return domain.NewValidationError(field, fmt.Sprintf("admite máximo %d decimales: %s", QuantityScale, q.String()))
	}
	return nil
}

// ApplyReserve aparta q unidades: Reserved += q, Available -= q.
func ApplyReserve(s *entity.TechnicianStock, q decimal.Decimal) error {
	if s.Available.LessThan(q) {
		return &domain.InsufficientStockError{MaterialID: s.MaterialID, Requested: q, Available: s.Available}
	}
	s.Reserved = s.Reserved.Add(q)
	s.Available = s.Available.Sub(q)
	return nil
}

// ApplyCommitToUse convierte lo apartado en consumo pendiente: Reserved -= q, OnHand -= q.
func ApplyCommitToUse(s *entity.TechnicianStock, q decimal.Decimal) error {
	if s.Reserved.LessThan(q) || s.OnHand.LessThan(q) {
		return &domain.InsufficientStockError{MaterialID: s.MaterialID, Requested: q, Available: s.Reserved}
	}
	s.Reserved = s.Reserved.Sub(q)
	s.OnHand = s.OnHand.Sub(q)
	return nil
}

// ApplyCredit acredita stock devuelto o ingresado: OnHand += q, Available += q.
func ApplyCredit(s *entity.TechnicianStock, q decimal.Decimal) {
	s.OnHand = s.OnHand.Add(q)
	s.Available = s.Available.Add(q)
}

// ApplyConsume descuenta consumo directo desde stock libre: OnHand -= q, Available -= q.
func ApplyConsume(s *entity.TechnicianStock, q decimal.Decimal) error {
	if s.Available.LessThan(q) {
		return &domain.InsufficientStockError{MaterialID: s.MaterialID, Requested: q, Available: s.Available}
	}
	s.OnHand = s.OnHand.Sub(q)
	s.Available = s.Available.Sub(q)
	return nil
}

// ApplyAdjust fija la cantidad física contada y devuelve el delta con signo.
// No se permite contar menos de lo apartado.
func ApplyAdjust(s *entity.TechnicianStock, counted decimal.Decimal) (decimal.Decimal, error) {
	if counted.IsNegative() {
		return decimal.Zero, domain.NewValidationError("cantidad", "la cantidad contada no puede ser negativa")
	}
	if counted.LessThan(s.Reserved) {
		return decimal.Zero, domain.NewValidationError("cantidad",
			"la cantidad contada ("+counted.String()+") es menor que lo apartado ("+s.Reserved.String()+")")
	}
	delta := counted.Sub(s.OnHand)
	s.OnHand = counted
	s.Available = counted.Sub(s.Reserved)
	return delta, nil
}

// CrossedMinimum informa si un descuento llevó el disponible por debajo del mínimo.
// critical es true cuando el disponible quedó en cero.
func CrossedMinimum(before, after, minimum decimal.Decimal) (crossed, critical bool) {
	if after.IsZero() && before.GreaterThan(decimal.Zero) {
		return true, true
	}
	if minimum.GreaterThan(decimal.Zero) && before.GreaterThanOrEqual(minimum) && after.LessThan(minimum) {
		return true, false
	}
	return false, false
}
