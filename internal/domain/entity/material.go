package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del catálogo de materiales.
const (
	MaterialStatusActive   = "activo"
	MaterialStatusInactive = "inactivo"
)

// Material representa un ítem del catálogo (cable, medidor, conector...).
// El costo unitario se copia en cada movimiento como snapshot.
type Material struct {
	ID           string
	Name         string
	UnitMeasure  string
	UnitCost     decimal.Decimal
	Category     string
	MinimumStock decimal.Decimal // umbral para alertas de stock bajo
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si el material puede asignarse o solicitarse.
func (m *Material) IsActive() bool {
	return m != nil && m.Status == MaterialStatusActive
}
