package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del inventario de técnicos.
const (
	MovementTypeIn         = "entrada"
	MovementTypeOut        = "salida"
	MovementTypeReserve    = "apartado"
	MovementTypeAdjustment = "ajuste"
	MovementTypeReturn     = "devolucion"
)

// Orígenes de un movimiento.
const (
	OriginWorkOrder  = "OT"
	OriginPolicy     = "poliza"
	OriginExcel      = "Excel"
	OriginAutoAdjust = "AjusteAutomatico"
	OriginManual     = "Manual"
)

// InventoryMovement es una fila inmutable del kardex de un técnico.
// Se escribe en la misma transacción que el cambio de stock que registra.
type InventoryMovement struct {
	ID           string
	TechnicianID string
	MaterialID   string
	Type         string
	Quantity     decimal.Decimal // en ajustes lleva signo
	UnitCost     decimal.Decimal
	Reason       string
	UserID       string // usuario_responsable
	Origin       string
	OriginRefID  string
	PolicyNumber string
	Date         time.Time
}

// ValidOrigin informa si el origen pertenece al catálogo.
func ValidOrigin(origin string) bool {
	switch origin {
	case OriginWorkOrder, OriginPolicy, OriginExcel, OriginAutoAdjust, OriginManual:
		return true
	}
	return false
}
