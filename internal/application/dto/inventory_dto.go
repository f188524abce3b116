package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddStockRequest body para POST /api/inventory/stock (ingreso desde bodega).
type AddStockRequest struct {
	TechnicianID string          `json:"tecnico_id" validate:"required"`
	MaterialID   string          `json:"material_id" validate:"required"`
	Quantity     decimal.Decimal `json:"cantidad"`
	Reason       string          `json:"motivo"`
	Origin       string          `json:"origen" validate:"omitempty,oneof=OT poliza Excel AjusteAutomatico Manual"`
	OriginRefID  string          `json:"referencia_origen_id"`
}

// AdjustStockRequest body para POST /api/inventory/adjustments (conteo físico).
type AdjustStockRequest struct {
	TechnicianID string          `json:"tecnico_id" validate:"required"`
	MaterialID   string          `json:"material_id" validate:"required"`
	CountedQty   decimal.Decimal `json:"nueva_cantidad"`
	Reason       string          `json:"motivo" validate:"required"`
}

// ConsumptionRequest body para POST /api/inventory/consumptions (consumo por OT o póliza).
type ConsumptionRequest struct {
	TechnicianID string          `json:"tecnico_id" validate:"required"`
	MaterialID   string          `json:"material_id" validate:"required"`
	Quantity     decimal.Decimal `json:"cantidad"`
	WorkOrderID  string          `json:"orden_trabajo_id"`
	PolicyNumber string          `json:"numero_poliza"`
	Reason       string          `json:"motivo"`
}

// StockItemResponse fila de inventario de un técnico.
type StockItemResponse struct {
	TechnicianID string          `json:"tecnico_id"`
	MaterialID   string          `json:"material_id"`
	MaterialName string          `json:"material_nombre,omitempty"`
	OnHand       decimal.Decimal `json:"cantidad_actual"`
	Reserved     decimal.Decimal `json:"cantidad_apartada"`
	Available    decimal.Decimal `json:"cantidad_disponible"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TechnicianInventoryResponse inventario completo de un técnico.
type TechnicianInventoryResponse struct {
	TechnicianID string              `json:"tecnico_id"`
	Items        []StockItemResponse `json:"materiales"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// MovementQuery filtros de GET /api/inventory/movements.
type MovementQuery struct {
	TechnicianID string     `query:"tecnico_id"`
	MaterialID   string     `query:"material_id"`
	Type         string     `query:"tipo"`
	Origin       string     `query:"origen"`
	OriginRefID  string     `query:"referencia_origen_id"`
	From         *time.Time `query:"-"`
	To           *time.Time `query:"-"`
	PageRequest
}

// MovementResponse fila del kardex.
type MovementResponse struct {
	ID           string          `json:"id"`
	TechnicianID string          `json:"tecnico_id"`
	MaterialID   string          `json:"material_id"`
	Type         string          `json:"tipo"`
	Quantity     decimal.Decimal `json:"cantidad"`
	UnitCost     decimal.Decimal `json:"costo_unitario"`
	Reason       string          `json:"motivo"`
	UserID       string          `json:"usuario_responsable"`
	Origin       string          `json:"origen"`
	OriginRefID  string          `json:"referencia_origen_id,omitempty"`
	PolicyNumber string          `json:"numero_poliza,omitempty"`
	Date         time.Time       `json:"fecha"`
}

// LowStockDTO sugerencia de reposición para un material por debajo del mínimo.
type LowStockDTO struct {
	TechnicianID  string          `json:"tecnico_id"`
	MaterialID    string          `json:"material_id"`
	MaterialName  string          `json:"material_nombre"`
	UnitMeasure   string          `json:"unidad_medida"`
	Available     decimal.Decimal `json:"cantidad_disponible"`
	MinimumStock  decimal.Decimal `json:"stock_minimo"`
	Deficit       decimal.Decimal `json:"deficit"`           // stock_minimo - disponible
	SuggestedQty  decimal.Decimal `json:"cantidad_sugerida"` // ceil(stock_minimo*1.5 - disponible)
	EstimatedCost decimal.Decimal `json:"costo_estimado"`    // cantidad_sugerida * costo_unitario
	Critical      bool            `json:"critico"`           // disponible en cero
	Priority      int             `json:"prioridad"`         // 1 = más urgente
}
