package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscrepancyDTO control con descuadre pendiente de resolver.
type DiscrepancyDTO struct {
	ControlID       string          `json:"control_id"`
	TechnicianID    string          `json:"tecnico_id"`
	WorkOrderID     *string         `json:"orden_trabajo_id,omitempty"`
	Reason          string          `json:"motivo_descuadre"`
	Value           decimal.Decimal `json:"valor_descuadre"`
	ReturnedAt      *time.Time      `json:"fecha_devolucion,omitempty"`
	AssignedAt      time.Time       `json:"fecha_asignacion"`
	DiscrepantLines int             `json:"lineas_con_descuadre"`
}

// OutstandingDTO total pendiente de descuadres sin resolver.
type OutstandingDTO struct {
	Count int             `json:"cantidad"`
	Total decimal.Decimal `json:"valor_total"`
}

// MaterialLocationDTO ubicación de un material en un control (activo o histórico).
type MaterialLocationDTO struct {
	ControlID     string          `json:"control_id"`
	TechnicianID  string          `json:"tecnico_id"`
	WorkOrderID   *string         `json:"orden_trabajo_id,omitempty"`
	ControlStatus string          `json:"estado_general"`
	LineStatus    string          `json:"estado"`
	AssignedQty   decimal.Decimal `json:"cantidad_asignada"`
	UsedQty       decimal.Decimal `json:"cantidad_utilizada"`
	ReturnedQty   decimal.Decimal `json:"cantidad_devuelta"`
	LostQty       decimal.Decimal `json:"cantidad_perdida"`
	AssignedAt    time.Time       `json:"fecha_asignacion"`
	InField       bool            `json:"en_campo"`
}

// FieldMaterialDTO material actualmente en campo.
type FieldMaterialDTO struct {
	ControlID     string          `json:"control_id"`
	TechnicianID  string          `json:"tecnico_id"`
	WorkOrderID   *string         `json:"orden_trabajo_id,omitempty"`
	MaterialID    string          `json:"material_id"`
	MaterialName  string          `json:"material_nombre"`
	AssignedQty   decimal.Decimal `json:"cantidad_asignada"`
	UnitCost      decimal.Decimal `json:"costo_unitario"`
	ControlStatus string          `json:"estado_general"`
	AssignedAt    time.Time       `json:"fecha_asignacion"`
	DaysInField   int             `json:"dias_en_campo"`
}

// ReportSummaryDTO resumen de distribución y descuadres.
type ReportSummaryDTO struct {
	UnresolvedCount  int             `json:"descuadres_pendientes"`
	OutstandingValue decimal.Decimal `json:"valor_pendiente"`
	ControlsByStatus map[string]int  `json:"controles_por_estado"`
	FieldLines       int             `json:"lineas_en_campo"`
	FieldValue       decimal.Decimal `json:"valor_en_campo"`
	LowStockItems    int             `json:"materiales_stock_bajo"`
	GeneratedAt      time.Time       `json:"generado"`
}
