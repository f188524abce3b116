package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssignLine material y cantidad a asignar.
type AssignLine struct {
	MaterialID string          `json:"material_id" validate:"required"`
	Quantity   decimal.Decimal `json:"cantidad"`
}

// AssignMaterialsRequest body para POST /api/controls.
type AssignMaterialsRequest struct {
	TechnicianID string       `json:"tecnico_id" validate:"required"`
	WorkOrderID  *string      `json:"orden_trabajo_id"`
	JobType      string       `json:"tipo_trabajo" validate:"max=100"`
	Materials    []AssignLine `json:"materiales" validate:"required,min=1,dive"`
	Notes        string       `json:"observaciones"`
}

// ReturnLine reporte de uso de una línea.
type ReturnLine struct {
	MaterialID  string          `json:"material_id" validate:"required"`
	UsedQty     decimal.Decimal `json:"cantidad_utilizada"`
	ReturnedQty decimal.Decimal `json:"cantidad_devuelta"`
	LostQty     decimal.Decimal `json:"cantidad_perdida"`
	LossReason  string          `json:"motivo_perdida"`
}

// ReturnMaterialsRequest body para POST /api/controls/:id/return.
type ReturnMaterialsRequest struct {
	Materials []ReturnLine `json:"materiales" validate:"required,min=1,dive"`
	Notes     string       `json:"observaciones"`
}

// ResolveDiscrepancyRequest body para POST /api/controls/:id/resolve.
type ResolveDiscrepancyRequest struct {
	Notes string `json:"observaciones_resolucion"`
}

// CloseControlRequest body para POST /api/controls/:id/close.
type CloseControlRequest struct {
	Notes string `json:"observaciones"`
}

// ControlQuery filtros de GET /api/controls.
type ControlQuery struct {
	TechnicianID   string `query:"tecnico_id"`
	Status         string `query:"estado"`
	WorkOrderID    string `query:"orden_trabajo_id"`
	MaterialID     string `query:"material_id"`
	HasDiscrepancy *bool  `query:"tiene_descuadre"`
	Resolved       *bool  `query:"descuadre_resuelto"`
	PageRequest
}

// AssignedMaterialResponse línea de un control.
type AssignedMaterialResponse struct {
	MaterialID   string          `json:"material_id"`
	MaterialName string          `json:"material_nombre,omitempty"`
	AssignedQty  decimal.Decimal `json:"cantidad_asignada"`
	UsedQty      decimal.Decimal `json:"cantidad_utilizada"`
	ReturnedQty  decimal.Decimal `json:"cantidad_devuelta"`
	LostQty      decimal.Decimal `json:"cantidad_perdida"`
	LossReason   string          `json:"motivo_perdida,omitempty"`
	Status       string          `json:"estado"`
}

// MaterialControlResponse salida de un control de materiales.
type MaterialControlResponse struct {
	ID                  string                     `json:"id"`
	TechnicianID        string                     `json:"tecnico_id"`
	WorkOrderID         *string                    `json:"orden_trabajo_id,omitempty"`
	JobType             string                     `json:"tipo_trabajo,omitempty"`
	Materials           []AssignedMaterialResponse `json:"materiales_asignados"`
	AssignedAt          time.Time                  `json:"fecha_asignacion"`
	WorkStartedAt       *time.Time                 `json:"fecha_inicio_trabajo,omitempty"`
	WorkFinishedAt      *time.Time                 `json:"fecha_fin_trabajo,omitempty"`
	ReturnedAt          *time.Time                 `json:"fecha_devolucion,omitempty"`
	Status              string                     `json:"estado_general"`
	AssignedBy          string                     `json:"bodeguero_asigno"`
	SupervisorID        string                     `json:"analista_supervisa,omitempty"`
	Notes               string                     `json:"observaciones,omitempty"`
	HasDiscrepancy      bool                       `json:"tiene_descuadre"`
	DiscrepancyReason   string                     `json:"motivo_descuadre,omitempty"`
	DiscrepancyValue    decimal.Decimal            `json:"valor_descuadre"`
	DiscrepancyResolved bool                       `json:"descuadre_resuelto"`
	ResolvedAt          *time.Time                 `json:"fecha_resolucion,omitempty"`
	ResolvedBy          string                     `json:"resuelto_por,omitempty"`
	ResolutionNotes     string                     `json:"observaciones_resolucion,omitempty"`
	CreatedAt           time.Time                  `json:"created_at"`
	UpdatedAt           time.Time                  `json:"updated_at"`
}

// MaterialControlListResponse lista paginada de controles.
type MaterialControlListResponse struct {
	Items []MaterialControlResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}
