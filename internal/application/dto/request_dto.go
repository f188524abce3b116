package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestLine material solicitado.
type RequestLine struct {
	MaterialID       string          `json:"material_id" validate:"required"`
	Quantity         decimal.Decimal `json:"cantidad_solicitada"`
	Reason           string          `json:"motivo"`
	EstimatedJobType string          `json:"tipo_trabajo_estimado"`
}

// CreateMaterialRequestRequest body para POST /api/requests.
// TechnicianID solo lo usa el personal de bodega; para un técnico se toma del token.
type CreateMaterialRequestRequest struct {
	TechnicianID string        `json:"tecnico_id"`
	Materials    []RequestLine `json:"materiales" validate:"required,min=1,dive"`
	Reason       string        `json:"motivo" validate:"required"`
}

// SuggestedRequestRequest body para POST /api/requests/suggested.
type SuggestedRequestRequest struct {
	TechnicianID string   `json:"tecnico_id"`
	JobType      string   `json:"tipo_trabajo" validate:"required"`
	Reason       string   `json:"motivo"`
	SafetyFactor *float64 `json:"factor_seguridad" validate:"omitempty,gt=0"`
}

// ApprovalLine cantidad aprobada para un material.
type ApprovalLine struct {
	MaterialID  string          `json:"material_id" validate:"required"`
	ApprovedQty decimal.Decimal `json:"cantidad_aprobada"`
}

// ApproveRequestRequest body para POST /api/requests/:id/approve. Materials es opcional.
type ApproveRequestRequest struct {
	Materials []ApprovalLine `json:"materiales" validate:"dive"`
}

// RejectRequestRequest body para POST /api/requests/:id/reject.
type RejectRequestRequest struct {
	Reason string `json:"motivo_rechazo" validate:"required"`
}

// RequestQuery filtros de GET /api/requests.
type RequestQuery struct {
	TechnicianID string `query:"tecnico_id"`
	Status       string `query:"estado"`
	PageRequest
}

// RequestedMaterialResponse línea de una solicitud.
type RequestedMaterialResponse struct {
	MaterialID       string          `json:"material_id"`
	RequestedQty     decimal.Decimal `json:"cantidad_solicitada"`
	ApprovedQty      decimal.Decimal `json:"cantidad_aprobada"`
	Reason           string          `json:"motivo,omitempty"`
	EstimatedJobType string          `json:"tipo_trabajo_estimado,omitempty"`
}

// MaterialRequestResponse salida de una solicitud.
type MaterialRequestResponse struct {
	ID              string                      `json:"id"`
	TechnicianID    string                      `json:"tecnico_id"`
	RequestedAt     time.Time                   `json:"fecha_solicitud"`
	Status          string                      `json:"estado"`
	Materials       []RequestedMaterialResponse `json:"materiales_solicitados"`
	Reason          string                      `json:"motivo"`
	AISuggested     bool                        `json:"es_sugerencia_ia"`
	ApprovedBy      string                      `json:"aprobado_por,omitempty"`
	ApprovedAt      *time.Time                  `json:"fecha_aprobacion,omitempty"`
	RejectedBy      string                      `json:"rechazado_por,omitempty"`
	RejectionReason string                      `json:"motivo_rechazo,omitempty"`
	DeliveredBy     string                      `json:"entregado_por,omitempty"`
	DeliveredAt     *time.Time                  `json:"fecha_entrega,omitempty"`
}

// MaterialRequestListResponse lista paginada de solicitudes.
type MaterialRequestListResponse struct {
	Items []MaterialRequestResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}
