package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una solicitud de materiales.
const (
	RequestStatusPending   = "pendiente"
	RequestStatusApproved  = "aprobada"
	RequestStatusDelivered = "entregada"
	RequestStatusRejected  = "rechazada"
)

// RequestedMaterial línea de una solicitud.
type RequestedMaterial struct {
	MaterialID       string          `json:"material_id"`
	RequestedQty     decimal.Decimal `json:"cantidad_solicitada"`
	ApprovedQty      decimal.Decimal `json:"cantidad_aprobada"`
	Reason           string          `json:"motivo,omitempty"`
	EstimatedJobType string          `json:"tipo_trabajo_estimado,omitempty"`
}

// MaterialRequest pedido de materiales de un técnico (manual o sugerido).
// Su ciclo de vida es independiente del MaterialControl.
type MaterialRequest struct {
	ID              string
	TechnicianID    string
	RequestedAt     time.Time
	Status          string
	Items           []RequestedMaterial
	Reason          string
	AISuggested     bool
	ApprovedBy      string
	ApprovedAt      *time.Time
	RejectedBy      string
	RejectionReason string
	DeliveredBy     string
	DeliveredAt     *time.Time
	UpdatedAt       time.Time
}
