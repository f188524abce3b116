package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados generales de un control de materiales.
const (
	ControlStatusAssigned       = "asignado"
	ControlStatusInProgress     = "en_trabajo"
	ControlStatusWorkCompleted  = "trabajo_completado"
	ControlStatusReturnComplete = "devolucion_completada"
	ControlStatusClosed         = "cerrado"
)

// Estados de cada línea asignada.
const (
	LineStatusPending       = "pendiente"
	LineStatusInUse         = "en_uso"
	LineStatusPartialReturn = "devuelto_parcial"
	LineStatusFullReturn    = "devuelto_total"
	LineStatusCompleted     = "completado"
)

// AssignedMaterial línea de un control; pertenece exclusivamente a su control.
type AssignedMaterial struct {
	MaterialID  string          `json:"material_id"`
	AssignedQty decimal.Decimal `json:"cantidad_asignada"`
	UsedQty     decimal.Decimal `json:"cantidad_utilizada"`
	ReturnedQty decimal.Decimal `json:"cantidad_devuelta"`
	LostQty     decimal.Decimal `json:"cantidad_perdida"`
	LossReason  string          `json:"motivo_perdida,omitempty"`
	Status      string          `json:"estado"`
}

// Accounted devuelve utilizada + devuelta + perdida.
func (l AssignedMaterial) Accounted() decimal.Decimal {
	return l.UsedQty.Add(l.ReturnedQty).Add(l.LostQty)
}

// MaterialControl es un lote de materiales entregado a un técnico, opcionalmente ligado a una OT.
type MaterialControl struct {
	ID                  string
	TechnicianID        string
	WorkOrderID         *string
	JobType             string
	Items               []AssignedMaterial
	AssignedAt          time.Time
	WorkStartedAt       *time.Time
	WorkFinishedAt      *time.Time
	ReturnedAt          *time.Time
	Status              string
	AssignedBy          string // bodeguero_asigno
	SupervisorID        string // analista_supervisa
	Notes               string
	HasDiscrepancy      bool
	DiscrepancyReason   string
	DiscrepancyValue    decimal.Decimal
	DiscrepancyResolved bool
	ResolvedAt          *time.Time
	ResolvedBy          string
	ResolutionNotes     string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Line devuelve la línea del material o nil.
func (c *MaterialControl) Line(materialID string) *AssignedMaterial {
	for i := range c.Items {
		if c.Items[i].MaterialID == materialID {
			return &c.Items[i]
		}
	}
	return nil
}

// InField indica si el control aún tiene material en campo (estado no terminal).
func (c *MaterialControl) InField() bool {
	switch c.Status {
	case ControlStatusAssigned, ControlStatusInProgress, ControlStatusWorkCompleted:
		return true
	}
	return false
}
