package entity

import (
	"encoding/json"
	"time"
)

// Acciones registradas en auditoría.
const (
	AuditMaterialAssigned    = "material_asignado"
	AuditWorkStarted         = "trabajo_iniciado"
	AuditWorkCompleted       = "trabajo_completado"
	AuditMaterialReturned    = "material_devuelto"
	AuditDiscrepancyResolved = "descuadre_resuelto"
	AuditControlClosed       = "control_cerrado"
	AuditStockAdded          = "stock_ingresado"
	AuditStockAdjusted       = "stock_ajustado"
	AuditConsumption         = "consumo_registrado"
	AuditRequestCreated      = "solicitud_creada"
	AuditRequestApproved     = "solicitud_aprobada"
	AuditRequestRejected     = "solicitud_rechazada"
	AuditRequestDelivered    = "solicitud_entregada"
	AuditMaterialCreated     = "material_creado"
	AuditMaterialUpdated     = "material_actualizado"
)

// AuditLog entrada de auditoría (solo se escribe).
type AuditLog struct {
	ID        string
	ActorID   string
	Action    string
	Detail    string
	Meta      json.RawMessage
	CreatedAt time.Time
}
