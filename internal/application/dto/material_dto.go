package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest entrada para crear un material del catálogo.
type CreateMaterialRequest struct {
	Name         string          `json:"nombre" validate:"required,min=1,max=200"`
	UnitMeasure  string          `json:"unidad_medida" validate:"required,max=20"`
	UnitCost     decimal.Decimal `json:"costo_unitario"`
	Category     string          `json:"categoria" validate:"max=100"`
	MinimumStock decimal.Decimal `json:"stock_minimo"`
}

// UpdateMaterialRequest entrada para actualizar un material. La identidad no se modifica.
type UpdateMaterialRequest struct {
	Name         *string          `json:"nombre" validate:"omitempty,min=1,max=200"`
	UnitMeasure  *string          `json:"unidad_medida" validate:"omitempty,max=20"`
	UnitCost     *decimal.Decimal `json:"costo_unitario"`
	Category     *string          `json:"categoria"`
	MinimumStock *decimal.Decimal `json:"stock_minimo"`
	Status       *string          `json:"estado" validate:"omitempty,oneof=activo inactivo"`
}

// MaterialResponse salida de un material.
type MaterialResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"nombre"`
	UnitMeasure  string          `json:"unidad_medida"`
	UnitCost     decimal.Decimal `json:"costo_unitario"`
	Category     string          `json:"categoria"`
	MinimumStock decimal.Decimal `json:"stock_minimo"`
	Status       string          `json:"estado"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// MaterialListResponse lista paginada de materiales.
type MaterialListResponse struct {
	Items []MaterialResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// MaterialQuery filtros de GET /api/materials.
type MaterialQuery struct {
	Category string `query:"categoria"`
	Status   string `query:"estado"`
	PageRequest
}
