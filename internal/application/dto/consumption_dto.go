package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordConsumptionRequest body para POST /api/consumption/samples.
type RecordConsumptionRequest struct {
	JobType    string  `json:"tipo_trabajo" validate:"required"`
	MaterialID string  `json:"material_id" validate:"required"`
	Quantity   float64 `json:"cantidad" validate:"gte=0"`
}

// ConsumptionPatternResponse estadística de consumo por (tipo_trabajo, material).
type ConsumptionPatternResponse struct {
	JobType          string    `json:"tipo_trabajo"`
	MaterialID       string    `json:"material_id"`
	AverageQty       float64   `json:"cantidad_promedio"`
	MinQty           float64   `json:"cantidad_minima"`
	MaxQty           float64   `json:"cantidad_maxima"`
	TotalJobs        int       `json:"total_trabajos"`
	TotalConsumption float64   `json:"total_consumo"`
	Confidence       float64   `json:"confianza"`
	History          []float64 `json:"historial_consumos"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// MaterialSuggestionDTO cantidad sugerida de un material para un tipo de trabajo.
type MaterialSuggestionDTO struct {
	MaterialID   string          `json:"material_id"`
	MaterialName string          `json:"material_nombre"`
	SuggestedQty decimal.Decimal `json:"cantidad_sugerida"`
	AverageQty   float64         `json:"cantidad_promedio"`
	MaxQty       float64         `json:"cantidad_maxima"`
	Confidence   float64         `json:"confianza"`
	TotalJobs    int             `json:"total_trabajos"`
	Available    bool            `json:"disponible"`
}

// AnomalyResponse resultado de evaluar un consumo real contra el patrón.
type AnomalyResponse struct {
	JobType    string  `json:"tipo_trabajo"`
	MaterialID string  `json:"material_id"`
	Actual     float64 `json:"cantidad_real"`
	AverageQty float64 `json:"cantidad_promedio"`
	Anomalous  bool    `json:"anomalo"`
}
