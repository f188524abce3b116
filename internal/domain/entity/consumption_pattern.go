package entity

import "time"

// ConsumptionPattern estadística de consumo por (tipo de trabajo, material).
// History guarda como máximo las últimas 20 muestras, de la más antigua a la más reciente.
type ConsumptionPattern struct {
	ID               string
	JobType          string
	MaterialID       string
	AverageQty       float64
	MinQty           float64
	MaxQty           float64
	TotalJobs        int
	TotalConsumption float64
	Confidence       float64
	History          []float64
	UpdatedAt        time.Time
}
