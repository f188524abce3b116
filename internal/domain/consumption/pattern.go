// Package consumption contiene el modelo estadístico de consumo de materiales por tipo de trabajo.
// Es puro: no conoce repositorios ni transacciones.
package consumption

import (
	"math"
	"time"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/shopspring/decimal"
)

const (
	// LowConfidence debajo de este valor la sugerencia usa la cantidad máxima observada.
	LowConfidence = 0.5
	// AnomalyTolerance fracción del promedio tolerada antes de marcar un consumo anómalo.
	AnomalyTolerance = 0.5

	maxConfidence = 0.95
)

// Record incorpora una muestra de consumo al patrón y recalcula sus estadísticas.
func Record(p *entity.ConsumptionPattern, qty float64, now time.Time) {
	if p.TotalJobs == 0 {
		p.MinQty = qty
		p.MaxQty = qty
	} else {
		p.MinQty = math.Min(p.MinQty, qty)
		p.MaxQty = math.Max(p.MaxQty, qty)
	}
	p.TotalJobs++
	p.TotalConsumption += qty
	p.AverageQty = p.TotalConsumption / float64(p.TotalJobs)

	h := NewHistory(p.History)
	h.Push(qty)
	p.History = h.Values()
	p.Confidence = Confidence(p.TotalJobs, p.History)
	p.UpdatedAt = now
}

// Confidence calcula la confianza del patrón.
//
//	total < 3:  min(0.3, total*0.1)
//	total >= 3: min(0.95, 0.7*(1-cv) + 0.3*min(1, total/10))
//
// cv es el coeficiente de variación del historial (desviación poblacional / media).
func Confidence(totalJobs int, history []float64) float64 {
	if totalJobs < 3 {
		return math.Min(0.3, float64(totalJobs)*0.1)
	}
	cv := CoefficientOfVariation(history)
	c := 0.7*(1-cv) + 0.3*math.Min(1, float64(totalJobs)/10)
	return math.Max(0, math.Min(maxConfidence, c))
}

// CoefficientOfVariation devuelve stddev/mean, o 0 si la media es 0.
func CoefficientOfVariation(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s
	}
	mean := sum / float64(len(samples))
	if mean == 0 {
		return 0
	}
	var sq float64
	for _, s := range samples {
		d := s - mean
		sq += d * d
	}
	return math.Sqrt(sq/float64(len(samples))) / mean
}

// SuggestedQuantity cantidad sugerida con factor de seguridad.
// Con confianza baja se usa la máxima observada.
func SuggestedQuantity(p *entity.ConsumptionPattern, safetyFactor float64) decimal.Decimal {
	base := p.AverageQty
	if p.Confidence < LowConfidence {
		base = p.MaxQty
	}
	return decimal.NewFromFloat(base).Mul(decimal.NewFromFloat(safetyFactor)).Ceil()
}

// IsAnomaly marca un consumo real que se aleja más de la mitad del promedio.
func IsAnomaly(p *entity.ConsumptionPattern, actual float64) bool {
	return math.Abs(actual-p.AverageQty) > AnomalyTolerance*p.AverageQty
}
