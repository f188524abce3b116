package consumption_test

import (
	"testing"
	"time"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/consumption"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordAll(p *entity.ConsumptionPattern, samples ...float64) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for _, s := range samples {
		consumption.Record(p, s, now)
	}
}

// Patrón (instalacion, M) tras consumos [5,5,6,4,5].
func TestRecord_PatronInstalacion(t *testing.T) {
	p := &entity.ConsumptionPattern{JobType: "instalacion", MaterialID: "M"}
	recordAll(p, 5, 5, 6, 4, 5)

	assert.Equal(t, 5, p.TotalJobs)
	assert.InDelta(t, 25.0, p.TotalConsumption, 1e-9)
	assert.InDelta(t, 5.0, p.AverageQty, 1e-9)
	assert.InDelta(t, 4.0, p.MinQty, 1e-9)
	assert.InDelta(t, 6.0, p.MaxQty, 1e-9)
	assert.Equal(t, []float64{5, 5, 6, 4, 5}, p.History)

	// cv = sqrt(0.4)/5 ≈ 0.1265 → 0.7*(1-cv) + 0.3*0.5 ≈ 0.7615
	assert.InDelta(t, 0.7615, p.Confidence, 0.001)
	assert.Greater(t, p.Confidence, 0.6)
	assert.Less(t, p.Confidence, 0.8)
}

func TestConfidence_PocasMuestras(t *testing.T) {
	assert.InDelta(t, 0.0, consumption.Confidence(0, nil), 1e-9)
	assert.InDelta(t, 0.1, consumption.Confidence(1, []float64{3}), 1e-9)
	assert.InDelta(t, 0.2, consumption.Confidence(2, []float64{3, 30}), 1e-9,
		"con menos de 3 trabajos la varianza no influye")
}

func TestConfidence_TopeMaximo(t *testing.T) {
	samples := make([]float64, 15)
	for i := range samples {
		samples[i] = 2
	}
	assert.InDelta(t, 0.95, consumption.Confidence(15, samples), 1e-9)
}

func TestConfidence_NuncaNegativa(t *testing.T) {
	c := consumption.Confidence(4, []float64{0, 0, 0, 100})
	assert.GreaterOrEqual(t, c, 0.0)
}

// Agregar muestras consistentes nunca reduce la confianza.
func TestConfidence_MonotonaConMuestrasConsistentes(t *testing.T) {
	p := &entity.ConsumptionPattern{JobType: "mantenimiento", MaterialID: "cable"}
	prev := 0.0
	for i := 0; i < 30; i++ {
		consumption.Record(p, 8, time.Now())
		require.GreaterOrEqual(t, p.Confidence, prev, "muestra %d", i+1)
		prev = p.Confidence
	}

	q := &entity.ConsumptionPattern{JobType: "mantenimiento", MaterialID: "conector"}
	recordAll(q, 10, 10, 10)
	prev = q.Confidence
	recordAll(q, 10)
	assert.GreaterOrEqual(t, q.Confidence, prev)
}

func TestHistory_DescartaLaMasAntigua(t *testing.T) {
	h := consumption.NewHistory(nil)
	for i := 1; i <= 25; i++ {
		h.Push(float64(i))
	}
	require.Equal(t, consumption.HistorySize, h.Len())
	values := h.Values()
	assert.Equal(t, 6.0, values[0])
	assert.Equal(t, 25.0, values[len(values)-1])
}

func TestHistory_DesdeSliceLargo(t *testing.T) {
	samples := make([]float64, 30)
	for i := range samples {
		samples[i] = float64(i)
	}
	h := consumption.NewHistory(samples)
	assert.Equal(t, samples[10:], h.Values())
}

func TestRecord_HistorialAcotado(t *testing.T) {
	p := &entity.ConsumptionPattern{}
	for i := 0; i < 40; i++ {
		consumption.Record(p, float64(i), time.Now())
	}
	assert.Len(t, p.History, consumption.HistorySize)
	assert.Equal(t, 40, p.TotalJobs)
	assert.InDelta(t, 0.0, p.MinQty, 1e-9)
	assert.InDelta(t, 39.0, p.MaxQty, 1e-9)
}

func TestSuggestedQuantity(t *testing.T) {
	reliable := &entity.ConsumptionPattern{}
	recordAll(reliable, 5, 5, 6, 4, 5)
	assert.Equal(t, "6", consumption.SuggestedQuantity(reliable, 1.2).String(),
		"ceil(5 * 1.2) = 6")

	unreliable := &entity.ConsumptionPattern{}
	recordAll(unreliable, 4, 6)
	require.Less(t, unreliable.Confidence, consumption.LowConfidence)
	assert.Equal(t, "8", consumption.SuggestedQuantity(unreliable, 1.2).String(),
		"con confianza baja se usa la máxima: ceil(6 * 1.2) = 8")
}

func TestIsAnomaly(t *testing.T) {
	p := &entity.ConsumptionPattern{}
	recordAll(p, 5, 5, 6, 4, 5)

	assert.False(t, consumption.IsAnomaly(p, 5))
	assert.False(t, consumption.IsAnomaly(p, 7.5), "justo en el límite no es anómalo")
	assert.True(t, consumption.IsAnomaly(p, 8))
	assert.True(t, consumption.IsAnomaly(p, 2))
}
