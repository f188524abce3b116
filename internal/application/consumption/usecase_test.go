package consumption_test

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/consumption"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/infrastructure/memory"
)

func newLearning(t *testing.T) *consumption.LearningUseCase {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	for _, m := range []*entity.Material{
		{ID: "mat-m", Name: "Cable UTP", Status: entity.MaterialStatusActive},
		{ID: "mat-c", Name: "Conector", Status: entity.MaterialStatusActive},
		{ID: "mat-x", Name: "Medidor viejo", Status: entity.MaterialStatusInactive},
	} {
		require.NoError(t, repos.Materials.Create(context.Background(), m))
	}
	return consumption.NewLearningUseCase(store, repos.Patterns, repos.Materials, consumption.Config{}, zerolog.Nop())
}

func record(t *testing.T, uc *consumption.LearningUseCase, jobType, mat string, samples ...float64) {
	t.Helper()
	for _, q := range samples {
		_, err := uc.Record(context.Background(), jobType, mat, q)
		require.NoError(t, err)
	}
}

func TestRecord_EstadisticasYNormalizacion(t *testing.T) {
	uc := newLearning(t)
	record(t, uc, " Instalacion ", "mat-m", 5, 5, 6, 4, 5)

	list, err := uc.ListPatterns(context.Background(), "INSTALACION")
	require.NoError(t, err)
	require.Len(t, list, 1)
	p := list[0]
	assert.Equal(t, "instalacion", p.JobType)
	assert.Equal(t, 5, p.TotalJobs)
	assert.InDelta(t, 5.0, p.AverageQty, 1e-9)
	assert.InDelta(t, 4.0, p.MinQty, 1e-9)
	assert.InDelta(t, 6.0, p.MaxQty, 1e-9)
	assert.Greater(t, p.Confidence, 0.6)
	assert.Less(t, p.Confidence, 0.8)
}

func TestRecord_PrimerasMuestrasConcurrentesNoSePierden(t *testing.T) {
	uc := newLearning(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Record(context.Background(), "empalme", "mat-c", 2)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	list, err := uc.ListPatterns(context.Background(), "empalme")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 8, list[0].TotalJobs)
	assert.InDelta(t, 16.0, list[0].TotalConsumption, 1e-9)
}

func TestRecord_EntradaInvalida(t *testing.T) {
	uc := newLearning(t)
	_, err := uc.Record(context.Background(), "", "mat-m", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Record(context.Background(), "instalacion", "mat-m", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSuggest_FactorYOrden(t *testing.T) {
	uc := newLearning(t)
	record(t, uc, "instalacion", "mat-m", 5, 5, 6, 4, 5)
	record(t, uc, "instalacion", "mat-c", 2)

	list, err := uc.Suggest(context.Background(), "instalacion", nil)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "mat-m", list[0].MaterialID, "mayor confianza primero")
	assert.True(t, list[0].SuggestedQty.Equal(decimal.NewFromInt(6)), "ceil(5*1.2)")
	assert.True(t, list[1].SuggestedQty.Equal(decimal.NewFromInt(3)), "baja confianza usa la máxima: ceil(2*1.2)")

	f := 2.0
	list, err = uc.Suggest(context.Background(), "instalacion", &f)
	require.NoError(t, err)
	assert.True(t, list[0].SuggestedQty.Equal(decimal.NewFromInt(10)))

	bad := 0.0
	_, err = uc.Suggest(context.Background(), "instalacion", &bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQualified_FiltraDisponibleYConfianza(t *testing.T) {
	uc := newLearning(t)
	record(t, uc, "instalacion", "mat-m", 5, 5, 6, 4, 5)
	record(t, uc, "instalacion", "mat-c", 2)
	record(t, uc, "instalacion", "mat-x", 1, 1, 1, 1, 1)

	list, err := uc.Suggest(context.Background(), "instalacion", nil)
	require.NoError(t, err)
	picked := uc.Qualified(list)
	require.Len(t, picked, 1)
	assert.Equal(t, "mat-m", picked[0].MaterialID)
}

func TestCheckAnomaly(t *testing.T) {
	uc := newLearning(t)
	ctx := context.Background()

	out, err := uc.CheckAnomaly(ctx, "instalacion", "mat-m", 100)
	require.NoError(t, err)
	assert.False(t, out.Anomalous, "sin patrón no hay anomalía")

	record(t, uc, "instalacion", "mat-m", 5, 5, 6, 4, 5)
	out, err = uc.CheckAnomaly(ctx, "instalacion", "mat-m", 8)
	require.NoError(t, err)
	assert.True(t, out.Anomalous)
	out, err = uc.CheckAnomaly(ctx, "instalacion", "mat-m", 7)
	require.NoError(t, err)
	assert.False(t, out.Anomalous)
}
