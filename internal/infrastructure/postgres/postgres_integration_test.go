//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/consumption"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/distribution"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/dto"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/ledger"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/repository"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/infrastructure/postgres"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/pkg/config"
)

const pgImage = "postgres:17.0-alpine3.20"

var (
	bodeguero = entity.Actor{ID: "bod-1", Role: entity.RoleBodeguero}
	tecnico   = entity.Actor{ID: "tec-1", Role: entity.RoleTechnician}
)

func startPostgres(t *testing.T) (repository.TxRepos, *postgres.TxRunner) {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcpostgres.Run(ctx,
		pgImage,
		tcpostgres.WithDatabase("materiales"),
		tcpostgres.WithUsername("materiales"),
		tcpostgres.WithPassword("materiales"),
		tc.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(context.Background()) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 10})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))

	repos := postgres.NewRepos(pool)
	now := time.Now().UTC()
	require.NoError(t, repos.Materials.Create(ctx, &entity.Material{
		ID:           "mat-m",
		Name:         "Cable UTP",
		UnitMeasure:  "m",
		UnitCost:     decimal.NewFromInt(1000),
		MinimumStock: decimal.NewFromInt(2),
		Status:       entity.MaterialStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}))
	return repos, postgres.NewTxRunner(pool)
}

func TestPostgres_ReservasConcurrentesNoSobrevenden(t *testing.T) {
	ctx := context.Background()
	repos, runner := startPostgres(t)
	uc := ledger.NewLedgerUseCase(runner, repos.Materials, repos.Stock, repos.Movements, nil, zerolog.Nop())

	_, err := uc.AddStock(ctx, bodeguero, dto.AddStockRequest{
		TechnicianID: "tec-1",
		MaterialID:   "mat-m",
		Quantity:     decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, fail int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Reserve(ctx, ledger.MovementInput{
				TechnicianID: "tec-1",
				MaterialID:   "mat-m",
				Quantity:     decimal.NewFromInt(3),
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
				return
			}
			if errors.Is(err, domain.ErrInsufficientStock) {
				fail++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, ok)
	assert.Equal(t, 7, fail)

	s, err := repos.Stock.GetForUpdate(ctx, "tec-1", "mat-m")
	require.NoError(t, err)
	assert.True(t, s.Consistent())
	assert.True(t, s.Available.Equal(decimal.NewFromInt(1)))
	assert.True(t, s.Reserved.Equal(decimal.NewFromInt(9)))

	movs, err := repos.Movements.List(ctx, repository.MovementFilter{TechnicianID: "tec-1", Type: entity.MovementTypeReserve})
	require.NoError(t, err)
	assert.Len(t, movs, 3)
}

func TestPostgres_ControlConLineasJSONB(t *testing.T) {
	ctx := context.Background()
	repos, _ := startPostgres(t)
	now := time.Now().UTC().Truncate(time.Microsecond)
	ot := "OT-9"

	c := &entity.MaterialControl{
		ID:           "ctrl-1",
		TechnicianID: "tec-1",
		WorkOrderID:  &ot,
		JobType:      "instalacion",
		Items: []entity.AssignedMaterial{{
			MaterialID:  "mat-m",
			AssignedQty: decimal.NewFromInt(10),
			Status:      entity.LineStatusPending,
		}},
		AssignedAt: now,
		Status:     entity.ControlStatusAssigned,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, repos.Controls.Create(ctx, c))

	c.Status = entity.ControlStatusReturnComplete
	c.HasDiscrepancy = true
	c.DiscrepancyValue = decimal.NewFromInt(2000)
	c.Items[0].UsedQty = decimal.NewFromInt(7)
	c.Items[0].ReturnedQty = decimal.NewFromInt(1)
	require.NoError(t, repos.Controls.Update(ctx, c))

	got, err := repos.Controls.GetByID(ctx, "ctrl-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Items, 1)
	assert.True(t, got.Items[0].UsedQty.Equal(decimal.NewFromInt(7)))
	assert.Equal(t, "OT-9", *got.WorkOrderID)

	list, err := repos.Controls.List(ctx, repository.ControlFilter{MaterialID: "mat-m"})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	total, err := repos.Controls.SumUnresolvedDiscrepancy(ctx)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(2000)))

	missing, err := repos.Controls.GetByID(ctx, "no-existe")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPostgres_PatronConHistorial(t *testing.T) {
	ctx := context.Background()
	repos, _ := startPostgres(t)

	p := &entity.ConsumptionPattern{
		JobType:    "instalacion",
		MaterialID: "mat-m",
		AverageQty: 7,
		TotalJobs:  2,
		History:    []float64{6, 8},
		UpdatedAt:  time.Now().UTC(),
	}
	require.NoError(t, repos.Patterns.Save(ctx, p))
	p.History = append(p.History, 7)
	p.TotalJobs = 3
	require.NoError(t, repos.Patterns.Save(ctx, p))

	got, err := repos.Patterns.Get(ctx, "instalacion", "mat-m")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []float64{6, 8, 7}, got.History)
	assert.Equal(t, 3, got.TotalJobs)
}

// Asignar, iniciar trabajo y consumir sobre el mismo técnico en paralelo: todas las transacciones
// bloquean primero la cabecera del inventario, ninguna termina en deadlock.
func TestPostgres_AsignarEIniciarConcurrentesSinDeadlock(t *testing.T) {
	ctx := context.Background()
	repos, runner := startPostgres(t)
	now := time.Now().UTC()
	require.NoError(t, repos.Materials.Create(ctx, &entity.Material{
		ID: "mat-c", Name: "Conector RJ45", UnitMeasure: "und", UnitCost: decimal.NewFromInt(500),
		Status: entity.MaterialStatusActive, CreatedAt: now, UpdatedAt: now,
	}))

	l := ledger.NewLedgerUseCase(runner, repos.Materials, repos.Stock, repos.Movements, nil, zerolog.Nop())
	controls := distribution.NewMaterialControlUseCase(runner, repos.Controls, repos.Materials, l, nil, nil, zerolog.Nop())
	for _, mat := range []string{"mat-m", "mat-c"} {
		_, err := l.AddStock(ctx, bodeguero, dto.AddStockRequest{
			TechnicianID: tecnico.ID, MaterialID: mat, Quantity: decimal.NewFromInt(100),
		})
		require.NoError(t, err)
	}

	lines := func(qty int64) []dto.AssignLine {
		return []dto.AssignLine{
			{MaterialID: "mat-m", Quantity: decimal.NewFromInt(qty)},
			{MaterialID: "mat-c", Quantity: decimal.NewFromInt(qty)},
		}
	}
	const n = 10
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		c, err := controls.Assign(ctx, bodeguero, dto.AssignMaterialsRequest{TechnicianID: tecnico.ID, Materials: lines(2)})
		require.NoError(t, err)
		ids = append(ids, c.ID)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 3*n)
	for i := 0; i < n; i++ {
		wg.Add(3)
		go func(id string) {
			defer wg.Done()
			_, err := controls.StartWork(ctx, tecnico, id)
			errs <- err
		}(ids[i])
		go func() {
			defer wg.Done()
			_, err := controls.Assign(ctx, bodeguero, dto.AssignMaterialsRequest{TechnicianID: tecnico.ID, Materials: lines(3)})
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := l.CommitConsumption(ctx, tecnico, dto.ConsumptionRequest{
				TechnicianID: tecnico.ID, MaterialID: "mat-m", Quantity: decimal.NewFromInt(1), WorkOrderID: "OT-77",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	m, err := repos.Stock.GetForUpdate(ctx, tecnico.ID, "mat-m")
	require.NoError(t, err)
	assert.True(t, m.Consistent())
	assert.True(t, m.OnHand.Equal(decimal.NewFromInt(70)), "100 - 20 en uso - 10 consumidas")
	assert.True(t, m.Reserved.Equal(decimal.NewFromInt(30)))

	c, err := repos.Stock.GetForUpdate(ctx, tecnico.ID, "mat-c")
	require.NoError(t, err)
	assert.True(t, c.Consistent())
	assert.True(t, c.OnHand.Equal(decimal.NewFromInt(80)))
	assert.True(t, c.Available.Equal(decimal.NewFromInt(50)))
}

func TestPostgres_PrimerasMuestrasConcurrentesDelPatron(t *testing.T) {
	ctx := context.Background()
	repos, runner := startPostgres(t)
	learn := consumption.NewLearningUseCase(runner, repos.Patterns, repos.Materials, consumption.Config{}, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := learn.Record(ctx, "empalme", "mat-m", 2)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repos.Patterns.Get(ctx, "empalme", "mat-m")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 8, got.TotalJobs)
	assert.InDelta(t, 16.0, got.TotalConsumption, 1e-9)
	assert.Len(t, got.History, 8)
}
