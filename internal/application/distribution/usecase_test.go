package distribution_test

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

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/consumption"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/distribution"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/dto"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/ledger"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/ports"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var (
	bodeguero = entity.Actor{ID: "bod-1", Role: entity.RoleBodeguero}
	tecnico   = entity.Actor{ID: "tec-1", Role: entity.RoleTechnician}
	otroTec   = entity.Actor{ID: "tec-2", Role: entity.RoleTechnician}
	analista  = entity.Actor{ID: "ana-1", Role: entity.RoleAnalyst}
	fixedNow  = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []ports.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, msg ports.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return nil
}

func (n *recordingNotifier) events() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.sent))
	for _, s := range n.sent {
		out = append(out, s.Event)
	}
	return out
}

type fixture struct {
	store    *memory.Store
	ledger   *ledger.LedgerUseCase
	learning *consumption.LearningUseCase
	controls *distribution.MaterialControlUseCase
	notifier *recordingNotifier
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// newFixture prepara el material M (costo 1000) y 15 unidades disponibles para tec-1.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	clock := func() time.Time { return fixedNow }
	store := memory.NewStore().WithClock(clock)
	repos := store.Repos()
	notifier := &recordingNotifier{}
	log := zerolog.Nop()

	l := ledger.NewLedgerUseCase(store, repos.Materials, repos.Stock, repos.Movements, notifier, log).WithClock(clock)
	learn := consumption.NewLearningUseCase(store, repos.Patterns, repos.Materials, consumption.Config{}, log)
	controls := distribution.NewMaterialControlUseCase(store, repos.Controls, repos.Materials, l, learn, notifier, log).
		WithClock(clock)

	for _, m := range []*entity.Material{
		{ID: "mat-m", Name: "Cable UTP", UnitMeasure: "m", UnitCost: dec("1000"), MinimumStock: dec("2"), Status: entity.MaterialStatusActive},
		{ID: "mat-c", Name: "Conector RJ45", UnitMeasure: "und", UnitCost: dec("500"), Status: entity.MaterialStatusActive},
		{ID: "mat-x", Name: "Medidor viejo", UnitMeasure: "und", UnitCost: dec("90000"), Status: entity.MaterialStatusInactive},
	} {
		require.NoError(t, repos.Materials.Create(ctx, m))
	}
	_, err := l.AddStock(ctx, bodeguero, dto.AddStockRequest{
		TechnicianID: tecnico.ID, MaterialID: "mat-m", Quantity: dec("15"), Reason: "carga inicial",
	})
	require.NoError(t, err)
	_, err = l.AddStock(ctx, bodeguero, dto.AddStockRequest{
		TechnicianID: tecnico.ID, MaterialID: "mat-c", Quantity: dec("4"), Reason: "carga inicial",
	})
	require.NoError(t, err)

	return &fixture{store: store, ledger: l, learning: learn, controls: controls, notifier: notifier}
}

func (f *fixture) stock(t *testing.T, materialID string) *entity.TechnicianStock {
	t.Helper()
	s, err := f.store.Repos().Stock.GetForUpdate(context.Background(), tecnico.ID, materialID)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.True(t, s.Consistent(), "disponible debe ser actual - apartada")
	return s
}

func (f *fixture) assignM(t *testing.T, qty string) *dto.MaterialControlResponse {
	t.Helper()
	wo := "OT-100"
	out, err := f.controls.Assign(context.Background(), bodeguero, dto.AssignMaterialsRequest{
		TechnicianID: tecnico.ID,
		WorkOrderID:  &wo,
		JobType:      "Instalacion",
		Materials:    []dto.AssignLine{{MaterialID: "mat-m", Quantity: dec(qty)}},
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo completo
// ──────────────────────────────────────────────────────────────────────────────

func TestCicloCompleto_AsignarIniciarDevolverResolver(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// Asignar 10 de 15.
	c := f.assignM(t, "10")
	assert.Equal(t, entity.ControlStatusAssigned, c.Status)
	require.Len(t, c.Materials, 1)
	assert.Equal(t, entity.LineStatusPending, c.Materials[0].Status)
	assert.Equal(t, "Cable UTP", c.Materials[0].MaterialName)
	s := f.stock(t, "mat-m")
	assert.True(t, s.Available.Equal(dec("5")))
	assert.True(t, s.Reserved.Equal(dec("10")))

	// Iniciar trabajo.
	c, err := f.controls.StartWork(ctx, tecnico, c.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ControlStatusInProgress, c.Status)
	assert.Equal(t, entity.LineStatusInUse, c.Materials[0].Status)
	require.NotNil(t, c.WorkStartedAt)
	s = f.stock(t, "mat-m")
	assert.True(t, s.OnHand.Equal(dec("5")))
	assert.True(t, s.Reserved.IsZero())

	// Devolver 6 usadas + 3 devueltas: falta 1 unidad.
	c, err = f.controls.Return(ctx, tecnico, c.ID, dto.ReturnMaterialsRequest{
		Materials: []dto.ReturnLine{{MaterialID: "mat-m", UsedQty: dec("6"), ReturnedQty: dec("3")}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ControlStatusReturnComplete, c.Status)
	assert.True(t, c.HasDiscrepancy)
	assert.True(t, c.DiscrepancyValue.Equal(dec("1000")))
	assert.Contains(t, c.DiscrepancyReason, "Cable UTP")
	assert.Equal(t, entity.LineStatusPartialReturn, c.Materials[0].Status)
	require.NotNil(t, c.ReturnedAt)
	require.NotNil(t, c.WorkFinishedAt)
	s = f.stock(t, "mat-m")
	assert.True(t, s.OnHand.Equal(dec("8")))
	assert.Contains(t, f.notifier.events(), ports.EventDiscrepancyCreated)

	// Resolver.
	c, err = f.controls.Resolve(ctx, analista, c.ID, dto.ResolveDiscrepancyRequest{Notes: "descontado en nómina"})
	require.NoError(t, err)
	assert.True(t, c.DiscrepancyResolved)
	assert.Equal(t, entity.ControlStatusClosed, c.Status)
	assert.Equal(t, analista.ID, c.ResolvedBy)
	assert.Equal(t, analista.ID, c.SupervisorID)
}

func TestReturn_SinDescuadre_CerrarManual(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.assignM(t, "10")
	_, err := f.controls.StartWork(ctx, tecnico, c.ID)
	require.NoError(t, err)
	_, err = f.controls.CompleteWork(ctx, tecnico, c.ID)
	require.NoError(t, err)

	out, err := f.controls.Return(ctx, tecnico, c.ID, dto.ReturnMaterialsRequest{
		Materials: []dto.ReturnLine{{MaterialID: "mat-m", UsedQty: dec("7"), ReturnedQty: dec("2"), LostQty: dec("1"), LossReason: "corte"}},
	})
	require.NoError(t, err)
	assert.False(t, out.HasDiscrepancy)
	assert.True(t, out.DiscrepancyValue.IsZero())

	_, err = f.controls.Resolve(ctx, analista, c.ID, dto.ResolveDiscrepancyRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidState, "sin descuadre no se resuelve")

	out, err = f.controls.Close(ctx, bodeguero, c.ID, dto.CloseControlRequest{})
	require.NoError(t, err)
	assert.Equal(t, entity.ControlStatusClosed, out.Status)
}

func TestReturn_RegistraConsumoAprendido(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.assignM(t, "10")
	_, err := f.controls.StartWork(ctx, tecnico, c.ID)
	require.NoError(t, err)
	_, err = f.controls.Return(ctx, tecnico, c.ID, dto.ReturnMaterialsRequest{
		Materials: []dto.ReturnLine{{MaterialID: "mat-m", UsedQty: dec("6"), ReturnedQty: dec("4")}},
	})
	require.NoError(t, err)

	patterns, err := f.learning.ListPatterns(ctx, "instalacion")
	require.NoError(t, err)
	require.Len(t, patterns, 1)
	assert.Equal(t, 1, patterns[0].TotalJobs)
	assert.InDelta(t, 6.0, patterns[0].AverageQty, 1e-9)
}

// ──────────────────────────────────────────────────────────────────────────────
// Todo o nada
// ──────────────────────────────────────────────────────────────────────────────

func TestAssign_StockInsuficienteNoApartaNada(t *testing.T) {
	f := newFixture(t)
	_, err := f.controls.Assign(context.Background(), bodeguero, dto.AssignMaterialsRequest{
		TechnicianID: tecnico.ID,
		Materials: []dto.AssignLine{
			{MaterialID: "mat-m", Quantity: dec("10")},
			{MaterialID: "mat-c", Quantity: dec("5")},
		},
	})
	require.Error(t, err)
	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, "Conector RJ45", ise.MaterialName)
	assert.True(t, ise.Available.Equal(dec("4")))

	s := f.stock(t, "mat-m")
	assert.True(t, s.Available.Equal(dec("15")), "la primera línea no debe quedar apartada")
	assert.True(t, s.Reserved.IsZero())

	list, err := f.controls.List(context.Background(), bodeguero, dto.ControlQuery{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestAssign_LineasRepetidasSeSuman(t *testing.T) {
	f := newFixture(t)
	out, err := f.controls.Assign(context.Background(), bodeguero, dto.AssignMaterialsRequest{
		TechnicianID: tecnico.ID,
		Materials: []dto.AssignLine{
			{MaterialID: "mat-m", Quantity: dec("8")},
			{MaterialID: "mat-m", Quantity: dec("8")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock, "8+8 supera las 15 disponibles")
	assert.Nil(t, out)
}

func TestAssign_Errores(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.controls.Assign(ctx, tecnico, dto.AssignMaterialsRequest{
		TechnicianID: tecnico.ID, Materials: []dto.AssignLine{{MaterialID: "mat-m", Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.controls.Assign(ctx, bodeguero, dto.AssignMaterialsRequest{
		TechnicianID: "tec-sin-inventario", Materials: []dto.AssignLine{{MaterialID: "mat-m", Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.controls.Assign(ctx, bodeguero, dto.AssignMaterialsRequest{
		TechnicianID: tecnico.ID, Materials: []dto.AssignLine{{MaterialID: "mat-x", Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.controls.Assign(ctx, bodeguero, dto.AssignMaterialsRequest{
		TechnicianID: tecnico.ID, Materials: []dto.AssignLine{{MaterialID: "mat-m", Quantity: dec("0")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReturn_ValidaTodasLasLineasAntesDeMutar(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c, err := f.controls.Assign(ctx, bodeguero, dto.AssignMaterialsRequest{
		TechnicianID: tecnico.ID,
		Materials: []dto.AssignLine{
			{MaterialID: "mat-m", Quantity: dec("5")},
			{MaterialID: "mat-c", Quantity: dec("2")},
		},
	})
	require.NoError(t, err)
	_, err = f.controls.StartWork(ctx, tecnico, c.ID)
	require.NoError(t, err)
	before := f.stock(t, "mat-m")

	cases := []struct {
		name  string
		lines []dto.ReturnLine
		want  error
	}{
		{"material ajeno al control", []dto.ReturnLine{
			{MaterialID: "mat-m", ReturnedQty: dec("5")},
			{MaterialID: "mat-x", ReturnedQty: dec("1")},
		}, domain.ErrNotFound},
		{"cantidad negativa", []dto.ReturnLine{
			{MaterialID: "mat-m", ReturnedQty: dec("5")},
			{MaterialID: "mat-c", UsedQty: dec("-1")},
		}, domain.ErrInvalidInput},
		{"línea repetida", []dto.ReturnLine{
			{MaterialID: "mat-m", ReturnedQty: dec("5")},
			{MaterialID: "mat-m", ReturnedQty: dec("5")},
		}, domain.ErrInvalidInput},
		{"línea faltante", []dto.ReturnLine{
			{MaterialID: "mat-m", ReturnedQty: dec("5")},
		}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.controls.Return(ctx, tecnico, c.ID, dto.ReturnMaterialsRequest{Materials: tc.lines})
			assert.ErrorIs(t, err, tc.want)
			after := f.stock(t, "mat-m")
			assert.True(t, after.OnHand.Equal(before.OnHand), "no debe acreditarse nada")
			got, err := f.controls.Get(ctx, tecnico, c.ID)
			require.NoError(t, err)
			assert.Equal(t, entity.ControlStatusInProgress, got.Status)
		})
	}
}

func TestReturn_DevolverMasDeLoAsignadoSeRechaza(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.assignM(t, "10")
	_, err := f.controls.StartWork(ctx, tecnico, c.ID)
	require.NoError(t, err)
	before := f.stock(t, "mat-m")

	_, err = f.controls.Return(ctx, tecnico, c.ID, dto.ReturnMaterialsRequest{
		Materials: []dto.ReturnLine{{MaterialID: "mat-m", UsedQty: dec("0"), ReturnedQty: dec("500")}},
	})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "cantidad_devuelta", ve.Field)

	after := f.stock(t, "mat-m")
	assert.True(t, after.OnHand.Equal(before.OnHand), "no se crea stock")
	got, err := f.controls.Get(ctx, tecnico, c.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ControlStatusInProgress, got.Status)

	// Reportar de más en lo utilizado sigue siendo un descuadre (sobrante), sin acreditar stock extra.
	out, err := f.controls.Return(ctx, tecnico, c.ID, dto.ReturnMaterialsRequest{
		Materials: []dto.ReturnLine{{MaterialID: "mat-m", UsedQty: dec("9"), ReturnedQty: dec("3")}},
	})
	require.NoError(t, err)
	assert.True(t, out.HasDiscrepancy)
	assert.True(t, out.DiscrepancyValue.Equal(dec("2000")))
	assert.True(t, f.stock(t, "mat-m").OnHand.Equal(before.OnHand.Add(dec("3"))))
}

func TestReturn_CantidadConMasDeTresDecimales(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.assignM(t, "10")
	_, err := f.controls.StartWork(ctx, tecnico, c.ID)
	require.NoError(t, err)

	_, err = f.controls.Return(ctx, tecnico, c.ID, dto.ReturnMaterialsRequest{
		Materials: []dto.ReturnLine{{MaterialID: "mat-m", UsedQty: dec("9.9995"), ReturnedQty: dec("0.0005")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.controls.Assign(ctx, bodeguero, dto.AssignMaterialsRequest{
		TechnicianID: tecnico.ID,
		Materials:    []dto.AssignLine{{MaterialID: "mat-m", Quantity: dec("0.0001")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Material sin costo: el descuadre se marca y debe resolverse aunque su valor sea cero.
func TestReturn_MaterialSinCostoDescuadraConValorCero(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.store.Repos().Materials.Create(ctx, &entity.Material{
		ID: "mat-g", Name: "Grapa de muestra", UnitMeasure: "und", UnitCost: decimal.Zero, Status: entity.MaterialStatusActive,
	}))
	_, err := f.ledger.AddStock(ctx, bodeguero, dto.AddStockRequest{
		TechnicianID: tecnico.ID, MaterialID: "mat-g", Quantity: dec("20"),
	})
	require.NoError(t, err)

	c, err := f.controls.Assign(ctx, bodeguero, dto.AssignMaterialsRequest{
		TechnicianID: tecnico.ID,
		Materials:    []dto.AssignLine{{MaterialID: "mat-g", Quantity: dec("10")}},
	})
	require.NoError(t, err)
	_, err = f.controls.StartWork(ctx, tecnico, c.ID)
	require.NoError(t, err)

	out, err := f.controls.Return(ctx, tecnico, c.ID, dto.ReturnMaterialsRequest{
		Materials: []dto.ReturnLine{{MaterialID: "mat-g", UsedQty: dec("5"), ReturnedQty: dec("2")}},
	})
	require.NoError(t, err)
	assert.True(t, out.HasDiscrepancy)
	assert.True(t, out.DiscrepancyValue.IsZero())
	assert.Contains(t, out.DiscrepancyReason, "Grapa de muestra")

	_, err = f.controls.Close(ctx, bodeguero, c.ID, dto.CloseControlRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	out, err = f.controls.Resolve(ctx, analista, c.ID, dto.ResolveDiscrepancyRequest{Notes: "muestras"})
	require.NoError(t, err)
	assert.Equal(t, entity.ControlStatusClosed, out.Status)
}

func TestAssign_LineasOrdenadasPorMaterial(t *testing.T) {
	f := newFixture(t)
	c, err := f.controls.Assign(context.Background(), bodeguero, dto.AssignMaterialsRequest{
		TechnicianID: tecnico.ID,
		Materials: []dto.AssignLine{
			{MaterialID: "mat-m", Quantity: dec("2")},
			{MaterialID: "mat-c", Quantity: dec("1")},
		},
	})
	require.NoError(t, err)
	require.Len(t, c.Materials, 2)
	assert.Equal(t, "mat-c", c.Materials[0].MaterialID)
	assert.Equal(t, "mat-m", c.Materials[1].MaterialID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Legalidad de transiciones
// ──────────────────────────────────────────────────────────────────────────────

func TestStartWork_SoloTecnicoAsignadoYEstadoAsignado(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.assignM(t, "3")

	_, err := f.controls.StartWork(ctx, otroTec, c.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.controls.StartWork(ctx, tecnico, c.ID)
	require.NoError(t, err)
	_, err = f.controls.StartWork(ctx, tecnico, c.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = f.controls.StartWork(ctx, tecnico, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReturn_DesdeAsignadoEsEstadoInvalido(t *testing.T) {
	f := newFixture(t)
	c := f.assignM(t, "3")
	_, err := f.controls.Return(context.Background(), tecnico, c.ID, dto.ReturnMaterialsRequest{
		Materials: []dto.ReturnLine{{MaterialID: "mat-m", ReturnedQty: dec("3")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestResolve_SoloAnalista(t *testing.T) {
	f := newFixture(t)
	c := f.assignM(t, "3")
	_, err := f.controls.Resolve(context.Background(), bodeguero, c.ID, dto.ResolveDiscrepancyRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestList_TecnicoSoloVeSusControles(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.assignM(t, "2")

	list, err := f.controls.List(ctx, otroTec, dto.ControlQuery{TechnicianID: tecnico.ID})
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	list, err = f.controls.List(ctx, tecnico, dto.ControlQuery{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

func TestAssign_ConcurrenteNoSobrevende(t *testing.T) {
	f := newFixture(t)
	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.controls.Assign(context.Background(), bodeguero, dto.AssignMaterialsRequest{
				TechnicianID: tecnico.ID,
				Materials:    []dto.AssignLine{{MaterialID: "mat-m", Quantity: dec("4")}},
			})
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 3, ok, "15 disponibles alcanzan para 3 asignaciones de 4")
	s := f.stock(t, "mat-m")
	assert.True(t, s.Available.Equal(dec("3")))
}
