package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/dto"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/ledger"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/ports"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/infrastructure/memory"
)

var (
	bodeguero = entity.Actor{ID: "bod-1", Role: entity.RoleBodeguero}
	tecnico   = entity.Actor{ID: "tec-1", Role: entity.RoleTechnician}
)

type captureNotifier struct {
	mu   sync.Mutex
	sent []ports.Notification
}

func (n *captureNotifier) Notify(_ context.Context, msg ports.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return nil
}

type failingNotifier struct{}

func (failingNotifier) Notify(context.Context, ports.Notification) error {
	return errors.New("broker caído")
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newLedger(t *testing.T, notifier ports.Notifier) (*ledger.LedgerUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	require.NoError(t, repos.Materials.Create(context.Background(), &entity.Material{
		ID:           "mat-m",
		Name:         "Cable UTP",
		UnitMeasure:  "m",
		UnitCost:     d(1000),
		MinimumStock: d(5),
		Status:       entity.MaterialStatusActive,
	}))
	uc := ledger.NewLedgerUseCase(store, repos.Materials, repos.Stock, repos.Movements, notifier, zerolog.Nop())
	return uc, store
}

func addStock(t *testing.T, uc *ledger.LedgerUseCase, tech string, qty int64) {
	t.Helper()
	_, err := uc.AddStock(context.Background(), bodeguero, dto.AddStockRequest{
		TechnicianID: tech,
		MaterialID:   "mat-m",
		Quantity:     d(qty),
		Reason:       "carga",
	})
	require.NoError(t, err)
}

func TestReserve_SobreventaFallaSinCambios(t *testing.T) {
	uc, _ := newLedger(t, nil)
	addStock(t, uc, tecnico.ID, 5)

	_, err := uc.Reserve(context.Background(), ledger.MovementInput{
		TechnicianID: tecnico.ID,
		MaterialID:   "mat-m",
		Quantity:     d(1000),
	})
	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, "Cable UTP", ise.MaterialName)

	inv, err := uc.GetInventory(context.Background(), tecnico.ID)
	require.NoError(t, err)
	require.Len(t, inv.Items, 1)
	assert.True(t, inv.Items[0].Available.Equal(d(5)))
	assert.True(t, inv.Items[0].Reserved.IsZero())
}

func TestCantidades_MasDeTresDecimalesSeRechazan(t *testing.T) {
	ctx := context.Background()
	uc, _ := newLedger(t, nil)
	addStock(t, uc, tecnico.ID, 5)

	_, err := uc.AddStock(ctx, bodeguero, dto.AddStockRequest{
		TechnicianID: tecnico.ID,
		MaterialID:   "mat-m",
		Quantity:     decimal.RequireFromString("1.0001"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Reserve(ctx, ledger.MovementInput{
		TechnicianID: tecnico.ID,
		MaterialID:   "mat-m",
		Quantity:     decimal.RequireFromString("0.0004"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Reserve(ctx, ledger.MovementInput{
		TechnicianID: tecnico.ID,
		MaterialID:   "mat-m",
		Quantity:     decimal.RequireFromString("1.250"),
	})
	require.NoError(t, err)

	inv, err := uc.GetInventory(ctx, tecnico.ID)
	require.NoError(t, err)
	assert.True(t, inv.Items[0].OnHand.Equal(d(5)))
	assert.True(t, inv.Items[0].Reserved.Equal(decimal.RequireFromString("1.25")))
}

func TestCommitToUse_SinFilaEsNotFound(t *testing.T) {
	uc, _ := newLedger(t, nil)
	_, err := uc.CommitToUse(context.Background(), ledger.MovementInput{
		TechnicianID: "tec-sin-fila",
		MaterialID:   "mat-m",
		Quantity:     d(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCada_MutacionEscribeUnMovimiento(t *testing.T) {
	ctx := context.Background()
	uc, _ := newLedger(t, nil)
	addStock(t, uc, tecnico.ID, 15)

	in := ledger.MovementInput{TechnicianID: tecnico.ID, MaterialID: "mat-m", Quantity: d(10)}
	_, err := uc.Reserve(ctx, in)
	require.NoError(t, err)
	_, err = uc.CommitToUse(ctx, in)
	require.NoError(t, err)
	in.Quantity = d(3)
	_, err = uc.ReturnMaterial(ctx, in)
	require.NoError(t, err)

	movs, err := uc.ListMovements(ctx, dto.MovementQuery{TechnicianID: tecnico.ID, PageRequest: dto.PageRequest{Limit: 100}})
	require.NoError(t, err)
	require.Len(t, movs, 4)
	types := map[string]int{}
	for _, m := range movs {
		types[m.Type]++
		assert.True(t, m.UnitCost.Equal(d(1000)), "el costo se copia al movimiento")
	}
	assert.Equal(t, map[string]int{
		entity.MovementTypeIn:      1,
		entity.MovementTypeReserve: 1,
		entity.MovementTypeOut:     1,
		entity.MovementTypeReturn:  1,
	}, types)
}

func TestCommitConsumption_OrigenYPropietario(t *testing.T) {
	ctx := context.Background()
	uc, _ := newLedger(t, nil)
	addStock(t, uc, tecnico.ID, 10)

	_, err := uc.CommitConsumption(ctx, tecnico, dto.ConsumptionRequest{
		TechnicianID: tecnico.ID, MaterialID: "mat-m", Quantity: d(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "requiere OT o póliza")

	_, err = uc.CommitConsumption(ctx, tecnico, dto.ConsumptionRequest{
		TechnicianID: "tec-2", MaterialID: "mat-m", Quantity: d(1), WorkOrderID: "OT-1",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.CommitConsumption(ctx, tecnico, dto.ConsumptionRequest{
		TechnicianID: tecnico.ID, MaterialID: "mat-m", Quantity: d(2), PolicyNumber: "POL-77",
	})
	require.NoError(t, err)
	assert.True(t, out.OnHand.Equal(d(8)))
	assert.True(t, out.Available.Equal(d(8)))

	movs, err := uc.ListMovements(ctx, dto.MovementQuery{TechnicianID: tecnico.ID, Type: entity.MovementTypeOut})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.OriginPolicy, movs[0].Origin)
	assert.Equal(t, "POL-77", movs[0].PolicyNumber)
}

func TestAddStock_SoloBodega(t *testing.T) {
	uc, _ := newLedger(t, nil)
	_, err := uc.AddStock(context.Background(), tecnico, dto.AddStockRequest{
		TechnicianID: tecnico.ID, MaterialID: "mat-m", Quantity: d(1),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAddStock_MaterialInactivo(t *testing.T) {
	ctx := context.Background()
	uc, store := newLedger(t, nil)
	require.NoError(t, store.Repos().Materials.Create(ctx, &entity.Material{
		ID:     "mat-x",
		Name:   "Medidor viejo",
		Status: entity.MaterialStatusInactive,
	}))
	_, err := uc.AddStock(ctx, bodeguero, dto.AddStockRequest{
		TechnicianID: tecnico.ID, MaterialID: "mat-x", Quantity: d(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AddStock(ctx, bodeguero, dto.AddStockRequest{
		TechnicianID: tecnico.ID, MaterialID: "mat-m", Quantity: d(0),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjust_MovimientoConDelta(t *testing.T) {
	ctx := context.Background()
	uc, _ := newLedger(t, nil)
	addStock(t, uc, tecnico.ID, 10)
	_, err := uc.Reserve(ctx, ledger.MovementInput{TechnicianID: tecnico.ID, MaterialID: "mat-m", Quantity: d(4)})
	require.NoError(t, err)

	_, err = uc.Adjust(ctx, bodeguero, dto.AdjustStockRequest{
		TechnicianID: tecnico.ID, MaterialID: "mat-m", CountedQty: d(3), Reason: "conteo",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "no puede quedar por debajo de lo apartado")

	out, err := uc.Adjust(ctx, bodeguero, dto.AdjustStockRequest{
		TechnicianID: tecnico.ID, MaterialID: "mat-m", CountedQty: d(7), Reason: "conteo",
	})
	require.NoError(t, err)
	assert.True(t, out.OnHand.Equal(d(7)))
	assert.True(t, out.Available.Equal(d(3)))

	movs, err := uc.ListMovements(ctx, dto.MovementQuery{TechnicianID: tecnico.ID, Type: entity.MovementTypeAdjustment})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.True(t, movs[0].Quantity.Equal(d(-3)))
}

func TestUmbral_NotificaStockBajoYCritico(t *testing.T) {
	ctx := context.Background()
	notif := &captureNotifier{}
	uc, _ := newLedger(t, notif)
	addStock(t, uc, tecnico.ID, 6)

	in := ledger.MovementInput{TechnicianID: tecnico.ID, MaterialID: "mat-m", Quantity: d(2)}
	_, err := uc.Reserve(ctx, in)
	require.NoError(t, err)
	in.Quantity = d(4)
	_, err = uc.Reserve(ctx, in)
	require.NoError(t, err)

	require.Len(t, notif.sent, 2)
	assert.Equal(t, ports.EventLowStock, notif.sent[0].Event)
	assert.Equal(t, ports.EventCriticalStock, notif.sent[1].Event)
}

func TestNotificadorCaidoNoRevierte(t *testing.T) {
	uc, _ := newLedger(t, failingNotifier{})
	addStock(t, uc, tecnico.ID, 6)
	out, err := uc.Reserve(context.Background(), ledger.MovementInput{
		TechnicianID: tecnico.ID,
		MaterialID:   "mat-m",
		Quantity:     d(6),
	})
	require.NoError(t, err)
	assert.True(t, out.Available.IsZero())
}

func TestLowStockReport_Prioridad(t *testing.T) {
	uc, _ := newLedger(t, nil)
	addStock(t, uc, "tec-a", 4)
	addStock(t, uc, "tec-b", 1)
	addStock(t, uc, "tec-c", 9)
	_, err := uc.Reserve(context.Background(), ledger.MovementInput{TechnicianID: "tec-a", MaterialID: "mat-m", Quantity: d(4)})
	require.NoError(t, err)

	list, err := uc.LowStockReport(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "tec-a", list[0].TechnicianID)
	assert.True(t, list[0].Critical)
	assert.Equal(t, 1, list[0].Priority)
	assert.True(t, list[0].SuggestedQty.Equal(d(8)), "ceil(5*1.5 - 0)")
	assert.Equal(t, "tec-b", list[1].TechnicianID)
	assert.True(t, list[1].SuggestedQty.Equal(d(7)), "ceil(7.5 - 1)")
}

// Secuencias aleatorias de operaciones nunca dejan el ledger inconsistente.
func TestLedger_InvarianteConOperacionesAleatorias(t *testing.T) {
	ctx := context.Background()
	faker := gofakeit.New(42)
	uc, store := newLedger(t, nil)
	techs := []string{faker.UUID(), faker.UUID(), faker.UUID()}
	for _, tech := range techs {
		addStock(t, uc, tech, int64(faker.Number(0, 20)+1))
	}

	for i := 0; i < 300; i++ {
		in := ledger.MovementInput{
			TechnicianID: techs[faker.Number(0, len(techs)-1)],
			MaterialID:   "mat-m",
			Quantity:     d(int64(faker.Number(1, 8))),
		}
		switch faker.Number(0, 3) {
		case 0:
			_, _ = uc.Reserve(ctx, in)
		case 1:
			_, _ = uc.CommitToUse(ctx, in)
		case 2:
			_, _ = uc.ReturnMaterial(ctx, in)
		case 3:
			_, _ = uc.CommitConsumption(ctx, bodeguero, dto.ConsumptionRequest{
				TechnicianID: in.TechnicianID,
				MaterialID:   in.MaterialID,
				Quantity:     in.Quantity,
				WorkOrderID:  "OT-" + faker.DigitN(4),
			})
		}
		for _, tech := range techs {
			s, err := store.Repos().Stock.GetForUpdate(ctx, tech, "mat-m")
			require.NoError(t, err)
			require.True(t, s.Consistent(), "iteración %d: %+v", i, s)
		}
	}
}
