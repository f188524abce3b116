// Package ledger es la única fuente de verdad del stock de los técnicos.
// Toda mutación escribe un movimiento en la misma transacción que el cambio de stock.
package ledger

import (
	"context"
	"time"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/audit"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/dto"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/ports"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// LedgerUseCase opera el inventario de técnicos (apartar, consumir, devolver, ingresar, ajustar).
// Cada operación tiene una forma autónoma que abre su transacción y una forma InTx
// (vía LedgerTx) para componerla dentro de la transacción de otro caso de uso.
type LedgerUseCase struct {
	txRunner  ports.TxRunner
	materials repository.MaterialRepository
	stock     repository.TechnicianStockRepository
	movements repository.InventoryMovementRepository
	notifier  ports.Notifier
	log       zerolog.Logger
	now       func() time.Time
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner ports.TxRunner,
	materials repository.MaterialRepository,
	stock repository.TechnicianStockRepository,
	movements repository.InventoryMovementRepository,
	notifier ports.Notifier,
	log zerolog.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:  txRunner,
		materials: materials,
		stock:     stock,
		movements: movements,
		notifier:  notifier,
		log:       log.With().Str("component", "ledger").Logger(),
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (pruebas).
func (uc *LedgerUseCase) WithClock(now func() time.Time) *LedgerUseCase {
	uc.now = now
	return uc
}

// Publish publica las alertas de stock después del commit (best effort).
func (uc *LedgerUseCase) Publish(ctx context.Context, alerts []ports.Notification) {
	ports.NotifyBestEffort(ctx, uc.log, uc.notifier, alerts...)
}

// run abre una transacción, ejecuta fn con un LedgerTx y publica las alertas si hubo commit.
func (uc *LedgerUseCase) run(ctx context.Context, fn func(repos repository.TxRepos, t *LedgerTx) error) error {
	var alerts []ports.Notification
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		t := uc.InTx(repos, uc.now())
		if err := fn(repos, t); err != nil {
			return err
		}
		alerts = t.Alerts()
		return nil
	})
	if err != nil {
		return err
	}
	uc.Publish(ctx, alerts)
	return nil
}

// Reserve aparta stock en una transacción propia.
func (uc *LedgerUseCase) Reserve(ctx context.Context, in MovementInput) (*entity.TechnicianStock, error) {
	var out *entity.TechnicianStock
	err := uc.run(ctx, func(_ repository.TxRepos, t *LedgerTx) error {
		s, err := t.Reserve(ctx, in)
		out = s
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CommitToUse convierte lo apartado en consumo en una transacción propia.
func (uc *LedgerUseCase) CommitToUse(ctx context.Context, in MovementInput) (*entity.TechnicianStock, error) {
	var out *entity.TechnicianStock
	err := uc.run(ctx, func(_ repository.TxRepos, t *LedgerTx) error {
		s, err := t.CommitToUse(ctx, in)
		out = s
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReturnMaterial acredita una devolución en una transacción propia.
func (uc *LedgerUseCase) ReturnMaterial(ctx context.Context, in MovementInput) (*entity.TechnicianStock, error) {
	var out *entity.TechnicianStock
	err := uc.run(ctx, func(_ repository.TxRepos, t *LedgerTx) error {
		s, err := t.ReturnMaterial(ctx, in)
		out = s
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CommitConsumption registra consumo de una OT o póliza desde el stock libre del técnico.
// Un técnico solo puede reportar su propio consumo.
func (uc *LedgerUseCase) CommitConsumption(ctx context.Context, actor entity.Actor, in dto.ConsumptionRequest) (*dto.StockItemResponse, error) {
	if actor.Role == entity.RoleTechnician && actor.ID != in.TechnicianID {
		return nil, domain.Forbiddenf("el técnico %s no puede reportar consumo de %s", actor.ID, in.TechnicianID)
	}
	input := MovementInput{
		TechnicianID: in.TechnicianID,
		MaterialID:   in.MaterialID,
		Quantity:     in.Quantity,
		Reason:       in.Reason,
		OriginRefID:  in.WorkOrderID,
		PolicyNumber: in.PolicyNumber,
		UserID:       actor.ID,
	}
	var out *dto.StockItemResponse
	err := uc.run(ctx, func(repos repository.TxRepos, t *LedgerTx) error {
		s, err := t.CommitConsumption(ctx, input)
		if err != nil {
			return err
		}
		mat, _ := t.Material(ctx, in.MaterialID)
		out = toStockItemResponse(s, mat)
		return audit.Record(ctx, repos.Audit, actor.ID, entity.AuditConsumption,
			"consumo de "+mat.Name+" por "+s.TechnicianID,
			map[string]any{
				"tecnico_id":       s.TechnicianID,
				"material_id":      s.MaterialID,
				"cantidad":         in.Quantity.String(),
				"orden_trabajo_id": in.WorkOrderID,
				"numero_poliza":    in.PolicyNumber,
			}, t.now)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("tecnico_id", in.TechnicianID).Str("material_id", in.MaterialID).
		Str("cantidad", in.Quantity.String()).Msg("consumo registrado")
	return out, nil
}

// AddStock ingresa material desde bodega al inventario del técnico.
func (uc *LedgerUseCase) AddStock(ctx context.Context, actor entity.Actor, in dto.AddStockRequest) (*dto.StockItemResponse, error) {
	if !actor.HasRole(entity.RoleBodeguero, entity.RoleAdmin) {
		return nil, domain.Forbiddenf("rol %s no puede ingresar stock", actor.Role)
	}
	input := MovementInput{
		TechnicianID: in.TechnicianID,
		MaterialID:   in.MaterialID,
		Quantity:     in.Quantity,
		Reason:       in.Reason,
		Origin:       in.Origin,
		OriginRefID:  in.OriginRefID,
		UserID:       actor.ID,
	}
	var out *dto.StockItemResponse
	err := uc.run(ctx, func(repos repository.TxRepos, t *LedgerTx) error {
		s, err := t.AddStock(ctx, input)
		if err != nil {
			return err
		}
		mat, _ := t.Material(ctx, in.MaterialID)
		out = toStockItemResponse(s, mat)
		return audit.Record(ctx, repos.Audit, actor.ID, entity.AuditStockAdded,
			"ingreso de "+in.Quantity.String()+" "+mat.UnitMeasure+" de "+mat.Name,
			map[string]any{
				"tecnico_id":  s.TechnicianID,
				"material_id": s.MaterialID,
				"cantidad":    in.Quantity.String(),
			}, t.now)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Adjust corrige el stock de un técnico según un conteo físico.
func (uc *LedgerUseCase) Adjust(ctx context.Context, actor entity.Actor, in dto.AdjustStockRequest) (*dto.StockItemResponse, error) {
	if !actor.HasRole(entity.RoleBodeguero, entity.RoleAdmin) {
		return nil, domain.Forbiddenf("rol %s no puede ajustar stock", actor.Role)
	}
	input := MovementInput{
		TechnicianID: in.TechnicianID,
		MaterialID:   in.MaterialID,
		Quantity:     in.CountedQty,
		Reason:       in.Reason,
		UserID:       actor.ID,
	}
	var out *dto.StockItemResponse
	err := uc.run(ctx, func(repos repository.TxRepos, t *LedgerTx) error {
		s, err := t.Adjust(ctx, input)
		if err != nil {
			return err
		}
		mat, _ := t.Material(ctx, in.MaterialID)
		out = toStockItemResponse(s, mat)
		return audit.Record(ctx, repos.Audit, actor.ID, entity.AuditStockAdjusted, in.Reason,
			map[string]any{
				"tecnico_id":     s.TechnicianID,
				"material_id":    s.MaterialID,
				"nueva_cantidad": in.CountedQty.String(),
			}, t.now)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetInventory devuelve el inventario de un técnico con el nombre de cada material.
func (uc *LedgerUseCase) GetInventory(ctx context.Context, technicianID string) (*dto.TechnicianInventoryResponse, error) {
	inv, err := uc.stock.GetInventory(ctx, technicianID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.NotFoundf("inventario del técnico %s", technicianID)
	}
	items := lo.Map(inv.Items, func(s entity.TechnicianStock, _ int) dto.StockItemResponse {
		mat, _ := uc.materials.GetByID(ctx, s.MaterialID)
		return *toStockItemResponse(&s, mat)
	})
	return &dto.TechnicianInventoryResponse{
		TechnicianID: inv.TechnicianID,
		Items:        items,
		UpdatedAt:    inv.UpdatedAt,
	}, nil
}

// ListMovements consulta el kardex con filtros.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, q dto.MovementQuery) ([]dto.MovementResponse, error) {
	q.DefaultPage()
	list, err := uc.movements.List(ctx, repository.MovementFilter{
		TechnicianID: q.TechnicianID,
		MaterialID:   q.MaterialID,
		Type:         q.Type,
		Origin:       q.Origin,
		OriginRefID:  q.OriginRefID,
		From:         q.From,
		To:           q.To,
		Limit:        q.Limit,
		Offset:       q.Offset,
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(list, func(m *entity.InventoryMovement, _ int) dto.MovementResponse {
		return ToMovementResponse(m)
	}), nil
}

func toStockItemResponse(s *entity.TechnicianStock, mat *entity.Material) *dto.StockItemResponse {
	out := &dto.StockItemResponse{
		TechnicianID: s.TechnicianID,
		MaterialID:   s.MaterialID,
		OnHand:       s.OnHand,
		Reserved:     s.Reserved,
		Available:    s.Available,
		UpdatedAt:    s.UpdatedAt,
	}
	if mat != nil {
		out.MaterialName = mat.Name
	}
	return out
}

// ToMovementResponse mapea un movimiento del kardex.
func ToMovementResponse(m *entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:           m.ID,
		TechnicianID: m.TechnicianID,
		MaterialID:   m.MaterialID,
		Type:         m.Type,
		Quantity:     m.Quantity,
		UnitCost:     m.UnitCost,
		Reason:       m.Reason,
		UserID:       m.UserID,
		Origin:       m.Origin,
		OriginRefID:  m.OriginRefID,
		PolicyNumber: m.PolicyNumber,
		Date:         m.Date,
	}
}
