// Package distribution maneja el ciclo de vida de los controles de materiales:
// asignación, inicio y fin de trabajo, devolución con cálculo de descuadre y resolución.
package distribution

import (
	"context"
	"time"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/dto"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/ledger"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/ports"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// ConsumptionLearner recibe las cantidades utilizadas al cerrar una devolución.
type ConsumptionLearner interface {
	Record(ctx context.Context, jobType, materialID string, qty float64) (*dto.ConsumptionPatternResponse, error)
	CheckAnomaly(ctx context.Context, jobType, materialID string, actual float64) (*dto.AnomalyResponse, error)
}

// MaterialControlUseCase orquesta los controles de materiales sobre el ledger.
type MaterialControlUseCase struct {
	txRunner  ports.TxRunner
	controls  repository.MaterialControlRepository
	materials repository.MaterialRepository
	ledger    *ledger.LedgerUseCase
	learner   ConsumptionLearner
	notifier  ports.Notifier
	log       zerolog.Logger
	now       func() time.Time
}

// NewMaterialControlUseCase construye el caso de uso. learner puede ser nil.
func NewMaterialControlUseCase(
	txRunner ports.TxRunner,
	controls repository.MaterialControlRepository,
	materials repository.MaterialRepository,
	ledgerUC *ledger.LedgerUseCase,
	learner ConsumptionLearner,
	notifier ports.Notifier,
	log zerolog.Logger,
) *MaterialControlUseCase {
	return &MaterialControlUseCase{
		txRunner:  txRunner,
		controls:  controls,
		materials: materials,
		ledger:    ledgerUC,
		learner:   learner,
		notifier:  notifier,
		log:       log.With().Str("component", "distribution").Logger(),
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (pruebas).
func (uc *MaterialControlUseCase) WithClock(now func() time.Time) *MaterialControlUseCase {
	uc.now = now
	return uc
}

// Get devuelve un control. Un técnico solo ve los suyos.
func (uc *MaterialControlUseCase) Get(ctx context.Context, actor entity.Actor, id string) (*dto.MaterialControlResponse, error) {
	c, err := uc.controls.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFoundf("control %s", id)
	}
	if actor.Role == entity.RoleTechnician && c.TechnicianID != actor.ID {
		return nil, domain.Forbiddenf("el control %s no pertenece al técnico %s", id, actor.ID)
	}
	return uc.toResponse(ctx, c), nil
}

// List consulta controles con filtros. Para un técnico el filtro se fija a sus propios controles.
func (uc *MaterialControlUseCase) List(ctx context.Context, actor entity.Actor, q dto.ControlQuery) (*dto.MaterialControlListResponse, error) {
	q.DefaultPage()
	if actor.Role == entity.RoleTechnician {
		q.TechnicianID = actor.ID
	}
	filter := repository.ControlFilter{
		TechnicianID:   q.TechnicianID,
		WorkOrderID:    q.WorkOrderID,
		MaterialID:     q.MaterialID,
		HasDiscrepancy: q.HasDiscrepancy,
		Resolved:       q.Resolved,
		Limit:          q.Limit,
		Offset:         q.Offset,
	}
	if q.Status != "" {
		filter.Statuses = []string{q.Status}
	}
	list, err := uc.controls.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := lo.Map(list, func(c *entity.MaterialControl, _ int) dto.MaterialControlResponse {
		return *uc.toResponse(ctx, c)
	})
	return &dto.MaterialControlListResponse{
		Items: items,
		Page:  q.Page(len(list)),
	}, nil
}

// lockControl obtiene el control con bloqueo dentro de la transacción.
func lockControl(ctx context.Context, repos repository.TxRepos, id string) (*entity.MaterialControl, error) {
	c, err := repos.Controls.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFoundf("control %s", id)
	}
	return c, nil
}

func (uc *MaterialControlUseCase) toResponse(ctx context.Context, c *entity.MaterialControl) *dto.MaterialControlResponse {
	names := make(map[string]string, len(c.Items))
	lines := lo.Map(c.Items, func(l entity.AssignedMaterial, _ int) dto.AssignedMaterialResponse {
		name, ok := names[l.MaterialID]
		if !ok {
			if m, err := uc.materials.GetByID(ctx, l.MaterialID); err == nil && m != nil {
				name = m.Name
			}
			names[l.MaterialID] = name
		}
		return dto.AssignedMaterialResponse{
			MaterialID:   l.MaterialID,
			MaterialName: name,
			AssignedQty:  l.AssignedQty,
			UsedQty:      l.UsedQty,
			ReturnedQty:  l.ReturnedQty,
			LostQty:      l.LostQty,
			LossReason:   l.LossReason,
			Status:       l.Status,
		}
	})
	return &dto.MaterialControlResponse{
		ID:                  c.ID,
		TechnicianID:        c.TechnicianID,
		WorkOrderID:         c.WorkOrderID,
		JobType:             c.JobType,
		Materials:           lines,
		AssignedAt:          c.AssignedAt,
		WorkStartedAt:       c.WorkStartedAt,
		WorkFinishedAt:      c.WorkFinishedAt,
		ReturnedAt:          c.ReturnedAt,
		Status:              c.Status,
		AssignedBy:          c.AssignedBy,
		SupervisorID:        c.SupervisorID,
		Notes:               c.Notes,
		HasDiscrepancy:      c.HasDiscrepancy,
		DiscrepancyReason:   c.DiscrepancyReason,
		DiscrepancyValue:    c.DiscrepancyValue,
		DiscrepancyResolved: c.DiscrepancyResolved,
		ResolvedAt:          c.ResolvedAt,
		ResolvedBy:          c.ResolvedBy,
		ResolutionNotes:     c.ResolutionNotes,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}
