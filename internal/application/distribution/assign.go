package distribution

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/audit"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/dto"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/ledger"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/ports"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/inventory"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Assign entrega materiales a un técnico: valida todas las líneas contra el inventario
// bloqueado y después aparta cada una. Si una línea falla no se aparta nada.
func (uc *MaterialControlUseCase) Assign(ctx context.Context, actor entity.Actor, in dto.AssignMaterialsRequest) (*dto.MaterialControlResponse, error) {
	if !actor.HasRole(entity.RoleBodeguero, entity.RoleAdmin) {
		return nil, domain.Forbiddenf("rol %s no puede asignar materiales", actor.Role)
	}
	if strings.TrimSpace(in.TechnicianID) == "" {
		return nil, domain.NewValidationError("tecnico_id", "requerido")
	}
	lines, err := mergeAssignLines(in.Materials)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	var control *entity.MaterialControl
	var alerts []ports.Notification
	err = uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		t := uc.ledger.InTx(repos, now)
		inv, err := repos.Stock.LockInventory(ctx, in.TechnicianID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.NotFoundf("inventario del técnico %s", in.TechnicianID)
		}

		for _, l := range lines {
			mat, err := t.Material(ctx, l.MaterialID)
			if err != nil {
				return err
			}
			if !mat.IsActive() {
				return domain.NewValidationError("material_id", "el material "+mat.Name+" está inactivo")
			}
			available := decimal.Zero
			if row := inv.Find(l.MaterialID); row != nil {
				available = row.Available
			}
			if available.LessThan(l.Quantity) {
				return &domain.InsufficientStockError{
					MaterialID:   mat.ID,
					MaterialName: mat.Name,
					Requested:    l.Quantity,
					Available:    available,
				}
			}
		}

		control = &entity.MaterialControl{
			ID:               uuid.New().String(),
			TechnicianID:     in.TechnicianID,
			JobType:          strings.TrimSpace(in.JobType),
			AssignedAt:       now,
			Status:           entity.ControlStatusAssigned,
			AssignedBy:       actor.ID,
			Notes:            in.Notes,
			DiscrepancyValue: decimal.Zero,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		origin, ref := entity.OriginManual, control.ID
		if in.WorkOrderID != nil && strings.TrimSpace(*in.WorkOrderID) != "" {
			wo := strings.TrimSpace(*in.WorkOrderID)
			control.WorkOrderID = &wo
			origin, ref = entity.OriginWorkOrder, wo
		}

		for _, l := range lines {
			if _, err := t.Reserve(ctx, ledger.MovementInput{
				TechnicianID: in.TechnicianID,
				MaterialID:   l.MaterialID,
				Quantity:     l.Quantity,
				Reason:       "asignación control " + control.ID,
				Origin:       origin,
				OriginRefID:  ref,
				UserID:       actor.ID,
			}); err != nil {
				return err
			}
			control.Items = append(control.Items, entity.AssignedMaterial{
				MaterialID:  l.MaterialID,
				AssignedQty: l.Quantity,
				UsedQty:     decimal.Zero,
				ReturnedQty: decimal.Zero,
				LostQty:     decimal.Zero,
				Status:      entity.LineStatusPending,
			})
		}
		if err := repos.Controls.Create(ctx, control); err != nil {
			return fmt.Errorf("crear control: %w", err)
		}
		alerts = t.Alerts()
		return audit.Record(ctx, repos.Audit, actor.ID, entity.AuditMaterialAssigned,
			fmt.Sprintf("%d materiales asignados al técnico %s", len(lines), in.TechnicianID),
			map[string]any{
				"control_id":       control.ID,
				"tecnico_id":       control.TechnicianID,
				"orden_trabajo_id": control.WorkOrderID,
			}, now)
	})
	if err != nil {
		return nil, err
	}
	uc.ledger.Publish(ctx, alerts)
	uc.log.Info().Str("control_id", control.ID).Str("tecnico_id", control.TechnicianID).
		Int("lineas", len(control.Items)).Msg("materiales asignados")
	return uc.toResponse(ctx, control), nil
}

// mergeAssignLines suma las líneas repetidas de un mismo material y las ordena por material,
// que es el orden en que se bloquean las filas de stock.
func mergeAssignLines(in []dto.AssignLine) ([]dto.AssignLine, error) {
	if len(in) == 0 {
		return nil, domain.NewValidationError("materiales", "se requiere al menos un material")
	}
	out := make([]dto.AssignLine, 0, len(in))
	index := make(map[string]int, len(in))
	for _, l := range in {
		if l.MaterialID == "" {
			return nil, domain.NewValidationError("material_id", "requerido")
		}
		if !l.Quantity.IsPositive() {
			return nil, domain.NewValidationError("cantidad", "la cantidad debe ser mayor que cero")
		}
		if err := inventory.CheckQuantityScale("cantidad", l.Quantity); err != nil {
			return nil, err
		}
		if i, ok := index[l.MaterialID]; ok {
			out[i].Quantity = out[i].Quantity.Add(l.Quantity)
			continue
		}
		index[l.MaterialID] = len(out)
		out = append(out, l)
	}
	slices.SortFunc(out, func(a, b dto.AssignLine) int { return strings.Compare(a.MaterialID, b.MaterialID) })
	return out, nil
}
