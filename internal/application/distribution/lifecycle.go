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
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/pkg/numfmt"
	"github.com/shopspring/decimal"
)

// StartWork marca el inicio del trabajo: lo apartado de cada línea pasa a consumido.
func (uc *MaterialControlUseCase) StartWork(ctx context.Context, actor entity.Actor, id string) (*dto.MaterialControlResponse, error) {
	now := uc.now()
	var control *entity.MaterialControl
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		c, err := lockControl(ctx, repos, id)
		if err != nil {
			return err
		}
		if c.TechnicianID != actor.ID {
			return domain.Forbiddenf("el control %s no pertenece al técnico %s", id, actor.ID)
		}
		if c.Status != entity.ControlStatusAssigned {
			return domain.InvalidStatef("no se puede iniciar trabajo con el control en estado %s", c.Status)
		}
		t := uc.ledger.InTx(repos, now)
		for i := range c.Items {
			line := &c.Items[i]
			if _, err := t.CommitToUse(ctx, ledger.MovementInput{
				TechnicianID: c.TechnicianID,
				MaterialID:   line.MaterialID,
				Quantity:     line.AssignedQty,
				Reason:       "inicio de trabajo control " + c.ID,
				Origin:       controlOrigin(c),
				OriginRefID:  controlRef(c),
				UserID:       actor.ID,
			}); err != nil {
				return err
			}
			line.Status = entity.LineStatusInUse
		}
		c.Status = entity.ControlStatusInProgress
		c.WorkStartedAt = &now
		c.UpdatedAt = now
		if err := repos.Controls.Update(ctx, c); err != nil {
			return fmt.Errorf("actualizar control: %w", err)
		}
		control = c
		return audit.Record(ctx, repos.Audit, actor.ID, entity.AuditWorkStarted,
			"inicio de trabajo", map[string]any{"control_id": c.ID}, now)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("control_id", id).Msg("trabajo iniciado")
	return uc.toResponse(ctx, control), nil
}

// CompleteWork registra el fin del trabajo en campo; la devolución queda pendiente.
func (uc *MaterialControlUseCase) CompleteWork(ctx context.Context, actor entity.Actor, id string) (*dto.MaterialControlResponse, error) {
	now := uc.now()
	var control *entity.MaterialControl
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		c, err := lockControl(ctx, repos, id)
		if err != nil {
			return err
		}
		if c.TechnicianID != actor.ID {
			return domain.Forbiddenf("el control %s no pertenece al técnico %s", id, actor.ID)
		}
		if c.Status != entity.ControlStatusInProgress {
			return domain.InvalidStatef("no se puede finalizar trabajo con el control en estado %s", c.Status)
		}
		c.Status = entity.ControlStatusWorkCompleted
		c.WorkFinishedAt = &now
		c.UpdatedAt = now
		if err := repos.Controls.Update(ctx, c); err != nil {
			return fmt.Errorf("actualizar control: %w", err)
		}
		control = c
		return audit.Record(ctx, repos.Audit, actor.ID, entity.AuditWorkCompleted,
			"fin de trabajo", map[string]any{"control_id": c.ID}, now)
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, control), nil
}

// Return registra lo utilizado, devuelto y perdido de cada línea, acredita lo devuelto
// y calcula el descuadre. Todas las líneas asignadas deben reportarse en una sola llamada.
func (uc *MaterialControlUseCase) Return(ctx context.Context, actor entity.Actor, id string, in dto.ReturnMaterialsRequest) (*dto.MaterialControlResponse, error) {
	now := uc.now()
	var control *entity.MaterialControl
	var alerts []ports.Notification
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		c, err := lockControl(ctx, repos, id)
		if err != nil {
			return err
		}
		if c.TechnicianID != actor.ID {
			return domain.Forbiddenf("el control %s no pertenece al técnico %s", id, actor.ID)
		}
		if c.Status != entity.ControlStatusInProgress && c.Status != entity.ControlStatusWorkCompleted {
			return domain.InvalidStatef("no se puede devolver material con el control en estado %s", c.Status)
		}
		if err := validateReturn(c, in.Materials); err != nil {
			return err
		}

		t := uc.ledger.InTx(repos, now)
		var reasons []string
		total := decimal.Zero
		lines := slices.Clone(in.Materials)
		slices.SortFunc(lines, func(a, b dto.ReturnLine) int { return strings.Compare(a.MaterialID, b.MaterialID) })
		for _, r := range lines {
			line := c.Line(r.MaterialID)
			mat, err := t.Material(ctx, r.MaterialID)
			if err != nil {
				return err
			}
			line.UsedQty = r.UsedQty
			line.ReturnedQty = r.ReturnedQty
			line.LostQty = r.LostQty
			line.LossReason = strings.TrimSpace(r.LossReason)
			line.Status = inventory.LineStatusAfterReturn(line.AssignedQty, line.ReturnedQty)

			accounted := line.Accounted()
			if !accounted.Equal(line.AssignedQty) {
				value := inventory.DiscrepancyValue(line.AssignedQty, accounted, mat.UnitCost)
				total = total.Add(value)
				reasons = append(reasons, discrepancyReason(mat, line.AssignedQty, accounted, value))
			}
			if r.ReturnedQty.IsPositive() {
				if _, err := t.ReturnMaterial(ctx, ledger.MovementInput{
					TechnicianID: c.TechnicianID,
					MaterialID:   r.MaterialID,
					Quantity:     r.ReturnedQty,
					Reason:       "devolución control " + c.ID,
					Origin:       controlOrigin(c),
					OriginRefID:  controlRef(c),
					UserID:       actor.ID,
				}); err != nil {
					return err
				}
			}
		}

		if len(reasons) > 0 {
			c.HasDiscrepancy = true
			c.DiscrepancyReason = strings.Join(reasons, "; ")
			c.DiscrepancyValue = total
		}
		if c.WorkFinishedAt == nil {
			c.WorkFinishedAt = &now
		}
		c.ReturnedAt = &now
		c.Status = entity.ControlStatusReturnComplete
		if notes := strings.TrimSpace(in.Notes); notes != "" {
			c.Notes = joinNotes(c.Notes, notes)
		}
		c.UpdatedAt = now
		if err := repos.Controls.Update(ctx, c); err != nil {
			return fmt.Errorf("actualizar control: %w", err)
		}
		control = c
		alerts = t.Alerts()
		return audit.Record(ctx, repos.Audit, actor.ID, entity.AuditMaterialReturned,
			"devolución de materiales",
			map[string]any{
				"control_id":      c.ID,
				"tiene_descuadre": c.HasDiscrepancy,
				"valor_descuadre": c.DiscrepancyValue.String(),
			}, now)
	})
	if err != nil {
		return nil, err
	}

	if control.HasDiscrepancy {
		alerts = append(alerts, ports.Notification{
			Event:   ports.EventDiscrepancyCreated,
			Message: fmt.Sprintf("Descuadre en el control %s por %s", control.ID, numfmt.Money(control.DiscrepancyValue)),
			Data: map[string]any{
				"control_id":      control.ID,
				"tecnico_id":      control.TechnicianID,
				"valor_descuadre": control.DiscrepancyValue.String(),
			},
			CreatedAt: now,
		})
		uc.log.Warn().Str("control_id", control.ID).Str("valor", control.DiscrepancyValue.String()).
			Msg("devolución con descuadre")
	}
	uc.ledger.Publish(ctx, alerts)
	uc.learn(ctx, control)
	return uc.toResponse(ctx, control), nil
}

// Resolve marca como resuelto el descuadre de un control y lo cierra.
func (uc *MaterialControlUseCase) Resolve(ctx context.Context, actor entity.Actor, id string, in dto.ResolveDiscrepancyRequest) (*dto.MaterialControlResponse, error) {
	if !actor.HasRole(entity.RoleAnalyst, entity.RoleAdmin) {
		return nil, domain.Forbiddenf("rol %s no puede resolver descuadres", actor.Role)
	}
	now := uc.now()
	var control *entity.MaterialControl
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		c, err := lockControl(ctx, repos, id)
		if err != nil {
			return err
		}
		if c.Status != entity.ControlStatusReturnComplete || !c.HasDiscrepancy || c.DiscrepancyResolved {
			return domain.InvalidStatef("el control %s no tiene un descuadre pendiente", id)
		}
		c.DiscrepancyResolved = true
		c.ResolvedAt = &now
		c.ResolvedBy = actor.ID
		c.SupervisorID = actor.ID
		c.ResolutionNotes = strings.TrimSpace(in.Notes)
		c.Status = entity.ControlStatusClosed
		c.UpdatedAt = now
		if err := repos.Controls.Update(ctx, c); err != nil {
			return fmt.Errorf("actualizar control: %w", err)
		}
		control = c
		return audit.Record(ctx, repos.Audit, actor.ID, entity.AuditDiscrepancyResolved,
			c.ResolutionNotes,
			map[string]any{
				"control_id":      c.ID,
				"valor_descuadre": c.DiscrepancyValue.String(),
			}, now)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("control_id", id).Str("resuelto_por", actor.ID).Msg("descuadre resuelto")
	return uc.toResponse(ctx, control), nil
}

// Close cierra un control devuelto sin descuadre.
func (uc *MaterialControlUseCase) Close(ctx context.Context, actor entity.Actor, id string, in dto.CloseControlRequest) (*dto.MaterialControlResponse, error) {
	if !actor.HasRole(entity.RoleAnalyst, entity.RoleBodeguero, entity.RoleAdmin) {
		return nil, domain.Forbiddenf("rol %s no puede cerrar controles", actor.Role)
	}
	now := uc.now()
	var control *entity.MaterialControl
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		c, err := lockControl(ctx, repos, id)
		if err != nil {
			return err
		}
		if c.Status != entity.ControlStatusReturnComplete {
			return domain.InvalidStatef("no se puede cerrar el control en estado %s", c.Status)
		}
		if c.HasDiscrepancy {
			return domain.InvalidStatef("el control %s tiene un descuadre; debe resolverse", id)
		}
		c.Status = entity.ControlStatusClosed
		if notes := strings.TrimSpace(in.Notes); notes != "" {
			c.Notes = joinNotes(c.Notes, notes)
		}
		c.UpdatedAt = now
		if err := repos.Controls.Update(ctx, c); err != nil {
			return fmt.Errorf("actualizar control: %w", err)
		}
		control = c
		return audit.Record(ctx, repos.Audit, actor.ID, entity.AuditControlClosed,
			"cierre de control", map[string]any{"control_id": c.ID}, now)
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, control), nil
}

// learn alimenta los patrones de consumo con lo utilizado. Los errores solo se registran.
func (uc *MaterialControlUseCase) learn(ctx context.Context, c *entity.MaterialControl) {
	if uc.learner == nil || c.JobType == "" {
		return
	}
	for _, line := range c.Items {
		if !line.UsedQty.IsPositive() {
			continue
		}
		used := line.UsedQty.InexactFloat64()
		if an, err := uc.learner.CheckAnomaly(ctx, c.JobType, line.MaterialID, used); err != nil {
			uc.log.Warn().Err(err).Str("material_id", line.MaterialID).Msg("no se pudo evaluar anomalía")
		} else if an != nil && an.Anomalous {
			uc.log.Warn().Str("control_id", c.ID).Str("tipo_trabajo", c.JobType).
				Str("material_id", line.MaterialID).Float64("utilizado", used).
				Float64("promedio", an.AverageQty).Msg("consumo anómalo")
		}
		if _, err := uc.learner.Record(ctx, c.JobType, line.MaterialID, used); err != nil {
			uc.log.Warn().Err(err).Str("material_id", line.MaterialID).Msg("no se pudo registrar consumo")
		}
	}
}

// validateReturn exige exactamente una línea por material asignado, sin cantidades negativas
// ni devoluciones mayores que lo asignado.
func validateReturn(c *entity.MaterialControl, lines []dto.ReturnLine) error {
	if len(lines) == 0 {
		return domain.NewValidationError("materiales", "se requiere al menos un material")
	}
	seen := make(map[string]bool, len(lines))
	for _, r := range lines {
		if seen[r.MaterialID] {
			return domain.NewValidationError("materiales", "material repetido: "+r.MaterialID)
		}
		seen[r.MaterialID] = true
		line := c.Line(r.MaterialID)
		if line == nil {
			return domain.NotFoundf("el material %s no pertenece al control %s", r.MaterialID, c.ID)
		}
		if r.UsedQty.IsNegative() || r.ReturnedQty.IsNegative() || r.LostQty.IsNegative() {
			return domain.NewValidationError("cantidad", "las cantidades no pueden ser negativas")
		}
		for _, err := range []error{
			inventory.CheckQuantityScale("cantidad_utilizada", r.UsedQty),
			inventory.CheckQuantityScale("cantidad_devuelta", r.ReturnedQty),
			inventory.CheckQuantityScale("cantidad_perdida", r.LostQty),
		} {
			if err != nil {
				return err
			}
		}
		if r.ReturnedQty.GreaterThan(line.AssignedQty) {
			return domain.NewValidationError("cantidad_devuelta", fmt.Sprintf(
				"%s: se devuelven %s y solo se asignaron %s", r.MaterialID, r.ReturnedQty.String(), line.AssignedQty.String()))
		}
	}
	for _, line := range c.Items {
		if !seen[line.MaterialID] {
			return domain.NewValidationError("materiales", "falta reportar el material "+line.MaterialID)
		}
	}
	return nil
}

func discrepancyReason(mat *entity.Material, assigned, accounted, value decimal.Decimal) string {
	kind := "faltante"
	diff := assigned.Sub(accounted)
	if diff.IsNegative() {
		kind = "sobrante"
		diff = diff.Neg()
	}
	return fmt.Sprintf("%s: asignado %s, reportado %s (%s %s %s, %s)",
		mat.Name, numfmt.Quantity(assigned), numfmt.Quantity(accounted),
		kind, numfmt.Quantity(diff), mat.UnitMeasure, numfmt.Money(value))
}

func controlOrigin(c *entity.MaterialControl) string {
	if c.WorkOrderID != nil {
		return entity.OriginWorkOrder
	}
	return entity.OriginManual
}

func controlRef(c *entity.MaterialControl) string {
	if c.WorkOrderID != nil {
		return *c.WorkOrderID
	}
	return c.ID
}

func joinNotes(current, extra string) string {
	if current == "" {
		return extra
	}
	return current + "\n" + extra
}
