// Package request implementa el flujo de solicitudes de materiales de los técnicos.
// Aprobar o entregar una solicitud no mueve stock; la entrega física se registra
// con una asignación de materiales aparte.
package request

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/audit"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/dto"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/ports"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Suggester fuente de sugerencias de consumo para solicitudes automáticas.
type Suggester interface {
	Suggest(ctx context.Context, jobType string, safetyFactor *float64) ([]dto.MaterialSuggestionDTO, error)
	Qualified(list []dto.MaterialSuggestionDTO) []dto.MaterialSuggestionDTO
}

// MaterialRequestUseCase casos de uso de solicitudes de materiales.
type MaterialRequestUseCase struct {
	txRunner  ports.TxRunner
	requests  repository.MaterialRequestRepository
	suggester Suggester
	notifier  ports.Notifier
	log       zerolog.Logger
	now       func() time.Time
}

// NewMaterialRequestUseCase construye el caso de uso.
func NewMaterialRequestUseCase(
	txRunner ports.TxRunner,
	requests repository.MaterialRequestRepository,
	suggester Suggester,
	notifier ports.Notifier,
	log zerolog.Logger,
) *MaterialRequestUseCase {
	return &MaterialRequestUseCase{
		txRunner:  txRunner,
		requests:  requests,
		suggester: suggester,
		notifier:  notifier,
		log:       log.With().Str("component", "material_request").Logger(),
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (pruebas).
func (uc *MaterialRequestUseCase) WithClock(now func() time.Time) *MaterialRequestUseCase {
	uc.now = now
	return uc
}

// Create registra una solicitud manual. Un técnico solo solicita para sí mismo.
func (uc *MaterialRequestUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateMaterialRequestRequest) (*dto.MaterialRequestResponse, error) {
	technicianID, err := requester(actor, in.TechnicianID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Reason) == "" {
		return nil, domain.NewValidationError("motivo", "requerido")
	}
	if len(in.Materials) == 0 {
		return nil, domain.NewValidationError("materiales", "se requiere al menos un material")
	}
	seen := make(map[string]bool, len(in.Materials))
	for _, l := range in.Materials {
		if seen[l.MaterialID] {
			return nil, domain.NewValidationError("materiales", "material repetido: "+l.MaterialID)
		}
		seen[l.MaterialID] = true
		if !l.Quantity.IsPositive() {
			return nil, domain.NewValidationError("cantidad_solicitada", "la cantidad debe ser mayor que cero")
		}
	}
	items := lo.Map(in.Materials, func(l dto.RequestLine, _ int) entity.RequestedMaterial {
		return entity.RequestedMaterial{
			MaterialID:       l.MaterialID,
			RequestedQty:     l.Quantity,
			ApprovedQty:      decimal.Zero,
			Reason:           l.Reason,
			EstimatedJobType: l.EstimatedJobType,
		}
	})
	return uc.create(ctx, actor, technicianID, strings.TrimSpace(in.Reason), items, false)
}

// CreateFromSuggestions arma una solicitud con las sugerencias de consumo aptas para el tipo de trabajo.
func (uc *MaterialRequestUseCase) CreateFromSuggestions(ctx context.Context, actor entity.Actor, in dto.SuggestedRequestRequest) (*dto.MaterialRequestResponse, error) {
	technicianID, err := requester(actor, in.TechnicianID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.JobType) == "" {
		return nil, domain.NewValidationError("tipo_trabajo", "requerido")
	}
	all, err := uc.suggester.Suggest(ctx, in.JobType, in.SafetyFactor)
	if err != nil {
		return nil, err
	}
	picked := uc.suggester.Qualified(all)
	if len(picked) == 0 {
		return nil, domain.NewValidationError("tipo_trabajo",
			"no hay sugerencias con confianza suficiente para "+in.JobType)
	}
	items := lo.Map(picked, func(s dto.MaterialSuggestionDTO, _ int) entity.RequestedMaterial {
		return entity.RequestedMaterial{
			MaterialID:   s.MaterialID,
			RequestedQty: s.SuggestedQty,
			ApprovedQty:  decimal.Zero,
			Reason: fmt.Sprintf("sugerido: promedio %.2f en %d trabajos, confianza %.0f%%",
				s.AverageQty, s.TotalJobs, s.Confidence*100),
			EstimatedJobType: in.JobType,
		}
	})
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		reason = "solicitud sugerida para " + in.JobType
	}
	return uc.create(ctx, actor, technicianID, reason, items, true)
}

func (uc *MaterialRequestUseCase) create(
	ctx context.Context,
	actor entity.Actor,
	technicianID, reason string,
	items []entity.RequestedMaterial,
	suggested bool,
) (*dto.MaterialRequestResponse, error) {
	now := uc.now()
	req := &entity.MaterialRequest{
		ID:           uuid.New().String(),
		TechnicianID: technicianID,
		RequestedAt:  now,
		Status:       entity.RequestStatusPending,
		Items:        items,
		Reason:       reason,
		AISuggested:  suggested,
		UpdatedAt:    now,
	}
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		for _, it := range items {
			mat, err := repos.Materials.GetByID(ctx, it.MaterialID)
			if err != nil {
				return err
			}
			if mat == nil {
				return domain.NotFoundf("material %s", it.MaterialID)
			}
			if !mat.IsActive() {
				return domain.NewValidationError("material_id", "el material "+mat.Name+" está inactivo")
			}
		}
		if err := repos.Requests.Create(ctx, req); err != nil {
			return fmt.Errorf("crear solicitud: %w", err)
		}
		return audit.Record(ctx, repos.Audit, actor.ID, entity.AuditRequestCreated, reason,
			map[string]any{
				"solicitud_id":     req.ID,
				"tecnico_id":       technicianID,
				"es_sugerencia_ia": suggested,
			}, now)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("solicitud_id", req.ID).Str("tecnico_id", technicianID).
		Bool("sugerida", suggested).Msg("solicitud creada")
	return toResponse(req), nil
}

// Approve aprueba una solicitud pendiente. Sin líneas en la entrada se aprueba lo solicitado.
func (uc *MaterialRequestUseCase) Approve(ctx context.Context, actor entity.Actor, id string, in dto.ApproveRequestRequest) (*dto.MaterialRequestResponse, error) {
	if !actor.HasRole(entity.RoleBodeguero, entity.RoleAnalyst, entity.RoleAdmin) {
		return nil, domain.Forbiddenf("rol %s no puede aprobar solicitudes", actor.Role)
	}
	overrides := make(map[string]decimal.Decimal, len(in.Materials))
	for _, l := range in.Materials {
		if l.ApprovedQty.IsNegative() {
			return nil, domain.NewValidationError("cantidad_aprobada", "no puede ser negativa")
		}
		overrides[l.MaterialID] = l.ApprovedQty
	}
	return uc.transition(ctx, actor, id, entity.AuditRequestApproved, func(r *entity.MaterialRequest, now time.Time) error {
		if r.Status != entity.RequestStatusPending {
			return domain.InvalidStatef("solo se aprueban solicitudes pendientes (estado %s)", r.Status)
		}
		for materialID := range overrides {
			if !lo.ContainsBy(r.Items, func(it entity.RequestedMaterial) bool { return it.MaterialID == materialID }) {
				return domain.NotFoundf("el material %s no está en la solicitud %s", materialID, r.ID)
			}
		}
		for i := range r.Items {
			it := &r.Items[i]
			if q, ok := overrides[it.MaterialID]; ok {
				it.ApprovedQty = q
			} else {
				it.ApprovedQty = it.RequestedQty
			}
		}
		r.Status = entity.RequestStatusApproved
		r.ApprovedBy = actor.ID
		r.ApprovedAt = &now
		return nil
	}, func(r *entity.MaterialRequest, now time.Time) ports.Notification {
		return ports.Notification{
			Event:       ports.EventRequestApproved,
			RecipientID: r.TechnicianID,
			Message:     "Tu solicitud de materiales fue aprobada",
			Data:        map[string]any{"solicitud_id": r.ID, "aprobado_por": actor.ID},
			CreatedAt:   now,
		}
	})
}

// Reject rechaza una solicitud pendiente con un motivo obligatorio.
func (uc *MaterialRequestUseCase) Reject(ctx context.Context, actor entity.Actor, id string, in dto.RejectRequestRequest) (*dto.MaterialRequestResponse, error) {
	if !actor.HasRole(entity.RoleBodeguero, entity.RoleAnalyst, entity.RoleAdmin) {
		return nil, domain.Forbiddenf("rol %s no puede rechazar solicitudes", actor.Role)
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, domain.NewValidationError("motivo_rechazo", "requerido")
	}
	return uc.transition(ctx, actor, id, entity.AuditRequestRejected, func(r *entity.MaterialRequest, _ time.Time) error {
		if r.Status != entity.RequestStatusPending {
			return domain.InvalidStatef("solo se rechazan solicitudes pendientes (estado %s)", r.Status)
		}
		r.Status = entity.RequestStatusRejected
		r.RejectedBy = actor.ID
		r.RejectionReason = reason
		return nil
	}, func(r *entity.MaterialRequest, now time.Time) ports.Notification {
		return ports.Notification{
			Event:       ports.EventRequestRejected,
			RecipientID: r.TechnicianID,
			Message:     "Tu solicitud de materiales fue rechazada: " + reason,
			Data:        map[string]any{"solicitud_id": r.ID, "motivo_rechazo": reason},
			CreatedAt:   now,
		}
	})
}

// Deliver marca como entregada una solicitud aprobada.
func (uc *MaterialRequestUseCase) Deliver(ctx context.Context, actor entity.Actor, id string) (*dto.MaterialRequestResponse, error) {
	if !actor.HasRole(entity.RoleBodeguero, entity.RoleAdmin) {
		return nil, domain.Forbiddenf("rol %s no puede entregar solicitudes", actor.Role)
	}
	return uc.transition(ctx, actor, id, entity.AuditRequestDelivered, func(r *entity.MaterialRequest, now time.Time) error {
		if r.Status != entity.RequestStatusApproved {
			return domain.InvalidStatef("solo se entregan solicitudes aprobadas (estado %s)", r.Status)
		}
		r.Status = entity.RequestStatusDelivered
		r.DeliveredBy = actor.ID
		r.DeliveredAt = &now
		return nil
	}, nil)
}

// Get devuelve una solicitud. Un técnico solo ve las suyas.
func (uc *MaterialRequestUseCase) Get(ctx context.Context, actor entity.Actor, id string) (*dto.MaterialRequestResponse, error) {
	r, err := uc.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.NotFoundf("solicitud %s", id)
	}
	if actor.Role == entity.RoleTechnician && r.TechnicianID != actor.ID {
		return nil, domain.Forbiddenf("la solicitud %s no pertenece al técnico %s", id, actor.ID)
	}
	return toResponse(r), nil
}

// List consulta solicitudes. Para un técnico se fijan sus propias solicitudes.
func (uc *MaterialRequestUseCase) List(ctx context.Context, actor entity.Actor, q dto.RequestQuery) (*dto.MaterialRequestListResponse, error) {
	q.DefaultPage()
	if actor.Role == entity.RoleTechnician {
		q.TechnicianID = actor.ID
	}
	list, err := uc.requests.List(ctx, repository.RequestFilter{
		TechnicianID: q.TechnicianID,
		Status:       q.Status,
		Limit:        q.Limit,
		Offset:       q.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &dto.MaterialRequestListResponse{
		Items: lo.Map(list, func(r *entity.MaterialRequest, _ int) dto.MaterialRequestResponse { return *toResponse(r) }),
		Page:  q.Page(len(list)),
	}, nil
}

// transition aplica un cambio de estado bajo bloqueo y publica la notificación tras el commit.
func (uc *MaterialRequestUseCase) transition(
	ctx context.Context,
	actor entity.Actor,
	id, action string,
	apply func(r *entity.MaterialRequest, now time.Time) error,
	notify func(r *entity.MaterialRequest, now time.Time) ports.Notification,
) (*dto.MaterialRequestResponse, error) {
	now := uc.now()
	var out *entity.MaterialRequest
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		r, err := repos.Requests.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if r == nil {
			return domain.NotFoundf("solicitud %s", id)
		}
		if err := apply(r, now); err != nil {
			return err
		}
		r.UpdatedAt = now
		if err := repos.Requests.Update(ctx, r); err != nil {
			return fmt.Errorf("actualizar solicitud: %w", err)
		}
		out = r
		return audit.Record(ctx, repos.Audit, actor.ID, action, "solicitud "+r.ID,
			map[string]any{"solicitud_id": r.ID, "estado": r.Status}, now)
	})
	if err != nil {
		return nil, err
	}
	if notify != nil {
		ports.NotifyBestEffort(ctx, uc.log, uc.notifier, notify(out, now))
	}
	uc.log.Info().Str("solicitud_id", id).Str("estado", out.Status).Msg("solicitud actualizada")
	return toResponse(out), nil
}

// requester resuelve para qué técnico es la solicitud.
func requester(actor entity.Actor, technicianID string) (string, error) {
	if actor.Role == entity.RoleTechnician {
		if technicianID != "" && technicianID != actor.ID {
			return "", domain.Forbiddenf("el técnico %s no puede solicitar para %s", actor.ID, technicianID)
		}
		return actor.ID, nil
	}
	if !actor.HasRole(entity.RoleBodeguero, entity.RoleAdmin) {
		return "", domain.Forbiddenf("rol %s no puede crear solicitudes", actor.Role)
	}
	if strings.TrimSpace(technicianID) == "" {
		return "", domain.NewValidationError("tecnico_id", "requerido")
	}
	return technicianID, nil
}

func toResponse(r *entity.MaterialRequest) *dto.MaterialRequestResponse {
	return &dto.MaterialRequestResponse{
		ID:           r.ID,
		TechnicianID: r.TechnicianID,
		RequestedAt:  r.RequestedAt,
		Status:       r.Status,
		Materials: lo.Map(r.Items, func(it entity.RequestedMaterial, _ int) dto.RequestedMaterialResponse {
			return dto.RequestedMaterialResponse{
				MaterialID:       it.MaterialID,
				RequestedQty:     it.RequestedQty,
				ApprovedQty:      it.ApprovedQty,
				Reason:           it.Reason,
				EstimatedJobType: it.EstimatedJobType,
			}
		}),
		Reason:          r.Reason,
		AISuggested:     r.AISuggested,
		ApprovedBy:      r.ApprovedBy,
		ApprovedAt:      r.ApprovedAt,
		RejectedBy:      r.RejectedBy,
		RejectionReason: r.RejectionReason,
		DeliveredBy:     r.DeliveredBy,
		DeliveredAt:     r.DeliveredAt,
	}
}
