package usecase

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
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/inventory"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// CacheInvalidator descarta la copia en caché de un material tras modificarlo.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, id string)
}

// MaterialUseCase casos de uso CRUD del catálogo de materiales. No hay borrado: se inactiva.
type MaterialUseCase struct {
	txRunner ports.TxRunner
	repo     repository.MaterialRepository
	cache    CacheInvalidator
}

// NewMaterialUseCase construye el caso de uso. cache puede ser nil.
func NewMaterialUseCase(txRunner ports.TxRunner, repo repository.MaterialRepository, cache CacheInvalidator) *MaterialUseCase {
	return &MaterialUseCase{txRunner: txRunner, repo: repo, cache: cache}
}

// Create crea un material activo.
func (uc *MaterialUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	if !actor.HasRole(entity.RoleBodeguero, entity.RoleAdmin) {
		return nil, domain.Forbiddenf("rol %s no puede crear materiales", actor.Role)
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.NewValidationError("nombre", "requerido")
	}
	if in.UnitCost.IsNegative() || in.MinimumStock.IsNegative() {
		return nil, domain.NewValidationError("costo_unitario", "los valores no pueden ser negativos")
	}
	if err := inventory.CheckQuantityScale("stock_minimo", in.MinimumStock); err != nil {
		return nil, err
	}
	now := time.Now()
	material := &entity.Material{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		UnitMeasure:  in.UnitMeasure,
		UnitCost:     in.UnitCost,
		Category:     in.Category,
		MinimumStock: in.MinimumStock,
		Status:       entity.MaterialStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		if err := repos.Materials.Create(ctx, material); err != nil {
			return err
		}
		return audit.Record(ctx, repos.Audit, actor.ID, entity.AuditMaterialCreated, material.Name,
			map[string]any{"material_id": material.ID}, now)
	})
	if err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// GetByID obtiene un material por ID.
func (uc *MaterialUseCase) GetByID(ctx context.Context, id string) (*dto.MaterialResponse, error) {
	material, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.NotFoundf("material %s", id)
	}
	return toMaterialResponse(material), nil
}

// Update actualiza un material. El costo nuevo solo afecta movimientos futuros.
func (uc *MaterialUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	if !actor.HasRole(entity.RoleBodeguero, entity.RoleAdmin) {
		return nil, domain.Forbiddenf("rol %s no puede modificar materiales", actor.Role)
	}
	now := time.Now()
	var material *entity.Material
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		m, err := repos.Materials.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.NotFoundf("material %s", id)
		}
		if in.Name != nil {
			m.Name = strings.TrimSpace(*in.Name)
		}
		if in.UnitMeasure != nil {
			m.UnitMeasure = *in.UnitMeasure
		}
		if in.UnitCost != nil {
			if in.UnitCost.IsNegative() {
				return domain.NewValidationError("costo_unitario", "no puede ser negativo")
			}
			m.UnitCost = *in.UnitCost
		}
		if in.Category != nil {
			m.Category = *in.Category
		}
		if in.MinimumStock != nil {
			if in.MinimumStock.IsNegative() {
				return domain.NewValidationError("stock_minimo", "no puede ser negativo")
			}
			if err := inventory.CheckQuantityScale("stock_minimo", *in.MinimumStock); err != nil {
				return err
			}
			m.MinimumStock = *in.MinimumStock
		}
		if in.Status != nil {
			if *in.Status != entity.MaterialStatusActive && *in.Status != entity.MaterialStatusInactive {
				return domain.NewValidationError("estado", "estado desconocido: "+*in.Status)
			}
			m.Status = *in.Status
		}
		m.UpdatedAt = now
		if err := repos.Materials.Update(ctx, m); err != nil {
			return fmt.Errorf("actualizar material: %w", err)
		}
		material = m
		return audit.Record(ctx, repos.Audit, actor.ID, entity.AuditMaterialUpdated, m.Name,
			map[string]any{
				"material_id":    m.ID,
				"costo_unitario": m.UnitCost.String(),
				"estado":         m.Status,
			}, now)
	})
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.Invalidate(ctx, id)
	}
	return toMaterialResponse(material), nil
}

// List lista materiales con filtros y paginación.
func (uc *MaterialUseCase) List(ctx context.Context, q dto.MaterialQuery) (*dto.MaterialListResponse, error) {
	q.DefaultPage()
	list, err := uc.repo.List(ctx, repository.MaterialFilter{
		Category: q.Category,
		Status:   q.Status,
		Limit:    q.Limit,
		Offset:   q.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &dto.MaterialListResponse{
		Items: lo.Map(list, func(m *entity.Material, _ int) dto.MaterialResponse { return *toMaterialResponse(m) }),
		Page:  q.Page(len(list)),
	}, nil
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	return &dto.MaterialResponse{
		ID:           m.ID,
		Name:         m.Name,
		UnitMeasure:  m.UnitMeasure,
		UnitCost:     m.UnitCost,
		Category:     m.Category,
		MinimumStock: m.MinimumStock,
		Status:       m.Status,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
