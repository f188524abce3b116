package repository

import (
	"context"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ControlFilter filtros de listado de controles de material.
type ControlFilter struct {
	TechnicianID   string
	WorkOrderID    string
	MaterialID     string
	Statuses       []string
	HasDiscrepancy *bool
	Resolved       *bool
	Limit          int
	Offset         int
}

// MaterialControlRepository define el puerto de persistencia de los controles de material.
// GetByID y GetForUpdate devuelven (nil, nil) si no existe.
type MaterialControlRepository interface {
	Create(ctx context.Context, control *entity.MaterialControl) error
	GetByID(ctx context.Context, id string) (*entity.MaterialControl, error)
	GetForUpdate(ctx context.Context, id string) (*entity.MaterialControl, error)
	Update(ctx context.Context, control *entity.MaterialControl) error
	List(ctx context.Context, filter ControlFilter) ([]*entity.MaterialControl, error)

	// SumUnresolvedDiscrepancy suma valor_descuadre de los controles con descuadre sin resolver.
	SumUnresolvedDiscrepancy(ctx context.Context) (decimal.Decimal, error)
	// CountByStatus cantidad de controles por estado_general.
	CountByStatus(ctx context.Context) (map[string]int, error)
}
