package repository

import (
	"context"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
)

// RequestFilter filtros de listado de solicitudes.
type RequestFilter struct {
	TechnicianID string
	Status       string
	Limit        int
	Offset       int
}

// MaterialRequestRepository define el puerto de persistencia de solicitudes de material.
type MaterialRequestRepository interface {
	Create(ctx context.Context, request *entity.MaterialRequest) error
	GetByID(ctx context.Context, id string) (*entity.MaterialRequest, error)
	GetForUpdate(ctx context.Context, id string) (*entity.MaterialRequest, error)
	Update(ctx context.Context, request *entity.MaterialRequest) error
	List(ctx context.Context, filter RequestFilter) ([]*entity.MaterialRequest, error)
}
