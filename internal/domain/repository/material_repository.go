package repository

import (
	"context"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
)

// MaterialFilter filtros opcionales del catálogo.
type MaterialFilter struct {
	Category string
	Status   string
	Limit    int
	Offset   int
}

// MaterialRepository define el puerto de persistencia del catálogo de materiales (DIP).
// GetByID devuelve (nil, nil) si el material no existe.
type MaterialRepository interface {
	Create(ctx context.Context, material *entity.Material) error
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	Update(ctx context.Context, material *entity.Material) error
	List(ctx context.Context, filter MaterialFilter) ([]*entity.Material, error)
}
