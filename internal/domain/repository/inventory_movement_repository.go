package repository

import (
	"context"
	"time"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
)

// MovementFilter filtros del kardex. Campos vacíos no filtran.
type MovementFilter struct {
	TechnicianID string
	MaterialID   string
	Type         string
	Origin       string
	OriginRefID  string
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

// InventoryMovementRepository define el puerto de persistencia para movimientos de inventario.
// Los movimientos son append-only: no hay Update ni Delete.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.InventoryMovement, error)
}
