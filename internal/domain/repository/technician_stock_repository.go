package repository

import (
	"context"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LowStockItem fila cruda para el reporte de stock bajo.
type LowStockItem struct {
	TechnicianID string
	MaterialID   string
	MaterialName string
	UnitMeasure  string
	Available    decimal.Decimal
	MinimumStock decimal.Decimal
	UnitCost     decimal.Decimal
}

// TechnicianStockRepository define el puerto del ledger de inventario por técnico.
//
// Las operaciones de mutación son atómicas y condicionales: si la guarda no se cumple
// no modifican nada y devuelven *domain.InsufficientStockError (o ErrNotFound si la fila
// no existe). Todas devuelven la fila resultante.
type TechnicianStockRepository interface {
	// EnsureInventory crea el inventario del técnico si aún no existe.
	EnsureInventory(ctx context.Context, technicianID string) error
	// GetInventory devuelve (nil, nil) si el técnico no tiene inventario.
	GetInventory(ctx context.Context, technicianID string) (*entity.TechnicianInventory, error)
	// LockInventory igual que GetInventory pero bloquea las filas (SELECT FOR UPDATE) en orden de material.
	LockInventory(ctx context.Context, technicianID string) (*entity.TechnicianInventory, error)
	// GetForUpdate devuelve (nil, nil) si la fila no existe.
	GetForUpdate(ctx context.Context, technicianID, materialID string) (*entity.TechnicianStock, error)

	Reserve(ctx context.Context, technicianID, materialID string, qty decimal.Decimal) (*entity.TechnicianStock, error)
	CommitToUse(ctx context.Context, technicianID, materialID string, qty decimal.Decimal) (*entity.TechnicianStock, error)
	// Credit suma a cantidad_actual y cantidad_disponible; crea la fila si no existe.
	Credit(ctx context.Context, technicianID, materialID string, qty decimal.Decimal) (*entity.TechnicianStock, error)
	Consume(ctx context.Context, technicianID, materialID string, qty decimal.Decimal) (*entity.TechnicianStock, error)
	// SetCounted fija cantidad_actual al conteo físico; falla si es menor que lo apartado.
	SetCounted(ctx context.Context, technicianID, materialID string, counted decimal.Decimal) (*entity.TechnicianStock, error)

	// ListBelowMinimum filas cuyo disponible es menor que el stock mínimo del material, mayor déficit primero.
	ListBelowMinimum(ctx context.Context, technicianID string) ([]LowStockItem, error)
}
