package repository

import (
	"context"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
)

// ConsumptionPatternRepository persiste un patrón por (tipo_trabajo, material_id).
type ConsumptionPatternRepository interface {
	Get(ctx context.Context, jobType, materialID string) (*entity.ConsumptionPattern, error)
	// LockOrInit bloquea el patrón para serializar registros concurrentes. Si no existe lo crea
	// vacío (TotalJobs 0) dentro de la misma transacción, así el primer registro también se serializa.
	LockOrInit(ctx context.Context, jobType, materialID string) (*entity.ConsumptionPattern, error)
	Save(ctx context.Context, pattern *entity.ConsumptionPattern) error
	ListByJobType(ctx context.Context, jobType string) ([]*entity.ConsumptionPattern, error)
}
