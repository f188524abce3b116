package repository

import (
	"context"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
)

// AuditLogRepository registro de auditoría append-only.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *entity.AuditLog) error
}
