package postgres

import (
	"context"
	"fmt"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/repository"
	"github.com/google/uuid"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo auditoría append-only.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

func (r *AuditLogRepo) Create(ctx context.Context, e *entity.AuditLog) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	var meta any
	if len(e.Meta) > 0 {
		meta = string(e.Meta)
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO audit_logs (id, actor_id, action, detail, meta, created_at) VALUES ($1, $2, $3, $4, $5::jsonb, $6)`,
		e.ID, e.ActorID, e.Action, e.Detail, meta, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}
