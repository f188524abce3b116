package memory

import (
	"context"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo auditoría en memoria (solo escritura).
type AuditLogRepo struct {
	access accessor
}

func (r *AuditLogRepo) Create(_ context.Context, e *entity.AuditLog) error {
	return r.access(func(st *state) error {
		st.audit = append(st.audit, *e)
		return nil
	})
}
