// Package audit escribe el registro de auditoría de las operaciones que mutan estado.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/repository"
	"github.com/google/uuid"
)

// Record agrega una entrada de auditoría usando el repositorio de la transacción en curso,
// de modo que la entrada y el cambio que describe se confirman juntos.
func Record(
	ctx context.Context,
	repo repository.AuditLogRepository,
	actorID, action, detail string,
	meta map[string]any,
	now time.Time,
) error {
	raw, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("audit meta: %w", err)
	}
	entry := &entity.AuditLog{
		ID:        uuid.New().String(),
		ActorID:   actorID,
		Action:    action,
		Detail:    detail,
		Meta:      raw,
		CreatedAt: now,
	}
	if err := repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("audit %s: %w", action, err)
	}
	return nil
}
