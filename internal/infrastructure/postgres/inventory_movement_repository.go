package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/repository"
	"github.com/google/uuid"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo kardex append-only sobre PostgreSQL (usable con pool o tx).
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements (id, technician_id, material_id, type, quantity, unit_cost, reason, user_id, origin, origin_ref_id, policy_number, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.TechnicianID, m.MaterialID, m.Type, m.Quantity, m.UnitCost,
		m.Reason, m.UserID, m.Origin, m.OriginRefID, m.PolicyNumber, m.Date,
	)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// List consulta el kardex con filtros, más reciente primero.
func (r *InventoryMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	b := psql.
		Select("id", "technician_id", "material_id", "type", "quantity", "unit_cost", "reason",
			"user_id", "origin", "origin_ref_id", "policy_number", "date").
		From("inventory_movements").
		OrderBy("date DESC", "id")

	eq := sq.Eq{}
	if f.TechnicianID != "" {
		eq["technician_id"] = f.TechnicianID
	}
	if f.MaterialID != "" {
		eq["material_id"] = f.MaterialID
	}
	if f.Type != "" {
		eq["type"] = f.Type
	}
	if f.Origin != "" {
		eq["origin"] = f.Origin
	}
	if f.OriginRefID != "" {
		eq["origin_ref_id"] = f.OriginRefID
	}
	if len(eq) > 0 {
		b = b.Where(eq)
	}
	if f.From != nil {
		b = b.Where(sq.GtOrEq{"date": *f.From})
	}
	if f.To != nil {
		b = b.Where(sq.LtOrEq{"date": *f.To})
	}

	sqlStr, args, err := paginate(b, f.Limit, f.Offset).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(
			&m.ID, &m.TechnicianID, &m.MaterialID, &m.Type, &m.Quantity, &m.UnitCost, &m.Reason,
			&m.UserID, &m.Origin, &m.OriginRefID, &m.PolicyNumber, &m.Date,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
