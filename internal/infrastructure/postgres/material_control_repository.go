package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/repository"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var _ repository.MaterialControlRepository = (*MaterialControlRepo)(nil)

var controlColumns = []string{
	"id", "technician_id", "work_order_id", "job_type", "items", "assigned_at", "work_started_at",
	"work_finished_at", "returned_at", "status", "assigned_by", "supervisor_id", "notes", "has_discrepancy",
	"discrepancy_reason", "discrepancy_value", "discrepancy_resolved", "resolved_at", "resolved_by",
	"resolution_notes", "created_at", "updated_at",
}

// MaterialControlRepo controles de material; las líneas viven en una columna JSONB del propio control.
type MaterialControlRepo struct {
	q Querier
}

// NewMaterialControlRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialControlRepository(q Querier) *MaterialControlRepo {
	return &MaterialControlRepo{q: q}
}

// Create persiste el control con sus líneas.
func (r *MaterialControlRepo) Create(ctx context.Context, c *entity.MaterialControl) error {
	items, err := json.Marshal(c.Items)
	if err != nil {
		return fmt.Errorf("marshal control items: %w", err)
	}
	sqlStr, args, err := psql.Insert("material_controls").
		Columns(controlColumns...).
		Values(
			c.ID, c.TechnicianID, nullString(c.WorkOrderID), c.JobType, string(items), c.AssignedAt, c.WorkStartedAt,
			c.WorkFinishedAt, c.ReturnedAt, c.Status, c.AssignedBy, c.SupervisorID, c.Notes, c.HasDiscrepancy,
			c.DiscrepancyReason, c.DiscrepancyValue, c.DiscrepancyResolved, c.ResolvedAt, c.ResolvedBy,
			c.ResolutionNotes, c.CreatedAt, c.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, sqlStr, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material control: %w", err)
	}
	return nil
}

// GetByID obtiene el control; (nil, nil) si no existe.
func (r *MaterialControlRepo) GetByID(ctx context.Context, id string) (*entity.MaterialControl, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate obtiene el control y bloquea su fila hasta el fin de la transacción.
func (r *MaterialControlRepo) GetForUpdate(ctx context.Context, id string) (*entity.MaterialControl, error) {
	return r.get(ctx, id, true)
}

func (r *MaterialControlRepo) get(ctx context.Context, id string, lock bool) (*entity.MaterialControl, error) {
	b := psql.Select(controlColumns...).From("material_controls").Where(sq.Eq{"id": id})
	if lock {
		b = b.Suffix("FOR UPDATE")
	}
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	c, err := scanControl(r.q.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material control: %w", err)
	}
	return c, nil
}

// Update reescribe el estado completo del control.
func (r *MaterialControlRepo) Update(ctx context.Context, c *entity.MaterialControl) error {
	items, err := json.Marshal(c.Items)
	if err != nil {
		return fmt.Errorf("marshal control items: %w", err)
	}
	sqlStr, args, err := psql.Update("material_controls").
		SetMap(map[string]any{
			"items":                string(items),
			"work_started_at":      c.WorkStartedAt,
			"work_finished_at":     c.WorkFinishedAt,
			"returned_at":          c.ReturnedAt,
			"status":               c.Status,
			"supervisor_id":        c.SupervisorID,
			"notes":                c.Notes,
			"has_discrepancy":      c.HasDiscrepancy,
			"discrepancy_reason":   c.DiscrepancyReason,
			"discrepancy_value":    c.DiscrepancyValue,
			"discrepancy_resolved": c.DiscrepancyResolved,
			"resolved_at":          c.ResolvedAt,
			"resolved_by":          c.ResolvedBy,
			"resolution_notes":     c.ResolutionNotes,
			"updated_at":           c.UpdatedAt,
		}).
		Where(sq.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("update material control: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFoundf("control %s", c.ID)
	}
	return nil
}

// List ordena por fecha de asignación, más reciente primero.
func (r *MaterialControlRepo) List(ctx context.Context, f repository.ControlFilter) ([]*entity.MaterialControl, error) {
	b := psql.Select(controlColumns...).From("material_controls").OrderBy("assigned_at DESC", "id")
	b, err := applyControlFilter(b, f)
	if err != nil {
		return nil, err
	}
	sqlStr, args, err := paginate(b, f.Limit, f.Offset).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list material controls: %w", err)
	}
	defer rows.Close()

	var list []*entity.MaterialControl
	for rows.Next() {
		c, err := scanControl(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material control: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// SumUnresolvedDiscrepancy suma el valor de los descuadres sin resolver.
func (r *MaterialControlRepo) SumUnresolvedDiscrepancy(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(discrepancy_value), 0) FROM material_controls
		WHERE has_discrepancy AND NOT discrepancy_resolved`).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum unresolved discrepancy: %w", err)
	}
	return total, nil
}

// CountByStatus cantidad de controles por estado.
func (r *MaterialControlRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.q.Query(ctx, `SELECT status, COUNT(*) FROM material_controls GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count controls by status: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		out[status] = n
	}
	return out, rows.Err()
}

func applyControlFilter(b sq.SelectBuilder, f repository.ControlFilter) (sq.SelectBuilder, error) {
	if f.TechnicianID != "" {
		b = b.Where(sq.Eq{"technician_id": f.TechnicianID})
	}
	if f.WorkOrderID != "" {
		b = b.Where(sq.Eq{"work_order_id": f.WorkOrderID})
	}
	if len(f.Statuses) > 0 {
		b = b.Where(sq.Eq{"status": f.Statuses})
	}
	if f.HasDiscrepancy != nil {
		b = b.Where(sq.Eq{"has_discrepancy": *f.HasDiscrepancy})
	}
	if f.Resolved != nil {
		b = b.Where(sq.Eq{"discrepancy_resolved": *f.Resolved})
	}
	if f.MaterialID != "" {
		contains, err := json.Marshal([]map[string]string{{"material_id": f.MaterialID}})
		if err != nil {
			return b, err
		}
		b = b.Where("items @> ?::jsonb", string(contains))
	}
	return b, nil
}

func scanControl(row pgx.Row) (*entity.MaterialControl, error) {
	var c entity.MaterialControl
	var items []byte
	err := row.Scan(
		&c.ID, &c.TechnicianID, &c.WorkOrderID, &c.JobType, &items, &c.AssignedAt, &c.WorkStartedAt,
		&c.WorkFinishedAt, &c.ReturnedAt, &c.Status, &c.AssignedBy, &c.SupervisorID, &c.Notes, &c.HasDiscrepancy,
		&c.DiscrepancyReason, &c.DiscrepancyValue, &c.DiscrepancyResolved, &c.ResolvedAt, &c.ResolvedBy,
		&c.ResolutionNotes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &c.Items); err != nil {
		return nil, fmt.Errorf("unmarshal control items: %w", err)
	}
	return &c, nil
}
