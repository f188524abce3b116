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
)

var _ repository.MaterialRequestRepository = (*MaterialRequestRepo)(nil)

var requestColumns = []string{
	"id", "technician_id", "requested_at", "status", "items", "reason", "ai_suggested", "approved_by",
	"approved_at", "rejected_by", "rejection_reason", "delivered_by", "delivered_at", "updated_at",
}

// MaterialRequestRepo solicitudes de material sobre PostgreSQL.
type MaterialRequestRepo struct {
	q Querier
}

// NewMaterialRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRequestRepository(q Querier) *MaterialRequestRepo {
	return &MaterialRequestRepo{q: q}
}

func (r *MaterialRequestRepo) Create(ctx context.Context, req *entity.MaterialRequest) error {
	items, err := json.Marshal(req.Items)
	if err != nil {
		return fmt.Errorf("marshal request items: %w", err)
	}
	sqlStr, args, err := psql.Insert("material_requests").
		Columns(requestColumns...).
		Values(
			req.ID, req.TechnicianID, req.RequestedAt, req.Status, string(items), req.Reason, req.AISuggested,
			req.ApprovedBy, req.ApprovedAt, req.RejectedBy, req.RejectionReason, req.DeliveredBy, req.DeliveredAt,
			req.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, sqlStr, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material request: %w", err)
	}
	return nil
}

func (r *MaterialRequestRepo) GetByID(ctx context.Context, id string) (*entity.MaterialRequest, error) {
	return r.get(ctx, id, false)
}

func (r *MaterialRequestRepo) GetForUpdate(ctx context.Context, id string) (*entity.MaterialRequest, error) {
	return r.get(ctx, id, true)
}

func (r *MaterialRequestRepo) get(ctx context.Context, id string, lock bool) (*entity.MaterialRequest, error) {
	b := psql.Select(requestColumns...).From("material_requests").Where(sq.Eq{"id": id})
	if lock {
		b = b.Suffix("FOR UPDATE")
	}
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	req, err := scanRequest(r.q.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material request: %w", err)
	}
	return req, nil
}

// Update guarda el estado y las cantidades aprobadas.
func (r *MaterialRequestRepo) Update(ctx context.Context, req *entity.MaterialRequest) error {
	items, err := json.Marshal(req.Items)
	if err != nil {
		return fmt.Errorf("marshal request items: %w", err)
	}
	sqlStr, args, err := psql.Update("material_requests").
		SetMap(map[string]any{
			"status":           req.Status,
			"items":            string(items),
			"approved_by":      req.ApprovedBy,
			"approved_at":      req.ApprovedAt,
			"rejected_by":      req.RejectedBy,
			"rejection_reason": req.RejectionReason,
			"delivered_by":     req.DeliveredBy,
			"delivered_at":     req.DeliveredAt,
			"updated_at":       req.UpdatedAt,
		}).
		Where(sq.Eq{"id": req.ID}).
		ToSql()
	if err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("update material request: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFoundf("solicitud %s", req.ID)
	}
	return nil
}

// List más recientes primero.
func (r *MaterialRequestRepo) List(ctx context.Context, f repository.RequestFilter) ([]*entity.MaterialRequest, error) {
	b := psql.Select(requestColumns...).From("material_requests").OrderBy("requested_at DESC", "id")
	if f.TechnicianID != "" {
		b = b.Where(sq.Eq{"technician_id": f.TechnicianID})
	}
	if f.Status != "" {
		b = b.Where(sq.Eq{"status": f.Status})
	}
	sqlStr, args, err := paginate(b, f.Limit, f.Offset).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list material requests: %w", err)
	}
	defer rows.Close()

	var list []*entity.MaterialRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material request: %w", err)
		}
		list = append(list, req)
	}
	return list, rows.Err()
}

func scanRequest(row pgx.Row) (*entity.MaterialRequest, error) {
	var req entity.MaterialRequest
	var items []byte
	err := row.Scan(
		&req.ID, &req.TechnicianID, &req.RequestedAt, &req.Status, &items, &req.Reason, &req.AISuggested,
		&req.ApprovedBy, &req.ApprovedAt, &req.RejectedBy, &req.RejectionReason, &req.DeliveredBy, &req.DeliveredAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &req.Items); err != nil {
		return nil, fmt.Errorf("unmarshal request items: %w", err)
	}
	return &req, nil
}
