package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var _ repository.ConsumptionPatternRepository = (*ConsumptionPatternRepo)(nil)

const patternSelect = `
	SELECT id, job_type, material_id, average_qty, min_qty, max_qty, total_jobs,
		total_consumption, confidence, history, updated_at
	FROM consumption_patterns`

// ConsumptionPatternRepo patrones de consumo; el historial es un double precision[].
type ConsumptionPatternRepo struct {
	q Querier
}

// NewConsumptionPatternRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConsumptionPatternRepository(q Querier) *ConsumptionPatternRepo {
	return &ConsumptionPatternRepo{q: q}
}

func (r *ConsumptionPatternRepo) Get(ctx context.Context, jobType, materialID string) (*entity.ConsumptionPattern, error) {
	return r.get(ctx, patternSelect+` WHERE job_type = $1 AND material_id = $2`, jobType, materialID)
}

// LockOrInit inserta el patrón vacío si falta (ON CONFLICT DO NOTHING) y después lo bloquea.
// Sin la inserción previa, FOR UPDATE no bloquea nada para el primer registro del par.
func (r *ConsumptionPatternRepo) LockOrInit(ctx context.Context, jobType, materialID string) (*entity.ConsumptionPattern, error) {
	_, err := r.q.Exec(ctx, `
		INSERT INTO consumption_patterns (id, job_type, material_id, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (job_type, material_id) DO NOTHING`,
		uuid.New().String(), jobType, materialID,
	)
	if err != nil {
		return nil, fmt.Errorf("init consumption pattern: %w", err)
	}
	p, err := r.get(ctx, patternSelect+` WHERE job_type = $1 AND material_id = $2 FOR UPDATE`, jobType, materialID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("consumption pattern %s/%s: %w", jobType, materialID, pgx.ErrNoRows)
	}
	return p, nil
}

func (r *ConsumptionPatternRepo) get(ctx context.Context, query, jobType, materialID string) (*entity.ConsumptionPattern, error) {
	p, err := scanPattern(r.q.QueryRow(ctx, query, jobType, materialID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get consumption pattern: %w", err)
	}
	return p, nil
}

// Save inserta o reemplaza el patrón del par (tipo_trabajo, material).
func (r *ConsumptionPatternRepo) Save(ctx context.Context, p *entity.ConsumptionPattern) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO consumption_patterns (id, job_type, material_id, average_qty, min_qty, max_qty, total_jobs,
			total_consumption, confidence, history, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (job_type, material_id) DO UPDATE
		SET average_qty = EXCLUDED.average_qty,
			min_qty = EXCLUDED.min_qty,
			max_qty = EXCLUDED.max_qty,
			total_jobs = EXCLUDED.total_jobs,
			total_consumption = EXCLUDED.total_consumption,
			confidence = EXCLUDED.confidence,
			history = EXCLUDED.history,
			updated_at = EXCLUDED.updated_at`
	history := p.History
	if history == nil {
		history = []float64{}
	}
	_, err := r.q.Exec(ctx, query,
		p.ID, p.JobType, p.MaterialID, p.AverageQty, p.MinQty, p.MaxQty, p.TotalJobs,
		p.TotalConsumption, p.Confidence, history, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save consumption pattern: %w", err)
	}
	return nil
}

// ListByJobType patrones del tipo de trabajo ordenados por material.
func (r *ConsumptionPatternRepo) ListByJobType(ctx context.Context, jobType string) ([]*entity.ConsumptionPattern, error) {
	rows, err := r.q.Query(ctx, patternSelect+` WHERE job_type = $1 ORDER BY material_id`, jobType)
	if err != nil {
		return nil, fmt.Errorf("list consumption patterns: %w", err)
	}
	defer rows.Close()

	var list []*entity.ConsumptionPattern
	for rows.Next() {
		p, err := scanPattern(rows)
		if err != nil {
			return nil, fmt.Errorf("scan consumption pattern: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanPattern(row pgx.Row) (*entity.ConsumptionPattern, error) {
	var p entity.ConsumptionPattern
	err := row.Scan(
		&p.ID, &p.JobType, &p.MaterialID, &p.AverageQty, &p.MinQty, &p.MaxQty, &p.TotalJobs,
		&p.TotalConsumption, &p.Confidence, &p.History, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
