package memory

import (
	"context"
	"sort"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/repository"
	"github.com/google/uuid"
)

var _ repository.ConsumptionPatternRepository = (*ConsumptionPatternRepo)(nil)

// ConsumptionPatternRepo patrones de consumo en memoria.
type ConsumptionPatternRepo struct {
	access accessor
}

func (r *ConsumptionPatternRepo) Get(_ context.Context, jobType, materialID string) (*entity.ConsumptionPattern, error) {
	var out *entity.ConsumptionPattern
	err := r.access(func(st *state) error {
		if p, ok := st.patterns[patternKey{jobType, materialID}]; ok {
			cp := copyPattern(p)
			out = &cp
		}
		return nil
	})
	return out, err
}

// LockOrInit devuelve el patrón o uno vacío; el candado es el de la transacción del store.
func (r *ConsumptionPatternRepo) LockOrInit(ctx context.Context, jobType, materialID string) (*entity.ConsumptionPattern, error) {
	p, err := r.Get(ctx, jobType, materialID)
	if err != nil || p != nil {
		return p, err
	}
	return &entity.ConsumptionPattern{ID: uuid.New().String(), JobType: jobType, MaterialID: materialID}, nil
}

// Save inserta o reemplaza el patrón del par (tipo_trabajo, material).
func (r *ConsumptionPatternRepo) Save(_ context.Context, p *entity.ConsumptionPattern) error {
	return r.access(func(st *state) error {
		st.patterns[patternKey{p.JobType, p.MaterialID}] = copyPattern(*p)
		return nil
	})
}

func (r *ConsumptionPatternRepo) ListByJobType(_ context.Context, jobType string) ([]*entity.ConsumptionPattern, error) {
	var out []*entity.ConsumptionPattern
	err := r.access(func(st *state) error {
		for k, p := range st.patterns {
			if k.jobType != jobType {
				continue
			}
			cp := copyPattern(p)
			out = append(out, &cp)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].MaterialID < out[j].MaterialID })
	return out, err
}
