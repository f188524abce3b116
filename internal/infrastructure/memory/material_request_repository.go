package memory

import (
	"context"
	"sort"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/repository"
)

var _ repository.MaterialRequestRepository = (*MaterialRequestRepo)(nil)

// MaterialRequestRepo solicitudes de materiales en memoria.
type MaterialRequestRepo struct {
	access accessor
}

func (r *MaterialRequestRepo) Create(_ context.Context, req *entity.MaterialRequest) error {
	return r.access(func(st *state) error {
		if _, ok := st.requests[req.ID]; ok {
			return domain.ErrDuplicate
		}
		st.requests[req.ID] = copyRequest(*req)
		return nil
	})
}

func (r *MaterialRequestRepo) GetByID(_ context.Context, id string) (*entity.MaterialRequest, error) {
	var out *entity.MaterialRequest
	err := r.access(func(st *state) error {
		if req, ok := st.requests[id]; ok {
			cp := copyRequest(req)
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *MaterialRequestRepo) GetForUpdate(ctx context.Context, id string) (*entity.MaterialRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *MaterialRequestRepo) Update(_ context.Context, req *entity.MaterialRequest) error {
	return r.access(func(st *state) error {
		if _, ok := st.requests[req.ID]; !ok {
			return domain.NotFoundf("solicitud %s", req.ID)
		}
		st.requests[req.ID] = copyRequest(*req)
		return nil
	})
}

// List más recientes primero.
func (r *MaterialRequestRepo) List(_ context.Context, f repository.RequestFilter) ([]*entity.MaterialRequest, error) {
	var out []*entity.MaterialRequest
	err := r.access(func(st *state) error {
		for _, req := range st.requests {
			if f.TechnicianID != "" && req.TechnicianID != f.TechnicianID {
				continue
			}
			if f.Status != "" && req.Status != f.Status {
				continue
			}
			cp := copyRequest(req)
			out = append(out, &cp)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].RequestedAt.Equal(out[j].RequestedAt) {
			return out[i].RequestedAt.After(out[j].RequestedAt)
		}
		return out[i].ID < out[j].ID
	})
	return page(out, f.Limit, f.Offset), err
}
