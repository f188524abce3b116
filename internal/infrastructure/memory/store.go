// Package memory implementa los repositorios en memoria. Las transacciones trabajan
// sobre una copia del estado que reemplaza al original solo si fn no devuelve error.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/ports"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/repository"
)

var _ ports.TxRunner = (*Store)(nil)

type stockKey struct {
	technicianID string
	materialID   string
}

type patternKey struct {
	jobType    string
	materialID string
}

type inventoryHeader struct {
	createdAt time.Time
	updatedAt time.Time
}

type state struct {
	materials   map[string]entity.Material
	inventories map[string]inventoryHeader
	stock       map[stockKey]entity.TechnicianStock
	movements   []entity.InventoryMovement
	controls    map[string]entity.MaterialControl
	requests    map[string]entity.MaterialRequest
	patterns    map[patternKey]entity.ConsumptionPattern
	audit       []entity.AuditLog
}

func newState() *state {
	return &state{
		materials:   make(map[string]entity.Material),
		inventories: make(map[string]inventoryHeader),
		stock:       make(map[stockKey]entity.TechnicianStock),
		controls:    make(map[string]entity.MaterialControl),
		requests:    make(map[string]entity.MaterialRequest),
		patterns:    make(map[patternKey]entity.ConsumptionPattern),
	}
}

func (s *state) clone() *state {
	c := &state{
		materials:   make(map[string]entity.Material, len(s.materials)),
		inventories: make(map[string]inventoryHeader, len(s.inventories)),
		stock:       make(map[stockKey]entity.TechnicianStock, len(s.stock)),
		movements:   slices.Clone(s.movements),
		controls:    make(map[string]entity.MaterialControl, len(s.controls)),
		requests:    make(map[string]entity.MaterialRequest, len(s.requests)),
		patterns:    make(map[patternKey]entity.ConsumptionPattern, len(s.patterns)),
		audit:       slices.Clone(s.audit),
	}
	for k, v := range s.materials {
		c.materials[k] = v
	}
	for k, v := range s.inventories {
		c.inventories[k] = v
	}
	for k, v := range s.stock {
		c.stock[k] = v
	}
	for k, v := range s.controls {
		c.controls[k] = copyControl(v)
	}
	for k, v := range s.requests {
		c.requests[k] = copyRequest(v)
	}
	for k, v := range s.patterns {
		c.patterns[k] = copyPattern(v)
	}
	return c
}

// Store guarda todo el estado detrás de un mutex.
type Store struct {
	mu    sync.Mutex
	data  *state
	clock func() time.Time
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: newState(), clock: time.Now}
}

// WithClock reemplaza el reloj usado en updated_at (pruebas).
func (s *Store) WithClock(now func() time.Time) *Store {
	s.clock = now
	return s
}

// access ejecuta fn sobre el estado confirmado, bajo el mutex.
func (s *Store) access(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

// Run ejecuta fn con repositorios sobre una copia del estado. Si fn termina sin error
// la copia pasa a ser el estado confirmado; si no, se descarta.
// El mutex se mantiene durante toda la transacción, de modo que las transacciones se serializan.
func (s *Store) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.data.clone()
	if err := fn(s.reposFor(func(f func(st *state) error) error { return f(work) })); err != nil {
		return err
	}
	s.data = work
	return nil
}

// Repos repositorios fuera de transacción; cada llamada es atómica por sí sola.
// No deben usarse dentro de fn de Run.
func (s *Store) Repos() repository.TxRepos {
	return s.reposFor(s.access)
}

func (s *Store) reposFor(access accessor) repository.TxRepos {
	return repository.TxRepos{
		Materials: &MaterialRepo{access: access},
		Stock:     &TechnicianStockRepo{access: access, now: s.clock},
		Movements: &InventoryMovementRepo{access: access},
		Controls:  &MaterialControlRepo{access: access},
		Requests:  &MaterialRequestRepo{access: access},
		Patterns:  &ConsumptionPatternRepo{access: access},
		Audit:     &AuditLogRepo{access: access},
	}
}

// AuditLogs copia del registro de auditoría (pruebas y diagnóstico).
func (s *Store) AuditLogs() []entity.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.data.audit)
}

type accessor func(fn func(st *state) error) error

func copyControl(c entity.MaterialControl) entity.MaterialControl {
	c.Items = slices.Clone(c.Items)
	return c
}

func copyRequest(r entity.MaterialRequest) entity.MaterialRequest {
	r.Items = slices.Clone(r.Items)
	return r
}

func copyPattern(p entity.ConsumptionPattern) entity.ConsumptionPattern {
	p.History = slices.Clone(p.History)
	return p
}

// page aplica offset y limit; limit <= 0 no limita.
func page[T any](list []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(list) {
			return list[:0]
		}
		list = list[offset:]
	}
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
