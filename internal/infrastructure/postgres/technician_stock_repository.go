package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/repository"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var _ repository.TechnicianStockRepository = (*TechnicianStockRepo)(nil)

const stockReturning = "RETURNING technician_id, material_id, on_hand, reserved, available, updated_at"

// TechnicianStockRepo ledger de inventario por técnico sobre PostgreSQL.
// Cada mutación es un único UPDATE condicional: si la guarda no se cumple no se toca ninguna fila.
// Orden de bloqueo: primero la cabecera technician_inventories y después las filas de technician_stock,
// igual que LockInventory.
type TechnicianStockRepo struct {
	q Querier
}

// NewTechnicianStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTechnicianStockRepository(q Querier) *TechnicianStockRepo {
	return &TechnicianStockRepo{q: q}
}

// EnsureInventory crea el inventario vacío del técnico si no existe.
func (r *TechnicianStockRepo) EnsureInventory(ctx context.Context, technicianID string) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO technician_inventories (technician_id) VALUES ($1) ON CONFLICT (technician_id) DO NOTHING`,
		technicianID,
	)
	if err != nil {
		return fmt.Errorf("ensure inventory: %w", err)
	}
	return nil
}

// GetInventory devuelve el inventario con sus filas ordenadas por material; (nil, nil) si no existe.
func (r *TechnicianStockRepo) GetInventory(ctx context.Context, technicianID string) (*entity.TechnicianInventory, error) {
	return r.inventory(ctx, technicianID, false)
}

// LockInventory bloquea la cabecera y las filas del técnico en orden de material.
func (r *TechnicianStockRepo) LockInventory(ctx context.Context, technicianID string) (*entity.TechnicianInventory, error) {
	return r.inventory(ctx, technicianID, true)
}

func (r *TechnicianStockRepo) inventory(ctx context.Context, technicianID string, lock bool) (*entity.TechnicianInventory, error) {
	header := `SELECT technician_id, created_at, updated_at FROM technician_inventories WHERE technician_id = $1`
	items := `
		SELECT technician_id, material_id, on_hand, reserved, available, updated_at
		FROM technician_stock WHERE technician_id = $1 ORDER BY material_id`
	if lock {
		header += " FOR UPDATE"
		items += " FOR UPDATE"
	}

	inv := &entity.TechnicianInventory{}
	err := r.q.QueryRow(ctx, header, technicianID).Scan(&inv.TechnicianID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}

	rows, err := r.q.Query(ctx, items, technicianID)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		inv.Items = append(inv.Items, *s)
	}
	return inv, rows.Err()
}

// GetForUpdate obtiene la fila y la bloquea; (nil, nil) si no existe.
func (r *TechnicianStockRepo) GetForUpdate(ctx context.Context, technicianID, materialID string) (*entity.TechnicianStock, error) {
	if err := r.lockHeader(ctx, technicianID); err != nil {
		return nil, err
	}
	query := `
		SELECT technician_id, material_id, on_hand, reserved, available, updated_at
		FROM technician_stock WHERE technician_id = $1 AND material_id = $2
		FOR UPDATE`
	s, err := scanStock(r.q.QueryRow(ctx, query, technicianID, materialID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return s, nil
}

// Reserve aparta qty: reserved += qty, available -= qty, solo si available >= qty.
func (r *TechnicianStockRepo) Reserve(ctx context.Context, technicianID, materialID string, qty decimal.Decimal) (*entity.TechnicianStock, error) {
	b := psql.Update("technician_stock").
		Set("reserved", sq.Expr("reserved + ?", qty)).
		Set("available", sq.Expr("available - ?", qty)).
		Where(sq.GtOrEq{"available": qty})
	return r.conditional(ctx, b, technicianID, materialID, qty, availableOf)
}

// CommitToUse pasa qty de apartado a consumido: reserved -= qty, on_hand -= qty.
func (r *TechnicianStockRepo) CommitToUse(ctx context.Context, technicianID, materialID string, qty decimal.Decimal) (*entity.TechnicianStock, error) {
	b := psql.Update("technician_stock").
		Set("reserved", sq.Expr("reserved - ?", qty)).
		Set("on_hand", sq.Expr("on_hand - ?", qty)).
		Where(sq.GtOrEq{"reserved": qty}).
		Where(sq.GtOrEq{"on_hand": qty})
	return r.conditional(ctx, b, technicianID, materialID, qty, reservedOf)
}

// Consume descuenta qty del stock libre: on_hand -= qty, available -= qty.
func (r *TechnicianStockRepo) Consume(ctx context.Context, technicianID, materialID string, qty decimal.Decimal) (*entity.TechnicianStock, error) {
	b := psql.Update("technician_stock").
		Set("on_hand", sq.Expr("on_hand - ?", qty)).
		Set("available", sq.Expr("available - ?", qty)).
		Where(sq.GtOrEq{"available": qty})
	return r.conditional(ctx, b, technicianID, materialID, qty, availableOf)
}

// Credit suma qty a on_hand y available; crea la fila si no existe.
func (r *TechnicianStockRepo) Credit(ctx context.Context, technicianID, materialID string, qty decimal.Decimal) (*entity.TechnicianStock, error) {
	query := `
		INSERT INTO technician_stock AS s (technician_id, material_id, on_hand, reserved, available, updated_at)
		VALUES ($1, $2, $3, 0, $3, now())
		ON CONFLICT (technician_id, material_id) DO UPDATE
		SET on_hand = s.on_hand + EXCLUDED.on_hand,
			available = s.available + EXCLUDED.available,
			updated_at = now()
		` + stockReturning
	if err := r.lockHeader(ctx, technicianID); err != nil {
		return nil, err
	}
	s, err := scanStock(r.q.QueryRow(ctx, query, technicianID, materialID, qty))
	if err != nil {
		return nil, fmt.Errorf("credit stock: %w", err)
	}
	return s, nil
}

// SetCounted fija on_hand al conteo físico, siempre que no quede por debajo de lo apartado.
func (r *TechnicianStockRepo) SetCounted(ctx context.Context, technicianID, materialID string, counted decimal.Decimal) (*entity.TechnicianStock, error) {
	if counted.IsNegative() {
		return nil, domain.NewValidationError("cantidad", "la cantidad contada no puede ser negativa")
	}
	b := psql.Update("technician_stock").
		Set("on_hand", counted).
		Set("available", sq.Expr("? - reserved", counted)).
		Where(sq.LtOrEq{"reserved": counted})
	s, err := r.conditional(ctx, b, technicianID, materialID, counted, reservedOf)
	var ise *domain.InsufficientStockError
	if errors.As(err, &ise) {
		return nil, domain.NewValidationError("cantidad",
			"la cantidad contada ("+counted.String()+") es menor que lo apartado ("+ise.Available.String()+")")
	}
	return s, err
}

// ListBelowMinimum filas de materiales activos cuyo disponible es menor que el mínimo, mayor déficit primero.
func (r *TechnicianStockRepo) ListBelowMinimum(ctx context.Context, technicianID string) ([]repository.LowStockItem, error) {
	b := psql.
		Select("s.technician_id", "s.material_id", "m.name", "m.unit_measure", "s.available", "m.minimum_stock", "m.unit_cost").
		From("technician_stock s").
		Join("materials m ON m.id = s.material_id").
		Where(sq.Eq{"m.status": entity.MaterialStatusActive}).
		Where("m.minimum_stock > 0").
		Where("s.available < m.minimum_stock").
		OrderBy("m.minimum_stock - s.available DESC", "s.technician_id", "s.material_id")
	if technicianID != "" {
		b = b.Where(sq.Eq{"s.technician_id": technicianID})
	}
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list below minimum: %w", err)
	}
	defer rows.Close()

	var out []repository.LowStockItem
	for rows.Next() {
		var it repository.LowStockItem
		if err := rows.Scan(&it.TechnicianID, &it.MaterialID, &it.MaterialName, &it.UnitMeasure,
			&it.Available, &it.MinimumStock, &it.UnitCost); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// conditional ejecuta el UPDATE con guarda. Si no afecta filas distingue fila inexistente
// (ErrNotFound) de guarda incumplida (*domain.InsufficientStockError).
func (r *TechnicianStockRepo) conditional(
	ctx context.Context,
	b sq.UpdateBuilder,
	technicianID, materialID string,
	qty decimal.Decimal,
	limitOf func(*entity.TechnicianStock) decimal.Decimal,
) (*entity.TechnicianStock, error) {
	sqlStr, args, err := b.
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"technician_id": technicianID, "material_id": materialID}).
		Suffix(stockReturning).
		ToSql()
	if err != nil {
		return nil, err
	}
	if err := r.lockHeader(ctx, technicianID); err != nil {
		return nil, err
	}
	s, err := scanStock(r.q.QueryRow(ctx, sqlStr, args...))
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		if isCheckViolation(err) {
			return nil, &domain.InsufficientStockError{MaterialID: materialID, Requested: qty}
		}
		return nil, fmt.Errorf("update stock: %w", err)
	}

	current, err := r.GetForUpdate(ctx, technicianID, materialID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.NotFoundf("inventario del técnico %s sin material %s", technicianID, materialID)
	}
	return nil, &domain.InsufficientStockError{MaterialID: materialID, Requested: qty, Available: limitOf(current)}
}

// lockHeader actualiza la cabecera del inventario antes de tocar filas de stock; el UPDATE
// deja la cabecera bloqueada hasta el fin de la transacción.
func (r *TechnicianStockRepo) lockHeader(ctx context.Context, technicianID string) error {
	_, err := r.q.Exec(ctx, `UPDATE technician_inventories SET updated_at = now() WHERE technician_id = $1`, technicianID)
	if err != nil {
		return fmt.Errorf("lock inventory: %w", err)
	}
	return nil
}

func availableOf(s *entity.TechnicianStock) decimal.Decimal { return s.Available }
func reservedOf(s *entity.TechnicianStock) decimal.Decimal  { return s.Reserved }

func scanStock(row pgx.Row) (*entity.TechnicianStock, error) {
	var s entity.TechnicianStock
	if err := row.Scan(&s.TechnicianID, &s.MaterialID, &s.OnHand, &s.Reserved, &s.Available, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
