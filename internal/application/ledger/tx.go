package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/ports"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/inventory"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementInput datos de un movimiento del ledger.
type MovementInput struct {
	TechnicianID string
	MaterialID   string
	Quantity     decimal.Decimal
	Reason       string
	Origin       string
	OriginRefID  string
	PolicyNumber string
	UserID       string
}

// LedgerTx aplica operaciones del ledger con los repositorios de una transacción abierta por el caller.
// Cada operación escribe exactamente un movimiento. Las alertas de stock se acumulan y el caller
// las publica después del commit (ver LedgerUseCase.Publish).
type LedgerTx struct {
	repos     repository.TxRepos
	now       time.Time
	materials map[string]*entity.Material
	alerts    []ports.Notification
}

// InTx construye un LedgerTx atado a la transacción del caller.
func (uc *LedgerUseCase) InTx(repos repository.TxRepos, now time.Time) *LedgerTx {
	return &LedgerTx{
		repos:     repos,
		now:       now,
		materials: make(map[string]*entity.Material),
	}
}

// Alerts notificaciones de stock generadas en la transacción.
func (t *LedgerTx) Alerts() []ports.Notification {
	return t.alerts
}

// Material busca el material en el catálogo (una vez por transacción).
func (t *LedgerTx) Material(ctx context.Context, id string) (*entity.Material, error) {
	if m, ok := t.materials[id]; ok {
		return m, nil
	}
	m, err := t.repos.Materials.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("material %s: %w", id, err)
	}
	if m == nil {
		return nil, domain.NotFoundf("material %s", id)
	}
	t.materials[id] = m
	return m, nil
}

// Reserve aparta stock disponible: apartada += q, disponible -= q.
func (t *LedgerTx) Reserve(ctx context.Context, in MovementInput) (*entity.TechnicianStock, error) {
	if err := validateQuantity(in.Quantity); err != nil {
		return nil, err
	}
	mat, err := t.Material(ctx, in.MaterialID)
	if err != nil {
		return nil, err
	}
	s, err := t.repos.Stock.Reserve(ctx, in.TechnicianID, in.MaterialID, in.Quantity)
	if err != nil {
		return nil, withMaterialName(err, mat)
	}
	if err := t.record(ctx, entity.MovementTypeReserve, in, in.Quantity, mat); err != nil {
		return nil, err
	}
	t.checkThreshold(s.Available.Add(in.Quantity), s, mat)
	return s, nil
}

// CommitToUse convierte lo apartado en consumo: apartada -= q, actual -= q.
func (t *LedgerTx) CommitToUse(ctx context.Context, in MovementInput) (*entity.TechnicianStock, error) {
	if err := validateQuantity(in.Quantity); err != nil {
		return nil, err
	}
	mat, err := t.Material(ctx, in.MaterialID)
	if err != nil {
		return nil, err
	}
	s, err := t.repos.Stock.CommitToUse(ctx, in.TechnicianID, in.MaterialID, in.Quantity)
	if err != nil {
		return nil, withMaterialName(err, mat)
	}
	if err := t.record(ctx, entity.MovementTypeOut, in, in.Quantity, mat); err != nil {
		return nil, err
	}
	return s, nil
}

// ReturnMaterial acredita material devuelto: actual += q, disponible += q. Crea la fila si no existe.
func (t *LedgerTx) ReturnMaterial(ctx context.Context, in MovementInput) (*entity.TechnicianStock, error) {
	if err := validateQuantity(in.Quantity); err != nil {
		return nil, err
	}
	mat, err := t.Material(ctx, in.MaterialID)
	if err != nil {
		return nil, err
	}
	if err := t.repos.Stock.EnsureInventory(ctx, in.TechnicianID); err != nil {
		return nil, err
	}
	s, err := t.repos.Stock.Credit(ctx, in.TechnicianID, in.MaterialID, in.Quantity)
	if err != nil {
		return nil, err
	}
	if err := t.record(ctx, entity.MovementTypeReturn, in, in.Quantity, mat); err != nil {
		return nil, err
	}
	return s, nil
}

// CommitConsumption descuenta consumo de una OT o póliza desde stock libre: actual -= q, disponible -= q.
// No toca lo apartado.
func (t *LedgerTx) CommitConsumption(ctx context.Context, in MovementInput) (*entity.TechnicianStock, error) {
	if err := validateQuantity(in.Quantity); err != nil {
		return nil, err
	}
	switch {
	case in.OriginRefID != "":
		in.Origin = entity.OriginWorkOrder
	case in.PolicyNumber != "":
		in.Origin = entity.OriginPolicy
	default:
		return nil, domain.NewValidationError("orden_trabajo_id", "se requiere la orden de trabajo o el número de póliza")
	}
	mat, err := t.Material(ctx, in.MaterialID)
	if err != nil {
		return nil, err
	}
	s, err := t.repos.Stock.Consume(ctx, in.TechnicianID, in.MaterialID, in.Quantity)
	if err != nil {
		return nil, withMaterialName(err, mat)
	}
	if err := t.record(ctx, entity.MovementTypeOut, in, in.Quantity, mat); err != nil {
		return nil, err
	}
	t.checkThreshold(s.Available.Add(in.Quantity), s, mat)
	return s, nil
}

// AddStock ingresa material al inventario del técnico (lo crea si no existe).
func (t *LedgerTx) AddStock(ctx context.Context, in MovementInput) (*entity.TechnicianStock, error) {
	if err := validateQuantity(in.Quantity); err != nil {
		return nil, err
	}
	if in.Origin != "" && !entity.ValidOrigin(in.Origin) {
		return nil, domain.NewValidationError("origen", "origen desconocido: "+in.Origin)
	}
	mat, err := t.Material(ctx, in.MaterialID)
	if err != nil {
		return nil, err
	}
	if !mat.IsActive() {
		return nil, domain.NewValidationError("material_id", "el material "+mat.Name+" está inactivo")
	}
	if err := t.repos.Stock.EnsureInventory(ctx, in.TechnicianID); err != nil {
		return nil, err
	}
	s, err := t.repos.Stock.Credit(ctx, in.TechnicianID, in.MaterialID, in.Quantity)
	if err != nil {
		return nil, err
	}
	if err := t.record(ctx, entity.MovementTypeIn, in, in.Quantity, mat); err != nil {
		return nil, err
	}
	return s, nil
}

// Adjust fija la cantidad física contada. El movimiento lleva el delta con signo.
func (t *LedgerTx) Adjust(ctx context.Context, in MovementInput) (*entity.TechnicianStock, error) {
	if err := inventory.CheckQuantityScale("cantidad", in.Quantity); err != nil {
		return nil, err
	}
	mat, err := t.Material(ctx, in.MaterialID)
	if err != nil {
		return nil, err
	}
	current, err := t.repos.Stock.GetForUpdate(ctx, in.TechnicianID, in.MaterialID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.NotFoundf("inventario del técnico %s sin material %s", in.TechnicianID, in.MaterialID)
	}
	preview := *current
	delta, err := inventory.ApplyAdjust(&preview, in.Quantity)
	if err != nil {
		return nil, err
	}
	s, err := t.repos.Stock.SetCounted(ctx, in.TechnicianID, in.MaterialID, in.Quantity)
	if err != nil {
		return nil, withMaterialName(err, mat)
	}
	if in.Origin == "" {
		in.Origin = entity.OriginManual
	}
	if err := t.record(ctx, entity.MovementTypeAdjustment, in, delta, mat); err != nil {
		return nil, err
	}
	if delta.IsNegative() {
		t.checkThreshold(current.Available, s, mat)
	}
	return s, nil
}

func (t *LedgerTx) record(ctx context.Context, movementType string, in MovementInput, qty decimal.Decimal, mat *entity.Material) error {
	origin := in.Origin
	if origin == "" {
		origin = entity.OriginManual
	}
	mov := &entity.InventoryMovement{
		ID:           uuid.New().String(),
		TechnicianID: in.TechnicianID,
		MaterialID:   in.MaterialID,
		Type:         movementType,
		Quantity:     qty,
		UnitCost:     mat.UnitCost,
		Reason:       in.Reason,
		UserID:       in.UserID,
		Origin:       origin,
		OriginRefID:  in.OriginRefID,
		PolicyNumber: in.PolicyNumber,
		Date:         t.now,
	}
	if err := t.repos.Movements.Create(ctx, mov); err != nil {
		return fmt.Errorf("registrar movimiento %s: %w", movementType, err)
	}
	return nil
}

// checkThreshold genera stock_bajo al cruzar el mínimo y stock_critico al quedar en cero.
func (t *LedgerTx) checkThreshold(before decimal.Decimal, s *entity.TechnicianStock, mat *entity.Material) {
	crossed, critical := inventory.CrossedMinimum(before, s.Available, mat.MinimumStock)
	if !crossed {
		return
	}
	n := ports.Notification{
		Event:       ports.EventLowStock,
		RecipientID: s.TechnicianID,
		Message: fmt.Sprintf("Stock bajo de %s: disponible %s %s, mínimo %s",
			mat.Name, s.Available.String(), mat.UnitMeasure, mat.MinimumStock.String()),
		Data: map[string]any{
			"tecnico_id":          s.TechnicianID,
			"material_id":         s.MaterialID,
			"cantidad_disponible": s.Available.String(),
			"stock_minimo":        mat.MinimumStock.String(),
		},
		CreatedAt: t.now,
	}
	if critical {
		n.Event = ports.EventCriticalStock
		n.Message = fmt.Sprintf("Sin stock disponible de %s", mat.Name)
	}
	t.alerts = append(t.alerts, n)
}

func validateQuantity(q decimal.Decimal) error {
	if !q.IsPositive() {
		return domain.NewValidationError("cantidad", "la cantidad debe ser mayor que cero")
	}
	return inventory.CheckQuantityScale("cantidad", q)
}

// withMaterialName completa el nombre del material en errores de stock insuficiente.
func withMaterialName(err error, mat *entity.Material) error {
	var ise *domain.InsufficientStockError
	if errors.As(err, &ise) && ise.MaterialName == "" {
		ise.MaterialName = mat.Name
	}
	return err
}
