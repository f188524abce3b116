package ledger

import (
	"context"
	"sort"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/dto"
	"github.com/shopspring/decimal"
)

// idealStockFactor el stock ideal tras reponer es 1.5 veces el mínimo.
var idealStockFactor = decimal.NewFromFloat(1.5)

// LowStockReport devuelve los materiales cuyo disponible está por debajo del stock mínimo,
// con la cantidad sugerida de reposición y una prioridad (1 = más urgente).
// technicianID vacío considera a todos los técnicos.
func (uc *LedgerUseCase) LowStockReport(ctx context.Context, technicianID string) ([]dto.LowStockDTO, error) {
	rawItems, err := uc.stock.ListBelowMinimum(ctx, technicianID)
	if err != nil {
		return nil, err
	}
	if len(rawItems) == 0 {
		return []dto.LowStockDTO{}, nil
	}

	list := make([]dto.LowStockDTO, 0, len(rawItems))
	for _, item := range rawItems {
		suggested := item.MinimumStock.Mul(idealStockFactor).Sub(item.Available).Ceil()
		if suggested.IsNegative() {
			suggested = decimal.Zero
		}
		list = append(list, dto.LowStockDTO{
			TechnicianID:  item.TechnicianID,
			MaterialID:    item.MaterialID,
			MaterialName:  item.MaterialName,
			UnitMeasure:   item.UnitMeasure,
			Available:     item.Available,
			MinimumStock:  item.MinimumStock,
			Deficit:       item.MinimumStock.Sub(item.Available),
			SuggestedQty:  suggested,
			EstimatedCost: suggested.Mul(item.UnitCost),
			Critical:      item.Available.IsZero(),
		})
	}

	// Primero los que quedaron en cero, luego mayor déficit relativo al mínimo, luego mayor costo.
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Critical != b.Critical {
			return a.Critical
		}
		ra := a.Deficit.Div(a.MinimumStock)
		rb := b.Deficit.Div(b.MinimumStock)
		if !ra.Equal(rb) {
			return ra.GreaterThan(rb)
		}
		return a.EstimatedCost.GreaterThan(b.EstimatedCost)
	})
	for i := range list {
		list[i].Priority = i + 1
	}
	return list, nil
}
