package inventory

import (
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DiscrepancyValue valoriza el descuadre de una línea (servicio de dominio).
// Valor = |Asignada - (Utilizada + Devuelta + Perdida)| * CostoUnitario
func DiscrepancyValue(assigned, accounted, unitCost decimal.Decimal) decimal.Decimal {
	return assigned.Sub(accounted).Abs().Mul(unitCost)
}

// LineStatusAfterReturn decide el estado de la línea según lo devuelto.
func LineStatusAfterReturn(assigned, returned decimal.Decimal) string {
	switch {
	case returned.Equal(assigned):
		return entity.LineStatusFullReturn
	case returned.GreaterThan(decimal.Zero) && returned.LessThan(assigned):
		return entity.LineStatusPartialReturn
	default:
		return entity.LineStatusCompleted
	}
}
