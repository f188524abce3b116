// Package numfmt formatea cantidades y valores monetarios para mensajes y reportes en español.
package numfmt

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.LatinAmericanSpanish)

// Money valor en pesos sin decimales, con separador de miles.
func Money(d decimal.Decimal) string {
	return printer.Sprintf("$%d", d.Round(0).IntPart())
}

// Quantity cantidad con hasta dos decimales; los enteros se muestran sin decimales.
func Quantity(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return printer.Sprintf("%d", d.IntPart())
	}
	return printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}
