// Package pdf genera el reporte de descuadres pendientes en PDF.
//
// Layout de la página A4 (horizontal):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Control | Técnico | OT | Motivo | Líneas | Valor    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL PENDIENTE                                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/dto"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/report"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/pkg/numfmt"
	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
)

var _ report.DiscrepancyPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.DiscrepancyPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateDiscrepancyPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateDiscrepancyPDF(
	_ context.Context,
	rows []dto.DiscrepancyDTO,
	total decimal.Decimal,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Descuadres pendientes", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(len(rows), generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(rows) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("No hay descuadres pendientes de resolver.", props.Text{
				Size: 9, Align: align.Center, Top: 3, Color: colorGray,
			}),
		)))
	}
	for _, r := range tableDetailRows(rows) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(total))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(count int, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("REPORTE DE DESCUADRES PENDIENTES", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(strconv.Itoa(count)+" controles sin resolver", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Control", 2, align.Left),
		h("Técnico", 2, align.Left),
		h("OT", 1, align.Left),
		h("Motivo", 4, align.Left),
		h("Líneas", 1, align.Center),
		h("Valor", 2, align.Right),
	)
}

// tableDetailRows: una fila por control; el motivo puede ocupar varias líneas.
func tableDetailRows(list []dto.DiscrepancyDTO) []core.Row {
	result := make([]core.Row, 0, len(list))
	for _, d := range list {
		workOrder := "-"
		if d.WorkOrderID != nil {
			workOrder = *d.WorkOrderID
		}
		result = append(result, row.New(12).Add(
			col.New(2).Add(text.New(shortID(d.ControlID), props.Text{Size: 7, Top: 1, Left: 1})),
			col.New(2).Add(text.New(d.TechnicianID, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(workOrder, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(d.Reason, props.Text{Size: 7, Top: 1, Left: 1, Color: colorGray})),
			col.New(1).Add(text.New(strconv.Itoa(d.DiscrepantLines), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(numfmt.Money(d.Value), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalRow(total decimal.Decimal) core.Row {
	return row.New(12).Add(
		col.New(8),
		col.New(2).Add(text.New("TOTAL PENDIENTE:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 3, Right: 2,
		})),
		col.New(2).Add(text.New(numfmt.Money(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 3, Right: 1, Color: colorAlert,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// shortID primeros 8 caracteres de un UUID.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
