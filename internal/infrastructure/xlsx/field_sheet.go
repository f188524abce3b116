// Package xlsx exporta el reporte de materiales en campo a Excel.
package xlsx

import (
	"context"
	"fmt"
	"time"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/dto"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/report"
	"github.com/xuri/excelize/v2"
)

var _ report.FieldSheetGenerator = (*FieldSheetGenerator)(nil)

const sheetName = "En campo"

var headers = []string{
	"Control", "Técnico", "OT", "Material", "Nombre", "Cantidad asignada",
	"Costo unitario", "Valor", "Estado", "Fecha asignación", "Días en campo",
}

// FieldSheetGenerator arma un libro con una fila por línea de material en campo.
type FieldSheetGenerator struct{}

func NewFieldSheetGenerator() *FieldSheetGenerator { return &FieldSheetGenerator{} }

// GenerateFieldSheet devuelve el .xlsx en bytes.
func (g *FieldSheetGenerator) GenerateFieldSheet(_ context.Context, rows []dto.FieldMaterialDTO, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	f.SetCellValue(sheetName, "A1", "Materiales en campo")
	f.SetCellValue(sheetName, "A2", "Generado: "+generatedAt.Format("02/01/2006 15:04"))
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		f.SetCellValue(sheetName, cell, h)
	}
	f.SetCellStyle(sheetName, "A4", "K4", bold)

	for i, r := range rows {
		n := i + 5
		workOrder := ""
		if r.WorkOrderID != nil {
			workOrder = *r.WorkOrderID
		}
		qty, _ := r.AssignedQty.Float64()
		cost, _ := r.UnitCost.Float64()
		value, _ := r.AssignedQty.Mul(r.UnitCost).Float64()

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", n), r.ControlID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", n), r.TechnicianID)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", n), workOrder)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", n), r.MaterialID)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", n), r.MaterialName)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", n), qty)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", n), cost)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", n), value)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", n), r.ControlStatus)
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", n), r.AssignedAt.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("K%d", n), r.DaysInField)
	}
	if len(rows) > 0 {
		last := len(rows) + 4
		f.SetCellStyle(sheetName, "G5", fmt.Sprintf("H%d", last), money)
		f.SetCellFormula(sheetName, fmt.Sprintf("H%d", last+1), fmt.Sprintf("SUM(H5:H%d)", last))
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", last+1), "Total")
		f.SetCellStyle(sheetName, fmt.Sprintf("G%d", last+1), fmt.Sprintf("H%d", last+1), bold)
	}
	f.SetColWidth(sheetName, "A", "A", 38)
	f.SetColWidth(sheetName, "E", "E", 28)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
