// Package report contiene las consultas de descuadres y material en campo,
// y las exportaciones (PDF, XLSX y kardex XML) construidas sobre ellas.
package report

import (
	"context"
	"sort"
	"time"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/dto"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// LowStockSource reporte de stock bajo del ledger.
type LowStockSource interface {
	LowStockReport(ctx context.Context, technicianID string) ([]dto.LowStockDTO, error)
}

// ReportUseCase consultas de solo lectura sobre controles y movimientos.
type ReportUseCase struct {
	controls  repository.MaterialControlRepository
	materials repository.MaterialRepository
	movements repository.InventoryMovementRepository
	lowStock  LowStockSource
	pdf       DiscrepancyPDFGenerator
	sheet     FieldSheetGenerator
	kardex    KardexEncoder
	log       zerolog.Logger
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso. Los generadores de exportación pueden ser nil;
// en ese caso la exportación correspondiente no está disponible.
func NewReportUseCase(
	controls repository.MaterialControlRepository,
	materials repository.MaterialRepository,
	movements repository.InventoryMovementRepository,
	lowStock LowStockSource,
	pdf DiscrepancyPDFGenerator,
	sheet FieldSheetGenerator,
	kardex KardexEncoder,
	log zerolog.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		controls:  controls,
		materials: materials,
		movements: movements,
		lowStock:  lowStock,
		pdf:       pdf,
		sheet:     sheet,
		kardex:    kardex,
		log:       log.With().Str("component", "report").Logger(),
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (pruebas).
func (uc *ReportUseCase) WithClock(now func() time.Time) *ReportUseCase {
	uc.now = now
	return uc
}

// ListUnresolved controles con descuadre sin resolver, de mayor a menor valor.
func (uc *ReportUseCase) ListUnresolved(ctx context.Context) ([]dto.DiscrepancyDTO, error) {
	list, err := uc.controls.List(ctx, repository.ControlFilter{
		HasDiscrepancy: lo.ToPtr(true),
		Resolved:       lo.ToPtr(false),
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.DiscrepancyDTO, 0, len(list))
	for _, c := range list {
		lines := 0
		for _, l := range c.Items {
			if !l.Accounted().Equal(l.AssignedQty) {
				lines++
			}
		}
		out = append(out, dto.DiscrepancyDTO{
			ControlID:       c.ID,
			TechnicianID:    c.TechnicianID,
			WorkOrderID:     c.WorkOrderID,
			Reason:          c.DiscrepancyReason,
			Value:           c.DiscrepancyValue,
			ReturnedAt:      c.ReturnedAt,
			AssignedAt:      c.AssignedAt,
			DiscrepantLines: lines,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value.GreaterThan(out[j].Value) })
	return out, nil
}

// OutstandingTotal suma del valor de los descuadres sin resolver.
func (uc *ReportUseCase) OutstandingTotal(ctx context.Context) (*dto.OutstandingDTO, error) {
	var (
		count int
		total decimal.Decimal
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		list, err := uc.ListUnresolved(egCtx)
		count = len(list)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = uc.controls.SumUnresolvedDiscrepancy(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return &dto.OutstandingDTO{Count: count, Total: total}, nil
}

// MaterialLocation todos los controles (activos e históricos) que incluyen el material.
func (uc *ReportUseCase) MaterialLocation(ctx context.Context, materialID string) ([]dto.MaterialLocationDTO, error) {
	list, err := uc.controls.List(ctx, repository.ControlFilter{MaterialID: materialID})
	if err != nil {
		return nil, err
	}
	out := make([]dto.MaterialLocationDTO, 0, len(list))
	for _, c := range list {
		l := c.Line(materialID)
		if l == nil {
			continue
		}
		out = append(out, dto.MaterialLocationDTO{
			ControlID:     c.ID,
			TechnicianID:  c.TechnicianID,
			WorkOrderID:   c.WorkOrderID,
			ControlStatus: c.Status,
			LineStatus:    l.Status,
			AssignedQty:   l.AssignedQty,
			UsedQty:       l.UsedQty,
			ReturnedQty:   l.ReturnedQty,
			LostQty:       l.LostQty,
			AssignedAt:    c.AssignedAt,
			InField:       c.InField(),
		})
	}
	return out, nil
}

// MaterialsInField líneas de controles no terminados con los días que llevan en campo.
func (uc *ReportUseCase) MaterialsInField(ctx context.Context, now time.Time) ([]dto.FieldMaterialDTO, error) {
	list, err := uc.controls.List(ctx, repository.ControlFilter{
		Statuses: []string{
			entity.ControlStatusAssigned,
			entity.ControlStatusInProgress,
			entity.ControlStatusWorkCompleted,
		},
	})
	if err != nil {
		return nil, err
	}
	catalog := make(map[string]*entity.Material)
	out := make([]dto.FieldMaterialDTO, 0, len(list))
	for _, c := range list {
		days := DaysInField(c.AssignedAt, now)
		for _, l := range c.Items {
			mat, ok := catalog[l.MaterialID]
			if !ok {
				if mat, err = uc.materials.GetByID(ctx, l.MaterialID); err != nil {
					return nil, err
				}
				catalog[l.MaterialID] = mat
			}
			row := dto.FieldMaterialDTO{
				ControlID:     c.ID,
				TechnicianID:  c.TechnicianID,
				WorkOrderID:   c.WorkOrderID,
				MaterialID:    l.MaterialID,
				AssignedQty:   l.AssignedQty,
				ControlStatus: c.Status,
				AssignedAt:    c.AssignedAt,
				DaysInField:   days,
			}
			if mat != nil {
				row.MaterialName = mat.Name
				row.UnitCost = mat.UnitCost
			}
			out = append(out, row)
		}
	}
	return out, nil
}

// DaysInField días completos transcurridos desde la asignación.
func DaysInField(assignedAt, now time.Time) int {
	d := now.Sub(assignedAt)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}

// Summary resumen de descuadres, controles por estado, material en campo y stock bajo.
// Las consultas corren en paralelo.
func (uc *ReportUseCase) Summary(ctx context.Context) (*dto.ReportSummaryDTO, error) {
	now := uc.now()
	out := &dto.ReportSummaryDTO{GeneratedAt: now}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		o, err := uc.OutstandingTotal(egCtx)
		if err != nil {
			return err
		}
		out.UnresolvedCount = o.Count
		out.OutstandingValue = o.Total
		return nil
	})
	eg.Go(func() error {
		counts, err := uc.controls.CountByStatus(egCtx)
		out.ControlsByStatus = counts
		return err
	})
	eg.Go(func() error {
		field, err := uc.MaterialsInField(egCtx, now)
		if err != nil {
			return err
		}
		value := decimal.Zero
		for _, f := range field {
			value = value.Add(f.AssignedQty.Mul(f.UnitCost))
		}
		out.FieldLines = len(field)
		out.FieldValue = value
		return nil
	})
	if uc.lowStock != nil {
		eg.Go(func() error {
			low, err := uc.lowStock.LowStockReport(egCtx, "")
			out.LowStockItems = len(low)
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
