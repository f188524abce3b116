package report

import (
	"context"
	"fmt"
	"time"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/dto"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/ledger"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/repository"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// DiscrepancyPDFGenerator genera el reporte de descuadres en PDF.
type DiscrepancyPDFGenerator interface {
	GenerateDiscrepancyPDF(ctx context.Context, rows []dto.DiscrepancyDTO, total decimal.Decimal, generatedAt time.Time) ([]byte, error)
}

// FieldSheetGenerator genera la planilla de material en campo.
type FieldSheetGenerator interface {
	GenerateFieldSheet(ctx context.Context, rows []dto.FieldMaterialDTO, generatedAt time.Time) ([]byte, error)
}

// KardexEncoder serializa el kardex de un técnico.
type KardexEncoder interface {
	EncodeKardex(ctx context.Context, technicianID string, movements []dto.MovementResponse, generatedAt time.Time) (*KardexDocument, error)
}

// KardexDocument kardex serializado y su huella SHA-256 (hex) sobre la forma canónica.
type KardexDocument struct {
	Content []byte
	Digest  string
}

// Export archivo listo para descargar.
type Export struct {
	Filename    string
	ContentType string
	Content     []byte
	Digest      string
}

// Tipos de contenido de las exportaciones.
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeXML  = "application/xml"
)

// kardexLimit máximo de movimientos por exportación.
const kardexLimit = 5000

// ExportDiscrepanciesPDF reporte PDF de descuadres pendientes.
func (uc *ReportUseCase) ExportDiscrepanciesPDF(ctx context.Context) (*Export, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("exportación pdf no configurada: %w", domain.ErrInvalidState)
	}
	rows, err := uc.ListUnresolved(ctx)
	if err != nil {
		return nil, err
	}
	total := lo.Reduce(rows, func(acc decimal.Decimal, r dto.DiscrepancyDTO, _ int) decimal.Decimal {
		return acc.Add(r.Value)
	}, decimal.Zero)
	now := uc.now()
	content, err := uc.pdf.GenerateDiscrepancyPDF(ctx, rows, total, now)
	if err != nil {
		return nil, fmt.Errorf("reporte descuadres: %w", err)
	}
	return &Export{
		Filename:    "descuadres_" + now.Format("20060102") + ".pdf",
		ContentType: ContentTypePDF,
		Content:     content,
	}, nil
}

// ExportFieldSheet planilla XLSX del material en campo.
func (uc *ReportUseCase) ExportFieldSheet(ctx context.Context) (*Export, error) {
	if uc.sheet == nil {
		return nil, fmt.Errorf("exportación xlsx no configurada: %w", domain.ErrInvalidState)
	}
	now := uc.now()
	rows, err := uc.MaterialsInField(ctx, now)
	if err != nil {
		return nil, err
	}
	content, err := uc.sheet.GenerateFieldSheet(ctx, rows, now)
	if err != nil {
		return nil, fmt.Errorf("planilla material en campo: %w", err)
	}
	return &Export{
		Filename:    "material_en_campo_" + now.Format("20060102") + ".xlsx",
		ContentType: ContentTypeXLSX,
		Content:     content,
	}, nil
}

// ExportKardex kardex XML de un técnico entre from y to (opcionales).
func (uc *ReportUseCase) ExportKardex(ctx context.Context, technicianID string, from, to *time.Time) (*Export, error) {
	if uc.kardex == nil {
		return nil, fmt.Errorf("exportación kardex no configurada: %w", domain.ErrInvalidState)
	}
	if technicianID == "" {
		return nil, domain.NewValidationError("tecnico_id", "requerido")
	}
	list, err := uc.movements.List(ctx, repository.MovementFilter{
		TechnicianID: technicianID,
		From:         from,
		To:           to,
		Limit:        kardexLimit,
	})
	if err != nil {
		return nil, err
	}
	movs := lo.Map(list, func(m *entity.InventoryMovement, _ int) dto.MovementResponse {
		return ledger.ToMovementResponse(m)
	})
	now := uc.now()
	doc, err := uc.kardex.EncodeKardex(ctx, technicianID, movs, now)
	if err != nil {
		return nil, fmt.Errorf("kardex: %w", err)
	}
	uc.log.Info().Str("tecnico_id", technicianID).Int("movimientos", len(movs)).
		Str("digest", doc.Digest).Msg("kardex exportado")
	return &Export{
		Filename:    "kardex_" + technicianID + "_" + now.Format("20060102") + ".xml",
		ContentType: ContentTypeXML,
		Content:     doc.Content,
		Digest:      doc.Digest,
	}, nil
}
