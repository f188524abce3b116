package http

import (
	"time"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/report"
	"github.com/gofiber/fiber/v2"
)

// ReportHandler reportes de descuadres y material en campo (protegido).
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Unresolved godoc
// @Summary      Descuadres sin resolver
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DiscrepancyDTO
// @Router       /api/reports/discrepancies [get]
func (h *ReportHandler) Unresolved(c *fiber.Ctx) error {
	out, err := h.uc.ListUnresolved(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Outstanding godoc
// @Summary      Valor total pendiente de descuadres
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OutstandingDTO
// @Router       /api/reports/discrepancies/total [get]
func (h *ReportHandler) Outstanding(c *fiber.Ctx) error {
	out, err := h.uc.OutstandingTotal(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MaterialLocation godoc
// @Summary      Ubicación de un material en controles
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        material_id  path      string  true  "ID del material"
// @Success      200          {array}   dto.MaterialLocationDTO
// @Failure      404          {object}  dto.ErrorResponse
// @Router       /api/reports/materials/{material_id}/location [get]
func (h *ReportHandler) MaterialLocation(c *fiber.Ctx) error {
	out, err := h.uc.MaterialLocation(c.Context(), c.Params("material_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// InField godoc
// @Summary      Material en campo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.FieldMaterialDTO
// @Router       /api/reports/in-field [get]
func (h *ReportHandler) InField(c *fiber.Ctx) error {
	out, err := h.uc.MaterialsInField(c.Context(), time.Now().UTC())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de distribución y descuadres
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReportSummaryDTO
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DiscrepanciesPDF godoc
// @Summary      Descargar reporte de descuadres (PDF)
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    file
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/reports/discrepancies/pdf [get]
func (h *ReportHandler) DiscrepanciesPDF(c *fiber.Ctx) error {
	exp, err := h.uc.ExportDiscrepanciesPDF(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return sendExport(c, exp)
}

// InFieldXLSX godoc
// @Summary      Descargar planilla de material en campo (XLSX)
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    file
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/reports/in-field/xlsx [get]
func (h *ReportHandler) InFieldXLSX(c *fiber.Ctx) error {
	exp, err := h.uc.ExportFieldSheet(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return sendExport(c, exp)
}

// KardexXML godoc
// @Summary      Descargar kardex de un técnico (XML)
// @Description  El encabezado Digest lleva el SHA-256 de la forma canónica del documento.
// @Tags         reports
// @Security     Bearer
// @Produce      application/xml
// @Param        tecnico_id  path      string  true   "ID del técnico"
// @Param        desde       query     string  false  "Fecha inicial (YYYY-MM-DD o RFC3339)"
// @Param        hasta       query     string  false  "Fecha final (YYYY-MM-DD o RFC3339)"
// @Success      200         {file}    file
// @Failure      400         {object}  dto.ErrorResponse
// @Failure      403         {object}  dto.ErrorResponse
// @Router       /api/reports/kardex/{tecnico_id} [get]
func (h *ReportHandler) KardexXML(c *fiber.Ctx) error {
	technicianID, err := scopeTechnician(actorFrom(c), c.Params("tecnico_id"))
	if err != nil {
		return respondError(c, err)
	}
	from, to, err := dateRange(c)
	if err != nil {
		return respondError(c, err)
	}
	exp, err := h.uc.ExportKardex(c.Context(), technicianID, from, to)
	if err != nil {
		return respondError(c, err)
	}
	return sendExport(c, exp)
}

func sendExport(c *fiber.Ctx, exp *report.Export) error {
	c.Set(fiber.HeaderContentType, exp.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+exp.Filename+`"`)
	if exp.Digest != "" {
		c.Set("Digest", "sha-256="+exp.Digest)
	}
	return c.Send(exp.Content)
}
