package http

import (
	"strconv"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/consumption"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/dto"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain"
	"github.com/gofiber/fiber/v2"
)

// ConsumptionHandler expone los patrones de consumo aprendidos (protegido).
type ConsumptionHandler struct {
	uc *consumption.LearningUseCase
}

// NewConsumptionHandler construye el handler.
func NewConsumptionHandler(uc *consumption.LearningUseCase) *ConsumptionHandler {
	return &ConsumptionHandler{uc: uc}
}

// ListPatterns godoc
// @Summary      Patrones de consumo por tipo de trabajo
// @Tags         consumption
// @Security     Bearer
// @Produce      json
// @Param        tipo_trabajo  path      string  true  "Tipo de trabajo"
// @Success      200           {array}   dto.ConsumptionPatternResponse
// @Router       /api/consumption/patterns/{tipo_trabajo} [get]
func (h *ConsumptionHandler) ListPatterns(c *fiber.Ctx) error {
	out, err := h.uc.ListPatterns(c.Context(), c.Params("tipo_trabajo"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Suggest godoc
// @Summary      Cantidades sugeridas para un tipo de trabajo
// @Tags         consumption
// @Security     Bearer
// @Produce      json
// @Param        tipo_trabajo      path      string  true   "Tipo de trabajo"
// @Param        factor_seguridad  query     number  false  "Factor de seguridad (default configurado)"
// @Success      200               {array}   dto.MaterialSuggestionDTO
// @Failure      400               {object}  dto.ErrorResponse
// @Router       /api/consumption/suggestions/{tipo_trabajo} [get]
func (h *ConsumptionHandler) Suggest(c *fiber.Ctx) error {
	var factor *float64
	if s := c.Query("factor_seguridad"); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f <= 0 {
			return respondError(c, domain.NewValidationError("factor_seguridad", "debe ser un número positivo"))
		}
		factor = &f
	}
	out, err := h.uc.Suggest(c.Context(), c.Params("tipo_trabajo"), factor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CheckAnomaly godoc
// @Summary      Evaluar un consumo contra el patrón
// @Tags         consumption
// @Security     Bearer
// @Produce      json
// @Param        tipo_trabajo  query     string  true  "Tipo de trabajo"
// @Param        material_id   query     string  true  "Material"
// @Param        cantidad      query     number  true  "Consumo real"
// @Success      200           {object}  dto.AnomalyResponse
// @Failure      400           {object}  dto.ErrorResponse
// @Router       /api/consumption/anomaly [get]
func (h *ConsumptionHandler) CheckAnomaly(c *fiber.Ctx) error {
	jobType, materialID := c.Query("tipo_trabajo"), c.Query("material_id")
	if jobType == "" || materialID == "" {
		return respondError(c, domain.NewValidationError("", "tipo_trabajo y material_id son requeridos"))
	}
	actual, err := strconv.ParseFloat(c.Query("cantidad"), 64)
	if err != nil {
		return respondError(c, domain.NewValidationError("cantidad", "debe ser numérica"))
	}
	out, err := h.uc.CheckAnomaly(c.Context(), jobType, materialID, actual)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RecordSample godoc
// @Summary      Registrar muestra de consumo
// @Description  Carga manual de históricos; las devoluciones registran sus muestras automáticamente.
// @Tags         consumption
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RecordConsumptionRequest  true  "tipo_trabajo, material_id, cantidad"
// @Success      201   {object}  dto.ConsumptionPatternResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/consumption/samples [post]
func (h *ConsumptionHandler) RecordSample(c *fiber.Ctx) error {
	var in dto.RecordConsumptionRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Record(c.Context(), in.JobType, in.MaterialID, in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
