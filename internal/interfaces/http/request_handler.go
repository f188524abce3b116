package http

import (
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/dto"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/request"
	"github.com/gofiber/fiber/v2"
)

// RequestHandler maneja las solicitudes de material (protegido).
type RequestHandler struct {
	uc *request.MaterialRequestUseCase
}

// NewRequestHandler construye el handler.
func NewRequestHandler(uc *request.MaterialRequestUseCase) *RequestHandler {
	return &RequestHandler{uc: uc}
}

// Create godoc
// @Summary      Crear solicitud de material
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateMaterialRequestRequest  true  "materiales y motivo"
// @Success      201   {object}  dto.MaterialRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/requests [post]
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaterialRequestRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateSuggested godoc
// @Summary      Crear solicitud desde sugerencias de consumo
// @Description  Usa los patrones del tipo de trabajo con confianza suficiente y material activo.
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SuggestedRequestRequest  true  "tipo_trabajo, factor_seguridad opcional"
// @Success      201   {object}  dto.MaterialRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/requests/suggested [post]
func (h *RequestHandler) CreateSuggested(c *fiber.Ctx) error {
	var in dto.SuggestedRequestRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateFromSuggestions(c.Context(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Approve godoc
// @Summary      Aprobar solicitud
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true   "ID de la solicitud"
// @Param        body  body      dto.ApproveRequestRequest  false  "cantidades aprobadas por material"
// @Success      200   {object}  dto.MaterialRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/approve [post]
func (h *RequestHandler) Approve(c *fiber.Ctx) error {
	var in dto.ApproveRequestRequest
	if len(c.Body()) > 0 {
		if ok, err := parseBody(c, &in); !ok {
			return err
		}
	}
	out, err := h.uc.Approve(c.Context(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Rechazar solicitud
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "ID de la solicitud"
// @Param        body  body      dto.RejectRequestRequest  true  "motivo_rechazo"
// @Success      200   {object}  dto.MaterialRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/reject [post]
func (h *RequestHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectRequestRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Reject(c.Context(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Deliver godoc
// @Summary      Marcar solicitud entregada
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la solicitud"
// @Success      200  {object}  dto.MaterialRequestResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/deliver [post]
func (h *RequestHandler) Deliver(c *fiber.Ctx) error {
	out, err := h.uc.Deliver(c.Context(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener solicitud
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la solicitud"
// @Success      200  {object}  dto.MaterialRequestResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requests/{id} [get]
func (h *RequestHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar solicitudes
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        tecnico_id  query     string  false  "Técnico"
// @Param        estado      query     string  false  "pendiente | aprobada | entregada | rechazada"
// @Param        limit       query     int     false  "Límite (default 20)"
// @Param        offset      query     int     false  "Desplazamiento"
// @Success      200         {object}  dto.MaterialRequestListResponse
// @Router       /api/requests [get]
func (h *RequestHandler) List(c *fiber.Ctx) error {
	var q dto.RequestQuery
	q.DefaultPage()
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.List(c.Context(), actorFrom(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
