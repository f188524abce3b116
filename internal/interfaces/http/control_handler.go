package http

import (
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/distribution"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/dto"
	"github.com/gofiber/fiber/v2"
)

// ControlHandler maneja el ciclo de vida de los controles de material (protegido).
type ControlHandler struct {
	uc *distribution.MaterialControlUseCase
}

// NewControlHandler construye el handler.
func NewControlHandler(uc *distribution.MaterialControlUseCase) *ControlHandler {
	return &ControlHandler{uc: uc}
}

// Assign godoc
// @Summary      Asignar materiales a un técnico
// @Description  Aparta el stock de cada línea. Todo o nada: si una línea no alcanza no se aparta ninguna.
// @Tags         controls
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.AssignMaterialsRequest  true  "tecnico_id, orden_trabajo_id, tipo_trabajo, materiales"
// @Success      201   {object}  dto.MaterialControlResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/controls [post]
func (h *ControlHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignMaterialsRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Assign(c.Context(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// StartWork godoc
// @Summary      Iniciar trabajo
// @Tags         controls
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del control"
// @Success      200  {object}  dto.MaterialControlResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/controls/{id}/start [post]
func (h *ControlHandler) StartWork(c *fiber.Ctx) error {
	out, err := h.uc.StartWork(c.Context(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CompleteWork godoc
// @Summary      Marcar trabajo completado
// @Tags         controls
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del control"
// @Success      200  {object}  dto.MaterialControlResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/controls/{id}/complete [post]
func (h *ControlHandler) CompleteWork(c *fiber.Ctx) error {
	out, err := h.uc.CompleteWork(c.Context(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Return godoc
// @Summary      Reportar uso y devolución
// @Description  Calcula el descuadre por línea: asignada contra utilizada + devuelta + perdida.
// @Tags         controls
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                      true  "ID del control"
// @Param        body  body      dto.ReturnMaterialsRequest  true  "materiales con cantidades utilizada/devuelta/perdida"
// @Success      200   {object}  dto.MaterialControlResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/controls/{id}/return [post]
func (h *ControlHandler) Return(c *fiber.Ctx) error {
	var in dto.ReturnMaterialsRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Return(c.Context(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Resolve godoc
// @Summary      Resolver descuadre
// @Tags         controls
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                         true  "ID del control"
// @Param        body  body      dto.ResolveDiscrepancyRequest  true  "observaciones_resolucion"
// @Success      200   {object}  dto.MaterialControlResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/controls/{id}/resolve [post]
func (h *ControlHandler) Resolve(c *fiber.Ctx) error {
	var in dto.ResolveDiscrepancyRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Resolve(c.Context(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Close godoc
// @Summary      Cerrar control sin descuadre
// @Tags         controls
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true   "ID del control"
// @Param        body  body      dto.CloseControlRequest  false  "observaciones"
// @Success      200   {object}  dto.MaterialControlResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/controls/{id}/close [post]
func (h *ControlHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseControlRequest
	if len(c.Body()) > 0 {
		if ok, err := parseBody(c, &in); !ok {
			return err
		}
	}
	out, err := h.uc.Close(c.Context(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener control
// @Tags         controls
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del control"
// @Success      200  {object}  dto.MaterialControlResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/controls/{id} [get]
func (h *ControlHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar controles
// @Description  Un técnico solo ve sus propios controles.
// @Tags         controls
// @Security     Bearer
// @Produce      json
// @Param        tecnico_id          query     string  false  "Técnico"
// @Param        estado              query     string  false  "asignado | en_trabajo | trabajo_completado | devolucion_completada | cerrado"
// @Param        orden_trabajo_id    query     string  false  "Orden de trabajo"
// @Param        material_id         query     string  false  "Controles que incluyen el material"
// @Param        tiene_descuadre     query     bool    false  "Con descuadre"
// @Param        descuadre_resuelto  query     bool    false  "Descuadre resuelto"
// @Param        limit               query     int     false  "Límite (default 20)"
// @Param        offset              query     int     false  "Desplazamiento"
// @Success      200                 {object}  dto.MaterialControlListResponse
// @Router       /api/controls [get]
func (h *ControlHandler) List(c *fiber.Ctx) error {
	var q dto.ControlQuery
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
