package http

import (
	"time"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/dto"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/ledger"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/gofiber/fiber/v2"
)

// InventoryHandler maneja el inventario por técnico y el kardex (protegido).
type InventoryHandler struct {
	uc *ledger.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *ledger.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// GetInventory godoc
// @Summary      Inventario de un técnico
// @Description  Un técnico solo puede consultar su propio inventario.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        tecnico_id  path      string  true  "ID del técnico"
// @Success      200         {object}  dto.TechnicianInventoryResponse
// @Failure      403         {object}  dto.ErrorResponse
// @Failure      404         {object}  dto.ErrorResponse
// @Router       /api/inventory/{tecnico_id} [get]
func (h *InventoryHandler) GetInventory(c *fiber.Ctx) error {
	technicianID, err := scopeTechnician(actorFrom(c), c.Params("tecnico_id"))
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetInventory(c.Context(), technicianID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Kardex de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        tecnico_id            query     string  false  "Técnico (obligatorio implícito para técnicos)"
// @Param        material_id           query     string  false  "Material"
// @Param        tipo                  query     string  false  "entrada | salida | apartado | ajuste | devolucion"
// @Param        origen                query     string  false  "OT | poliza | Excel | AjusteAutomatico | Manual"
// @Param        referencia_origen_id  query     string  false  "Referencia del origen"
// @Param        desde                 query     string  false  "Fecha inicial (YYYY-MM-DD o RFC3339)"
// @Param        hasta                 query     string  false  "Fecha final (YYYY-MM-DD o RFC3339)"
// @Param        limit                 query     int     false  "Límite (default 20)"
// @Param        offset                query     int     false  "Desplazamiento"
// @Success      200                   {array}   dto.MovementResponse
// @Failure      400                   {object}  dto.ErrorResponse
// @Failure      403                   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var q dto.MovementQuery
	q.DefaultPage()
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	from, to, err := dateRange(c)
	if err != nil {
		return respondError(c, err)
	}
	q.From, q.To = from, to
	if q.TechnicianID, err = scopeTechnician(actorFrom(c), q.TechnicianID); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListMovements(c.Context(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddStock godoc
// @Summary      Ingresar material al inventario de un técnico
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.AddStockRequest  true  "tecnico_id, material_id, cantidad, motivo"
// @Success      201   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/stock [post]
func (h *InventoryHandler) AddStock(c *fiber.Ctx) error {
	var in dto.AddStockRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.AddStock(c.Context(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Adjust godoc
// @Summary      Ajustar inventario por conteo físico
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.AdjustStockRequest  true  "tecnico_id, material_id, nueva_cantidad, motivo"
// @Success      200   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Adjust(c.Context(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CommitConsumption godoc
// @Summary      Registrar consumo por OT o póliza
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ConsumptionRequest  true  "tecnico_id, material_id, cantidad, orden_trabajo_id o numero_poliza"
// @Success      201   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/consumptions [post]
func (h *InventoryHandler) CommitConsumption(c *fiber.Ctx) error {
	var in dto.ConsumptionRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CommitConsumption(c.Context(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// LowStock godoc
// @Summary      Materiales bajo el stock mínimo
// @Description  Ordenados por prioridad: agotados primero, luego por déficit relativo y costo.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        tecnico_id  query     string  false  "Filtrar por técnico. Vacío = todos."
// @Success      200         {array}   dto.LowStockDTO
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStockReport(c.Context(), c.Query("tecnico_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// scopeTechnician limita a un técnico a sus propios datos. Para otros roles devuelve el ID pedido.
func scopeTechnician(actor entity.Actor, technicianID string) (string, error) {
	if actor.Role != entity.RoleTechnician {
		return technicianID, nil
	}
	if technicianID == "" || technicianID == actor.ID {
		return actor.ID, nil
	}
	return "", domain.Forbiddenf("el técnico %s solo puede consultar sus propios datos", actor.ID)
}

// dateRange lee los parámetros desde/hasta. Una fecha sin hora en "hasta" incluye el día completo.
func dateRange(c *fiber.Ctx) (from, to *time.Time, err error) {
	if s := c.Query("desde"); s != "" {
		t, _, err := parseDate(s)
		if err != nil {
			return nil, nil, domain.NewValidationError("desde", "fecha inválida")
		}
		from = &t
	}
	if s := c.Query("hasta"); s != "" {
		t, dateOnly, err := parseDate(s)
		if err != nil {
			return nil, nil, domain.NewValidationError("hasta", "fecha inválida")
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		to = &t
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, domain.NewValidationError("hasta", "anterior a desde")
	}
	return from, to, nil
}

func parseDate(s string) (time.Time, bool, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	return t, false, err
}
