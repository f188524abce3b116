package http

import (
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/consumption"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/distribution"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/ledger"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/report"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/request"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/usecase"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MaterialUC    *usecase.MaterialUseCase
	LedgerUC      *ledger.LedgerUseCase
	ControlUC     *distribution.MaterialControlUseCase
	RequestUC     *request.MaterialRequestUseCase
	ConsumptionUC *consumption.LearningUseCase
	ReportUC      *report.ReportUseCase
	JWTSecret     string
}

const (
	tecnico   = entity.RoleTechnician
	bodeguero = entity.RoleBodeguero
	analista  = entity.RoleAnalyst
	admin     = entity.RoleAdmin
)

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole(tecnico, bodeguero, analista, admin))
	staff := RequireRole(bodeguero, analista, admin)
	warehouse := RequireRole(bodeguero, admin)
	supervisors := RequireRole(analista, admin)

	// Catálogo de materiales
	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Post("/", warehouse, materialHandler.Create)
	materials.Put("/:id", warehouse, materialHandler.Update)

	// Inventario por técnico (las rutas fijas van antes de /:tecnico_id)
	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC)
	inv.Get("/movements", inventoryHandler.ListMovements)
	inv.Get("/low-stock", staff, inventoryHandler.LowStock)
	inv.Post("/stock", warehouse, inventoryHandler.AddStock)
	inv.Post("/adjustments", warehouse, inventoryHandler.Adjust)
	inv.Post("/consumptions", RequireRole(tecnico, bodeguero, admin), inventoryHandler.CommitConsumption)
	inv.Get("/:tecnico_id", inventoryHandler.GetInventory)

	// Controles de material
	controls := protected.Group("/controls")
	controlHandler := NewControlHandler(deps.ControlUC)
	controls.Post("/", warehouse, controlHandler.Assign)
	controls.Get("/", controlHandler.List)
	controls.Get("/:id", controlHandler.GetByID)
	controls.Post("/:id/start", RequireRole(tecnico), controlHandler.StartWork)
	controls.Post("/:id/complete", RequireRole(tecnico), controlHandler.CompleteWork)
	controls.Post("/:id/return", RequireRole(tecnico), controlHandler.Return)
	controls.Post("/:id/resolve", supervisors, controlHandler.Resolve)
	controls.Post("/:id/close", staff, controlHandler.Close)

	// Solicitudes de material
	requests := protected.Group("/requests")
	requestHandler := NewRequestHandler(deps.RequestUC)
	requests.Post("/", RequireRole(tecnico, bodeguero, admin), requestHandler.Create)
	requests.Post("/suggested", RequireRole(tecnico, bodeguero, admin), requestHandler.CreateSuggested)
	requests.Get("/", requestHandler.List)
	requests.Get("/:id", requestHandler.GetByID)
	requests.Post("/:id/approve", staff, requestHandler.Approve)
	requests.Post("/:id/reject", staff, requestHandler.Reject)
	requests.Post("/:id/deliver", warehouse, requestHandler.Deliver)

	// Aprendizaje de consumo
	cons := protected.Group("/consumption")
	consumptionHandler := NewConsumptionHandler(deps.ConsumptionUC)
	cons.Get("/patterns/:tipo_trabajo", consumptionHandler.ListPatterns)
	cons.Get("/suggestions/:tipo_trabajo", consumptionHandler.Suggest)
	cons.Get("/anomaly", staff, consumptionHandler.CheckAnomaly)
	cons.Post("/samples", RequireRole(analista, admin), consumptionHandler.RecordSample)

	// Reportes
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/discrepancies", staff, reportHandler.Unresolved)
	reports.Get("/discrepancies/total", staff, reportHandler.Outstanding)
	reports.Get("/discrepancies/pdf", staff, reportHandler.DiscrepanciesPDF)
	reports.Get("/materials/:material_id/location", staff, reportHandler.MaterialLocation)
	reports.Get("/in-field", staff, reportHandler.InField)
	reports.Get("/in-field/xlsx", staff, reportHandler.InFieldXLSX)
	reports.Get("/summary", staff, reportHandler.Summary)
	reports.Get("/kardex/:tecnico_id", reportHandler.KardexXML)
}
