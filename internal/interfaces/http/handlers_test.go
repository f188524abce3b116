package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/consumption"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/distribution"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/dto"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/ledger"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/report"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/request"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/usecase"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/infrastructure/memory"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/infrastructure/notify"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/infrastructure/xmlexport"
	apphttp "github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/interfaces/http"
	pkgjwt "github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// newTestAPI arma la API completa sobre el almacenamiento en memoria, con el
// material mat-m (costo 1000) y 15 unidades disponibles para tec-1.
func newTestAPI(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()
	log := zerolog.Nop()
	store := memory.NewStore()
	repos := store.Repos()
	notifier := notify.NewLogNotifier(log)

	l := ledger.NewLedgerUseCase(store, repos.Materials, repos.Stock, repos.Movements, notifier, log)
	learn := consumption.NewLearningUseCase(store, repos.Patterns, repos.Materials, consumption.Config{}, log)
	deps := apphttp.RouterDeps{
		MaterialUC:    usecase.NewMaterialUseCase(store, repos.Materials, nil),
		LedgerUC:      l,
		ControlUC:     distribution.NewMaterialControlUseCase(store, repos.Controls, repos.Materials, l, learn, notifier, log),
		RequestUC:     request.NewMaterialRequestUseCase(store, repos.Requests, learn, notifier, log),
		ConsumptionUC: learn,
		ReportUC: report.NewReportUseCase(repos.Controls, repos.Materials, repos.Movements, l,
			nil, nil, xmlexport.NewKardexEncoder(), log),
		JWTSecret: testJWTSecret,
	}

	require.NoError(t, repos.Materials.Create(ctx, &entity.Material{
		ID: "mat-m", Name: "Cable UTP", UnitMeasure: "m",
		UnitCost: decimal.NewFromInt(1000), MinimumStock: decimal.NewFromInt(2),
		Status: entity.MaterialStatusActive,
	}))
	_, err := l.AddStock(ctx, entity.Actor{ID: "bod-1", Role: entity.RoleBodeguero}, dto.AddStockRequest{
		TechnicianID: "tec-1", MaterialID: "mat-m", Quantity: decimal.NewFromInt(15), Reason: "carga inicial",
	})
	require.NoError(t, err)

	app := fiber.New()
	apphttp.Router(app, deps)
	return app
}

func bearer(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func call(t *testing.T, app *fiber.App, method, path, auth string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		if s, ok := body.(string); ok {
			r = strings.NewReader(s)
		} else {
			raw, err := json.Marshal(body)
			require.NoError(t, err)
			r = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", auth)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func assign(t *testing.T, app *fiber.App, qty int) dto.MaterialControlResponse {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/controls", bearer(t, "bod-1", "bodeguero"), fiber.Map{
		"tecnico_id":       "tec-1",
		"orden_trabajo_id": "OT-100",
		"tipo_trabajo":     "instalacion",
		"materiales":       []fiber.Map{{"material_id": "mat-m", "cantidad": qty}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.MaterialControlResponse](t, resp)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo completo vía HTTP
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_CicloControlConDescuadre(t *testing.T) {
	app := newTestAPI(t)
	tec := bearer(t, "tec-1", "tecnico")

	control := assign(t, app, 10)
	assert.Equal(t, entity.ControlStatusAssigned, control.Status)

	resp := call(t, app, http.MethodPost, "/api/controls/"+control.ID+"/start", tec, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/controls/"+control.ID+"/return", tec, fiber.Map{
		"materiales": []fiber.Map{{
			"material_id": "mat-m", "cantidad_utilizada": 6, "cantidad_devuelta": 3, "cantidad_perdida": 0,
		}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	returned := decode[dto.MaterialControlResponse](t, resp)
	assert.True(t, returned.HasDiscrepancy)
	assert.True(t, returned.DiscrepancyValue.Equal(decimal.NewFromInt(1000)), "1 unidad faltante a costo 1000")

	resp = call(t, app, http.MethodGet, "/api/reports/discrepancies/total", bearer(t, "ana-1", "analista"), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	total := decode[dto.OutstandingDTO](t, resp)
	assert.Equal(t, 1, total.Count)
	assert.True(t, total.Total.Equal(decimal.NewFromInt(1000)))

	resp = call(t, app, http.MethodPost, "/api/controls/"+control.ID+"/resolve", bearer(t, "ana-1", "analista"),
		fiber.Map{"observaciones_resolucion": "cobrado al técnico"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resolved := decode[dto.MaterialControlResponse](t, resp)
	assert.Equal(t, entity.ControlStatusClosed, resolved.Status)
	assert.True(t, resolved.DiscrepancyResolved)

	resp = call(t, app, http.MethodGet, "/api/inventory/tec-1", tec, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	inv := decode[dto.TechnicianInventoryResponse](t, resp)
	require.Len(t, inv.Items, 1)
	assert.True(t, inv.Items[0].OnHand.Equal(decimal.NewFromInt(8)), "15 - 10 consumidas + 3 devueltas")
	assert.True(t, inv.Items[0].Reserved.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Mapeo de errores
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_AsignarSinStock_Retorna409(t *testing.T) {
	app := newTestAPI(t)
	resp := call(t, app, http.MethodPost, "/api/controls", bearer(t, "bod-1", "bodeguero"), fiber.Map{
		"tecnico_id": "tec-1",
		"materiales": []fiber.Map{{"material_id": "mat-m", "cantidad": 1000}},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	assert.Equal(t, "mat-m", body["material_id"])
}

func TestAPI_CuerpoInvalidoYValidacion(t *testing.T) {
	app := newTestAPI(t)
	bod := bearer(t, "bod-1", "bodeguero")

	resp := call(t, app, http.MethodPost, "/api/controls", bod, "{no es json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, resp).Code)

	resp = call(t, app, http.MethodPost, "/api/controls", bod, fiber.Map{"materiales": []fiber.Map{}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
}

func TestAPI_ControlInexistente_Retorna404(t *testing.T) {
	app := newTestAPI(t)
	resp := call(t, app, http.MethodGet, "/api/controls/no-existe", bearer(t, "ana-1", "analista"), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}

func TestAPI_ResolverAntesDeDevolver_Retorna409(t *testing.T) {
	app := newTestAPI(t)
	control := assign(t, app, 2)
	resp := call(t, app, http.MethodPost, "/api/controls/"+control.ID+"/resolve", bearer(t, "ana-1", "analista"), fiber.Map{})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_STATE", decode[dto.ErrorResponse](t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Exportaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_KardexXML_IncluyeDigest(t *testing.T) {
	app := newTestAPI(t)
	resp := call(t, app, http.MethodGet, "/api/reports/kardex/tec-1", bearer(t, "tec-1", "tecnico"), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	assert.Equal(t, report.ContentTypeXML, resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(resp.Header.Get("Digest"), "sha-256="))
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Kardex")
}

func TestAPI_ExportacionNoConfigurada_Retorna409(t *testing.T) {
	app := newTestAPI(t)
	resp := call(t, app, http.MethodGet, "/api/reports/discrepancies/pdf", bearer(t, "ana-1", "analista"), nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}
