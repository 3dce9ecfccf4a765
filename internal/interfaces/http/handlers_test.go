package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-backoffice/internal/application/analytics"
	"github.com/jhoicas/retail-backoffice/internal/application/billing"
	"github.com/jhoicas/retail-backoffice/internal/application/dto"
	"github.com/jhoicas/retail-backoffice/internal/application/inventory"
	"github.com/jhoicas/retail-backoffice/internal/application/usecase"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
	"github.com/jhoicas/retail-backoffice/internal/infrastructure/memory"
	"github.com/jhoicas/retail-backoffice/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/retail-backoffice/internal/interfaces/http"
	"github.com/jhoicas/retail-backoffice/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	app      *fiber.App
	goods    *memory.GoodsItemRepository
	invoices *memory.InvoiceRepository
	category *entity.Category
	unit     *entity.Unit
	employee *entity.Employee
}

// newTestEnv arma la API completa sobre el almacén en memoria.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	log := logger.Nop().Zerolog()
	store := memory.NewStore()

	goodsRepo := memory.NewGoodsItemRepository(store)
	invoiceRepo := memory.NewInvoiceRepository(store)
	categoryRepo := memory.NewCategoryRepository(store)
	brandRepo := memory.NewBrandRepository(store)
	unitRepo := memory.NewUnitRepository(store)
	employeeRepo := memory.NewEmployeeRepository(store)
	jobTitleRepo := memory.NewJobTitleRepository(store)
	paramRepo := memory.NewSalaryParameterRepository(store)
	analyticsRepo := memory.NewAnalyticsRepository(store)
	txRunner := memory.NewTxRunner(store)

	ledger := inventory.NewStockLedger(txRunner, log)
	invoiceUC := billing.NewCreateInvoiceUseCase(txRunner, ledger, employeeRepo, invoiceRepo, log)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		GoodsItemUC:   usecase.NewGoodsItemUseCase(goodsRepo, categoryRepo, brandRepo, unitRepo, ledger),
		CatalogUC:     usecase.NewCatalogUseCase(categoryRepo, brandRepo, unitRepo),
		EmployeeUC:    usecase.NewEmployeeUseCase(employeeRepo, jobTitleRepo, paramRepo),
		Invoices:      invoiceUC,
		InvoicePDF:    billing.NewPDFUseCase(invoiceRepo, employeeRepo, goodsRepo, pdf.NewMarotoPDFGenerator(), "Tạp hóa Test"),
		Revenue:       analytics.NewRevenueUseCase(analyticsRepo),
		Margins:       analytics.NewMarginsUseCase(analyticsRepo),
		Replenishment: inventory.NewReplenishmentUseCase(goodsRepo),
		Log:           log,
	})

	env := &testEnv{
		app:      app,
		goods:    goodsRepo,
		invoices: invoiceRepo,
		category: &entity.Category{Name: "Đồ uống"},
		unit:     &entity.Unit{Name: "Lon"},
	}
	require.NoError(t, categoryRepo.Create(ctx, env.category))
	require.NoError(t, unitRepo.Create(ctx, env.unit))
	jt := &entity.JobTitle{Name: "Thu ngân", SalaryCoefficient: decimal.NewFromInt(1)}
	require.NoError(t, jobTitleRepo.Create(ctx, jt))
	env.employee = &entity.Employee{FullName: "Trần Thị Bình", JobTitleID: jt.ID}
	require.NoError(t, employeeRepo.Create(ctx, env.employee))
	return env
}

func (e *testEnv) addGoods(t *testing.T, name string, price string, stock int) *entity.GoodsItem {
	t.Helper()
	g := &entity.GoodsItem{
		Name:          name,
		CategoryID:    e.category.ID,
		UnitID:        e.unit.ID,
		PurchasePrice: decimal.RequireFromString("1.00"),
		SalePrice:     decimal.RequireFromString(price),
		StockQuantity: stock,
	}
	require.NoError(t, e.goods.Create(context.Background(), g))
	return g
}

func (e *testEnv) stock(t *testing.T, id int64) int {
	t.Helper()
	g, err := e.goods.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, g)
	return g.StockQuantity
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := e.app.Test(req, -1)
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

func (e *testEnv) invoiceCount(t *testing.T) int {
	t.Helper()
	list, err := e.invoices.List(context.Background(), repository.InvoiceFilter{})
	require.NoError(t, err)
	return len(list)
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }

func ptr[T any](v T) *T { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Facturación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateInvoice_Exitosa(t *testing.T) {
	env := newTestEnv(t)
	item := env.addGoods(t, "Coca-Cola", "5.00", 10)

	resp := env.do(t, http.MethodPost, "/api/invoices", dto.CreateInvoiceRequest{
		EmployeeID: env.employee.ID,
		Lines:      []dto.InvoiceLineRequest{{GoodsItemID: item.ID, Quantity: 3}},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	out := decode[dto.InvoiceResponse](t, resp)
	assert.NotZero(t, out.InvoiceID)
	assert.Equal(t, env.employee.ID, out.EmployeeID)
	assert.False(t, out.Timestamp.IsZero())
	assert.True(t, out.Total.Equal(decimal.RequireFromString("15.00")), "total: %s", out.Total)
	require.Len(t, out.Lines, 1)
	assert.Equal(t, 3, out.Lines[0].Quantity)
	assert.True(t, out.Lines[0].UnitPrice.Equal(decimal.RequireFromString("5.00")))
	assert.True(t, out.Lines[0].Subtotal.Equal(decimal.RequireFromString("15.00")))
	assert.Equal(t, 7, env.stock(t, item.ID))

	// La factura se puede consultar de nuevo
	get := env.do(t, http.MethodGet, "/api/invoices/"+itoa(out.InvoiceID), nil)
	require.Equal(t, fiber.StatusOK, get.StatusCode)
	again := decode[dto.InvoiceResponse](t, get)
	assert.True(t, again.Total.Equal(out.Total))
}

func TestCreateInvoice_StockInsuficiente(t *testing.T) {
	env := newTestEnv(t)
	a := env.addGoods(t, "Pepsi", "4.00", 10)
	b := env.addGoods(t, "Sữa tươi", "6.00", 2)

	resp := env.do(t, http.MethodPost, "/api/invoices", dto.CreateInvoiceRequest{
		EmployeeID: env.employee.ID,
		Lines: []dto.InvoiceLineRequest{
			{GoodsItemID: a.ID, Quantity: 3},
			{GoodsItemID: b.ID, Quantity: 5},
		},
	})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Contains(t, body.Message, "Sữa tươi")

	assert.Equal(t, 10, env.stock(t, a.ID))
	assert.Equal(t, 2, env.stock(t, b.ID))
	assert.Zero(t, env.invoiceCount(t))
}

func TestCreateInvoice_LineaDuplicada(t *testing.T) {
	env := newTestEnv(t)
	item := env.addGoods(t, "Mì gói", "1.50", 10)

	resp := env.do(t, http.MethodPost, "/api/invoices", dto.CreateInvoiceRequest{
		EmployeeID: env.employee.ID,
		Lines: []dto.InvoiceLineRequest{
			{GoodsItemID: item.ID, Quantity: 1},
			{GoodsItemID: item.ID, Quantity: 2},
		},
	})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE_LINE", decode[dto.ErrorResponse](t, resp).Code)
	assert.Equal(t, 10, env.stock(t, item.ID))
}

func TestCreateInvoice_SinLineasValidas(t *testing.T) {
	env := newTestEnv(t)
	item := env.addGoods(t, "Nước suối", "2.00", 10)

	resp := env.do(t, http.MethodPost, "/api/invoices", dto.CreateInvoiceRequest{
		EmployeeID: env.employee.ID,
		Lines:      []dto.InvoiceLineRequest{{GoodsItemID: item.ID, Quantity: 0}},
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "NO_VALID_LINES", decode[dto.ErrorResponse](t, resp).Code)
}

func TestCreateInvoice_EmpleadoInexistente(t *testing.T) {
	env := newTestEnv(t)
	item := env.addGoods(t, "Trà xanh", "3.00", 10)

	resp := env.do(t, http.MethodPost, "/api/invoices", dto.CreateInvoiceRequest{
		EmployeeID: 999,
		Lines:      []dto.InvoiceLineRequest{{GoodsItemID: item.ID, Quantity: 1}},
	})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}

func TestCreateInvoice_CuerpoInvalido(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/api/invoices", bytes.NewReader([]byte("{no-json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, resp).Code)
}

func TestInvoice_IDInvalido(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/invoices/abc", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)

	resp = env.do(t, http.MethodGet, "/api/invoices/42", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestInvoice_PDF(t *testing.T) {
	env := newTestEnv(t)
	item := env.addGoods(t, "Bánh mì", "2.50", 5)
	created := env.do(t, http.MethodPost, "/api/invoices", dto.CreateInvoiceRequest{
		EmployeeID: env.employee.ID,
		Lines:      []dto.InvoiceLineRequest{{GoodsItemID: item.ID, Quantity: 2}},
	})
	require.Equal(t, fiber.StatusCreated, created.StatusCode)
	inv := decode[dto.InvoiceResponse](t, created)

	resp := env.do(t, http.MethodGet, "/api/invoices/"+itoa(inv.InvoiceID)+"/pdf", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "factura_")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestInvoice_DeleteYListadoPorEmpleado(t *testing.T) {
	env := newTestEnv(t)
	item := env.addGoods(t, "Kẹo", "1.00", 5)
	created := env.do(t, http.MethodPost, "/api/invoices", dto.CreateInvoiceRequest{
		EmployeeID: env.employee.ID,
		Lines:      []dto.InvoiceLineRequest{{GoodsItemID: item.ID, Quantity: 1}},
	})
	inv := decode[dto.InvoiceResponse](t, created)

	list := env.do(t, http.MethodGet, "/api/employees/"+itoa(env.employee.ID)+"/invoices", nil)
	require.Equal(t, fiber.StatusOK, list.StatusCode)
	assert.Len(t, decode[[]dto.InvoiceSummaryResponse](t, list), 1)

	del := env.do(t, http.MethodDelete, "/api/invoices/"+itoa(inv.InvoiceID), nil)
	assert.Equal(t, fiber.StatusNoContent, del.StatusCode)
	assert.Zero(t, env.invoiceCount(t))
	// El stock no se restituye
	assert.Equal(t, 4, env.stock(t, item.ID))

	missing := env.do(t, http.MethodGet, "/api/employees/999/invoices", nil)
	assert.Equal(t, fiber.StatusNotFound, missing.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Artículos y stock
// ──────────────────────────────────────────────────────────────────────────────

func TestGoodsItem_AjusteDeStock(t *testing.T) {
	env := newTestEnv(t)
	item := env.addGoods(t, "Bia", "12.00", 2)

	resp := env.do(t, http.MethodPost, "/api/goods-items/"+itoa(item.ID)+"/stock", dto.AdjustStockRequest{Delta: 8})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 10, decode[dto.GoodsItemResponse](t, resp).StockQuantity)

	resp = env.do(t, http.MethodPost, "/api/goods-items/"+itoa(item.ID)+"/stock", dto.AdjustStockRequest{Delta: -11})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode[dto.ErrorResponse](t, resp).Code)
	assert.Equal(t, 10, env.stock(t, item.ID))

	resp = env.do(t, http.MethodPost, "/api/goods-items/"+itoa(item.ID)+"/stock", dto.AdjustStockRequest{Delta: 0})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/goods-items/999/stock", dto.AdjustStockRequest{Delta: 1})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGoodsItem_PatchNoTocaStock(t *testing.T) {
	env := newTestEnv(t)
	item := env.addGoods(t, "Sting", "9.00", 6)

	name := "Sting dâu"
	resp := env.do(t, http.MethodPatch, "/api/goods-items/"+itoa(item.ID), dto.UpdateGoodsItemRequest{Name: &name})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[dto.GoodsItemResponse](t, resp)
	assert.Equal(t, name, out.Name)
	assert.Equal(t, 6, out.StockQuantity)
}

func TestGoodsItem_DeleteProtegido(t *testing.T) {
	env := newTestEnv(t)
	item := env.addGoods(t, "Nước mắm", "20.00", 5)
	created := env.do(t, http.MethodPost, "/api/invoices", dto.CreateInvoiceRequest{
		EmployeeID: env.employee.ID,
		Lines:      []dto.InvoiceLineRequest{{GoodsItemID: item.ID, Quantity: 1}},
	})
	require.Equal(t, fiber.StatusCreated, created.StatusCode)

	resp := env.do(t, http.MethodDelete, "/api/goods-items/"+itoa(item.ID), nil)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "REFERENTIAL_INTEGRITY", body.Code)
	assert.Contains(t, body.Message, "invoice_lines")

	free := env.addGoods(t, "Muối", "1.00", 1)
	resp = env.do(t, http.MethodDelete, "/api/goods-items/"+itoa(free.ID), nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestGoodsItem_ListConBusqueda(t *testing.T) {
	env := newTestEnv(t)
	env.addGoods(t, "Đường trắng", "15.00", 3)
	env.addGoods(t, "Gạo", "18.00", 3)

	resp := env.do(t, http.MethodGet, "/api/goods-items?search=duong", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[dto.GoodsItemListResponse](t, resp)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Đường trắng", out.Items[0].Name)

	resp = env.do(t, http.MethodGet, "/api/goods-items?category_id=x", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCategory_DeleteProtegido(t *testing.T) {
	env := newTestEnv(t)
	env.addGoods(t, "Cà phê", "30.00", 1)

	resp := env.do(t, http.MethodDelete, "/api/categories/"+itoa(env.category.ID), nil)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "REFERENTIAL_INTEGRITY", decode[dto.ErrorResponse](t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Personal y reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestEmployee_Salario(t *testing.T) {
	env := newTestEnv(t)

	jtResp := env.do(t, http.MethodPost, "/api/job-titles", dto.JobTitleRequest{
		Name:              "Quản lý",
		Allowance:         decimal.RequireFromString("500000"),
		SalaryCoefficient: ptr(decimal.RequireFromString("2.5")),
	})
	require.Equal(t, fiber.StatusCreated, jtResp.StatusCode)
	jt := decode[dto.JobTitleResponse](t, jtResp)

	empResp := env.do(t, http.MethodPost, "/api/employees", dto.CreateEmployeeRequest{FullName: "Lê Văn Cường", JobTitleID: jt.ID})
	require.Equal(t, fiber.StatusCreated, empResp.StatusCode)
	emp := decode[dto.EmployeeResponse](t, empResp)

	// Sin LuongCoBan vigente no hay salario
	resp := env.do(t, http.MethodGet, "/api/employees/"+itoa(emp.ID)+"/salary", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	base := decimal.RequireFromString("1800000")
	resp = env.do(t, http.MethodPost, "/api/salary-parameters", dto.SalaryParameterRequest{
		Name:          entity.BaseSalaryParameter,
		NumericValue:  &base,
		EffectiveDate: time.Now().AddDate(0, -1, 0).Format("2006-01-02"),
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/employees/"+itoa(emp.ID)+"/salary", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	salary := decode[dto.SalaryResponse](t, resp)
	assert.True(t, salary.Salary.Equal(decimal.RequireFromString("5000000")), "salario: %s", salary.Salary)

	// El cargo no se puede eliminar mientras tenga empleados
	resp = env.do(t, http.MethodDelete, "/api/job-titles/"+itoa(jt.ID), nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestReports_Revenue(t *testing.T) {
	env := newTestEnv(t)
	item := env.addGoods(t, "Bánh bao", "10.00", 10)
	created := env.do(t, http.MethodPost, "/api/invoices", dto.CreateInvoiceRequest{
		EmployeeID: env.employee.ID,
		Lines:      []dto.InvoiceLineRequest{{GoodsItemID: item.ID, Quantity: 2}},
	})
	require.Equal(t, fiber.StatusCreated, created.StatusCode)

	now := time.Now().UTC()
	resp := env.do(t, http.MethodGet, "/api/reports/revenue?year="+itoa(int64(now.Year())), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	report := decode[dto.RevenueReportResponse](t, resp)
	require.Len(t, report.Months, 12)
	for _, m := range report.Months {
		if m.Month == int(now.Month()) {
			assert.True(t, m.Revenue.Equal(decimal.RequireFromString("20.00")), "mes %d: %s", m.Month, m.Revenue)
		} else {
			assert.True(t, m.Revenue.IsZero(), "mes %d: %s", m.Month, m.Revenue)
		}
	}

	resp = env.do(t, http.MethodGet, "/api/reports/revenue?year=1", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestReports_Margins(t *testing.T) {
	env := newTestEnv(t)
	item := env.addGoods(t, "Dầu ăn", "10.00", 10)
	env.do(t, http.MethodPost, "/api/invoices", dto.CreateInvoiceRequest{
		EmployeeID: env.employee.ID,
		Lines:      []dto.InvoiceLineRequest{{GoodsItemID: item.ID, Quantity: 4}},
	})

	resp := env.do(t, http.MethodGet, "/api/reports/margins?top_n=5", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	report := decode[dto.MarginsReportResponse](t, resp)
	require.Len(t, report.Ranking, 1)
	// venta 40.00 - costo 4 × 1.00
	assert.True(t, report.TotalProfit.Equal(decimal.RequireFromString("36.00")), "utilidad: %s", report.TotalProfit)

	resp = env.do(t, http.MethodGet, "/api/reports/margins?start_date=31-12-2024", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestInventory_LowStock(t *testing.T) {
	env := newTestEnv(t)
	env.addGoods(t, "Xà phòng", "7.00", 1)
	env.addGoods(t, "Dầu gội", "25.00", 50)

	resp := env.do(t, http.MethodGet, "/api/inventory/low-stock?threshold=5&target=20", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[struct {
		Total          int                         `json:"total"`
		Replenishments []dto.LowStockSuggestionDTO `json:"replenishments"`
	}](t, resp)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, 19, out.Replenishments[0].SuggestedOrderQty)
}

func TestRutaInexistente(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}
