package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/retail-backoffice/internal/application/analytics"
	"github.com/jhoicas/retail-backoffice/internal/application/billing"
	"github.com/jhoicas/retail-backoffice/internal/application/inventory"
	"github.com/jhoicas/retail-backoffice/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	GoodsItemUC   *usecase.GoodsItemUseCase
	CatalogUC     *usecase.CatalogUseCase
	EmployeeUC    *usecase.EmployeeUseCase
	Invoices      *billing.CreateInvoiceUseCase
	InvoicePDF    *billing.PDFUseCase
	Revenue       *analytics.RevenueUseCase
	Margins       *analytics.MarginsUseCase
	Replenishment *inventory.ReplenishmentUseCase
	Log           zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestLogger(deps.Log))

	// Goods items
	goods := api.Group("/goods-items")
	goodsHandler := NewGoodsItemHandler(deps.GoodsItemUC)
	goods.Post("/", goodsHandler.Create)
	goods.Get("/", goodsHandler.List)
	goods.Get("/:id", goodsHandler.GetByID)
	goods.Patch("/:id", goodsHandler.Update)
	goods.Delete("/:id", goodsHandler.Delete)
	goods.Post("/:id/stock", goodsHandler.AdjustStock)

	// Catálogo
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	categories := api.Group("/categories")
	categories.Post("/", catalogHandler.CreateCategory)
	categories.Get("/", catalogHandler.ListCategories)
	categories.Get("/:id", catalogHandler.GetCategory)
	categories.Put("/:id", catalogHandler.UpdateCategory)
	categories.Delete("/:id", catalogHandler.DeleteCategory)

	brands := api.Group("/brands")
	brands.Post("/", catalogHandler.CreateBrand)
	brands.Get("/", catalogHandler.ListBrands)
	brands.Get("/:id", catalogHandler.GetBrand)
	brands.Put("/:id", catalogHandler.UpdateBrand)
	brands.Delete("/:id", catalogHandler.DeleteBrand)

	units := api.Group("/units")
	units.Post("/", catalogHandler.CreateUnit)
	units.Get("/", catalogHandler.ListUnits)
	units.Get("/:id", catalogHandler.GetUnit)
	units.Put("/:id", catalogHandler.UpdateUnit)
	units.Delete("/:id", catalogHandler.DeleteUnit)

	// Personal
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	invoiceHandler := NewInvoiceHandler(deps.Invoices, deps.InvoicePDF)

	jobTitles := api.Group("/job-titles")
	jobTitles.Post("/", employeeHandler.CreateJobTitle)
	jobTitles.Get("/", employeeHandler.ListJobTitles)
	jobTitles.Get("/:id", employeeHandler.GetJobTitle)
	jobTitles.Put("/:id", employeeHandler.UpdateJobTitle)
	jobTitles.Delete("/:id", employeeHandler.DeleteJobTitle)

	employees := api.Group("/employees")
	employees.Post("/", employeeHandler.CreateEmployee)
	employees.Get("/", employeeHandler.ListEmployees)
	employees.Get("/:id", employeeHandler.GetEmployee)
	employees.Patch("/:id", employeeHandler.UpdateEmployee)
	employees.Delete("/:id", employeeHandler.DeleteEmployee)
	employees.Get("/:id/salary", employeeHandler.Salary)
	employees.Get("/:id/invoices", invoiceHandler.ListByEmployee)

	params := api.Group("/salary-parameters")
	params.Post("/", employeeHandler.CreateSalaryParameter)
	params.Get("/", employeeHandler.ListSalaryParameters)

	// Facturación
	invoices := api.Group("/invoices")
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)

	// Reportes e inventario
	analyticsHandler := NewAnalyticsHandler(deps.Revenue, deps.Margins)
	reports := api.Group("/reports")
	reports.Get("/revenue", analyticsHandler.GetRevenue)
	reports.Get("/margins", analyticsHandler.GetMargins)

	inventoryHandler := NewInventoryHandler(deps.Replenishment)
	api.Get("/inventory/low-stock", inventoryHandler.GetLowStock)
}
