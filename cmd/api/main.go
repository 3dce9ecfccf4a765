package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/retail-backoffice/internal/application/analytics"
	"github.com/jhoicas/retail-backoffice/internal/application/billing"
	"github.com/jhoicas/retail-backoffice/internal/application/inventory"
	"github.com/jhoicas/retail-backoffice/internal/application/usecase"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
	"github.com/jhoicas/retail-backoffice/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/retail-backoffice/internal/infrastructure/pdf"
	"github.com/jhoicas/retail-backoffice/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/retail-backoffice/internal/interfaces/http"
	"github.com/jhoicas/retail-backoffice/pkg/config"
	"github.com/jhoicas/retail-backoffice/pkg/logger"
)

// repositories agrupa los puertos de persistencia del driver elegido.
type repositories struct {
	goods      repository.GoodsItemRepository
	invoices   repository.InvoiceRepository
	categories repository.CategoryRepository
	brands     repository.BrandRepository
	units      repository.UnitRepository
	employees  repository.EmployeeRepository
	jobTitles  repository.JobTitleRepository
	params     repository.SalaryParameterRepository
	analytics  repository.AnalyticsRepository
	txRunner   repository.TxRunner
	close      func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer repos.close()

	// Libro de inventario: única vía para modificar stock
	ledger := inventory.NewStockLedger(repos.txRunner, log.Component("inventory"))
	invoiceUC := billing.NewCreateInvoiceUseCase(repos.txRunner, ledger, repos.employees, repos.invoices, log.Component("billing"))
	invoicePDFUC := billing.NewPDFUseCase(repos.invoices, repos.employees, repos.goods, infrapdf.NewMarotoPDFGenerator(), cfg.App.StoreName)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Retail Back-office API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		GoodsItemUC:   usecase.NewGoodsItemUseCase(repos.goods, repos.categories, repos.brands, repos.units, ledger),
		CatalogUC:     usecase.NewCatalogUseCase(repos.categories, repos.brands, repos.units),
		EmployeeUC:    usecase.NewEmployeeUseCase(repos.employees, repos.jobTitles, repos.params),
		Invoices:      invoiceUC,
		InvoicePDF:    invoicePDFUC,
		Revenue:       analytics.NewRevenueUseCase(repos.analytics),
		Margins:       analytics.NewMarginsUseCase(repos.analytics),
		Replenishment: inventory.NewReplenishmentUseCase(repos.goods),
		Log:           log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openRepositories construye los repositorios según STORAGE_DRIVER.
func openRepositories(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repositories, error) {
	if cfg.Storage.Driver == config.DriverMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &repositories{
			goods:      memory.NewGoodsItemRepository(store),
			invoices:   memory.NewInvoiceRepository(store),
			categories: memory.NewCategoryRepository(store),
			brands:     memory.NewBrandRepository(store),
			units:      memory.NewUnitRepository(store),
			employees:  memory.NewEmployeeRepository(store),
			jobTitles:  memory.NewJobTitleRepository(store),
			params:     memory.NewSalaryParameterRepository(store),
			analytics:  memory.NewAnalyticsRepository(store),
			txRunner:   memory.NewTxRunner(store),
			close:      func() {},
		}, nil
	}

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString(), log.Component("migrate")); err != nil {
			return nil, err
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &repositories{
		goods:      postgres.NewGoodsItemRepository(pool),
		invoices:   postgres.NewInvoiceRepository(pool),
		categories: postgres.NewCategoryRepository(pool),
		brands:     postgres.NewBrandRepository(pool),
		units:      postgres.NewUnitRepository(pool),
		employees:  postgres.NewEmployeeRepository(pool),
		jobTitles:  postgres.NewJobTitleRepository(pool),
		params:     postgres.NewSalaryParameterRepository(pool),
		analytics:  postgres.NewAnalyticsRepository(pool),
		txRunner:   postgres.NewTxRunner(pool),
		close:      pool.Close,
	}, nil
}
