// seed carga datos base en PostgreSQL: unidades, categorías, cargos y el salario base (LuongCoBan).
//
// Uso: go run ./cmd/seed [salario_base]
// Por defecto el salario base es 1800000. Los registros que ya existen (mismo nombre) se omiten.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-backoffice/internal/application/dto"
	"github.com/jhoicas/retail-backoffice/internal/application/usecase"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/infrastructure/postgres"
	"github.com/jhoicas/retail-backoffice/pkg/config"
	"github.com/jhoicas/retail-backoffice/pkg/logger"
)

var (
	units      = []string{"Cái", "Gói", "Hộp", "Chai", "Lon", "Kg", "Thùng"}
	categories = []dto.CategoryRequest{
		{Name: "Đồ uống", Description: "Nước ngọt, bia, sữa"},
		{Name: "Bánh kẹo", Description: "Bánh, kẹo, snack"},
		{Name: "Gia vị", Description: "Muối, đường, nước mắm"},
		{Name: "Hóa phẩm", Description: "Xà phòng, dầu gội, nước rửa chén"},
	}
	jobTitles = []dto.JobTitleRequest{
		{Name: "Quản lý", Allowance: decimal.NewFromInt(1000000), SalaryCoefficient: ptr(decimal.RequireFromString("2.5"))},
		{Name: "Thu ngân", Allowance: decimal.NewFromInt(300000), SalaryCoefficient: ptr(decimal.RequireFromString("1.5"))},
		{Name: "Nhân viên kho", Allowance: decimal.NewFromInt(200000)},
	}
)

func main() {
	baseSalary := decimal.NewFromInt(1800000)
	if len(os.Args) > 1 {
		v, err := decimal.NewFromString(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Salario base inválido: %v\n", err)
			os.Exit(1)
		}
		baseSalary = v
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	if err := postgres.Migrate(cfg.DB.ConnectionString(), log.Component("migrate")); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	catalog := usecase.NewCatalogUseCase(
		postgres.NewCategoryRepository(pool),
		postgres.NewBrandRepository(pool),
		postgres.NewUnitRepository(pool),
	)
	staff := usecase.NewEmployeeUseCase(
		postgres.NewEmployeeRepository(pool),
		postgres.NewJobTitleRepository(pool),
		postgres.NewSalaryParameterRepository(pool),
	)

	// Unidades
	existingUnits, err := catalog.ListUnits(ctx, "")
	if err != nil {
		log.Fatal().Err(err).Msg("listar unidades")
	}
	for _, name := range units {
		if containsName(existingUnits, name, func(u dto.UnitResponse) string { return u.Name }) {
			continue
		}
		if _, err := catalog.CreateUnit(ctx, dto.UnitRequest{Name: name}); err != nil {
			log.Fatal().Err(err).Str("unit", name).Msg("crear unidad")
		}
	}

	// Categorías
	existingCats, err := catalog.ListCategories(ctx, "")
	if err != nil {
		log.Fatal().Err(err).Msg("listar categorías")
	}
	for _, c := range categories {
		if containsName(existingCats, c.Name, func(r dto.CategoryResponse) string { return r.Name }) {
			continue
		}
		if _, err := catalog.CreateCategory(ctx, c); err != nil {
			log.Fatal().Err(err).Str("category", c.Name).Msg("crear categoría")
		}
	}

	// Cargos
	existingJobs, err := staff.ListJobTitles(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("listar cargos")
	}
	for _, jt := range jobTitles {
		if containsName(existingJobs, jt.Name, func(r dto.JobTitleResponse) string { return r.Name }) {
			continue
		}
		if _, err := staff.CreateJobTitle(ctx, jt); err != nil {
			log.Fatal().Err(err).Str("job_title", jt.Name).Msg("crear cargo")
		}
	}

	// Salario base vigente desde hoy
	params, err := staff.ListSalaryParameters(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("listar parámetros de nómina")
	}
	today := time.Now().Format("2006-01-02")
	seeded := false
	for _, p := range params {
		if p.Name == entity.BaseSalaryParameter && p.NumericValue != nil && p.NumericValue.Equal(baseSalary) {
			seeded = true
			break
		}
	}
	if !seeded {
		if _, err := staff.CreateSalaryParameter(ctx, dto.SalaryParameterRequest{
			Name:          entity.BaseSalaryParameter,
			NumericValue:  &baseSalary,
			EffectiveDate: today,
			Note:          "Cargado por seed",
		}); err != nil {
			log.Fatal().Err(err).Msg("crear salario base")
		}
	}

	log.Info().
		Int("units", len(units)).
		Int("categories", len(categories)).
		Int("job_titles", len(jobTitles)).
		Str("base_salary", baseSalary.StringFixed(0)).
		Msg("datos base cargados")
}

func containsName[T any](list []T, name string, get func(T) string) bool {
	for _, item := range list {
		if strings.EqualFold(get(item), name) {
			return true
		}
	}
	return false
}

func ptr[T any](v T) *T { return &v }
