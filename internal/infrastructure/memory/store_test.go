package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/inventory"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
	"github.com/jhoicas/retail-backoffice/internal/infrastructure/memory"
)

type fixture struct {
	store      *memory.Store
	goods      *memory.GoodsItemRepository
	invoices   *memory.InvoiceRepository
	categories *memory.CategoryRepository
	brands     *memory.BrandRepository
	units      *memory.UnitRepository
	employees  *memory.EmployeeRepository
	jobTitles  *memory.JobTitleRepository
	category   *entity.Category
	unit       *entity.Unit
	employee   *entity.Employee
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	f := &fixture{
		store:      s,
		goods:      memory.NewGoodsItemRepository(s),
		invoices:   memory.NewInvoiceRepository(s),
		categories: memory.NewCategoryRepository(s),
		brands:     memory.NewBrandRepository(s),
		units:      memory.NewUnitRepository(s),
		employees:  memory.NewEmployeeRepository(s),
		jobTitles:  memory.NewJobTitleRepository(s),
		category:   &entity.Category{Name: "Bánh kẹo"},
		unit:       &entity.Unit{Name: "Gói"},
	}
	require.NoError(t, f.categories.Create(ctx, f.category))
	require.NoError(t, f.units.Create(ctx, f.unit))
	jt := &entity.JobTitle{Name: "Cajero", SalaryCoefficient: decimal.NewFromInt(1)}
	require.NoError(t, f.jobTitles.Create(ctx, jt))
	f.employee = &entity.Employee{FullName: "Nguyễn Văn An", JobTitleID: jt.ID}
	require.NoError(t, f.employees.Create(ctx, f.employee))
	return f
}

func (f *fixture) addGoods(t *testing.T, name string, stock int) *entity.GoodsItem {
	t.Helper()
	g := &entity.GoodsItem{
		Name:          name,
		CategoryID:    f.category.ID,
		UnitID:        f.unit.ID,
		PurchasePrice: decimal.RequireFromString("3.00"),
		SalePrice:     decimal.RequireFromString("5.00"),
		StockQuantity: stock,
	}
	require.NoError(t, f.goods.Create(context.Background(), g))
	return g
}

func TestGoodsItemRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	g := f.addGoods(t, "Bánh quy", 10)
	require.NotZero(t, g.ID)

	got, err := f.goods.GetByID(ctx, g.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Bánh quy", got.Name)

	got.Name = "Bánh quy bơ"
	got.StockQuantity = 999
	require.NoError(t, f.goods.Update(ctx, got))

	got, err = f.goods.GetByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bánh quy bơ", got.Name)
	assert.Equal(t, 10, got.StockQuantity, "Update no debe tocar el stock")

	require.NoError(t, f.goods.Delete(ctx, g.ID))
	got, err = f.goods.GetByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGoodsItemRepository_BusquedaSinTildes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addGoods(t, "Đường trắng", 5)
	f.addGoods(t, "Sữa tươi", 5)

	list, err := f.goods.List(ctx, repository.GoodsItemFilter{Search: "duong"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Đường trắng", list[0].Name)

	list, err = f.goods.List(ctx, repository.GoodsItemFilter{Search: "SỮA"})
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestGoodsItemRepository_ListPaginaYMaxStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addGoods(t, "A", 1)
	f.addGoods(t, "B", 50)
	f.addGoods(t, "C", 3)

	maxStock := 5
	list, err := f.goods.List(ctx, repository.GoodsItemFilter{MaxStock: &maxStock})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = f.goods.List(ctx, repository.GoodsItemFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "B", list[0].Name)
}

func TestTxRunner_RollbackDescartaCambios(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	g := f.addGoods(t, "Mì gói", 10)
	tx := memory.NewTxRunner(f.store)
	boom := errors.New("boom")

	err := tx.RunInTx(ctx, func(uow repository.UnitOfWork) error {
		require.NoError(t, uow.GoodsItems().UpdateStock(ctx, g.ID, 4))
		inv := &entity.Invoice{EmployeeID: f.employee.ID, CreatedAt: time.Now()}
		require.NoError(t, uow.Invoices().Create(ctx, inv))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := f.goods.GetByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.StockQuantity)
	invs, err := f.invoices.List(ctx, repository.InvoiceFilter{})
	require.NoError(t, err)
	assert.Empty(t, invs)
}

func TestTxRunner_CommitPublicaCambios(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	g := f.addGoods(t, "Mì gói", 10)
	tx := memory.NewTxRunner(f.store)

	err := tx.RunInTx(ctx, func(uow repository.UnitOfWork) error {
		return uow.GoodsItems().UpdateStock(ctx, g.ID, 7)
	})
	require.NoError(t, err)

	got, err := f.goods.GetByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.StockQuantity)
}

func TestInvoiceRepository_LineaDuplicadaYCascada(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	g := f.addGoods(t, "Nước mắm", 10)

	inv := &entity.Invoice{EmployeeID: f.employee.ID, CreatedAt: time.Now()}
	require.NoError(t, f.invoices.Create(ctx, inv))
	line := &entity.InvoiceLine{InvoiceID: inv.ID, GoodsItemID: g.ID, Quantity: 1,
		UnitPrice: decimal.RequireFromString("5.00"), Subtotal: decimal.RequireFromString("5.00")}
	require.NoError(t, f.invoices.CreateLine(ctx, line))

	dup := *line
	err := f.invoices.CreateLine(ctx, &dup)
	assert.ErrorIs(t, err, domain.ErrDuplicateLine)

	err = f.goods.Delete(ctx, g.ID)
	assert.ErrorIs(t, err, domain.ErrReferentialIntegrity, "un artículo facturado no se puede borrar")

	require.NoError(t, f.invoices.Delete(ctx, inv.ID))
	lines, err := f.invoices.GetLines(ctx, inv.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestInvoiceRepository_CreateEmpleadoInexistente(t *testing.T) {
	f := newFixture(t)

	inv := &entity.Invoice{EmployeeID: f.employee.ID + 100, CreatedAt: time.Now()}
	err := f.invoices.Create(context.Background(), inv)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, inv.ID)
}

func TestGoodsItemRepository_UpdateStockFueraDeRango(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	g := f.addGoods(t, "Gạo", 5)

	assert.ErrorIs(t, f.goods.UpdateStock(ctx, g.ID, -1), domain.ErrInvalidInput)
	assert.ErrorIs(t, f.goods.UpdateStock(ctx, g.ID, inventory.MaxQuantity+1), domain.ErrInvalidInput)
	require.NoError(t, f.goods.UpdateStock(ctx, g.ID, inventory.MaxQuantity))
}

func TestBrandRepository_DeleteDejaArticulosSinMarca(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := &entity.Brand{Name: "Vinamilk"}
	require.NoError(t, f.brands.Create(ctx, b))
	g := f.addGoods(t, "Sữa", 1)
	g.BrandID = &b.ID
	require.NoError(t, f.goods.Update(ctx, g))

	require.NoError(t, f.brands.Delete(ctx, b.ID))

	got, err := f.goods.GetByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Nil(t, got.BrandID)
}

func TestCategoryRepository_DeleteProtegido(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addGoods(t, "Kẹo", 1)

	err := f.categories.Delete(ctx, f.category.ID)
	var refErr *domain.ReferentialIntegrityError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "goods_items", refErr.Dependency)
}

func TestSalaryParameterRepository_GetCurrent(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSalaryParameterRepository(memory.NewStore())
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return d
	}
	v1 := decimal.NewFromInt(1800000)
	v2 := decimal.NewFromInt(2340000)
	v3 := decimal.NewFromInt(9999999)
	require.NoError(t, repo.Create(ctx, &entity.SalaryParameter{Name: entity.BaseSalaryParameter, NumericValue: &v1, EffectiveDate: day("2023-01-01")}))
	require.NoError(t, repo.Create(ctx, &entity.SalaryParameter{Name: entity.BaseSalaryParameter, NumericValue: &v2, EffectiveDate: day("2024-07-01")}))
	require.NoError(t, repo.Create(ctx, &entity.SalaryParameter{Name: entity.BaseSalaryParameter, NumericValue: &v3, EffectiveDate: day("2099-01-01")}))

	got, err := repo.GetCurrent(ctx, entity.BaseSalaryParameter, day("2025-03-15"))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, v2.Equal(*got.NumericValue))

	got, err = repo.GetCurrent(ctx, entity.BaseSalaryParameter, day("2020-01-01"))
	require.NoError(t, err)
	assert.Nil(t, got)
}
