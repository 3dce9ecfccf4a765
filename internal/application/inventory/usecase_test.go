package inventory_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-backoffice/internal/application/inventory"
	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	domaininv "github.com/jhoicas/retail-backoffice/internal/domain/inventory"
	"github.com/jhoicas/retail-backoffice/internal/infrastructure/memory"
)

type env struct {
	goods  *memory.GoodsItemRepository
	ledger *inventory.StockLedger
	cat    int64
	unit   int64
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	cat := &entity.Category{Name: "Gia vị"}
	require.NoError(t, memory.NewCategoryRepository(s).Create(ctx, cat))
	unit := &entity.Unit{Name: "Gói"}
	require.NoError(t, memory.NewUnitRepository(s).Create(ctx, unit))
	return &env{
		goods:  memory.NewGoodsItemRepository(s),
		ledger: inventory.NewStockLedger(memory.NewTxRunner(s), zerolog.Nop()),
		cat:    cat.ID,
		unit:   unit.ID,
	}
}

func (e *env) addGoods(t *testing.T, name string, stock int, purchase string) *entity.GoodsItem {
	t.Helper()
	g := &entity.GoodsItem{
		Name:          name,
		CategoryID:    e.cat,
		UnitID:        e.unit,
		PurchasePrice: decimal.RequireFromString(purchase),
		SalePrice:     decimal.RequireFromString(purchase).Mul(decimal.NewFromInt(2)),
		StockQuantity: stock,
	}
	require.NoError(t, e.goods.Create(context.Background(), g))
	return g
}

func (e *env) stock(t *testing.T, id int64) int {
	t.Helper()
	g, err := e.goods.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, g)
	return g.StockQuantity
}

func TestAdjustStock_EntradaYSalida(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	item := e.addGoods(t, "Muối", 3, "1.00")

	got, err := e.ledger.AdjustStock(ctx, item.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 10, got.StockQuantity)

	got, err = e.ledger.AdjustStock(ctx, item.ID, -10)
	require.NoError(t, err)
	assert.Equal(t, 0, got.StockQuantity)
	assert.Equal(t, 0, e.stock(t, item.ID))
}

func TestAdjustStock_RechazaDesbordeSinMutar(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	item := e.addGoods(t, "Đường", 10, "1.00")

	for _, delta := range []int{math.MaxInt, 3_000_000_000, domaininv.MaxQuantity - 9, math.MinInt} {
		_, err := e.ledger.AdjustStock(ctx, item.ID, delta)
		require.ErrorIs(t, err, domain.ErrInvalidInput, "delta %d", delta)
		assert.NotErrorIs(t, err, domain.ErrInsufficientStock, "delta %d", delta)
		assert.Equal(t, 10, e.stock(t, item.ID), "delta %d", delta)
	}

	got, err := e.ledger.AdjustStock(ctx, item.ID, domaininv.MaxQuantity-10)
	require.NoError(t, err, "llenar hasta el máximo exacto es válido")
	assert.Equal(t, domaininv.MaxQuantity, got.StockQuantity)

	_, err = e.ledger.AdjustStock(ctx, item.ID, 1)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, domaininv.MaxQuantity, e.stock(t, item.ID))
}

func TestAdjustStock_RechazaNegativoSinMutar(t *testing.T) {
	e := newEnv(t)
	item := e.addGoods(t, "Đường", 2, "1.00")

	_, err := e.ledger.AdjustStock(context.Background(), item.ID, -3)
	require.Error(t, err)
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "Đường", stockErr.Name)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 3, stockErr.Requested)
	assert.Equal(t, 2, e.stock(t, item.ID))
}

func TestAdjustStock_EntradaInvalida(t *testing.T) {
	e := newEnv(t)
	item := e.addGoods(t, "Tiêu", 2, "1.00")

	_, err := e.ledger.AdjustStock(context.Background(), item.ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.ledger.AdjustStock(context.Background(), 0, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.ledger.AdjustStock(context.Background(), 999, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjustStock_ContextoCancelado(t *testing.T) {
	e := newEnv(t)
	item := e.addGoods(t, "Bột ngọt", 5, "1.00")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.ledger.AdjustStock(ctx, item.ID, -1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 5, e.stock(t, item.ID))
}

// Salidas concurrentes: el stock confirmado nunca baja de cero.
func TestAdjustStock_ConcurrenteNuncaNegativo(t *testing.T) {
	e := newEnv(t)
	item := e.addGoods(t, "Nước mắm", 15, "1.00")

	const workers = 40
	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := e.ledger.AdjustStock(context.Background(), item.ID, -1); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			} else if !errors.Is(err, domain.ErrInsufficientStock) {
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 15, ok)
	assert.Equal(t, 0, e.stock(t, item.ID))
}
