package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-backoffice/internal/application/inventory"
	"github.com/jhoicas/retail-backoffice/internal/domain"
)

func TestGenerateReplenishmentList(t *testing.T) {
	e := newEnv(t)
	a := e.addGoods(t, "Xà phòng", 3, "10.00")
	b := e.addGoods(t, "Dầu gội", 0, "40.00")
	c := e.addGoods(t, "Kem đánh răng", 3, "25.00")
	e.addGoods(t, "Nước rửa chén", 50, "15.00")

	uc := inventory.NewReplenishmentUseCase(e.goods)
	list, err := uc.GenerateReplenishmentList(context.Background(), 5, 20)
	require.NoError(t, err)
	require.Len(t, list, 3)

	// Menor stock primero; a igual stock, mayor costo de pedido primero
	assert.Equal(t, b.ID, list[0].GoodsItemID)
	assert.Equal(t, c.ID, list[1].GoodsItemID)
	assert.Equal(t, a.ID, list[2].GoodsItemID)

	assert.Equal(t, 1, list[0].Priority)
	assert.Equal(t, 20, list[0].SuggestedOrderQty)
	assert.True(t, list[0].EstimatedOrderCost.Equal(decimal.RequireFromString("800.00")))
	assert.Equal(t, 17, list[2].SuggestedOrderQty)
}

func TestGenerateReplenishmentList_Vacia(t *testing.T) {
	e := newEnv(t)
	e.addGoods(t, "Gạo", 100, "18.00")

	list, err := inventory.NewReplenishmentUseCase(e.goods).GenerateReplenishmentList(context.Background(), 5, 20)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
}

func TestGenerateReplenishmentList_ParametrosInvalidos(t *testing.T) {
	e := newEnv(t)
	uc := inventory.NewReplenishmentUseCase(e.goods)

	_, err := uc.GenerateReplenishmentList(context.Background(), -1, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GenerateReplenishmentList(context.Background(), 10, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
