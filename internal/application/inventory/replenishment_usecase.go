package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-backoffice/internal/application/dto"
	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición de artículos con stock bajo.
type ReplenishmentUseCase struct {
	goodsRepo repository.GoodsItemRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(goodsRepo repository.GoodsItemRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{goodsRepo: goodsRepo}
}

// GenerateReplenishmentList devuelve los artículos con stock <= threshold y la cantidad
// sugerida para llegar a target. Prioridad 1 = menor stock (a igual stock, mayor costo de pedido).
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(
	ctx context.Context,
	threshold, target int,
) ([]dto.LowStockSuggestionDTO, error) {
	if threshold < 0 || target <= threshold {
		return nil, domain.ErrInvalidInput
	}

	// 1. Artículos por debajo del umbral
	items, err := uc.goodsRepo.List(ctx, repository.GoodsItemFilter{MaxStock: &threshold})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []dto.LowStockSuggestionDTO{}, nil
	}

	// 2. Construir las sugerencias
	suggestions := make([]dto.LowStockSuggestionDTO, 0, len(items))
	for _, item := range items {
		qty := target - item.StockQuantity
		suggestions = append(suggestions, dto.LowStockSuggestionDTO{
			GoodsItemID:        item.ID,
			Name:               item.Name,
			CurrentStock:       item.StockQuantity,
			TargetStock:        target,
			SuggestedOrderQty:  qty,
			PurchasePrice:      item.PurchasePrice,
			EstimatedOrderCost: item.PurchasePrice.Mul(decimal.NewFromInt(int64(qty))),
		})
	}

	// 3. Ordenar por urgencia y asignar prioridad
	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].CurrentStock != suggestions[j].CurrentStock {
			return suggestions[i].CurrentStock < suggestions[j].CurrentStock
		}
		return suggestions[i].EstimatedOrderCost.GreaterThan(suggestions[j].EstimatedOrderCost)
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
