package dto

import "github.com/shopspring/decimal"

// LowStockSuggestionDTO artículo con stock bajo y la cantidad sugerida para reponer.
type LowStockSuggestionDTO struct {
	GoodsItemID        int64           `json:"goods_item_id"`
	Name               string          `json:"name"`
	CurrentStock       int             `json:"current_stock"`
	TargetStock        int             `json:"target_stock"`
	SuggestedOrderQty  int             `json:"suggested_order_qty"` // TargetStock - CurrentStock
	PurchasePrice      decimal.Decimal `json:"purchase_price"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * PurchasePrice
	Priority           int             `json:"priority"`             // 1 = más urgente
}
