package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateGoodsItemRequest entrada para crear un artículo.
// StockQuantity es la existencia inicial; después solo cambia vía ajustes de stock.
type CreateGoodsItemRequest struct {
	Name          string          `json:"name"`
	CategoryID    int64           `json:"category_id"`
	BrandID       *int64          `json:"brand_id,omitempty"`
	UnitID        int64           `json:"unit_id"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	StockQuantity int             `json:"stock_quantity"`
}

// UpdateGoodsItemRequest actualización parcial (sin stock).
// Solo los campos presentes se aplican; ClearBrand quita la marca.
type UpdateGoodsItemRequest struct {
	Name          *string          `json:"name"`
	CategoryID    *int64           `json:"category_id"`
	BrandID       *int64           `json:"brand_id"`
	ClearBrand    bool             `json:"clear_brand"`
	UnitID        *int64           `json:"unit_id"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
}

// AdjustStockRequest body para POST /api/goods-items/:id/stock.
// Delta positivo = reabastecimiento, negativo = salida.
type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

// GoodsItemResponse salida de un artículo.
type GoodsItemResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	CategoryID    int64           `json:"category_id"`
	BrandID       *int64          `json:"brand_id"`
	UnitID        int64           `json:"unit_id"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	StockQuantity int             `json:"stock_quantity"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// GoodsItemListResponse lista paginada de artículos.
type GoodsItemListResponse struct {
	Items []GoodsItemResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
