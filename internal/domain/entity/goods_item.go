package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoodsItem representa un artículo vendible.
// StockQuantity solo se modifica a través del libro de inventario (AdjustStock).
type GoodsItem struct {
	ID            int64
	Name          string
	CategoryID    int64
	BrandID       *int64 // nil si no tiene marca (o la marca fue eliminada)
	UnitID        int64
	PurchasePrice decimal.Decimal // precio de compra, 2 decimales
	SalePrice     decimal.Decimal // precio de venta, 2 decimales
	StockQuantity int             // siempre >= 0
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
