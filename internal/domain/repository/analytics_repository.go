package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyRevenue ingreso total de un mes (1-12).
type MonthlyRevenue struct {
	Month   int
	Revenue decimal.Decimal
}

// GoodsMarginResult ventas agregadas de un artículo en un período.
// TotalCost usa el precio de compra actual del artículo.
type GoodsMarginResult struct {
	GoodsItemID  int64
	Name         string
	UnitsSold    int
	GrossRevenue decimal.Decimal
	TotalCost    decimal.Decimal
	GrossProfit  decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura sobre las ventas.
type AnalyticsRepository interface {
	// RevenueByMonth devuelve solo los meses del año con ventas.
	RevenueByMonth(ctx context.Context, year int) ([]MonthlyRevenue, error)
	// GoodsMargins devuelve hasta limit artículos ordenados por GrossProfit descendente.
	GoodsMargins(ctx context.Context, from, to time.Time, limit int) ([]GoodsMarginResult, error)
}
