package dto

import "github.com/shopspring/decimal"

// MonthlyRevenueDTO ingreso de un mes; los meses sin ventas valen 0.
type MonthlyRevenueDTO struct {
	Month   int             `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

// RevenueReportResponse respuesta de GET /api/reports/revenue.
type RevenueReportResponse struct {
	Year   int                 `json:"year"`
	Months []MonthlyRevenueDTO `json:"months"`
	Total  decimal.Decimal     `json:"total"`
}

// MarginsReportRequest parámetros de GET /api/reports/margins.
type MarginsReportRequest struct {
	StartDate string `query:"start_date"` // YYYY-MM-DD; vacío = primer día del mes actual
	EndDate   string `query:"end_date"`   // YYYY-MM-DD; vacío = hoy
	TopN      int    `query:"top_n"`
}

// PeriodDTO rango de fechas de un reporte.
type PeriodDTO struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// GoodsMarginDTO posición de un artículo en el ranking de margen bruto.
type GoodsMarginDTO struct {
	Rank             int             `json:"rank"`
	GoodsItemID      int64           `json:"goods_item_id"`
	Name             string          `json:"name"`
	UnitsSold        int             `json:"units_sold"`
	GrossRevenue     decimal.Decimal `json:"gross_revenue"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	GrossProfit      decimal.Decimal `json:"gross_profit"`
	MarginPct        decimal.Decimal `json:"margin_pct"`
	RevenuePct       decimal.Decimal `json:"revenue_pct"`
	CumulativeRevPct decimal.Decimal `json:"cumulative_revenue_pct"`
	IsTopPareto      bool            `json:"is_top_pareto"`
}

// MarginsReportResponse respuesta de GET /api/reports/margins.
type MarginsReportResponse struct {
	Period       PeriodDTO        `json:"period"`
	TotalRevenue decimal.Decimal  `json:"total_revenue"`
	TotalProfit  decimal.Decimal  `json:"total_profit"`
	Ranking      []GoodsMarginDTO `json:"ranking"`
	ParetoGoods  []GoodsMarginDTO `json:"pareto_goods"`
}
