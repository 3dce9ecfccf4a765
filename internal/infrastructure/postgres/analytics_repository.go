package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura sobre facturas y líneas.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// RevenueByMonth suma los totales de factura por mes (UTC) del año indicado.
func (r *AnalyticsRepo) RevenueByMonth(ctx context.Context, year int) ([]repository.MonthlyRevenue, error) {
	const query = `
	SELECT
	    EXTRACT(MONTH FROM created_at AT TIME ZONE 'UTC')::INT AS month,
	    COALESCE(SUM(total), 0)                                AS revenue
	FROM invoices
	WHERE EXTRACT(YEAR FROM created_at AT TIME ZONE 'UTC') = $1
	GROUP BY month
	ORDER BY month`

	rows, err := r.pool.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("analytics.RevenueByMonth: %w", err)
	}
	defer rows.Close()

	var results []repository.MonthlyRevenue
	for rows.Next() {
		var row repository.MonthlyRevenue
		if err := rows.Scan(&row.Month, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.RevenueByMonth scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GoodsMargins agrupa ingresos y costo por artículo. Costo = cantidad × precio de compra actual.
func (r *AnalyticsRepo) GoodsMargins(ctx context.Context, from, to time.Time, limit int) ([]repository.GoodsMarginResult, error) {
	const query = `
	SELECT
	    g.id                                                 AS goods_item_id,
	    g.name                                               AS name,
	    SUM(l.quantity)::INT                                 AS units_sold,
	    SUM(l.subtotal)                                      AS gross_revenue,
	    SUM(l.quantity * g.purchase_price)                   AS total_cost,
	    SUM(l.subtotal) - SUM(l.quantity * g.purchase_price) AS gross_profit
	FROM invoices i
	JOIN invoice_lines l ON l.invoice_id = i.id
	JOIN goods_items   g ON g.id         = l.goods_item_id
	WHERE i.created_at BETWEEN $1 AND $2
	GROUP BY g.id, g.name
	ORDER BY gross_profit DESC, g.id
	LIMIT $3`

	rows, err := r.pool.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GoodsMargins: %w", err)
	}
	defer rows.Close()

	var results []repository.GoodsMarginResult
	for rows.Next() {
		var row repository.GoodsMarginResult
		if err := rows.Scan(
			&row.GoodsItemID,
			&row.Name,
			&row.UnitsSold,
			&row.GrossRevenue,
			&row.TotalCost,
			&row.GrossProfit,
		); err != nil {
			return nil, fmt.Errorf("analytics.GoodsMargins scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
