package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

// AnalyticsRepository implementación en memoria de repository.AnalyticsRepository.
type AnalyticsRepository struct{ run runFunc }

// NewAnalyticsRepository crea el repositorio sobre el almacén.
func NewAnalyticsRepository(s *Store) *AnalyticsRepository { return &AnalyticsRepository{run: s.run} }

var _ repository.AnalyticsRepository = (*AnalyticsRepository)(nil)

func (r *AnalyticsRepository) RevenueByMonth(ctx context.Context, year int) ([]repository.MonthlyRevenue, error) {
	byMonth := make(map[int]decimal.Decimal)
	err := r.run(func(d *dataset) error {
		for _, inv := range d.invoices {
			ts := inv.CreatedAt.UTC()
			if ts.Year() != year {
				continue
			}
			m := int(ts.Month())
			byMonth[m] = byMonth[m].Add(inv.Total)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]repository.MonthlyRevenue, 0, len(byMonth))
	for m, rev := range byMonth {
		out = append(out, repository.MonthlyRevenue{Month: m, Revenue: rev})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

func (r *AnalyticsRepository) GoodsMargins(ctx context.Context, from, to time.Time, limit int) ([]repository.GoodsMarginResult, error) {
	agg := make(map[int64]*repository.GoodsMarginResult)
	err := r.run(func(d *dataset) error {
		for _, l := range d.lines {
			inv, ok := d.invoices[l.InvoiceID]
			if !ok || inv.CreatedAt.Before(from) || inv.CreatedAt.After(to) {
				continue
			}
			g := d.goods[l.GoodsItemID]
			row, ok := agg[l.GoodsItemID]
			if !ok {
				row = &repository.GoodsMarginResult{GoodsItemID: l.GoodsItemID, Name: g.Name}
				agg[l.GoodsItemID] = row
			}
			row.UnitsSold += l.Quantity
			row.GrossRevenue = row.GrossRevenue.Add(l.Subtotal)
			row.TotalCost = row.TotalCost.Add(g.PurchasePrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]repository.GoodsMarginResult, 0, len(agg))
	for _, row := range agg {
		row.GrossProfit = row.GrossRevenue.Sub(row.TotalCost)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].GrossProfit.Cmp(out[j].GrossProfit); c != 0 {
			return c > 0
		}
		return out[i].GoodsItemID < out[j].GoodsItemID
	})
	return page(out, limit, 0), nil
}
