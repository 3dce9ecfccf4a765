package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-backoffice/internal/application/dto"
	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

type fakeAnalyticsRepo struct {
	revenue []repository.MonthlyRevenue
	margins []repository.GoodsMarginResult
	err     error

	gotFrom, gotTo time.Time
	gotLimit       int
}

func (f *fakeAnalyticsRepo) RevenueByMonth(context.Context, int) ([]repository.MonthlyRevenue, error) {
	return f.revenue, f.err
}

func (f *fakeAnalyticsRepo) GoodsMargins(_ context.Context, from, to time.Time, limit int) ([]repository.GoodsMarginResult, error) {
	f.gotFrom, f.gotTo, f.gotLimit = from, to, limit
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.margins) {
		return f.margins[:limit], nil
	}
	return f.margins, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRevenueByMonth_DoceMeses(t *testing.T) {
	repo := &fakeAnalyticsRepo{revenue: []repository.MonthlyRevenue{
		{Month: 3, Revenue: dec("120.50")},
		{Month: 11, Revenue: dec("79.50")},
	}}
	out, err := NewRevenueUseCase(repo).RevenueByMonth(context.Background(), 2024)
	require.NoError(t, err)
	require.Len(t, out.Months, 12)
	for i, m := range out.Months {
		assert.Equal(t, i+1, m.Month)
	}
	assert.True(t, out.Months[2].Revenue.Equal(dec("120.50")))
	assert.True(t, out.Months[10].Revenue.Equal(dec("79.50")))
	assert.True(t, out.Months[0].Revenue.IsZero())
	assert.True(t, out.Total.Equal(dec("200.00")))
	assert.Equal(t, 2024, out.Year)
}

func TestRevenueByMonth_AnioFueraDeRango(t *testing.T) {
	_, err := NewRevenueUseCase(&fakeAnalyticsRepo{}).RevenueByMonth(context.Background(), 1999)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRevenueByMonth_ErrorDelRepositorio(t *testing.T) {
	boom := errors.New("db caída")
	_, err := NewRevenueUseCase(&fakeAnalyticsRepo{err: boom}).RevenueByMonth(context.Background(), 2024)
	assert.ErrorIs(t, err, boom)
}

func TestGetMarginsReport_Pareto(t *testing.T) {
	repo := &fakeAnalyticsRepo{margins: []repository.GoodsMarginResult{
		{GoodsItemID: 1, Name: "Bia", UnitsSold: 100, GrossRevenue: dec("700"), TotalCost: dec("400"), GrossProfit: dec("300")},
		{GoodsItemID: 2, Name: "Nước ngọt", UnitsSold: 50, GrossRevenue: dec("200"), TotalCost: dec("100"), GrossProfit: dec("100")},
		{GoodsItemID: 3, Name: "Kẹo", UnitsSold: 10, GrossRevenue: dec("100"), TotalCost: dec("60"), GrossProfit: dec("40")},
	}}
	uc := NewMarginsUseCase(repo)
	uc.now = func() time.Time { return time.Date(2024, 5, 17, 15, 0, 0, 0, time.UTC) }

	out, err := uc.GetMarginsReport(context.Background(), dto.MarginsReportRequest{})
	require.NoError(t, err)

	assert.Equal(t, "2024-05-01", out.Period.StartDate)
	assert.Equal(t, "2024-05-17", out.Period.EndDate)
	assert.Equal(t, defaultTopN, repo.gotLimit)

	require.Len(t, out.Ranking, 3)
	assert.Equal(t, 1, out.Ranking[0].Rank)
	assert.True(t, out.Ranking[0].RevenuePct.Equal(dec("70")))
	assert.True(t, out.Ranking[0].MarginPct.Equal(dec("42.86")), "margen: %s", out.Ranking[0].MarginPct)
	assert.True(t, out.Ranking[1].CumulativeRevPct.Equal(dec("90")))
	assert.True(t, out.TotalRevenue.Equal(dec("1000")))
	assert.True(t, out.TotalProfit.Equal(dec("440")))

	// 70% entra; 90% acumulado ya supera el 80%
	require.Len(t, out.ParetoGoods, 1)
	assert.Equal(t, int64(1), out.ParetoGoods[0].GoodsItemID)
}

func TestGetMarginsReport_PrimeroSiempreEnPareto(t *testing.T) {
	repo := &fakeAnalyticsRepo{margins: []repository.GoodsMarginResult{
		{GoodsItemID: 7, Name: "Gạo", GrossRevenue: dec("950"), GrossProfit: dec("100")},
		{GoodsItemID: 8, Name: "Muối", GrossRevenue: dec("50"), GrossProfit: dec("10")},
	}}
	out, err := NewMarginsUseCase(repo).GetMarginsReport(context.Background(), dto.MarginsReportRequest{TopN: 500})
	require.NoError(t, err)
	assert.Equal(t, maxTopN, repo.gotLimit)
	require.Len(t, out.ParetoGoods, 1)
	assert.Equal(t, int64(7), out.ParetoGoods[0].GoodsItemID)
}

func TestGetMarginsReport_SinVentas(t *testing.T) {
	out, err := NewMarginsUseCase(&fakeAnalyticsRepo{}).GetMarginsReport(context.Background(), dto.MarginsReportRequest{})
	require.NoError(t, err)
	assert.Empty(t, out.Ranking)
	assert.NotNil(t, out.Ranking)
	assert.True(t, out.TotalRevenue.IsZero())
}

func TestParsePeriod(t *testing.T) {
	now := time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC)

	start, end, err := parsePeriod(now, "2024-01-10", "2024-01-20")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 1, 20, 23, 59, 59, 0, time.UTC), end)

	_, _, err = parsePeriod(now, "2024-02-01", "2024-01-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = parsePeriod(now, "10/01/2024", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = parsePeriod(now, "", "ayer")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
