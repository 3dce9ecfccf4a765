package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-backoffice/internal/application/dto"
	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

const (
	defaultTopN     = 20
	maxTopN         = 200
	paretoThreshold = 80 // el top ~20% de artículos genera el 80% de ingresos
)

var (
	hundred  = decimal.NewFromInt(100)
	pareto80 = decimal.NewFromInt(paretoThreshold)
)

// MarginsUseCase ranking de artículos por margen bruto con análisis Pareto.
type MarginsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewMarginsUseCase construye el caso de uso.
func NewMarginsUseCase(analyticsRepo repository.AnalyticsRepository) *MarginsUseCase {
	return &MarginsUseCase{analyticsRepo: analyticsRepo, now: time.Now}
}

// GetMarginsReport genera el ranking para el período solicitado.
func (uc *MarginsUseCase) GetMarginsReport(ctx context.Context, req dto.MarginsReportRequest) (*dto.MarginsReportResponse, error) {
	start, end, err := parsePeriod(uc.now(), req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	topN := req.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	if topN > maxTopN {
		topN = maxTopN
	}

	rows, err := uc.analyticsRepo.GoodsMargins(ctx, start, end, topN)
	if err != nil {
		return nil, fmt.Errorf("analytics: márgenes: %w", err)
	}

	ranking := buildRanking(rows)
	resp := &dto.MarginsReportResponse{
		Period: dto.PeriodDTO{
			StartDate: start.Format("2006-01-02"),
			EndDate:   end.Format("2006-01-02"),
		},
		TotalRevenue: decimal.Zero,
		TotalProfit:  decimal.Zero,
		Ranking:      ranking,
		ParetoGoods:  []dto.GoodsMarginDTO{},
	}
	for _, r := range ranking {
		resp.TotalRevenue = resp.TotalRevenue.Add(r.GrossRevenue)
		resp.TotalProfit = resp.TotalProfit.Add(r.GrossProfit)
		if r.IsTopPareto {
			resp.ParetoGoods = append(resp.ParetoGoods, r)
		}
	}
	return resp, nil
}

// buildRanking asigna Rank, porcentajes y acumulado Pareto en el orden recibido.
func buildRanking(rows []repository.GoodsMarginResult) []dto.GoodsMarginDTO {
	if len(rows) == 0 {
		return []dto.GoodsMarginDTO{}
	}

	var totalRevenue decimal.Decimal
	for _, r := range rows {
		totalRevenue = totalRevenue.Add(r.GrossRevenue)
	}

	ranking := make([]dto.GoodsMarginDTO, 0, len(rows))
	var cumulative decimal.Decimal
	for i, r := range rows {
		marginPct := decimal.Zero
		if r.GrossRevenue.IsPositive() {
			marginPct = r.GrossProfit.Div(r.GrossRevenue).Mul(hundred).Round(2)
		}
		revenuePct := decimal.Zero
		if totalRevenue.IsPositive() {
			revenuePct = r.GrossRevenue.Div(totalRevenue).Mul(hundred).Round(2)
		}
		cumulative = cumulative.Add(revenuePct)
		// El primero siempre entra aunque supere el umbral por sí solo.
		isPareto := cumulative.LessThanOrEqual(pareto80) || i == 0

		ranking = append(ranking, dto.GoodsMarginDTO{
			Rank:             i + 1,
			GoodsItemID:      r.GoodsItemID,
			Name:             r.Name,
			UnitsSold:        r.UnitsSold,
			GrossRevenue:     r.GrossRevenue.Round(2),
			TotalCost:        r.TotalCost.Round(2),
			GrossProfit:      r.GrossProfit.Round(2),
			MarginPct:        marginPct,
			RevenuePct:       revenuePct,
			CumulativeRevPct: cumulative.Round(2),
			IsTopPareto:      isPareto,
		})
	}
	return ranking
}

// parsePeriod convierte las fechas en [start, end]; end es inclusivo hasta el final del día.
func parsePeriod(now time.Time, startStr, endStr string) (start, end time.Time, err error) {
	loc := now.Location()
	if endStr == "" {
		end = now
	} else {
		end, err = time.ParseInLocation("2006-01-02", endStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date %q", domain.ErrInvalidInput, endStr)
		}
		end = end.Add(24*time.Hour - time.Second)
	}

	if startStr == "" {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	} else {
		start, err = time.ParseInLocation("2006-01-02", startStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date %q", domain.ErrInvalidInput, startStr)
		}
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date posterior a end_date", domain.ErrInvalidInput)
	}
	return start, end, nil
}
