// Package analytics contiene los casos de uso para reportes de ventas.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-backoffice/internal/application/dto"
	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

const (
	minReportYear = 2000
	maxReportYear = 2100
)

// RevenueUseCase genera el reporte de ingresos mensuales de un año.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type RevenueUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewRevenueUseCase construye el caso de uso.
func NewRevenueUseCase(analyticsRepo repository.AnalyticsRepository) *RevenueUseCase {
	return &RevenueUseCase{analyticsRepo: analyticsRepo}
}

// RevenueByMonth devuelve siempre los 12 meses del año; los meses sin ventas valen 0.
func (uc *RevenueUseCase) RevenueByMonth(ctx context.Context, year int) (*dto.RevenueReportResponse, error) {
	if year < minReportYear || year > maxReportYear {
		return nil, fmt.Errorf("%w: año %d fuera de rango", domain.ErrInvalidInput, year)
	}
	raw, err := uc.analyticsRepo.RevenueByMonth(ctx, year)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[int]decimal.Decimal, len(raw))
	for _, r := range raw {
		byMonth[r.Month] = r.Revenue
	}

	resp := &dto.RevenueReportResponse{
		Year:   year,
		Months: make([]dto.MonthlyRevenueDTO, 0, 12),
		Total:  decimal.Zero,
	}
	for month := 1; month <= 12; month++ {
		revenue, ok := byMonth[month]
		if !ok {
			revenue = decimal.Zero
		}
		resp.Months = append(resp.Months, dto.MonthlyRevenueDTO{Month: month, Revenue: revenue})
		resp.Total = resp.Total.Add(revenue)
	}
	return resp, nil
}
