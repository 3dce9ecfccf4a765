package billing

import (
	"context"

	"github.com/jhoicas/retail-backoffice/internal/application/dto"
	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

// ListInvoices lista facturas (más recientes primero), opcionalmente de un empleado.
func (uc *CreateInvoiceUseCase) ListInvoices(ctx context.Context, employeeID *int64, page dto.PageRequest) (*dto.InvoiceListResponse, error) {
	page.DefaultPage()
	list, err := uc.invoiceRepo.List(ctx, repository.InvoiceFilter{
		EmployeeID: employeeID,
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &dto.InvoiceListResponse{
		Items: toSummaries(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ListByEmployee lista todas las facturas emitidas por un empleado.
// domain.ErrNotFound si el empleado no existe.
func (uc *CreateInvoiceUseCase) ListByEmployee(ctx context.Context, employeeID int64) ([]dto.InvoiceSummaryResponse, error) {
	employee, err := uc.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.invoiceRepo.List(ctx, repository.InvoiceFilter{EmployeeID: &employeeID})
	if err != nil {
		return nil, err
	}
	return toSummaries(list), nil
}

// DeleteInvoice elimina la factura y sus líneas. No devuelve el stock.
func (uc *CreateInvoiceUseCase) DeleteInvoice(ctx context.Context, id int64) error {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	if err := uc.invoiceRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Int64("invoice_id", id).Msg("factura eliminada")
	return nil
}

func toSummaries(list []*entity.Invoice) []dto.InvoiceSummaryResponse {
	out := make([]dto.InvoiceSummaryResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, dto.InvoiceSummaryResponse{
			InvoiceID:  inv.ID,
			Timestamp:  inv.CreatedAt,
			EmployeeID: inv.EmployeeID,
			Total:      inv.Total,
		})
	}
	return out
}
