package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-backoffice/internal/application/dto"
	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/inventory"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

// CreateInvoiceUseCase crea una factura y descuenta el inventario en una sola transacción.
type CreateInvoiceUseCase struct {
	txRunner     repository.TxRunner
	ledger       StockAdjuster
	employeeRepo repository.EmployeeRepository
	invoiceRepo  repository.InvoiceRepository
	log          zerolog.Logger
}

// NewCreateInvoiceUseCase construye el caso de uso.
func NewCreateInvoiceUseCase(
	txRunner repository.TxRunner,
	ledger StockAdjuster,
	employeeRepo repository.EmployeeRepository,
	invoiceRepo repository.InvoiceRepository,
	log zerolog.Logger,
) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		employeeRepo: employeeRepo,
		invoiceRepo:  invoiceRepo,
		log:          log.With().Str("component", "invoice_workflow").Logger(),
	}
}

// CreateInvoice valida la solicitud y, en una transacción: verifica existencias de todas
// las líneas, crea la cabecera, descuenta el stock y guarda cada línea, y fija el total.
// Cualquier error hace rollback completo (cabecera, líneas y descuentos de stock).
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.EmployeeID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	lines, err := validLines(in.Lines)
	if err != nil {
		return nil, err
	}

	// El empleado se valida fuera de la tx (solo lectura)
	employee, err := uc.employeeRepo.GetByID(ctx, in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, fmt.Errorf("%w: empleado %d", domain.ErrNotFound, in.EmployeeID)
	}

	var inv *entity.Invoice
	var created []*entity.InvoiceLine

	err = uc.txRunner.RunInTx(ctx, func(uow repository.UnitOfWork) error {
		goodsRepo := uow.GoodsItems()
		invoiceRepo := uow.Invoices()

		// 1) Verificación previa: ninguna escritura si alguna línea no tiene stock
		itemsByID := make(map[int64]*entity.GoodsItem, len(lines))
		for _, line := range lines {
			item, err := goodsRepo.GetByID(ctx, line.GoodsItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return fmt.Errorf("%w: artículo %d", domain.ErrNotFound, line.GoodsItemID)
			}
			if !inventory.CanFulfil(item.StockQuantity, line.Quantity) {
				return &domain.InsufficientStockError{
					GoodsItemID: item.ID,
					Name:        item.Name,
					Available:   item.StockQuantity,
					Requested:   line.Quantity,
				}
			}
			itemsByID[item.ID] = item
		}

		// 2) Cabecera con total 0 (se fija al final)
		inv = &entity.Invoice{
			CreatedAt:  time.Now().UTC(),
			EmployeeID: employee.ID,
			Total:      decimal.Zero,
		}
		if err := invoiceRepo.Create(ctx, inv); err != nil {
			return err
		}

		// 3) Por cada línea, en orden: precio, salida de stock vía libro, subtotal, línea
		total := decimal.Zero
		created = make([]*entity.InvoiceLine, 0, len(lines))
		for _, line := range lines {
			item := itemsByID[line.GoodsItemID]
			unitPrice := item.SalePrice
			if line.UnitPrice != nil {
				unitPrice = *line.UnitPrice
			}
			unitPrice = unitPrice.Round(2)

			// Revalida bajo bloqueo de fila; el pre-check solo adelanta el fallo
			if _, err := uc.ledger.AdjustStockInTx(ctx, goodsRepo, item.ID, -line.Quantity); err != nil {
				return err
			}

			subtotal := unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
			detail := &entity.InvoiceLine{
				InvoiceID:   inv.ID,
				GoodsItemID: item.ID,
				Quantity:    line.Quantity,
				UnitPrice:   unitPrice,
				Subtotal:    subtotal,
			}
			if err := invoiceRepo.CreateLine(ctx, detail); err != nil {
				return err
			}
			total = total.Add(subtotal)
			created = append(created, detail)
		}

		// 4) Total definitivo
		if err := invoiceRepo.UpdateTotal(ctx, inv.ID, total); err != nil {
			return err
		}
		inv.Total = total
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Int64("employee_id", in.EmployeeID).Int("lines", len(lines)).Msg("factura rechazada")
		return nil, err
	}

	uc.log.Info().
		Int64("invoice_id", inv.ID).
		Int64("employee_id", inv.EmployeeID).
		Str("total", inv.Total.StringFixed(2)).
		Int("lines", len(created)).
		Msg("factura creada")
	return toInvoiceResponse(inv, created), nil
}

// validLines descarta líneas con cantidad <= 0 y valida el resto.
// Un artículo repetido se rechaza aquí, antes de cualquier escritura.
func validLines(in []dto.InvoiceLineRequest) ([]dto.InvoiceLineRequest, error) {
	out := make([]dto.InvoiceLineRequest, 0, len(in))
	seen := make(map[int64]struct{}, len(in))
	for _, line := range in {
		if line.Quantity <= 0 {
			continue
		}
		if line.GoodsItemID <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if line.UnitPrice != nil && line.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if _, dup := seen[line.GoodsItemID]; dup {
			return nil, &domain.DuplicateLineError{GoodsItemID: line.GoodsItemID}
		}
		seen[line.GoodsItemID] = struct{}{}
		out = append(out, line)
	}
	if len(out) == 0 {
		return nil, domain.ErrNoValidLines
	}
	return out, nil
}

func toInvoiceResponse(inv *entity.Invoice, lines []*entity.InvoiceLine) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		InvoiceID:  inv.ID,
		Timestamp:  inv.CreatedAt,
		EmployeeID: inv.EmployeeID,
		Total:      inv.Total,
		Lines:      make([]dto.InvoiceLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.InvoiceLineResponse{
			GoodsItemID: l.GoodsItemID,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal,
		})
	}
	return resp
}

// GetInvoice obtiene una factura por ID con sus líneas.
func (uc *CreateInvoiceUseCase) GetInvoice(ctx context.Context, id int64) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.invoiceRepo.GetLines(ctx, id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, lines), nil
}
