package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
)

// InvoiceFilter criterios de listado de facturas.
type InvoiceFilter struct {
	EmployeeID *int64
	Limit      int
	Offset     int
}

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	// Create persiste la cabecera y asigna invoice.ID.
	Create(ctx context.Context, invoice *entity.Invoice) error
	// CreateLine persiste una línea; domain.ErrDuplicateLine si el artículo ya está en la factura.
	CreateLine(ctx context.Context, line *entity.InvoiceLine) error
	UpdateTotal(ctx context.Context, invoiceID int64, total decimal.Decimal) error
	GetByID(ctx context.Context, id int64) (*entity.Invoice, error)
	GetLines(ctx context.Context, invoiceID int64) ([]*entity.InvoiceLine, error)
	List(ctx context.Context, filter InvoiceFilter) ([]*entity.Invoice, error)
	// Delete elimina la factura y sus líneas (cascada).
	Delete(ctx context.Context, id int64) error
}
