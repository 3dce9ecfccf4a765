package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

// InvoiceRepository implementación en memoria de repository.InvoiceRepository.
type InvoiceRepository struct {
	run runFunc
}

// NewInvoiceRepository crea el repositorio sobre el almacén.
func NewInvoiceRepository(s *Store) *InvoiceRepository {
	return &InvoiceRepository{run: s.run}
}

var _ repository.InvoiceRepository = (*InvoiceRepository)(nil)

func (r *InvoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return r.run(func(d *dataset) error {
		if _, ok := d.employees[invoice.EmployeeID]; !ok {
			return fmt.Errorf("empleado %d: %w", invoice.EmployeeID, domain.ErrNotFound)
		}
		invoice.ID = d.next("invoices")
		d.invoices[invoice.ID] = *invoice
		return nil
	})
}

func (r *InvoiceRepository) CreateLine(ctx context.Context, line *entity.InvoiceLine) error {
	return r.run(func(d *dataset) error {
		if _, ok := d.invoices[line.InvoiceID]; !ok {
			return domain.ErrInvalidInput
		}
		if _, ok := d.goods[line.GoodsItemID]; !ok {
			return domain.ErrInvalidInput
		}
		for _, l := range d.lines {
			if l.InvoiceID == line.InvoiceID && l.GoodsItemID == line.GoodsItemID {
				return &domain.DuplicateLineError{GoodsItemID: line.GoodsItemID}
			}
		}
		line.ID = d.next("invoice_lines")
		d.lines[line.ID] = *line
		return nil
	})
}

func (r *InvoiceRepository) UpdateTotal(ctx context.Context, invoiceID int64, total decimal.Decimal) error {
	return r.run(func(d *dataset) error {
		inv, ok := d.invoices[invoiceID]
		if !ok {
			return domain.ErrNotFound
		}
		inv.Total = total
		d.invoices[invoiceID] = inv
		return nil
	})
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id int64) (*entity.Invoice, error) {
	var out *entity.Invoice
	err := r.run(func(d *dataset) error {
		if inv, ok := d.invoices[id]; ok {
			out = &inv
		}
		return nil
	})
	return out, err
}

func (r *InvoiceRepository) GetLines(ctx context.Context, invoiceID int64) ([]*entity.InvoiceLine, error) {
	var out []*entity.InvoiceLine
	err := r.run(func(d *dataset) error {
		for _, l := range d.lines {
			if l.InvoiceID == invoiceID {
				l := l
				out = append(out, &l)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// List ordena de la más reciente a la más antigua.
func (r *InvoiceRepository) List(ctx context.Context, filter repository.InvoiceFilter) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	err := r.run(func(d *dataset) error {
		for _, inv := range d.invoices {
			if filter.EmployeeID != nil && inv.EmployeeID != *filter.EmployeeID {
				continue
			}
			inv := inv
			out = append(out, &inv)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return page(out, filter.Limit, filter.Offset), nil
}

func (r *InvoiceRepository) Delete(ctx context.Context, id int64) error {
	return r.run(func(d *dataset) error {
		if _, ok := d.invoices[id]; !ok {
			return domain.ErrNotFound
		}
		for lid, l := range d.lines {
			if l.InvoiceID == id {
				delete(d.lines, lid)
			}
		}
		delete(d.invoices, id)
		return nil
	})
}
