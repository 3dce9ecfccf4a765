package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación del puerto InvoiceRepository (cabecera y líneas).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create inserta la cabecera y asigna invoice.ID.
func (r *InvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO invoices (created_at, employee_id, total) VALUES ($1, $2, $3) RETURNING id`,
		invoice.CreatedAt, invoice.EmployeeID, invoice.Total,
	).Scan(&invoice.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert invoice: empleado %d: %w", invoice.EmployeeID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateLine inserta una línea. La restricción UNIQUE(invoice_id, goods_item_id) se traduce a DuplicateLineError.
func (r *InvoiceRepo) CreateLine(ctx context.Context, line *entity.InvoiceLine) error {
	query := `
		INSERT INTO invoice_lines (invoice_id, goods_item_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		line.InvoiceID, line.GoodsItemID, line.Quantity, line.UnitPrice, line.Subtotal,
	).Scan(&line.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateLineError{GoodsItemID: line.GoodsItemID}
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert invoice line: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert invoice line: %w", err)
	}
	return nil
}

// UpdateTotal fija el total calculado de la factura.
func (r *InvoiceRepo) UpdateTotal(ctx context.Context, invoiceID int64, total decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE invoices SET total = $2 WHERE id = $1`, invoiceID, total)
	if err != nil {
		return fmt.Errorf("update invoice total: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene la cabecera; (nil, nil) si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id int64) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := r.q.QueryRow(ctx,
		`SELECT id, created_at, employee_id, total FROM invoices WHERE id = $1`, id,
	).Scan(&inv.ID, &inv.CreatedAt, &inv.EmployeeID, &inv.Total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// GetLines devuelve las líneas en orden de inserción.
func (r *InvoiceRepo) GetLines(ctx context.Context, invoiceID int64) ([]*entity.InvoiceLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, invoice_id, goods_item_id, quantity, unit_price, subtotal
		FROM invoice_lines WHERE invoice_id = $1 ORDER BY id`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get invoice lines: %w", err)
	}
	defer rows.Close()

	var lines []*entity.InvoiceLine
	for rows.Next() {
		var l entity.InvoiceLine
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.GoodsItemID, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// List lista facturas de la más reciente a la más antigua.
func (r *InvoiceRepo) List(ctx context.Context, filter repository.InvoiceFilter) ([]*entity.Invoice, error) {
	query := `SELECT id, created_at, employee_id, total FROM invoices`
	var args []any
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		query += ` WHERE employee_id = $1`
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(&inv.ID, &inv.CreatedAt, &inv.EmployeeID, &inv.Total); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// Delete elimina la factura; sus líneas caen por ON DELETE CASCADE.
func (r *InvoiceRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
