package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest body para POST /api/invoices.
type CreateInvoiceRequest struct {
	EmployeeID int64                `json:"employee_id"`
	Lines      []InvoiceLineRequest `json:"lines"`
}

// InvoiceLineRequest línea solicitada. Sin unit_price se usa el precio de venta actual.
type InvoiceLineRequest struct {
	GoodsItemID int64            `json:"goods_item_id"`
	Quantity    int              `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
}

// InvoiceResponse factura creada o consultada, con sus líneas.
type InvoiceResponse struct {
	InvoiceID  int64                 `json:"invoice_id"`
	Timestamp  time.Time             `json:"timestamp"`
	EmployeeID int64                 `json:"employee_id"`
	Total      decimal.Decimal       `json:"total"`
	Lines      []InvoiceLineResponse `json:"lines"`
}

// InvoiceLineResponse línea persistida.
type InvoiceLineResponse struct {
	GoodsItemID int64           `json:"goods_item_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// InvoiceSummaryResponse cabecera sin líneas para listados.
type InvoiceSummaryResponse struct {
	InvoiceID  int64           `json:"invoice_id"`
	Timestamp  time.Time       `json:"timestamp"`
	EmployeeID int64           `json:"employee_id"`
	Total      decimal.Decimal `json:"total"`
}

// InvoiceListResponse lista paginada de facturas.
type InvoiceListResponse struct {
	Items []InvoiceSummaryResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}
