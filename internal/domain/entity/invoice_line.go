package entity

import "github.com/shopspring/decimal"

// InvoiceLine representa una línea de factura. Única por (InvoiceID, GoodsItemID).
type InvoiceLine struct {
	ID          int64
	InvoiceID   int64
	GoodsItemID int64
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal // Quantity × UnitPrice
}
