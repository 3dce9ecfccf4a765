package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa la cabecera de una factura de venta.
// Total se calcula a partir de las líneas; nunca lo envía el cliente.
type Invoice struct {
	ID         int64
	CreatedAt  time.Time
	EmployeeID int64
	Total      decimal.Decimal
}
