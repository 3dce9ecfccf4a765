package billing

import (
	"context"

	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

// StockAdjuster interfaz para integrar facturación con el libro de inventario.
// AdjustStockInTx usa el repositorio del caller (misma transacción).
// Si retorna error (ej: ErrInsufficientStock), el caller debe hacer rollback.
type StockAdjuster interface {
	AdjustStockInTx(
		ctx context.Context,
		goodsRepo repository.GoodsItemRepository,
		goodsItemID int64,
		delta int,
	) (*entity.GoodsItem, error)
}

// InvoiceLineForPDF línea de factura enriquecida con el nombre del artículo.
type InvoiceLineForPDF struct {
	entity.InvoiceLine
	GoodsItemName string
}

// InvoicePDFGenerator genera la versión imprimible de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		storeName string,
		invoice *entity.Invoice,
		employee *entity.Employee,
		lines []InvoiceLineForPDF,
	) ([]byte, error)
}
