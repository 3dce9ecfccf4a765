package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

// PDFUseCase genera la versión imprimible (PDF) de una factura.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	employeeRepo repository.EmployeeRepository
	goodsRepo    repository.GoodsItemRepository
	generator    InvoicePDFGenerator
	storeName    string
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	employeeRepo repository.EmployeeRepository,
	goodsRepo repository.GoodsItemRepository,
	generator InvoicePDFGenerator,
	storeName string,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		employeeRepo: employeeRepo,
		goodsRepo:    goodsRepo,
		generator:    generator,
		storeName:    storeName,
	}
}

// DownloadInvoicePDF recupera la factura con sus líneas y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID int64) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar factura ─────────────────────────────────────────────────────
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 2. Cargar empleado ────────────────────────────────────────────────────
	employee, err := uc.employeeRepo.GetByID(ctx, inv.EmployeeID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener empleado: %w", err)
	}
	if employee == nil {
		return nil, "", fmt.Errorf("pdf: empleado %d de la factura %d: %w", inv.EmployeeID, inv.ID, domain.ErrNotFound)
	}

	// ── 3. Cargar líneas + enriquecer con nombre de artículo ──────────────────
	rawLines, err := uc.invoiceRepo.GetLines(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}
	enriched := make([]InvoiceLineForPDF, 0, len(rawLines))
	for _, l := range rawLines {
		name := fmt.Sprintf("Artículo %d", l.GoodsItemID) // fallback
		if item, gErr := uc.goodsRepo.GetByID(ctx, l.GoodsItemID); gErr == nil && item != nil {
			name = item.Name
		}
		enriched = append(enriched, InvoiceLineForPDF{InvoiceLine: *l, GoodsItemName: name})
	}

	// ── 4. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, uc.storeName, inv, employee, enriched)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("factura_%06d.pdf", inv.ID), nil
}
