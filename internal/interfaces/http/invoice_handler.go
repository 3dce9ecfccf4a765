package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-backoffice/internal/application/billing"
	"github.com/jhoicas/retail-backoffice/internal/application/dto"
)

// InvoiceHandler maneja las peticiones HTTP de facturación.
type InvoiceHandler struct {
	uc  *billing.CreateInvoiceUseCase
	pdf *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.CreateInvoiceUseCase, pdf *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdf: pdf}
}

// Create godoc
// @Summary      Crear factura
// @Description  Crea la factura y descuenta el stock de cada línea en una sola transacción.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "employee_id y líneas (goods_item_id, quantity, unit_price opcional)"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	invoice, err := h.uc.CreateInvoice(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// GetByID godoc
// @Summary      Obtener factura con sus líneas
// @Tags         invoices
// @Produce      json
// @Param        id   path  int  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "VALIDATION", "id inválido")
	}
	invoice, err := h.uc.GetInvoice(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoice)
}

// List godoc
// @Summary      Listar facturas
// @Tags         invoices
// @Produce      json
// @Param        employee_id  query  int  false  "Filtrar por empleado"
// @Param        limit        query  int  false  "Máx. resultados (default 20, max 100)"
// @Param        offset       query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.InvoiceListResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	employeeID, ok := queryInt64(c, "employee_id")
	if !ok {
		return badRequest(c, "VALIDATION", "employee_id debe ser numérico")
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_PARAMS", "parámetros de consulta inválidos")
	}
	out, err := h.uc.ListInvoices(c.UserContext(), employeeID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar factura
// @Description  Elimina la factura y sus líneas. El stock no se restituye.
// @Tags         invoices
// @Param        id   path  int  true  "ID de la factura"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "VALIDATION", "id inválido")
	}
	if err := h.uc.DeleteInvoice(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadPDF godoc
// @Summary      Descargar factura en PDF
// @Tags         invoices
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la factura"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "VALIDATION", "id inválido")
	}
	pdfBytes, filename, err := h.pdf.DownloadInvoicePDF(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}

// ListByEmployee godoc
// @Summary      Facturas emitidas por un empleado
// @Tags         employees
// @Produce      json
// @Param        id   path  int  true  "ID del empleado"
// @Success      200  {array}   dto.InvoiceSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id}/invoices [get]
func (h *InvoiceHandler) ListByEmployee(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "VALIDATION", "id inválido")
	}
	out, err := h.uc.ListByEmployee(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
