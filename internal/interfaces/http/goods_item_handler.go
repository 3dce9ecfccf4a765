package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-backoffice/internal/application/dto"
	"github.com/jhoicas/retail-backoffice/internal/application/usecase"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

// GoodsItemHandler maneja las peticiones HTTP para artículos.
type GoodsItemHandler struct {
	uc *usecase.GoodsItemUseCase
}

// NewGoodsItemHandler construye el handler.
func NewGoodsItemHandler(uc *usecase.GoodsItemUseCase) *GoodsItemHandler {
	return &GoodsItemHandler{uc: uc}
}

// Create godoc
// @Summary      Crear artículo
// @Tags         goods-items
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateGoodsItemRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.GoodsItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/goods-items [post]
func (h *GoodsItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateGoodsItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener artículo por ID
// @Tags         goods-items
// @Produce      json
// @Param        id   path  int  true  "ID del artículo"
// @Success      200  {object}  dto.GoodsItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/goods-items/{id} [get]
func (h *GoodsItemHandler) GetByID(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "VALIDATION", "id inválido")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar artículos
// @Tags         goods-items
// @Produce      json
// @Param        search       query  string  false  "Subcadena del nombre"
// @Param        category_id  query  int     false  "Filtrar por categoría"
// @Param        brand_id     query  int     false  "Filtrar por marca"
// @Param        limit        query  int     false  "Máx. resultados (default 20, max 100)"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.GoodsItemListResponse
// @Router       /api/goods-items [get]
func (h *GoodsItemHandler) List(c *fiber.Ctx) error {
	categoryID, ok1 := queryInt64(c, "category_id")
	brandID, ok2 := queryInt64(c, "brand_id")
	if !ok1 || !ok2 {
		return badRequest(c, "VALIDATION", "category_id y brand_id deben ser numéricos")
	}
	out, err := h.uc.List(c.UserContext(), repository.GoodsItemFilter{
		Search:     c.Query("search"),
		CategoryID: categoryID,
		BrandID:    brandID,
		Limit:      c.QueryInt("limit", 20),
		Offset:     c.QueryInt("offset", 0),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar artículo (parcial, sin stock)
// @Tags         goods-items
// @Accept       json
// @Produce      json
// @Param        id    path  int                         true  "ID del artículo"
// @Param        body  body  dto.UpdateGoodsItemRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.GoodsItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/goods-items/{id} [patch]
func (h *GoodsItemHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "VALIDATION", "id inválido")
	}
	var in dto.UpdateGoodsItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar artículo
// @Description  Falla con 409 si el artículo aparece en alguna factura.
// @Tags         goods-items
// @Param        id   path  int  true  "ID del artículo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/goods-items/{id} [delete]
func (h *GoodsItemHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "VALIDATION", "id inválido")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AdjustStock godoc
// @Summary      Ajustar stock (reabastecimiento o salida manual)
// @Tags         goods-items
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID del artículo"
// @Param        body  body  dto.AdjustStockRequest  true  "delta positivo = entrada, negativo = salida"
// @Success      200   {object}  dto.GoodsItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/goods-items/{id}/stock [post]
func (h *GoodsItemHandler) AdjustStock(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "VALIDATION", "id inválido")
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.AdjustStock(c.UserContext(), id, in.Delta)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
