package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-backoffice/internal/application/inventory"
)

// InventoryHandler expone la lista de reposición.
type InventoryHandler struct {
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{replenishment: replenishment}
}

// GetLowStock godoc
// @Summary      Lista de reposición
// @Description  Artículos con stock <= threshold y la cantidad sugerida para llegar a target.
// @Tags         inventory
// @Produce      json
// @Param        threshold  query  int  false  "Umbral de stock bajo (default 5)"
// @Param        target     query  int  false  "Stock objetivo tras reponer (default 20)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) GetLowStock(c *fiber.Ctx) error {
	threshold := c.QueryInt("threshold", 5)
	target := c.QueryInt("target", 20)

	list, err := h.replenishment.GenerateReplenishmentList(c.UserContext(), threshold, target)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}
