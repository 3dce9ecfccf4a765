package repository

import (
	"context"

	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
)

// GoodsItemFilter criterios de listado de artículos.
type GoodsItemFilter struct {
	Search     string // subcadena del nombre, sin distinguir mayúsculas
	CategoryID *int64
	BrandID    *int64
	MaxStock   *int // solo artículos con StockQuantity <= MaxStock
	Limit      int
	Offset     int
}

// GoodsItemRepository define el puerto de persistencia para GoodsItem (DIP).
type GoodsItemRepository interface {
	Create(ctx context.Context, item *entity.GoodsItem) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id int64) (*entity.GoodsItem, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id int64) (*entity.GoodsItem, error)
	List(ctx context.Context, filter GoodsItemFilter) ([]*entity.GoodsItem, error)
	// Update modifica los datos descriptivos y precios; nunca StockQuantity.
	Update(ctx context.Context, item *entity.GoodsItem) error
	// UpdateStock escribe la cantidad en stock. Solo lo usa el libro de inventario.
	UpdateStock(ctx context.Context, id int64, quantity int) error
	HasInvoiceLines(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}
