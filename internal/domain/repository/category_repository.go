package repository

import (
	"context"

	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	List(ctx context.Context, search string) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	CountGoodsItems(ctx context.Context, id int64) (int, error)
	Delete(ctx context.Context, id int64) error
}

// BrandRepository define el puerto de persistencia para Brand.
// Delete deja en NULL la marca de los artículos asociados.
type BrandRepository interface {
	Create(ctx context.Context, brand *entity.Brand) error
	GetByID(ctx context.Context, id int64) (*entity.Brand, error)
	List(ctx context.Context, search string) ([]*entity.Brand, error)
	Update(ctx context.Context, brand *entity.Brand) error
	Delete(ctx context.Context, id int64) error
}

// UnitRepository define el puerto de persistencia para Unit.
type UnitRepository interface {
	Create(ctx context.Context, unit *entity.Unit) error
	GetByID(ctx context.Context, id int64) (*entity.Unit, error)
	List(ctx context.Context, search string) ([]*entity.Unit, error)
	Update(ctx context.Context, unit *entity.Unit) error
	CountGoodsItems(ctx context.Context, id int64) (int, error)
	Delete(ctx context.Context, id int64) error
}
