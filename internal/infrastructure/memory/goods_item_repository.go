package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/inventory"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

// GoodsItemRepository implementación en memoria de repository.GoodsItemRepository.
type GoodsItemRepository struct {
	run runFunc
}

// NewGoodsItemRepository crea el repositorio sobre el almacén.
func NewGoodsItemRepository(s *Store) *GoodsItemRepository {
	return &GoodsItemRepository{run: s.run}
}

var _ repository.GoodsItemRepository = (*GoodsItemRepository)(nil)

func (r *GoodsItemRepository) Create(ctx context.Context, item *entity.GoodsItem) error {
	return r.run(func(d *dataset) error {
		if err := checkGoodsRefs(d, item); err != nil {
			return err
		}
		item.ID = d.next("goods")
		d.goods[item.ID] = copyGoods(*item)
		return nil
	})
}

func (r *GoodsItemRepository) GetByID(ctx context.Context, id int64) (*entity.GoodsItem, error) {
	var out *entity.GoodsItem
	err := r.run(func(d *dataset) error {
		if g, ok := d.goods[id]; ok {
			c := copyGoods(g)
			out = &c
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: el lock del almacén ya serializa la transacción.
func (r *GoodsItemRepository) GetForUpdate(ctx context.Context, id int64) (*entity.GoodsItem, error) {
	return r.GetByID(ctx, id)
}

func (r *GoodsItemRepository) List(ctx context.Context, filter repository.GoodsItemFilter) ([]*entity.GoodsItem, error) {
	var out []*entity.GoodsItem
	err := r.run(func(d *dataset) error {
		for _, g := range d.goods {
			if !matches(g.Name, filter.Search) {
				continue
			}
			if filter.CategoryID != nil && g.CategoryID != *filter.CategoryID {
				continue
			}
			if filter.BrandID != nil && (g.BrandID == nil || *g.BrandID != *filter.BrandID) {
				continue
			}
			if filter.MaxStock != nil && g.StockQuantity > *filter.MaxStock {
				continue
			}
			c := copyGoods(g)
			out = append(out, &c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, filter.Limit, filter.Offset), nil
}

func (r *GoodsItemRepository) Update(ctx context.Context, item *entity.GoodsItem) error {
	return r.run(func(d *dataset) error {
		cur, ok := d.goods[item.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if err := checkGoodsRefs(d, item); err != nil {
			return err
		}
		next := copyGoods(*item)
		next.StockQuantity = cur.StockQuantity
		next.CreatedAt = cur.CreatedAt
		d.goods[item.ID] = next
		return nil
	})
}

func (r *GoodsItemRepository) UpdateStock(ctx context.Context, id int64, quantity int) error {
	return r.run(func(d *dataset) error {
		g, ok := d.goods[id]
		if !ok {
			return domain.ErrNotFound
		}
		if quantity < 0 || quantity > inventory.MaxQuantity {
			return domain.ErrInvalidInput
		}
		g.StockQuantity = quantity
		d.goods[id] = g
		return nil
	})
}

func (r *GoodsItemRepository) HasInvoiceLines(ctx context.Context, id int64) (bool, error) {
	var found bool
	err := r.run(func(d *dataset) error {
		found = goodsHasLines(d, id)
		return nil
	})
	return found, err
}

func (r *GoodsItemRepository) Delete(ctx context.Context, id int64) error {
	return r.run(func(d *dataset) error {
		if _, ok := d.goods[id]; !ok {
			return domain.ErrNotFound
		}
		if goodsHasLines(d, id) {
			return &domain.ReferentialIntegrityError{Entity: "goods_item", ID: id, Dependency: "invoice_lines"}
		}
		delete(d.goods, id)
		return nil
	})
}

func goodsHasLines(d *dataset, id int64) bool {
	for _, l := range d.lines {
		if l.GoodsItemID == id {
			return true
		}
	}
	return false
}

// checkGoodsRefs emula las claves foráneas de goods_items.
func checkGoodsRefs(d *dataset, item *entity.GoodsItem) error {
	if _, ok := d.categories[item.CategoryID]; !ok {
		return domain.ErrInvalidInput
	}
	if _, ok := d.units[item.UnitID]; !ok {
		return domain.ErrInvalidInput
	}
	if item.BrandID != nil {
		if _, ok := d.brands[*item.BrandID]; !ok {
			return domain.ErrInvalidInput
		}
	}
	return nil
}
