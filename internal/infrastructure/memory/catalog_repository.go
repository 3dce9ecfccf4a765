package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

// CategoryRepository implementación en memoria de repository.CategoryRepository.
type CategoryRepository struct{ run runFunc }

// NewCategoryRepository crea el repositorio sobre el almacén.
func NewCategoryRepository(s *Store) *CategoryRepository { return &CategoryRepository{run: s.run} }

var _ repository.CategoryRepository = (*CategoryRepository)(nil)

func (r *CategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	return r.run(func(d *dataset) error {
		c.ID = d.next("categories")
		d.categories[c.ID] = *c
		return nil
	})
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	var out *entity.Category
	err := r.run(func(d *dataset) error {
		if c, ok := d.categories[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepository) List(ctx context.Context, search string) ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.run(func(d *dataset) error {
		for _, c := range d.categories {
			if matches(c.Name, search) {
				c := c
				out = append(out, &c)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *CategoryRepository) Update(ctx context.Context, c *entity.Category) error {
	return r.run(func(d *dataset) error {
		if _, ok := d.categories[c.ID]; !ok {
			return domain.ErrNotFound
		}
		d.categories[c.ID] = *c
		return nil
	})
}

func (r *CategoryRepository) CountGoodsItems(ctx context.Context, id int64) (int, error) {
	var n int
	err := r.run(func(d *dataset) error {
		for _, g := range d.goods {
			if g.CategoryID == id {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	return r.run(func(d *dataset) error {
		if _, ok := d.categories[id]; !ok {
			return domain.ErrNotFound
		}
		for _, g := range d.goods {
			if g.CategoryID == id {
				return &domain.ReferentialIntegrityError{Entity: "category", ID: id, Dependency: "goods_items"}
			}
		}
		delete(d.categories, id)
		return nil
	})
}

// BrandRepository implementación en memoria de repository.BrandRepository.
type BrandRepository struct{ run runFunc }

// NewBrandRepository crea el repositorio sobre el almacén.
func NewBrandRepository(s *Store) *BrandRepository { return &BrandRepository{run: s.run} }

var _ repository.BrandRepository = (*BrandRepository)(nil)

func (r *BrandRepository) Create(ctx context.Context, b *entity.Brand) error {
	return r.run(func(d *dataset) error {
		b.ID = d.next("brands")
		d.brands[b.ID] = *b
		return nil
	})
}

func (r *BrandRepository) GetByID(ctx context.Context, id int64) (*entity.Brand, error) {
	var out *entity.Brand
	err := r.run(func(d *dataset) error {
		if b, ok := d.brands[id]; ok {
			out = &b
		}
		return nil
	})
	return out, err
}

func (r *BrandRepository) List(ctx context.Context, search string) ([]*entity.Brand, error) {
	var out []*entity.Brand
	err := r.run(func(d *dataset) error {
		for _, b := range d.brands {
			if matches(b.Name, search) {
				b := b
				out = append(out, &b)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *BrandRepository) Update(ctx context.Context, b *entity.Brand) error {
	return r.run(func(d *dataset) error {
		if _, ok := d.brands[b.ID]; !ok {
			return domain.ErrNotFound
		}
		d.brands[b.ID] = *b
		return nil
	})
}

// Delete deja sin marca a los artículos asociados (ON DELETE SET NULL).
func (r *BrandRepository) Delete(ctx context.Context, id int64) error {
	return r.run(func(d *dataset) error {
		if _, ok := d.brands[id]; !ok {
			return domain.ErrNotFound
		}
		for gid, g := range d.goods {
			if g.BrandID != nil && *g.BrandID == id {
				g.BrandID = nil
				d.goods[gid] = g
			}
		}
		delete(d.brands, id)
		return nil
	})
}

// UnitRepository implementación en memoria de repository.UnitRepository.
type UnitRepository struct{ run runFunc }

// NewUnitRepository crea el repositorio sobre el almacén.
func NewUnitRepository(s *Store) *UnitRepository { return &UnitRepository{run: s.run} }

var _ repository.UnitRepository = (*UnitRepository)(nil)

func (r *UnitRepository) Create(ctx context.Context, u *entity.Unit) error {
	return r.run(func(d *dataset) error {
		u.ID = d.next("units")
		d.units[u.ID] = *u
		return nil
	})
}

func (r *UnitRepository) GetByID(ctx context.Context, id int64) (*entity.Unit, error) {
	var out *entity.Unit
	err := r.run(func(d *dataset) error {
		if u, ok := d.units[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UnitRepository) List(ctx context.Context, search string) ([]*entity.Unit, error) {
	var out []*entity.Unit
	err := r.run(func(d *dataset) error {
		for _, u := range d.units {
			if matches(u.Name, search) {
				u := u
				out = append(out, &u)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *UnitRepository) Update(ctx context.Context, u *entity.Unit) error {
	return r.run(func(d *dataset) error {
		if _, ok := d.units[u.ID]; !ok {
			return domain.ErrNotFound
		}
		d.units[u.ID] = *u
		return nil
	})
}

func (r *UnitRepository) CountGoodsItems(ctx context.Context, id int64) (int, error) {
	var n int
	err := r.run(func(d *dataset) error {
		for _, g := range d.goods {
			if g.UnitID == id {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *UnitRepository) Delete(ctx context.Context, id int64) error {
	return r.run(func(d *dataset) error {
		if _, ok := d.units[id]; !ok {
			return domain.ErrNotFound
		}
		for _, g := range d.goods {
			if g.UnitID == id {
				return &domain.ReferentialIntegrityError{Entity: "unit", ID: id, Dependency: "goods_items"}
			}
		}
		delete(d.units, id)
		return nil
	})
}
