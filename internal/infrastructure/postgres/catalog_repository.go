package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.BrandRepository    = (*BrandRepo)(nil)
	_ repository.UnitRepository     = (*UnitRepo)(nil)
)

// searchClause devuelve el WHERE por nombre y sus argumentos; vacío si no hay búsqueda.
func searchClause(column, search string) (string, []any) {
	s := strings.TrimSpace(search)
	if s == "" {
		return "", nil
	}
	return " WHERE " + column + " ILIKE $1", []any{likePattern(s)}
}

func execDelete(ctx context.Context, q Querier, query string, id int64, onFK func() error) error {
	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		if isForeignKeyViolation(err) && onFK != nil {
			return onFK()
		}
		return fmt.Errorf("delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func execUpdate(ctx context.Context, q Querier, query string, args ...any) error {
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ── Categorías ────────────────────────────────────────────────────────────────

// CategoryRepo adaptador PostgreSQL de categorías.
type CategoryRepo struct{ q Querier }

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(q Querier) *CategoryRepo { return &CategoryRepo{q: q} }

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING id`,
		c.Name, c.Description).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx, `SELECT id, name, description FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) List(ctx context.Context, search string) ([]*entity.Category, error) {
	where, args := searchClause("name", search)
	rows, err := r.q.Query(ctx, `SELECT id, name, description FROM categories`+where+` ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	return execUpdate(ctx, r.q, `UPDATE categories SET name = $2, description = $3 WHERE id = $1`,
		c.ID, c.Name, c.Description)
}

func (r *CategoryRepo) CountGoodsItems(ctx context.Context, id int64) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM goods_items WHERE category_id = $1`, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count category goods: %w", err)
	}
	return n, nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id int64) error {
	return execDelete(ctx, r.q, `DELETE FROM categories WHERE id = $1`, id, func() error {
		return &domain.ReferentialIntegrityError{Entity: "category", ID: id, Dependency: "goods_items"}
	})
}

// ── Marcas ────────────────────────────────────────────────────────────────────

// BrandRepo adaptador PostgreSQL de marcas.
type BrandRepo struct{ q Querier }

// NewBrandRepository construye el adaptador.
func NewBrandRepository(q Querier) *BrandRepo { return &BrandRepo{q: q} }

func (r *BrandRepo) Create(ctx context.Context, b *entity.Brand) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO brands (name, country, description) VALUES ($1, $2, $3) RETURNING id`,
		b.Name, b.Country, b.Description).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("insert brand: %w", err)
	}
	return nil
}

func (r *BrandRepo) GetByID(ctx context.Context, id int64) (*entity.Brand, error) {
	var b entity.Brand
	err := r.q.QueryRow(ctx, `SELECT id, name, country, description FROM brands WHERE id = $1`, id).
		Scan(&b.ID, &b.Name, &b.Country, &b.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return &b, nil
}

func (r *BrandRepo) List(ctx context.Context, search string) ([]*entity.Brand, error) {
	where, args := searchClause("name", search)
	rows, err := r.q.Query(ctx, `SELECT id, name, country, description FROM brands`+where+` ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()
	var list []*entity.Brand
	for rows.Next() {
		var b entity.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Country, &b.Description); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

func (r *BrandRepo) Update(ctx context.Context, b *entity.Brand) error {
	return execUpdate(ctx, r.q, `UPDATE brands SET name = $2, country = $3, description = $4 WHERE id = $1`,
		b.ID, b.Name, b.Country, b.Description)
}

// Delete elimina la marca; goods_items.brand_id queda NULL por ON DELETE SET NULL.
func (r *BrandRepo) Delete(ctx context.Context, id int64) error {
	return execDelete(ctx, r.q, `DELETE FROM brands WHERE id = $1`, id, nil)
}

// ── Unidades ──────────────────────────────────────────────────────────────────

// UnitRepo adaptador PostgreSQL de unidades de medida.
type UnitRepo struct{ q Querier }

// NewUnitRepository construye el adaptador.
func NewUnitRepository(q Querier) *UnitRepo { return &UnitRepo{q: q} }

func (r *UnitRepo) Create(ctx context.Context, u *entity.Unit) error {
	if err := r.q.QueryRow(ctx, `INSERT INTO units (name) VALUES ($1) RETURNING id`, u.Name).Scan(&u.ID); err != nil {
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

func (r *UnitRepo) GetByID(ctx context.Context, id int64) (*entity.Unit, error) {
	var u entity.Unit
	err := r.q.QueryRow(ctx, `SELECT id, name FROM units WHERE id = $1`, id).Scan(&u.ID, &u.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return &u, nil
}

func (r *UnitRepo) List(ctx context.Context, search string) ([]*entity.Unit, error) {
	where, args := searchClause("name", search)
	rows, err := r.q.Query(ctx, `SELECT id, name FROM units`+where+` ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()
	var list []*entity.Unit
	for rows.Next() {
		var u entity.Unit
		if err := rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

func (r *UnitRepo) Update(ctx context.Context, u *entity.Unit) error {
	return execUpdate(ctx, r.q, `UPDATE units SET name = $2 WHERE id = $1`, u.ID, u.Name)
}

func (r *UnitRepo) CountGoodsItems(ctx context.Context, id int64) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM goods_items WHERE unit_id = $1`, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count unit goods: %w", err)
	}
	return n, nil
}

func (r *UnitRepo) Delete(ctx context.Context, id int64) error {
	return execDelete(ctx, r.q, `DELETE FROM units WHERE id = $1`, id, func() error {
		return &domain.ReferentialIntegrityError{Entity: "unit", ID: id, Dependency: "goods_items"}
	})
}
