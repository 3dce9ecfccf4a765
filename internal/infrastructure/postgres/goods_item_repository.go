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

var _ repository.GoodsItemRepository = (*GoodsItemRepo)(nil)

const goodsColumns = `id, name, category_id, brand_id, unit_id, purchase_price, sale_price, stock_quantity, created_at, updated_at`

// GoodsItemRepo implementación del puerto GoodsItemRepository sobre PostgreSQL (usable con pool o tx).
type GoodsItemRepo struct {
	q Querier
}

// NewGoodsItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGoodsItemRepository(q Querier) *GoodsItemRepo {
	return &GoodsItemRepo{q: q}
}

// Create persiste un nuevo artículo y asigna item.ID.
func (r *GoodsItemRepo) Create(ctx context.Context, item *entity.GoodsItem) error {
	query := `
		INSERT INTO goods_items (name, category_id, brand_id, unit_id, purchase_price, sale_price, stock_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		item.Name, item.CategoryID, item.BrandID, item.UnitID,
		item.PurchasePrice, item.SalePrice, item.StockQuantity, item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert goods item: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert goods item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID; (nil, nil) si no existe.
func (r *GoodsItemRepo) GetByID(ctx context.Context, id int64) (*entity.GoodsItem, error) {
	return r.getOne(ctx, `SELECT `+goodsColumns+` FROM goods_items WHERE id = $1`, id)
}

// GetForUpdate obtiene el artículo bloqueando la fila hasta el fin de la transacción.
func (r *GoodsItemRepo) GetForUpdate(ctx context.Context, id int64) (*entity.GoodsItem, error) {
	return r.getOne(ctx, `SELECT `+goodsColumns+` FROM goods_items WHERE id = $1 FOR UPDATE`, id)
}

func (r *GoodsItemRepo) getOne(ctx context.Context, query string, id int64) (*entity.GoodsItem, error) {
	g, err := scanGoods(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get goods item: %w", err)
	}
	return g, nil
}

// List lista artículos aplicando los filtros; orden por id.
func (r *GoodsItemRepo) List(ctx context.Context, filter repository.GoodsItemFilter) ([]*entity.GoodsItem, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		add("name ILIKE $%d", likePattern(s))
	}
	if filter.CategoryID != nil {
		add("category_id = $%d", *filter.CategoryID)
	}
	if filter.BrandID != nil {
		add("brand_id = $%d", *filter.BrandID)
	}
	if filter.MaxStock != nil {
		add("stock_quantity <= $%d", *filter.MaxStock)
	}

	query := `SELECT ` + goodsColumns + ` FROM goods_items`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list goods items: %w", err)
	}
	defer rows.Close()

	var list []*entity.GoodsItem
	for rows.Next() {
		g, err := scanGoods(rows)
		if err != nil {
			return nil, fmt.Errorf("scan goods item: %w", err)
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

// Update modifica datos descriptivos y precios. stock_quantity no se toca.
func (r *GoodsItemRepo) Update(ctx context.Context, item *entity.GoodsItem) error {
	query := `
		UPDATE goods_items
		SET name = $2, category_id = $3, brand_id = $4, unit_id = $5,
		    purchase_price = $6, sale_price = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.CategoryID, item.BrandID, item.UnitID,
		item.PurchasePrice, item.SalePrice, item.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("update goods item: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update goods item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock escribe la cantidad; el CHECK de la tabla impide valores negativos.
func (r *GoodsItemRepo) UpdateStock(ctx context.Context, id int64, quantity int) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE goods_items SET stock_quantity = $2, updated_at = NOW() WHERE id = $1`, id, quantity)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("update stock: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// HasInvoiceLines informa si el artículo aparece en alguna factura.
func (r *GoodsItemRepo) HasInvoiceLines(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM invoice_lines WHERE goods_item_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("goods item invoice lines: %w", err)
	}
	return exists, nil
}

// Delete elimina el artículo; ON DELETE RESTRICT en invoice_lines lo impide si fue facturado.
func (r *GoodsItemRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM goods_items WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return &domain.ReferentialIntegrityError{Entity: "goods_item", ID: id, Dependency: "invoice_lines"}
		}
		return fmt.Errorf("delete goods item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanGoods(row pgx.Row) (*entity.GoodsItem, error) {
	var g entity.GoodsItem
	err := row.Scan(
		&g.ID, &g.Name, &g.CategoryID, &g.BrandID, &g.UnitID,
		&g.PurchasePrice, &g.SalePrice, &g.StockQuantity, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}
