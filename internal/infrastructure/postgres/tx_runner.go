package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

type unitOfWork struct {
	goods    *GoodsItemRepo
	invoices *InvoiceRepo
}

func (u *unitOfWork) GoodsItems() repository.GoodsItemRepository { return u.goods }
func (u *unitOfWork) Invoices() repository.InvoiceRepository     { return u.invoices }

// RunInTx inicia una transacción (READ COMMITTED), ejecuta fn con repos atados a la tx
// y hace Commit o Rollback. Los bloqueos de GetForUpdate se liberan al terminar.
func (r *TxRunner) RunInTx(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	uow := &unitOfWork{
		goods:    NewGoodsItemRepository(tx),
		invoices: NewInvoiceRepository(tx),
	}
	if err := fn(uow); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
