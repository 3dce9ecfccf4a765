package memory

import (
	"context"

	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

// TxRunner implementa repository.TxRunner sobre el almacén en memoria.
// La transacción trabaja sobre una copia del dataset con el lock tomado;
// si fn falla la copia se descarta, si no reemplaza al original.
type TxRunner struct {
	store *Store
}

// NewTxRunner crea el ejecutor de transacciones.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{store: s}
}

var _ repository.TxRunner = (*TxRunner)(nil)

// unitOfWork repositorios ligados al dataset de la transacción.
type unitOfWork struct {
	goods    *GoodsItemRepository
	invoices *InvoiceRepository
}

func (u *unitOfWork) GoodsItems() repository.GoodsItemRepository { return u.goods }
func (u *unitOfWork) Invoices() repository.InvoiceRepository     { return u.invoices }

func (r *TxRunner) RunInTx(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	work := r.store.data.clone()
	run := bound(work)
	uow := &unitOfWork{
		goods:    &GoodsItemRepository{run: run},
		invoices: &InvoiceRepository{run: run},
	}
	if err := fn(uow); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.data = work
	return nil
}
