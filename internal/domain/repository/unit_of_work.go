package repository

import "context"

// UnitOfWork agrupa los repositorios atados a una misma transacción.
// Todo lo escrito a través de ellos se confirma o se descarta en bloque.
type UnitOfWork interface {
	GoodsItems() GoodsItemRepository
	Invoices() InvoiceRepository
}

// TxRunner ejecuta fn dentro de una transacción. Si fn retorna error se hace
// Rollback de todo lo escrito; si no, Commit.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(uow UnitOfWork) error) error
}
