package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/inventory"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

// StockLedger es la única vía para modificar StockQuantity de un artículo.
// Garantiza que la cantidad confirmada nunca sea negativa: cada ajuste bloquea
// la fila (SELECT FOR UPDATE), revalida y escribe dentro de la misma transacción.
type StockLedger struct {
	txRunner repository.TxRunner
	log      zerolog.Logger
}

// NewStockLedger construye el libro de inventario.
func NewStockLedger(txRunner repository.TxRunner, log zerolog.Logger) *StockLedger {
	return &StockLedger{
		txRunner: txRunner,
		log:      log.With().Str("component", "stock_ledger").Logger(),
	}
}

// AdjustStock aplica delta (positivo = reabastecimiento, negativo = venta) en su propia transacción.
func (l *StockLedger) AdjustStock(ctx context.Context, goodsItemID int64, delta int) (*entity.GoodsItem, error) {
	if goodsItemID <= 0 || delta == 0 || !inventory.DeltaInRange(0, delta) {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.GoodsItem
	err := l.txRunner.RunInTx(ctx, func(uow repository.UnitOfWork) error {
		item, err := l.AdjustStockInTx(ctx, uow.GoodsItems(), goodsItemID, delta)
		if err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		l.log.Warn().Err(err).Int64("goods_item_id", goodsItemID).Int("delta", delta).Msg("ajuste de stock rechazado")
		return nil, err
	}
	l.log.Info().Int64("goods_item_id", goodsItemID).Int("delta", delta).Int("stock", updated.StockQuantity).Msg("stock ajustado")
	return updated, nil
}

// AdjustStockInTx aplica delta usando el repositorio del caller (misma transacción).
// Si retorna error (ej: ErrInsufficientStock), el caller debe hacer rollback;
// en ese caso no se escribió nada.
func (l *StockLedger) AdjustStockInTx(
	ctx context.Context,
	goodsRepo repository.GoodsItemRepository,
	goodsItemID int64,
	delta int,
) (*entity.GoodsItem, error) {
	// Bloquea la fila del artículo hasta el Commit/Rollback
	item, err := goodsRepo.GetForUpdate(ctx, goodsItemID)
	if err != nil {
		return nil, fmt.Errorf("leer artículo %d: %w", goodsItemID, err)
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if !inventory.DeltaInRange(item.StockQuantity, delta) {
		return nil, fmt.Errorf("artículo %d: stock %d%+d supera el máximo %d: %w",
			item.ID, item.StockQuantity, delta, inventory.MaxQuantity, domain.ErrInvalidInput)
	}
	newQty, ok := inventory.ApplyDelta(item.StockQuantity, delta)
	if !ok {
		return nil, &domain.InsufficientStockError{
			GoodsItemID: item.ID,
			Name:        item.Name,
			Available:   item.StockQuantity,
			Requested:   -delta,
		}
	}
	if err := goodsRepo.UpdateStock(ctx, goodsItemID, newQty); err != nil {
		return nil, err
	}
	item.StockQuantity = newQty
	item.UpdatedAt = time.Now()
	return item, nil
}
