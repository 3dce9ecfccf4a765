package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/retail-backoffice/internal/application/dto"
	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/inventory"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

// StockLedger libro de inventario: única vía para cambiar el stock de un artículo.
type StockLedger interface {
	AdjustStock(ctx context.Context, goodsItemID int64, delta int) (*entity.GoodsItem, error)
}

// GoodsItemUseCase casos de uso CRUD para artículos. El stock se maneja vía el libro de inventario.
type GoodsItemUseCase struct {
	repo         repository.GoodsItemRepository
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
	unitRepo     repository.UnitRepository
	ledger       StockLedger
}

// NewGoodsItemUseCase construye el caso de uso.
func NewGoodsItemUseCase(
	repo repository.GoodsItemRepository,
	categoryRepo repository.CategoryRepository,
	brandRepo repository.BrandRepository,
	unitRepo repository.UnitRepository,
	ledger StockLedger,
) *GoodsItemUseCase {
	return &GoodsItemUseCase{
		repo:         repo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		unitRepo:     unitRepo,
		ledger:       ledger,
	}
}

// Create crea un nuevo artículo con su existencia inicial.
func (uc *GoodsItemUseCase) Create(ctx context.Context, in dto.CreateGoodsItemRequest) (*dto.GoodsItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.StockQuantity < 0 || in.StockQuantity > inventory.MaxQuantity ||
		in.PurchasePrice.IsNegative() || in.SalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkRefs(ctx, in.CategoryID, in.UnitID, in.BrandID); err != nil {
		return nil, err
	}
	now := time.Now()
	item := &entity.GoodsItem{
		Name:          name,
		CategoryID:    in.CategoryID,
		BrandID:       in.BrandID,
		UnitID:        in.UnitID,
		PurchasePrice: in.PurchasePrice.Round(2),
		SalePrice:     in.SalePrice.Round(2),
		StockQuantity: in.StockQuantity,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toGoodsItemResponse(item), nil
}

// GetByID obtiene un artículo por ID.
func (uc *GoodsItemUseCase) GetByID(ctx context.Context, id int64) (*dto.GoodsItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toGoodsItemResponse(item), nil
}

// Update aplica solo los campos presentes en la solicitud. Nunca modifica el stock.
func (uc *GoodsItemUseCase) Update(ctx context.Context, id int64, in dto.UpdateGoodsItemRequest) (*dto.GoodsItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Name = name
	}
	if in.CategoryID != nil {
		item.CategoryID = *in.CategoryID
	}
	if in.UnitID != nil {
		item.UnitID = *in.UnitID
	}
	if in.ClearBrand {
		item.BrandID = nil
	} else if in.BrandID != nil {
		brandID := *in.BrandID
		item.BrandID = &brandID
	}
	if in.PurchasePrice != nil {
		if in.PurchasePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.PurchasePrice = in.PurchasePrice.Round(2)
	}
	if in.SalePrice != nil {
		if in.SalePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.SalePrice = in.SalePrice.Round(2)
	}
	if err := uc.checkRefs(ctx, item.CategoryID, item.UnitID, item.BrandID); err != nil {
		return nil, err
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toGoodsItemResponse(item), nil
}

// List lista artículos con búsqueda por nombre y filtros por categoría y marca.
func (uc *GoodsItemUseCase) List(ctx context.Context, filter repository.GoodsItemFilter) (*dto.GoodsItemListResponse, error) {
	page := dto.PageRequest{Limit: filter.Limit, Offset: filter.Offset}
	page.DefaultPage()
	filter.Limit, filter.Offset = page.Limit, page.Offset
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.GoodsItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toGoodsItemResponse(it))
	}
	return &dto.GoodsItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// AdjustStock registra un reabastecimiento (delta > 0) o una salida manual (delta < 0).
func (uc *GoodsItemUseCase) AdjustStock(ctx context.Context, id int64, delta int) (*dto.GoodsItemResponse, error) {
	item, err := uc.ledger.AdjustStock(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	return toGoodsItemResponse(item), nil
}

// Delete elimina un artículo. Falla si tiene historial de facturación.
func (uc *GoodsItemUseCase) Delete(ctx context.Context, id int64) error {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	used, err := uc.repo.HasInvoiceLines(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return &domain.ReferentialIntegrityError{Entity: "goods_item", ID: id, Dependency: "invoice_lines"}
	}
	return uc.repo.Delete(ctx, id)
}

// checkRefs verifica que categoría, unidad y marca (opcional) existan.
func (uc *GoodsItemUseCase) checkRefs(ctx context.Context, categoryID, unitID int64, brandID *int64) error {
	category, err := uc.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	unit, err := uc.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		return err
	}
	if unit == nil {
		return domain.ErrNotFound
	}
	if brandID != nil {
		brand, err := uc.brandRepo.GetByID(ctx, *brandID)
		if err != nil {
			return err
		}
		if brand == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

func toGoodsItemResponse(it *entity.GoodsItem) *dto.GoodsItemResponse {
	if it == nil {
		return nil
	}
	return &dto.GoodsItemResponse{
		ID:            it.ID,
		Name:          it.Name,
		CategoryID:    it.CategoryID,
		BrandID:       it.BrandID,
		UnitID:        it.UnitID,
		PurchasePrice: it.PurchasePrice,
		SalePrice:     it.SalePrice,
		StockQuantity: it.StockQuantity,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}
