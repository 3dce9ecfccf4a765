package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/retail-backoffice/internal/application/dto"
	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

// CatalogUseCase casos de uso CRUD para categorías, marcas y unidades de medida.
type CatalogUseCase struct {
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
	unitRepo     repository.UnitRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	categoryRepo repository.CategoryRepository,
	brandRepo repository.BrandRepository,
	unitRepo repository.UnitRepository,
) *CatalogUseCase {
	return &CatalogUseCase{categoryRepo: categoryRepo, brandRepo: brandRepo, unitRepo: unitRepo}
}

// ── Categorías ────────────────────────────────────────────────────────────────

// CreateCategory crea una categoría.
func (uc *CatalogUseCase) CreateCategory(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	c := &entity.Category{Name: name, Description: in.Description}
	if err := uc.categoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// GetCategory obtiene una categoría por ID.
func (uc *CatalogUseCase) GetCategory(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	c, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(c), nil
}

// ListCategories lista categorías cuyo nombre contiene search.
func (uc *CatalogUseCase) ListCategories(ctx context.Context, search string) ([]dto.CategoryResponse, error) {
	list, err := uc.categoryRepo.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// UpdateCategory reemplaza nombre y descripción.
func (uc *CatalogUseCase) UpdateCategory(ctx context.Context, id int64, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	c.Name, c.Description = name, in.Description
	if err := uc.categoryRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// DeleteCategory elimina una categoría sin artículos.
func (uc *CatalogUseCase) DeleteCategory(ctx context.Context, id int64) error {
	c, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	n, err := uc.categoryRepo.CountGoodsItems(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return &domain.ReferentialIntegrityError{Entity: "category", ID: id, Dependency: "goods_items"}
	}
	return uc.categoryRepo.Delete(ctx, id)
}

// ── Marcas ────────────────────────────────────────────────────────────────────

// CreateBrand crea una marca.
func (uc *CatalogUseCase) CreateBrand(ctx context.Context, in dto.BrandRequest) (*dto.BrandResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	b := &entity.Brand{Name: name, Country: in.Country, Description: in.Description}
	if err := uc.brandRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	return toBrandResponse(b), nil
}

// GetBrand obtiene una marca por ID.
func (uc *CatalogUseCase) GetBrand(ctx context.Context, id int64) (*dto.BrandResponse, error) {
	b, err := uc.brandRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return toBrandResponse(b), nil
}

// ListBrands lista marcas cuyo nombre contiene search.
func (uc *CatalogUseCase) ListBrands(ctx context.Context, search string) ([]dto.BrandResponse, error) {
	list, err := uc.brandRepo.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	out := make([]dto.BrandResponse, 0, len(list))
	for _, b := range list {
		out = append(out, *toBrandResponse(b))
	}
	return out, nil
}

// UpdateBrand reemplaza los datos de la marca.
func (uc *CatalogUseCase) UpdateBrand(ctx context.Context, id int64, in dto.BrandRequest) (*dto.BrandResponse, error) {
	b, err := uc.brandRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	b.Name, b.Country, b.Description = name, in.Country, in.Description
	if err := uc.brandRepo.Update(ctx, b); err != nil {
		return nil, err
	}
	return toBrandResponse(b), nil
}

// DeleteBrand elimina una marca; sus artículos quedan sin marca.
func (uc *CatalogUseCase) DeleteBrand(ctx context.Context, id int64) error {
	b, err := uc.brandRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return domain.ErrNotFound
	}
	return uc.brandRepo.Delete(ctx, id)
}

// ── Unidades ──────────────────────────────────────────────────────────────────

// CreateUnit crea una unidad de medida.
func (uc *CatalogUseCase) CreateUnit(ctx context.Context, in dto.UnitRequest) (*dto.UnitResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	u := &entity.Unit{Name: name}
	if err := uc.unitRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return &dto.UnitResponse{ID: u.ID, Name: u.Name}, nil
}

// GetUnit obtiene una unidad por ID.
func (uc *CatalogUseCase) GetUnit(ctx context.Context, id int64) (*dto.UnitResponse, error) {
	u, err := uc.unitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.UnitResponse{ID: u.ID, Name: u.Name}, nil
}

// ListUnits lista unidades cuyo nombre contiene search.
func (uc *CatalogUseCase) ListUnits(ctx context.Context, search string) ([]dto.UnitResponse, error) {
	list, err := uc.unitRepo.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	out := make([]dto.UnitResponse, 0, len(list))
	for _, u := range list {
		out = append(out, dto.UnitResponse{ID: u.ID, Name: u.Name})
	}
	return out, nil
}

// UpdateUnit renombra una unidad.
func (uc *CatalogUseCase) UpdateUnit(ctx context.Context, id int64, in dto.UnitRequest) (*dto.UnitResponse, error) {
	u, err := uc.unitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	u.Name = name
	if err := uc.unitRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return &dto.UnitResponse{ID: u.ID, Name: u.Name}, nil
}

// DeleteUnit elimina una unidad sin artículos.
func (uc *CatalogUseCase) DeleteUnit(ctx context.Context, id int64) error {
	u, err := uc.unitRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrNotFound
	}
	n, err := uc.unitRepo.CountGoodsItems(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return &domain.ReferentialIntegrityError{Entity: "unit", ID: id, Dependency: "goods_items"}
	}
	return uc.unitRepo.Delete(ctx, id)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
}

func toBrandResponse(b *entity.Brand) *dto.BrandResponse {
	return &dto.BrandResponse{ID: b.ID, Name: b.Name, Country: b.Country, Description: b.Description}
}
