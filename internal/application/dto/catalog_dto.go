package dto

// CategoryRequest body para crear/actualizar una categoría.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryResponse categoría en respuestas.
type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// BrandRequest body para crear/actualizar una marca.
type BrandRequest struct {
	Name        string `json:"name"`
	Country     string `json:"country"`
	Description string `json:"description"`
}

// BrandResponse marca en respuestas.
type BrandResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	Description string `json:"description"`
}

// UnitRequest body para crear/actualizar una unidad de medida.
type UnitRequest struct {
	Name string `json:"name"`
}

// UnitResponse unidad de medida en respuestas.
type UnitResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
