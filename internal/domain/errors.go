package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrNoValidLines         = errors.New("la factura debe tener al menos una línea con cantidad > 0")
	ErrDuplicateLine        = errors.New("artículo repetido en la factura")
	ErrReferentialIntegrity = errors.New("el recurso está referenciado por otros registros")
)

// InsufficientStockError identifica el artículo que no tiene existencias suficientes.
// errors.Is(err, ErrInsufficientStock) es verdadero.
type InsufficientStockError struct {
	GoodsItemID int64
	Name        string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: artículo %d (%s) disponible %d, solicitado %d",
			ErrInsufficientStock, e.GoodsItemID, e.Name, e.Available, e.Requested)
	}
	return fmt.Sprintf("%s: artículo %d disponible %d, solicitado %d",
		ErrInsufficientStock, e.GoodsItemID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// ReferentialIntegrityError indica qué dependencia impide eliminar un registro.
type ReferentialIntegrityError struct {
	Entity     string // p.ej. "goods_item"
	ID         int64
	Dependency string // p.ej. "invoice_lines"
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("%s: %s %d referenciado por %s", ErrReferentialIntegrity, e.Entity, e.ID, e.Dependency)
}

func (e *ReferentialIntegrityError) Unwrap() error { return ErrReferentialIntegrity }

// DuplicateLineError artículo que aparece más de una vez en la misma factura.
type DuplicateLineError struct {
	GoodsItemID int64
}

func (e *DuplicateLineError) Error() string {
	return fmt.Sprintf("%s: artículo %d", ErrDuplicateLine, e.GoodsItemID)
}

func (e *DuplicateLineError) Unwrap() error { return ErrDuplicateLine }
