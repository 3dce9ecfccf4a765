// Package memory implementa los repositorios en memoria. Se usa con
// STORAGE_DRIVER=memory y como doble de pruebas de los casos de uso.
package memory

import (
	"sync"

	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
)

// dataset contiene todas las tablas. Se clona completo al iniciar una transacción.
type dataset struct {
	nextID map[string]int64

	goods      map[int64]entity.GoodsItem
	invoices   map[int64]entity.Invoice
	lines      map[int64]entity.InvoiceLine
	categories map[int64]entity.Category
	brands     map[int64]entity.Brand
	units      map[int64]entity.Unit
	jobTitles  map[int64]entity.JobTitle
	employees  map[int64]entity.Employee
	params     map[int64]entity.SalaryParameter
}

func newDataset() *dataset {
	return &dataset{
		nextID:     make(map[string]int64),
		goods:      make(map[int64]entity.GoodsItem),
		invoices:   make(map[int64]entity.Invoice),
		lines:      make(map[int64]entity.InvoiceLine),
		categories: make(map[int64]entity.Category),
		brands:     make(map[int64]entity.Brand),
		units:      make(map[int64]entity.Unit),
		jobTitles:  make(map[int64]entity.JobTitle),
		employees:  make(map[int64]entity.Employee),
		params:     make(map[int64]entity.SalaryParameter),
	}
}

func (d *dataset) next(table string) int64 {
	d.nextID[table]++
	return d.nextID[table]
}

func (d *dataset) clone() *dataset {
	c := &dataset{
		nextID:     cloneMap(d.nextID),
		goods:      make(map[int64]entity.GoodsItem, len(d.goods)),
		invoices:   cloneMap(d.invoices),
		lines:      cloneMap(d.lines),
		categories: cloneMap(d.categories),
		brands:     cloneMap(d.brands),
		units:      cloneMap(d.units),
		jobTitles:  cloneMap(d.jobTitles),
		employees:  cloneMap(d.employees),
		params:     make(map[int64]entity.SalaryParameter, len(d.params)),
	}
	for id, g := range d.goods {
		c.goods[id] = copyGoods(g)
	}
	for id, p := range d.params {
		c.params[id] = copyParam(p)
	}
	return c
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyGoods(g entity.GoodsItem) entity.GoodsItem {
	if g.BrandID != nil {
		b := *g.BrandID
		g.BrandID = &b
	}
	return g
}

func copyParam(p entity.SalaryParameter) entity.SalaryParameter {
	if p.NumericValue != nil {
		v := *p.NumericValue
		p.NumericValue = &v
	}
	return p
}

// runFunc da acceso exclusivo al dataset durante fn.
type runFunc func(fn func(d *dataset) error) error

// Store almacén en memoria compartido por todos los repositorios.
// Un único mutex serializa lecturas, escrituras y transacciones.
type Store struct {
	mu   sync.Mutex
	data *dataset
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newDataset()}
}

func (s *Store) run(fn func(d *dataset) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

// bound ejecuta sobre un dataset cuyo lock ya se tiene (transacción en curso).
func bound(d *dataset) runFunc {
	return func(fn func(d *dataset) error) error { return fn(d) }
}

// page aplica offset/limit; limit <= 0 significa sin límite.
func page[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return items[:0]
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
