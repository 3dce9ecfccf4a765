package inventory

import "math"

// MaxQuantity tope de existencias por artículo (columna INTEGER de PostgreSQL).
const MaxQuantity = math.MaxInt32

// DeltaInRange indica si current+delta cabe en [-MaxQuantity, MaxQuantity] sin desbordar int.
// Se asume 0 <= current <= MaxQuantity.
func DeltaInRange(current, delta int) bool {
	return delta >= -MaxQuantity && delta <= MaxQuantity-current
}

// ApplyDelta implementa la regla del libro de inventario (servicio de dominio).
// NuevoStock = StockActual + Delta; falla si el resultado sería negativo.
// Devuelve ok=false sin calcular nada más para que el llamador no mute el registro.
// El llamador debe comprobar antes DeltaInRange.
func ApplyDelta(current, delta int) (newQty int, ok bool) {
	newQty = current + delta
	if newQty < 0 {
		return current, false
	}
	return newQty, true
}

// CanFulfil indica si hay existencias para despachar la cantidad solicitada.
func CanFulfil(current, requested int) bool {
	return requested <= current
}
