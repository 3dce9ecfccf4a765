package entity

// Category agrupa artículos. No se puede eliminar mientras tenga artículos.
type Category struct {
	ID          int64
	Name        string
	Description string
}

// Brand marca de un artículo. Al eliminarla, los artículos quedan sin marca.
type Brand struct {
	ID          int64
	Name        string
	Country     string
	Description string
}

// Unit unidad de medida (caja, kg, lata...).
type Unit struct {
	ID   int64
	Name string
}
