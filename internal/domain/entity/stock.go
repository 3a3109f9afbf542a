package entity

// Stock representa la existencia actual de un artículo.
// Invariante: toda fila persistida tiene Cantidad >= 1; un artículo con
// cantidad cero no existe en la tabla (se elimina, no se guarda en cero).
type Stock struct {
	IDStock  int64
	Articulo string // clave de negocio, única y case-sensitive
	Cantidad int64
}
