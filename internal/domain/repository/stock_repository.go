package repository

import (
	"context"

	"github.com/tecmade/sitrac-api/internal/domain/entity"
)

// StockRepository define el puerto de persistencia para el stock.
// Las operaciones de escritura se usan dentro de una transacción con la fila
// del artículo bloqueada (GetForUpdate) para garantizar consistencia.
type StockRepository interface {
	// ListAll devuelve todas las filas ordenadas por articulo ascendente.
	ListAll(ctx context.Context) ([]entity.Stock, error)
	// GetForUpdate busca la fila por articulo con bloqueo exclusivo
	// (SELECT FOR UPDATE). Devuelve nil, nil si el artículo no existe.
	GetForUpdate(ctx context.Context, articulo string) (*entity.Stock, error)
	// Insert crea la fila y devuelve el idstock generado.
	Insert(ctx context.Context, articulo string, cantidad int64) (int64, error)
	// UpdateCantidad fija la cantidad de una fila existente.
	UpdateCantidad(ctx context.Context, idstock, cantidad int64) error
	// Delete elimina la fila por idstock.
	Delete(ctx context.Context, idstock int64) error
}
