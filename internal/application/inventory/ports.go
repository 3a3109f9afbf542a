package inventory

import (
	"context"

	"github.com/tecmade/sitrac-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de stock atado a esa tx. Garantiza atomicidad para el motor
// de movimientos.
type TxRunner interface {
	Run(ctx context.Context, fn func(stockRepo repository.StockRepository) error) error
}
