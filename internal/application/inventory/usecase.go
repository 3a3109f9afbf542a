package inventory

import (
	"context"
	"strings"

	"github.com/tecmade/sitrac-api/internal/domain"
	"github.com/tecmade/sitrac-api/internal/domain/entity"
	"github.com/tecmade/sitrac-api/internal/domain/repository"
)

// Tipos de resultado de un movimiento.
const (
	ResultadoActualizado = "actualizado"
	ResultadoCreado      = "creado"
	ResultadoEliminado   = "eliminado"
)

// Resultado describe el efecto de un movimiento aplicado con éxito.
// Para ResultadoEliminado, Cantidad es 0; para ResultadoCreado,
// CantidadAnterior es 0.
type Resultado struct {
	Tipo             string
	IDStock          int64
	Articulo         string
	CantidadAnterior int64
	Delta            int64
	Cantidad         int64
}

// MovimientoUseCase es el motor de movimientos de stock: aplica un delta con
// signo sobre un artículo dentro de una transacción con la fila bloqueada
// (SELECT FOR UPDATE), decidiendo entre update, delete e insert.
type MovimientoUseCase struct {
	txRunner  TxRunner
	stockRepo repository.StockRepository // lecturas fuera de transacción
}

// NewMovimientoUseCase construye el caso de uso. stockRepo debe estar atado
// al pool (no a una tx); solo se usa para el listado.
func NewMovimientoUseCase(txRunner TxRunner, stockRepo repository.StockRepository) *MovimientoUseCase {
	return &MovimientoUseCase{
		txRunner:  txRunner,
		stockRepo: stockRepo,
	}
}

// AplicarMovimiento aplica delta sobre articulo de forma atómica:
//
//   - la fila existe y cantidad+delta < 0  -> StockNegativoError, rollback
//   - la fila existe y cantidad+delta == 0 -> se elimina la fila
//   - la fila existe y cantidad+delta > 0  -> se actualiza la cantidad
//     (delta cero incluido: update inocuo, comportamiento heredado)
//   - la fila no existe y delta <= 0       -> ErrOperacionInvalida
//   - la fila no existe y delta > 0        -> se crea con cantidad = delta
//
// Dos movimientos concurrentes sobre el mismo artículo se serializan por el
// bloqueo de fila; sobre artículos distintos no se bloquean entre sí. Ante
// cualquier fallo la transacción se revierte completa: ninguna escritura
// parcial es observable.
func (uc *MovimientoUseCase) AplicarMovimiento(ctx context.Context, articulo string, delta int64) (*Resultado, error) {
	articulo = strings.TrimSpace(articulo)
	if articulo == "" {
		return nil, domain.ErrEntradaInvalida
	}

	var res *Resultado
	err := uc.txRunner.Run(ctx, func(stockRepo repository.StockRepository) error {
		item, err := stockRepo.GetForUpdate(ctx, articulo)
		if err != nil {
			return err
		}

		if item != nil {
			nueva := item.Cantidad + delta
			switch {
			case nueva < 0:
				return &domain.StockNegativoError{CantidadActual: item.Cantidad, Delta: delta}
			case nueva == 0:
				if err := stockRepo.Delete(ctx, item.IDStock); err != nil {
					return err
				}
				res = &Resultado{
					Tipo:             ResultadoEliminado,
					IDStock:          item.IDStock,
					Articulo:         articulo,
					CantidadAnterior: item.Cantidad,
					Delta:            delta,
				}
			default:
				if err := stockRepo.UpdateCantidad(ctx, item.IDStock, nueva); err != nil {
					return err
				}
				res = &Resultado{
					Tipo:             ResultadoActualizado,
					IDStock:          item.IDStock,
					Articulo:         articulo,
					CantidadAnterior: item.Cantidad,
					Delta:            delta,
					Cantidad:         nueva,
				}
			}
			return nil
		}

		// El artículo no existe: solo un delta positivo puede crearlo.
		if delta <= 0 {
			return domain.ErrOperacionInvalida
		}
		id, err := stockRepo.Insert(ctx, articulo, delta)
		if err != nil {
			// Dos requests compitiendo por crear el mismo artículo: el que
			// pierde choca con el UNIQUE de articulo y debe reintentar.
			return err
		}
		res = &Resultado{
			Tipo:     ResultadoCreado,
			IDStock:  id,
			Articulo: articulo,
			Delta:    delta,
			Cantidad: delta,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ListarStock devuelve el stock completo ordenado por articulo ascendente.
func (uc *MovimientoUseCase) ListarStock(ctx context.Context) ([]entity.Stock, error) {
	return uc.stockRepo.ListAll(ctx)
}
