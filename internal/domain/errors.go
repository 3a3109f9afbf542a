package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNoEncontrado      = errors.New("recurso no encontrado")
	ErrEntradaInvalida   = errors.New("entrada inválida")
	ErrNoAutorizado      = errors.New("no autorizado")
	ErrTokenExpirado     = errors.New("token expirado")
	ErrStockNegativo     = errors.New("la cantidad de stock no puede ser negativa")
	ErrOperacionInvalida = errors.New("operación inválida sobre el stock")
	ErrConflicto         = errors.New("conflicto con el estado actual")
	ErrOcupado           = errors.New("recurso ocupado, reintentar")
)

// StockNegativoError indica que un movimiento dejaría la cantidad por debajo
// de cero. Lleva la cantidad vigente y el delta intentado para diagnóstico.
type StockNegativoError struct {
	CantidadActual int64
	Delta          int64
}

func (e *StockNegativoError) Error() string {
	return fmt.Sprintf("%v (cantidad actual %d, delta %d)", ErrStockNegativo, e.CantidadActual, e.Delta)
}

// Unwrap permite errors.Is(err, ErrStockNegativo).
func (e *StockNegativoError) Unwrap() error {
	return ErrStockNegativo
}
