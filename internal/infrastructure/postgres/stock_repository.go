package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tecmade/sitrac-api/internal/domain"
	"github.com/tecmade/sitrac-api/internal/domain/entity"
	"github.com/tecmade/sitrac-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con
// pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// ListAll devuelve todo el stock ordenado por articulo ascendente.
func (r *StockRepo) ListAll(ctx context.Context) ([]entity.Stock, error) {
	query := `
		SELECT idstock, articulo, cantidad
		FROM stock
		ORDER BY articulo ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.IDStock, &s.Articulo, &s.Cantidad); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// GetForUpdate busca la fila por articulo y la bloquea para la transacción
// (SELECT FOR UPDATE). Devuelve nil, nil si el artículo no existe; un
// timeout de lock se traduce a domain.ErrOcupado.
func (r *StockRepo) GetForUpdate(ctx context.Context, articulo string) (*entity.Stock, error) {
	query := `
		SELECT idstock, articulo, cantidad
		FROM stock WHERE articulo = $1
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, articulo).Scan(&s.IDStock, &s.Articulo, &s.Cantidad)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if mapped := mapLockError(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Insert crea la fila y devuelve el idstock generado. Una violación del
// UNIQUE de articulo (creación concurrente) se traduce a domain.ErrConflicto.
func (r *StockRepo) Insert(ctx context.Context, articulo string, cantidad int64) (int64, error) {
	query := `
		INSERT INTO stock (articulo, cantidad)
		VALUES ($1, $2)
		RETURNING idstock`
	var id int64
	if err := r.q.QueryRow(ctx, query, articulo, cantidad).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrConflicto
		}
		return 0, fmt.Errorf("insert stock: %w", err)
	}
	return id, nil
}

// UpdateCantidad fija la cantidad de la fila. El caller ya la tiene bloqueada.
func (r *StockRepo) UpdateCantidad(ctx context.Context, idstock, cantidad int64) error {
	query := `
		UPDATE stock
		SET cantidad = $2
		WHERE idstock = $1`
	tag, err := r.q.Exec(ctx, query, idstock, cantidad)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}

// Delete elimina la fila por idstock.
func (r *StockRepo) Delete(ctx context.Context, idstock int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock WHERE idstock = $1`, idstock)
	if err != nil {
		return fmt.Errorf("delete stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}
