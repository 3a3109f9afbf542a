package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tecmade/sitrac-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

// isLockUnavailable verifica si un error es un timeout de bloqueo o una
// cancelación de statement (55P03 lock_not_available, 57014 query_canceled).
func isLockUnavailable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "55P03" || pgErr.Code == "57014"
	}
	return false
}

// mapLockError traduce timeouts de lock y cancelaciones de contexto a
// domain.ErrOcupado, que el caller expone como fallo transitorio reintentable.
func mapLockError(err error) error {
	if isLockUnavailable(err) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.ErrOcupado
	}
	return err
}
