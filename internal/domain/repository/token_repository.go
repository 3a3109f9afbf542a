package repository

import (
	"context"
	"time"

	"github.com/tecmade/sitrac-api/internal/domain/entity"
)

// TokenRepository define el puerto de persistencia para tokens de sesión.
type TokenRepository interface {
	Create(ctx context.Context, token *entity.Token) error
	// FindWithUser busca el token y devuelve también el usuario dueño.
	// Devuelve nil, nil, nil si el token no existe.
	FindWithUser(ctx context.Context, token string) (*entity.Token, *entity.Usuario, error)
	// DeleteExpired elimina los tokens vencidos respecto de now y devuelve
	// cuántas filas se borraron.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
