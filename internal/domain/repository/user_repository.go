package repository

import (
	"context"

	"github.com/tecmade/sitrac-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para Usuario (DIP).
type UserRepository interface {
	// FindByEmail devuelve nil, nil si el email no existe.
	FindByEmail(ctx context.Context, email string) (*entity.Usuario, error)
	Create(ctx context.Context, user *entity.Usuario) error
}
