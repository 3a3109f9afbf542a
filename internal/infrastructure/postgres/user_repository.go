package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tecmade/sitrac-api/internal/domain"
	"github.com/tecmade/sitrac-api/internal/domain/entity"
	"github.com/tecmade/sitrac-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// FindByEmail obtiene un usuario por email. Devuelve nil, nil si no existe.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	query := `
		SELECT id, email, password_hash, legajo
		FROM usuarios WHERE email = $1`
	var u entity.Usuario
	err := r.pool.QueryRow(ctx, query, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Legajo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (email, password_hash, legajo)
		VALUES ($1, $2, $3)
		RETURNING id`
	if err := r.pool.QueryRow(ctx, query, user.Email, user.PasswordHash, user.Legajo).Scan(&user.ID); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflicto
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}
