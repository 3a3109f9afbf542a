package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tecmade/sitrac-api/internal/domain/entity"
	"github.com/tecmade/sitrac-api/internal/domain/repository"
)

var _ repository.TokenRepository = (*TokenRepo)(nil)

// TokenRepo implementación del puerto TokenRepository sobre PostgreSQL.
type TokenRepo struct {
	pool *pgxpool.Pool
}

// NewTokenRepository construye el adaptador de persistencia para tokens.
func NewTokenRepository(pool *pgxpool.Pool) *TokenRepo {
	return &TokenRepo{pool: pool}
}

// Create persiste un token emitido en el login.
func (r *TokenRepo) Create(ctx context.Context, t *entity.Token) error {
	query := `
		INSERT INTO tokens (id, usuario_id, token, expires_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.pool.Exec(ctx, query, t.ID, t.UsuarioID, t.Token, t.ExpiresAt)
	if err != nil {
		return fmt.Errorf("insert token: %w", err)
	}
	return nil
}

// FindWithUser busca el token junto con el usuario dueño (un solo round-trip,
// como hace el verificador en cada request). Devuelve nil, nil, nil si el
// token no existe.
func (r *TokenRepo) FindWithUser(ctx context.Context, tokenString string) (*entity.Token, *entity.Usuario, error) {
	query := `
		SELECT t.id, t.usuario_id, t.token, t.expires_at,
		       u.id, u.email, u.password_hash, u.legajo
		FROM tokens t
		INNER JOIN usuarios u ON t.usuario_id = u.id
		WHERE t.token = $1`
	var t entity.Token
	var u entity.Usuario
	err := r.pool.QueryRow(ctx, query, tokenString).Scan(
		&t.ID, &t.UsuarioID, &t.Token, &t.ExpiresAt,
		&u.ID, &u.Email, &u.PasswordHash, &u.Legajo,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get token with user: %w", err)
	}
	return &t, &u, nil
}

// DeleteExpired elimina tokens vencidos respecto de now.
func (r *TokenRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tokens WHERE expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
