package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tecmade/sitrac-api/internal/application/dto"
	"github.com/tecmade/sitrac-api/internal/domain"
	"github.com/tecmade/sitrac-api/internal/domain/entity"
	"github.com/tecmade/sitrac-api/internal/domain/repository"
	"github.com/tecmade/sitrac-api/pkg/token"
)

// TokenConfig configuración de emisión de tokens.
type TokenConfig struct {
	ExpMinutes int
}

// AuthUseCase casos de uso de autenticación: login y autorización de
// requests con Bearer token.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	cfg       TokenConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, cfg TokenConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, tokenRepo: tokenRepo, cfg: cfg}
}

// Login verifica email/password contra el hash bcrypt, emite un token opaco
// y lo persiste con su vencimiento. Devuelve ErrNoAutorizado tanto para
// email desconocido como para password incorrecto (misma respuesta hacia
// afuera, no se revela cuál falló).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNoAutorizado
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrNoAutorizado
	}

	tok, err := token.Generate()
	if err != nil {
		return nil, err
	}
	t := &entity.Token{
		ID:        uuid.New().String(),
		UsuarioID: user.ID,
		Token:     tok,
		ExpiresAt: time.Now().Add(time.Duration(uc.cfg.ExpMinutes) * time.Minute),
	}
	if err := uc.tokenRepo.Create(ctx, t); err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: tok,
		User: dto.UsuarioResponse{
			Email:  user.Email,
			Legajo: user.Legajo,
		},
	}, nil
}

// Authorize valida un Bearer token contra la base y devuelve el usuario
// dueño. Token desconocido -> ErrNoAutorizado; vencido -> ErrTokenExpirado.
func (uc *AuthUseCase) Authorize(ctx context.Context, tokenString string) (*entity.Usuario, error) {
	t, user, err := uc.tokenRepo.FindWithUser(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNoAutorizado
	}
	if t.Expirado(time.Now()) {
		return nil, domain.ErrTokenExpirado
	}
	return user, nil
}

// PurgeExpired elimina los tokens vencidos. Pensado para correr periódicamente
// en background; devuelve cuántas filas se borraron.
func (uc *AuthUseCase) PurgeExpired(ctx context.Context) (int64, error) {
	return uc.tokenRepo.DeleteExpired(ctx, time.Now())
}
