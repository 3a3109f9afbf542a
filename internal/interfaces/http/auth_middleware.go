package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tecmade/sitrac-api/internal/application/dto"
	"github.com/tecmade/sitrac-api/internal/domain"
	"github.com/tecmade/sitrac-api/internal/domain/entity"
)

// Authorizer valida un token opaco y devuelve el usuario dueño.
// Lo implementa auth.AuthUseCase.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (*entity.Usuario, error)
}

// Locals keys para los datos del usuario autenticado en Fiber.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalLegajo = "legajo"
)

// AuthMiddleware valida el Bearer Token contra la base y carga los datos del
// usuario en c.Locals. Las tres variantes de rechazo (header ausente,
// formato inválido, token desconocido/vencido) responden 401 con cuerpos
// distintos.
func AuthMiddleware(authorizer Authorizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Authorization header missing"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Invalid authorization format"})
		}
		tokenString := strings.TrimSpace(parts[1])

		user, err := authorizer.Authorize(c.Context(), tokenString)
		if err != nil {
			if errors.Is(err, domain.ErrTokenExpirado) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Token expired"})
			}
			if errors.Is(err, domain.ErrNoAutorizado) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Invalid token"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Token verification failed"})
		}

		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalEmail, user.Email)
		c.Locals(LocalLegajo, user.Legajo)
		return c.Next()
	}
}

// GetUserID devuelve el ID del usuario autenticado (después del middleware).
func GetUserID(c *fiber.Ctx) int64 {
	v := c.Locals(LocalUserID)
	if v == nil {
		return 0
	}
	id, _ := v.(int64)
	return id
}

// GetEmail devuelve el email del usuario autenticado.
func GetEmail(c *fiber.Ctx) string {
	v := c.Locals(LocalEmail)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetLegajo devuelve el legajo del usuario autenticado.
func GetLegajo(c *fiber.Ctx) string {
	v := c.Locals(LocalLegajo)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
