package entity

import "time"

// Token es una credencial opaca emitida en el login y verificada contra la
// base en cada request autenticado.
type Token struct {
	ID        string // UUID
	UsuarioID int64
	Token     string // 64 caracteres hex
	ExpiresAt time.Time
}

// Expirado indica si el token venció respecto del instante dado.
func (t *Token) Expirado(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && t.ExpiresAt.Before(now)
}
