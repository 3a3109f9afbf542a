package entity

// Usuario representa un usuario operativo del sistema.
type Usuario struct {
	ID           int64
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Legajo       string // número de legajo interno
}
