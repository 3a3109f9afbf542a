package dto

// LoginRequest body para POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UsuarioResponse datos públicos del usuario autenticado.
type UsuarioResponse struct {
	Email  string `json:"email"`
	Legajo string `json:"legajo"`
}

// LoginResponse salida del login: token opaco más datos del usuario.
type LoginResponse struct {
	Token string          `json:"token"`
	User  UsuarioResponse `json:"user"`
}
