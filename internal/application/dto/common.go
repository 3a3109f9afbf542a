package dto

// ErrorResponse cuerpo de error HTTP genérico.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// NotFoundResponse cuerpo 404 para rutas desconocidas.
type NotFoundResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Requested string `json:"requested"`
	Method    string `json:"method"`
}
