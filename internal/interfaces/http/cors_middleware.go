package http

import "github.com/gofiber/fiber/v2"

// CORSMiddleware habilita CORS permisivo para el cliente móvil: cualquier
// origen, métodos GET/POST/PUT/DELETE/OPTIONS y headers
// Content-Type/Authorization. El preflight OPTIONS se responde 200 sin
// cuerpo (el contrato del cliente espera 200, no 204).
func CORSMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Access-Control-Allow-Origin", "*")
		c.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Method() == fiber.MethodOptions {
			return c.Status(fiber.StatusOK).SendString("")
		}
		return c.Next()
	}
}
