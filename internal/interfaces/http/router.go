package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tecmade/sitrac-api/internal/application/auth"
	"github.com/tecmade/sitrac-api/internal/application/dto"
	"github.com/tecmade/sitrac-api/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockUC *inventory.MovimientoUseCase
	AuthUC  *auth.AuthUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(CORSMiddleware())

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/login", authHandler.Login)

	// Stock (protegido, requiere Bearer Token)
	stockHandler := NewStockHandler(deps.StockUC)
	stock := api.Group("/stock", AuthMiddleware(deps.AuthUC))
	stock.Get("/", stockHandler.Listar)
	stock.Post("/movimiento", stockHandler.Movimiento)

	// Cualquier ruta no registrada responde 404 con el cuerpo del contrato.
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(dto.NotFoundResponse{
			Error:     "Endpoint not found",
			Message:   "The requested endpoint does not exist",
			Requested: c.Path(),
			Method:    c.Method(),
		})
	})
}
