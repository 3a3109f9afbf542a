package http

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tecmade/sitrac-api/internal/application/dto"
	"github.com/tecmade/sitrac-api/internal/application/inventory"
	"github.com/tecmade/sitrac-api/internal/domain"
)

// StockHandler maneja el listado de stock y los movimientos (protegido).
type StockHandler struct {
	uc *inventory.MovimientoUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.MovimientoUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Listar godoc
// @Summary      Listar stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.StockItemResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) Listar(c *fiber.Ctx) error {
	items, err := h.uc.ListarStock(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error:   "Internal server error",
			Message: "An error occurred while fetching stock",
		})
	}
	// Slice no-nil para que un stock vacío serialice como [] y no como null.
	out := make([]dto.StockItemResponse, 0, len(items))
	for _, s := range items {
		out = append(out, dto.StockItemResponse{
			IDStock:  s.IDStock,
			Articulo: s.Articulo,
			Cantidad: s.Cantidad,
		})
	}
	return c.JSON(out)
}

// Movimiento godoc
// @Summary      Registrar movimiento de stock
// @Description  Aplica un delta con signo sobre un artículo. Crea el artículo
// @Description  si no existe (delta positivo) y lo elimina si la cantidad
// @Description  llega a cero.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovimientoRequest  true  "articulo, delta"
// @Success      200   {object}  dto.MovimientoActualizadoResponse
// @Success      201   {object}  dto.MovimientoCreadoResponse
// @Failure      400   {object}  dto.MovimientoErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/stock/movimiento [post]
func (h *StockHandler) Movimiento(c *fiber.Ctx) error {
	var in dto.MovimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "Missing required fields",
			Message: "articulo and delta are required",
		})
	}
	if len(in.Delta) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "Missing required fields",
			Message: "articulo and delta are required",
		})
	}
	delta, err := parseDelta(in.Delta)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "Invalid delta value",
			Message: "delta must be a numeric value",
		})
	}
	articulo := strings.TrimSpace(in.Articulo)
	if articulo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "Invalid articulo",
			Message: "articulo cannot be empty",
		})
	}

	res, err := h.uc.AplicarMovimiento(c.Context(), articulo, delta)
	if err != nil {
		return movimientoError(c, articulo, delta, err)
	}

	switch res.Tipo {
	case inventory.ResultadoEliminado:
		return c.JSON(dto.MovimientoEliminadoResponse{
			Success:          true,
			Message:          "Article deleted (quantity reached 0)",
			Articulo:         res.Articulo,
			PreviousQuantity: res.CantidadAnterior,
			Delta:            res.Delta,
			FinalQuantity:    0,
			Deleted:          true,
		})
	case inventory.ResultadoCreado:
		return c.Status(fiber.StatusCreated).JSON(dto.MovimientoCreadoResponse{
			Success: true,
			Message: "New article created successfully",
			Articulo: dto.ArticuloCreado{
				IDStock:  res.IDStock,
				Articulo: res.Articulo,
				Cantidad: res.Cantidad,
			},
			Created: true,
		})
	default:
		return c.JSON(dto.MovimientoActualizadoResponse{
			Success: true,
			Message: "Stock updated successfully",
			Articulo: dto.ArticuloActualizado{
				IDStock:          res.IDStock,
				Articulo:         res.Articulo,
				PreviousQuantity: res.CantidadAnterior,
				Delta:            res.Delta,
				Cantidad:         res.Cantidad,
			},
		})
	}
}

// movimientoError traduce errores del motor a los cuerpos y códigos HTTP del
// contrato.
func movimientoError(c *fiber.Ctx, articulo string, delta int64, err error) error {
	var negativo *domain.StockNegativoError
	if errors.As(err, &negativo) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MovimientoErrorResponse{
			Error:           "Invalid operation",
			Message:         "Stock quantity cannot be negative",
			CurrentQuantity: &negativo.CantidadActual,
			AttemptedDelta:  &negativo.Delta,
		})
	}
	switch {
	case errors.Is(err, domain.ErrOperacionInvalida):
		return c.Status(fiber.StatusBadRequest).JSON(dto.MovimientoErrorResponse{
			Error:    "Invalid operation",
			Message:  "Cannot create article with non-positive delta",
			Articulo: articulo,
			Delta:    &delta,
		})
	case errors.Is(err, domain.ErrEntradaInvalida):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "Invalid articulo",
			Message: "articulo cannot be empty",
		})
	case errors.Is(err, domain.ErrConflicto):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error:   "Conflict",
			Message: "Article was created concurrently, retry the movement",
		})
	case errors.Is(err, domain.ErrOcupado):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error:   "Resource busy",
			Message: "Lock wait timed out, retry the movement",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error:   "Internal server error",
			Message: "An error occurred while processing stock movement",
		})
	}
}

// parseDelta acepta delta como número JSON o como string numérico (el
// cliente original manda ambos). Los valores fraccionarios se truncan hacia
// cero, igual que el cast del backend histórico.
func parseDelta(raw []byte) (int64, error) {
	s := strings.TrimSpace(string(raw))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" || s == "null" {
		return 0, domain.ErrEntradaInvalida
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, domain.ErrEntradaInvalida
	}
	return int64(f), nil
}
