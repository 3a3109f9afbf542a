package dto

import "encoding/json"

// StockItemResponse una fila del listado GET /api/stock.
type StockItemResponse struct {
	IDStock  int64  `json:"idstock"`
	Articulo string `json:"articulo"`
	Cantidad int64  `json:"cantidad"`
}

// MovimientoRequest body para POST /api/stock/movimiento.
// Delta se recibe crudo: el cliente original manda tanto números como
// strings numéricos, y ambos deben aceptarse.
type MovimientoRequest struct {
	Articulo string          `json:"articulo"`
	Delta    json.RawMessage `json:"delta"`
}

// ArticuloActualizado detalle del artículo tras un update.
type ArticuloActualizado struct {
	IDStock          int64  `json:"idstock"`
	Articulo         string `json:"articulo"`
	PreviousQuantity int64  `json:"previous_quantity"`
	Delta            int64  `json:"delta"`
	Cantidad         int64  `json:"cantidad"`
}

// MovimientoActualizadoResponse 200: la cantidad cambió y la fila sigue viva.
type MovimientoActualizadoResponse struct {
	Success  bool                `json:"success"`
	Message  string              `json:"message"`
	Articulo ArticuloActualizado `json:"articulo"`
}

// MovimientoEliminadoResponse 200: la cantidad llegó a cero y la fila se borró.
type MovimientoEliminadoResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	Articulo         string `json:"articulo"`
	PreviousQuantity int64  `json:"previous_quantity"`
	Delta            int64  `json:"delta"`
	FinalQuantity    int64  `json:"final_quantity"`
	Deleted          bool   `json:"deleted"`
}

// ArticuloCreado detalle del artículo recién creado.
type ArticuloCreado struct {
	IDStock  int64  `json:"idstock"`
	Articulo string `json:"articulo"`
	Cantidad int64  `json:"cantidad"`
}

// MovimientoCreadoResponse 201: el artículo no existía y se creó con delta.
type MovimientoCreadoResponse struct {
	Success  bool           `json:"success"`
	Message  string         `json:"message"`
	Articulo ArticuloCreado `json:"articulo"`
	Created  bool           `json:"created"`
}

// MovimientoErrorResponse error de movimiento con contexto de diagnóstico.
type MovimientoErrorResponse struct {
	Error           string `json:"error"`
	Message         string `json:"message"`
	CurrentQuantity *int64 `json:"current_quantity,omitempty"`
	AttemptedDelta  *int64 `json:"attempted_delta,omitempty"`
	Articulo        string `json:"articulo,omitempty"`
	Delta           *int64 `json:"delta,omitempty"`
}
