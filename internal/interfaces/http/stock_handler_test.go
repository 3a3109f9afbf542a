package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tecmade/sitrac-api/internal/application/auth"
	"github.com/tecmade/sitrac-api/internal/application/inventory"
	"github.com/tecmade/sitrac-api/internal/domain"
	"github.com/tecmade/sitrac-api/internal/domain/entity"
	"github.com/tecmade/sitrac-api/internal/domain/repository"
	apphttp "github.com/tecmade/sitrac-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para armar la app completa
// ──────────────────────────────────────────────────────────────────────────────

type memStockRepo struct {
	mu     sync.Mutex
	items  map[string]entity.Stock
	nextID int64
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{items: make(map[string]entity.Stock), nextID: 1}
}

func (r *memStockRepo) ListAll(_ context.Context) ([]entity.Stock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]entity.Stock, 0, len(r.items))
	for _, s := range r.items {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Articulo < list[j].Articulo })
	return list, nil
}

func (r *memStockRepo) GetForUpdate(_ context.Context, articulo string) (*entity.Stock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[articulo]
	if !ok {
		return nil, nil
	}
	copia := s
	return &copia, nil
}

func (r *memStockRepo) Insert(_ context.Context, articulo string, cantidad int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[articulo]; ok {
		return 0, domain.ErrConflicto
	}
	id := r.nextID
	r.nextID++
	r.items[articulo] = entity.Stock{IDStock: id, Articulo: articulo, Cantidad: cantidad}
	return id, nil
}

func (r *memStockRepo) UpdateCantidad(_ context.Context, idstock, cantidad int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for articulo, s := range r.items {
		if s.IDStock == idstock {
			s.Cantidad = cantidad
			r.items[articulo] = s
			return nil
		}
	}
	return domain.ErrNoEncontrado
}

func (r *memStockRepo) Delete(_ context.Context, idstock int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for articulo, s := range r.items {
		if s.IDStock == idstock {
			delete(r.items, articulo)
			return nil
		}
	}
	return domain.ErrNoEncontrado
}

func (r *memStockRepo) seed(articulo string, cantidad int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.items[articulo] = entity.Stock{IDStock: id, Articulo: articulo, Cantidad: cantidad}
}

type memTxRunner struct {
	mu   sync.Mutex
	repo *memStockRepo
}

func (r *memTxRunner) Run(_ context.Context, fn func(stockRepo repository.StockRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.repo)
}

type memUserRepo struct {
	users  map[string]entity.Usuario
	nextID int64
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.Usuario, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	copia := u
	return &copia, nil
}

func (r *memUserRepo) Create(_ context.Context, user *entity.Usuario) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.Email] = *user
	return nil
}

type memTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]entity.Token
	users  map[int64]entity.Usuario
}

func (r *memTokenRepo) Create(_ context.Context, token *entity.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token.Token] = *token
	return nil
}

func (r *memTokenRepo) FindWithUser(_ context.Context, token string) (*entity.Token, *entity.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	if !ok {
		return nil, nil, nil
	}
	u, ok := r.users[t.UsuarioID]
	if !ok {
		return nil, nil, nil
	}
	copiaT, copiaU := t, u
	return &copiaT, &copiaU, nil
}

func (r *memTokenRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var borrados int64
	for k, t := range r.tokens {
		if t.Expirado(now) {
			delete(r.tokens, k)
			borrados++
		}
	}
	return borrados, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado de la app de prueba
// ──────────────────────────────────────────────────────────────────────────────

const (
	testEmail    = "operario@tecmade.com"
	testPassword = "admin123"
	testLegajo   = "1001"
)

// newTestApp arma la app completa con repos en memoria, un usuario sembrado y
// un token de sesión ya emitido vía login real.
func newTestApp(t *testing.T) (*fiber.App, *memStockRepo, string) {
	t.Helper()

	stockRepo := newMemStockRepo()
	userRepo := &memUserRepo{users: make(map[string]entity.Usuario), nextID: 1}
	tokenRepo := &memTokenRepo{tokens: make(map[string]entity.Token), users: make(map[int64]entity.Usuario)}

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.Usuario{Email: testEmail, PasswordHash: string(hash), Legajo: testLegajo}
	require.NoError(t, userRepo.Create(context.Background(), u))
	tokenRepo.users[u.ID] = *u

	stockUC := inventory.NewMovimientoUseCase(&memTxRunner{repo: stockRepo}, stockRepo)
	authUC := auth.NewAuthUseCase(userRepo, tokenRepo, auth.TokenConfig{ExpMinutes: 60})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{StockUC: stockUC, AuthUC: authUC})

	tok := login(t, app, testEmail, testPassword)
	return app, stockRepo, tok
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	rec := doJSON(t, app, "POST", "/api/login", "",
		fmt.Sprintf(`{"email":%q,"password":%q}`, email, password))
	require.Equal(t, fiber.StatusOK, rec.Code)

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	rec.Code = resp.StatusCode
	_, err = io.Copy(rec.Body, resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	for k, v := range resp.Header {
		rec.Header()[k] = v
	}
	return rec
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLoginHandler_OK(t *testing.T) {
	app, _, _ := newTestApp(t)

	rec := doJSON(t, app, "POST", "/api/login", "",
		`{"email":"operario@tecmade.com","password":"admin123"}`)
	require.Equal(t, fiber.StatusOK, rec.Code)

	payload := decodeMap(t, rec)
	token, _ := payload["token"].(string)
	assert.Len(t, token, 64)
	user, ok := payload["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, testEmail, user["email"])
	assert.Equal(t, testLegajo, user["legajo"])
}

func TestLoginHandler_CredencialesInvalidas(t *testing.T) {
	app, _, _ := newTestApp(t)

	rec := doJSON(t, app, "POST", "/api/login", "",
		`{"email":"operario@tecmade.com","password":"incorrecta"}`)
	require.Equal(t, fiber.StatusUnauthorized, rec.Code)

	payload := decodeMap(t, rec)
	assert.Equal(t, "Invalid credentials", payload["error"])
	assert.Equal(t, "Email or password is incorrect", payload["message"])
}

func TestLoginHandler_CamposFaltantes(t *testing.T) {
	app, _, _ := newTestApp(t)

	casos := []string{
		`{}`,
		`{"email":"operario@tecmade.com"}`,
		`{"password":"admin123"}`,
	}
	for _, body := range casos {
		rec := doJSON(t, app, "POST", "/api/login", "", body)
		assert.Equal(t, fiber.StatusBadRequest, rec.Code, "body %s", body)
		payload := decodeMap(t, rec)
		assert.Equal(t, "Missing required fields", payload["error"], "body %s", body)
	}
}

func TestLoginHandler_EmailInvalido(t *testing.T) {
	app, _, _ := newTestApp(t)

	rec := doJSON(t, app, "POST", "/api/login", "",
		`{"email":"no-es-un-email","password":"admin123"}`)
	require.Equal(t, fiber.StatusBadRequest, rec.Code)

	payload := decodeMap(t, rec)
	assert.Equal(t, "Invalid email format", payload["error"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock protegido
// ──────────────────────────────────────────────────────────────────────────────

func TestStock_SinToken(t *testing.T) {
	app, _, _ := newTestApp(t)

	rec := doJSON(t, app, "GET", "/api/stock", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, rec.Code)

	rec = doJSON(t, app, "POST", "/api/stock/movimiento", "", `{"articulo":"Tornillo","delta":5}`)
	assert.Equal(t, fiber.StatusUnauthorized, rec.Code)
}

func TestListar_VacioYOrdenado(t *testing.T) {
	app, repo, tok := newTestApp(t)

	// Vacío serializa como [], no como null.
	rec := doJSON(t, app, "GET", "/api/stock", tok, "")
	require.Equal(t, fiber.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))

	repo.seed("Tuerca", 2)
	repo.seed("Arandela", 9)

	rec = doJSON(t, app, "GET", "/api/stock", tok, "")
	require.Equal(t, fiber.StatusOK, rec.Code)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "Arandela", items[0]["articulo"])
	assert.Equal(t, float64(9), items[0]["cantidad"])
	assert.NotZero(t, items[0]["idstock"])
	assert.Equal(t, "Tuerca", items[1]["articulo"])
}

// Flujo completo vía HTTP: crear (201), descontar (200), eliminar al llegar a
// cero (200) y rechazar el siguiente negativo (400).
func TestMovimiento_FlujoCompleto(t *testing.T) {
	app, _, tok := newTestApp(t)

	rec := doJSON(t, app, "POST", "/api/stock/movimiento", tok, `{"articulo":"Tornillo","delta":10}`)
	require.Equal(t, fiber.StatusCreated, rec.Code)
	payload := decodeMap(t, rec)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "New article created successfully", payload["message"])
	assert.Equal(t, true, payload["created"])
	articulo, ok := payload["articulo"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Tornillo", articulo["articulo"])
	assert.Equal(t, float64(10), articulo["cantidad"])

	rec = doJSON(t, app, "POST", "/api/stock/movimiento", tok, `{"articulo":"Tornillo","delta":-3}`)
	require.Equal(t, fiber.StatusOK, rec.Code)
	payload = decodeMap(t, rec)
	assert.Equal(t, "Stock updated successfully", payload["message"])
	articulo, ok = payload["articulo"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(10), articulo["previous_quantity"])
	assert.Equal(t, float64(-3), articulo["delta"])
	assert.Equal(t, float64(7), articulo["cantidad"])

	rec = doJSON(t, app, "POST", "/api/stock/movimiento", tok, `{"articulo":"Tornillo","delta":-7}`)
	require.Equal(t, fiber.StatusOK, rec.Code)
	payload = decodeMap(t, rec)
	assert.Equal(t, "Article deleted (quantity reached 0)", payload["message"])
	assert.Equal(t, true, payload["deleted"])
	assert.Equal(t, float64(7), payload["previous_quantity"])
	assert.Equal(t, float64(0), payload["final_quantity"])

	rec = doJSON(t, app, "POST", "/api/stock/movimiento", tok, `{"articulo":"Tornillo","delta":-1}`)
	require.Equal(t, fiber.StatusBadRequest, rec.Code)
	payload = decodeMap(t, rec)
	assert.Equal(t, "Invalid operation", payload["error"])
	assert.Equal(t, "Cannot create article with non-positive delta", payload["message"])
	assert.Equal(t, "Tornillo", payload["articulo"])
	assert.Equal(t, float64(-1), payload["delta"])
}

func TestMovimiento_StockNegativo(t *testing.T) {
	app, repo, tok := newTestApp(t)
	repo.seed("Clavo", 5)

	rec := doJSON(t, app, "POST", "/api/stock/movimiento", tok, `{"articulo":"Clavo","delta":-8}`)
	require.Equal(t, fiber.StatusBadRequest, rec.Code)

	payload := decodeMap(t, rec)
	assert.Equal(t, "Invalid operation", payload["error"])
	assert.Equal(t, "Stock quantity cannot be negative", payload["message"])
	assert.Equal(t, float64(5), payload["current_quantity"])
	assert.Equal(t, float64(-8), payload["attempted_delta"])
}

// El cliente histórico manda delta tanto como número como string numérico.
func TestMovimiento_DeltaString(t *testing.T) {
	app, _, tok := newTestApp(t)

	rec := doJSON(t, app, "POST", "/api/stock/movimiento", tok, `{"articulo":"Tornillo","delta":"5"}`)
	require.Equal(t, fiber.StatusCreated, rec.Code)

	payload := decodeMap(t, rec)
	articulo, ok := payload["articulo"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(5), articulo["cantidad"])
}

// Los fraccionarios se truncan hacia cero.
func TestMovimiento_DeltaFraccionario(t *testing.T) {
	app, _, tok := newTestApp(t)

	rec := doJSON(t, app, "POST", "/api/stock/movimiento", tok, `{"articulo":"Tornillo","delta":3.9}`)
	require.Equal(t, fiber.StatusCreated, rec.Code)

	payload := decodeMap(t, rec)
	articulo, ok := payload["articulo"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), articulo["cantidad"])
}

func TestMovimiento_DeltaNoNumerico(t *testing.T) {
	app, _, tok := newTestApp(t)

	rec := doJSON(t, app, "POST", "/api/stock/movimiento", tok, `{"articulo":"Tornillo","delta":"abc"}`)
	require.Equal(t, fiber.StatusBadRequest, rec.Code)

	payload := decodeMap(t, rec)
	assert.Equal(t, "Invalid delta value", payload["error"])
	assert.Equal(t, "delta must be a numeric value", payload["message"])
}

func TestMovimiento_DeltaFaltante(t *testing.T) {
	app, _, tok := newTestApp(t)

	rec := doJSON(t, app, "POST", "/api/stock/movimiento", tok, `{"articulo":"Tornillo"}`)
	require.Equal(t, fiber.StatusBadRequest, rec.Code)

	payload := decodeMap(t, rec)
	assert.Equal(t, "Missing required fields", payload["error"])
	assert.Equal(t, "articulo and delta are required", payload["message"])
}

func TestMovimiento_ArticuloVacio(t *testing.T) {
	app, _, tok := newTestApp(t)

	casos := []string{
		`{"articulo":"","delta":5}`,
		`{"articulo":"   ","delta":5}`,
		`{"delta":5}`,
	}
	for _, body := range casos {
		rec := doJSON(t, app, "POST", "/api/stock/movimiento", tok, body)
		assert.Equal(t, fiber.StatusBadRequest, rec.Code, "body %s", body)
		payload := decodeMap(t, rec)
		assert.Equal(t, "Invalid articulo", payload["error"], "body %s", body)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Rutas y CORS
// ──────────────────────────────────────────────────────────────────────────────

func TestRutaDesconocida_404(t *testing.T) {
	app, _, _ := newTestApp(t)

	rec := doJSON(t, app, "GET", "/api/inexistente", "", "")
	require.Equal(t, fiber.StatusNotFound, rec.Code)

	payload := decodeMap(t, rec)
	assert.Equal(t, "Endpoint not found", payload["error"])
	assert.Equal(t, "The requested endpoint does not exist", payload["message"])
	assert.Equal(t, "/api/inexistente", payload["requested"])
	assert.Equal(t, "GET", payload["method"])
}

// El preflight OPTIONS responde 200 sin cuerpo y con los headers CORS, sin
// pasar por el middleware de auth.
func TestPreflight_OPTIONS(t *testing.T) {
	app, _, _ := newTestApp(t)

	rec := doJSON(t, app, "OPTIONS", "/api/stock/movimiento", "", "")
	assert.Equal(t, fiber.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "OPTIONS")
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestCORS_HeadersEnRespuestasNormales(t *testing.T) {
	app, _, tok := newTestApp(t)

	rec := doJSON(t, app, "GET", "/api/stock", tok, "")
	require.Equal(t, fiber.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
