package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/internal/cart/infra/adapter"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"
	userapp "github.com/dwikikusuma/storefront/internal/user/app"
	userdomain "github.com/dwikikusuma/storefront/internal/user/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memProductRepo struct {
	mu       sync.Mutex
	products map[string]catalogdomain.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[string]catalogdomain.Product)}
}

func (m *memProductRepo) Create(ctx context.Context, p catalogdomain.Product) (catalogdomain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = primitive.NewObjectID()
	m.products[p.ID.Hex()] = p
	return p, nil
}

func (m *memProductRepo) Get(ctx context.Context, id string) (catalogdomain.Product, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return catalogdomain.Product{}, fmt.Errorf("%w: %q", catalogapp.ErrInvalidID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return catalogdomain.Product{}, catalogapp.ErrNotFound
	}
	return p, nil
}

func (m *memProductRepo) List(ctx context.Context) ([]catalogdomain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]catalogdomain.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *memProductRepo) Update(ctx context.Context, id string, upd catalogdomain.ProductUpdate) (catalogdomain.Product, error) {
	p, err := m.Get(ctx, id)
	if err != nil {
		return catalogdomain.Product{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.Stock != nil {
		p.Stock = catalogdomain.NewStock(*upd.Stock)
	}
	m.products[id] = p
	return p, nil
}

func (m *memProductRepo) Delete(ctx context.Context, id string) error {
	if _, err := m.Get(ctx, id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, id)
	return nil
}

type memCartRepo struct {
	mu    sync.Mutex
	lines []cartdomain.CartLine
}

func (m *memCartRepo) FindByUser(ctx context.Context, userID string) ([]cartdomain.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []cartdomain.CartLine
	for _, l := range m.lines {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memCartRepo) FindByUserAndProduct(ctx context.Context, userID, productID string) (cartdomain.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.lines {
		if l.UserID == userID && l.ProductID == productID {
			return l, nil
		}
	}
	return cartdomain.CartLine{}, cartapp.ErrLineNotFound
}

func (m *memCartRepo) Insert(ctx context.Context, line cartdomain.CartLine) (cartdomain.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	line.ID = primitive.NewObjectID()
	m.lines = append(m.lines, line)
	return line, nil
}

func (m *memCartRepo) UpdateQuantity(ctx context.Context, lineID string, quantity int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.lines {
		if m.lines[i].ID.Hex() == lineID {
			m.lines[i].Quantity = quantity
			return nil
		}
	}
	return cartapp.ErrLineNotFound
}

type memUserRepo struct {
	mu    sync.Mutex
	users []userdomain.User
}

func (m *memUserRepo) Insert(ctx context.Context, u userdomain.User) (userdomain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return userdomain.User{}, userapp.ErrEmailTaken
		}
	}
	u.ID = primitive.NewObjectID()
	m.users = append(m.users, u)
	return u, nil
}

func (m *memUserRepo) FindByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (userdomain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == usernameOrEmail || u.Email == usernameOrEmail {
			return u, nil
		}
	}
	return userdomain.User{}, userapp.ErrUserNotFound
}

type testEnv struct {
	router  *gin.Engine
	catalog *catalogapp.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	catalogSvc := catalogapp.NewService(newMemProductRepo())
	cartSvc := cartapp.NewService(&memCartRepo{}, adapter.NewCatalogServiceReader(catalogSvc), 0)
	userSvc := userapp.NewService(&memUserRepo{}, bcrypt.MinCost)

	router := NewRouter(zap.NewNop(), "*", Handlers{
		Catalog: NewCatalogHandler(catalogSvc),
		Cart:    NewCartHandler(cartSvc),
		Users:   NewUserHandler(userSvc),
	})
	return &testEnv{router: router, catalog: catalogSvc}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) seedProduct(t *testing.T, name string, price float64, stock int64) string {
	t.Helper()
	p, err := e.catalog.CreateProduct(context.Background(), name, "", price, stock)
	require.NoError(t, err)
	return p.ID.Hex()
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func TestHomeRoute(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to our E-commerce API", decodeBody(t, rec)["message"])
}

func TestProductLifecycle(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/products", gin.H{
		"name": "Desk", "description": "oak", "price": 120.5, "stock": 3,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]any)
	id := data["id"].(string)

	rec = env.do(t, http.MethodGet, "/products/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, "Desk", got["name"])
	assert.Equal(t, 120.5, got["price"])
	assert.Equal(t, float64(3), got["stock"])

	rec = env.do(t, http.MethodPatch, "/products/"+id, gin.H{"price": 99.0})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, "/products/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/products/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductBadID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/products/zzz", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddToCartFlow(t *testing.T) {
	env := newTestEnv(t)
	pid := env.seedProduct(t, "Poster", 10.0, 5)

	rec := env.do(t, http.MethodPost, "/cart/u1", gin.H{"product_id": pid, "quantity": 3})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Item added to cart successfully", decodeBody(t, rec)["message"])

	rec = env.do(t, http.MethodPost, "/cart/u1", gin.H{"product_id": pid, "quantity": 2})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Cart updated successfully", decodeBody(t, rec)["message"])

	// 5 + 1 over stock 5.
	rec = env.do(t, http.MethodPost, "/cart/u1", gin.H{"product_id": pid, "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/cart/u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]any)
	items := data["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, float64(5), item["quantity"])
	assert.Equal(t, 50.0, item["subtotal"])
	assert.Equal(t, 50.0, data["total_price"])
	assert.Equal(t, float64(0), data["stale_lines"])
}

func TestAddToCartRejections(t *testing.T) {
	env := newTestEnv(t)
	pid := env.seedProduct(t, "Mug", 4.5, 5)

	t.Run("quantity over stock reports availability", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/cart/u1", gin.H{"product_id": pid, "quantity": 10})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)["error"].(map[string]any)
		assert.Equal(t, "OUT_OF_STOCK", body["code"])
		assert.Contains(t, body["message"], "5")
	})

	t.Run("unknown product", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/cart/u1", gin.H{"product_id": primitive.NewObjectID().Hex(), "quantity": 1})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed product id", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/cart/u1", gin.H{"product_id": "zzz", "quantity": 1})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-positive quantity never reaches the service", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/cart/u1", gin.H{"product_id": pid, "quantity": 0})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejections leave the cart empty", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/cart/u1", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "User's cart is empty", decodeBody(t, rec)["message"])
	})
}

func TestGetCartEmptyIndicator(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/cart/nobody", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "User's cart is empty", body["message"])
	assert.NotContains(t, body, "data")
}

func TestGetCartSkipsDeletedProduct(t *testing.T) {
	env := newTestEnv(t)
	keep := env.seedProduct(t, "Lamp", 20.0, 10)
	gone := env.seedProduct(t, "Chair", 35.0, 10)

	rec := env.do(t, http.MethodPost, "/cart/u1", gin.H{"product_id": keep, "quantity": 2})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = env.do(t, http.MethodPost, "/cart/u1", gin.H{"product_id": gone, "quantity": 1})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodDelete, "/products/"+gone, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/cart/u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]any)
	assert.Len(t, data["items"].([]any), 1)
	assert.Equal(t, 40.0, data["total_price"])
	assert.Equal(t, float64(1), data["stale_lines"])
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/register", gin.H{
		"username": "ama", "email": "ama@example.com", "password": "hunter2",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "User registered successfully", decodeBody(t, rec)["message"])

	t.Run("duplicate email", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/register", gin.H{
			"username": "other", "email": "ama@example.com", "password": "pw",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("login ok", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/login", gin.H{
			"username_or_email": "ama", "password": "hunter2",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Login successful", body["message"])
		user := body["user"].(map[string]any)
		assert.Equal(t, "ama@example.com", user["email"])
		assert.NotContains(t, user, "password_hash")
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/login", gin.H{
			"username_or_email": "ama", "password": "nope",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
