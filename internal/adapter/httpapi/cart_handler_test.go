package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/divyanshus2404/Unimarket/internal/domain"
	"github.com/divyanshus2404/Unimarket/internal/middleware"
	"github.com/divyanshus2404/Unimarket/internal/platform/logger"
	"github.com/divyanshus2404/Unimarket/internal/platform/metrics"
	"github.com/divyanshus2404/Unimarket/internal/usecase"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory fakes; the handler tests exercise real usecases over them.

type fakeCartRepo struct {
	carts map[string]*domain.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[string]*domain.Cart{}}
}

func (f *fakeCartRepo) GetByUserID(ctx context.Context, userID string) (*domain.Cart, error) {
	if cart, ok := f.carts[userID]; ok {
		return cart, nil
	}
	return domain.NewCart(userID), nil
}

func (f *fakeCartRepo) Save(ctx context.Context, cart *domain.Cart, ttl time.Duration) error {
	f.carts[cart.UserID] = cart
	return nil
}

func (f *fakeCartRepo) DeleteByUserID(ctx context.Context, userID string) error {
	delete(f.carts, userID)
	return nil
}

type fakeProductCache struct{}

func (fakeProductCache) Get(ctx context.Context, productID string) (*domain.Product, error) {
	return nil, domain.ErrNotFound
}
func (fakeProductCache) Set(ctx context.Context, product *domain.Product, ttl time.Duration) error {
	return nil
}
func (fakeProductCache) Delete(ctx context.Context, productID string) error { return nil }

type fakeProductRepo struct {
	products map[string]*domain.Product
}

func (f *fakeProductRepo) Create(ctx context.Context, product *domain.Product) error  { return nil }
func (f *fakeProductRepo) Update(ctx context.Context, product *domain.Product) error  { return nil }
func (f *fakeProductRepo) IncrementViews(ctx context.Context, id string) error        { return nil }
func (f *fakeProductRepo) AdjustFavorites(ctx context.Context, id string, delta int) error {
	return nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	if product, ok := f.products[id]; ok {
		return product, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProductRepo) FindByFilter(ctx context.Context, filter domain.Filter) ([]*domain.Product, error) {
	out := []*domain.Product{}
	for _, p := range f.products {
		if p.Status == domain.ProductStatusActive {
			out = append(out, p)
		}
	}
	return out, nil
}

const cartTestSecret = "cart-test-secret"

func bearerToken(t *testing.T, userID string) string {
	t.Helper()
	claims := &usecase.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cartTestSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func newCartTestServer(t *testing.T, products map[string]*domain.Product) http.Handler {
	t.Helper()
	log := logger.NewNop()
	mm := metrics.NewMetricsManager("unimarket_test")

	cartUC := usecase.NewCartUsecase(newFakeCartRepo(), fakeProductCache{}, &fakeProductRepo{products: products}, log, usecase.CartUsecaseConfig{})
	handler := NewCartHandler(cartUC, mm, log)

	mux := http.NewServeMux()
	wrap := middleware.JWTAuth(cartTestSecret)
	mux.Handle("POST /api/cart/items", wrap(http.HandlerFunc(handler.HandleAddItem)))
	mux.Handle("GET /api/cart", wrap(http.HandlerFunc(handler.HandleGet)))
	return mux
}

func testProduct(id string, price float64, status domain.ProductStatus) *domain.Product {
	return &domain.Product{
		ID:        id,
		Title:     "Test Product",
		Price:     price,
		Condition: domain.ConditionGood,
		SellerID:  "seller-1",
		Status:    status,
		Images:    []string{},
	}
}

func TestCartHandler_AddItem(t *testing.T) {
	server := newCartTestServer(t, map[string]*domain.Product{
		"p1": testProduct("p1", 10.0, domain.ProductStatusActive),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(`{"product_id":"p1"}`))
	req.Header.Set("Authorization", bearerToken(t, "user-1"))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var cart domain.Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCartHandler_AddItem_SoldProductConflicts(t *testing.T) {
	server := newCartTestServer(t, map[string]*domain.Product{
		"p1": testProduct("p1", 10.0, domain.ProductStatusSold),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(`{"product_id":"p1"}`))
	req.Header.Set("Authorization", bearerToken(t, "user-1"))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCartHandler_AddItem_RequiresAuth(t *testing.T) {
	server := newCartTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(`{"product_id":"p1"}`))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"number", `3`, 3},
		{"numeric string", `"4"`, 4},
		{"zero", `0`, 0},
		{"negative", `-2`, -2},
		{"non-numeric string defaults to one", `"abc"`, 1},
		{"null defaults to one", `null`, 1},
		{"missing defaults to one", ``, 1},
		{"object defaults to one", `{}`, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, parseQuantity(json.RawMessage(tc.raw)))
		})
	}
}
