package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/example/fpv-storefront/internal/api/middleware"
	"github.com/example/fpv-storefront/internal/auth"
	"github.com/example/fpv-storefront/internal/command"
	"github.com/example/fpv-storefront/internal/domain/order"
	"github.com/example/fpv-storefront/internal/infrastructure/store"
	"github.com/example/fpv-storefront/internal/projection"
	"github.com/example/fpv-storefront/internal/query"
	"github.com/example/fpv-storefront/internal/readmodel"
	"github.com/example/fpv-storefront/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminEmail    = "admin@flygear.ua"
	adminPassword = "secret-admin-pass"
)

type testServer struct {
	t       *testing.T
	handler http.Handler
	jwt     *auth.JWTService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	readStore := store.NewReadStore()
	eventStore := store.NewEventStore(projection.NewProjector(readStore, nil))
	sessions := session.NewManager(store.NewMemorySlotStore(), nil)
	jwtService := auth.NewJWTService("test-secret-key-for-api-tests-0123", time.Hour, time.Hour)

	handlers := NewHandlers(
		command.NewHandler(sessions, order.NewService(eventStore, nil), nil),
		query.NewHandler(sessions, readStore),
		nil,
	)
	authHandlers := NewAuthHandlers(jwtService, auth.AdminAccount{Email: adminEmail, PasswordHash: string(hash)}, sessions, nil)

	return &testServer{t: t, handler: NewRouter(handlers, authHandlers, jwtService, nil), jwt: jwtService}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) newSession() string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/session", "", nil)
	require.Equal(s.t, http.StatusCreated, rec.Code)
	var resp TokenResponse
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token
}

func (s *testServer) adminToken() string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/admin/login", "", LoginRequest{Email: adminEmail, Password: adminPassword})
	require.Equal(s.t, http.StatusOK, rec.Code)
	var resp TokenResponse
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func drone(id string, price int) map[string]any {
	return map[string]any{"id": id, "title": "Drone " + id, "price": price, "image": "/" + id + ".png"}
}

func checkoutForm() map[string]any {
	return map[string]any{
		"customer": map[string]string{
			"firstName": "Олена",
			"lastName":  "Коваль",
			"phone":     "+380501234567",
			"email":     "olena@example.com",
			"city":      "Київ",
		},
		"delivery": map[string]string{"deliveryMethod": "nova-poshta", "warehouse": "Відділення №12"},
	}
}

// ============================================
// Session Tests
// ============================================

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCreateSession_IssuesTokenAndCookie(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/session", "", nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decode[TokenResponse](t, rec)
	assert.NotEmpty(t, resp.SessionID)
	sessionID, err := s.jwt.ValidateSessionToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.SessionID, sessionID)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.SessionCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
}

func TestCreateSession_KeepsExistingSession(t *testing.T) {
	s := newTestServer(t)
	token := s.newSession()
	first, _ := s.jwt.ValidateSessionToken(token)

	rec := s.do(http.MethodPost, "/session", token, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, first, decode[TokenResponse](t, rec).SessionID)
}

func TestShopperRoutes_RequireToken(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/cart", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/cart", "garbage", nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/cart", s.adminToken(), nil).Code)
}

// ============================================
// Cart Tests
// ============================================

func TestCart_AddUpdateRemove(t *testing.T) {
	s := newTestServer(t)
	token := s.newSession()

	rec := s.do(http.MethodPost, "/cart/items", token, drone("d1", 12000))
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[readmodel.CartView](t, rec)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].Quantity)
	assert.True(t, view.Drawer.IsOpen)
	assert.Equal(t, "cart", view.Drawer.ActiveTab)

	rec = s.do(http.MethodPut, "/cart/items/d1", token, map[string]int{"quantity": 3})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 36000, decode[readmodel.CartView](t, rec).Totals.TotalPrice)

	rec = s.do(http.MethodDelete, "/cart/items/d1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[readmodel.CartView](t, rec).Items)
}

func TestCart_SessionsAreIsolated(t *testing.T) {
	s := newTestServer(t)
	first, second := s.newSession(), s.newSession()

	s.do(http.MethodPost, "/cart/items", first, drone("d1", 100))

	assert.Empty(t, decode[readmodel.CartView](t, s.do(http.MethodGet, "/cart", second, nil)).Items)
}

func TestCart_InvalidInput(t *testing.T) {
	s := newTestServer(t)
	token := s.newSession()

	tests := []struct {
		name string
		body any
	}{
		{"missing id", map[string]any{"title": "x", "price": 1}},
		{"negative price", map[string]any{"id": "d1", "title": "x", "price": -5}},
		{"negative quantity", map[string]any{"id": "d1", "title": "x", "price": 1, "quantity": -2}},
		{"malformed", "not an object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(http.MethodPost, "/cart/items", token, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestCart_ClearAndConfiguration(t *testing.T) {
	s := newTestServer(t)
	token := s.newSession()

	rec := s.do(http.MethodPost, "/cart/configurations", token, map[string]string{"title": "Custom 5\" freestyle"})
	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decode[struct {
		Cart readmodel.CartView `json:"cart"`
	}](t, rec)
	require.Len(t, resp.Cart.Items, 1)
	assert.True(t, resp.Cart.Items[0].PriceOnRequest)
	assert.True(t, resp.Cart.Totals.HasCustomPriceItems)
	assert.Zero(t, resp.Cart.Totals.TotalPrice)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/cart/configurations", token, map[string]string{}).Code)

	rec = s.do(http.MethodDelete, "/cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[readmodel.CartView](t, rec).Items)
}

// ============================================
// Favorites and Drawer Tests
// ============================================

func TestFavorites_ToggleAndMoveToCart(t *testing.T) {
	s := newTestServer(t)
	token := s.newSession()

	rec := s.do(http.MethodPost, "/favorites/toggle", token, drone("d2", 5000))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"isFavorite":true`)

	rec = s.do(http.MethodPost, "/favorites/d2/move-to-cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cart := decode[readmodel.CartView](t, rec)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "d2", cart.Items[0].ID)

	favorites := decode[readmodel.FavoritesView](t, s.do(http.MethodGet, "/favorites", token, nil))
	assert.Zero(t, favorites.Count)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/favorites/d2/move-to-cart", token, nil).Code)
}

func TestFavorites_AddRemove(t *testing.T) {
	s := newTestServer(t)
	token := s.newSession()

	s.do(http.MethodPost, "/favorites", token, drone("d1", 100))
	rec := s.do(http.MethodPost, "/favorites", token, drone("d1", 100))
	assert.Equal(t, 1, decode[readmodel.FavoritesView](t, rec).Count)

	rec = s.do(http.MethodDelete, "/favorites/d1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, decode[readmodel.FavoritesView](t, rec).Count)
}

func TestDrawer_OpenSwitchClose(t *testing.T) {
	s := newTestServer(t)
	token := s.newSession()

	rec := s.do(http.MethodPost, "/drawer/open", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, readmodel.DrawerView{IsOpen: true, ActiveTab: "cart"}, decode[readmodel.DrawerView](t, rec))

	rec = s.do(http.MethodPut, "/drawer/tab", token, map[string]string{"tab": "favorites"})
	assert.Equal(t, readmodel.DrawerView{IsOpen: true, ActiveTab: "favorites"}, decode[readmodel.DrawerView](t, rec))

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPut, "/drawer/tab", token, map[string]string{"tab": "wishlist"}).Code)

	rec = s.do(http.MethodPost, "/drawer/close", token, nil)
	assert.Equal(t, readmodel.DrawerView{}, decode[readmodel.DrawerView](t, rec))
}

// ============================================
// Checkout and Admin Tests
// ============================================

func TestCheckout_EmptyCart(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/checkout", s.newSession(), checkoutForm())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckout_InvalidForm(t *testing.T) {
	s := newTestServer(t)
	token := s.newSession()
	s.do(http.MethodPost, "/cart/items", token, drone("d1", 100))
	form := checkoutForm()
	form["customer"] = map[string]string{"firstName": "Олена", "email": "nope"}

	rec := s.do(http.MethodPost, "/checkout", token, form)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[struct {
		Fields map[string]string `json:"fields"`
	}](t, rec)
	assert.Equal(t, "invalid email", resp.Fields["email"])
	assert.Contains(t, resp.Fields, "phone")
	assert.Len(t, decode[readmodel.CartView](t, s.do(http.MethodGet, "/cart", token, nil)).Items, 1)
}

func TestCheckout_AdminLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := s.newSession()
	s.do(http.MethodPost, "/cart/items", token, drone("d1", 15000))

	rec := s.do(http.MethodPost, "/checkout", token, checkoutForm())
	require.Equal(t, http.StatusCreated, rec.Code)
	placed := decode[order.Order](t, rec)
	assert.Equal(t, order.StatusPending, placed.Status)
	assert.Equal(t, 15000, placed.TotalPrice)

	cart := decode[readmodel.CartView](t, s.do(http.MethodGet, "/cart", token, nil))
	assert.Empty(t, cart.Items)
	assert.False(t, cart.Drawer.IsOpen)

	admin := s.adminToken()
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/admin/orders", token, nil).Code)

	orders := decode[[]readmodel.OrderReadModel](t, s.do(http.MethodGet, "/admin/orders", admin, nil))
	require.Len(t, orders, 1)
	assert.Equal(t, placed.OrderNumber, orders[0].OrderNumber)
	assert.Equal(t, "Відділення №12", orders[0].Warehouse)

	rec = s.do(http.MethodPut, "/admin/orders/"+placed.ID+"/status", admin, map[string]string{"status": "shipped"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPut, "/admin/orders/"+placed.ID+"/status", admin, map[string]string{"status": "processing"})
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[readmodel.OrderReadModel](t, s.do(http.MethodGet, "/admin/orders/"+placed.ID, admin, nil))
	assert.Equal(t, "processing", got.Status)

	stats := decode[readmodel.OrderStats](t, s.do(http.MethodGet, "/admin/stats", admin, nil))
	assert.Equal(t, 1, stats.TotalOrders)
	assert.Equal(t, 15000, stats.Revenue)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/admin/orders?status=lost", admin, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/admin/orders/missing", admin, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPut, "/admin/orders/missing/status", admin, map[string]string{"status": "processing"}).Code)
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/admin/login", "", LoginRequest{Email: adminEmail, Password: "guess"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/admin/stats", "", nil).Code)
}
