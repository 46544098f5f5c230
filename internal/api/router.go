package api

import (
	"net/http"

	"github.com/example/fpv-storefront/internal/api/middleware"
	"github.com/example/fpv-storefront/internal/auth"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func NewRouter(handlers *Handlers, authHandlers *AuthHandlers, jwtService *auth.JWTService, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	router := mux.NewRouter()
	router.Use(middleware.Recoverer(logger))

	router.HandleFunc("/healthz", Health).Methods(http.MethodGet)
	router.HandleFunc("/session", authHandlers.CreateSession).Methods(http.MethodPost)
	router.HandleFunc("/admin/login", authHandlers.AdminLogin).Methods(http.MethodPost)

	shopper := router.NewRoute().Subrouter()
	shopper.Use(
		middleware.AuthMiddleware(jwtService, middleware.SessionCookie),
		middleware.RequireRole(auth.RoleShopper),
	)

	// Cart
	shopper.HandleFunc("/cart", handlers.GetCart).Methods(http.MethodGet)
	shopper.HandleFunc("/cart", handlers.ClearCart).Methods(http.MethodDelete)
	shopper.HandleFunc("/cart/items", handlers.AddToCart).Methods(http.MethodPost)
	shopper.HandleFunc("/cart/items/{id}", handlers.UpdateCartQuantity).Methods(http.MethodPut)
	shopper.HandleFunc("/cart/items/{id}", handlers.RemoveFromCart).Methods(http.MethodDelete)
	shopper.HandleFunc("/cart/configurations", handlers.AddConfiguration).Methods(http.MethodPost)

	// Favorites
	shopper.HandleFunc("/favorites", handlers.GetFavorites).Methods(http.MethodGet)
	shopper.HandleFunc("/favorites", handlers.AddFavorite).Methods(http.MethodPost)
	shopper.HandleFunc("/favorites/toggle", handlers.ToggleFavorite).Methods(http.MethodPost)
	shopper.HandleFunc("/favorites/{id}", handlers.RemoveFavorite).Methods(http.MethodDelete)
	shopper.HandleFunc("/favorites/{id}/move-to-cart", handlers.MoveFavoriteToCart).Methods(http.MethodPost)

	// Drawer
	shopper.HandleFunc("/drawer", handlers.GetDrawer).Methods(http.MethodGet)
	shopper.HandleFunc("/drawer/open", handlers.OpenDrawer).Methods(http.MethodPost)
	shopper.HandleFunc("/drawer/close", handlers.CloseDrawer).Methods(http.MethodPost)
	shopper.HandleFunc("/drawer/tab", handlers.SetDrawerTab).Methods(http.MethodPut)

	shopper.HandleFunc("/checkout", handlers.Checkout).Methods(http.MethodPost)

	admin := router.PathPrefix("/admin").Subrouter()
	admin.Use(
		middleware.AuthMiddleware(jwtService, middleware.AdminCookie),
		middleware.RequireRole(auth.RoleAdmin),
	)
	admin.HandleFunc("/orders", handlers.ListOrders).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{id}", handlers.GetOrder).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{id}/status", handlers.ChangeOrderStatus).Methods(http.MethodPut)
	admin.HandleFunc("/stats", handlers.OrderStats).Methods(http.MethodGet)

	return middleware.RequestLogger(logger.Named("http"))(router)
}
