package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/example/fpv-storefront/internal/api/middleware"
	"github.com/example/fpv-storefront/internal/command"
	"github.com/example/fpv-storefront/internal/query"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type Handlers struct {
	cmdHandler   *command.Handler
	queryHandler *query.Handler
	logger       *zap.Logger
}

func NewHandlers(cmdHandler *command.Handler, queryHandler *query.Handler, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		cmdHandler:   cmdHandler,
		queryHandler: queryHandler,
		logger:       logger.Named("api"),
	}
}

// Cart Handlers

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.queryHandler.GetCart(r.Context(), sessionID(r)))
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	var cmd command.AddToCart
	if err := decodeJSON(w, r, &cmd, true); err != nil {
		writeError(w, h.logger, err)
		return
	}
	cmd.SessionID = sessionID(r)

	if err := h.cmdHandler.AddToCart(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.GetCart(w, r)
}

func (h *Handlers) UpdateCartQuantity(w http.ResponseWriter, r *http.Request) {
	var cmd command.UpdateCartQuantity
	if err := decodeJSON(w, r, &cmd, true); err != nil {
		writeError(w, h.logger, err)
		return
	}
	cmd.SessionID = sessionID(r)
	cmd.ItemID = mux.Vars(r)["id"]

	if err := h.cmdHandler.UpdateCartQuantity(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.GetCart(w, r)
}

func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	cmd := command.RemoveFromCart{SessionID: sessionID(r), ItemID: mux.Vars(r)["id"]}
	if err := h.cmdHandler.RemoveFromCart(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.GetCart(w, r)
}

func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.cmdHandler.ClearCart(r.Context(), command.ClearCart{SessionID: sessionID(r)}); err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.GetCart(w, r)
}

func (h *Handlers) AddConfiguration(w http.ResponseWriter, r *http.Request) {
	var cmd command.AddConfiguration
	if err := decodeJSON(w, r, &cmd, true); err != nil {
		writeError(w, h.logger, err)
		return
	}
	cmd.SessionID = sessionID(r)

	item, err := h.cmdHandler.AddConfiguration(r.Context(), cmd)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"item": item,
		"cart": h.queryHandler.GetCart(r.Context(), cmd.SessionID),
	})
}

// Favorites Handlers

func (h *Handlers) GetFavorites(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.queryHandler.GetFavorites(r.Context(), sessionID(r)))
}

func (h *Handlers) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var cmd command.AddFavorite
	if err := decodeJSON(w, r, &cmd, true); err != nil {
		writeError(w, h.logger, err)
		return
	}
	cmd.SessionID = sessionID(r)

	if err := h.cmdHandler.AddFavorite(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.GetFavorites(w, r)
}

func (h *Handlers) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	var cmd command.ToggleFavorite
	if err := decodeJSON(w, r, &cmd, true); err != nil {
		writeError(w, h.logger, err)
		return
	}
	cmd.SessionID = sessionID(r)

	isFavorite, err := h.cmdHandler.ToggleFavorite(r.Context(), cmd)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"isFavorite": isFavorite,
		"favorites":  h.queryHandler.GetFavorites(r.Context(), cmd.SessionID),
	})
}

func (h *Handlers) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	cmd := command.RemoveFavorite{SessionID: sessionID(r), ItemID: mux.Vars(r)["id"]}
	if err := h.cmdHandler.RemoveFavorite(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.GetFavorites(w, r)
}

func (h *Handlers) MoveFavoriteToCart(w http.ResponseWriter, r *http.Request) {
	cmd := command.MoveFavoriteToCart{SessionID: sessionID(r), ItemID: mux.Vars(r)["id"]}
	if err := h.cmdHandler.MoveFavoriteToCart(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.GetCart(w, r)
}

// Drawer Handlers

func (h *Handlers) GetDrawer(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.queryHandler.GetDrawer(r.Context(), sessionID(r)))
}

func (h *Handlers) OpenDrawer(w http.ResponseWriter, r *http.Request) {
	var cmd command.OpenDrawer
	if err := decodeJSON(w, r, &cmd, false); err != nil {
		writeError(w, h.logger, err)
		return
	}
	cmd.SessionID = sessionID(r)

	if err := h.cmdHandler.OpenDrawer(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.GetDrawer(w, r)
}

func (h *Handlers) CloseDrawer(w http.ResponseWriter, r *http.Request) {
	if err := h.cmdHandler.CloseDrawer(r.Context(), command.CloseDrawer{SessionID: sessionID(r)}); err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.GetDrawer(w, r)
}

func (h *Handlers) SetDrawerTab(w http.ResponseWriter, r *http.Request) {
	var cmd command.SetDrawerTab
	if err := decodeJSON(w, r, &cmd, true); err != nil {
		writeError(w, h.logger, err)
		return
	}
	cmd.SessionID = sessionID(r)

	if err := h.cmdHandler.SetDrawerTab(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.GetDrawer(w, r)
}

// Order Handlers

func (h *Handlers) Checkout(w http.ResponseWriter, r *http.Request) {
	var cmd command.Checkout
	if err := decodeJSON(w, r, &cmd, true); err != nil {
		writeError(w, h.logger, err)
		return
	}
	cmd.SessionID = sessionID(r)

	o, err := h.cmdHandler.Checkout(r.Context(), cmd)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, o)
}

// Admin Handlers

func (h *Handlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.queryHandler.ListOrders(r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.queryHandler.GetOrder(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, o)
}

func (h *Handlers) ChangeOrderStatus(w http.ResponseWriter, r *http.Request) {
	var cmd command.ChangeOrderStatus
	if err := decodeJSON(w, r, &cmd, true); err != nil {
		writeError(w, h.logger, err)
		return
	}
	cmd.OrderID = mux.Vars(r)["id"]

	o, err := h.cmdHandler.ChangeOrderStatus(r.Context(), cmd)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, o)
}

func (h *Handlers) OrderStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.queryHandler.OrderStats())
}

func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Helper functions

// decodeJSON reads the request body into v. An empty body is accepted
// unless required is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, required bool) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(body).Decode(v)
	if errors.Is(err, io.EOF) && !required {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return nil
}

func sessionID(r *http.Request) string {
	return middleware.SessionID(r.Context())
}
