package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/divyanshus2404/Unimarket/internal/middleware"
	"github.com/divyanshus2404/Unimarket/internal/platform/logger"
	"github.com/divyanshus2404/Unimarket/internal/platform/metrics"
	"github.com/divyanshus2404/Unimarket/internal/usecase"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CartHandler serves the per-user cart endpoints. All of them require an
// authenticated user.
type CartHandler struct {
	cart    *usecase.CartUsecase
	metrics *metrics.MetricsManager
	logger  *logger.Logger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cart *usecase.CartUsecase, mm *metrics.MetricsManager, log *logger.Logger) *CartHandler {
	return &CartHandler{
		cart:    cart,
		metrics: mm,
		logger:  log.Named("CartHandler"),
	}
}

// HandleGet serves GET /api/cart.
func (h *CartHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	cart, err := h.cart.GetCart(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
}

// HandleAddItem serves POST /api/cart/items. Each call adds exactly one unit.
func (h *CartHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "product_id is required"})
		return
	}

	cart, err := h.cart.AddToCart(r.Context(), userID, req.ProductID)
	if err != nil {
		writeError(w, err)
		return
	}
	h.metrics.CartMutationsTotal.WithLabelValues("add").Inc()
	writeJSON(w, http.StatusOK, cart)
}

type updateQuantityRequest struct {
	// Quantity arrives as arbitrary JSON so a non-numeric value can fall back
	// to 1 instead of failing the request.
	Quantity json.RawMessage `json:"quantity"`
}

// parseQuantity extracts an integer quantity. Anything that does not parse as
// a number counts as a single unit.
func parseQuantity(raw json.RawMessage) int {
	if len(raw) == 0 || string(raw) == "null" {
		return 1
	}
	var quantity float64
	if err := json.Unmarshal(raw, &quantity); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 1
		}
		if err := json.Unmarshal([]byte(s), &quantity); err != nil {
			return 1
		}
	}
	return int(quantity)
}

// HandleUpdateQuantity serves PUT /api/cart/items/{productID}. A quantity
// below 1 removes the line.
func (h *CartHandler) HandleUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	quantity := parseQuantity(req.Quantity)

	cart, err := h.cart.UpdateQuantity(r.Context(), userID, chi.URLParam(r, "productID"), quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	h.metrics.CartMutationsTotal.WithLabelValues("update").Inc()
	writeJSON(w, http.StatusOK, cart)
}

// HandleRemoveItem serves DELETE /api/cart/items/{productID}.
func (h *CartHandler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	cart, err := h.cart.RemoveFromCart(r.Context(), userID, chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, err)
		return
	}
	h.metrics.CartMutationsTotal.WithLabelValues("remove").Inc()
	writeJSON(w, http.StatusOK, cart)
}

// HandleClear serves DELETE /api/cart.
func (h *CartHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.cart.ClearCart(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}
	h.metrics.CartMutationsTotal.WithLabelValues("clear").Inc()
	h.logger.Debug("Cart cleared", zap.String("user_id", userID))
	w.WriteHeader(http.StatusNoContent)
}
