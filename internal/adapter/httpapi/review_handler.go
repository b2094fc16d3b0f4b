package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/divyanshus2404/Unimarket/internal/domain"
	"github.com/divyanshus2404/Unimarket/internal/middleware"
	"github.com/divyanshus2404/Unimarket/internal/platform/logger"
	"github.com/divyanshus2404/Unimarket/internal/platform/metrics"
	"github.com/divyanshus2404/Unimarket/internal/usecase"
	"github.com/go-chi/chi/v5"
)

// ReviewHandler serves the review endpoints.
type ReviewHandler struct {
	reviews *usecase.ReviewUsecase
	metrics *metrics.MetricsManager
	logger  *logger.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviews *usecase.ReviewUsecase, mm *metrics.MetricsManager, log *logger.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviews: reviews,
		metrics: mm,
		logger:  log.Named("ReviewHandler"),
	}
}

// HandleList serves GET /api/products/{id}/reviews, newest first.
func (h *ReviewHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.ListByProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

type createReviewRequest struct {
	Rating  int32  `json:"rating"`
	Comment string `json:"comment"`
}

type createReviewResponse struct {
	Review  *domain.Review   `json:"review"`
	Reviews []*domain.Review `json:"reviews"`
}

// HandleCreate serves POST /api/products/{id}/reviews. The response carries
// both the created review and the product's refreshed newest-first list, so
// the caller never renders from an optimistic insert.
func (h *ReviewHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	productID := chi.URLParam(r, "id")
	review, err := h.reviews.Create(r.Context(), productID, userID, req.Rating, req.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	h.metrics.ReviewsCreatedTotal.Inc()

	reviews, err := h.reviews.ListByProduct(r.Context(), productID)
	if err != nil {
		// The review exists; return it alone rather than failing the call.
		reviews = []*domain.Review{review}
	}
	writeJSON(w, http.StatusCreated, createReviewResponse{Review: review, Reviews: reviews})
}
