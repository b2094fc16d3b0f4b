package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/divyanshus2404/Unimarket/internal/domain"
	"github.com/divyanshus2404/Unimarket/internal/middleware"
	"github.com/divyanshus2404/Unimarket/internal/platform/logger"
	"github.com/divyanshus2404/Unimarket/internal/platform/metrics"
	"github.com/divyanshus2404/Unimarket/internal/usecase"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxPhotoUploadBytes caps a single photo upload.
const maxPhotoUploadBytes = 10 << 20

// ProductHandler serves the catalog endpoints.
type ProductHandler struct {
	products *usecase.ProductUsecase
	photos   *usecase.PhotoUsecase
	metrics  *metrics.MetricsManager
	logger   *logger.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(products *usecase.ProductUsecase, photos *usecase.PhotoUsecase, mm *metrics.MetricsManager, log *logger.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		photos:   photos,
		metrics:  mm,
		logger:   log.Named("ProductHandler"),
	}
}

// filterFromQuery builds a catalog filter from query parameters. Unknown sort
// values fall through to the repository's newest-first default; unparsable
// prices are treated as unset.
func filterFromQuery(r *http.Request) domain.Filter {
	q := r.URL.Query()
	var filter domain.Filter

	if category := q.Get("category"); category != "" {
		filter.Category = &category
	}
	if university := q.Get("university"); university != "" {
		filter.University = &university
	}
	if raw := q.Get("min_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinPrice = &v
		}
	}
	if raw := q.Get("max_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = &v
		}
	}
	if raw := q.Get("condition"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			condition := domain.Condition(strings.TrimSpace(part))
			if condition.IsValid() {
				filter.Conditions = append(filter.Conditions, condition)
			}
		}
	}
	filter.SortBy = domain.SortKey(q.Get("sort"))
	return filter
}

// HandleList serves GET /api/products. The optional q parameter narrows the
// fetched results by a case-insensitive text match.
func (h *ProductHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)
	query := r.URL.Query().Get("q")

	products, err := h.products.Search(r.Context(), filter, query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// HandleGet serves GET /api/products/{id}.
func (h *ProductHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

type createProductRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	Category     string   `json:"category"`
	Condition    string   `json:"condition"`
	UniversityID string   `json:"university_id"`
	Images       []string `json:"images"`
}

// HandleCreate serves POST /api/products.
func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body for create product", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	product, err := h.products.Create(r.Context(), usecase.CreateProductInput{
		SellerID:     userID,
		UniversityID: req.UniversityID,
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		Condition:    domain.Condition(req.Condition),
		Images:       req.Images,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.metrics.ProductsCreatedTotal.Inc()
	writeJSON(w, http.StatusCreated, product)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// HandleUpdateStatus serves PATCH /api/products/{id}/status.
func (h *ProductHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	product, err := h.products.UpdateStatus(r.Context(), chi.URLParam(r, "id"), userID, domain.ProductStatus(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// HandleUploadPhoto serves POST /api/products/{id}/photos as a multipart
// upload with a "photo" form file.
func (h *ProductHandler) HandleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoUploadBytes)
	file, header, err := r.FormFile("photo")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing photo file"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.photos.AddPhoto(r.Context(), userID, chi.URLParam(r, "id"), header.Filename, file, header.Size, contentType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}
