package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/divyanshus2404/Unimarket/internal/domain"
	"github.com/divyanshus2404/Unimarket/internal/middleware"
	"github.com/divyanshus2404/Unimarket/internal/platform/logger"
	"github.com/divyanshus2404/Unimarket/internal/usecase"
	"github.com/go-chi/chi/v5"
)

// UserHandler serves registration, login, profile and favorites.
type UserHandler struct {
	users     *usecase.UserUsecase
	favorites *usecase.FavoriteUsecase
	logger    *logger.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *usecase.UserUsecase, favorites *usecase.FavoriteUsecase, log *logger.Logger) *UserHandler {
	return &UserHandler{
		users:     users,
		favorites: favorites,
		logger:    log.Named("UserHandler"),
	}
}

// userView is the account shape returned to clients; the password hash never
// leaves the server.
type userView struct {
	ID             string  `json:"id"`
	Email          string  `json:"email"`
	FullName       string  `json:"full_name"`
	UniversityID   string  `json:"university_id,omitempty"`
	UniversityName string  `json:"university_name,omitempty"`
	ProfileImage   string  `json:"profile_image,omitempty"`
	Rating         float64 `json:"rating"`
	TotalReviews   int32   `json:"total_reviews"`
}

func toUserView(u *domain.User) userView {
	return userView{
		ID:             u.ID,
		Email:          u.Email,
		FullName:       u.FullName,
		UniversityID:   u.UniversityID,
		UniversityName: u.UniversityName,
		ProfileImage:   u.ProfileImage,
		Rating:         u.Rating,
		TotalReviews:   u.TotalReviews,
	}
}

type registerRequest struct {
	Email          string `json:"email"`
	FullName       string `json:"full_name"`
	Password       string `json:"password"`
	UniversityID   string `json:"university_id"`
	UniversityName string `json:"university_name"`
}

// HandleRegister serves POST /api/auth/register.
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.users.Register(r.Context(), usecase.RegisterInput{
		Email:          req.Email,
		FullName:       req.FullName,
		Password:       req.Password,
		UniversityID:   req.UniversityID,
		UniversityName: req.UniversityName,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserView(user))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

// HandleLogin serves POST /api/auth/login.
func (h *UserHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	token, user, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: toUserView(user)})
}

// HandleGetProfile serves GET /api/profile.
func (h *UserHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserView(user))
}

type updateProfileRequest struct {
	FullName       string `json:"full_name"`
	UniversityID   string `json:"university_id"`
	UniversityName string `json:"university_name"`
	ProfileImage   string `json:"profile_image"`
}

// HandleUpdateProfile serves PUT /api/profile.
func (h *UserHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), userID, req.FullName, req.UniversityID, req.UniversityName, req.ProfileImage)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserView(user))
}

// HandleAddFavorite serves POST /api/products/{id}/favorite.
func (h *UserHandler) HandleAddFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.favorites.Add(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRemoveFavorite serves DELETE /api/products/{id}/favorite.
func (h *UserHandler) HandleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.favorites.Remove(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleGetFavorites serves GET /api/favorites.
func (h *UserHandler) HandleGetFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	products, err := h.favorites.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}
