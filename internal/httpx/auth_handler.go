package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"hampernest-be/internal/user"
	"hampernest-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	Users user.Service
}

type credentialsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResp struct {
	Token    string  `json:"token"`
	UserID   string  `json:"user_id"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	SellerID *string `json:"seller_id,omitempty"`
}

func (h *AuthHandler) Register(r chi.Router) {
	r.Post("/auth/register", h.register)
	r.Post("/auth/login", h.login)
	r.Post("/auth/become-seller", h.becomeSeller)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.Email == "" || len(req.Password) < 8 {
		utils.WriteJSONError(w, "email and a password of at least 8 characters are required", http.StatusBadRequest)
		return
	}

	token, u, err := h.Users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrEmailExists) {
			utils.WriteJSONError(w, err.Error(), http.StatusConflict)
			return
		}
		utils.WriteJSONError(w, "failed to register", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, authResp{
		Token:  token,
		UserID: u.ID,
		Email:  u.Email,
		Role:   string(u.Role),
	})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	token, u, err := h.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		utils.WriteJSONError(w, "invalid email or password", http.StatusUnauthorized)
		return
	}

	utils.WriteJSON(w, http.StatusOK, authResp{
		Token:    token,
		UserID:   u.ID,
		Email:    u.Email,
		Role:     string(u.Role),
		SellerID: u.SellerID,
	})
}

func (h *AuthHandler) becomeSeller(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req struct {
		StoreName string `json:"store_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.StoreName == "" {
		utils.WriteJSONError(w, "store_name is required", http.StatusBadRequest)
		return
	}

	profile, err := h.Users.BecomeSeller(r.Context(), userID, req.StoreName)
	if err != nil {
		if errors.Is(err, user.ErrAlreadySeller) {
			utils.WriteJSONError(w, err.Error(), http.StatusConflict)
			return
		}
		utils.WriteJSONError(w, "failed to create seller profile", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, profile)
}
