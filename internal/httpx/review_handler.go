package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"hampernest-be/internal/rbac"
	"hampernest-be/internal/review"
	"hampernest-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type ReviewHandler struct {
	Reviews review.Repository
}

func (h *ReviewHandler) Register(r chi.Router) {
	// Approved reviews are part of the public product page.
	r.Get("/products/{productID}/reviews", h.list)

	r.With(RequirePermission(rbac.ActionCreate, rbac.ResourceReviews)).
		Post("/products/{productID}/reviews", h.create)
}

func (h *ReviewHandler) list(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Reviews.ListForProduct(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		utils.WriteJSONError(w, "failed to list reviews", http.StatusInternalServerError)
		return
	}
	if reviews == nil {
		reviews = []review.Review{}
	}
	utils.WriteJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) create(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req struct {
		Rating  int     `json:"rating"`
		Title   *string `json:"title"`
		Comment string  `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.Comment == "" {
		utils.WriteJSONError(w, "comment is required", http.StatusBadRequest)
		return
	}

	rv, err := h.Reviews.Create(r.Context(), review.NewReviewInput{
		ProductID:  chi.URLParam(r, "productID"),
		CustomerID: userID,
		Rating:     req.Rating,
		Title:      req.Title,
		Comment:    req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, review.ErrInvalidRating):
			utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, review.ErrAlreadyReviewed):
			utils.WriteJSONError(w, err.Error(), http.StatusConflict)
		default:
			utils.WriteJSONError(w, "failed to create review", http.StatusInternalServerError)
		}
		return
	}
	utils.WriteJSON(w, http.StatusCreated, rv)
}
