package httpx

import (
	"errors"
	"net/http"

	"hampernest-be/internal/product"
	"hampernest-be/internal/rbac"
	"hampernest-be/internal/review"
	"hampernest-be/internal/user"
	"hampernest-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

// AdminHandler exposes the moderation surface. Every route sits behind an
// approve permission, so only admins get past the guard.
type AdminHandler struct {
	Users    user.Service
	Products product.Repository
	Reviews  review.Repository
}

func (h *AdminHandler) Register(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.With(RequirePermission(rbac.ActionApprove, rbac.ResourceSellerProfiles)).
			Patch("/seller-profiles/{sellerID}/approve", h.approveSeller)
		r.With(RequirePermission(rbac.ActionApprove, rbac.ResourceProducts)).
			Patch("/products/{productID}/approve", h.approveProduct)
		r.With(RequirePermission(rbac.ActionApprove, rbac.ResourceReviews)).
			Get("/reviews/pending", h.pendingReviews)
		r.With(RequirePermission(rbac.ActionApprove, rbac.ResourceReviews)).
			Patch("/reviews/{reviewID}/approve", h.approveReview)
		r.With(RequirePermission(rbac.ActionApprove, rbac.ResourceReviews)).
			Delete("/reviews/{reviewID}", h.rejectReview)
	})
}

func (h *AdminHandler) approveSeller(w http.ResponseWriter, r *http.Request) {
	if err := h.Users.ApproveSeller(r.Context(), chi.URLParam(r, "sellerID")); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			utils.WriteJSONError(w, "seller profile not found", http.StatusNotFound)
			return
		}
		utils.WriteJSONError(w, "failed to approve seller profile", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) approveProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.Products.Approve(r.Context(), chi.URLParam(r, "productID")); err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		utils.WriteJSONError(w, "failed to approve product", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) pendingReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Reviews.ListPending(r.Context())
	if err != nil {
		utils.WriteJSONError(w, "failed to list pending reviews", http.StatusInternalServerError)
		return
	}
	if reviews == nil {
		reviews = []review.Review{}
	}
	utils.WriteJSON(w, http.StatusOK, reviews)
}

func (h *AdminHandler) approveReview(w http.ResponseWriter, r *http.Request) {
	if err := h.Reviews.Approve(r.Context(), chi.URLParam(r, "reviewID")); err != nil {
		if errors.Is(err, review.ErrReviewNotFound) {
			utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		utils.WriteJSONError(w, "failed to approve review", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) rejectReview(w http.ResponseWriter, r *http.Request) {
	if err := h.Reviews.Remove(r.Context(), chi.URLParam(r, "reviewID")); err != nil {
		if errors.Is(err, review.ErrReviewNotFound) {
			utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		utils.WriteJSONError(w, "failed to delete review", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
