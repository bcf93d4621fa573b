package httpx

import (
	"encoding/json"
	"net/http"

	"hampernest-be/internal/rbac"
	"hampernest-be/internal/utils"
	"hampernest-be/internal/wishlist"

	"github.com/go-chi/chi/v5"
)

type WishlistHandler struct {
	Wishlist wishlist.Repository
}

func (h *WishlistHandler) Register(r chi.Router) {
	r.Route("/wishlist", func(r chi.Router) {
		r.With(RequirePermission(rbac.ActionView, rbac.ResourceWishlist)).Get("/", h.list)
		r.With(RequirePermission(rbac.ActionCreate, rbac.ResourceWishlist)).Post("/", h.add)
		r.With(RequirePermission(rbac.ActionDelete, rbac.ResourceWishlist)).Delete("/{productID}", h.remove)
	})
}

func (h *WishlistHandler) list(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	items, err := h.Wishlist.List(r.Context(), userID)
	if err != nil {
		utils.WriteJSONError(w, "failed to list wishlist", http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []wishlist.Item{}
	}
	utils.WriteJSON(w, http.StatusOK, items)
}

func (h *WishlistHandler) add(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		utils.WriteJSONError(w, "product_id is required", http.StatusBadRequest)
		return
	}

	if err := h.Wishlist.Add(r.Context(), userID, req.ProductID); err != nil {
		utils.WriteJSONError(w, "failed to add to wishlist", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *WishlistHandler) remove(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	if err := h.Wishlist.Remove(r.Context(), userID, chi.URLParam(r, "productID")); err != nil {
		utils.WriteJSONError(w, "failed to remove from wishlist", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
