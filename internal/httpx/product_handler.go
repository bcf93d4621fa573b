package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"hampernest-be/internal/product"
	"hampernest-be/internal/rbac"
	"hampernest-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	Products product.Repository
}

func (h *ProductHandler) Register(r chi.Router) {
	// Catalog reads are public; the storefront browses without logging in.
	r.Get("/products", h.list)
	r.Get("/products/{productID}", h.get)
	r.Get("/categories", h.listCategories)

	r.Group(func(r chi.Router) {
		r.Use(RequirePermission(rbac.ActionCreate, rbac.ResourceProducts))
		r.Post("/products", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(RequirePermission(rbac.ActionUpdate, rbac.ResourceProducts))
		r.Patch("/products/{productID}", h.update)
	})
	r.Group(func(r chi.Router) {
		r.Use(RequirePermission(rbac.ActionDelete, rbac.ResourceProducts))
		r.Delete("/products/{productID}", h.deactivate)
	})
}

func (h *ProductHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := product.ListOptions{
		OnlyActive:   true,
		FeaturedOnly: q.Get("featured") == "true",
	}
	if cat := q.Get("category_id"); cat != "" {
		opts.CategoryID = &cat
	}
	if seller := q.Get("seller_id"); seller != "" {
		opts.SellerID = &seller
	}
	if raw := q.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			opts.Limit = n
		}
	}

	items, err := h.Products.List(r.Context(), opts)
	if err != nil {
		utils.WriteJSONError(w, "failed to list products", http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []*product.Product{}
	}
	utils.WriteJSON(w, http.StatusOK, items)
}

func (h *ProductHandler) get(w http.ResponseWriter, r *http.Request) {
	p, err := h.Products.GetProductByID(r.Context(), product.GetProductOptions{
		ProductID:  chi.URLParam(r, "productID"),
		OnlyActive: true,
	})
	if err != nil {
		utils.WriteJSONError(w, "failed to load product", http.StatusInternalServerError)
		return
	}
	if p == nil {
		utils.WriteJSONError(w, product.ErrProductNotFound.Error(), http.StatusNotFound)
		return
	}
	utils.WriteJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.Products.ListCategories(r.Context())
	if err != nil {
		utils.WriteJSONError(w, "failed to list categories", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, cats)
}

func (h *ProductHandler) create(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := utils.GetSellerIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "seller profile required", http.StatusForbidden)
		return
	}

	var input product.NewProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteJSONError(w, "invalid json", http.StatusBadRequest)
		return
	}
	if input.Name == "" || input.CategoryID == "" || !input.BasePrice.IsPositive() {
		utils.WriteJSONError(w, "name, category_id and a positive base_price are required", http.StatusBadRequest)
		return
	}

	p, err := h.Products.Create(r.Context(), input, sellerID)
	if err != nil {
		utils.WriteJSONError(w, "failed to create product", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, p)
}

func (h *ProductHandler) update(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := utils.GetSellerIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "seller profile required", http.StatusForbidden)
		return
	}

	var input product.UpdateProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteJSONError(w, "invalid json", http.StatusBadRequest)
		return
	}
	input.ProductID = chi.URLParam(r, "productID")

	if err := h.Products.Update(r.Context(), input, sellerID); err != nil {
		if errors.Is(err, product.ErrNotProductOwner) {
			utils.WriteJSONError(w, err.Error(), http.StatusForbidden)
			return
		}
		utils.WriteJSONError(w, "failed to update product", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) deactivate(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := utils.GetSellerIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "seller profile required", http.StatusForbidden)
		return
	}

	if err := h.Products.Deactivate(r.Context(), chi.URLParam(r, "productID"), sellerID); err != nil {
		if errors.Is(err, product.ErrNotProductOwner) {
			utils.WriteJSONError(w, err.Error(), http.StatusForbidden)
			return
		}
		utils.WriteJSONError(w, "failed to deactivate product", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
