package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"hampernest-be/internal/cart"
	"hampernest-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	Carts cart.Service
}

type cartResp struct {
	Items      []cart.Item `json:"items"`
	TotalItems int         `json:"total_items"`
	TotalPrice string      `json:"total_price"`
}

func newCartResp(c cart.Cart) cartResp {
	items := c.Items
	if items == nil {
		items = []cart.Item{}
	}
	return cartResp{
		Items:      items,
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice().StringFixed(2),
	}
}

func (h *CartHandler) Register(r chi.Router) {
	r.Route("/cart", func(r chi.Router) {
		r.Use(RequireSession)
		r.Get("/", h.get)
		r.Post("/items", h.addItem)
		r.Patch("/items/{itemID}", h.updateQuantity)
		r.Delete("/items/{itemID}", h.removeItem)
		r.Delete("/", h.clear)
		r.Get("/by-seller", h.bySeller)
	})
}

func (h *CartHandler) get(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := utils.GetSessionIDFromContext(r.Context())
	c := h.Carts.Load(r.Context(), sessionID)
	utils.WriteJSON(w, http.StatusOK, newCartResp(c))
}

func (h *CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := utils.GetSessionIDFromContext(r.Context())

	var req struct {
		ProductID     string         `json:"product_id"`
		VariantID     string         `json:"variant_id"`
		Quantity      int            `json:"quantity"`
		Customization map[string]any `json:"customization"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.ProductID == "" {
		utils.WriteJSONError(w, "product_id is required", http.StatusBadRequest)
		return
	}

	c := h.Carts.Load(r.Context(), sessionID)
	c, err := h.Carts.Add(r.Context(), sessionID, c, cart.AddParams{
		ProductID:     req.ProductID,
		VariantID:     req.VariantID,
		Quantity:      req.Quantity,
		Customization: req.Customization,
	})
	if err != nil {
		writeCartError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, newCartResp(c))
}

func (h *CartHandler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := utils.GetSessionIDFromContext(r.Context())
	itemID := chi.URLParam(r, "itemID")

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	c := h.Carts.Load(r.Context(), sessionID)
	c, err := h.Carts.UpdateQuantity(r.Context(), sessionID, c, itemID, req.Quantity)
	if err != nil {
		writeCartError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, newCartResp(c))
}

func (h *CartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := utils.GetSessionIDFromContext(r.Context())
	itemID := chi.URLParam(r, "itemID")

	c := h.Carts.Load(r.Context(), sessionID)
	c, err := h.Carts.Remove(r.Context(), sessionID, c, itemID)
	if err != nil {
		writeCartError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, newCartResp(c))
}

func (h *CartHandler) clear(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := utils.GetSessionIDFromContext(r.Context())

	c, err := h.Carts.Clear(r.Context(), sessionID)
	if err != nil {
		writeCartError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, newCartResp(c))
}

func (h *CartHandler) bySeller(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := utils.GetSessionIDFromContext(r.Context())

	c := h.Carts.Load(r.Context(), sessionID)
	groups := h.Carts.GroupBySeller(r.Context(), c)

	utils.WriteJSON(w, http.StatusOK, groups)
}

func writeCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrProductNotFound),
		errors.Is(err, cart.ErrVariantNotFound):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		utils.WriteJSONError(w, "failed to update cart", http.StatusInternalServerError)
	}
}
