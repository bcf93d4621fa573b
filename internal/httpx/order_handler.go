package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"hampernest-be/internal/order"
	"hampernest-be/internal/rbac"
	"hampernest-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	Orders order.Service
}

func (h *OrderHandler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(RequirePermission(rbac.ActionView, rbac.ResourceOrders))
		r.Get("/orders", h.list)
		r.Get("/orders/{orderID}", h.get)
	})

	r.Group(func(r chi.Router) {
		r.Use(RequirePermission(rbac.ActionUpdate, rbac.ResourceOrders))
		r.Patch("/orders/{orderID}/status", h.updateStatus)
	})

	r.Group(func(r chi.Router) {
		r.Use(RequirePermission(rbac.ActionUpdate, rbac.ResourceOrderItems))
		r.Patch("/order-items/{itemID}/customization", h.advanceCustomization)
	})

	r.Group(func(r chi.Router) {
		r.Use(RequirePermission(rbac.ActionFulfill, rbac.ResourceOrderItems))
		r.Patch("/order-items/{itemID}/fulfillment", h.advanceFulfillment)
	})
}

// list returns the caller's orders: sellers see orders containing their
// items, everyone else sees their own purchases.
func (h *OrderHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)

	var (
		orders []*order.Order
		err    error
	)
	if sellerID, ok := utils.GetSellerIDFromContext(ctx); ok && r.URL.Query().Get("as") == "seller" {
		orders, err = h.Orders.ListForSeller(ctx, sellerID)
	} else {
		orders, err = h.Orders.ListForCustomer(ctx, userID)
	}
	if err != nil {
		utils.WriteJSONError(w, "failed to list orders", http.StatusInternalServerError)
		return
	}
	if orders == nil {
		orders = []*order.Order{}
	}
	utils.WriteJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)
	isAdmin := utils.GetUserRoleFromContext(ctx) == rbac.RoleAdmin

	o, err := h.Orders.GetOrderDetail(ctx, chi.URLParam(r, "orderID"), userID, isAdmin)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, order.ErrNotOrderOwner):
			utils.WriteJSONError(w, err.Error(), http.StatusForbidden)
		default:
			utils.WriteJSONError(w, "failed to load order", http.StatusInternalServerError)
		}
		return
	}
	utils.WriteJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status order.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	err := h.Orders.UpdateStatus(r.Context(), chi.URLParam(r, "orderID"), req.Status)
	if err != nil {
		writeOrderError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *OrderHandler) advanceCustomization(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := utils.GetSellerIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "seller profile required", http.StatusForbidden)
		return
	}

	var req struct {
		Status order.CustomizationStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	err := h.Orders.AdvanceCustomization(r.Context(), chi.URLParam(r, "itemID"), sellerID, req.Status)
	if err != nil {
		writeOrderError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *OrderHandler) advanceFulfillment(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := utils.GetSellerIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "seller profile required", http.StatusForbidden)
		return
	}

	var req struct {
		Status   order.FulfillmentStatus `json:"status"`
		Tracking *string                 `json:"tracking_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	err := h.Orders.AdvanceFulfillment(r.Context(), chi.URLParam(r, "itemID"), sellerID, req.Status, req.Tracking)
	if err != nil {
		writeOrderError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, order.ErrOrderNotFound), errors.Is(err, order.ErrOrderItemNotFound):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, order.ErrNotOrderOwner), errors.Is(err, order.ErrNotItemSeller):
		utils.WriteJSONError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, order.ErrInvalidTransition):
		utils.WriteJSONError(w, err.Error(), http.StatusConflict)
	default:
		utils.WriteJSONError(w, "failed to update order", http.StatusInternalServerError)
	}
}
