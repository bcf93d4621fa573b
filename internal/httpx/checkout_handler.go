package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"hampernest-be/internal/cart"
	"hampernest-be/internal/checkout"
	"hampernest-be/internal/coupon"
	"hampernest-be/internal/order"
	"hampernest-be/internal/rbac"
	"hampernest-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type CheckoutHandler struct {
	Carts    cart.Service
	Checkout checkout.Service
	Orders   order.Service
	Coupons  coupon.Service
}

type checkoutReq struct {
	ShippingAddress order.Address `json:"shipping_address"`
	BillingAddress  order.Address `json:"billing_address"`
	CouponCode      string        `json:"coupon_code"`
}

func (h *CheckoutHandler) Register(r chi.Router) {
	r.Route("/checkout", func(r chi.Router) {
		r.Use(RequirePermission(rbac.ActionCreate, rbac.ResourceOrders))
		r.Use(RequireSession)
		r.Post("/validate", h.validate)
		r.Post("/", h.placeOrder)
	})
}

func (h *CheckoutHandler) validate(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := utils.GetSessionIDFromContext(r.Context())
	c := h.Carts.Load(r.Context(), sessionID)

	utils.WriteJSON(w, http.StatusOK, h.Checkout.ValidateCart(r.Context(), c))
}

func (h *CheckoutHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, _ := utils.GetSessionIDFromContext(ctx)
	userID, _ := utils.GetUserIDFromContext(ctx)

	var req checkoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	c := h.Carts.Load(ctx, sessionID)
	if len(c.Items) == 0 {
		utils.WriteJSONError(w, "cart is empty", http.StatusBadRequest)
		return
	}

	sub, err := h.Checkout.AssembleOrder(ctx, c, checkout.AssembleParams{
		CustomerID:      userID,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		CouponCode:      req.CouponCode,
	})
	if err != nil {
		var precondition *checkout.PreconditionError
		if errors.As(err, &precondition) {
			utils.WriteJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":  "cart failed validation",
				"errors": precondition.Errors,
			})
			return
		}
		if errors.Is(err, coupon.ErrCouponNotFound) ||
			errors.Is(err, coupon.ErrCouponExpired) ||
			errors.Is(err, coupon.ErrCouponExhausted) ||
			errors.Is(err, coupon.ErrMinOrderNotMet) {
			utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		utils.WriteJSONError(w, "failed to assemble order", http.StatusInternalServerError)
		return
	}

	o, invoice, err := h.Orders.CreateFromSubmission(ctx, sub, utils.GetUserEmailFromContext(ctx))
	if err != nil {
		if o != nil {
			// Order persisted but invoicing failed; surface it so payment
			// can be retried against the existing order.
			utils.WriteJSON(w, http.StatusAccepted, map[string]any{
				"order":   o,
				"warning": "payment invoice could not be created",
			})
			return
		}
		utils.WriteJSONError(w, "failed to create order", http.StatusInternalServerError)
		return
	}

	if req.CouponCode != "" {
		// Usage accounting only; a failure here never unwinds the order.
		_ = h.Coupons.Redeem(ctx, req.CouponCode)
	}
	_, _ = h.Carts.Clear(ctx, sessionID)

	utils.WriteJSON(w, http.StatusCreated, map[string]any{"order": o, "invoice": invoice})
}
