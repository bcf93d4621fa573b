package httpx

import (
	"net/http"
	"time"

	"hampernest-be/internal/cart"
	"hampernest-be/internal/checkout"
	"hampernest-be/internal/coupon"
	"hampernest-be/internal/metrics"
	mw "hampernest-be/internal/middleware"
	"hampernest-be/internal/order"
	"hampernest-be/internal/payment"
	"hampernest-be/internal/product"
	"hampernest-be/internal/rbac"
	"hampernest-be/internal/review"
	"hampernest-be/internal/user"
	"hampernest-be/internal/utils"
	"hampernest-be/internal/wishlist"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Deps struct {
	Users    user.Service
	Products product.Repository
	Carts    cart.Service
	Checkout checkout.Service
	Orders   order.Service
	Coupons  coupon.Service
	Wishlist wishlist.Repository
	Reviews  review.Repository
	Gateway  payment.Gateway
	Metrics  *metrics.Registry
}

func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(15 * time.Second))
	r.Use(mw.CORS)
	r.Use(mw.Auth)
	r.Use(mw.Session)
	r.Use(mw.Logging(deps.Metrics))
	r.Use(mw.RateLimit)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, deps.Metrics.Snapshot())
	})

	// The frontend asks what the caller may do and renders accordingly.
	r.Get("/me/permissions", func(w http.ResponseWriter, r *http.Request) {
		role := utils.GetUserRoleFromContext(r.Context())
		if role == "" {
			utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
			return
		}
		utils.WriteJSON(w, http.StatusOK, rbac.RolePermissions(role))
	})

	(&AuthHandler{Users: deps.Users}).Register(r)
	(&ProductHandler{Products: deps.Products}).Register(r)
	(&CartHandler{Carts: deps.Carts}).Register(r)
	(&CheckoutHandler{
		Carts:    deps.Carts,
		Checkout: deps.Checkout,
		Orders:   deps.Orders,
		Coupons:  deps.Coupons,
	}).Register(r)
	(&OrderHandler{Orders: deps.Orders}).Register(r)
	(&WishlistHandler{Wishlist: deps.Wishlist}).Register(r)
	(&ReviewHandler{Reviews: deps.Reviews}).Register(r)
	(&AdminHandler{Users: deps.Users, Products: deps.Products, Reviews: deps.Reviews}).Register(r)
	(&WebhookHandler{Orders: deps.Orders, Gateway: deps.Gateway}).Register(r)

	return r
}
