package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hampernest-be/internal/cart"
	"hampernest-be/internal/checkout"
	"hampernest-be/internal/order"
	"hampernest-be/internal/payment"
	"hampernest-be/internal/product"
	"hampernest-be/internal/rbac"
	"hampernest-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubCoupons struct{}

func (stubCoupons) Resolve(_ context.Context, _ string, _ decimal.Decimal) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (stubCoupons) Redeem(_ context.Context, _ string) error { return nil }

type stubOrders struct {
	mock.Mock
}

func (m *stubOrders) CreateFromSubmission(ctx context.Context, sub *order.Submission, email string) (*order.Order, *payment.Invoice, error) {
	args := m.Called(ctx, sub, email)
	var o *order.Order
	if args.Get(0) != nil {
		o = args.Get(0).(*order.Order)
	}
	var inv *payment.Invoice
	if args.Get(1) != nil {
		inv = args.Get(1).(*payment.Invoice)
	}
	return o, inv, args.Error(2)
}

func (m *stubOrders) GetOrderDetail(ctx context.Context, orderID, customerID string, isAdmin bool) (*order.Order, error) {
	args := m.Called(ctx, orderID, customerID, isAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *stubOrders) ListForCustomer(ctx context.Context, customerID string) ([]*order.Order, error) {
	args := m.Called(ctx, customerID)
	return nil, args.Error(1)
}

func (m *stubOrders) ListForSeller(ctx context.Context, sellerID string) ([]*order.Order, error) {
	args := m.Called(ctx, sellerID)
	return nil, args.Error(1)
}

func (m *stubOrders) UpdateStatus(ctx context.Context, orderID string, next order.Status) error {
	return m.Called(ctx, orderID, next).Error(0)
}

func (m *stubOrders) AdvanceCustomization(ctx context.Context, itemID, sellerID string, next order.CustomizationStatus) error {
	return m.Called(ctx, itemID, sellerID, next).Error(0)
}

func (m *stubOrders) AdvanceFulfillment(ctx context.Context, itemID, sellerID string, next order.FulfillmentStatus, tracking *string) error {
	return m.Called(ctx, itemID, sellerID, next, tracking).Error(0)
}

func (m *stubOrders) MarkAsPaid(ctx context.Context, paymentRef string) error {
	return m.Called(ctx, paymentRef).Error(0)
}

func (m *stubOrders) MarkAsFailed(ctx context.Context, paymentRef string) error {
	return m.Called(ctx, paymentRef).Error(0)
}

func newCheckoutRouter(t *testing.T, orders order.Service) (*chi.Mux, cart.Service) {
	t.Helper()

	resolver := &staticResolver{products: map[string]*product.Product{
		"prod-custom": {
			ID:             "prod-custom",
			SellerID:       "seller-1",
			Name:           "Engraved Mug",
			BasePrice:      decimal.RequireFromString("19.99"),
			IsCustomizable: true,
			CustomizationOptions: []product.CustomizationOption{
				{Type: product.OptionTextInput, Label: "Engraving", Required: true},
			},
		},
	}}

	carts := cart.NewService(cart.NewMemoryStore(), resolver)
	chk := checkout.NewService(resolver, checkout.FlatEstimator{
		TaxRate:      decimal.RequireFromString("0.045"),
		FlatShipping: decimal.RequireFromString("3.50"),
	}, stubCoupons{}, "USD")

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := utils.SetUserContext(req.Context(), "u-1", "c@b.com", rbac.RoleCustomer, nil)
			ctx = utils.SetSessionID(ctx, "u-1")
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	(&CheckoutHandler{Carts: carts, Checkout: chk, Orders: orders, Coupons: stubCoupons{}}).Register(r)
	return r, carts
}

func seedCart(t *testing.T, carts cart.Service, customization map[string]any) {
	t.Helper()
	ctx := context.Background()
	c := carts.Load(ctx, "u-1")
	_, err := carts.Add(ctx, "u-1", c, cart.AddParams{
		ProductID:     "prod-custom",
		Quantity:      2,
		Customization: customization,
	})
	require.NoError(t, err)
}

func TestCheckoutHandler_Validate(t *testing.T) {
	r, carts := newCheckoutRouter(t, new(stubOrders))
	seedCart(t, carts, nil)

	req := httptest.NewRequest("POST", "/checkout/validate", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var res checkout.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "Engraving")
}

func TestCheckoutHandler_PlaceOrder(t *testing.T) {
	body := []byte(`{"shipping_address":{"city":"Pune","country":"IN"},"billing_address":{"city":"Pune","country":"IN"}}`)

	t.Run("InvalidCartGets422", func(t *testing.T) {
		orders := new(stubOrders)
		r, carts := newCheckoutRouter(t, orders)
		seedCart(t, carts, nil)

		req := httptest.NewRequest("POST", "/checkout/", bytes.NewReader(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		orders.AssertNotCalled(t, "CreateFromSubmission")
	})

	t.Run("EmptyCartGets400", func(t *testing.T) {
		r, _ := newCheckoutRouter(t, new(stubOrders))

		req := httptest.NewRequest("POST", "/checkout/", bytes.NewReader(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ValidCartCreatesOrder", func(t *testing.T) {
		orders := new(stubOrders)
		orders.On("CreateFromSubmission", mock.Anything, mock.AnythingOfType("*order.Submission"), "c@b.com").
			Return(&order.Order{ID: "ord-1"}, &payment.Invoice{ID: "inv-1"}, nil)

		r, carts := newCheckoutRouter(t, orders)
		seedCart(t, carts, map[string]any{"option_0": "Happy Birthday"})

		req := httptest.NewRequest("POST", "/checkout/", bytes.NewReader(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		orders.AssertExpectations(t)

		// Checkout success clears the session cart.
		assert.Empty(t, carts.Load(context.Background(), "u-1").Items)
	})
}
