package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hampernest-be/internal/rbac"
	"hampernest-be/internal/review"
	"hampernest-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReviewRouter(reviews review.Repository) *chi.Mux {
	r := chi.NewRouter()
	(&ReviewHandler{Reviews: reviews}).Register(r)
	return r
}

func TestReviewHandler_List(t *testing.T) {
	t.Run("PublicList", func(t *testing.T) {
		reviews := new(stubReviews)
		reviews.On("ListForProduct", mock.Anything, "prod-1").Return([]review.Review{
			{ID: "rev-1", ProductID: "prod-1", Rating: 5, Comment: "perfect gift", IsApproved: true},
		}, nil)
		router := newReviewRouter(reviews)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/products/prod-1/reviews", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var got []review.Review
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, 5, got[0].Rating)
	})

	t.Run("EmptyIsJSONArray", func(t *testing.T) {
		reviews := new(stubReviews)
		reviews.On("ListForProduct", mock.Anything, "prod-2").Return(nil, nil)
		router := newReviewRouter(reviews)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/products/prod-2/reviews", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})
}

func TestReviewHandler_Create(t *testing.T) {
	asCustomer := func(req *http.Request) *http.Request {
		return req.WithContext(utils.SetUserContext(req.Context(), "cust-1", "c@b.com", rbac.RoleCustomer, nil))
	}

	t.Run("CustomerCreates", func(t *testing.T) {
		reviews := new(stubReviews)
		reviews.On("Create", mock.Anything, review.NewReviewInput{
			ProductID:  "prod-1",
			CustomerID: "cust-1",
			Rating:     4,
			Comment:    "lovely hamper",
		}).Return(review.Review{ID: "rev-1", ProductID: "prod-1", CustomerID: "cust-1", Rating: 4, Comment: "lovely hamper"}, nil)
		router := newReviewRouter(reviews)

		body := bytes.NewBufferString(`{"rating": 4, "comment": "lovely hamper"}`)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, asCustomer(httptest.NewRequest("POST", "/products/prod-1/reviews", body)))

		require.Equal(t, http.StatusCreated, w.Code)
		var got review.Review
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "rev-1", got.ID)
		reviews.AssertExpectations(t)
	})

	t.Run("AnonymousGets401", func(t *testing.T) {
		router := newReviewRouter(new(stubReviews))

		body := bytes.NewBufferString(`{"rating": 4, "comment": "lovely hamper"}`)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("POST", "/products/prod-1/reviews", body))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("MissingComment", func(t *testing.T) {
		router := newReviewRouter(new(stubReviews))

		body := bytes.NewBufferString(`{"rating": 4}`)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, asCustomer(httptest.NewRequest("POST", "/products/prod-1/reviews", body)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("InvalidRating", func(t *testing.T) {
		reviews := new(stubReviews)
		reviews.On("Create", mock.Anything, mock.Anything).Return(review.Review{}, review.ErrInvalidRating)
		router := newReviewRouter(reviews)

		body := bytes.NewBufferString(`{"rating": 9, "comment": "off the chart"}`)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, asCustomer(httptest.NewRequest("POST", "/products/prod-1/reviews", body)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("DuplicateGets409", func(t *testing.T) {
		reviews := new(stubReviews)
		reviews.On("Create", mock.Anything, mock.Anything).Return(review.Review{}, review.ErrAlreadyReviewed)
		router := newReviewRouter(reviews)

		body := bytes.NewBufferString(`{"rating": 4, "comment": "again"}`)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, asCustomer(httptest.NewRequest("POST", "/products/prod-1/reviews", body)))

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
