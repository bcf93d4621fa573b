package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hampernest-be/internal/logger"
	"hampernest-be/internal/metrics"
	"hampernest-be/internal/rbac"
	"hampernest-be/internal/user"
	"hampernest-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogging(t *testing.T) {
	reg := metrics.NewRegistry()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, logger.RequestIDFrom(r.Context()))
		w.WriteHeader(http.StatusOK)
	})
	handler := Logging(reg)(next)

	t.Run("GeneratesRequestID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("PreservesExistingID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("X-Request-ID", "test-id-123")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "test-id-123", w.Header().Get("X-Request-ID"))
	})

	t.Run("CountsRequests", func(t *testing.T) {
		before := reg.Counter("requests").Load()

		req := httptest.NewRequest("GET", "/test", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, before+1, reg.Counter("requests").Load())
		assert.Zero(t, reg.Counter("errors").Load())
	})
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS(next)

	t.Run("OptionsRequest", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/test", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "X-Session-ID")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("NormalRequest", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAuth(t *testing.T) {
	t.Run("MissingTokenPassesThroughAnonymous", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := utils.GetUserIDFromContext(r.Context())
			assert.False(t, ok)
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest("GET", "/products", nil)
		w := httptest.NewRecorder()

		Auth(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("InvalidTokenRejected", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")

		req := httptest.NewRequest("GET", "/products", nil)
		req.Header.Set("Authorization", "Bearer invalid-token")
		w := httptest.NewRecorder()

		Auth(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("ValidToken", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")

		sellerID := "seller-1"
		tokenString, err := user.GenerateJWT("u-1", rbac.RoleSeller, "s@b.com", &sellerID)
		require.NoError(t, err)

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			assert.True(t, ok)
			assert.Equal(t, "u-1", userID)
			assert.Equal(t, rbac.RoleSeller, utils.GetUserRoleFromContext(r.Context()))

			sid, ok := utils.GetSellerIDFromContext(r.Context())
			assert.True(t, ok)
			assert.Equal(t, "seller-1", sid)
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest("GET", "/products", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		w := httptest.NewRecorder()

		Auth(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestSession(t *testing.T) {
	t.Run("AuthenticatedUserIDWins", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid, ok := utils.GetSessionIDFromContext(r.Context())
			assert.True(t, ok)
			assert.Equal(t, "u-1", sid)
		})

		req := httptest.NewRequest("GET", "/cart", nil)
		req.Header.Set("X-Session-ID", "guest-session")
		req = req.WithContext(utils.SetUserContext(req.Context(), "u-1", "a@b.com", rbac.RoleCustomer, nil))

		Session(next).ServeHTTP(httptest.NewRecorder(), req)
	})

	t.Run("GuestHeader", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid, ok := utils.GetSessionIDFromContext(r.Context())
			assert.True(t, ok)
			assert.Equal(t, "guest-session", sid)
		})

		req := httptest.NewRequest("GET", "/cart", nil)
		req.Header.Set("X-Session-ID", "guest-session")

		Session(next).ServeHTTP(httptest.NewRecorder(), req)
	})

	t.Run("NoSession", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := utils.GetSessionIDFromContext(r.Context())
			assert.False(t, ok)
		})

		Session(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/cart", nil))
	})
}

func TestRateLimit(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RateLimit(next)

	t.Run("StrictTierExhausts", func(t *testing.T) {
		var last int
		for i := 0; i < burstStrict+1; i++ {
			req := httptest.NewRequest("POST", "/auth/login", nil)
			req.Header.Set("X-Session-ID", "limit-test-strict")
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			last = w.Code
		}
		assert.Equal(t, http.StatusTooManyRequests, last)
	})

	t.Run("GeneralTierSurvivesStrictBurst", func(t *testing.T) {
		for i := 0; i < burstStrict+1; i++ {
			req := httptest.NewRequest("GET", "/products", nil)
			req.Header.Set("X-Session-ID", "limit-test-general")
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})
}
