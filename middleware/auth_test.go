package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mvk-codes/rental_marketplace/backend/controllers"
	"github.com/mvk-codes/rental_marketplace/backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		token, err := utils.GenerateJWT("tenant-meera", "tenant")
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/properties", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		handlerCalled := false
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerCalled = true
			userID, ok := r.Context().Value(controllers.UserIDKey).(string)
			assert.True(t, ok)
			assert.Equal(t, "tenant-meera", userID)
			role, ok := r.Context().Value(controllers.UserRoleKey).(string)
			assert.True(t, ok)
			assert.Equal(t, "tenant", role)
		})

		AuthMiddleware(handler).ServeHTTP(w, req)
		assert.True(t, handlerCalled)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/properties", nil)
		w := httptest.NewRecorder()

		AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not be called")
		})).ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/properties", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()

		AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not be called")
		})).ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/properties", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		w := httptest.NewRecorder()

		AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not be called")
		})).ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
