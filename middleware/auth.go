package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mvk-codes/rental_marketplace/backend/controllers"
	"github.com/mvk-codes/rental_marketplace/backend/utils"
	"github.com/sirupsen/logrus"
)

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		tokenHeader := r.Header.Get("Authorization")
		if tokenHeader == "" {
			logrus.WithFields(logrus.Fields{"method": r.Method, "url": r.URL.String()}).
				Warn("Missing Authorization header")
			http.Error(w, "Missing Authorization header", http.StatusUnauthorized)
			return
		}

		tokenParts := strings.Split(tokenHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			logrus.WithFields(logrus.Fields{"method": r.Method, "url": r.URL.String()}).
				Warn("Invalid Authorization header format")
			http.Error(w, "Invalid Authorization header format", http.StatusUnauthorized)
			return
		}

		claims, err := utils.ValidateJWT(tokenParts[1])
		if err != nil {
			logrus.WithError(err).Warn("Invalid or expired token")
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), controllers.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, controllers.UserRoleKey, claims.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
