package middle

import (
	"crypto/subtle"
	"net/http"

	"github.com/mstgnz/adyenpay/infra/config"
	"github.com/mstgnz/adyenpay/infra/response"
)

// AuthMiddleware validates API key authentication
func AuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			expectedAPIKey := config.GetEnv("API_KEY", "")
			if expectedAPIKey == "" {
				response.Error(w, r, http.StatusInternalServerError, "API key not configured", nil)
				return
			}

			apiKey := r.Header.Get("X-API-Key")
			if apiKey == "" {
				response.Error(w, r, http.StatusUnauthorized, "X-API-Key header required", nil)
				return
			}

			if subtle.ConstantTimeCompare([]byte(apiKey), []byte(expectedAPIKey)) != 1 {
				response.Error(w, r, http.StatusUnauthorized, "Invalid API key", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
