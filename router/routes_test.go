package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mstgnz/adyenpay/adyen"
)

func TestRoutes(t *testing.T) {
	t.Setenv("API_KEY", "test-api-key")

	client, err := adyen.NewClient("TestMerchant", "ws_user", "ws_pass")
	require.NoError(t, err)
	for alias, url := range adyen.DefaultURLs() {
		require.NoError(t, client.RegisterURL(alias, url))
	}

	r := chi.NewRouter()
	assert.NotPanics(t, func() {
		Routes(r, client, nil)
	})

	tests := []struct {
		name       string
		method     string
		path       string
		apiKey     string
		expectCode int
	}{
		{
			name:       "health_is_public",
			method:     "GET",
			path:       "/health",
			expectCode: http.StatusOK,
		},
		{
			name:       "hpp_return_is_public",
			method:     "GET",
			path:       "/v1/hpp/return",
			expectCode: http.StatusUnauthorized, // bad signature, not missing API key
		},
		{
			name:       "payments_require_api_key",
			method:     "POST",
			path:       "/v1/payments/recurring",
			expectCode: http.StatusUnauthorized,
		},
		{
			name:       "details_require_api_key",
			method:     "GET",
			path:       "/v1/recurring/details",
			expectCode: http.StatusUnauthorized,
		},
		{
			name:       "details_with_api_key",
			method:     "GET",
			path:       "/v1/recurring/details", // missing shopperReference
			apiKey:     "test-api-key",
			expectCode: http.StatusBadRequest,
		},
		{
			name:       "hpp_session_with_api_key",
			method:     "POST",
			path:       "/v1/hpp/session", // empty body
			apiKey:     "test-api-key",
			expectCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.apiKey != "" {
				req.Header.Set("X-API-Key", tt.apiKey)
			}
			rr := httptest.NewRecorder()

			r.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectCode, rr.Code, rr.Body.String())
		})
	}
}
