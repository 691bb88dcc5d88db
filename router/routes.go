package router

import (
	"github.com/go-chi/chi/v5"

	"github.com/mstgnz/adyenpay/adyen"
	"github.com/mstgnz/adyenpay/handler"
	"github.com/mstgnz/adyenpay/infra/config"
	"github.com/mstgnz/adyenpay/infra/middle"
	v1 "github.com/mstgnz/adyenpay/router/v1"
)

// Routes registers the full route tree: the public health check and hosted
// page return, and the authenticated v1 API.
func Routes(r chi.Router, client *adyen.Client, storage *config.SQLiteStorage) {
	cfg := config.GetAppConfig()
	hppHandler := handler.NewHPPHandler(cfg.MerchantAccount, cfg.SkinCode, cfg.HMACKey, config.App().Validator)
	healthHandler := handler.NewHealthHandler(client, storage)

	// Health check endpoint (no auth required)
	r.Get("/health", healthHandler.CheckHealth)

	r.Route("/v1", func(r chi.Router) {
		// The hosted page redirects the shopper's browser here, so no API
		// key is involved; the merchant signature authenticates the data.
		r.Get("/hpp/return", hppHandler.HandleReturn)

		r.Group(func(r chi.Router) {
			r.Use(middle.AuthMiddleware())
			v1.Routes(r, client, hppHandler)
		})
	})
}
