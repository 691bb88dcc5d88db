package v1

import (
	"github.com/go-chi/chi/v5"

	"github.com/mstgnz/adyenpay/handler"
	"github.com/mstgnz/adyenpay/infra/config"
)

// Routes registers all authenticated API routes
func Routes(r chi.Router, gateway handler.GatewayInterface, hppHandler *handler.HPPHandler) {
	paymentHandler := handler.NewPaymentHandler(gateway, config.App().Validator)

	// Recurring payment routes
	r.Route("/payments", func(r chi.Router) {
		r.Post("/recurring", paymentHandler.ProcessRecurringPayment)
	})

	// Stored detail routes
	r.Route("/recurring", func(r chi.Router) {
		r.Get("/details", paymentHandler.ListRecurringDetails)
		r.Post("/disable", paymentHandler.DisableRecurringDetails)
	})

	// Hosted payment page session signing
	r.Post("/hpp/session", hppHandler.CreateSession)
}
