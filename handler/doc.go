// Package handler provides the HTTP request handlers for the recurring
// payment gateway service.
//
// The handlers bridge the HTTP layer with the adyen gateway client: request
// bodies are validated DTOs, responses use the shared envelope from
// infra/response, and gateway client errors are mapped onto HTTP status
// codes (validation failures to 400, signature mismatches to 401,
// upstream exchange failures to 502).
//
// # Payment Handler
//
// The PaymentHandler manages the server-to-server recurring operations:
//
//	paymentHandler := handler.NewPaymentHandler(client, validator)
//
//	// Routes
//	r.Post("/v1/payments/recurring", paymentHandler.ProcessRecurringPayment)
//	r.Get("/v1/recurring/details", paymentHandler.ListRecurringDetails)
//	r.Post("/v1/recurring/disable", paymentHandler.DisableRecurringDetails)
//
// # HPP Handler
//
// The HPPHandler builds signed hosted payment page sessions and verifies
// the redirect back from the hosted page:
//
//	hppHandler := handler.NewHPPHandler(merchantAccount, skinCode, hmacKey, validator)
//
//	r.Post("/v1/hpp/session", hppHandler.CreateSession)
//	r.Get("/v1/hpp/return", hppHandler.HandleReturn)
//
// All API endpoints require the X-API-Key header; the hosted page return is
// reached by the shopper's browser and is verified by its merchant
// signature instead.
package handler
