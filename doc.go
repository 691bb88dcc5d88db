// Package adyenpay provides an Adyen classic integration gateway: a Go client
// for the Hosted Payment Pages (HPP) and SOAP-style recurring payment APIs,
// plus an HTTP service that exposes them behind a single authenticated REST
// surface.
//
// # Overview
//
// The adyen package is the core. It models every exchange with the platform
// as a keyed-field entity: known fields are kept, unknown fields are dropped
// on construction, and the remaining fields are signed or verified with the
// merchant HMAC key. On top of that it offers typed request and response
// entities and a gateway client for the recurring API.
//
// # Quick Start
//
// Building a hosted payment session:
//
//	data := adyen.NewPaymentData().
//		SetSkinCode("sk1nC0de").
//		SetAmount(1995, "EUR")
//	if err := data.SetMerchantReference("order-42"); err != nil {
//		panic(err)
//	}
//	data.SetMerchantAccount("TestMerchant")
//	data.IncreaseSessionValidity(0)
//	data.IncreaseShipBeforeDate(0)
//
//	if err := data.CalculateMerchantSig(hmacKey); err != nil {
//		panic(err)
//	}
//	// data.Data() now carries the signed form fields for the redirect.
//
// Verifying the return redirect:
//
//	resp := adyen.NewPaymentResponse(queryParams, true)
//	if err := resp.VerifySignature(hmacKey); err != nil {
//		// tampered or misconfigured, reject
//	}
//	if resp.IsSuccessful() {
//		// authorised or pending
//	}
//
// Charging a stored payment detail:
//
//	client, err := adyen.NewClient("TestMerchant", "ws_user", "ws_pass")
//	if err != nil {
//		panic(err)
//	}
//	for alias, url := range adyen.DefaultURLs() {
//		_ = client.RegisterURL(alias, url)
//	}
//
//	req := adyen.NewRecurringPaymentRequest()
//	req.SetAmount(1995, "EUR")
//	_, _ = req.SetShopperReference("shopper-1")
//	resp, err := client.CreateRecurringPayment(context.Background(), req)
//
// # HTTP API
//
// The service wraps the client behind a REST API authenticated with the
// X-API-Key header:
//
//	POST /v1/hpp/session        build a signed HPP form field set
//	GET  /v1/hpp/return         verify a redirect back from the payment page (public)
//	POST /v1/payments/recurring charge a stored detail
//	GET  /v1/recurring/details  list stored details for a shopper
//	POST /v1/recurring/disable  disable one or all stored details
//	GET  /health                liveness and configuration check (public)
//
// # Signature Generations
//
// Two merchant signature schemes are supported and selected by key shape: a
// 64-character hexadecimal key routes to the HMAC-SHA256 scheme over all
// fields in byte order, any other key routes to the legacy HMAC-SHA1 scheme
// over a fixed field sequence. Verification uses the same routing.
//
// # Configuration
//
// Configuration is environment driven:
//
//	APP_PORT=9999
//	API_KEY=service-api-key
//	ADYEN_ENVIRONMENT=test
//	ADYEN_MERCHANT_ACCOUNT=TestMerchant
//	ADYEN_USERNAME=ws_user
//	ADYEN_PASSWORD=ws_pass
//	ADYEN_HMAC_KEY=44782DEF...
//	ADYEN_SKIN_CODE=sk1nC0de
//	ADYEN_URL_AUTHORISE=https://...   # per-alias endpoint overrides
//
// # Security Features
//
//   - API key authentication
//   - Rate limiting
//   - IP whitelisting
//   - Request validation
//   - Merchant signature verification on every HPP return
//
// For more information, visit: https://github.com/mstgnz/adyenpay
package adyenpay
