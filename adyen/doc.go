// Package adyen implements the client side of the Adyen recurring-payment
// and hosted-payment-page (HPP) integration: typed request/response
// entities, merchant signature computation and verification, and the HTTP
// orchestration around them.
//
// # Core Concepts
//
// Everything the gateway exchanges is a flat JSON object of literal wire
// field names. The package models that with a small set of building blocks:
//
//   - Entity: the generic keyed-field container every request/response type
//     wraps, with per-kind declared field lists and construction filtering
//   - Request entities: RecurringPaymentRequest, RecurringDetailsRequest,
//     DisableRecurringDetailsRequest and the hosted-page PaymentData, whose
//     setters validate and normalize before storing
//   - Response entities: RecurringPaymentResponse, PaymentResponse,
//     RecurringDetailsResponse, DisableRecurringDetailsResponse, with
//     classified accessors over the raw reply
//   - Signature: two HMAC generations selected by key shape; a 64-hex key
//     routes to HMAC-SHA256 over the sorted, escaped field set, anything
//     else to the legacy HMAC-SHA1 over a fixed field order
//   - Client: one blocking round trip per operation against an endpoint
//     alias registry populated at startup
//
// # Basic Usage
//
//	client, err := adyen.NewClient("MerchantAccount", "ws_user", "ws_pass")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for alias, url := range adyen.DefaultURLs() {
//	    _ = client.RegisterURL(alias, url)
//	}
//
//	req := adyen.NewRecurringPaymentRequest().
//	    SetAmount(19.95, "EUR").
//	    SetReference("order-1").
//	    SetShopperReference("shopper-1").
//	    SetSelectedRecurringDetailReference(adyen.LatestDetail).
//	    SetRecurring(adyen.ContractRecurring).
//	    SetShopperInteraction(adyen.ShopperInteractionContAuth)
//	if err := req.SetShopperEmail("shopper@example.com"); err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := client.CreateRecurringPayment(ctx, req)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if resp.IsAuthorised() {
//	    // charge succeeded
//	}
//
// Hosted-page sessions are signed locally and never sent server-to-server:
//
//	data := adyen.NewPaymentData().
//	    SetAmount(19.95, "EUR").
//	    SetSkinCode("4aD37dJA").
//	    SetRecurring(adyen.ContractRecurring).
//	    IncreaseSessionValidity(0).
//	    IncreaseShipBeforeDate(0)
//	if err := data.SetMerchantReference("order-1"); err != nil {
//	    log.Fatal(err)
//	}
//	if err := data.CalculateMerchantSig(hmacKey); err != nil {
//	    log.Fatal(err)
//	}
//	fields := data.Data() // render into the HPP redirect form
//
// Inbound return callbacks are re-verified with the same key before any
// field is trusted:
//
//	resp := adyen.NewPaymentResponse(params, true)
//	if err := resp.VerifySignature(hmacKey); err != nil {
//	    // possibly forged callback
//	}
package adyen
