package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mstgnz/adyenpay/adyen"
	"github.com/mstgnz/adyenpay/infra/middle"
	"github.com/mstgnz/adyenpay/infra/response"
)

// GatewayInterface defines the gateway operations the handlers depend on
type GatewayInterface interface {
	CreateRecurringPayment(ctx context.Context, req *adyen.RecurringPaymentRequest) (*adyen.RecurringPaymentResponse, error)
	RecurringDetails(ctx context.Context, req *adyen.RecurringDetailsRequest) (*adyen.RecurringDetailsResponse, error)
	DisableRecurringDetails(ctx context.Context, req *adyen.DisableRecurringDetailsRequest) (*adyen.DisableRecurringDetailsResponse, error)
}

// PaymentHandler handles recurring payment HTTP requests
type PaymentHandler struct {
	gateway  GatewayInterface
	validate *validator.Validate
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(gateway GatewayInterface, validate *validator.Validate) *PaymentHandler {
	return &PaymentHandler{
		gateway:  gateway,
		validate: validate,
	}
}

// RecurringPaymentDTO is the request body for charging a stored detail
type RecurringPaymentDTO struct {
	Amount                   float64 `json:"amount" validate:"required,gt=0"`
	Currency                 string  `json:"currency" validate:"required,len=3"`
	Reference                string  `json:"reference" validate:"omitempty,max=80"`
	ShopperEmail             string  `json:"shopperEmail" validate:"required,email"`
	ShopperReference         string  `json:"shopperReference" validate:"required"`
	ShopperIP                string  `json:"shopperIP" validate:"omitempty,ip"`
	RecurringDetailReference string  `json:"recurringDetailReference"`
	Contract                 string  `json:"contract" validate:"omitempty,oneof=RECURRING ONECLICK"`
}

// ProcessRecurringPayment charges a stored recurring detail
func (h *PaymentHandler) ProcessRecurringPayment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var dto RecurringPaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		response.Error(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validate.Struct(dto); err != nil {
		response.Error(w, r, http.StatusBadRequest, "Validation error", err)
		return
	}

	if dto.Reference == "" {
		dto.Reference = uuid.New().String()
	}
	if dto.ShopperIP == "" {
		dto.ShopperIP = middle.GetClientIP(r)
	}

	req := adyen.NewRecurringPaymentRequest().
		SetAmount(dto.Amount, dto.Currency).
		SetReference(dto.Reference).
		SetShopperReference(dto.ShopperReference).
		SetShopperIP(dto.ShopperIP).
		SetSelectedRecurringDetailReference(dto.RecurringDetailReference).
		SetRecurring(dto.Contract).
		SetShopperInteraction("")
	if err := req.SetShopperEmail(dto.ShopperEmail); err != nil {
		response.Error(w, r, http.StatusBadRequest, "Validation error", err)
		return
	}

	resp, err := h.gateway.CreateRecurringPayment(ctx, req)
	if err != nil {
		writeGatewayError(w, r, "Payment failed", err)
		return
	}

	code, _ := resp.AuthCode()
	response.Success(w, r, http.StatusOK, "Payment processed", map[string]any{
		"reference":    dto.Reference,
		"pspReference": resp.PspReference(),
		"resultCode":   resp.ResultCode(),
		"authCode":     code,
		"successful":   resp.IsSuccessful(),
		"refusal":      resp.RefusalReason(),
	})
}

// ListRecurringDetails lists the stored recurring details for a shopper
func (h *PaymentHandler) ListRecurringDetails(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	shopperReference := r.URL.Query().Get("shopperReference")
	if shopperReference == "" {
		response.Error(w, r, http.StatusBadRequest, "Missing shopperReference", nil)
		return
	}

	resp, err := h.gateway.RecurringDetails(ctx, adyen.NewRecurringDetailsRequest().
		SetShopperReference(shopperReference).
		SetRecurring(r.URL.Query().Get("contract")))
	if err != nil {
		writeGatewayError(w, r, "Failed to list recurring details", err)
		return
	}

	details := make([]map[string]any, 0)
	for _, d := range resp.RecurringDetails() {
		entry := map[string]any{
			"recurringDetailReference": d.RecurringDetailReference(),
			"variant":                  d.Variant(),
			"contractTypes":            d.ContractTypes(),
		}
		if created, err := d.CreationDate(); err == nil {
			entry["creationDate"] = created.Format(time.RFC3339)
		}
		if len(d.Card()) > 0 {
			card := d.CardDetails()
			entry["card"] = map[string]any{
				"number":      card.Number(),
				"expiryMonth": card.ExpiryMonth(),
				"expiryYear":  card.ExpiryYear(),
				"holderName":  card.HolderName(),
			}
		}
		details = append(details, entry)
	}

	response.Success(w, r, http.StatusOK, "Recurring details retrieved", map[string]any{
		"shopperReference": shopperReference,
		"details":          details,
	})
}

// DisableRecurringDTO is the request body for disabling stored details
type DisableRecurringDTO struct {
	ShopperReference         string `json:"shopperReference" validate:"required"`
	RecurringDetailReference string `json:"recurringDetailReference"`
}

// DisableRecurringDetails disables one or all stored details for a shopper
func (h *PaymentHandler) DisableRecurringDetails(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var dto DisableRecurringDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		response.Error(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validate.Struct(dto); err != nil {
		response.Error(w, r, http.StatusBadRequest, "Validation error", err)
		return
	}

	resp, err := h.gateway.DisableRecurringDetails(ctx, adyen.NewDisableRecurringDetailsRequest().
		SetShopperReference(dto.ShopperReference).
		SetRecurringDetailReference(dto.RecurringDetailReference))
	if err != nil {
		writeGatewayError(w, r, "Failed to disable recurring details", err)
		return
	}

	response.Success(w, r, http.StatusOK, "Disable request processed", map[string]any{
		"shopperReference": dto.ShopperReference,
		"disabled":         resp.IsSuccessful(),
	})
}

// writeGatewayError maps gateway client errors onto HTTP status codes
func writeGatewayError(w http.ResponseWriter, r *http.Request, message string, err error) {
	var valErr *adyen.ValidationError
	var sigErr *adyen.SignatureMismatchError
	var confErr *adyen.ConfigurationError

	switch {
	case errors.As(err, &valErr):
		response.Error(w, r, http.StatusBadRequest, message, err)
	case errors.As(err, &sigErr):
		response.Error(w, r, http.StatusUnauthorized, message, err)
	case errors.As(err, &confErr):
		response.Error(w, r, http.StatusInternalServerError, message, err)
	default:
		// transport, parse and gateway errors all mean the upstream
		// exchange went wrong
		response.Error(w, r, http.StatusBadGateway, message, err)
	}
}
