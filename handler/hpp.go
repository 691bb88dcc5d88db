package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mstgnz/adyenpay/adyen"
	"github.com/mstgnz/adyenpay/infra/response"
)

// HPPHandler builds hosted payment page sessions and verifies page returns
type HPPHandler struct {
	merchantAccount string
	skinCode        string
	hmacKey         string
	validate        *validator.Validate
}

// NewHPPHandler creates a new hosted payment page handler
func NewHPPHandler(merchantAccount, skinCode, hmacKey string, validate *validator.Validate) *HPPHandler {
	return &HPPHandler{
		merchantAccount: merchantAccount,
		skinCode:        skinCode,
		hmacKey:         hmacKey,
		validate:        validate,
	}
}

// HPPSessionDTO is the request body for building a hosted page session
type HPPSessionDTO struct {
	Amount            float64 `json:"amount" validate:"required,gt=0"`
	Currency          string  `json:"currency" validate:"required,len=3"`
	MerchantReference string  `json:"merchantReference" validate:"omitempty,max=80"`
	ShopperEmail      string  `json:"shopperEmail" validate:"omitempty,email"`
	ShopperReference  string  `json:"shopperReference"`
	RecurringContract string  `json:"recurringContract"`
	SessionValidity   string  `json:"sessionValidity" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	ShipBeforeDate    string  `json:"shipBeforeDate" validate:"omitempty,datetime=2006-01-02"`
	MerchantReturnURL string  `json:"merchantReturnData" validate:"omitempty,max=128"`
	OrderData         string  `json:"orderData"`
}

// CreateSession computes the signed field set for a hosted payment page
// redirect. The caller posts these fields to the gateway from the shopper's
// browser.
func (h *HPPHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var dto HPPSessionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		response.Error(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validate.Struct(dto); err != nil {
		response.Error(w, r, http.StatusBadRequest, "Validation error", err)
		return
	}

	switch dto.RecurringContract {
	case "", adyen.ContractRecurring, adyen.ContractOneClick, adyen.ContractOneClickRecurring:
	default:
		response.Error(w, r, http.StatusBadRequest, "Invalid recurringContract", nil)
		return
	}

	if dto.MerchantReference == "" {
		dto.MerchantReference = uuid.New().String()
	}

	data := adyen.NewPaymentData().
		SetSkinCode(h.skinCode).
		SetAmount(dto.Amount, dto.Currency)
	data.SetMerchantAccount(h.merchantAccount)
	data.SetShopperReference(dto.ShopperReference)
	if dto.RecurringContract != "" {
		data.SetRecurringContract(dto.RecurringContract)
	}
	if dto.MerchantReturnURL != "" {
		data.SetMerchantReturnData(dto.MerchantReturnURL)
	}

	if err := data.SetMerchantReference(dto.MerchantReference); err != nil {
		response.Error(w, r, http.StatusBadRequest, "Validation error", err)
		return
	}
	if dto.ShopperEmail != "" {
		if err := data.SetShopperEmail(dto.ShopperEmail); err != nil {
			response.Error(w, r, http.StatusBadRequest, "Validation error", err)
			return
		}
	}
	if dto.SessionValidity != "" {
		validity, err := time.Parse(time.RFC3339, dto.SessionValidity)
		if err != nil {
			response.Error(w, r, http.StatusBadRequest, "Invalid sessionValidity", err)
			return
		}
		data.SetSessionValidity(validity)
	} else {
		data.IncreaseSessionValidity(0)
	}
	if dto.ShipBeforeDate != "" {
		shipBefore, err := time.Parse("2006-01-02", dto.ShipBeforeDate)
		if err != nil {
			response.Error(w, r, http.StatusBadRequest, "Invalid shipBeforeDate", err)
			return
		}
		data.SetShipBeforeDate(shipBefore)
	} else {
		data.IncreaseShipBeforeDate(0)
	}
	if dto.OrderData != "" {
		data.SetOrderData(dto.OrderData)
	}

	if err := data.CalculateMerchantSig(h.hmacKey); err != nil {
		writeGatewayError(w, r, "Failed to sign session", err)
		return
	}

	response.Success(w, r, http.StatusOK, "Session created", map[string]any{
		"merchantReference": dto.MerchantReference,
		"fields":            data.Data(),
	})
}

// HandleReturn verifies the signed redirect back from the hosted payment
// page and reports the payment outcome.
func (h *HPPHandler) HandleReturn(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	fields := make(map[string]any, len(query))
	for key := range query {
		fields[key] = query.Get(key)
	}

	resp := adyen.NewPaymentResponse(fields, true)
	if err := resp.VerifySignature(h.hmacKey); err != nil {
		writeGatewayError(w, r, "Signature verification failed", err)
		return
	}

	response.Success(w, r, http.StatusOK, "Payment return verified", map[string]any{
		"authResult":         resp.AuthResult(),
		"pspReference":       resp.PspReference(),
		"merchantReference":  resp.MerchantReference(),
		"merchantReturnData": resp.MerchantReturnData(),
		"successful":         resp.IsSuccessful(),
		"failed":             resp.IsFailed(),
	})
}
