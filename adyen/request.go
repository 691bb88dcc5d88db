package adyen

import (
	"math"
	"strings"
)

// Wire field names shared by the recurring request entities.
const (
	FieldMerchantAccount                  = "merchantAccount"
	FieldAmount                           = "amount"
	FieldReference                        = "reference"
	FieldShopperEmail                     = "shopperEmail"
	FieldShopperIP                        = "shopperIP"
	FieldShopperReference                 = "shopperReference"
	FieldShopperInteraction               = "shopperInteraction"
	FieldSelectedRecurringDetailReference = "selectedRecurringDetailReference"
	FieldRecurring                        = "recurring"
	FieldRecurringDetailReference         = "recurringDetailReference"
)

// Recurring contract modes. The contract controls how a stored payment
// method may be reused.
const (
	// ContractRecurring stores payment details for future use; the security
	// code is not required for subsequent card payments.
	ContractRecurring = "RECURRING"

	// ContractOneClick stores details with the shopper present for each
	// subsequent transaction; cards require the security code again.
	ContractOneClick = "ONECLICK"

	// ContractOneClickRecurring allows use of the stored details whether or
	// not the shopper is on the merchant site.
	ContractOneClickRecurring = "RECURRING,ONECLICK"
)

// ShopperInteractionContAuth marks a continued-authority (merchant
// initiated) transaction.
const ShopperInteractionContAuth = "ContAuth"

// LatestDetail selects the most recently stored recurring detail.
const LatestDetail = "LATEST"

var recurringPaymentFields = []string{
	FieldMerchantAccount,
	FieldAmount,
	FieldReference,
	FieldShopperEmail,
	FieldShopperIP,
	FieldShopperReference,
	FieldShopperInteraction,
	FieldSelectedRecurringDetailReference,
	FieldRecurring,
}

// minorUnits converts a major-unit amount to integer minor units; 19.95
// must become 1995, so the conversion rounds instead of truncating.
func minorUnits(amount float64) int {
	return int(math.Round(amount * 100))
}

// RecurringPaymentRequest is the server-to-server request that charges a
// stored recurring detail.
type RecurringPaymentRequest struct {
	*Entity
}

func NewRecurringPaymentRequest() *RecurringPaymentRequest {
	return &RecurringPaymentRequest{Entity: newEntity(recurringPaymentFields)}
}

// SetMerchantAccount sets the merchant account the payment is processed for.
func (r *RecurringPaymentRequest) SetMerchantAccount(v string) *RecurringPaymentRequest {
	r.AddData(FieldMerchantAccount, v)
	return r
}

// SetAmount stores the amount to authorise as a {value, currency} object.
// The major-unit amount is converted to integer minor units and the
// currency code is uppercased.
func (r *RecurringPaymentRequest) SetAmount(amount float64, currency string) *RecurringPaymentRequest {
	r.AddData(FieldAmount, map[string]any{
		"value":    minorUnits(amount),
		"currency": strings.ToUpper(currency),
	})
	return r
}

// SetReference sets the merchant-side payment reference.
func (r *RecurringPaymentRequest) SetReference(v string) *RecurringPaymentRequest {
	r.AddData(FieldReference, v)
	return r
}

// SetShopperEmail sets the shopper's email address. It does not have to
// match the address supplied with the initial payment, but it cannot be
// empty.
func (r *RecurringPaymentRequest) SetShopperEmail(v string) error {
	if v == "" {
		return &ValidationError{Field: FieldShopperEmail, Reason: "shopper email can't be empty"}
	}
	r.AddData(FieldShopperEmail, v)
	return nil
}

// SetShopperIP sets the shopper's IP address.
func (r *RecurringPaymentRequest) SetShopperIP(v string) *RecurringPaymentRequest {
	r.AddData(FieldShopperIP, v)
	return r
}

// SetShopperReference sets the stable shopper identifier. It must equal the
// shopperReference used in the initial payment.
func (r *RecurringPaymentRequest) SetShopperReference(v string) *RecurringPaymentRequest {
	r.AddData(FieldShopperReference, v)
	return r
}

// SetSelectedRecurringDetailReference selects the recurring detail to
// charge. An empty value falls back to LATEST, the most recently stored
// detail.
func (r *RecurringPaymentRequest) SetSelectedRecurringDetailReference(v string) *RecurringPaymentRequest {
	if v == "" {
		v = LatestDetail
	}
	r.AddData(FieldSelectedRecurringDetailReference, v)
	return r
}

// SetRecurring stores the recurring contract as a {contract: mode}
// sub-object. An empty mode falls back to RECURRING. If the contract was
// created as "RECURRING,ONECLICK", subsequent charges still use "RECURRING".
func (r *RecurringPaymentRequest) SetRecurring(contract string) *RecurringPaymentRequest {
	if contract == "" {
		contract = ContractRecurring
	}
	r.AddData(FieldRecurring, map[string]any{"contract": contract})
	return r
}

// SetShopperInteraction sets the interaction type; an empty value falls back
// to ContAuth.
func (r *RecurringPaymentRequest) SetShopperInteraction(v string) *RecurringPaymentRequest {
	if v == "" {
		v = ShopperInteractionContAuth
	}
	r.AddData(FieldShopperInteraction, v)
	return r
}

var recurringDetailsFields = []string{
	FieldShopperReference,
	FieldMerchantAccount,
	FieldRecurring,
}

// RecurringDetailsRequest lists the recurring details stored for a shopper.
type RecurringDetailsRequest struct {
	*Entity
}

func NewRecurringDetailsRequest() *RecurringDetailsRequest {
	return &RecurringDetailsRequest{Entity: newEntity(recurringDetailsFields)}
}

func (r *RecurringDetailsRequest) SetShopperReference(v string) *RecurringDetailsRequest {
	r.AddData(FieldShopperReference, v)
	return r
}

func (r *RecurringDetailsRequest) SetMerchantAccount(v string) *RecurringDetailsRequest {
	r.AddData(FieldMerchantAccount, v)
	return r
}

// SetRecurring restricts the listing to details usable under the given
// contract mode; empty falls back to RECURRING.
func (r *RecurringDetailsRequest) SetRecurring(contract string) *RecurringDetailsRequest {
	if contract == "" {
		contract = ContractRecurring
	}
	r.AddData(FieldRecurring, map[string]any{"contract": contract})
	return r
}

var disableRecurringDetailsFields = []string{
	FieldShopperReference,
	FieldMerchantAccount,
	FieldRecurringDetailReference,
}

// DisableRecurringDetailsRequest disables one or all recurring details for
// a shopper.
type DisableRecurringDetailsRequest struct {
	*Entity
}

func NewDisableRecurringDetailsRequest() *DisableRecurringDetailsRequest {
	return &DisableRecurringDetailsRequest{Entity: newEntity(disableRecurringDetailsFields)}
}

func (r *DisableRecurringDetailsRequest) SetMerchantAccount(v string) *DisableRecurringDetailsRequest {
	r.AddData(FieldMerchantAccount, v)
	return r
}

func (r *DisableRecurringDetailsRequest) SetShopperReference(v string) *DisableRecurringDetailsRequest {
	r.AddData(FieldShopperReference, v)
	return r
}

// SetRecurringDetailReference targets a single detail. With an empty value
// the field is omitted entirely, which disables all details stored for the
// shopper.
func (r *DisableRecurringDetailsRequest) SetRecurringDetailReference(v string) *DisableRecurringDetailsRequest {
	if v == "" {
		return r
	}
	r.AddData(FieldRecurringDetailReference, v)
	return r
}
