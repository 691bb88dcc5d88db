package adyen

import (
	"strings"
	"time"
)

// Result codes of the server-to-server recurring payment call.
const (
	ResultAuthorised = "Authorised"
	ResultRefused    = "Refused"
	ResultError      = "Error"
)

// RecurringPaymentResponse carries the gateway's reply to a recurring
// payment authorisation.
type RecurringPaymentResponse struct {
	*Entity
}

func NewRecurringPaymentResponse() *RecurringPaymentResponse {
	return &RecurringPaymentResponse{Entity: newEntity(nil)}
}

// PspReference returns the gateway's globally unique payment reference.
func (r *RecurringPaymentResponse) PspReference() string {
	return r.getString("pspReference")
}

// ResultCode returns the raw authorisation result, one of Authorised,
// Refused or Error in gateway-chosen casing.
func (r *RecurringPaymentResponse) ResultCode() string {
	return r.getString("resultCode")
}

// AuthCode returns the authorisation code of a successful payment. Absent
// or zero values report ok == false.
func (r *RecurringPaymentResponse) AuthCode() (int, bool) {
	ac := r.getInt("authCode")
	return ac, ac != 0
}

// RefusalReason returns the gateway's mapped refusal reason, if the payment
// was refused.
func (r *RecurringPaymentResponse) RefusalReason() string {
	return r.getString("refusalReason")
}

// Gateway responses vary in casing, so result codes match
// case-insensitively.
func (r *RecurringPaymentResponse) matchResultCode(code string) bool {
	return strings.EqualFold(r.ResultCode(), code)
}

func (r *RecurringPaymentResponse) IsAuthorised() bool { return r.matchResultCode(ResultAuthorised) }
func (r *RecurringPaymentResponse) IsRefused() bool    { return r.matchResultCode(ResultRefused) }
func (r *RecurringPaymentResponse) IsError() bool      { return r.matchResultCode(ResultError) }

func (r *RecurringPaymentResponse) IsFailed() bool {
	return r.IsRefused() || r.IsError()
}

func (r *RecurringPaymentResponse) IsSuccessful() bool {
	return r.IsAuthorised()
}

// Authorisation results of the hosted payment page return.
const (
	AuthResultAuthorised = "AUTHORISED"
	AuthResultRefused    = "REFUSED"
	AuthResultCancelled  = "CANCELLED"
	AuthResultPending    = "PENDING"
	AuthResultError      = "ERROR"
)

var paymentResponseFields = []string{
	FieldMerchantReference,
	FieldMerchantReturnData,
	FieldMerchantSig,
	FieldSkinCode,
	"shopperLocale",
	"paymentMethod",
	"authResult",
	"pspReference",
}

// paymentResponseSignatureFields is the legacy verification order for the
// hosted-page return parameters.
var paymentResponseSignatureFields = []string{
	"authResult",
	"pspReference",
	FieldMerchantReference,
	FieldSkinCode,
	FieldMerchantReturnData,
}

// PaymentResponse carries the parameters the gateway appends to the return
// URL when the shopper completes (or abandons) a hosted-page payment.
type PaymentResponse struct {
	*Entity
}

// NewPaymentResponse builds a response from the return parameters. With
// filter set, keys outside the declared field set are dropped.
func NewPaymentResponse(data map[string]any, filter bool) *PaymentResponse {
	if filter {
		return &PaymentResponse{Entity: newFilteredEntity(paymentResponseFields, data)}
	}
	e := newEntity(paymentResponseFields)
	if len(data) > 0 {
		e.SetData(data)
	}
	return &PaymentResponse{Entity: e}
}

// MerchantReference returns the reference assigned to the original payment.
func (r *PaymentResponse) MerchantReference() string {
	return r.getString(FieldMerchantReference)
}

// MerchantReturnData returns the session data passed back as-is, when it
// was set in the payment session.
func (r *PaymentResponse) MerchantReturnData() string {
	return r.getString(FieldMerchantReturnData)
}

// MerchantSig returns the received signature. It is only ever compared
// against a recomputed value, never trusted for anything else.
func (r *PaymentResponse) MerchantSig() string {
	return r.getString(FieldMerchantSig)
}

// SkinCode returns the code of the skin used.
func (r *PaymentResponse) SkinCode() string {
	return r.getString(FieldSkinCode)
}

// ShopperLocale returns the shopper locale, e.g. en_GB.
func (r *PaymentResponse) ShopperLocale() string {
	return r.getString("shopperLocale")
}

// PaymentMethod returns the payment method used. For cancelled results the
// method may not be known and will be empty.
func (r *PaymentResponse) PaymentMethod() string {
	return r.getString("paymentMethod")
}

// AuthResult returns the raw authorisation result.
func (r *PaymentResponse) AuthResult() string {
	return r.getString("authResult")
}

// PspReference returns the gateway's payment reference. For pending, error
// and cancelled results it may not yet be known.
func (r *PaymentResponse) PspReference() string {
	return r.getString("pspReference")
}

func (r *PaymentResponse) matchAuthResult(v string) bool {
	return strings.EqualFold(r.AuthResult(), v)
}

func (r *PaymentResponse) IsAuthorised() bool { return r.matchAuthResult(AuthResultAuthorised) }
func (r *PaymentResponse) IsRefused() bool    { return r.matchAuthResult(AuthResultRefused) }
func (r *PaymentResponse) IsCancelled() bool  { return r.matchAuthResult(AuthResultCancelled) }
func (r *PaymentResponse) IsPending() bool    { return r.matchAuthResult(AuthResultPending) }
func (r *PaymentResponse) IsError() bool      { return r.matchAuthResult(AuthResultError) }

// IsFailed and IsSuccessful are not exact complements; pending is excluded
// from IsFailed only through the authorised branch. Both predicates mirror
// gateway-observed behavior and must stay exactly as written.
func (r *PaymentResponse) IsFailed() bool {
	return !r.IsAuthorised() || r.IsCancelled() || r.IsRefused() || r.IsError()
}

func (r *PaymentResponse) IsSuccessful() bool {
	return (r.IsAuthorised() || r.IsPending()) && !r.IsCancelled() && !r.IsRefused() && !r.IsError()
}

// expectedMerchantSig recomputes the signature from the received fields,
// routing on the key shape like the signing side. On the SHA-256 path nil
// fields and the received signature itself are excluded.
func (r *PaymentResponse) expectedMerchantSig(hmacKey string) (string, error) {
	if isSHA256Key(hmacKey) {
		data := make(map[string]any, len(r.Data()))
		for k, v := range r.Data() {
			if v == nil || k == FieldMerchantSig {
				continue
			}
			data[k] = v
		}
		return SignatureSHA256(hmacKey, data)
	}

	return SignatureSHA1(hmacKey, r.Data(), paymentResponseSignatureFields), nil
}

// VerifySignature recomputes the merchant signature from the received
// fields and compares it to the received merchantSig. A mismatch fails with
// *SignatureMismatchError.
func (r *PaymentResponse) VerifySignature(hmacKey string) error {
	expected, err := r.expectedMerchantSig(hmacKey)
	if err != nil {
		return err
	}
	if received := r.MerchantSig(); expected != received {
		return &SignatureMismatchError{Expected: expected, Received: received}
	}
	return nil
}

// Disable outcome sentinels. The gateway reports exactly one of these on
// success, depending on whether a single detail or all details were
// disabled.
const (
	DisableSuccessSingle = "[detail-successfully-disabled]"
	DisableSuccessAll    = "[all-details-successfully-disabled]"
)

// DisableRecurringDetailsResponse carries the gateway's reply to a disable
// call.
type DisableRecurringDetailsResponse struct {
	*Entity
}

func NewDisableRecurringDetailsResponse() *DisableRecurringDetailsResponse {
	return &DisableRecurringDetailsResponse{Entity: newEntity(nil)}
}

func (r *DisableRecurringDetailsResponse) response() string {
	return r.getString("response")
}

// IsSuccessful reports whether the single response field equals one of the
// two exact success sentinels.
func (r *DisableRecurringDetailsResponse) IsSuccessful() bool {
	resp := r.response()
	return resp == DisableSuccessSingle || resp == DisableSuccessAll
}

// Field names of the recurring details listing.
const (
	FieldCreationDate          = "creationDate"
	FieldLastKnownShopperEmail = "lastKnownShopperEmail"
	FieldDetails               = "details"

	recurringDetailKey = "RecurringDetail"
)

var recurringDetailsResponseFields = []string{
	FieldCreationDate,
	FieldShopperReference,
	FieldLastKnownShopperEmail,
	FieldDetails,
}

// RecurringDetailsResponse carries the listing of recurring details stored
// for a shopper.
type RecurringDetailsResponse struct {
	*Entity
}

func NewRecurringDetailsResponse() *RecurringDetailsResponse {
	return &RecurringDetailsResponse{Entity: newEntity(recurringDetailsResponseFields)}
}

// CreationDate returns the listing creation timestamp.
func (r *RecurringDetailsResponse) CreationDate() (time.Time, error) {
	return time.Parse(time.RFC3339, r.getString(FieldCreationDate))
}

func (r *RecurringDetailsResponse) ShopperReference() string {
	return r.getString(FieldShopperReference)
}

func (r *RecurringDetailsResponse) LastKnownShopperEmail() string {
	return r.getString(FieldLastKnownShopperEmail)
}

// Details returns the raw wrapper entries of the details array.
func (r *RecurringDetailsResponse) Details() []any {
	d, _ := r.GetData(FieldDetails).([]any)
	return d
}

// RecurringDetails maps each wrapper entry's nested "RecurringDetail"
// object into a RecurringDetail entity. A wrapper without the key yields an
// empty detail, not an error.
func (r *RecurringDetailsResponse) RecurringDetails() []*RecurringDetail {
	details := r.Details()
	out := make([]*RecurringDetail, 0, len(details))
	for _, d := range details {
		wrapper, _ := d.(map[string]any)
		inner, _ := wrapper[recurringDetailKey].(map[string]any)
		out = append(out, NewRecurringDetail(inner))
	}
	return out
}

// Field names of a single recurring detail record.
const (
	FieldAdditionalData       = "additionalData"
	FieldAlias                = "alias"
	FieldAliasType            = "aliasType"
	FieldContractTypes        = "contractTypes"
	FieldCard                 = "card"
	FieldFirstPspReference    = "firstPspReference"
	FieldPaymentMethodVariant = "paymentMethodVariant"
	FieldVariant              = "variant"

	cardBinKey = "cardBin"
)

var recurringDetailFields = []string{
	FieldAdditionalData,
	FieldAlias,
	FieldAliasType,
	FieldContractTypes,
	FieldCard,
	FieldCreationDate,
	FieldFirstPspReference,
	FieldPaymentMethodVariant,
	FieldRecurringDetailReference,
	FieldVariant,
}

// RecurringDetail is one stored payment-method reference (e.g. a tokenized
// card) reusable across charges for the same shopper.
type RecurringDetail struct {
	*Entity
}

func NewRecurringDetail(data map[string]any) *RecurringDetail {
	e := newEntity(recurringDetailFields)
	if len(data) > 0 {
		e.SetData(data)
	}
	return &RecurringDetail{Entity: e}
}

// AdditionalData returns the free-form additional data object.
func (d *RecurringDetail) AdditionalData() map[string]any {
	return d.getMap(FieldAdditionalData)
}

// CardBin returns the BIN of the stored card, or 0 when absent.
func (d *RecurringDetail) CardBin() int {
	return intifyField(d.AdditionalData()[cardBinKey])
}

// ContractTypes returns the contract modes the detail may be used under.
func (d *RecurringDetail) ContractTypes() []string {
	raw, _ := d.GetData(FieldContractTypes).([]any)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		out = append(out, stringifyField(v))
	}
	return out
}

func (d *RecurringDetail) Alias() string     { return d.getString(FieldAlias) }
func (d *RecurringDetail) AliasType() string { return d.getString(FieldAliasType) }

// Card returns the raw card sub-object.
func (d *RecurringDetail) Card() map[string]any {
	return d.getMap(FieldCard)
}

// CardDetails returns the card sub-object as its own entity.
func (d *RecurringDetail) CardDetails() *RecurringDetailCard {
	return NewRecurringDetailCard(d.Card())
}

func (d *RecurringDetail) CreationDate() (time.Time, error) {
	return time.Parse(time.RFC3339, d.getString(FieldCreationDate))
}

func (d *RecurringDetail) FirstPspReference() string {
	return d.getString(FieldFirstPspReference)
}

func (d *RecurringDetail) PaymentMethodVariant() string {
	return d.getString(FieldPaymentMethodVariant)
}

func (d *RecurringDetail) Variant() string {
	return d.getString(FieldVariant)
}

func (d *RecurringDetail) RecurringDetailReference() string {
	return d.getString(FieldRecurringDetailReference)
}

// Field names of the card sub-object of a recurring detail.
const (
	FieldExpiryMonth = "expiryMonth"
	FieldExpiryYear  = "expiryYear"
	FieldHolderName  = "holderName"
	FieldNumber      = "number"
)

var recurringDetailCardFields = []string{
	FieldExpiryMonth,
	FieldExpiryYear,
	FieldHolderName,
	FieldNumber,
}

// RecurringDetailCard exposes the card bits of a recurring detail.
type RecurringDetailCard struct {
	*Entity
}

func NewRecurringDetailCard(data map[string]any) *RecurringDetailCard {
	e := newEntity(recurringDetailCardFields)
	if len(data) > 0 {
		e.SetData(data)
	}
	return &RecurringDetailCard{Entity: e}
}

func (c *RecurringDetailCard) ExpiryMonth() int   { return c.getInt(FieldExpiryMonth) }
func (c *RecurringDetailCard) ExpiryYear() int    { return c.getInt(FieldExpiryYear) }
func (c *RecurringDetailCard) Number() int        { return c.getInt(FieldNumber) }
func (c *RecurringDetailCard) HolderName() string { return c.getString(FieldHolderName) }
