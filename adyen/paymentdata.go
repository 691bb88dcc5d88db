package adyen

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"strings"
	"time"
)

// Wire field names specific to the hosted payment page session.
const (
	FieldSessionValidity    = "sessionValidity"
	FieldShipBeforeDate     = "shipBeforeDate"
	FieldOrderData          = "orderData"
	FieldSkinCode           = "skinCode"
	FieldMerchantReturnData = "merchantReturnData"
	FieldMerchantSig        = "merchantSig"
	FieldMerchantReference  = "merchantReference"
	FieldRecurringContract  = "recurringContract"
	FieldPaymentAmount      = "paymentAmount"
	FieldCurrencyCode       = "currencyCode"
)

const (
	// DefaultSessionValidityInterval is the extension applied by
	// IncreaseSessionValidity when no interval is given.
	DefaultSessionValidityInterval = 24 * time.Hour

	// DefaultShipBeforeDateInterval is the extension applied by
	// IncreaseShipBeforeDate when no interval is given.
	DefaultShipBeforeDateInterval = 7 * 24 * time.Hour

	sessionValidityFormat = time.RFC3339
	shipBeforeDateFormat  = "2006-01-02"

	maxMerchantReferenceLength = 80
)

var paymentDataFields = append(append([]string{}, recurringPaymentFields...),
	FieldSessionValidity,
	FieldShipBeforeDate,
	FieldOrderData,
	FieldSkinCode,
	FieldMerchantReturnData,
	FieldMerchantSig,
	FieldMerchantReference,
	FieldRecurringContract,
	FieldPaymentAmount,
	FieldCurrencyCode,
)

// hppSignatureFields is the exact legacy signing order for a payment
// session. Reordering it breaks generation-1 signatures.
var hppSignatureFields = []string{
	FieldPaymentAmount,
	FieldCurrencyCode,
	FieldShipBeforeDate,
	FieldMerchantReference,
	FieldSkinCode,
	FieldMerchantAccount,
	FieldSessionValidity,
	FieldShopperEmail,
	FieldShopperReference,
	FieldRecurringContract,
	FieldMerchantReturnData,
}

// PaymentData is the hosted-payment-page variant of the recurring request:
// the signed field set handed to the gateway's hosted form. It extends the
// server-to-server request with session, shipping and signature fields, but
// amount/currency travel as the flat paymentAmount/currencyCode pair and
// shopperInteraction does not apply to this flow.
type PaymentData struct {
	*RecurringPaymentRequest
}

func NewPaymentData() *PaymentData {
	return &PaymentData{
		RecurringPaymentRequest: &RecurringPaymentRequest{Entity: newEntity(paymentDataFields)},
	}
}

// SetRecurring proxies to the flat recurringContract field used by the
// hosted flow.
func (p *PaymentData) SetRecurring(contract string) *PaymentData {
	if contract == "" {
		contract = ContractRecurring
	}
	return p.SetRecurringContract(contract)
}

// SetAmount proxies to the flat paymentAmount/currencyCode pair. The
// major-unit amount is converted to integer minor units.
func (p *PaymentData) SetAmount(amount float64, currency string) *PaymentData {
	return p.SetPaymentAmount(minorUnits(amount)).SetCurrencyCode(currency)
}

// SetShopperInteraction is a no-op: the field is not applicable to the
// hosted-page flow.
func (p *PaymentData) SetShopperInteraction(string) *PaymentData {
	return p
}

// SetSessionValidity sets the final time by which the payment needs to have
// been made.
func (p *PaymentData) SetSessionValidity(t time.Time) *PaymentData {
	p.AddData(FieldSessionValidity, t.Format(sessionValidityFormat))
	return p
}

func (p *PaymentData) sessionValidity() string {
	return p.getString(FieldSessionValidity)
}

// IncreaseSessionValidity extends the stored session validity by interval,
// or by one day when interval is zero. An absent or unparseable stored
// value counts from now.
func (p *PaymentData) IncreaseSessionValidity(interval time.Duration) *PaymentData {
	if interval == 0 {
		interval = DefaultSessionValidityInterval
	}
	t, err := time.Parse(sessionValidityFormat, p.sessionValidity())
	if err != nil {
		t = time.Now()
	}
	return p.SetSessionValidity(t.Add(interval))
}

// SetShipBeforeDate sets the date by which the ordered goods or services
// must be shipped or rendered.
func (p *PaymentData) SetShipBeforeDate(t time.Time) *PaymentData {
	p.AddData(FieldShipBeforeDate, t.Format(shipBeforeDateFormat))
	return p
}

func (p *PaymentData) shipBeforeDate() string {
	return p.getString(FieldShipBeforeDate)
}

// IncreaseShipBeforeDate extends the stored ship-before date by interval,
// or by seven days when interval is zero.
func (p *PaymentData) IncreaseShipBeforeDate(interval time.Duration) *PaymentData {
	if interval == 0 {
		interval = DefaultShipBeforeDateInterval
	}
	t, err := time.Parse(shipBeforeDateFormat, p.shipBeforeDate())
	if err != nil {
		t = time.Now()
	}
	return p.SetShipBeforeDate(t.Add(interval))
}

// SetOrderData stores the review-page HTML fragment. Non-western character
// sets must survive the session round trip, so the data travels GZIP
// compressed and base64 encoded.
func (p *PaymentData) SetOrderData(html string) *PaymentData {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, _ = zw.Write([]byte(html))
	_ = zw.Close()
	p.AddData(FieldOrderData, base64.StdEncoding.EncodeToString(buf.Bytes()))
	return p
}

// SetMerchantReturnData stores data passed back as-is on the return URL,
// typically a session ID.
func (p *PaymentData) SetMerchantReturnData(v string) *PaymentData {
	p.AddData(FieldMerchantReturnData, v)
	return p
}

// SetMerchantReference sets the merchant reference for this payment. The
// maximum length is 80 characters.
func (p *PaymentData) SetMerchantReference(v string) error {
	if len(v) > maxMerchantReferenceLength {
		return &ValidationError{
			Field:  FieldMerchantReference,
			Reason: "maximum length of 80 exceeded",
		}
	}
	p.AddData(FieldMerchantReference, v)
	return nil
}

// SetRecurringContract sets the recurring contract mode for the session.
// For CVC-only payments the value ONECLICK is used.
func (p *PaymentData) SetRecurringContract(v string) *PaymentData {
	p.AddData(FieldRecurringContract, v)
	return p
}

// SetSkinCode sets the code of the hosted-page skin to render.
func (p *PaymentData) SetSkinCode(v string) *PaymentData {
	p.AddData(FieldSkinCode, v)
	return p
}

// SetPaymentAmount sets the amount in minor units, without decimal
// separator.
func (p *PaymentData) SetPaymentAmount(v int) *PaymentData {
	p.AddData(FieldPaymentAmount, v)
	return p
}

// SetCurrencyCode sets the three-letter ISO currency code, uppercased.
func (p *PaymentData) SetCurrencyCode(v string) *PaymentData {
	p.AddData(FieldCurrencyCode, strings.ToUpper(v))
	return p
}

// CalculateMerchantSig computes the merchant signature over the current
// session fields and stores it under merchantSig. The algorithm generation
// follows the key shape: 64 hex characters selects HMAC-SHA256 over the
// full sorted field set, anything else the legacy HMAC-SHA1 over the fixed
// field order.
func (p *PaymentData) CalculateMerchantSig(hmacKey string) error {
	if isSHA256Key(hmacKey) {
		sig, err := SignatureSHA256(hmacKey, p.Data())
		if err != nil {
			return err
		}
		p.AddData(FieldMerchantSig, sig)
		return nil
	}

	p.AddData(FieldMerchantSig, SignatureSHA1(hmacKey, p.Data(), hppSignatureFields))
	return nil
}
