package adyen

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestPaymentData_SetAmountProxies(t *testing.T) {
	p := NewPaymentData().SetAmount(19.95, "eur")

	if got := p.GetData(FieldPaymentAmount); got != 1995 {
		t.Errorf("paymentAmount = %v, want 1995", got)
	}
	if got := p.GetData(FieldCurrencyCode); got != "EUR" {
		t.Errorf("currencyCode = %v, want EUR", got)
	}
	// the nested server-to-server amount object must not appear
	if p.HasData(FieldAmount) {
		t.Error("hosted-page flow must not store the nested amount object")
	}
}

func TestPaymentData_SetRecurringProxies(t *testing.T) {
	p := NewPaymentData().SetRecurring("")

	if got := p.GetData(FieldRecurringContract); got != ContractRecurring {
		t.Errorf("recurringContract = %v, want %s", got, ContractRecurring)
	}
	if p.HasData(FieldRecurring) {
		t.Error("hosted-page flow must not store the recurring sub-object")
	}
}

func TestPaymentData_SetShopperInteractionIsNoop(t *testing.T) {
	p := NewPaymentData()
	p.SetShopperInteraction(ShopperInteractionContAuth)

	if p.HasData(FieldShopperInteraction) {
		t.Error("shopperInteraction is not applicable to the hosted-page flow")
	}
}

func TestPaymentData_SetMerchantReferenceBoundary(t *testing.T) {
	p := NewPaymentData()

	ref80 := strings.Repeat("x", 80)
	if err := p.SetMerchantReference(ref80); err != nil {
		t.Fatalf("80-character reference rejected: %v", err)
	}
	if got := p.GetData(FieldMerchantReference); got != ref80 {
		t.Error("80-character reference not stored")
	}

	err := p.SetMerchantReference(strings.Repeat("x", 81))
	if err == nil {
		t.Fatal("81-character reference accepted")
	}
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Errorf("expected *ValidationError, got %T", err)
	}
	if got := p.GetData(FieldMerchantReference); got != ref80 {
		t.Error("rejected reference overwrote the stored one")
	}
}

func TestPaymentData_SessionValidity(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	p := NewPaymentData().SetSessionValidity(base)

	if got := p.sessionValidity(); got != "2026-01-01T12:00:00Z" {
		t.Errorf("sessionValidity = %s", got)
	}

	p.IncreaseSessionValidity(0) // default: one day
	got, err := time.Parse(time.RFC3339, p.sessionValidity())
	if err != nil {
		t.Fatalf("stored session validity unparseable: %v", err)
	}
	if want := base.Add(24 * time.Hour); !got.Equal(want) {
		t.Errorf("IncreaseSessionValidity() = %v, want %v", got, want)
	}
}

func TestPaymentData_IncreaseSessionValidityFromNow(t *testing.T) {
	// no stored value: the extension counts from now
	p := NewPaymentData().IncreaseSessionValidity(2 * time.Hour)

	got, err := time.Parse(time.RFC3339, p.sessionValidity())
	if err != nil {
		t.Fatalf("stored session validity unparseable: %v", err)
	}
	if d := time.Until(got); d < time.Hour || d > 3*time.Hour {
		t.Errorf("expected roughly two hours from now, got %v", d)
	}
}

func TestPaymentData_ShipBeforeDate(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	p := NewPaymentData().SetShipBeforeDate(base)

	if got := p.shipBeforeDate(); got != "2026-01-01" {
		t.Errorf("shipBeforeDate = %s", got)
	}

	p.IncreaseShipBeforeDate(0) // default: seven days
	if got := p.shipBeforeDate(); got != "2026-01-08" {
		t.Errorf("IncreaseShipBeforeDate() = %s, want 2026-01-08", got)
	}
}

func TestPaymentData_SetOrderData(t *testing.T) {
	const html = "<p>2 tickets, row 4 — Спасибо 谢谢</p>"
	p := NewPaymentData().SetOrderData(html)

	stored, ok := p.GetData(FieldOrderData).(string)
	if !ok {
		t.Fatal("orderData not stored as a string")
	}

	compressed, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		t.Fatalf("orderData is not valid base64: %v", err)
	}
	zr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		t.Fatalf("orderData is not gzip: %v", err)
	}
	plain, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("decompressing orderData: %v", err)
	}
	if string(plain) != html {
		t.Errorf("orderData round trip = %q, want %q", plain, html)
	}
}

func TestPaymentData_CalculateMerchantSigSHA1(t *testing.T) {
	p := paymentDataFixture(t)

	if err := p.CalculateMerchantSig(testRawKey); err != nil {
		t.Fatalf("CalculateMerchantSig() error = %v", err)
	}
	if got := p.getString(FieldMerchantSig); got != "i/XQJ8sYj11Kof3H7P4RKxPjBUc=" {
		t.Errorf("merchantSig = %s", got)
	}
}

func TestPaymentData_CalculateMerchantSigSHA256(t *testing.T) {
	p := paymentDataFixture(t)

	// the signing path covers the full field set, nulls included
	want, err := SignatureSHA256(testHexKey, p.Data())
	if err != nil {
		t.Fatalf("SignatureSHA256() error = %v", err)
	}

	if err := p.CalculateMerchantSig(testHexKey); err != nil {
		t.Fatalf("CalculateMerchantSig() error = %v", err)
	}
	if got := p.getString(FieldMerchantSig); got != want {
		t.Errorf("merchantSig = %s, want %s", got, want)
	}
}

// paymentDataFixture builds the session used by the signature reference
// vectors, with string-typed amounts matching the wire form.
func paymentDataFixture(t *testing.T) *PaymentData {
	t.Helper()

	p := NewPaymentData().
		SetSkinCode("4aD37dJA").
		SetRecurring(ContractRecurring)
	p.SetMerchantAccount("TestMerchant")
	p.SetShopperReference("shopper-1")
	p.AddData(FieldPaymentAmount, "1995")
	p.AddData(FieldCurrencyCode, "EUR")
	p.AddData(FieldSessionValidity, "2026-01-01T12:00:00+00:00")
	p.AddData(FieldShipBeforeDate, "2026-01-08")
	if err := p.SetMerchantReference("order-1"); err != nil {
		t.Fatal(err)
	}
	if err := p.SetShopperEmail("shopper@example.com"); err != nil {
		t.Fatal(err)
	}
	return p
}
