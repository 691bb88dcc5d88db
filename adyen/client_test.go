package adyen

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	c, err := NewClient("TestMerchant", "ws_user", "ws_pass")
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{"both present", "ws_user", "ws_pass", false},
		{"missing username", "", "ws_pass", true},
		{"missing password", "ws_user", "", true},
		{"both missing", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient("TestMerchant", tt.username, tt.password)

			if (err != nil) != tt.wantErr {
				t.Errorf("NewClient() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var confErr *ConfigurationError
				if !errors.As(err, &confErr) {
					t.Errorf("expected *ConfigurationError, got %T", err)
				}
			}
		})
	}
}

func TestClient_URLRegistry(t *testing.T) {
	c := newTestClient(t)

	if err := c.RegisterURL("", "https://example.com"); err == nil {
		t.Error("empty alias accepted")
	}
	if err := c.RegisterURL("authorise", ""); err == nil {
		t.Error("empty URL accepted")
	}

	if _, err := c.URL("authorise"); err == nil {
		t.Error("unregistered alias resolved")
	} else {
		var confErr *ConfigurationError
		if !errors.As(err, &confErr) {
			t.Errorf("expected *ConfigurationError, got %T", err)
		}
	}

	require.NoError(t, c.RegisterURL("authorise", "https://example.com/authorise"))
	url, err := c.URL("authorise")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/authorise", url)
}

func TestDefaultURLs_CoverAllAliases(t *testing.T) {
	urls := DefaultURLs()

	for _, alias := range []string{
		AliasAuthorise, AliasAuthorise3D, AliasCapture, AliasRefund,
		AliasCancel, AliasCancelOrRefund, AliasListRecurringDetails,
		AliasRecurringTokenLookup, AliasRecurringDisable,
	} {
		if urls[alias] == "" {
			t.Errorf("alias %q has no default URL", alias)
		}
	}
}

func TestClient_CreateRecurringPayment(t *testing.T) {
	var received map[string]any
	var gotAuth, gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"pspReference":"8814950120218231","resultCode":"Authorised","authCode":"83152"}`))
	}))
	defer srv.Close()

	c := newTestClient(t)
	require.NoError(t, c.RegisterURL(AliasAuthorise, srv.URL))

	req := NewRecurringPaymentRequest().
		SetAmount(19.95, "eur").
		SetReference("order-1").
		SetShopperReference("shopper-1").
		SetSelectedRecurringDetailReference("").
		SetRecurring("").
		SetShopperInteraction("")
	require.NoError(t, req.SetShopperEmail("shopper@example.com"))

	resp, err := c.CreateRecurringPayment(context.Background(), req)
	require.NoError(t, err)

	// the client stamps its own merchant account
	assert.Equal(t, "TestMerchant", received["merchantAccount"])
	assert.Equal(t, map[string]any{"value": float64(1995), "currency": "EUR"}, received["amount"])
	assert.Equal(t, "ContAuth", received["shopperInteraction"])
	assert.Equal(t, "LATEST", received["selectedRecurringDetailReference"])

	assert.Equal(t, "Basic d3NfdXNlcjp3c19wYXNz", gotAuth)
	assert.Equal(t, "application/json", gotContentType)

	assert.True(t, resp.IsAuthorised())
	assert.Equal(t, "8814950120218231", resp.PspReference())
	code, ok := resp.AuthCode()
	assert.True(t, ok)
	assert.Equal(t, 83152, code)
}

func TestClient_CreateRecurringPaymentWrapsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"errorCode":"010","message":"Not allowed"}`))
	}))
	defer srv.Close()

	c := newTestClient(t)
	require.NoError(t, c.RegisterURL(AliasAuthorise, srv.URL))

	_, err := c.CreateRecurringPayment(context.Background(), NewRecurringPaymentRequest())
	require.Error(t, err)

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)

	// the original transport detail stays reachable through the wrap
	var transErr *TransportError
	require.ErrorAs(t, err, &transErr)
	assert.Equal(t, http.StatusForbidden, transErr.StatusCode)
	assert.Contains(t, transErr.Body, "Not allowed")
}

func TestClient_CreateRecurringPaymentUnregisteredAlias(t *testing.T) {
	c := newTestClient(t)

	_, err := c.CreateRecurringPayment(context.Background(), NewRecurringPaymentRequest())
	require.Error(t, err)

	// configuration problems surface as-is, never wrapped as gateway errors
	var confErr *ConfigurationError
	require.ErrorAs(t, err, &confErr)
	var gwErr *GatewayError
	assert.False(t, errors.As(err, &gwErr))
}

func TestClient_CreateRecurringPaymentMalformedReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>proxy error</html>"))
	}))
	defer srv.Close()

	c := newTestClient(t)
	require.NoError(t, c.RegisterURL(AliasAuthorise, srv.URL))

	_, err := c.CreateRecurringPayment(context.Background(), NewRecurringPaymentRequest())
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestClient_RecurringDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "TestMerchant", body["merchantAccount"])
		assert.Equal(t, "shopper-1", body["shopperReference"])

		_, _ = w.Write([]byte(`{
			"shopperReference": "shopper-1",
			"details": [{"RecurringDetail": {"recurringDetailReference": "8415995487234100"}}]
		}`))
	}))
	defer srv.Close()

	c := newTestClient(t)
	require.NoError(t, c.RegisterURL(AliasListRecurringDetails, srv.URL))

	resp, err := c.RecurringDetails(context.Background(),
		NewRecurringDetailsRequest().SetShopperReference("shopper-1").SetRecurring(""))
	require.NoError(t, err)

	details := resp.RecurringDetails()
	require.Len(t, details, 1)
	assert.Equal(t, "8415995487234100", details[0].RecurringDetailReference())
}

func TestClient_DisableRecurringDetails(t *testing.T) {
	tests := []struct {
		name            string
		detailReference string
		reply           string
		wantField       bool
		wantSuccess     bool
	}{
		{
			name:            "single detail",
			detailReference: "8415995487234100",
			reply:           `{"response": "[detail-successfully-disabled]"}`,
			wantField:       true,
			wantSuccess:     true,
		},
		{
			name:            "all details",
			detailReference: "",
			reply:           `{"response": "[all-details-successfully-disabled]"}`,
			wantField:       false,
			wantSuccess:     true,
		},
		{
			name:            "gateway refuses",
			detailReference: "8415995487234100",
			reply:           `{"response": "[detail-not-found]"}`,
			wantField:       true,
			wantSuccess:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var body map[string]any
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				_, hasField := body["recurringDetailReference"]
				assert.Equal(t, tt.wantField, hasField)
				_, _ = w.Write([]byte(tt.reply))
			}))
			defer srv.Close()

			c := newTestClient(t)
			require.NoError(t, c.RegisterURL(AliasRecurringDisable, srv.URL))

			resp, err := c.DisableRecurringDetails(context.Background(),
				NewDisableRecurringDetailsRequest().
					SetShopperReference("shopper-1").
					SetRecurringDetailReference(tt.detailReference))
			require.NoError(t, err)
			assert.Equal(t, tt.wantSuccess, resp.IsSuccessful())
		})
	}
}

func TestClient_TransportErrorSurfacesDirectlyOutsidePaymentCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("unauthorized"))
	}))
	defer srv.Close()

	c := newTestClient(t)
	require.NoError(t, c.RegisterURL(AliasListRecurringDetails, srv.URL))

	_, err := c.RecurringDetails(context.Background(), NewRecurringDetailsRequest())
	require.Error(t, err)

	var transErr *TransportError
	require.ErrorAs(t, err, &transErr)
	assert.Equal(t, http.StatusUnauthorized, transErr.StatusCode)
	var gwErr *GatewayError
	assert.False(t, errors.As(err, &gwErr))
}
