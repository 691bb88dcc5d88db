package adyen

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Endpoint aliases the client resolves against its URL registry.
const (
	AliasAuthorise            = "authorise"
	AliasAuthorise3D          = "authorise3d"
	AliasCapture              = "capture"
	AliasRefund               = "refund"
	AliasCancel               = "cancel"
	AliasCancelOrRefund       = "cancelOrRefund"
	AliasListRecurringDetails = "listRecurringDetails"
	AliasRecurringTokenLookup = "recurringTokenLookup"
	AliasRecurringDisable     = "recurringDisable"
)

// Default test endpoints.
const (
	DefaultPaymentURL   = "https://pal-test.adyen.com/pal/servlet/Payment/v18"
	DefaultRecurringURL = "https://pal-test.adyen.com/pal/servlet/Recurring/v18"
)

// DefaultURLs maps every known alias to its test endpoint.
func DefaultURLs() map[string]string {
	return map[string]string{
		AliasAuthorise:            DefaultPaymentURL + "/authorise",
		AliasAuthorise3D:          DefaultPaymentURL + "/authorise3d",
		AliasCapture:              DefaultPaymentURL + "/capture",
		AliasRefund:               DefaultPaymentURL + "/refund",
		AliasCancel:               DefaultPaymentURL + "/cancel",
		AliasCancelOrRefund:       DefaultPaymentURL + "/cancelOrRefund",
		AliasListRecurringDetails: DefaultRecurringURL + "/listRecurringDetails",
		AliasRecurringTokenLookup: DefaultRecurringURL + "/tokenLookup",
		AliasRecurringDisable:     DefaultRecurringURL + "/disable",
	}
}

// Client talks to the recurring payment gateway: one synchronous round trip
// per operation, request entity in, typed response entity out. The endpoint
// registry is populated at startup and treated as read-only afterwards,
// which makes concurrent calls safe.
type Client struct {
	merchantAccount string
	authHeader      string

	mu   sync.RWMutex
	urls map[string]string

	transport httpTransport
}

// ClientOption adjusts client construction.
type ClientOption func(*Client)

// WithTimeout overrides the transport timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.transport = newJSONTransport(d)
	}
}

// NewClient builds a gateway client for the given merchant account. The
// basic-auth header is computed once from the webservice credentials; both
// are required.
func NewClient(merchantAccount, username, password string, opts ...ClientOption) (*Client, error) {
	if username == "" || password == "" {
		return nil, &ConfigurationError{Reason: "username and password required to compose authorization token"}
	}

	c := &Client{
		merchantAccount: merchantAccount,
		authHeader:      "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password)),
		urls:            make(map[string]string),
		transport:       newJSONTransport(defaultTimeout),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// MerchantAccount returns the configured merchant account.
func (c *Client) MerchantAccount() string {
	return c.merchantAccount
}

// RegisterURL adds an endpoint URL under an alias.
func (c *Client) RegisterURL(alias, url string) error {
	if alias == "" {
		return &ConfigurationError{Reason: "empty alias provided for URL"}
	}
	if url == "" {
		return &ConfigurationError{Reason: fmt.Sprintf("empty URL provided for alias %q", alias)}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.urls[alias] = url
	return nil
}

// URL resolves an alias to its registered endpoint URL.
func (c *Client) URL(alias string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	url, ok := c.urls[alias]
	if !ok {
		return "", &ConfigurationError{Reason: fmt.Sprintf("inexistent URL alias %q requested", alias)}
	}
	return url, nil
}

// CreateRecurringPayment charges a stored recurring detail. Transport-level
// failures are wrapped into a *GatewayError carrying the original message;
// configuration problems surface as-is.
func (c *Client) CreateRecurringPayment(ctx context.Context, req *RecurringPaymentRequest) (*RecurringPaymentResponse, error) {
	resp := NewRecurringPaymentResponse()
	if err := c.call(ctx, AliasAuthorise, req.SetMerchantAccount(c.merchantAccount).Entity, resp.Entity); err != nil {
		var confErr *ConfigurationError
		if errors.As(err, &confErr) {
			return nil, err
		}
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			return nil, err
		}
		return nil, &GatewayError{Err: err}
	}
	return resp, nil
}

// RecurringDetails lists the recurring details stored for a shopper.
func (c *Client) RecurringDetails(ctx context.Context, req *RecurringDetailsRequest) (*RecurringDetailsResponse, error) {
	resp := NewRecurringDetailsResponse()
	if err := c.call(ctx, AliasListRecurringDetails, req.SetMerchantAccount(c.merchantAccount).Entity, resp.Entity); err != nil {
		return nil, err
	}
	return resp, nil
}

// DisableRecurringDetails disables one or all recurring details for a
// shopper.
func (c *Client) DisableRecurringDetails(ctx context.Context, req *DisableRecurringDetailsRequest) (*DisableRecurringDetailsResponse, error) {
	resp := NewDisableRecurringDetailsResponse()
	if err := c.call(ctx, AliasRecurringDisable, req.SetMerchantAccount(c.merchantAccount).Entity, resp.Entity); err != nil {
		return nil, err
	}
	return resp, nil
}

// call runs one request/response round trip: resolve the alias, serialize
// the request entity as the JSON body, send, decode the reply into the
// response entity.
func (c *Client) call(ctx context.Context, alias string, req, resp *Entity) error {
	url, err := c.URL(alias)
	if err != nil {
		return err
	}

	body, err := req.JSON()
	if err != nil {
		return err
	}

	reply, err := c.transport.Send(ctx, url, body, map[string]string{
		"Authorization": c.authHeader,
	})
	if err != nil {
		return err
	}

	return resp.SetJSONData(reply)
}
