package adyen

import "fmt"

// ValidationError reports malformed or oversized input handed to an entity
// setter. It is returned synchronously from the setter, never deferred to
// send time.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("adyen: invalid %s: %s", e.Field, e.Reason)
}

// ConfigurationError reports missing credentials or an unusable endpoint
// registry entry. It is fatal to the specific call.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "adyen: " + e.Reason
}

// TransportError reports a non-200 gateway reply. It carries the received
// status code and the raw body text for diagnosis.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("adyen: gateway returned HTTP %d: %s", e.StatusCode, e.Body)
}

// ParseError reports a reply body that could not be decoded as JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("adyen: malformed gateway reply: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SignatureMismatchError reports a merchant signature that did not match the
// value recomputed from the received fields. It implies a possibly forged
// callback and must never be downgraded to a log line.
type SignatureMismatchError struct {
	Expected string
	Received string
}

func (e *SignatureMismatchError) Error() string {
	return fmt.Sprintf("adyen: merchant signature mismatch: computed %q, received %q", e.Expected, e.Received)
}

// GatewayError wraps a transport-level failure of the recurring payment
// operation, carrying the original message.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("adyen: recurring payment failed: %v", e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }
