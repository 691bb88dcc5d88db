package adyen

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

// httpTransport is the blocking send(url, body, headers) capability the
// client is built on. It owns the timeout; the core above it never retries
// or cancels.
type httpTransport interface {
	Send(ctx context.Context, url string, body []byte, headers map[string]string) ([]byte, error)
}

// jsonTransport posts JSON bodies over net/http.
type jsonTransport struct {
	client *http.Client
}

func newJSONTransport(timeout time.Duration) *jsonTransport {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &jsonTransport{
		client: &http.Client{Timeout: timeout},
	}
}

// Send posts body to url with Content-Type application/json plus the given
// extra headers and returns the reply bytes. Any status other than 200
// fails with a *TransportError carrying the status and raw body text.
func (t *jsonTransport) Send(ctx context.Context, url string, body []byte, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}
