package handler

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/mstgnz/adyenpay/adyen"
	"github.com/mstgnz/adyenpay/infra/config"
)

func newHealthFixture(t *testing.T) (*adyen.Client, *config.SQLiteStorage) {
	t.Helper()

	client, err := adyen.NewClient("TestMerchant", "ws_user", "ws_pass")
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	for alias, url := range adyen.DefaultURLs() {
		if err := client.RegisterURL(alias, url); err != nil {
			t.Fatalf("RegisterURL(%q) error = %v", alias, err)
		}
	}

	storage, err := config.NewSQLiteStorage(filepath.Join(t.TempDir(), "credentials.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStorage() error = %v", err)
	}
	t.Cleanup(func() { storage.Close() })

	return client, storage
}

func TestCheckHealth(t *testing.T) {
	client, storage := newHealthFixture(t)
	h := NewHealthHandler(client, storage)

	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()

	h.CheckHealth(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	resp := decodeResponse(t, rr)
	if !resp.Success {
		t.Fatalf("expected success, got %+v", resp)
	}

	data := resp.Data.(map[string]any)
	if data["status"] != "healthy" {
		t.Errorf("status = %v", data["status"])
	}

	gateway := data["gateway"].(map[string]any)
	if gateway["merchant_account"] != "TestMerchant" {
		t.Errorf("merchant_account = %v", gateway["merchant_account"])
	}

	endpoints := data["endpoints"].(map[string]any)
	if len(endpoints) != len(adyen.DefaultURLs()) {
		t.Errorf("expected %d endpoints, got %d", len(adyen.DefaultURLs()), len(endpoints))
	}
}

func TestCheckHealth_MissingEndpoints(t *testing.T) {
	client, err := adyen.NewClient("TestMerchant", "ws_user", "ws_pass")
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	h := NewHealthHandler(client, nil)

	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()

	h.CheckHealth(rr, req)

	// no registered authorise endpoint means the gateway cannot work
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("Expected status 503, got %d: %s", rr.Code, rr.Body.String())
	}

	resp := decodeResponse(t, rr)
	data := resp.Data.(map[string]any)
	if data["status"] != "unhealthy" {
		t.Errorf("status = %v", data["status"])
	}

	storage := data["storage"].(map[string]any)
	if storage["status"] != "not_configured" {
		t.Errorf("storage status = %v", storage["status"])
	}
}
