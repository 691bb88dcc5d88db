package handler

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/mstgnz/adyenpay/adyen"
	"github.com/mstgnz/adyenpay/infra/config"
	"github.com/mstgnz/adyenpay/infra/response"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	client    *adyen.Client
	storage   *config.SQLiteStorage
	startTime time.Time
}

// HealthStatus represents overall system health
type HealthStatus struct {
	Status      string            `json:"status"`
	Version     string            `json:"version"`
	Timestamp   time.Time         `json:"timestamp"`
	Uptime      string            `json:"uptime"`
	Environment string            `json:"environment"`
	Gateway     *GatewayHealth    `json:"gateway"`
	Storage     *StorageHealth    `json:"storage"`
	System      *SystemHealth     `json:"system"`
	Endpoints   map[string]string `json:"endpoints"`
}

// GatewayHealth represents gateway client health
type GatewayHealth struct {
	Status          string `json:"status"`
	MerchantAccount string `json:"merchant_account"`
	Configured      bool   `json:"configured"`
	Error           string `json:"error,omitempty"`
}

// StorageHealth represents credential storage health
type StorageHealth struct {
	Status           string `json:"status"`
	TotalCredentials int    `json:"total_credentials"`
	DBSizeBytes      int64  `json:"db_size_bytes,omitempty"`
	Error            string `json:"error,omitempty"`
}

// SystemHealth represents system resource health
type SystemHealth struct {
	Memory     *MemoryHealth `json:"memory"`
	GoRoutines int           `json:"goroutines"`
}

// MemoryHealth represents memory usage
type MemoryHealth struct {
	Alloc      string `json:"alloc"`
	TotalAlloc string `json:"total_alloc"`
	Sys        string `json:"sys"`
	GCRuns     uint32 `json:"gc_runs"`
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(client *adyen.Client, storage *config.SQLiteStorage) *HealthHandler {
	return &HealthHandler{
		client:    client,
		storage:   storage,
		startTime: time.Now(),
	}
}

// CheckHealth performs health checks on the gateway client and its storage
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	health := &HealthStatus{
		Version:     "1.0.0",
		Timestamp:   time.Now().UTC(),
		Uptime:      time.Since(h.startTime).String(),
		Environment: config.GetEnv("ADYEN_ENVIRONMENT", "test"),
		Gateway:     h.checkGatewayHealth(),
		Storage:     h.checkStorageHealth(),
		System:      h.checkSystemHealth(),
		Endpoints:   h.registeredEndpoints(),
	}

	health.Status = "healthy"
	if health.Gateway.Status == "unhealthy" || health.Storage.Status == "unhealthy" {
		health.Status = "unhealthy"
	}

	statusCode := http.StatusOK
	if health.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	response.WriteJSON(w, statusCode, response.Response{
		Code:    statusCode,
		Success: health.Status != "unhealthy",
		Message: fmt.Sprintf("Service is %s", health.Status),
		Data:    health,
	})
}

// checkGatewayHealth checks the gateway client configuration
func (h *HealthHandler) checkGatewayHealth() *GatewayHealth {
	gw := &GatewayHealth{}

	if h.client == nil {
		gw.Status = "unhealthy"
		gw.Error = "gateway client not initialized"
		return gw
	}

	gw.MerchantAccount = h.client.MerchantAccount()
	gw.Configured = gw.MerchantAccount != ""
	if _, err := h.client.URL(adyen.AliasAuthorise); err != nil {
		gw.Status = "unhealthy"
		gw.Error = err.Error()
		return gw
	}

	gw.Status = "healthy"
	return gw
}

// checkStorageHealth checks the credential storage
func (h *HealthHandler) checkStorageHealth() *StorageHealth {
	storage := &StorageHealth{}

	if h.storage == nil {
		storage.Status = "not_configured"
		return storage
	}

	stats, err := h.storage.GetStats()
	if err != nil {
		storage.Status = "unhealthy"
		storage.Error = err.Error()
		return storage
	}

	if total, ok := stats["total_credentials"].(int); ok {
		storage.TotalCredentials = total
	}
	if size, ok := stats["db_size_bytes"].(int64); ok {
		storage.DBSizeBytes = size
	}
	storage.Status = "healthy"
	return storage
}

// checkSystemHealth checks system resource health
func (h *HealthHandler) checkSystemHealth() *SystemHealth {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return &SystemHealth{
		Memory: &MemoryHealth{
			Alloc:      formatBytes(memStats.Alloc),
			TotalAlloc: formatBytes(memStats.TotalAlloc),
			Sys:        formatBytes(memStats.Sys),
			GCRuns:     memStats.NumGC,
		},
		GoRoutines: runtime.NumGoroutine(),
	}
}

// registeredEndpoints reports the resolvable endpoint aliases
func (h *HealthHandler) registeredEndpoints() map[string]string {
	endpoints := make(map[string]string)
	if h.client == nil {
		return endpoints
	}

	for alias := range adyen.DefaultURLs() {
		if url, err := h.client.URL(alias); err == nil {
			endpoints[alias] = url
		}
	}
	return endpoints
}

func formatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
