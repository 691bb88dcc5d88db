package response

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// Response is a standardized API response structure
type Response struct {
	Code      int    `json:"code"`
	Success   bool   `json:"success"`
	RequestID string `json:"requestId,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	Data      any    `json:"data,omitempty"`
}

// Success writes a successful response with data
func Success(w http.ResponseWriter, r *http.Request, statusCode int, message string, data any) {
	resp := Response{
		Code:      statusCode,
		Success:   true,
		RequestID: middleware.GetReqID(r.Context()),
		Message:   message,
		Data:      data,
	}
	WriteJSON(w, statusCode, resp)
}

// Error writes an error response
func Error(w http.ResponseWriter, r *http.Request, statusCode int, message string, err error) {
	resp := Response{
		Code:      statusCode,
		Success:   false,
		RequestID: middleware.GetReqID(r.Context()),
		Message:   message,
	}

	if err != nil {
		resp.Error = err.Error()
	}

	WriteJSON(w, statusCode, resp)
}

// WriteJSON serializes v as the response body with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}
