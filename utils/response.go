package utils

import (
	"encoding/json"
	"net/http"
)

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// SendResponse wraps data in the success envelope all handlers share.
func SendResponse(w http.ResponseWriter, status int, data any, message string) {
	resp := map[string]any{
		"success": true,
		"data":    data,
	}
	if message != "" {
		resp["message"] = message
	}
	RespondWithJSON(w, status, resp)
}

// SendError wraps a failure in the shared error envelope. err may be nil when
// the message alone explains the failure.
func SendError(w http.ResponseWriter, status int, message string, err error) {
	resp := map[string]any{
		"success": false,
		"message": message,
	}
	if err != nil {
		resp["error"] = err.Error()
	}
	RespondWithJSON(w, status, resp)
}

type M map[string]interface{}
