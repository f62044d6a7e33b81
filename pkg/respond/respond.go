package respond

import (
	"encoding/json"
	"net/http"
)

const SuccessMessage = "Operation completed successfully."

// Envelope wraps every API response.
type Envelope struct {
	Success    bool   `json:"success"`
	Data       any    `json:"data,omitempty"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

func JSON(w http.ResponseWriter, r *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

// OK writes a success envelope. The HTTP status may differ (201 on creation);
// the envelope statusCode is always 200.
func OK(w http.ResponseWriter, r *http.Request, code int, data any) {
	JSON(w, r, code, Envelope{
		Success:    true,
		Data:       data,
		Message:    SuccessMessage,
		StatusCode: http.StatusOK,
	})
}

func Error(w http.ResponseWriter, r *http.Request, code int, message string) {
	JSON(w, r, code, Envelope{
		Success:    false,
		Message:    message,
		StatusCode: code,
	})
}
