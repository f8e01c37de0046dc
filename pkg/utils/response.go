package utils

import (
	"encoding/json"
	"net/http"

	"carwash-backend/internal/apperr"
)

// JSON writes data as an application/json response.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		w.Write([]byte("null"))
		return
	}
	json.NewEncoder(w).Encode(data)
}

// Error writes err as a JSON {"error": ...} body with its mapped status.
func Error(w http.ResponseWriter, err error) {
	ErrorMessage(w, apperr.Status(err), apperr.Message(err))
}

// ErrorMessage writes an explicit error body.
func ErrorMessage(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}
