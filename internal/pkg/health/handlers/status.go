package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// StatusFunc returns the current status payload. The concrete type lives in
// the health package; handlers only marshal whatever it hands over.
type StatusFunc func() any

var statusFunc StatusFunc

// SetStatusFunc sets the function that produces the status payload.
func SetStatusFunc(fn StatusFunc) {
	statusFunc = fn
}

// HandleStatus handles the /status endpoint with the current and last run.
func HandleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	var payload any
	if statusFunc != nil {
		payload = statusFunc()
	}

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, fmt.Sprintf("Failed to encode status: %v", err), http.StatusInternalServerError)
	}
}
