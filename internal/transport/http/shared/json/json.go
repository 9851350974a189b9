// Package json writes API responses. All consent endpoints speak JSON, so
// the single helper here is the only place a response body is produced.
package json

import (
	"encoding/json"
	"net/http"
)

// WriteJSON marshals payload and writes it with the given status. Marshaling
// happens before the header is committed, so an encoding failure still yields
// a clean 500 instead of a truncated body under an already-sent status.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"internal_error","error_description":"failed to encode response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}
