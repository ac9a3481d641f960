package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shifo-uz/clinicbackend/apperrors"
)

// envelope is the uniform response body: success flag, human message, and an
// optional data payload.
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := envelope{Success: status < 400, Message: message, Data: data}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("handlers: error encoding response: %v", err)
	}
}

// writeError maps an error to its HTTP status and client-safe message.
// Internal causes are logged server-side, never sent to the client.
func writeError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("handlers: internal error: %v", err)
	}
	writeJSON(w, status, apperrors.ClientMessage(err), nil)
}

// idParam parses the {id} URL parameter.
func idParam(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.Validationf("invalid id %q", raw)
	}
	return uint(id), nil
}
