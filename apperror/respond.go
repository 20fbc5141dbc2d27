package apperror

import (
	"encoding/json"
	"log"
	"net/http"
)

// WriteJSON serializes data to the response with the given status. A nil data
// value writes headers only, avoiding a literal "null" body.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// The status line is already on the wire; logging is all
			// that is left.
			log.Printf("encoding response: %v", err)
		}
	}
}

// WriteError writes a standardized error response. Errors that are not
// already an *AppError are wrapped as InternalError so clients always see the
// same response shape and never the raw cause.
func WriteError(w http.ResponseWriter, err error) {
	appErr, ok := FromError(err)
	if !ok {
		appErr = NewInternalError("an unexpected error occurred", err)
	}
	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
