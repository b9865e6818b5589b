package http

import (
	"encoding/json"
	"net/http"

	"github.com/bmsedge/queuepulse/pkg/utils/apperr"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode response", "error", err)
	}
}

// writeError writes an error response with the status derived from the error tags
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	apperr.Handle(r.Context(), err)

	status := apperr.StatusCode(err)

	var message string
	if status == http.StatusInternalServerError {
		// internals stay in the log
		message = http.StatusText(status)
	} else if goErr := goerr.Unwrap(err); goErr != nil {
		message = goErr.Error()
	} else {
		message = err.Error()
	}

	writeJSON(w, r, status, map[string]string{
		"error": message,
	})
}
