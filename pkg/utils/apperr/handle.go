package apperr

import (
	"context"
	"net/http"

	"github.com/bmsedge/queuepulse/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Handle logs err once at the edge. Client mistakes are logged at warn level.
func Handle(ctx context.Context, err error) {
	logger := ctxlog.From(ctx)
	if IsClientError(err) {
		logger.Warn("request rejected", "error", err)
		return
	}
	logger.Error("application error", "error", err)
}

// IsClientError reports whether err was caused by the caller's input
func IsClientError(err error) bool {
	return StatusCode(err) < http.StatusInternalServerError
}

// StatusCode maps the error tags of err to an HTTP status code
func StatusCode(err error) int {
	switch {
	case goerr.HasTag(err, model.ErrTagInvalidInput), goerr.HasTag(err, model.ErrTagInvalidWindow):
		return http.StatusBadRequest
	case goerr.HasTag(err, model.ErrTagNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
