package http

import (
	"io"
	"net/http"

	"github.com/bmsedge/queuepulse/pkg/domain/interfaces"
	"github.com/bmsedge/queuepulse/pkg/domain/model"
	"github.com/bmsedge/queuepulse/pkg/domain/types"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
)

const maxPayloadBytes = 1 << 20

type readingHandler struct {
	ingest interfaces.Ingest
}

func (h *readingHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		writeError(w, r, goerr.Wrap(err, "failed to read request body", goerr.T(model.ErrTagInvalidInput)))
		return
	}

	reading, err := h.ingest.Submit(r.Context(), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, reading)
}

func (h *readingHandler) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	readings, err := h.ingest.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, nonNil(readings))
}

func (h *readingHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.ingest.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}

func (h *readingHandler) handlePurge(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.ingest.Purge(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]int64{"deleted": deleted})
}

func (h *readingHandler) handleLatestByCounter(w http.ResponseWriter, r *http.Request) {
	counter := types.CounterName(chi.URLParam(r, "counterName"))

	reading, err := h.ingest.LatestByCounter(r.Context(), counter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, reading)
}

func (h *readingHandler) handleLatestByDevice(w http.ResponseWriter, r *http.Request) {
	device := types.DeviceID(chi.URLParam(r, "deviceId"))

	reading, err := h.ingest.LatestByDevice(r.Context(), device)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, reading)
}

func (h *readingHandler) handleListByDevice(w http.ResponseWriter, r *http.Request) {
	device := types.DeviceID(chi.URLParam(r, "deviceId"))

	readings, err := h.ingest.ListByDevice(r.Context(), device)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, nonNil(readings))
}

// nonNil keeps empty lists encoded as [] rather than null
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
