package http

import (
	"net/http"
	"time"

	"github.com/bmsedge/queuepulse/pkg/domain/interfaces"
)

type congestionHandler struct {
	congestion interfaces.Congestion
	loc        *time.Location
}

func (h *congestionHandler) handleDaily(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(r.URL.Query().Get("date"), h.loc, time.Now())
	if err != nil {
		writeError(w, r, err)
		return
	}

	results, err := h.congestion.AggregateForDay(r.Context(), date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, nonNil(results))
}

func (h *congestionHandler) handleWindow(w http.ResponseWriter, r *http.Request) {
	from, to, err := h.parseWindow(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	results, err := h.congestion.AggregateForWindow(r.Context(), from, to)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, nonNil(results))
}

func (h *congestionHandler) handleSession(w http.ResponseWriter, r *http.Request) {
	from, to, err := h.parseWindow(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	results, err := h.congestion.ComputeSessionCongestion(r.Context(), from, to)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, nonNil(results))
}

func (h *congestionHandler) parseWindow(r *http.Request) (time.Time, time.Time, error) {
	q := r.URL.Query()
	from, err := parseTime("from", q.Get("from"), h.loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseTime("to", q.Get("to"), h.loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}
