package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	controller "github.com/bmsedge/queuepulse/pkg/controller/http"
	"github.com/bmsedge/queuepulse/pkg/domain/interfaces/mocks"
	"github.com/bmsedge/queuepulse/pkg/domain/model"
	"github.com/bmsedge/queuepulse/pkg/repository"
	"github.com/bmsedge/queuepulse/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

var nineAM = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func utcShifts() *model.ShiftsConfig {
	cfg := model.DefaultShiftsConfig()
	cfg.Timezone = "UTC"
	return cfg
}

// newTestServer wires the HTTP surface over a memory repository. Submitted
// readings are stamped one minute apart starting at nineAM.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	repo := repository.NewMemory(utcShifts())
	now := nineAM.Add(-time.Minute)
	ingestUC := usecase.NewIngest(repo, usecase.NewIngestConfig(usecase.WithClock(func() time.Time {
		now = now.Add(time.Minute)
		return now
	})))
	congestionUC := usecase.NewCongestion(repo, repo, time.UTC)

	server, err := controller.NewServer(ctx,
		controller.NewConfig(":0", time.UTC),
		controller.NewUseCases(congestionUC, ingestUC),
		nil,
	)
	gt.NoError(t, err).Required()

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func postReading(t *testing.T, ts *httptest.Server, counter string, wait float64) *http.Response {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"device_id":                    "dev-01",
		"counter_name":                 counter,
		counter + "_occupancy":         3,
		counter + "_incount":           10,
		counter + "_waiting_time_min": wait,
	})
	gt.NoError(t, err).Required()

	resp, err := http.Post(ts.URL+"/api/readings", "application/json", bytes.NewReader(body))
	gt.NoError(t, err).Required()
	return resp
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	gt.NoError(t, err).Required()
	defer resp.Body.Close()
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(v)).Required()
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	var body map[string]string
	gt.Equal(t, getJSON(t, ts.URL+"/health", &body), http.StatusOK)
	gt.Equal(t, body["status"], "healthy")
}

func TestReadingsAPI(t *testing.T) {
	ts := newTestServer(t)

	t.Run("submit", func(t *testing.T) {
		resp := postReading(t, ts, "Grill", 5)
		defer resp.Body.Close()
		gt.Equal(t, resp.StatusCode, http.StatusCreated)

		var reading model.Reading
		gt.NoError(t, json.NewDecoder(resp.Body).Decode(&reading)).Required()
		gt.Equal(t, reading.CounterName.String(), "Grill")
		gt.Equal(t, reading.WaitTimeMinutes, 5.0)
		gt.True(t, reading.Timestamp.Equal(nineAM))
	})

	t.Run("submit rejects malformed payload", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/api/readings", "application/json", bytes.NewBufferString("{"))
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Equal(t, resp.StatusCode, http.StatusBadRequest)

		var body map[string]string
		gt.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		gt.True(t, body["error"] != "")
	})

	t.Run("latest by counter", func(t *testing.T) {
		resp := postReading(t, ts, "Grill", 9)
		resp.Body.Close()

		var reading model.Reading
		gt.Equal(t, getJSON(t, ts.URL+"/api/readings/counters/Grill/latest", &reading), http.StatusOK)
		gt.Equal(t, reading.WaitTimeMinutes, 9.0)
	})

	t.Run("unknown counter is 404", func(t *testing.T) {
		var body map[string]string
		gt.Equal(t, getJSON(t, ts.URL+"/api/readings/counters/Nobody/latest", &body), http.StatusNotFound)
	})

	t.Run("device endpoints", func(t *testing.T) {
		var list []model.Reading
		gt.Equal(t, getJSON(t, ts.URL+"/api/readings/devices/dev-01", &list), http.StatusOK)
		gt.Equal(t, len(list), 2)

		var reading model.Reading
		gt.Equal(t, getJSON(t, ts.URL+"/api/readings/devices/dev-01/latest", &reading), http.StatusOK)
		gt.Equal(t, reading.ID, list[0].ID)
	})

	t.Run("recent", func(t *testing.T) {
		var list []model.Reading
		gt.Equal(t, getJSON(t, ts.URL+"/api/readings/recent?limit=1", &list), http.StatusOK)
		gt.Equal(t, len(list), 1)

		var body map[string]string
		gt.Equal(t, getJSON(t, ts.URL+"/api/readings/recent?limit=abc", &body), http.StatusBadRequest)
	})

	t.Run("stats", func(t *testing.T) {
		var stats model.ReadingStats
		gt.Equal(t, getJSON(t, ts.URL+"/api/readings/stats", &stats), http.StatusOK)
		gt.Equal(t, stats.TotalReadings, int64(2))
	})

	t.Run("purge", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/readings", nil)
		gt.NoError(t, err).Required()
		resp, err := http.DefaultClient.Do(req)
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Equal(t, resp.StatusCode, http.StatusOK)

		var body map[string]int64
		gt.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		gt.Equal(t, body["deleted"], int64(2))

		var list []model.Reading
		gt.Equal(t, getJSON(t, ts.URL+"/api/readings/recent", &list), http.StatusOK)
		gt.Equal(t, len(list), 0)
	})
}

func TestCongestionAPI(t *testing.T) {
	ts := newTestServer(t)
	for _, wait := range []float64{1, 4, 4, 6, 0, 13} {
		resp := postReading(t, ts, "C1", wait)
		resp.Body.Close()
		gt.Equal(t, resp.StatusCode, http.StatusCreated)
	}

	t.Run("daily", func(t *testing.T) {
		var results []map[string]any
		gt.Equal(t, getJSON(t, ts.URL+"/api/congestion/daily?date=2025-03-14", &results), http.StatusOK)
		gt.Equal(t, len(results), 1)
		gt.Equal(t, results[0]["counterName"], any("C1"))

		peak, ok := results[0]["peakCongestion"].(map[string]any)
		gt.True(t, ok)
		gt.Equal(t, peak["level"], any("Extreme"))
		gt.Equal(t, peak["peakWaitTimeInBlock"], any(13.0))
	})

	t.Run("daily on an empty day", func(t *testing.T) {
		var results []map[string]any
		gt.Equal(t, getJSON(t, ts.URL+"/api/congestion/daily?date=2025-03-15", &results), http.StatusOK)
		gt.Equal(t, len(results), 0)
	})

	t.Run("window with local times", func(t *testing.T) {
		var results []map[string]any
		url := ts.URL + "/api/congestion/window?from=2025-03-14T09:00:00&to=2025-03-14T09:04:00"
		gt.Equal(t, getJSON(t, url, &results), http.StatusOK)
		gt.Equal(t, len(results), 1)

		peak := results[0]["peakCongestion"].(map[string]any)
		gt.Equal(t, peak["level"], any("Critical"))
	})

	t.Run("session", func(t *testing.T) {
		var results []model.SessionCongestion
		url := ts.URL + "/api/congestion/session?from=2025-03-14T09:00:00Z&to=2025-03-14T09:05:00Z"
		gt.Equal(t, getJSON(t, url, &results), http.StatusOK)
		gt.Equal(t, len(results), 1)
		gt.Equal(t, results[0].SessionMinutes, int64(5))
		gt.Equal(t, results[0].WeightedCongestionIndex, 4.0)
	})

	t.Run("bad parameters", func(t *testing.T) {
		testCases := []struct {
			name string
			path string
		}{
			{name: "bad date", path: "/api/congestion/daily?date=14-03-2025"},
			{name: "missing to", path: "/api/congestion/window?from=2025-03-14T09:00:00Z"},
			{name: "reversed window", path: "/api/congestion/window?from=2025-03-14T10:00:00Z&to=2025-03-14T09:00:00Z"},
			{name: "zero length session", path: "/api/congestion/session?from=2025-03-14T09:00:00Z&to=2025-03-14T09:00:00Z"},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				var body map[string]string
				gt.Equal(t, getJSON(t, ts.URL+tc.path, &body), http.StatusBadRequest)
				gt.True(t, body["error"] != "")
			})
		}
	})
}

func TestInternalErrorsAreHidden(t *testing.T) {
	repo := &mocks.RepositoryMock{
		StatsFunc: func(ctx context.Context) (*model.ReadingStats, error) {
			return nil, goerr.New("secret connection string leaked")
		},
	}
	server, err := controller.NewServer(context.Background(),
		controller.NewConfig(":0", time.UTC),
		controller.NewUseCases(usecase.NewCongestion(repo, repo, time.UTC), usecase.NewIngest(repo, nil)),
		nil,
	)
	gt.NoError(t, err).Required()

	ts := httptest.NewServer(server.Handler)
	defer ts.Close()

	var body map[string]string
	gt.Equal(t, getJSON(t, ts.URL+"/api/readings/stats", &body), http.StatusInternalServerError)
	gt.Equal(t, body["error"], http.StatusText(http.StatusInternalServerError))
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/readings", nil)
	gt.NoError(t, err).Required()
	resp, err := http.DefaultClient.Do(req)
	gt.NoError(t, err).Required()
	defer resp.Body.Close()

	gt.Equal(t, resp.StatusCode, http.StatusNoContent)
	gt.Equal(t, resp.Header.Get("Access-Control-Allow-Origin"), "*")
}
