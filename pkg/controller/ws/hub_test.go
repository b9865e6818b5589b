package ws_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bmsedge/queuepulse/pkg/controller/ws"
	"github.com/bmsedge/queuepulse/pkg/domain/model"
	"github.com/bmsedge/queuepulse/pkg/domain/types"
	"github.com/gorilla/websocket"
	"github.com/m-mizutani/gt"
)

// startHub serves a hub over httptest and returns its ws:// URL
func startHub(t *testing.T) (string, *ws.Hub, context.CancelFunc) {
	t.Helper()

	hub := ws.New()
	ctx, cancel := context.WithCancel(context.Background())
	srv := httptest.NewServer(hub)
	go hub.Run(ctx)

	t.Cleanup(func() {
		cancel()
		srv.Close()
	})

	return "ws" + strings.TrimPrefix(srv.URL, "http"), hub, cancel
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	gt.NoError(t, err).Required()
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) ws.Message {
	t.Helper()
	gt.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	gt.NoError(t, err).Required()

	var msg ws.Message
	gt.NoError(t, json.Unmarshal(raw, &msg)).Required()
	return msg
}

func waitForCount(t *testing.T, hub *ws.Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.Count() == n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("client count did not reach %d, got %d", n, hub.Count())
}

func TestHub_Connect(t *testing.T) {
	url, hub, _ := startHub(t)

	conn := dial(t, url)
	msg := readMessage(t, conn)
	gt.Equal(t, msg.Event, ws.EventConnected)
	waitForCount(t, hub, 1)
}

func TestHub_Broadcast(t *testing.T) {
	url, hub, _ := startHub(t)

	conns := []*websocket.Conn{dial(t, url), dial(t, url)}
	for _, c := range conns {
		readMessage(t, c)
	}
	waitForCount(t, hub, 2)

	payload := map[string]any{"counterName": "Grill", "waitTimeMinutes": 5}
	gt.NoError(t, hub.Broadcast(context.Background(), "reading", payload))

	for _, c := range conns {
		msg := readMessage(t, c)
		gt.Equal(t, msg.Event, "reading")
		data, ok := msg.Data.(map[string]any)
		gt.True(t, ok)
		gt.Equal(t, data["counterName"], any("Grill"))
		gt.Equal(t, data["waitTimeMinutes"], any(5.0))
	}
}

func TestHub_Broadcast_NoClients(t *testing.T) {
	_, hub, _ := startHub(t)
	gt.NoError(t, hub.Broadcast(context.Background(), "reading", nil))
}

func TestHub_Disconnect(t *testing.T) {
	url, hub, _ := startHub(t)

	conn := dial(t, url)
	readMessage(t, conn)
	waitForCount(t, hub, 1)

	gt.NoError(t, conn.Close())
	waitForCount(t, hub, 0)
}

func TestHub_SlowClientIsDropped(t *testing.T) {
	url, hub, _ := startHub(t)

	// never reads after connecting, so its buffer fills up
	conn := dial(t, url)
	readMessage(t, conn)
	waitForCount(t, hub, 1)

	big := strings.Repeat("x", 256*1024)
	for i := 0; i < 200 && hub.Count() > 0; i++ {
		gt.NoError(t, hub.Broadcast(context.Background(), "reading", big))
	}
	gt.Equal(t, hub.Count(), 0)
}

func TestHub_RunClosesClients(t *testing.T) {
	url, hub, cancel := startHub(t)

	conn := dial(t, url)
	readMessage(t, conn)
	waitForCount(t, hub, 1)

	cancel()
	waitForCount(t, hub, 0)

	gt.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	gt.Error(t, err)

	gt.Error(t, hub.Broadcast(context.Background(), "reading", nil))
}

var _ ws.Scoped = (*model.Reading)(nil)

func reading(device, counter string) *model.Reading {
	return &model.Reading{
		ID:              "0190f5d2-7c1e-7000-8000-000000000001",
		DeviceID:        types.DeviceID(device),
		CounterName:     types.CounterName(counter),
		WaitTimeMinutes: 5,
		Timestamp:       time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
	}
}

func readReading(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	msg := readMessage(t, conn)
	gt.Equal(t, msg.Event, "reading")
	data, ok := msg.Data.(map[string]any)
	gt.True(t, ok)
	return data
}

func TestHub_ScopedSubscriptions(t *testing.T) {
	url, hub, _ := startHub(t)

	all := dial(t, url)
	grill := dial(t, url+"?counter=Grill")
	dev2 := dial(t, url+"?device=dev-02")
	both := dial(t, url+"?device=dev-01&counter=Grill")

	connected := readMessage(t, grill)
	gt.Equal(t, connected.Event, ws.EventConnected)
	filter := connected.Data.(map[string]any)["filter"].(map[string]any)
	gt.Equal(t, filter["counter"], any("Grill"))
	for _, c := range []*websocket.Conn{all, dev2, both} {
		readMessage(t, c)
	}
	waitForCount(t, hub, 4)

	ctx := context.Background()
	gt.NoError(t, hub.Broadcast(ctx, "reading", reading("dev-02", "Tandoor")))
	gt.NoError(t, hub.Broadcast(ctx, "reading", reading("dev-01", "Grill")))
	gt.NoError(t, hub.Broadcast(ctx, "reading", reading("dev-02", "Grill")))

	t.Run("unscoped client receives every reading", func(t *testing.T) {
		gt.Equal(t, readReading(t, all)["counterName"], any("Tandoor"))
		gt.Equal(t, readReading(t, all)["counterName"], any("Grill"))
		gt.Equal(t, readReading(t, all)["deviceId"], any("dev-02"))
	})

	t.Run("counter scope skips other counters", func(t *testing.T) {
		first := readReading(t, grill)
		gt.Equal(t, first["counterName"], any("Grill"))
		gt.Equal(t, first["deviceId"], any("dev-01"))
		gt.Equal(t, readReading(t, grill)["deviceId"], any("dev-02"))
	})

	t.Run("device scope skips other devices", func(t *testing.T) {
		gt.Equal(t, readReading(t, dev2)["counterName"], any("Tandoor"))
		second := readReading(t, dev2)
		gt.Equal(t, second["counterName"], any("Grill"))
		gt.Equal(t, second["deviceId"], any("dev-02"))
	})

	t.Run("device and counter must both match", func(t *testing.T) {
		data := readReading(t, both)
		gt.Equal(t, data["deviceId"], any("dev-01"))
		gt.Equal(t, data["counterName"], any("Grill"))

		// nothing else was queued for it
		gt.NoError(t, both.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
		_, _, err := both.ReadMessage()
		gt.Error(t, err)
	})
}

func TestFilter_Match(t *testing.T) {
	r := reading("dev-01", "Grill")

	gt.True(t, ws.Filter{}.Match(r))
	gt.True(t, ws.Filter{Counter: "Grill"}.Match(r))
	gt.False(t, ws.Filter{Counter: "Tandoor"}.Match(r))
	gt.False(t, ws.Filter{Device: "dev-02", Counter: "Grill"}.Match(r))

	// payloads without a scope go to everyone
	gt.True(t, ws.Filter{Counter: "Tandoor"}.Match(map[string]any{"note": "hello"}))
}
