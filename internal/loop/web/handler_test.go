package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/tomz197/mousehunt/internal/loop/server"
)

func newTestHandler(t *testing.T) (*httptest.Server, *server.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := log.New(io.Discard)
	hub := server.NewServer(ctx, server.Options{Logger: logger})
	srv := httptest.NewServer(NewHandler(hub, Options{Logger: logger, SSHHost: "example.test"}))
	t.Cleanup(srv.Close)
	return srv, hub
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?name=tester"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil reads messages until match accepts one or the deadline passes.
func readUntil(t *testing.T, conn *websocket.Conn, match func(raw map[string]any, data []byte) bool) []byte {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for {
		_ = conn.SetReadDeadline(deadline)
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			t.Fatalf("decode %s: %v", data, err)
		}
		if match(raw, data) {
			return data
		}
	}
}

func TestServePage(t *testing.T) {
	srv, _ := newTestHandler(t)

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(string(body), "<canvas") || !strings.Contains(string(body), "example.test") {
		t.Fatal("page missing canvas or ssh host")
	}

	resp, err = http.Get(srv.URL + "/missing")
	if err != nil {
		t.Fatalf("GET /missing: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", resp.StatusCode)
	}
}

func TestSocketGameLifecycle(t *testing.T) {
	srv, hub := newTestHandler(t)
	conn := dial(t, srv)

	// Initial snapshot and leaderboard arrive first
	readUntil(t, conn, func(raw map[string]any, _ []byte) bool { return raw["type"] == MsgState })

	if err := conn.WriteJSON(ClientMessage{Type: MsgResize, Width: 400, Height: 300}); err != nil {
		t.Fatalf("write resize: %v", err)
	}
	if err := conn.WriteJSON(ClientMessage{Type: MsgStart}); err != nil {
		t.Fatalf("write start: %v", err)
	}

	data := readUntil(t, conn, func(raw map[string]any, _ []byte) bool {
		return raw["type"] == MsgState && raw["running"] == true
	})
	var st StateMessage
	if err := json.Unmarshal(data, &st); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if st.Width != 400 || st.Height != 300 {
		t.Fatalf("got arena %vx%v, want 400x300", st.Width, st.Height)
	}
	if len(st.Mice) == 0 {
		t.Fatal("running game without mice")
	}
	for _, m := range st.Mice {
		if m.X < 0 || m.X > 360 || m.Y < 0 || m.Y > 260 {
			t.Fatalf("mouse %d at (%v, %v) outside the measured arena", m.ID, m.X, m.Y)
		}
	}

	if err := conn.WriteJSON(ClientMessage{Type: MsgStop}); err != nil {
		t.Fatalf("write stop: %v", err)
	}
	readUntil(t, conn, func(raw map[string]any, _ []byte) bool {
		return raw["type"] == MsgEvent && raw["event"] == "stopped"
	})
	readUntil(t, conn, func(raw map[string]any, _ []byte) bool { return raw["type"] == MsgLeaderboard })

	if got := hub.Players(); got != 1 {
		t.Fatalf("got %d players, want 1", got)
	}
}

func TestSocketDisconnectUnregisters(t *testing.T) {
	srv, hub := newTestHandler(t)
	conn := dial(t, srv)
	readUntil(t, conn, func(raw map[string]any, _ []byte) bool { return raw["type"] == MsgState })
	conn.Close()

	deadline := time.After(3 * time.Second)
	for hub.Players() != 0 {
		select {
		case <-deadline:
			t.Fatal("player still registered after disconnect")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestSocketShutdown(t *testing.T) {
	srv, hub := newTestHandler(t)
	conn := dial(t, srv)
	readUntil(t, conn, func(raw map[string]any, _ []byte) bool { return raw["type"] == MsgState })

	go hub.Shutdown(2 * time.Second)
	readUntil(t, conn, func(raw map[string]any, _ []byte) bool { return raw["type"] == MsgShutdown })
}
