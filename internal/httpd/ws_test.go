package httpd

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// wsReply mirrors the outbound envelope with a raw data payload.
type wsReply struct {
	Type    string          `json:"type"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readReply(t *testing.T, conn *websocket.Conn) wsReply {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var reply wsReply
	if err := json.Unmarshal(msg, &reply); err != nil {
		t.Fatalf("decode %q: %v", msg, err)
	}
	return reply
}

func TestWebsocketView(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t).Router())
	defer srv.Close()

	conn := dialWS(t, srv)
	req := []byte(`{"type":"view","year":2021,"start_date":"2021-03-01","days":1}`)
	if err := conn.WriteMessage(websocket.TextMessage, req); err != nil {
		t.Fatalf("write: %v", err)
	}

	reply := readReply(t, conn)
	if reply.Type != "view" {
		t.Fatalf("type = %q, message = %q", reply.Type, reply.Message)
	}
	var view struct {
		Iterations int               `json:"iterations"`
		Modes      []json.RawMessage `json:"modes"`
	}
	if err := json.Unmarshal(reply.Data, &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.Iterations != 5 {
		t.Errorf("iterations = %d, want 5", view.Iterations)
	}
	if len(view.Modes) != 3 {
		t.Errorf("len(modes) = %d, want 3", len(view.Modes))
	}
}

func TestWebsocketError(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t).Router())
	defer srv.Close()

	conn := dialWS(t, srv)
	req := []byte(`{"type":"view","year":2021,"start_date":"2021-07-01","days":1}`)
	if err := conn.WriteMessage(websocket.TextMessage, req); err != nil {
		t.Fatalf("write: %v", err)
	}

	reply := readReply(t, conn)
	if reply.Type != "error" {
		t.Fatalf("type = %q, want error", reply.Type)
	}
	if reply.Message == "" {
		t.Error("error reply carries no message")
	}
}

func TestWebsocketBroadcast(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t).Router())
	defer srv.Close()

	watcher := dialWS(t, srv)
	req := []byte(`{"type":"view","year":2021,"start_date":"2021-03-01","days":1}`)
	if err := watcher.WriteMessage(websocket.TextMessage, req); err != nil {
		t.Fatalf("watcher write: %v", err)
	}
	if reply := readReply(t, watcher); reply.Type != "view" {
		t.Fatalf("watcher warmup type = %q", reply.Type)
	}

	// A request from a second client reaches the first one too.
	sender := dialWS(t, srv)
	req = []byte(`{"type":"view","year":2021,"start_date":"2021-03-02","days":1}`)
	if err := sender.WriteMessage(websocket.TextMessage, req); err != nil {
		t.Fatalf("sender write: %v", err)
	}

	for _, conn := range []*websocket.Conn{sender, watcher} {
		reply := readReply(t, conn)
		if reply.Type != "view" {
			t.Fatalf("broadcast type = %q, message = %q", reply.Type, reply.Message)
		}
	}
}
