package stream

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func dialDemo(t *testing.T) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/ws/v1/demo", NewHandler(true).Demo)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/v1/demo"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg map[string]any
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal %q: %v", data, err)
	}
	return msg
}

func TestDemo_SessionReadyOnConnect(t *testing.T) {
	conn := dialDemo(t)

	msg := readMessage(t, conn)
	if msg["type"] != "session_ready" {
		t.Errorf("type = %v, want session_ready", msg["type"])
	}
	if msg["session_id"] != "demo-session-local" {
		t.Errorf("session_id = %v, want demo-session-local", msg["session_id"])
	}
	if msg["audio_format"] != "pcm_s16le" {
		t.Errorf("audio_format = %v, want pcm_s16le", msg["audio_format"])
	}
	if msg["sample_rate"] != float64(24000) {
		t.Errorf("sample_rate = %v, want 24000", msg["sample_rate"])
	}
}

func TestDemo_StartSessionAnswersListening(t *testing.T) {
	conn := dialDemo(t)
	readMessage(t, conn) // session_ready

	if err := conn.WriteJSON(map[string]string{"type": "start_session"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	msg := readMessage(t, conn)
	if msg["type"] != "state_update" || msg["state"] != "listening" {
		t.Errorf("got %v, want state_update/listening", msg)
	}
}

func TestDemo_BinaryFramesDiscarded(t *testing.T) {
	conn := dialDemo(t)
	readMessage(t, conn) // session_ready

	// Audio must not produce a reply or kill the connection.
	if err := conn.WriteMessage(websocket.BinaryMessage, make([]byte, 1024)); err != nil {
		t.Fatalf("write audio: %v", err)
	}
	if err := conn.WriteJSON(map[string]string{"type": "start_session"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	msg := readMessage(t, conn)
	if msg["type"] != "state_update" {
		t.Errorf("type = %v, want state_update", msg["type"])
	}
}

func TestDemo_EndSessionCloses(t *testing.T) {
	conn := dialDemo(t)
	readMessage(t, conn) // session_ready

	if err := conn.WriteJSON(map[string]string{"type": "end_session"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Errorf("expected normal close, got %v", err)
	}
}
