// Package stream serves the local demo websocket used by the dashboard's
// "try it" widget. It speaks a tiny subset of the realtime voice protocol:
// enough for a client to connect, start a session, and push audio frames
// without a media backend attached.
package stream

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"voicebilling-platform/pkg/logger"
)

const (
	demoSessionID = "demo-session-local"
	audioFormat   = "pcm_s16le"
	sampleRate    = 24000

	writeTimeout = 5 * time.Second
	readLimit    = 1 << 20
)

type envelope struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id,omitempty"`
}

type sessionReady struct {
	Type        string `json:"type"`
	SessionID   string `json:"session_id"`
	AudioFormat string `json:"audio_format"`
	SampleRate  int    `json:"sample_rate"`
}

type stateUpdate struct {
	Type      string `json:"type"`
	State     string `json:"state"`
	SessionID string `json:"session_id"`
}

// Handler upgrades demo connections and runs the message loop.
type Handler struct {
	upgrader websocket.Upgrader
}

func NewHandler(allowAnyOrigin bool) *Handler {
	return &Handler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				if allowAnyOrigin {
					return true
				}
				origin := strings.TrimSpace(r.Header.Get("Origin"))
				if origin == "" {
					// Non-browser clients often omit Origin. Allow them.
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				if u.Scheme != "http" && u.Scheme != "https" {
					return false
				}
				return strings.EqualFold(u.Host, r.Host)
			},
		},
	}
}

// Demo handles GET /ws/v1/demo.
func (h *Handler) Demo(c *gin.Context) {
	log := logger.FromGin(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(readLimit)

	if err := writeJSON(conn, sessionReady{
		Type:        "session_ready",
		SessionID:   demoSessionID,
		AudioFormat: audioFormat,
		SampleRate:  sampleRate,
	}); err != nil {
		log.Warn("session_ready write failed", "error", err)
		return
	}
	log.Info("demo stream connected", "session_id", demoSessionID)

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("demo stream closed abnormally", "error", err)
			}
			return
		}

		// Audio frames arrive as binary; the demo has no media backend, so
		// they are read and dropped to keep the connection flowing.
		if msgType == websocket.BinaryMessage {
			continue
		}

		var msg envelope
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Warn("demo stream bad message", "error", err)
			continue
		}

		switch msg.Type {
		case "start_session":
			if err := writeJSON(conn, stateUpdate{
				Type:      "state_update",
				State:     "listening",
				SessionID: demoSessionID,
			}); err != nil {
				log.Warn("state_update write failed", "error", err)
				return
			}
		case "end_session":
			_ = conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended"),
				time.Now().Add(writeTimeout),
			)
			return
		default:
			// Unknown control messages are ignored; the demo protocol is
			// intentionally forgiving.
		}
	}
}

func writeJSON(conn *websocket.Conn, v any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(v)
}
