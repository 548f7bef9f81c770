package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/dangerclosesec/crmboard/internal/metrics"
	"github.com/dangerclosesec/crmboard/internal/realtime"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// RealtimeHandler streams an organization's board events over a websocket.
type RealtimeHandler struct {
	hub      *realtime.Hub
	metrics  *metrics.Metrics
	upgrader websocket.Upgrader
	shutdown context.Context
}

// NewRealtimeHandler creates the websocket handler. Origins must be listed in
// allowedOrigins unless it contains "*". shutdown ends every stream when it
// is done.
func NewRealtimeHandler(shutdown context.Context, hub *realtime.Hub, m *metrics.Metrics, allowedOrigins []string) *RealtimeHandler {
	if shutdown == nil {
		shutdown = context.Background()
	}
	return &RealtimeHandler{
		hub:      hub,
		metrics:  m,
		shutdown: shutdown,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header["Origin"]
		if len(origin) == 0 {
			return true
		}
		u, err := url.Parse(origin[0])
		if err != nil {
			return false
		}
		if u.Host == r.Host {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin[0] {
				return true
			}
		}
		return false
	}
}

type readMessage struct {
	messageType int
	message     []byte
	err         error
}

// Stream upgrades the request and forwards events until either side closes.
func (h *RealtimeHandler) Stream(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organization(w, r)
	if !ok {
		return
	}

	eventChan, err := h.hub.Register(orgID)
	if err != nil {
		respondWithError(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}
	unregister := func() {
		go func() {
			h.hub.Unregister(orgID, eventChan)
			// drain until the hub closes the channel
			for range eventChan {
			}
		}()
	}
	defer unregister()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.WarnContext(r.Context(), "unable to upgrade websocket", "error", err)
		return
	}
	defer conn.Close()

	h.metrics.SessionOpened()
	defer h.metrics.SessionClosed()

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	readChan := make(chan readMessage, 20)
	go func() {
		for {
			messageType, message, err := conn.ReadMessage()
			readChan <- readMessage{
				messageType: messageType,
				message:     message,
				err:         err,
			}
			if err != nil {
				close(readChan)
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-h.shutdown.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			return
		case _, ok := <-readChan:
			if !ok {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case event, ok := <-eventChan:
			if !ok {
				return
			}

			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			w, err := conn.NextWriter(websocket.TextMessage)
			if err != nil {
				slog.Warn("unable to get writer for websocket", "error", err)
				return
			}
			if err := json.NewEncoder(w).Encode(event); err != nil {
				slog.Error("unable to encode event", "type", event.Type, "error", err)
				return
			}
			if err := w.Close(); err != nil {
				slog.Warn("unable to close writer for websocket", "error", err)
				return
			}
		}
	}
}
