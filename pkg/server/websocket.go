package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vango-dev/signalgraph/pkg/reactive"
)

// valueFrame carries one settled value of a field.
type valueFrame struct {
	Value any `json:"value"`
}

// errorFrame is the last frame of a stream whose field failed.
type errorFrame struct {
	Error errorBody `json:"error"`
}

// handleStream upgrades to a WebSocket and pushes every settled value of
// the requested field until the client leaves, the field fails or the
// server shuts down.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	sig, err := s.resolveField(r)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	s.streams.Add(1)
	defer s.streams.Done()
	defer conn.Close()

	ctx, cancel := context.WithCancel(s.baseCtx)
	defer cancel()
	go s.readLoop(conn, cancel)

	logger := s.logger.With("path", r.URL.Path)
	logger.Debug("stream opened")
	defer logger.Debug("stream closed")

	watcher := reactive.Watch(sig)
	defer watcher.Close()

	for {
		v, err := watcher.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				s.closeStream(conn, websocket.CloseGoingAway, "")
				return
			}
			if err := s.write(conn, errorFrame{Error: toErrorBody(err)}); err != nil {
				logger.Error("write error", "error", err)
				return
			}
			s.closeStream(conn, websocket.CloseNormalClosure, "field failed")
			return
		}
		if err := s.write(conn, valueFrame{Value: v}); err != nil {
			logger.Error("write error", "error", err)
			return
		}
	}
}

// readLoop discards client messages and cancels the stream when the
// connection goes away.
func (s *Server) readLoop(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}
	}
}

func (s *Server) write(conn *websocket.Conn, v any) error {
	conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	return conn.WriteJSON(v)
}

func (s *Server) closeStream(conn *websocket.Conn, code int, text string) {
	msg := websocket.FormatCloseMessage(code, text)
	conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(s.config.WriteTimeout))
}
