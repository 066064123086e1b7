// Package transport adapts message-oriented connections to the byte
// streams protocol.Stream reads and writes.
package transport

import (
	"errors"
	"fmt"
	"io"

	"github.com/gorilla/websocket"
)

// ErrUnexpectedMessageType is returned by Read when the peer sends a
// message that is not binary.
var ErrUnexpectedMessageType = errors.New("transport: unexpected websocket message type")

// WebSocketStream exposes a WebSocket connection as an io.ReadWriter.
//
// Each Write is sent as one binary message. Read returns the contents of
// binary messages in arrival order with message boundaries removed, so a
// packet frame may span several messages or share one with others.
// A normal close from the peer reads as io.EOF.
//
// The caller dials or upgrades the connection and closes it. Like the
// underlying *websocket.Conn, a WebSocketStream supports one concurrent
// reader and one concurrent writer.
type WebSocketStream struct {
	conn *websocket.Conn
	r    io.Reader
}

var _ io.ReadWriter = (*WebSocketStream)(nil)

// NewWebSocketStream wraps conn.
func NewWebSocketStream(conn *websocket.Conn) *WebSocketStream {
	return &WebSocketStream{conn: conn}
}

// Conn returns the wrapped connection.
func (s *WebSocketStream) Conn() *websocket.Conn {
	return s.conn
}

// Read reads from the current binary message, advancing to the next
// message when it is exhausted.
func (s *WebSocketStream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for {
		if s.r == nil {
			messageType, r, err := s.conn.NextReader()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					return 0, io.EOF
				}
				return 0, err
			}
			if messageType != websocket.BinaryMessage {
				return 0, fmt.Errorf("%w: %d", ErrUnexpectedMessageType, messageType)
			}
			s.r = r
		}

		n, err := s.r.Read(p)
		if err == io.EOF {
			s.r = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

// Write sends p as a single binary message.
func (s *WebSocketStream) Write(p []byte) (int, error) {
	if err := s.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}
