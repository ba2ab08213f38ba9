package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"falling-sand/internal/bridge"
	"falling-sand/internal/sand"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Handler returns the HTTP routes:
//
//	POST /api/particles  {"row": r, "col": c}
//	GET  /api/frame
//	GET  /api/params
//	GET  /ws             frame stream; accepts placement messages
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/particles", s.handlePlace)
	mux.HandleFunc("GET /api/frame", s.handleFrame)
	mux.HandleFunc("GET /api/params", s.handleParams)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	return mux
}

func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	var p Placement
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid placement: "+err.Error())
		return
	}
	if p.Row == nil || p.Col == nil {
		writeJSONError(w, http.StatusBadRequest, "row and col are required")
		return
	}
	if err := s.Place(r.Context(), *p.Row, *p.Col); err != nil {
		writeJSONError(w, statusFor(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	frame, err := s.Frame()
	if err != nil {
		writeJSONError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, frame)
}

func (s *Server) handleParams(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	ready, params := s.ready, s.params
	s.mu.RUnlock()
	if !ready {
		writeJSONError(w, http.StatusServiceUnavailable, bridge.ErrNotInitialized.Error())
		return
	}
	writeJSON(w, http.StatusOK, params)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		Logf("failed to upgrade connection: %v", err)
		return
	}

	c := &client{
		id:     uuid.New(),
		conn:   conn,
		send:   make(chan []byte, clientBuffer),
		direct: make(chan []byte, clientBuffer),
	}
	if !s.register(c) {
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, ErrStopped.Error()))
		conn.Close()
		return
	}
	Logf("websocket client %s connected", c.id)

	go s.writeLoop(c)
	s.readLoop(r, c)
}

// writeLoop is the only writer on c.conn. It exits when c.send is closed.
func (s *Server) writeLoop(c *client) {
	defer c.conn.Close()
	for {
		var data []byte
		select {
		case frame, ok := <-c.send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			data = frame
		case data = <-c.direct:
		}
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			Logf("websocket client %s write failed: %v", c.id, err)
			s.unregister(c)
			// Drain until unregister closes the channel.
			for range c.send {
			}
			return
		}
	}
}

func (s *Server) readLoop(r *http.Request, c *client) {
	defer func() {
		s.unregister(c)
		Logf("websocket client %s disconnected", c.id)
	}()
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var p Placement
		if err := json.Unmarshal(data, &p); err != nil {
			s.reply(c, "invalid placement: "+err.Error())
			continue
		}
		if p.Row == nil || p.Col == nil {
			s.reply(c, "row and col are required")
			continue
		}
		if err := s.Place(r.Context(), *p.Row, *p.Col); err != nil {
			if errors.Is(err, ErrStopped) {
				return
			}
			s.reply(c, err.Error())
		}
	}
}

func (s *Server) reply(c *client, msg string) {
	data, err := json.Marshal(errorBody{Error: msg})
	if err != nil {
		return
	}
	select {
	case c.direct <- data:
	default:
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, sand.ErrOutOfBounds):
		return http.StatusBadRequest
	case errors.Is(err, bridge.ErrNotInitialized), errors.Is(err, ErrStopped):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
