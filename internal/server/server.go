// Package server streams sand frames to browser renderers over websockets and
// accepts particle placements over HTTP and the same socket.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"falling-sand/internal/bridge"
	"falling-sand/internal/core"
	"falling-sand/internal/sand"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ErrStopped is returned for placements after Run has returned.
var ErrStopped = errors.New("simulation stopped")

const (
	clientBuffer = 8
	writeTimeout = 5 * time.Second
)

type placeRequest struct {
	row, col int
	reply    chan error
}

// Placement is the body of a placement request, over HTTP or websocket.
type Placement struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	// send carries frames and is closed on unregister.
	send chan []byte
	// direct carries replies to this client's own messages; never closed.
	direct chan []byte
}

// Server owns a bridge through a single goroutine (Run). Handlers never touch
// the bridge directly; placements are queued to Run and frames are read from
// a cache Run refreshes after every tick.
type Server struct {
	host     *bridge.Bridge
	interval time.Duration
	place    chan placeRequest
	done     chan struct{}
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	ready   bool
	closed  bool
	latest  sand.Frame
	encoded []byte
	params  core.ParameterSnapshot
	clients map[uuid.UUID]*client
}

// New returns a Server that will advance host at tps ticks per second.
func New(host *bridge.Bridge, tps int) *Server {
	return &Server{
		host:     host,
		interval: core.NewFixedStep(tps).Interval(),
		place:    make(chan placeRequest),
		done:     make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[uuid.UUID]*client),
	}
}

// Run initializes the bridge and drives it until ctx is cancelled. It must be
// called exactly once.
func (s *Server) Run(ctx context.Context) error {
	defer close(s.done)
	defer s.closeClients()

	s.host.Initialize()
	frame, err := s.host.Snapshot()
	if err != nil {
		return err
	}
	params, err := s.host.Parameters()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.params = params
	s.mu.Unlock()
	s.publish(frame)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case req := <-s.place:
			req.reply <- s.host.PlaceParticle(req.row, req.col)
		case <-ticker.C:
			frame, err := s.host.AdvanceFrame()
			if err != nil {
				return err
			}
			s.publish(frame)
		}
	}
}

// Place queues a placement on the Run goroutine and waits for its result.
// It fails fast with bridge.ErrNotInitialized until Run has published its
// first frame.
func (s *Server) Place(ctx context.Context, row, col int) error {
	s.mu.RLock()
	ready := s.ready
	s.mu.RUnlock()
	if !ready {
		select {
		case <-s.done:
			return ErrStopped
		default:
			return bridge.ErrNotInitialized
		}
	}
	req := placeRequest{row: row, col: col, reply: make(chan error, 1)}
	select {
	case s.place <- req:
	case <-s.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	return <-req.reply
}

// Frame returns the most recent frame.
func (s *Server) Frame() (sand.Frame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready {
		return sand.Frame{}, bridge.ErrNotInitialized
	}
	return s.latest, nil
}

func (s *Server) publish(frame sand.Frame) {
	data, err := json.Marshal(frame)
	if err != nil {
		Logf("encode frame: %v", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = true
	s.latest = frame
	s.encoded = data
	for _, c := range s.clients {
		select {
		case c.send <- data:
		default:
			// Slow client; it will catch up on a later frame.
		}
	}
}

func (s *Server) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, c := range s.clients {
		close(c.send)
		delete(s.clients, id)
	}
}

// register adds c and queues the latest frame for it. It fails once Run has
// stopped.
func (s *Server) register(c *client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.clients[c.id] = c
	if s.encoded != nil {
		c.send <- s.encoded
	}
	return true
}

func (s *Server) unregister(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c.id]; !ok {
		return
	}
	close(c.send)
	delete(s.clients, c.id)
}

