// Package remote exposes a camera controller over HTTP and WebSocket so the
// viewer can be driven by external tools (scripted fly-throughs, test rigs,
// companion UIs). Gestures are applied to the controller at the caller's
// timestamp, or at the controller's latest time when none is given.
package remote

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/vantage3d/vantage/engine/camera"
)

// CameraState is the JSON representation of the controller's resolved pose.
type CameraState struct {
	T        float32    `json:"t"`
	Eye      [3]float32 `json:"eye"`
	Center   [3]float32 `json:"center"`
	Up       [3]float32 `json:"up"`
	Radius   float32    `json:"radius"`
	Rotation [4]float32 `json:"rotation"`
}

// GestureRequest is the JSON body accepted by the gesture endpoints and by
// WebSocket command messages. Op is only used on the WebSocket path, where a
// single message stream carries all gesture kinds.
type GestureRequest struct {
	Op     string    `json:"op,omitempty"`
	T      *float32  `json:"t,omitempty"`
	DX     float32   `json:"dx,omitempty"`
	DY     float32   `json:"dy,omitempty"`
	DR     float32   `json:"dr,omitempty"`
	Eye    []float32 `json:"eye,omitempty"`
	Center []float32 `json:"center,omitempty"`
	Up     []float32 `json:"up,omitempty"`
}

// Server serves the camera remote control API.
type Server interface {
	// Handler returns the root HTTP handler with logging and panic recovery
	// middleware applied.
	//
	// Returns:
	//   - http.Handler: the root handler
	Handler() http.Handler

	// Start binds the listen address and serves in a background goroutine.
	//
	// Returns:
	//   - error: an error if the address cannot be bound
	Start() error

	// Addr returns the bound address after Start, e.g. "127.0.0.1:8632".
	//
	// Returns:
	//   - string: the listener address, or the configured address before Start
	Addr() string

	// Shutdown gracefully stops the server.
	//
	// Parameters:
	//   - ctx: context bounding the shutdown
	//
	// Returns:
	//   - error: an error if shutdown fails
	Shutdown(ctx context.Context) error
}

type serverImpl struct {
	mu *sync.Mutex

	controller camera.OrbitCameraController
	logger     *slog.Logger

	listen   string
	router   *mux.Router
	server   *http.Server
	listener net.Listener

	upgrader       websocket.Upgrader
	streamInterval time.Duration
}

var _ Server = &serverImpl{}

func (s *serverImpl) Handler() http.Handler {
	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(&recoveryLogger{logger: s.logger}),
	)(s.router)
}

func (s *serverImpl) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	listener, err := net.Listen("tcp", s.listen)
	if err != nil {
		return errors.Wrapf(err, "listen on %q", s.listen)
	}
	s.listener = listener
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("remote server failed", "error", err)
		}
	}()
	s.logger.Info("remote control server listening", "addr", listener.Addr().String())
	return nil
}

func (s *serverImpl) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.listen
}

func (s *serverImpl) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	server := s.server
	s.mu.Unlock()
	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

// initRoutes registers the API routes on the router.
func (s *serverImpl) initRoutes() {
	s.router.HandleFunc("/api/camera", s.handleState).Methods(http.MethodGet)
	s.router.HandleFunc("/api/camera/pan", s.handleGesture("pan")).Methods(http.MethodPost)
	s.router.HandleFunc("/api/camera/zoom", s.handleGesture("zoom")).Methods(http.MethodPost)
	s.router.HandleFunc("/api/camera/rotate", s.handleGesture("rotate")).Methods(http.MethodPost)
	s.router.HandleFunc("/api/camera/lookat", s.handleGesture("lookat")).Methods(http.MethodPost)
	s.router.HandleFunc("/api/camera/idle", s.handleGesture("idle")).Methods(http.MethodPost)
	s.router.HandleFunc("/api/camera/flush", s.handleGesture("flush")).Methods(http.MethodPost)
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

func (s *serverImpl) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshot())
}

// handleGesture returns a handler that decodes a GestureRequest, applies the
// named gesture, and responds with the updated camera state.
func (s *serverImpl) handleGesture(op string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &GestureRequest{}
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		if err := s.apply(op, req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, s.snapshot())
	}
}

func (s *serverImpl) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	done := make(chan struct{})

	// Writer: push the resolved camera state at a fixed interval.
	go func() {
		ticker := time.NewTicker(s.streamInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteJSON(s.snapshot()); err != nil {
					return
				}
			}
		}
	}()

	// Reader: apply gesture command messages until the client disconnects.
	for {
		req := &GestureRequest{}
		if err := conn.ReadJSON(req); err != nil {
			break
		}
		if err := s.apply(req.Op, req); err != nil {
			s.logger.Debug("rejected websocket gesture", "op", req.Op, "error", err)
		}
	}
	close(done)
}

// apply dispatches a gesture to the controller.
func (s *serverImpl) apply(op string, req *GestureRequest) error {
	t := s.controller.LastT()
	if req.T != nil {
		t = *req.T
	}
	switch op {
	case "pan":
		s.controller.Pan(t, req.DX, req.DY)
	case "zoom":
		s.controller.Zoom(t, req.DR)
	case "rotate":
		s.controller.Rotate(t, req.DX, req.DY)
	case "lookat":
		s.controller.LookAt(t, req.Eye, req.Center, req.Up)
	case "idle":
		s.controller.Idle(t)
	case "flush":
		s.controller.Flush(t)
	default:
		return errors.Errorf("unknown gesture %q", op)
	}
	return nil
}

// snapshot reads the controller's current resolved pose.
func (s *serverImpl) snapshot() CameraState {
	state := CameraState{
		T:        s.controller.LastT(),
		Radius:   s.controller.Radius(),
		Rotation: s.controller.Rotation(),
	}
	state.Eye[0], state.Eye[1], state.Eye[2] = s.controller.Eye()
	state.Center[0], state.Center[1], state.Center[2] = s.controller.Center()
	state.Up[0], state.Up[1], state.Up[2] = s.controller.Up()
	return state
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// recoveryLogger adapts slog to the gorilla/handlers recovery logger.
type recoveryLogger struct {
	logger *slog.Logger
}

func (l *recoveryLogger) Println(v ...interface{}) {
	l.logger.Error("recovered from handler panic", "panic", v)
}
