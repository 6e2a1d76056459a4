package remote

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/vantage3d/vantage/engine/camera"
)

// ServerOption is a functional option for configuring a Server.
type ServerOption func(*serverImpl)

// NewServer creates a remote control server for the given controller.
// Applies default values first, then each option in order.
//
// Parameters:
//   - controller: the camera controller to expose
//   - logger: structured logger for server events
//   - options: functional options to configure the server
//
// Returns:
//   - Server: the configured server (not yet started)
func NewServer(controller camera.OrbitCameraController, logger *slog.Logger, options ...ServerOption) Server {
	s := &serverImpl{
		mu:         &sync.Mutex{},
		controller: controller,
		logger:     logger,
		listen:     "127.0.0.1:8632",
		router:     mux.NewRouter(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		streamInterval: 100 * time.Millisecond,
	}
	for _, option := range options {
		option(s)
	}
	s.initRoutes()
	return s
}

// WithListenAddr sets the address the server binds to.
//
// Parameters:
//   - addr: listen address, e.g. "127.0.0.1:8632" or ":0"
//
// Returns:
//   - ServerOption: option function to apply
func WithListenAddr(addr string) ServerOption {
	return func(s *serverImpl) {
		s.listen = addr
	}
}

// WithStreamInterval sets how often the WebSocket endpoint pushes camera
// state to connected clients.
//
// Parameters:
//   - interval: time between state pushes
//
// Returns:
//   - ServerOption: option function to apply
func WithStreamInterval(interval time.Duration) ServerOption {
	return func(s *serverImpl) {
		s.streamInterval = interval
	}
}
