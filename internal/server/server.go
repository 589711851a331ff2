// Package server implements the accessory-line and BLE-shaped listeners
// used by cmd/legohub-sim: a stand-in "hub" that accepts the same two
// transports internal/transport dials out to, and replays a canned script
// of protocol frames to whatever connects.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/muurk/legohub/internal/logging"
	"go.uber.org/zap"
)

// Config holds the simulator server configuration.
type Config struct {
	Host     string
	LinePort int // accessory line transport listens here (plain TCP)
	WSPort   int // BLE-shaped transport listens here (HTTP + WebSocket)
	LogLevel string
}

// Server runs the two simulator listeners and tracks active connections
// for graceful shutdown.
type Server struct {
	config   *Config
	scenario Scenario

	lineListener net.Listener
	httpServer   *http.Server
	errChan      chan error

	wg          sync.WaitGroup
	mu          sync.Mutex
	activeConns map[string]net.Conn
}

// New creates a Server that will replay scenario to every connection.
func New(config *Config, scenario Scenario) (*Server, error) {
	if err := logging.Initialize(config.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	return &Server{
		config:      config,
		scenario:    scenario,
		activeConns: make(map[string]net.Conn),
	}, nil
}

// Listen binds both listeners and starts serving in the background,
// returning their actual addresses (useful in tests that bind port 0).
// It does not block; call Shutdown to stop it, or rely on Start's signal
// handling.
func (s *Server) Listen() (lineAddr, wsAddr string, err error) {
	lineListener, err := net.Listen("tcp", fmt.Sprintf("%s:%d", s.config.Host, s.config.LinePort))
	if err != nil {
		return "", "", fmt.Errorf("failed to listen on line port: %w", err)
	}
	s.lineListener = lineListener
	logging.Info("accessory line listener up", zap.String("addr", lineListener.Addr().String()))

	wsListener, err := net.Listen("tcp", fmt.Sprintf("%s:%d", s.config.Host, s.config.WSPort))
	if err != nil {
		_ = lineListener.Close()
		return "", "", fmt.Errorf("failed to listen on ws port: %w", err)
	}

	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logging.Error("websocket upgrade failed", zap.Error(err))
			return
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleWSConnection(conn)
		}()
	})
	s.httpServer = &http.Server{Handler: mux}
	logging.Info("ble-shaped websocket listener up", zap.String("addr", wsListener.Addr().String()))

	s.errChan = make(chan error, 2)
	go func() { s.errChan <- s.acceptLineConnections() }()
	go func() {
		if err := s.httpServer.Serve(wsListener); err != nil && err != http.ErrServerClosed {
			s.errChan <- err
		}
	}()

	return lineListener.Addr().String(), wsListener.Addr().String(), nil
}

// Start binds both listeners and blocks until a shutdown signal or
// listener error.
func (s *Server) Start() error {
	if _, _, err := s.Listen(); err != nil {
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		logging.Info("shutdown signal received, stopping simulator")
		return s.Shutdown(context.Background())
	case err := <-s.errChan:
		return err
	}
}

func (s *Server) acceptLineConnections() error {
	for {
		conn, err := s.lineListener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			logging.Error("failed to accept line connection", zap.Error(err))
			continue
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleLineConnection(conn)
		}()
	}
}

func (s *Server) track(addr string, conn net.Conn) {
	s.mu.Lock()
	s.activeConns[addr] = conn
	s.mu.Unlock()
}

func (s *Server) untrack(addr string) {
	s.mu.Lock()
	delete(s.activeConns, addr)
	s.mu.Unlock()
}

func (s *Server) handleLineConnection(conn net.Conn) {
	remoteAddr := conn.RemoteAddr().String()
	s.track(remoteAddr, conn)
	defer func() {
		_ = conn.Close()
		s.untrack(remoteAddr)
		logging.Info("line connection closed", zap.String("remote_addr", remoteAddr))
	}()
	logging.Info("line connection accepted", zap.String("remote_addr", remoteAddr))

	go drainLineReads(conn, remoteAddr)

	for _, line := range s.scenario.Lines {
		if _, err := conn.Write(append(append([]byte(nil), line...), '\n')); err != nil {
			logging.Warn("line write failed", zap.String("remote_addr", remoteAddr), zap.Error(err))
			return
		}
		time.Sleep(s.scenario.Interval)
	}
}

func drainLineReads(conn net.Conn, remoteAddr string) {
	buf := make([]byte, 4096)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			return
		}
		logging.LogRawBytes("line inbound write from client:"+remoteAddr, buf[:n])
	}
}

func (s *Server) handleWSConnection(conn *websocket.Conn) {
	remoteAddr := conn.RemoteAddr().String()
	logging.Info("ws connection accepted", zap.String("remote_addr", remoteAddr))
	defer func() {
		_ = conn.Close()
		logging.Info("ws connection closed", zap.String("remote_addr", remoteAddr))
	}()

	go func() {
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			logging.LogRawBytes("ws inbound write from client:"+remoteAddr, data)
		}
	}()

	for _, frame := range s.scenario.Frames {
		if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
			logging.Warn("ws write failed", zap.String("remote_addr", remoteAddr), zap.Error(err))
			return
		}
		time.Sleep(s.scenario.Interval)
	}
}

// Shutdown gracefully stops both listeners and closes active connections.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("shutting down simulator")

	if s.lineListener != nil {
		_ = s.lineListener.Close()
	}
	if s.httpServer != nil {
		_ = s.httpServer.Shutdown(ctx)
	}

	s.mu.Lock()
	for addr, conn := range s.activeConns {
		logging.Info("closing active connection", zap.String("remote_addr", addr))
		_ = conn.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logging.Info("all connections closed gracefully")
	case <-time.After(10 * time.Second):
		logging.Warn("shutdown timeout, forcing close")
	}

	logging.Sync()
	return nil
}

// ActiveConnections returns the number of currently tracked connections.
func (s *Server) ActiveConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.activeConns)
}
