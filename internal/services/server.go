package services

import (
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
)

// ServerConfig defines the inputs for a presentation server.
type ServerConfig struct {
	Host           string
	PortRangeStart int
	PortRangeSize  int
	RootDir        string
	Handler        http.Handler
}

// PresentationServer owns the HTTP listener serving one workspace root.
// The root directory is immutable for the lifetime of the instance; a
// workspace change requires a Stop and a fresh instance.
type PresentationServer struct {
	host      string
	rootDir   string
	portStart int
	portCount int
	handler   http.Handler

	mu         sync.Mutex
	port       int
	listener   net.Listener
	httpServer *http.Server
}

// NewPresentationServer creates a server for the given config. The
// listener is not bound until EnsureRunning is called.
func NewPresentationServer(cfg ServerConfig) *PresentationServer {
	return &PresentationServer{
		host:      cfg.Host,
		rootDir:   cfg.RootDir,
		portStart: cfg.PortRangeStart,
		portCount: cfg.PortRangeSize,
		handler:   cfg.Handler,
	}
}

// RootDir returns the workspace root this server serves.
func (ps *PresentationServer) RootDir() string {
	return ps.rootDir
}

// EnsureRunning binds the listener if it is not already bound and
// returns the bound port. Calling it on a running server returns the
// existing port without a new bind attempt. A bind failure leaves the
// server fully stopped, never half-running.
func (ps *PresentationServer) EnsureRunning() (int, error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.listener != nil {
		return ps.port, nil
	}

	port, err := FindFreePort(ps.host, ps.portStart, ps.portCount)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate port: %w", err)
	}

	ln, err := net.Listen("tcp", net.JoinHostPort(ps.host, fmt.Sprintf("%d", port)))
	if err != nil {
		return 0, fmt.Errorf("failed to bind port %d: %w", port, err)
	}

	server := &http.Server{Handler: ps.handler}
	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Presentation server stopped unexpectedly: %v", err)
		}
	}()

	ps.port = port
	ps.listener = ln
	ps.httpServer = server
	log.Printf("Presentation server listening on http://%s", net.JoinHostPort(ps.host, fmt.Sprintf("%d", port)))
	return port, nil
}

// Stop closes the listener and clears the bound port. The port is
// immediately bindable by an unrelated listener afterwards.
func (ps *PresentationServer) Stop() error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.listener == nil {
		return nil
	}

	err := ps.httpServer.Close()
	ps.port = 0
	ps.listener = nil
	ps.httpServer = nil
	if err != nil {
		return fmt.Errorf("failed to close presentation server: %w", err)
	}
	log.Printf("Presentation server stopped")
	return nil
}

// PresenterURL returns the presenter page URL for a deck on the bound
// port. Only meaningful after EnsureRunning succeeds.
func (ps *PresentationServer) PresenterURL(deckID string) string {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return fmt.Sprintf("http://%s/present/%s", net.JoinHostPort(ps.host, fmt.Sprintf("%d", ps.port)), deckID)
}

// Manager owns the lifecycle of the process-wide presentation server.
// It is constructed by the host application and passed to callers,
// replacing a module-level singleton while keeping the one-listener-
// per-process behavior. Stopping clears the held instance so the next
// EnsureRunning builds fresh state, which is how a new workspace root
// gets picked up.
type Manager struct {
	mu      sync.Mutex
	build   func() (*PresentationServer, error)
	current *PresentationServer
}

// NewManager creates a manager that builds server instances on demand
// with the given constructor.
func NewManager(build func() (*PresentationServer, error)) *Manager {
	return &Manager{
		build: build,
	}
}

// EnsureRunning starts the held server, constructing it first if
// needed, and returns the bound port. Idempotent.
func (m *Manager) EnsureRunning() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		server, err := m.build()
		if err != nil {
			return 0, fmt.Errorf("failed to build presentation server: %w", err)
		}
		m.current = server
	}

	port, err := m.current.EnsureRunning()
	if err != nil {
		// A server that never bound holds no resources worth keeping.
		m.current = nil
		return 0, err
	}
	return port, nil
}

// Current returns the held server instance, or nil when stopped.
func (m *Manager) Current() *PresentationServer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Stop stops the held server and clears it.
func (m *Manager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return nil
	}
	err := m.current.Stop()
	m.current = nil
	return err
}

// StopIfRunning stops the held server when one exists. Safe to call
// when nothing was ever started.
func (m *Manager) StopIfRunning() {
	if m == nil {
		return
	}
	if err := m.Stop(); err != nil {
		log.Printf("Failed to stop presentation server: %v", err)
	}
}
