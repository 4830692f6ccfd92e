package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"vcrfx/internal/logger"
	"vcrfx/pkg/config"
	"vcrfx/pkg/metrics"
	"vcrfx/pkg/vcr"
)

// Console is the debug console: an HTTP API that queues commands for the
// render loop and publishes effect snapshots
type Console struct {
	srv      http.Server
	mux      *http.ServeMux
	cfg      config.ConsoleConfig
	vars     *config.Registry
	log      *logger.Logger
	commands chan Command
	interval time.Duration
	listener net.Listener

	mu        sync.RWMutex
	state     vcr.Snapshot
	wsClients map[*websocket.Conn]bool
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a console; nothing listens until ServeInBackground
func New(cfg config.ConsoleConfig, vars *config.Registry, log *logger.Logger) *Console {
	c := &Console{
		mux:       http.NewServeMux(),
		cfg:       cfg,
		vars:      vars,
		log:       log.WithPrefix("console"),
		commands:  make(chan Command, max(cfg.QueueSize, 1)),
		interval:  time.Duration(max(cfg.PublishInterval, 1)) * time.Millisecond,
		wsClients: make(map[*websocket.Conn]bool),
		done:      make(chan struct{}),
	}
	c.srv.Handler = c.mux

	c.mux.HandleFunc("GET /api/state", c.getState)
	c.mux.HandleFunc("GET /api/commands", c.listCommands)
	c.mux.HandleFunc("POST /api/command/{name}", c.postCommand)
	c.mux.HandleFunc("GET /api/vars", c.getVars)
	c.mux.HandleFunc("PUT /api/vars/{name}", c.putVar)
	c.mux.HandleFunc("GET /api/ws", c.handleWebsocket)
	if cfg.Metrics {
		c.mux.Handle("GET /metrics", metrics.Handler())
	}
	return c
}

// Handler exposes the routes, mostly for tests
func (c *Console) Handler() http.Handler {
	return c.mux
}

// ServeInBackground binds the configured address and serves until Shutdown
func (c *Console) ServeInBackground() error {
	ln, err := net.Listen("tcp", c.cfg.Bind)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %v", c.cfg.Bind, err)
	}
	c.listener = ln
	c.log.Infof("Debug console listening on http://%s", ln.Addr())

	go func() {
		if err := c.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			c.log.Errorf("console server stopped: %v", err)
		}
	}()
	return nil
}

// Addr returns the bound address, empty before ServeInBackground
func (c *Console) Addr() string {
	if c.listener == nil {
		return ""
	}
	return c.listener.Addr().String()
}

// Shutdown stops the server and disconnects websocket clients
func (c *Console) Shutdown(ctx context.Context) error {
	c.closeOnce.Do(func() { close(c.done) })

	c.mu.Lock()
	for ws := range c.wsClients {
		ws.Close()
	}
	c.wsClients = make(map[*websocket.Conn]bool)
	c.mu.Unlock()

	if c.listener == nil {
		return nil
	}
	if err := c.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down console: %v", err)
	}
	return nil
}

// Publish replaces the snapshot served to clients
func (c *Console) Publish(s vcr.Snapshot) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *Console) snapshot() vcr.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Enqueue validates and queues a command without blocking
func (c *Console) Enqueue(name, value string) error {
	cmd, err := ParseCommand(name, value)
	if err != nil {
		return err
	}
	select {
	case c.commands <- cmd:
		return nil
	default:
		return ErrQueueFull
	}
}

// Drain applies queued commands in arrival order and returns how many ran.
// Call it from the render thread.
func (c *Console) Drain(t Target) int {
	n := 0
	for {
		select {
		case cmd := <-c.commands:
			cmd.Apply(t)
			c.log.Debugf("applied %s %s", cmd.Name, cmd.Value)
			n++
		default:
			return n
		}
	}
}

func (c *Console) getState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, c.snapshot())
}

func (c *Console) listCommands(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, CommandNames())
}

func (c *Console) postCommand(w http.ResponseWriter, req *http.Request) {
	name := req.PathValue("name")
	value := req.URL.Query().Get("value")

	err := c.Enqueue(name, value)
	switch {
	case err == nil:
		metrics.ConsoleCommands.WithLabelValues(name, "queued").Inc()
		w.WriteHeader(http.StatusAccepted)
		fmt.Fprintf(w, "\"queued\"\n")
	case errors.Is(err, ErrQueueFull):
		metrics.ConsoleCommands.WithLabelValues(name, "full").Inc()
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, ErrUnknownCommand):
		metrics.ConsoleCommands.WithLabelValues("unknown", "rejected").Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		metrics.ConsoleCommands.WithLabelValues(name, "rejected").Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

func (c *Console) getVars(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, c.vars.All())
}

func (c *Console) putVar(w http.ResponseWriter, req *http.Request) {
	name := req.PathValue("name")
	body, err := io.ReadAll(io.LimitReader(req.Body, 1024))
	if err != nil {
		http.Error(w, fmt.Sprintf("could not read body: %s", err), http.StatusBadRequest)
		return
	}

	value := strings.TrimSpace(string(body))
	if err := c.vars.Set(name, value); err != nil {
		if errors.Is(err, config.ErrUnknownVar) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c.log.Infof("%s set to %q", name, value)

	v, _ := c.vars.Get(name)
	writeJSON(w, v)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("could not encode response: %s", err), http.StatusInternalServerError)
	}
}
