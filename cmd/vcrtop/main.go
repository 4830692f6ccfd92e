package main

import (
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gorilla/websocket"

	"vcrfx/pkg/vcr"
)

const reconnectDelay = time.Second

// Monitor shows the live state of a running overlay and sends console
// commands on key presses
type Monitor struct {
	screen    tcell.Screen
	addr      string
	client    *http.Client
	state     vcr.Snapshot
	connected bool
	status    string
	updated   time.Time

	snapshots chan vcr.Snapshot
	statuses  chan string
	quit      chan struct{}
}

func NewMonitor(addr string) (*Monitor, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	return &Monitor{
		screen:    screen,
		addr:      addr,
		client:    &http.Client{Timeout: 2 * time.Second},
		status:    "connecting to " + addr,
		snapshots: make(chan vcr.Snapshot, 16),
		statuses:  make(chan string, 16),
		quit:      make(chan struct{}),
	}, nil
}

// subscribe keeps a websocket open to the console, reconnecting on failure
func (m *Monitor) subscribe() {
	u := url.URL{Scheme: "ws", Host: m.addr, Path: "/api/ws"}
	for {
		ws, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
		if err != nil {
			m.report(fmt.Sprintf("disconnected: %v", err))
		} else {
			m.report("connected")
			for {
				var s vcr.Snapshot
				if err := ws.ReadJSON(&s); err != nil {
					m.report(fmt.Sprintf("stream ended: %v", err))
					break
				}
				m.push(s)
			}
			ws.Close()
		}

		select {
		case <-m.quit:
			return
		case <-time.After(reconnectDelay):
		}
	}
}

// push replaces the oldest pending snapshot when the UI falls behind
func (m *Monitor) push(s vcr.Snapshot) {
	for {
		select {
		case m.snapshots <- s:
			return
		default:
		}
		select {
		case <-m.snapshots:
		default:
		}
	}
}

func (m *Monitor) report(status string) {
	select {
	case m.statuses <- status:
	default:
	}
}

// send posts a console command without blocking the UI
func (m *Monitor) send(name, value string) {
	go func() {
		u := url.URL{Scheme: "http", Host: m.addr, Path: "/api/command/" + name}
		if value != "" {
			u.RawQuery = url.Values{"value": {value}}.Encode()
		}

		resp, err := m.client.Post(u.String(), "text/plain", nil)
		if err != nil {
			m.report(fmt.Sprintf("%s failed: %v", name, err))
			return
		}
		resp.Body.Close()
		m.report(fmt.Sprintf("%s %s: %s", name, value, resp.Status))
	}()
}

func (m *Monitor) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}

		s := m.state
		switch ev.Rune() {
		case 't':
			m.send("toggle", "")
		case 'q':
			m.send("quality", fmt.Sprint((s.Quality+1)%(vcr.QualityHigh+1)))
		case 'Q':
			m.send("quality", fmt.Sprint((s.Quality+vcr.QualityHigh)%(vcr.QualityHigh+1)))
		case 'm':
			m.send("mode", fmt.Sprint((s.Mode+1)%(vcr.ModeCCTV+1)))
		case 'd':
			m.send("distortion", "")
		case 'c':
			m.send("cctv", "")
		case 's':
			m.send("static", "")
		case 'x':
			m.send("tape_damage", "")
		case 'r':
			m.send("reset", "")
		case '[':
			m.send("battery", fmt.Sprintf("%.2f", s.Battery-0.05))
		case ']':
			m.send("battery", fmt.Sprintf("%.2f", s.Battery+0.05))
		}

	case *tcell.EventResize:
		m.screen.Sync()
	}
	return true
}

func (m *Monitor) run() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := m.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()
	go m.subscribe()

	for {
		select {
		case ev := <-eventChan:
			if !m.handleInput(ev) {
				return
			}
		case s := <-m.snapshots:
			m.state = s
			m.connected = true
			m.updated = time.Now()
		case status := <-m.statuses:
			m.status = status
		case <-ticker.C:
			if time.Since(m.updated) > 3*reconnectDelay {
				m.connected = false
			}
			m.draw()
		}
	}
}

func (m *Monitor) cleanup() {
	close(m.quit)
	m.screen.Fini()
}

func main() {
	addr := flag.String("addr", "127.0.0.1:8765", "Debug console address")
	flag.Parse()

	monitor, err := NewMonitor(*addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer monitor.cleanup()

	monitor.run()
}
