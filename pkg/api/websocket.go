package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const writeTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(req *http.Request) bool {
		return true
	},
}

// handleWebsocket streams snapshots every publish interval until the client
// goes away or the console shuts down
func (c *Console) handleWebsocket(w http.ResponseWriter, req *http.Request) {
	ws, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		c.log.Warnf("couldn't make websocket: %v", err)
		return
	}

	c.mu.Lock()
	c.wsClients[ws] = true
	clients := len(c.wsClients)
	c.mu.Unlock()
	c.log.Debugf("websocket client connected (%d total)", clients)

	gone := make(chan struct{})
	go c.websocketWriter(ws, gone)

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
	close(gone)

	c.mu.Lock()
	delete(c.wsClients, ws)
	c.mu.Unlock()
	if err := ws.Close(); err != nil {
		c.log.Debugf("could not close websocket: %v", err)
	}
}

func (c *Console) websocketWriter(ws *websocket.Conn, gone <-chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	if err := c.writeSnapshot(ws); err != nil {
		return
	}
	for {
		select {
		case <-gone:
			return
		case <-c.done:
			return
		case <-ticker.C:
			if err := c.writeSnapshot(ws); err != nil {
				c.log.Debugf("websocket write failed: %v", err)
				return
			}
		}
	}
}

func (c *Console) writeSnapshot(ws *websocket.Conn) error {
	packet, err := json.Marshal(c.snapshot())
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %v", err)
	}
	if err := ws.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return ws.WriteMessage(websocket.TextMessage, packet)
}
