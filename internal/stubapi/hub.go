package stubapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"doorsteps/internal/domain"
)

const (
	hubWriteWait  = 10 * time.Second
	hubPongWait   = 60 * time.Second
	hubPingPeriod = (hubPongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The stub serves local development only.
	CheckOrigin: func(*http.Request) bool { return true },
}

// hub fans notifications out to every connected websocket client.
type hub struct {
	log        *zap.Logger
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	broadcast  chan domain.Notification
}

type client struct {
	conn *websocket.Conn
	send chan domain.Notification
}

func newHub(log *zap.Logger) *hub {
	return &hub{
		log:        log,
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan domain.Notification, 16),
	}
}

func (h *hub) run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case n := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- n:
				default:
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

func (h *hub) push(n domain.Notification) {
	select {
	case h.broadcast <- n:
	default:
		h.log.Warn("notification broadcast dropped", zap.Int64("id", n.ID))
	}
}

func (s *Server) serveWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	cl := &client{conn: conn, send: make(chan domain.Notification, 16)}
	s.hub.register <- cl

	go cl.writePump(s.hub)
	go cl.readPump(s.hub)
}

func (c *client) readPump(h *hub) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(hubPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(hubPongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump(h *hub) {
	ticker := time.NewTicker(hubPingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case n, open := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(hubWriteWait))
			if !open {
				_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteJSON(n); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(hubWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
