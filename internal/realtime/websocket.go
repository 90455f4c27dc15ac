package realtime

import (
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/maxaizer/ats-realtime/internal/config"
	"github.com/maxaizer/ats-realtime/internal/logger"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"net/http"
	"sync"
	"time"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
)

var (
	ErrSendBufferFull   = errors.New("send buffer is full")
	ErrConnectionClosed = errors.New("connection is closed")
)

type wsConn struct {
	id        string
	conn      *websocket.Conn
	send      chan []byte
	closed    chan struct{}
	closeOnce sync.Once
	limiter   *rate.Limiter
}

func newWsConn(conn *websocket.Conn, sendBuffer int, limiter *rate.Limiter) *wsConn {
	return &wsConn{
		id:      uuid.NewString(),
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		closed:  make(chan struct{}),
		limiter: limiter,
	}
}

func (c *wsConn) ID() string {
	return c.id
}

// Send queues data for the write goroutine. It never blocks.
func (c *wsConn) Send(data []byte) error {
	select {
	case <-c.closed:
		return ErrConnectionClosed
	default:
	}

	select {
	case c.send <- data:
		return nil
	case <-c.closed:
		return ErrConnectionClosed
	default:
		return ErrSendBufferFull
	}
}

func (c *wsConn) Ping() error {
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func (c *wsConn) Terminate() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closed)
		err = c.conn.Close()
	})
	return err
}

func (c *wsConn) writePump() {
	for {
		select {
		case <-c.closed:
			return
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.WithField("conn", c.id).Debugf("write failed: %v", err)
				_ = c.Terminate()
				return
			}
		}
	}
}

func (c *wsConn) readPump(hub *Hub) {
	defer func() {
		hub.Disconnect(c)
		_ = c.Terminate()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetPongHandler(func(string) error {
		hub.Pong(c)
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithField("conn", c.id).Debugf("connection closed unexpectedly: %v", err)
			}
			return
		}

		if !c.limiter.Allow() {
			log.WithField("conn", c.id).Warn("inbound rate limit exceeded, message dropped")
			continue
		}
		hub.Receive(c, data)
	}
}

// Server upgrades HTTP requests to websocket connections served by hub.
type Server struct {
	hub        *Hub
	upgrader   websocket.Upgrader
	sendBuffer int
	rateLimit  rate.Limit
	burst      int
}

func NewServer(hub *Hub, cfg config.RealtimeConfig) *Server {
	burst := int(cfg.MaxMessagesPerSecond)
	if burst < 1 {
		burst = 1
	}

	return &Server{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		sendBuffer: cfg.SendBuffer,
		rateLimit:  rate.Limit(cfg.MaxMessagesPerSecond),
		burst:      burst,
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeWs).Errorf("websocket upgrade failed: %v", err)
		return
	}

	c := newWsConn(conn, s.sendBuffer, rate.NewLimiter(s.rateLimit, s.burst))
	s.hub.Connect(c)

	go c.writePump()
	go c.readPump(s.hub)
}
