package client

import (
	"context"
	"github.com/gorilla/websocket"
	"github.com/maxaizer/ats-realtime/internal/entities"
	"github.com/maxaizer/ats-realtime/internal/realtime"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"sync"
	"sync/atomic"
	"time"
)

type State string

const (
	StateDisconnected  State = "disconnected"
	StateConnecting    State = "connecting"
	StateOpen          State = "open"
	StateAuthenticated State = "authenticated"
	StateClosing       State = "closing"
)

const (
	DefaultHeartbeat = 60 * time.Second
	writeWait        = 10 * time.Second
)

var ErrNotConnected = errors.New("client is not connected")

type Config struct {
	URL       string
	UserID    int64
	Role      entities.Role
	Heartbeat time.Duration

	// OnMessage, when set, is called for every decoded server message after the store applied it.
	// It runs on the read loop; calling Close from it is allowed.
	OnMessage func(msg realtime.ServerMessage)
}

// Client keeps one websocket session to the realtime server. It does not reconnect: once the
// server goes away the client stays disconnected until Connect is called again.
type Client struct {
	cfg    Config
	store  *Store
	dialer *websocket.Dialer

	mu    sync.Mutex
	state State
	conn  *websocket.Conn

	writeMu sync.Mutex
	stop    chan struct{}
	done    chan struct{}

	dispatching atomic.Bool
}

func New(cfg Config, store *Store) *Client {
	if cfg.Heartbeat <= 0 {
		cfg.Heartbeat = DefaultHeartbeat
	}
	return &Client{
		cfg:    cfg,
		store:  store,
		dialer: websocket.DefaultDialer,
		state:  StateDisconnected,
	}
}

func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Client) Store() *Store {
	return c.store
}

// Connect dials the server, authenticates and announces the user as online.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateDisconnected {
		state := c.state
		c.mu.Unlock()
		return errors.Errorf("cannot connect while %s", state)
	}
	c.state = StateConnecting
	c.mu.Unlock()

	conn, _, err := c.dialer.DialContext(ctx, c.cfg.URL, nil)
	if err != nil {
		c.setState(StateDisconnected)
		return errors.Wrapf(err, "dial %s", c.cfg.URL)
	}

	c.store.Reset()

	c.mu.Lock()
	c.conn = conn
	c.state = StateOpen
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	c.mu.Unlock()

	go c.readLoop(conn, c.done)

	if err = c.send(realtime.AuthMessage{UserID: c.cfg.UserID, Role: c.cfg.Role}); err != nil {
		_ = c.Close()
		return errors.Wrap(err, "send auth")
	}
	if err = c.SendPresence(realtime.PresenceOnline, ""); err != nil {
		_ = c.Close()
		return errors.Wrap(err, "send presence")
	}

	go c.heartbeat(c.stop)
	return nil
}

func (c *Client) SendPresence(status realtime.PresenceStatus, action string) error {
	return c.send(realtime.PresenceMessage{Status: status, Action: action})
}

// Close announces the user as offline and closes the session.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.state != StateOpen && c.state != StateAuthenticated {
		c.mu.Unlock()
		return nil
	}
	c.state = StateClosing
	conn, stop, done := c.conn, c.stop, c.done
	c.mu.Unlock()

	close(stop)

	if err := c.write(conn, realtime.PresenceMessage{Status: realtime.PresenceOffline}); err != nil {
		log.Debugf("failed to send offline presence: %v", err)
	}

	c.writeMu.Lock()
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
	c.writeMu.Unlock()

	err := conn.Close()
	// the read loop cannot finish while it is running OnMessage
	if !c.dispatching.Load() {
		<-done
	}

	c.setState(StateDisconnected)
	return err
}

func (c *Client) readLoop(conn *websocket.Conn, done chan struct{}) {
	defer close(done)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if c.State() != StateClosing {
				log.Warnf("connection lost: %v", err)
				c.dropConnection(conn)
			}
			return
		}

		msg, err := realtime.DecodeServerMessage(data)
		if err != nil {
			log.Warnf("dropping server message: %v", err)
			continue
		}

		if _, ok := msg.(realtime.AuthSuccess); ok {
			c.mu.Lock()
			if c.state == StateOpen {
				c.state = StateAuthenticated
			}
			c.mu.Unlock()
		}

		c.store.Apply(msg)
		if c.cfg.OnMessage != nil {
			c.dispatching.Store(true)
			c.cfg.OnMessage(msg)
			c.dispatching.Store(false)
		}
	}
}

func (c *Client) heartbeat(stop chan struct{}) {
	ticker := time.NewTicker(c.cfg.Heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := c.SendPresence(realtime.PresenceOnline, ""); err != nil {
				log.Debugf("heartbeat failed: %v", err)
			}
		}
	}
}

// dropConnection handles a session the server ended. No offline presence is sent.
func (c *Client) dropConnection(conn *websocket.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == conn && (c.state == StateOpen || c.state == StateAuthenticated) {
		close(c.stop)
		_ = c.conn.Close()
		c.state = StateDisconnected
	}
}

func (c *Client) send(msg realtime.ClientMessage) error {
	c.mu.Lock()
	conn, state := c.conn, c.state
	c.mu.Unlock()

	if conn == nil || (state != StateOpen && state != StateAuthenticated) {
		return ErrNotConnected
	}
	return c.write(conn, msg)
}

func (c *Client) write(conn *websocket.Conn, msg realtime.ClientMessage) error {
	data, err := realtime.Encode(msg)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}

func (c *Client) setState(state State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
}
