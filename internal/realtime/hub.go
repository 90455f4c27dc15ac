package realtime

import (
	"github.com/maxaizer/ats-realtime/internal/logger"
	"github.com/maxaizer/ats-realtime/internal/metrics"
	log "github.com/sirupsen/logrus"
	"time"
)

const connectedGreeting = "Connected to ATS WebSocket server"

// Hub routes inbound client messages and fans server messages out to registered connections.
type Hub struct {
	registry *Registry
	now      func() time.Time
}

func NewHub(registry *Registry) *Hub {
	return &Hub{registry: registry, now: time.Now}
}

func (h *Hub) Registry() *Registry {
	return h.registry
}

func (h *Hub) Connect(t Transport) {
	h.registry.Register(t)
	metrics.ConnectionsGauge.Set(float64(h.registry.Len()))
	h.send(t, ConnectionMessage{Message: connectedGreeting})
	log.WithField("conn", t.ID()).Debug("connection registered")
}

// Receive handles one raw inbound frame. Malformed frames are logged and dropped.
func (h *Hub) Receive(t Transport, data []byte) {
	msg, err := DecodeClientMessage(data)
	if err != nil {
		log.WithField("conn", t.ID()).Warnf("dropping inbound message: %v", err)
		return
	}

	switch m := msg.(type) {
	case AuthMessage:
		if !h.registry.BindIdentity(t, m.UserID, m.Role) {
			return
		}
		log.WithField("conn", t.ID()).Infof("user %d authenticated as %s", m.UserID, m.Role)
		h.send(t, AuthSuccess{UserID: m.UserID, Role: m.Role})
	case PresenceMessage:
		h.RelayPresence(t, m.Status, m.Action)
	}
}

func (h *Hub) Pong(t Transport) {
	h.registry.MarkAlive(t)
}

// Disconnect removes t and tells the remaining connections its user went offline.
// Calling it for a connection that is already gone does nothing.
func (h *Hub) Disconnect(t Transport) {
	identity, bound := h.registry.Remove(t)
	metrics.ConnectionsGauge.Set(float64(h.registry.Len()))
	if !bound {
		return
	}
	log.WithField("conn", t.ID()).Infof("user %d disconnected", identity.UserID)
	h.Broadcast(UserOffline{UserID: identity.UserID}, nil)
}

// RelayPresence forwards a presence update from sender to every other connection and
// returns the number of successful deliveries.
func (h *Hub) RelayPresence(sender Transport, status PresenceStatus, action string) int {
	identity, ok := h.registry.Identity(sender)
	if !ok {
		return 0
	}

	update := PresenceUpdate{
		UserID:    identity.UserID,
		Role:      identity.Role,
		Status:    status,
		Timestamp: h.now().UTC(),
		Action:    action,
	}
	return h.Broadcast(update, func(p Peer) bool { return p.Transport != sender })
}

// Broadcast sends msg to every registered connection accepted by filter (all when nil).
// A failing recipient is skipped.
func (h *Hub) Broadcast(msg ServerMessage, filter func(Peer) bool) int {
	data, err := Encode(msg)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeWs).Errorf("failed to encode %s: %v", msg.MessageType(), err)
		return 0
	}

	delivered := 0
	for _, peer := range h.registry.Snapshot() {
		if filter != nil && !filter(peer) {
			continue
		}
		if h.deliver(peer.Transport, msg.MessageType(), data) {
			delivered++
		}
	}
	return delivered
}

// Sweep runs one liveness pass and announces every user whose connection was reaped.
func (h *Hub) Sweep() {
	before := h.registry.Len()
	offline := h.registry.Sweep()
	after := h.registry.Len()
	metrics.ConnectionsGauge.Set(float64(after))
	if reaped := before - after; reaped > 0 {
		metrics.ReapedConnectionsCounter.Add(float64(reaped))
	}

	for _, identity := range offline {
		log.Infof("user %d missed the liveness probe, connection terminated", identity.UserID)
		h.Broadcast(UserOffline{UserID: identity.UserID}, nil)
	}
}

func (h *Hub) send(t Transport, msg ServerMessage) {
	data, err := Encode(msg)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeWs).Errorf("failed to encode %s: %v", msg.MessageType(), err)
		return
	}
	h.deliver(t, msg.MessageType(), data)
}

func (h *Hub) deliver(t Transport, msgType MessageType, data []byte) bool {
	if err := t.Send(data); err != nil {
		metrics.SendFailuresCounter.Inc()
		log.WithField("conn", t.ID()).Debugf("failed to send %s: %v", msgType, err)
		return false
	}
	metrics.MessagesSentCounter.WithLabelValues(string(msgType)).Inc()
	return true
}

// CloseAll terminates every registered connection. Their read loops then unregister them.
func (h *Hub) CloseAll() {
	for _, peer := range h.registry.Snapshot() {
		if err := peer.Transport.Terminate(); err != nil {
			log.WithField("conn", peer.Transport.ID()).Debugf("terminate failed: %v", err)
		}
	}
}
