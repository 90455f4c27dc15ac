package realtime

import (
	"github.com/maxaizer/ats-realtime/internal/entities"
	log "github.com/sirupsen/logrus"
	"sync"
)

// Transport is the live connection handle kept by the registry. Implementations must be
// comparable (pointer receivers) and Send must not block.
type Transport interface {
	ID() string
	Send(data []byte) error
	Ping() error
	Terminate() error
}

type Identity struct {
	UserID int64
	Role   entities.Role
}

type Peer struct {
	Transport Transport
	Identity  Identity
	Bound     bool
}

type connection struct {
	identity Identity
	bound    bool
	alive    bool
}

// Registry tracks open connections and who they belong to. Iteration follows
// registration order.
type Registry struct {
	mu    sync.Mutex
	conns map[Transport]*connection
	order []Transport
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[Transport]*connection)}
}

func (r *Registry) Register(t Transport) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conns[t]; ok {
		return
	}
	r.conns[t] = &connection{alive: true}
	r.order = append(r.order, t)
}

// BindIdentity attaches an identity to t. It reports false when t is no longer registered.
func (r *Registry) BindIdentity(t Transport, userID int64, role entities.Role) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.conns[t]
	if !ok {
		return false
	}
	conn.identity = Identity{UserID: userID, Role: role}
	conn.bound = true
	conn.alive = true
	return true
}

func (r *Registry) MarkAlive(t Transport) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if conn, ok := r.conns[t]; ok {
		conn.alive = true
	}
}

func (r *Registry) Identity(t Transport) (Identity, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.conns[t]
	if !ok || !conn.bound {
		return Identity{}, false
	}
	return conn.identity, true
}

// Remove forgets t and returns the identity that was bound to it, if any.
// Removing an unknown handle is a no-op, so a connection is reported at most once.
func (r *Registry) Remove(t Transport) (Identity, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.removeLocked(t)
}

func (r *Registry) removeLocked(t Transport) (Identity, bool) {
	conn, ok := r.conns[t]
	if !ok {
		return Identity{}, false
	}
	delete(r.conns, t)
	for i, candidate := range r.order {
		if candidate == t {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return conn.identity, conn.bound
}

// Sweep terminates and removes every connection that did not answer the previous probe,
// then flags the rest as not alive and probes them again. It returns the identities of
// the removed connections that were bound.
func (r *Registry) Sweep() []Identity {
	var dead, probed []Transport
	var offline []Identity

	r.mu.Lock()
	kept := make([]Transport, 0, len(r.order))
	for _, t := range r.order {
		conn := r.conns[t]
		if !conn.alive {
			dead = append(dead, t)
			delete(r.conns, t)
			if conn.bound {
				offline = append(offline, conn.identity)
			}
			continue
		}
		conn.alive = false
		probed = append(probed, t)
		kept = append(kept, t)
	}
	r.order = kept
	r.mu.Unlock()

	for _, t := range dead {
		if err := t.Terminate(); err != nil {
			log.WithField("conn", t.ID()).Debugf("terminate failed: %v", err)
		}
	}
	for _, t := range probed {
		if err := t.Ping(); err != nil {
			log.WithField("conn", t.ID()).Debugf("liveness probe failed: %v", err)
		}
	}

	return offline
}

func (r *Registry) Snapshot() []Peer {
	r.mu.Lock()
	defer r.mu.Unlock()

	peers := make([]Peer, 0, len(r.order))
	for _, t := range r.order {
		conn := r.conns[t]
		peers = append(peers, Peer{Transport: t, Identity: conn.identity, Bound: conn.bound})
	}
	return peers
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.conns)
}
