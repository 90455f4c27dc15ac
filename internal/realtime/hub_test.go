package realtime

import (
	"encoding/json"
	"errors"
	"github.com/maxaizer/ats-realtime/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
	"time"
)

type fakeTransport struct {
	id         string
	mu         sync.Mutex
	sent       [][]byte
	failSend   bool
	pings      int
	terminated int
}

func newFakeTransport(id string) *fakeTransport {
	return &fakeTransport{id: id}
}

func (f *fakeTransport) ID() string { return f.id }

func (f *fakeTransport) Send(data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSend {
		return errors.New("broken pipe")
	}
	f.sent = append(f.sent, data)
	return nil
}

func (f *fakeTransport) Ping() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings++
	return nil
}

func (f *fakeTransport) Terminate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.terminated++
	return nil
}

func (f *fakeTransport) received(msgType MessageType) []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []map[string]any
	for _, data := range f.sent {
		var fields map[string]any
		if err := json.Unmarshal(data, &fields); err != nil {
			continue
		}
		if fields["type"] == string(msgType) {
			result = append(result, fields)
		}
	}
	return result
}

func connectAs(t *testing.T, hub *Hub, id string, userID int64, role entities.Role) *fakeTransport {
	t.Helper()
	conn := newFakeTransport(id)
	hub.Connect(conn)
	hub.Receive(conn, []byte(`{"type":"auth","userId":`+jsonInt(userID)+`,"role":"`+string(role)+`"}`))
	require.Len(t, conn.received(TypeAuthSuccess), 1)
	return conn
}

func jsonInt(v int64) string {
	data, _ := json.Marshal(v)
	return string(data)
}

func newTestHub() *Hub {
	hub := NewHub(NewRegistry())
	hub.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return hub
}

func Test_Hub_Connect_ShouldGreet(t *testing.T) {
	hub := newTestHub()
	conn := newFakeTransport("a")

	hub.Connect(conn)

	greetings := conn.received(TypeConnection)
	require.Len(t, greetings, 1)
	assert.Equal(t, connectedGreeting, greetings[0]["message"])
	assert.Equal(t, 1, hub.Registry().Len())
}

func Test_Hub_Receive_WhenAuth_ShouldBindAndAcknowledge(t *testing.T) {
	hub := newTestHub()
	conn := connectAs(t, hub, "a", 42, entities.RoleRecruiter)

	identity, ok := hub.Registry().Identity(conn)
	assert.True(t, ok)
	assert.Equal(t, Identity{UserID: 42, Role: entities.RoleRecruiter}, identity)

	ack := conn.received(TypeAuthSuccess)[0]
	assert.Equal(t, float64(42), ack["userId"])
	assert.Equal(t, "recruiter", ack["role"])
}

func Test_Hub_RelayPresence_ShouldReachEveryoneButSender(t *testing.T) {
	hub := newTestHub()
	sender := connectAs(t, hub, "a", 1, entities.RoleAdmin)
	other := connectAs(t, hub, "b", 2, entities.RoleRecruiter)
	anonymous := newFakeTransport("c")
	hub.Connect(anonymous)

	hub.Receive(sender, []byte(`{"type":"presence","status":"active","action":"Viewing job 7"}`))

	assert.Empty(t, sender.received(TypePresenceUpdate))
	assert.Len(t, anonymous.received(TypePresenceUpdate), 1)

	updates := other.received(TypePresenceUpdate)
	require.Len(t, updates, 1)
	assert.Equal(t, float64(1), updates[0]["userId"])
	assert.Equal(t, "admin", updates[0]["role"])
	assert.Equal(t, "active", updates[0]["status"])
	assert.Equal(t, "Viewing job 7", updates[0]["action"])
	assert.Equal(t, "2024-05-01T12:00:00Z", updates[0]["timestamp"])
}

func Test_Hub_RelayPresence_WhenSenderUnbound_ShouldDrop(t *testing.T) {
	hub := newTestHub()
	listener := connectAs(t, hub, "a", 1, entities.RoleAdmin)
	anonymous := newFakeTransport("b")
	hub.Connect(anonymous)

	hub.Receive(anonymous, []byte(`{"type":"presence","status":"online"}`))

	assert.Empty(t, listener.received(TypePresenceUpdate))
	assert.Equal(t, 0, hub.RelayPresence(anonymous, PresenceOnline, ""))
}

func Test_Hub_Receive_WhenMalformed_ShouldDropAndKeepConnection(t *testing.T) {
	hub := newTestHub()
	conn := newFakeTransport("a")
	hub.Connect(conn)

	hub.Receive(conn, []byte(`not json`))
	hub.Receive(conn, []byte(`{"type":"subscribe"}`))
	hub.Receive(conn, []byte(`{"type":"auth","userId":0,"role":"admin"}`))
	hub.Receive(conn, []byte(`{"type":"auth","userId":3,"role":"owner"}`))

	_, bound := hub.Registry().Identity(conn)
	assert.False(t, bound)
	assert.Equal(t, 1, hub.Registry().Len())
	assert.Empty(t, conn.received(TypeAuthSuccess))
}

func Test_Hub_Sweep_WhenUserMissesTwoSweeps_ShouldAnnounceOfflineOnce(t *testing.T) {
	hub := newTestHub()
	silent := connectAs(t, hub, "a", 42, entities.RoleRecruiter)
	responsive := connectAs(t, hub, "b", 7, entities.RoleAdmin)

	hub.Sweep()
	hub.Pong(responsive)
	hub.Sweep()
	hub.Pong(responsive)
	hub.Sweep()

	offline := responsive.received(TypeUserOffline)
	require.Len(t, offline, 1)
	assert.Equal(t, float64(42), offline[0]["userId"])
	assert.Equal(t, 1, silent.terminated)
	assert.Equal(t, 1, hub.Registry().Len())

	hub.Disconnect(silent)
	assert.Len(t, responsive.received(TypeUserOffline), 1)
}

func Test_Hub_Disconnect_WhenBound_ShouldAnnounceOffline(t *testing.T) {
	hub := newTestHub()
	leaving := connectAs(t, hub, "a", 5, entities.RoleHiringManager)
	staying := connectAs(t, hub, "b", 6, entities.RoleHiringManager)

	hub.Disconnect(leaving)
	hub.Disconnect(leaving)

	offline := staying.received(TypeUserOffline)
	require.Len(t, offline, 1)
	assert.Equal(t, float64(5), offline[0]["userId"])
	assert.Empty(t, leaving.received(TypeUserOffline))
}

func Test_Hub_Disconnect_WhenUnbound_ShouldStaySilent(t *testing.T) {
	hub := newTestHub()
	anonymous := newFakeTransport("a")
	hub.Connect(anonymous)
	listener := connectAs(t, hub, "b", 1, entities.RoleAdmin)

	hub.Disconnect(anonymous)

	assert.Empty(t, listener.received(TypeUserOffline))
}

func Test_Hub_Broadcast_WhenRecipientFails_ShouldDeliverToOthers(t *testing.T) {
	hub := newTestHub()
	first := connectAs(t, hub, "a", 1, entities.RoleAdmin)
	broken := connectAs(t, hub, "b", 2, entities.RoleAdmin)
	last := connectAs(t, hub, "c", 3, entities.RoleAdmin)
	broken.failSend = true

	delivered := hub.Broadcast(UserOffline{UserID: 99}, nil)

	assert.Equal(t, 2, delivered)
	assert.Len(t, first.received(TypeUserOffline), 1)
	assert.Len(t, last.received(TypeUserOffline), 1)
}

func Test_Hub_CloseAll_ShouldTerminateEveryConnection(t *testing.T) {
	hub := newTestHub()
	a := connectAs(t, hub, "a", 1, entities.RoleAdmin)
	b := newFakeTransport("b")
	hub.Connect(b)

	hub.CloseAll()

	assert.Equal(t, 1, a.terminated)
	assert.Equal(t, 1, b.terminated)
}
