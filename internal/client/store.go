package client

import (
	"github.com/maxaizer/ats-realtime/internal/realtime"
	log "github.com/sirupsen/logrus"
	"maps"
	"slices"
	"sync"
	"time"
)

const FeedLimit = 10

type PresenceRecord struct {
	Status    realtime.PresenceStatus
	Timestamp time.Time
}

// Store is the client side view of the realtime stream: a short feed of creation events
// and the last known presence and activity of every user.
type Store struct {
	mu       sync.RWMutex
	feed     []realtime.ServerMessage
	presence map[int64]PresenceRecord
	activity map[int64]string
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		presence: make(map[int64]PresenceRecord),
		activity: make(map[int64]string),
		now:      time.Now,
	}
}

func (s *Store) Apply(msg realtime.ServerMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch m := msg.(type) {
	case realtime.PresenceUpdate:
		s.presence[m.UserID] = PresenceRecord{Status: m.Status, Timestamp: m.Timestamp}
		if m.Action != "" {
			s.activity[m.UserID] = m.Action
		}
	case realtime.UserOffline:
		s.presence[m.UserID] = PresenceRecord{Status: realtime.PresenceOffline, Timestamp: s.now()}
	case realtime.UserCreated, realtime.JobCreated, realtime.ApplicantCreated:
		s.feed = slices.Insert(s.feed, 0, msg)
		if len(s.feed) > FeedLimit {
			s.feed = s.feed[:FeedLimit]
		}
	case realtime.ConnectionMessage, realtime.AuthSuccess:
		log.Debugf("%s acknowledged", msg.MessageType())
	}
}

// Feed returns the most recent creation events, newest first.
func (s *Store) Feed() []realtime.ServerMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.feed)
}

func (s *Store) Presence() map[int64]PresenceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.presence)
}

func (s *Store) Activity() map[int64]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.activity)
}

func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feed = nil
	s.presence = make(map[int64]PresenceRecord)
	s.activity = make(map[int64]string)
}
