package realtime

import (
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/ats-realtime/internal/entities"
	"github.com/maxaizer/ats-realtime/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func newTestNotifier(t *testing.T) (*Hub, EventBus.Bus) {
	t.Helper()
	hub := newTestHub()
	bus := EventBus.New()
	_, err := NewNotifier(hub, bus)
	require.NoError(t, err)
	return hub, bus
}

func Test_Notifier_WhenApplicantCreated_ShouldReachOnlyPermittedConnections(t *testing.T) {
	hub, bus := newTestNotifier(t)

	admin := connectAs(t, hub, "admin", 1, entities.RoleAdmin)
	owner := connectAs(t, hub, "owner", 5, entities.RoleHiringManager)
	otherManager := connectAs(t, hub, "other", 6, entities.RoleHiringManager)
	recruiter := connectAs(t, hub, "recruiter", 9, entities.RoleRecruiter)
	anonymous := newFakeTransport("anonymous")
	hub.Connect(anonymous)

	recruiterID := int64(9)
	job := entities.Job{ID: 7, Title: "Backend Engineer", HiringManagerID: 5, RecruiterID: &recruiterID}
	applicant := entities.Applicant{ID: 11, JobID: 7, FirstName: "Ada", LastName: "Lovelace", Status: entities.StatusNew}

	bus.Publish(events.ApplicantCreatedTopic, events.ApplicantCreated{Applicant: applicant, Job: job})

	for _, conn := range []*fakeTransport{admin, owner, recruiter} {
		received := conn.received(TypeApplicantCreated)
		require.Len(t, received, 1, conn.id)
		assert.Equal(t, float64(7), received[0]["jobId"])
		assert.Equal(t, "Backend Engineer", received[0]["jobTitle"])
	}
	assert.Empty(t, otherManager.received(TypeApplicantCreated))
	assert.Empty(t, anonymous.received(TypeApplicantCreated))
}

func Test_Notifier_WhenJobCreated_ShouldReachEveryConnection(t *testing.T) {
	hub, bus := newTestNotifier(t)
	bound := connectAs(t, hub, "a", 1, entities.RoleRecruiter)
	anonymous := newFakeTransport("b")
	hub.Connect(anonymous)

	bus.Publish(events.JobCreatedTopic, events.JobCreated{Job: entities.Job{ID: 3, Title: "QA"}})

	assert.Len(t, bound.received(TypeJobCreated), 1)
	assert.Len(t, anonymous.received(TypeJobCreated), 1)
}

func Test_Notifier_WhenUserCreated_ShouldReachEveryConnection(t *testing.T) {
	hub, bus := newTestNotifier(t)
	listener := connectAs(t, hub, "a", 1, entities.RoleAdmin)

	bus.Publish(events.UserCreatedTopic, events.UserCreated{User: entities.User{ID: 2, Username: "jdoe"}})

	received := listener.received(TypeUserCreated)
	require.Len(t, received, 1)
	user := received[0]["user"].(map[string]any)
	assert.Equal(t, "jdoe", user["username"])
}

func Test_CanReceiveApplicant(t *testing.T) {
	recruiterID := int64(9)
	assigned := entities.Job{HiringManagerID: 5, RecruiterID: &recruiterID}
	unassigned := entities.Job{HiringManagerID: 5}

	assert.True(t, CanReceiveApplicant(Identity{UserID: 100, Role: entities.RoleAdmin}, unassigned))
	assert.True(t, CanReceiveApplicant(Identity{UserID: 5, Role: entities.RoleHiringManager}, assigned))
	assert.False(t, CanReceiveApplicant(Identity{UserID: 9, Role: entities.RoleHiringManager}, assigned))
	assert.True(t, CanReceiveApplicant(Identity{UserID: 9, Role: entities.RoleRecruiter}, assigned))
	assert.False(t, CanReceiveApplicant(Identity{UserID: 9, Role: entities.RoleRecruiter}, unassigned))
	assert.False(t, CanReceiveApplicant(Identity{UserID: 5, Role: "guest"}, assigned))
}

func Test_NewNotifier_WhenBusMissing_ShouldFail(t *testing.T) {
	_, err := NewNotifier(newTestHub(), nil)
	assert.Error(t, err)
}
