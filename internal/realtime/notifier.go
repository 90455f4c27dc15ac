package realtime

import (
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/ats-realtime/internal/entities"
	"github.com/maxaizer/ats-realtime/internal/events"
	"github.com/maxaizer/ats-realtime/internal/logger"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Notifier turns domain events published on the bus into websocket notifications.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub, bus EventBus.Bus) (*Notifier, error) {

	if hub == nil {
		return nil, errors.New("hub is nil")
	}
	if bus == nil {
		return nil, errors.New("bus is nil")
	}

	n := &Notifier{hub: hub}

	if err := bus.Subscribe(events.UserCreatedTopic, n.onUserCreated); err != nil {
		return nil, err
	}
	if err := bus.Subscribe(events.JobCreatedTopic, n.onJobCreated); err != nil {
		return nil, err
	}
	if err := bus.Subscribe(events.ApplicantCreatedTopic, n.onApplicantCreated); err != nil {
		return nil, err
	}
	return n, nil
}

// CanReceiveApplicant reports whether a connection with the given identity is allowed
// to see applicants of job.
func CanReceiveApplicant(identity Identity, job entities.Job) bool {
	return job.IsVisibleTo(identity.UserID, identity.Role)
}

func (n *Notifier) onUserCreated(event events.UserCreated) {
	defer n.recover(events.UserCreatedTopic)
	sent := n.hub.Broadcast(UserCreated{User: event.User}, nil)
	log.Debugf("user_created for user %d delivered to %d connections", event.User.ID, sent)
}

func (n *Notifier) onJobCreated(event events.JobCreated) {
	defer n.recover(events.JobCreatedTopic)
	sent := n.hub.Broadcast(JobCreated{Job: event.Job}, nil)
	log.Debugf("job_created for job %d delivered to %d connections", event.Job.ID, sent)
}

func (n *Notifier) onApplicantCreated(event events.ApplicantCreated) {
	defer n.recover(events.ApplicantCreatedTopic)

	msg := ApplicantCreated{Applicant: event.Applicant, JobID: event.Job.ID, JobTitle: event.Job.Title}
	sent := n.hub.Broadcast(msg, func(p Peer) bool {
		return p.Bound && CanReceiveApplicant(p.Identity, event.Job)
	})
	log.Debugf("applicant_created for applicant %d delivered to %d connections", event.Applicant.ID, sent)
}

func (n *Notifier) recover(topic string) {
	if r := recover(); r != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeWs).Errorf("notification for %s failed: %v", topic, r)
	}
}
