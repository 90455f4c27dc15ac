package events

import "github.com/maxaizer/ats-realtime/internal/entities"

var JobCreatedTopic = "JobCreatedEvent"

type JobCreated struct {
	Job entities.Job
}
