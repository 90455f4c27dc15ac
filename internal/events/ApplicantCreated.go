package events

import "github.com/maxaizer/ats-realtime/internal/entities"

var ApplicantCreatedTopic = "ApplicantCreatedEvent"

// ApplicantCreated carries the owning job so subscribers can route by its
// hiring manager and recruiter without another lookup.
type ApplicantCreated struct {
	Applicant entities.Applicant
	Job       entities.Job
}
