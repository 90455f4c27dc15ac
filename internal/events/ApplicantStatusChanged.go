package events

import "github.com/maxaizer/ats-realtime/internal/entities"

var ApplicantStatusChangedTopic = "ApplicantStatusChangedEvent"

type ApplicantStatusChanged struct {
	Applicant entities.Applicant
	From      entities.ApplicantStatus
}
