package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/ats-realtime/internal/entities"
	"github.com/maxaizer/ats-realtime/internal/events"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type applicantRepository interface {
	Add(ctx context.Context, applicant *entities.Applicant) error
	GetByID(ctx context.Context, id int64) (*entities.Applicant, error)
	UpdateStatus(ctx context.Context, id int64, from, to entities.ApplicantStatus, notes string) (*entities.Applicant, error)
}

type applicantLister interface {
	GetByJob(ctx context.Context, jobID int64) ([]entities.Applicant, error)
}

type ApplicantService struct {
	applicants applicantRepository
	lister     applicantLister
	jobs       jobRepository
	bus        EventBus.Bus
}

func NewApplicantService(applicants applicantRepository, lister applicantLister, jobs jobRepository,
	bus EventBus.Bus) *ApplicantService {
	return &ApplicantService{applicants: applicants, lister: lister, jobs: jobs, bus: bus}
}

// Create stores a new applicant of jobID in the initial pipeline status and announces it
// together with the job.
func (s *ApplicantService) Create(ctx context.Context, jobID int64, applicant entities.Applicant) (*entities.Applicant, error) {

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, errors.Wrapf(err, "get job %d", jobID)
	}
	if job == nil {
		return nil, errors.Wrapf(ErrJobNotFound, "id %d", jobID)
	}

	applicant.ID = 0
	applicant.JobID = jobID
	applicant.Status = entities.StatusNew

	if err = s.applicants.Add(ctx, &applicant); err != nil {
		return nil, errors.Wrap(err, "add applicant")
	}

	log.Infof("applicant %d added to job %d", applicant.ID, jobID)
	s.bus.Publish(events.ApplicantCreatedTopic, events.ApplicantCreated{Applicant: applicant, Job: *job})
	return &applicant, nil
}

func (s *ApplicantService) Get(ctx context.Context, id int64) (*entities.Applicant, error) {
	applicant, err := s.applicants.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "get applicant %d", id)
	}
	if applicant == nil {
		return nil, errors.Wrapf(ErrApplicantNotFound, "id %d", id)
	}
	return applicant, nil
}

func (s *ApplicantService) ListByJob(ctx context.Context, jobID int64) ([]entities.Applicant, error) {
	return s.lister.GetByJob(ctx, jobID)
}
