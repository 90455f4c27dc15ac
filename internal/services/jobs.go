package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/ats-realtime/internal/entities"
	"github.com/maxaizer/ats-realtime/internal/events"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type jobRepository interface {
	Add(ctx context.Context, job *entities.Job) error
	GetByID(ctx context.Context, id int64) (*entities.Job, error)
	GetAll(ctx context.Context) ([]entities.Job, error)
	GetByHiringManager(ctx context.Context, hiringManagerID int64) ([]entities.Job, error)
	GetByRecruiter(ctx context.Context, recruiterID int64) ([]entities.Job, error)
	AssignRecruiter(ctx context.Context, jobID int64, recruiterID int64) (*entities.Job, error)
}

type JobService struct {
	jobs  jobRepository
	users userRepository
	bus   EventBus.Bus
}

func NewJobService(jobs jobRepository, users userRepository, bus EventBus.Bus) *JobService {
	return &JobService{jobs: jobs, users: users, bus: bus}
}

// Create stores a job owned by hiringManagerID and announces it.
func (s *JobService) Create(ctx context.Context, hiringManagerID int64, job entities.Job) (*entities.Job, error) {

	job.ID = 0
	job.HiringManagerID = hiringManagerID
	job.RecruiterID = nil
	if job.Status == "" {
		job.Status = entities.JobActive
	}

	if err := s.jobs.Add(ctx, &job); err != nil {
		return nil, errors.Wrap(err, "add job")
	}

	log.Infof("job %d %q created by hiring manager %d", job.ID, job.Title, hiringManagerID)
	s.bus.Publish(events.JobCreatedTopic, events.JobCreated{Job: job})
	return &job, nil
}

func (s *JobService) Get(ctx context.Context, id int64) (*entities.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "get job %d", id)
	}
	if job == nil {
		return nil, errors.Wrapf(ErrJobNotFound, "id %d", id)
	}
	return job, nil
}

// List returns the jobs a user works with: every job for admins, owned jobs for hiring
// managers and assigned jobs for recruiters.
func (s *JobService) List(ctx context.Context, userID int64, role entities.Role) ([]entities.Job, error) {
	switch role {
	case entities.RoleAdmin:
		return s.jobs.GetAll(ctx)
	case entities.RoleHiringManager:
		return s.jobs.GetByHiringManager(ctx, userID)
	case entities.RoleRecruiter:
		return s.jobs.GetByRecruiter(ctx, userID)
	default:
		return nil, errors.Wrapf(ErrInvalidRole, "%q", role)
	}
}

func (s *JobService) AssignRecruiter(ctx context.Context, jobID int64, recruiterID int64) (*entities.Job, error) {

	recruiter, err := s.users.GetByID(ctx, recruiterID)
	if err != nil {
		return nil, errors.Wrapf(err, "get user %d", recruiterID)
	}
	if recruiter == nil || recruiter.Role != entities.RoleRecruiter || !recruiter.IsActive {
		return nil, errors.Wrapf(ErrInvalidRecruiter, "id %d", recruiterID)
	}

	job, err := s.jobs.AssignRecruiter(ctx, jobID, recruiterID)
	if err != nil {
		return nil, errors.Wrapf(err, "assign recruiter to job %d", jobID)
	}
	if job == nil {
		return nil, errors.Wrapf(ErrJobNotFound, "id %d", jobID)
	}

	log.Infof("recruiter %d assigned to job %d", recruiterID, jobID)
	return job, nil
}
