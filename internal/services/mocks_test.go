package services

import (
	"context"
	"github.com/maxaizer/ats-realtime/internal/entities"
	"github.com/stretchr/testify/mock"
)

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) Add(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = 100
	}
	return args.Error(0)
}

func (m *mockUsers) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *mockUsers) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *mockUsers) GetAll(ctx context.Context) ([]entities.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]entities.User)
	return users, args.Error(1)
}

func (m *mockUsers) GetByRole(ctx context.Context, role entities.Role) ([]entities.User, error) {
	args := m.Called(ctx, role)
	users, _ := args.Get(0).([]entities.User)
	return users, args.Error(1)
}

type mockJobs struct {
	mock.Mock
}

func (m *mockJobs) Add(ctx context.Context, job *entities.Job) error {
	args := m.Called(ctx, job)
	if args.Error(0) == nil {
		job.ID = 200
	}
	return args.Error(0)
}

func (m *mockJobs) GetByID(ctx context.Context, id int64) (*entities.Job, error) {
	args := m.Called(ctx, id)
	job, _ := args.Get(0).(*entities.Job)
	return job, args.Error(1)
}

func (m *mockJobs) GetAll(ctx context.Context) ([]entities.Job, error) {
	args := m.Called(ctx)
	jobs, _ := args.Get(0).([]entities.Job)
	return jobs, args.Error(1)
}

func (m *mockJobs) GetByHiringManager(ctx context.Context, hiringManagerID int64) ([]entities.Job, error) {
	args := m.Called(ctx, hiringManagerID)
	jobs, _ := args.Get(0).([]entities.Job)
	return jobs, args.Error(1)
}

func (m *mockJobs) GetByRecruiter(ctx context.Context, recruiterID int64) ([]entities.Job, error) {
	args := m.Called(ctx, recruiterID)
	jobs, _ := args.Get(0).([]entities.Job)
	return jobs, args.Error(1)
}

func (m *mockJobs) AssignRecruiter(ctx context.Context, jobID int64, recruiterID int64) (*entities.Job, error) {
	args := m.Called(ctx, jobID, recruiterID)
	job, _ := args.Get(0).(*entities.Job)
	return job, args.Error(1)
}

type mockApplicants struct {
	mock.Mock
}

func (m *mockApplicants) Add(ctx context.Context, applicant *entities.Applicant) error {
	args := m.Called(ctx, applicant)
	if args.Error(0) == nil {
		applicant.ID = 300
	}
	return args.Error(0)
}

func (m *mockApplicants) GetByID(ctx context.Context, id int64) (*entities.Applicant, error) {
	args := m.Called(ctx, id)
	applicant, _ := args.Get(0).(*entities.Applicant)
	return applicant, args.Error(1)
}

func (m *mockApplicants) GetByJob(ctx context.Context, jobID int64) ([]entities.Applicant, error) {
	args := m.Called(ctx, jobID)
	applicants, _ := args.Get(0).([]entities.Applicant)
	return applicants, args.Error(1)
}

func (m *mockApplicants) UpdateStatus(ctx context.Context, id int64, from, to entities.ApplicantStatus,
	notes string) (*entities.Applicant, error) {
	args := m.Called(ctx, id, from, to, notes)
	applicant, _ := args.Get(0).(*entities.Applicant)
	return applicant, args.Error(1)
}
