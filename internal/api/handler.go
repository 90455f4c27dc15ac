package api

import (
	"context"
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/ats-realtime/internal/entities"
	"net/http"
	"strconv"
)

type userService interface {
	Create(ctx context.Context, user entities.User) (*entities.User, error)
	List(ctx context.Context, role entities.Role) ([]entities.User, error)
}

type jobService interface {
	Create(ctx context.Context, hiringManagerID int64, job entities.Job) (*entities.Job, error)
	Get(ctx context.Context, id int64) (*entities.Job, error)
	List(ctx context.Context, userID int64, role entities.Role) ([]entities.Job, error)
	AssignRecruiter(ctx context.Context, jobID int64, recruiterID int64) (*entities.Job, error)
}

type applicantService interface {
	Create(ctx context.Context, jobID int64, applicant entities.Applicant) (*entities.Applicant, error)
	Get(ctx context.Context, id int64) (*entities.Applicant, error)
	ListByJob(ctx context.Context, jobID int64) ([]entities.Applicant, error)
}

type statusManager interface {
	Transition(ctx context.Context, applicantID int64, target entities.ApplicantStatus, notes string) (*entities.Applicant, error)
	Hold(ctx context.Context, applicantID int64, notes string) (*entities.Applicant, error)
	PermittedNext(ctx context.Context, applicantID int64) ([]entities.ApplicantStatus, error)
}

type Services struct {
	Users      userService
	Jobs       jobService
	Applicants applicantService
	Statuses   statusManager
}

type Handler struct {
	users      userService
	jobs       jobService
	applicants applicantService
	statuses   statusManager
}

func NewHandler(services Services) *Handler {
	return &Handler{
		users:      services.Users,
		jobs:       services.Jobs,
		applicants: services.Applicants,
		statuses:   services.Statuses,
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return 0, false
	}
	return id, true
}
