package api

import (
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/ats-realtime/internal/entities"
	"github.com/pkg/errors"
	"net/http"
)

const defaultEmploymentType = "Full-time"

type createJobRequest struct {
	Title          string             `json:"title" binding:"required"`
	Department     string             `json:"department" binding:"required"`
	Location       string             `json:"location" binding:"required"`
	Description    string             `json:"description" binding:"required"`
	Requirements   string             `json:"requirements" binding:"required"`
	MinSalary      *int               `json:"minSalary" binding:"omitempty,gte=0"`
	MaxSalary      *int               `json:"maxSalary" binding:"omitempty,gte=0"`
	EmploymentType string             `json:"employmentType"`
	Status         entities.JobStatus `json:"status" binding:"omitempty,oneof=draft active on_hold filled closed"`
}

type assignRecruiterRequest struct {
	RecruiterID int64 `json:"recruiterId" binding:"required,gt=0"`
}

func (h *Handler) ListJobs(c *gin.Context) {
	me := caller(c)
	jobs, err := h.jobs.List(c.Request.Context(), me.UserID, me.Role)
	if err != nil {
		writeError(c, err)
		return
	}
	if jobs == nil {
		jobs = []entities.Job{}
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *Handler) CreateJob(c *gin.Context) {
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.MinSalary != nil && req.MaxSalary != nil && *req.MaxSalary < *req.MinSalary {
		badRequest(c, errors.New("maxSalary is less than minSalary"))
		return
	}
	if req.EmploymentType == "" {
		req.EmploymentType = defaultEmploymentType
	}

	job, err := h.jobs.Create(c.Request.Context(), caller(c).UserID, entities.Job{
		Title:          req.Title,
		Department:     req.Department,
		Location:       req.Location,
		Description:    req.Description,
		Requirements:   req.Requirements,
		MinSalary:      req.MinSalary,
		MaxSalary:      req.MaxSalary,
		EmploymentType: req.EmploymentType,
		Status:         req.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

func (h *Handler) GetJob(c *gin.Context) {
	job, ok := h.visibleJob(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *Handler) AssignRecruiter(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req assignRecruiterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	job, err := h.jobs.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if !job.IsManagedBy(caller(c).UserID) {
		forbidden(c, "You can only assign recruiters to your own jobs")
		return
	}

	job, err = h.jobs.AssignRecruiter(c.Request.Context(), id, req.RecruiterID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// visibleJob loads the job named in the path and writes the response itself when the
// caller may not see it.
func (h *Handler) visibleJob(c *gin.Context) (*entities.Job, bool) {
	id, ok := pathID(c)
	if !ok {
		return nil, false
	}

	job, err := h.jobs.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return nil, false
	}

	me := caller(c)
	if !job.IsVisibleTo(me.UserID, me.Role) {
		forbidden(c, "You can only view your own or assigned jobs")
		return nil, false
	}
	return job, true
}
