package api

import (
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/ats-realtime/internal/entities"
	"net/http"
)

type createApplicantRequest struct {
	FirstName          string `json:"firstName" binding:"required"`
	LastName           string `json:"lastName" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	PhoneNumber        string `json:"phoneNumber"`
	CurrentCompany     string `json:"currentCompany"`
	NoticePeriod       string `json:"noticePeriod"`
	TotalExperience    string `json:"totalExperience"`
	RelevantExperience string `json:"relevantExperience"`
	CurrentCtc         string `json:"currentCtc"`
	ExpectedCtc        string `json:"expectedCtc"`
	Resume             string `json:"resume"`
	Notes              string `json:"notes"`
}

type updateStatusRequest struct {
	Status entities.ApplicantStatus `json:"status" binding:"required"`
	Notes  string                   `json:"notes"`
}

type holdRequest struct {
	Notes string `json:"notes"`
}

func (h *Handler) ListApplicants(c *gin.Context) {
	job, ok := h.visibleJob(c)
	if !ok {
		return
	}

	applicants, err := h.applicants.ListByJob(c.Request.Context(), job.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	if applicants == nil {
		applicants = []entities.Applicant{}
	}
	c.JSON(http.StatusOK, applicants)
}

func (h *Handler) CreateApplicant(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req createApplicantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	job, err := h.jobs.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if !job.IsAssignedTo(caller(c).UserID) {
		forbidden(c, "You can only add applicants to jobs assigned to you")
		return
	}

	applicant, err := h.applicants.Create(c.Request.Context(), job.ID, entities.Applicant{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Email:              req.Email,
		PhoneNumber:        req.PhoneNumber,
		CurrentCompany:     req.CurrentCompany,
		NoticePeriod:       req.NoticePeriod,
		TotalExperience:    req.TotalExperience,
		RelevantExperience: req.RelevantExperience,
		CurrentCtc:         req.CurrentCtc,
		ExpectedCtc:        req.ExpectedCtc,
		Resume:             req.Resume,
		Notes:              req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, applicant)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	applicant, ok := h.assignedApplicant(c)
	if !ok {
		return
	}

	updated, err := h.statuses.Transition(c.Request.Context(), applicant.ID, req.Status, req.Notes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) HoldApplicant(c *gin.Context) {
	var req holdRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}

	applicant, ok := h.assignedApplicant(c)
	if !ok {
		return
	}

	updated, err := h.statuses.Hold(c.Request.Context(), applicant.ID, req.Notes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) NextStatuses(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	applicant, err := h.applicants.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	job, err := h.jobs.Get(c.Request.Context(), applicant.JobID)
	if err != nil {
		writeError(c, err)
		return
	}
	me := caller(c)
	if !job.IsVisibleTo(me.UserID, me.Role) {
		forbidden(c, "You can only view applicants of your own or assigned jobs")
		return
	}

	next, err := h.statuses.PermittedNext(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"current":  applicant.Status,
		"next":     next,
		"canHold":  !applicant.Status.IsTerminal(),
		"terminal": applicant.Status.IsTerminal(),
	})
}

// assignedApplicant loads the applicant named in the path and checks that its job is
// assigned to the calling recruiter.
func (h *Handler) assignedApplicant(c *gin.Context) (*entities.Applicant, bool) {
	id, ok := pathID(c)
	if !ok {
		return nil, false
	}

	applicant, err := h.applicants.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return nil, false
	}

	job, err := h.jobs.Get(c.Request.Context(), applicant.JobID)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	if !job.IsAssignedTo(caller(c).UserID) {
		forbidden(c, "You can only update applicants for jobs assigned to you")
		return nil, false
	}
	return applicant, true
}
