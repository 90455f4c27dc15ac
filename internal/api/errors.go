package api

import (
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/ats-realtime/internal/logger"
	"github.com/maxaizer/ats-realtime/internal/services"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"net/http"
)

func writeError(c *gin.Context, err error) {

	var transitionErr *services.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		c.JSON(http.StatusConflict, gin.H{
			"message": transitionErr.Error(),
			"from":    transitionErr.From,
			"to":      transitionErr.To,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrJobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Job not found"})
	case errors.Is(err, services.ErrApplicantNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Applicant not found"})
	case errors.Is(err, services.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrInvalidRecruiter),
		errors.Is(err, services.ErrUnknownStatus):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHttp).
			Errorf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
}

func forbidden(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, gin.H{"message": message})
}
