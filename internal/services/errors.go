package services

import (
	"fmt"
	"github.com/maxaizer/ats-realtime/internal/entities"
	"github.com/pkg/errors"
)

var (
	ErrUserExists        = errors.New("user already exists")
	ErrInvalidRole       = errors.New("invalid role")
	ErrJobNotFound       = errors.New("job not found")
	ErrInvalidRecruiter  = errors.New("user is not an active recruiter")
	ErrApplicantNotFound = errors.New("applicant not found")
	ErrUnknownStatus     = entities.ErrUnknownStatus
	ErrInvalidTransition = errors.New("invalid status transition")
)

// InvalidTransitionError is returned when the pipeline does not allow moving an
// applicant from From to To. It matches ErrInvalidTransition with errors.Is.
type InvalidTransitionError struct {
	From entities.ApplicantStatus
	To   entities.ApplicantStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
