package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/ats-realtime/internal/entities"
	"github.com/maxaizer/ats-realtime/internal/events"
	"github.com/maxaizer/ats-realtime/internal/metrics"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// CandidateStatusManager moves applicants through the hiring pipeline.
type CandidateStatusManager struct {
	applicants applicantRepository
	bus        EventBus.Bus
}

func NewCandidateStatusManager(applicants applicantRepository, bus EventBus.Bus) *CandidateStatusManager {
	return &CandidateStatusManager{applicants: applicants, bus: bus}
}

// Transition moves an applicant to target and replaces its notes. The target must be
// permitted from the current status, and the write only lands if that status is still current.
func (m *CandidateStatusManager) Transition(ctx context.Context, applicantID int64, target entities.ApplicantStatus,
	notes string) (*entities.Applicant, error) {

	if !target.IsValid() {
		return nil, errors.Wrapf(ErrUnknownStatus, "%q", target)
	}

	applicant, err := m.applicants.GetByID(ctx, applicantID)
	if err != nil {
		return nil, errors.Wrapf(err, "get applicant %d", applicantID)
	}
	if applicant == nil {
		return nil, errors.Wrapf(ErrApplicantNotFound, "id %d", applicantID)
	}

	from := applicant.Status
	if !entities.CanTransition(from, target) {
		return nil, &InvalidTransitionError{From: from, To: target}
	}

	updated, err := m.applicants.UpdateStatus(ctx, applicantID, from, target, notes)
	if err != nil {
		return nil, errors.Wrapf(err, "update status of applicant %d", applicantID)
	}
	if updated == nil {
		return nil, m.lostUpdate(ctx, applicantID, target)
	}

	metrics.StatusTransitionsCounter.WithLabelValues(string(target)).Inc()
	log.Infof("applicant %d moved from %s to %s", applicantID, from, target)
	m.bus.Publish(events.ApplicantStatusChangedTopic, events.ApplicantStatusChanged{Applicant: *updated, From: from})
	return updated, nil
}

// lostUpdate explains a status write that matched no row: the applicant was deleted or
// another transition changed its status after it was read.
func (m *CandidateStatusManager) lostUpdate(ctx context.Context, applicantID int64, target entities.ApplicantStatus) error {
	current, err := m.applicants.GetByID(ctx, applicantID)
	if err != nil {
		return errors.Wrapf(err, "get applicant %d", applicantID)
	}
	if current == nil {
		return errors.Wrapf(ErrApplicantNotFound, "id %d", applicantID)
	}
	log.Warnf("applicant %d changed to %s concurrently, rejecting move to %s", applicantID, current.Status, target)
	return &InvalidTransitionError{From: current.Status, To: target}
}

// Hold parks an applicant outside the pipeline.
func (m *CandidateStatusManager) Hold(ctx context.Context, applicantID int64, notes string) (*entities.Applicant, error) {
	return m.Transition(ctx, applicantID, entities.StatusOnHold, notes)
}

// PermittedNext lists the statuses the applicant may move to, excluding the hold action.
func (m *CandidateStatusManager) PermittedNext(ctx context.Context, applicantID int64) ([]entities.ApplicantStatus, error) {
	applicant, err := m.applicants.GetByID(ctx, applicantID)
	if err != nil {
		return nil, errors.Wrapf(err, "get applicant %d", applicantID)
	}
	if applicant == nil {
		return nil, errors.Wrapf(ErrApplicantNotFound, "id %d", applicantID)
	}
	return entities.PermittedNext(applicant.Status), nil
}
