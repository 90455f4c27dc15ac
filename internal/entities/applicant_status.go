package entities

import (
	"errors"
	"github.com/samber/lo"
	"slices"
)

type ApplicantStatus string

const (
	StatusNew               ApplicantStatus = "new"
	StatusScreening         ApplicantStatus = "screening"
	StatusScreeningSelected ApplicantStatus = "screening_selected"
	StatusScreeningRejected ApplicantStatus = "screening_rejected"
	StatusTechnicalRound    ApplicantStatus = "technical_round"
	StatusTechnicalSelected ApplicantStatus = "technical_selected"
	StatusTechnicalRejected ApplicantStatus = "technical_rejected"
	StatusHRRound           ApplicantStatus = "hr_round"
	StatusHRSelected        ApplicantStatus = "hr_selected"
	StatusHRRejected        ApplicantStatus = "hr_rejected"
	StatusFinalRound        ApplicantStatus = "final_round"
	StatusHired             ApplicantStatus = "hired"
	StatusRejected          ApplicantStatus = "rejected"
	StatusOnHold            ApplicantStatus = "on_hold"
)

var ErrUnknownStatus = errors.New("unknown applicant status")

// AllApplicantStatuses lists every status in pipeline order.
var AllApplicantStatuses = []ApplicantStatus{
	StatusNew,
	StatusScreening,
	StatusScreeningSelected,
	StatusScreeningRejected,
	StatusTechnicalRound,
	StatusTechnicalSelected,
	StatusTechnicalRejected,
	StatusHRRound,
	StatusHRSelected,
	StatusHRRejected,
	StatusFinalRound,
	StatusHired,
	StatusRejected,
	StatusOnHold,
}

// statusFlow is the recruiter-facing pipeline. The order of each row is the order the
// action buttons are rendered in, so it must not be sorted.
var statusFlow = map[ApplicantStatus][]ApplicantStatus{
	StatusNew:               {StatusScreening},
	StatusScreening:         {StatusScreeningSelected, StatusScreeningRejected},
	StatusScreeningSelected: {StatusTechnicalRound},
	StatusScreeningRejected: {},
	StatusTechnicalRound:    {StatusTechnicalSelected, StatusTechnicalRejected},
	StatusTechnicalSelected: {StatusHRRound},
	StatusTechnicalRejected: {},
	StatusHRRound:           {StatusHRSelected, StatusHRRejected},
	StatusHRSelected:        {StatusFinalRound},
	StatusHRRejected:        {},
	StatusFinalRound:        {StatusHired, StatusRejected},
	StatusHired:             {},
	StatusRejected:          {},
	StatusOnHold:            {},
}

func ToApplicantStatus(s string) (ApplicantStatus, error) {
	status := ApplicantStatus(s)
	if _, ok := statusFlow[status]; !ok {
		return "", ErrUnknownStatus
	}
	return status, nil
}

func (s ApplicantStatus) IsValid() bool {
	_, ok := statusFlow[s]
	return ok
}

// PermittedNext returns the statuses reachable from s through the pipeline table.
// The on_hold side exit is not part of the table, see CanTransition.
func PermittedNext(s ApplicantStatus) []ApplicantStatus {
	next, ok := statusFlow[s]
	if !ok {
		return []ApplicantStatus{}
	}
	return slices.Clone(next)
}

func (s ApplicantStatus) IsTerminal() bool {
	return s.IsValid() && len(statusFlow[s]) == 0
}

// CanTransition reports whether an applicant in status from may be moved to status to.
// Any non-terminal status may be put on hold; on_hold itself is terminal.
func CanTransition(from, to ApplicantStatus) bool {
	if !from.IsValid() || !to.IsValid() {
		return false
	}
	if to == StatusOnHold {
		return !from.IsTerminal()
	}
	return lo.Contains(statusFlow[from], to)
}
