package entities

import "time"

type JobStatus string

const (
	JobDraft  JobStatus = "draft"
	JobActive JobStatus = "active"
	JobOnHold JobStatus = "on_hold"
	JobFilled JobStatus = "filled"
	JobClosed JobStatus = "closed"
)

type Job struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"not null" json:"title"`
	Department      string    `gorm:"not null" json:"department"`
	Location        string    `gorm:"not null" json:"location"`
	Description     string    `gorm:"type:text;not null" json:"description"`
	Requirements    string    `gorm:"type:text;not null" json:"requirements"`
	MinSalary       *int      `json:"minSalary"`
	MaxSalary       *int      `json:"maxSalary"`
	EmploymentType  string    `gorm:"not null" json:"employmentType"`
	Status          JobStatus `gorm:"type:varchar(16);not null;default:active" json:"status"`
	HiringManagerID int64     `gorm:"not null;index" json:"hiringManagerId"`
	RecruiterID     *int64    `gorm:"index" json:"recruiterId"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (j *Job) IsManagedBy(userID int64) bool {
	return j.HiringManagerID == userID
}

func (j *Job) IsAssignedTo(userID int64) bool {
	return j.RecruiterID != nil && *j.RecruiterID == userID
}

// IsVisibleTo reports whether a user may see the job's applicants: admins see every job,
// hiring managers their own, recruiters the jobs assigned to them.
func (j *Job) IsVisibleTo(userID int64, role Role) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleHiringManager:
		return j.IsManagedBy(userID)
	case RoleRecruiter:
		return j.IsAssignedTo(userID)
	default:
		return false
	}
}
