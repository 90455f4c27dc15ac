package entities

import "time"

type Applicant struct {
	ID                 int64           `gorm:"primaryKey" json:"id"`
	JobID              int64           `gorm:"not null;index" json:"jobId"`
	FirstName          string          `gorm:"not null" json:"firstName"`
	LastName           string          `gorm:"not null" json:"lastName"`
	Email              string          `gorm:"not null" json:"email"`
	PhoneNumber        string          `json:"phoneNumber,omitempty"`
	CurrentCompany     string          `json:"currentCompany,omitempty"`
	NoticePeriod       string          `json:"noticePeriod,omitempty"`
	TotalExperience    string          `json:"totalExperience,omitempty"`
	RelevantExperience string          `json:"relevantExperience,omitempty"`
	CurrentCtc         string          `json:"currentCtc,omitempty"`
	ExpectedCtc        string          `json:"expectedCtc,omitempty"`
	Resume             string          `json:"resume,omitempty"`
	Status             ApplicantStatus `gorm:"type:varchar(32);not null;default:new" json:"status"`
	Notes              string          `gorm:"type:text" json:"notes"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}
