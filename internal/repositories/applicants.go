package repositories

import (
	"context"
	"errors"
	"github.com/maxaizer/ats-realtime/internal/entities"
	"gorm.io/gorm"
	"time"
)

type Applicants struct {
	db *gorm.DB
}

func NewApplicantsRepository(db *gorm.DB) *Applicants {
	return &Applicants{db: db}
}

func (repo *Applicants) Add(ctx context.Context, applicant *entities.Applicant) error {
	return repo.db.WithContext(ctx).Create(applicant).Error
}

func (repo *Applicants) GetByID(ctx context.Context, id int64) (*entities.Applicant, error) {
	var applicant entities.Applicant
	if err := repo.db.WithContext(ctx).First(&applicant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &applicant, nil
}

func (repo *Applicants) GetByJob(ctx context.Context, jobID int64) ([]entities.Applicant, error) {
	var applicants []entities.Applicant
	if err := repo.db.WithContext(ctx).Order("created_at DESC").
		Find(&applicants, "job_id = ?", jobID).Error; err != nil {
		return nil, err
	}
	return applicants, nil
}

// UpdateStatus moves the applicant from status from to status to and overwrites the notes,
// previous notes are not kept. Returns nil when the applicant is gone or no longer in from.
func (repo *Applicants) UpdateStatus(ctx context.Context, id int64, from, to entities.ApplicantStatus,
	notes string) (*entities.Applicant, error) {

	res := repo.db.WithContext(ctx).Model(&entities.Applicant{}).Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{
			"status":     to,
			"notes":      notes,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return repo.GetByID(ctx, id)
}
