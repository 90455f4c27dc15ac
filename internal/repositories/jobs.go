package repositories

import (
	"context"
	"errors"
	"github.com/maxaizer/ats-realtime/internal/entities"
	"gorm.io/gorm"
	"time"
)

type Jobs struct {
	db *gorm.DB
}

func NewJobsRepository(db *gorm.DB) *Jobs {
	return &Jobs{db: db}
}

func (repo *Jobs) Add(ctx context.Context, job *entities.Job) error {
	return repo.db.WithContext(ctx).Create(job).Error
}

func (repo *Jobs) GetByID(ctx context.Context, id int64) (*entities.Job, error) {
	var job entities.Job
	if err := repo.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

func (repo *Jobs) GetAll(ctx context.Context) ([]entities.Job, error) {
	var jobs []entities.Job
	if err := repo.db.WithContext(ctx).Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (repo *Jobs) GetByHiringManager(ctx context.Context, hiringManagerID int64) ([]entities.Job, error) {
	var jobs []entities.Job
	if err := repo.db.WithContext(ctx).Order("created_at DESC").
		Find(&jobs, "hiring_manager_id = ?", hiringManagerID).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (repo *Jobs) GetByRecruiter(ctx context.Context, recruiterID int64) ([]entities.Job, error) {
	var jobs []entities.Job
	if err := repo.db.WithContext(ctx).Order("created_at DESC").
		Find(&jobs, "recruiter_id = ?", recruiterID).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (repo *Jobs) AssignRecruiter(ctx context.Context, jobID int64, recruiterID int64) (*entities.Job, error) {
	res := repo.db.WithContext(ctx).Model(&entities.Job{}).Where("id = ?", jobID).
		Updates(map[string]any{
			"recruiter_id": recruiterID,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return repo.GetByID(ctx, jobID)
}
