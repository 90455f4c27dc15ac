package repositories

import (
	"context"
	"errors"
	"github.com/maxaizer/ats-realtime/internal/entities"
	"gorm.io/gorm"
)

type Users struct {
	db *gorm.DB
}

func NewUsersRepository(db *gorm.DB) *Users {
	return &Users{db: db}
}

func (repo *Users) Add(ctx context.Context, user *entities.User) error {
	return repo.db.WithContext(ctx).Create(user).Error
}

func (repo *Users) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	var user entities.User
	if err := repo.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (repo *Users) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	var user entities.User
	if err := repo.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (repo *Users) GetAll(ctx context.Context) ([]entities.User, error) {
	var users []entities.User
	if err := repo.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (repo *Users) GetByRole(ctx context.Context, role entities.Role) ([]entities.User, error) {
	var users []entities.User
	if err := repo.db.WithContext(ctx).Order("id").Find(&users, "role = ?", role).Error; err != nil {
		return nil, err
	}
	return users, nil
}
