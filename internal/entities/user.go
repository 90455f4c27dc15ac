package entities

import (
	"errors"
	"time"
)

type Role string

const (
	RoleAdmin         Role = "admin"
	RoleHiringManager Role = "hiring_manager"
	RoleRecruiter     Role = "recruiter"
)

func ToRole(s string) (Role, error) {
	switch s {
	case string(RoleAdmin):
		return RoleAdmin, nil
	case string(RoleHiringManager):
		return RoleHiringManager, nil
	case string(RoleRecruiter):
		return RoleRecruiter, nil
	default:
		return "", errors.New("invalid role")
	}
}

type User struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	FirstName string    `gorm:"not null" json:"firstName"`
	LastName  string    `gorm:"not null" json:"lastName"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Role      Role      `gorm:"type:varchar(32);not null;index" json:"role"`
	IsActive  bool      `gorm:"not null" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}
