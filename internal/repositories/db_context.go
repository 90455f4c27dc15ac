package repositories

import (
	"fmt"
	"github.com/glebarez/sqlite"
	"github.com/maxaizer/ats-realtime/internal/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string, debug bool) (*DbContext, error) {
	logLevel := logger.Error
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {
	err := c.DB.AutoMigrate(entities.User{})
	if err != nil {
		return fmt.Errorf("failed to migrate User entity: %w", err)
	}

	err = c.DB.AutoMigrate(entities.Job{})
	if err != nil {
		return fmt.Errorf("failed to migrate Job entity: %w", err)
	}

	err = c.DB.AutoMigrate(entities.Applicant{})
	if err != nil {
		return fmt.Errorf("failed to migrate Applicant entity: %w", err)
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
