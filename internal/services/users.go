package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/ats-realtime/internal/entities"
	"github.com/maxaizer/ats-realtime/internal/events"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type userRepository interface {
	Add(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id int64) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	GetAll(ctx context.Context) ([]entities.User, error)
	GetByRole(ctx context.Context, role entities.Role) ([]entities.User, error)
}

type UserService struct {
	users userRepository
	bus   EventBus.Bus
}

func NewUserService(users userRepository, bus EventBus.Bus) *UserService {
	return &UserService{users: users, bus: bus}
}

// Create stores a new active user and announces it. Nothing is published when storing fails.
func (s *UserService) Create(ctx context.Context, user entities.User) (*entities.User, error) {

	if _, err := entities.ToRole(string(user.Role)); err != nil {
		return nil, errors.Wrapf(ErrInvalidRole, "%q", user.Role)
	}

	existing, err := s.users.GetByUsername(ctx, user.Username)
	if err != nil {
		return nil, errors.Wrap(err, "look up username")
	}
	if existing != nil {
		return nil, errors.Wrapf(ErrUserExists, "%q", user.Username)
	}

	user.ID = 0
	user.IsActive = true
	if err = s.users.Add(ctx, &user); err != nil {
		return nil, errors.Wrap(err, "add user")
	}

	log.Infof("user %d (%s) created with role %s", user.ID, user.Username, user.Role)
	s.bus.Publish(events.UserCreatedTopic, events.UserCreated{User: user})
	return &user, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*entities.User, error) {
	return s.users.GetByID(ctx, id)
}

// List returns the users visible to role: admins see everyone, hiring managers see the
// recruiters they can assign to their jobs.
func (s *UserService) List(ctx context.Context, role entities.Role) ([]entities.User, error) {
	switch role {
	case entities.RoleAdmin:
		return s.users.GetAll(ctx)
	case entities.RoleHiringManager:
		return s.users.GetByRole(ctx, entities.RoleRecruiter)
	default:
		return []entities.User{}, nil
	}
}
