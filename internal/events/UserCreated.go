package events

import "github.com/maxaizer/ats-realtime/internal/entities"

var UserCreatedTopic = "UserCreatedEvent"

type UserCreated struct {
	User entities.User
}
