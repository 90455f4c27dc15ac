package realtime

import (
	"encoding/json"
	"github.com/go-playground/validator/v10"
	"github.com/maxaizer/ats-realtime/internal/entities"
	"github.com/pkg/errors"
	"time"
)

type MessageType string

const (
	TypeAuth     MessageType = "auth"
	TypePresence MessageType = "presence"

	TypeConnection       MessageType = "connection"
	TypeAuthSuccess      MessageType = "auth_success"
	TypePresenceUpdate   MessageType = "presence_update"
	TypeUserOffline      MessageType = "user_offline"
	TypeUserCreated      MessageType = "user_created"
	TypeJobCreated       MessageType = "job_created"
	TypeApplicantCreated MessageType = "applicant_created"
)

var (
	ErrMalformedMessage   = errors.New("malformed message")
	ErrUnknownMessageType = errors.New("unknown message type")
)

type PresenceStatus string

const (
	PresenceOnline  PresenceStatus = "online"
	PresenceActive  PresenceStatus = "active"
	PresenceIdle    PresenceStatus = "idle"
	PresenceOffline PresenceStatus = "offline"
)

type Message interface {
	MessageType() MessageType
}

// ClientMessage is implemented only by the messages a client may send.
type ClientMessage interface {
	Message
	clientMessage()
}

// ServerMessage is implemented only by the messages the server may push.
type ServerMessage interface {
	Message
	serverMessage()
}

type AuthMessage struct {
	UserID int64         `json:"userId" validate:"required,gt=0"`
	Role   entities.Role `json:"role" validate:"required,oneof=admin hiring_manager recruiter"`
}

type PresenceMessage struct {
	Status PresenceStatus `json:"status" validate:"required,oneof=online active idle offline"`
	Action string         `json:"action,omitempty" validate:"max=512"`
}

type ConnectionMessage struct {
	Message string `json:"message"`
}

type AuthSuccess struct {
	UserID int64         `json:"userId"`
	Role   entities.Role `json:"role"`
}

type PresenceUpdate struct {
	UserID    int64          `json:"userId"`
	Role      entities.Role  `json:"role"`
	Status    PresenceStatus `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Action    string         `json:"action,omitempty"`
}

type UserOffline struct {
	UserID int64 `json:"userId"`
}

type UserCreated struct {
	User entities.User `json:"user"`
}

type JobCreated struct {
	Job entities.Job `json:"job"`
}

type ApplicantCreated struct {
	Applicant entities.Applicant `json:"applicant"`
	JobID     int64              `json:"jobId"`
	JobTitle  string             `json:"jobTitle"`
}

func (AuthMessage) MessageType() MessageType     { return TypeAuth }
func (PresenceMessage) MessageType() MessageType { return TypePresence }
func (AuthMessage) clientMessage()               {}
func (PresenceMessage) clientMessage()           {}

func (ConnectionMessage) MessageType() MessageType { return TypeConnection }
func (AuthSuccess) MessageType() MessageType       { return TypeAuthSuccess }
func (PresenceUpdate) MessageType() MessageType    { return TypePresenceUpdate }
func (UserOffline) MessageType() MessageType       { return TypeUserOffline }
func (UserCreated) MessageType() MessageType       { return TypeUserCreated }
func (JobCreated) MessageType() MessageType        { return TypeJobCreated }
func (ApplicantCreated) MessageType() MessageType  { return TypeApplicantCreated }
func (ConnectionMessage) serverMessage()           {}
func (AuthSuccess) serverMessage()                 {}
func (PresenceUpdate) serverMessage()              {}
func (UserOffline) serverMessage()                 {}
func (UserCreated) serverMessage()                 {}
func (JobCreated) serverMessage()                  {}
func (ApplicantCreated) serverMessage()            {}

var validate = validator.New()

type envelope struct {
	Type MessageType `json:"type"`
}

// Encode renders msg as a JSON object with the "type" discriminator added.
func Encode(msg Message) ([]byte, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, errors.Wrapf(err, "encode %s", msg.MessageType())
	}

	fields := map[string]json.RawMessage{}
	if err = json.Unmarshal(body, &fields); err != nil {
		return nil, errors.Wrapf(err, "encode %s", msg.MessageType())
	}

	fields["type"], err = json.Marshal(msg.MessageType())
	if err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

func DecodeClientMessage(data []byte) (ClientMessage, error) {
	msgType, err := peekType(data)
	if err != nil {
		return nil, err
	}

	var msg ClientMessage
	switch msgType {
	case TypeAuth:
		msg, err = decodeAs[AuthMessage](data)
	case TypePresence:
		msg, err = decodeAs[PresenceMessage](data)
	default:
		return nil, errors.Wrapf(ErrUnknownMessageType, "%q", msgType)
	}
	if err != nil {
		return nil, err
	}

	if err = validate.Struct(msg); err != nil {
		return nil, errors.Wrapf(ErrMalformedMessage, "%s: %v", msgType, err)
	}
	return msg, nil
}

func DecodeServerMessage(data []byte) (ServerMessage, error) {
	msgType, err := peekType(data)
	if err != nil {
		return nil, err
	}

	switch msgType {
	case TypeConnection:
		return decodeAs[ConnectionMessage](data)
	case TypeAuthSuccess:
		return decodeAs[AuthSuccess](data)
	case TypePresenceUpdate:
		return decodeAs[PresenceUpdate](data)
	case TypeUserOffline:
		return decodeAs[UserOffline](data)
	case TypeUserCreated:
		return decodeAs[UserCreated](data)
	case TypeJobCreated:
		return decodeAs[JobCreated](data)
	case TypeApplicantCreated:
		return decodeAs[ApplicantCreated](data)
	default:
		return nil, errors.Wrapf(ErrUnknownMessageType, "%q", msgType)
	}
}

func peekType(data []byte) (MessageType, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", errors.Wrap(ErrMalformedMessage, err.Error())
	}
	if env.Type == "" {
		return "", errors.Wrap(ErrMalformedMessage, "missing type")
	}
	return env.Type, nil
}

func decodeAs[T any](data []byte) (T, error) {
	var msg T
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, errors.Wrap(ErrMalformedMessage, err.Error())
	}
	return msg, nil
}
