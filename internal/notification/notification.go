package notification

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ChannelType identifies the delivery channel of a preference or notification.
type ChannelType string

const (
	ChannelEmail ChannelType = "EMAIL"
)

// Valid reports whether the channel type is supported.
func (c ChannelType) Valid() bool {
	return c == ChannelEmail
}

// ParseChannelType converts a case-insensitive name into a ChannelType.
func ParseChannelType(s string) (ChannelType, error) {
	c := ChannelType(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", ErrInvalidChannelType
	}
	return c, nil
}

// Status is the terminal outcome of a delivery attempt.
type Status string

const (
	StatusSucceeded Status = "SUCCEEDED"
	StatusFailed    Status = "FAILED"
)

// Valid reports whether the status may be persisted.
func (s Status) Valid() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// Preference is a user's delivery preference. There is at most one per user.
type Preference struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Enabled        bool
	ChannelType    ChannelType
	ContactAddress string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Notification is the persisted outcome of a dispatched message.
type Notification struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Subject     string
	Body        string
	ChannelType ChannelType
	Status      Status
	CreatedAt   time.Time
	Deleted     bool
}

// Failed reports whether the notification is eligible for a retry sweep.
func (n Notification) Failed() bool {
	return n.Status == StatusFailed && !n.Deleted
}
