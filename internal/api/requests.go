package api

import (
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/notifykit/internal/notification"
	"github.com/dmitrymomot/notifykit/pkg/validator"
)

var channelTypes = []string{string(notification.ChannelEmail)}

type upsertPreferenceRequest struct {
	UserID              string `json:"userId"`
	NotificationEnabled bool   `json:"notificationEnabled"`
	Type                string `json:"type"`
	ContactInfo         string `json:"contactInfo"`
}

func (r upsertPreferenceRequest) params() (notification.UpsertParams, error) {
	contact := strings.TrimSpace(r.ContactInfo)
	if err := validator.Apply(
		validator.ValidUUID("userId", r.UserID),
		validator.InListCaseInsensitive("type", r.Type, channelTypes),
		validator.When(contact != "", validator.ValidEmail("contactInfo", contact)),
	); err != nil {
		return notification.UpsertParams{}, err
	}

	channel, err := notification.ParseChannelType(r.Type)
	if err != nil {
		return notification.UpsertParams{}, err
	}
	return notification.UpsertParams{
		UserID:         uuid.MustParse(r.UserID),
		Enabled:        r.NotificationEnabled,
		ChannelType:    channel,
		ContactAddress: contact,
	}, nil
}

type userQuery struct {
	UserID string `query:"userId"`
}

func (q userQuery) userID() (uuid.UUID, error) {
	if err := validator.Apply(validator.ValidUUID("userId", q.UserID)); err != nil {
		return uuid.Nil, err
	}
	return uuid.MustParse(q.UserID), nil
}

type setEnabledQuery struct {
	UserID  string `query:"userId"`
	Enabled *bool  `query:"enabled"`
}

func (q setEnabledQuery) validate() (uuid.UUID, bool, error) {
	if err := validator.Apply(
		validator.ValidUUID("userId", q.UserID),
		validator.Rule{
			Check: func() bool { return q.Enabled != nil },
			Error: validator.ValidationError{Field: "enabled", Message: "field is required"},
		},
	); err != nil {
		return uuid.Nil, false, err
	}
	return uuid.MustParse(q.UserID), *q.Enabled, nil
}

type sendRequest struct {
	UserID  string `json:"userId"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (r sendRequest) validate() (uuid.UUID, error) {
	if err := validator.Apply(
		validator.ValidUUID("userId", r.UserID),
		validator.RequiredString("subject", r.Subject),
		validator.RequiredString("body", r.Body),
	); err != nil {
		return uuid.Nil, err
	}
	return uuid.MustParse(r.UserID), nil
}
