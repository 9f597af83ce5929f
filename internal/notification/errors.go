package notification

import "errors"

var (
	// ErrPreferenceNotFound is returned when a user has no preference record.
	ErrPreferenceNotFound = errors.New("notification preference not found")

	// ErrPreferenceDisabled is returned when a user has opted out of notifications.
	ErrPreferenceDisabled = errors.New("notifications are disabled for user")

	// ErrDeliveryFailed wraps channel errors. It is logged, never returned by Dispatch or Retry.
	ErrDeliveryFailed = errors.New("notification delivery failed")

	// ErrStorage wraps failures of the underlying stores.
	ErrStorage = errors.New("notification storage failure")

	// ErrInvalidChannelType is returned for unsupported channel types.
	ErrInvalidChannelType = errors.New("invalid channel type")

	// ErrInvalidNotification is returned by stores for records that violate the data model.
	ErrInvalidNotification = errors.New("invalid notification record")
)
