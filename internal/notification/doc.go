// Package notification implements per-user notification dispatch.
//
// A user owns a single Preference that gates every outgoing message and names
// the contact address used by the delivery Channel. Dispatching a message is a
// single synchronous step: the preference is checked, the channel is invoked,
// and exactly one Notification is persisted with the terminal outcome
// (StatusSucceeded or StatusFailed). No record is written before delivery
// resolves, so there is no pending state.
//
// # Components
//
//   - PreferenceManager: create-or-update, lookup and enablement toggle.
//   - Dispatcher: Dispatch sends one message; Retry re-sends every failed,
//     non-deleted notification of a user.
//   - History: lists and soft-deletes a user's notifications.
//   - Service: the facade exposed to transports, returning views.
//
// Storage and delivery are pluggable through PreferenceStore,
// NotificationStore and Channel. In-memory stores are provided for
// development and tests.
//
// # Errors
//
// ErrPreferenceNotFound and ErrPreferenceDisabled are caller errors and are
// returned before any delivery attempt. Channel errors never leave the
// Dispatcher: they are logged and folded into StatusFailed. Store failures are
// returned joined with ErrStorage.
//
// # Usage
//
//	svc := notification.NewService(
//	    notification.NewMemoryPreferenceStore(),
//	    notification.NewMemoryNotificationStore(),
//	    email.NewChannel(sender),
//	    notification.WithLogger(log),
//	)
//
//	view, err := svc.Send(ctx, userID, "Welcome", "Thanks for joining")
//	if errors.Is(err, notification.ErrPreferenceDisabled) {
//	    // user opted out
//	}
package notification
