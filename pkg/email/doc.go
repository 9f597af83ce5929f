// Package email sends transactional email and adapts it to the notification
// delivery channel.
//
// EmailSender is the provider abstraction. Two implementations are included:
//   - NewPostmarkClient delivers through Postmark's API.
//   - NewDevSender writes each message to a directory, for local runs.
//
// NewSender picks one from Config.Driver. Channel wraps a sender and exposes
// Send(ctx, to, subject, body), sending body as plain text.
//
//	sender, err := email.NewSender(cfg)
//	if err != nil {
//	    return err
//	}
//	ch := email.NewChannel(sender, email.WithTag("notification"))
//	err = ch.Send(ctx, "user@example.com", "Welcome", "Thanks for joining")
//
// Every sender validates its parameters first; an empty or malformed recipient
// fails with ErrInvalidParams before any network call. Provider failures wrap
// ErrFailedToSendEmail. Configuration problems wrap ErrInvalidConfig.
package email
