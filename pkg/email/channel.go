package email

import "context"

// Channel adapts an EmailSender to a plain-text delivery channel.
type Channel struct {
	sender EmailSender
	tag    string
}

// ChannelOption configures a Channel.
type ChannelOption func(*Channel)

// WithTag sets the tag attached to every message.
func WithTag(tag string) ChannelOption {
	return func(c *Channel) { c.tag = tag }
}

// NewChannel creates a Channel sending through sender.
func NewChannel(sender EmailSender, opts ...ChannelOption) *Channel {
	c := &Channel{sender: sender}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send delivers body as a plain-text email to the address to.
// An empty or malformed address fails with ErrInvalidParams.
func (c *Channel) Send(ctx context.Context, to, subject, body string) error {
	return c.sender.SendEmail(ctx, SendEmailParams{
		SendTo:   to,
		Subject:  subject,
		BodyText: body,
		Tag:      c.tag,
	})
}

// NewSender builds the sender selected by cfg.Driver.
func NewSender(cfg Config) (EmailSender, error) {
	switch cfg.Driver {
	case DriverDev:
		return NewDevSender(cfg.DevDir), nil
	case DriverPostmark, "":
		return NewPostmarkClient(cfg)
	default:
		return nil, ErrInvalidConfig
	}
}
