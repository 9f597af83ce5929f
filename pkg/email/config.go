package email

// Config configures the email senders.
type Config struct {
	Driver               string `env:"EMAIL_DRIVER" envDefault:"postmark"`      // Driver selects the sender: "postmark" or "dev".
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`                   // PostmarkServerToken authorizes sending.
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`                  // PostmarkAccountToken authorizes account-level calls.
	SenderEmail          string `env:"SENDER_EMAIL"`                            // SenderEmail is the From address; required by Postmark.
	SupportEmail         string `env:"SUPPORT_EMAIL"`                           // SupportEmail is the Reply-To address; optional.
	DevDir               string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"` // DevDir is where the dev sender writes messages.
	Tag                  string `env:"EMAIL_TAG" envDefault:"notification"`     // Tag is attached to every message for provider analytics.
}

const (
	DriverPostmark = "postmark"
	DriverDev      = "dev"
)
