package email

import "fmt"

const (
	DriverPostmark = "postmark"
	DriverDev      = "dev"
)

// Config selects the sender and its identity.
type Config struct {
	Driver               string `env:"EMAIL_DRIVER" envDefault:"dev"`
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"noreply@cardmia.app"`
	SupportEmail         string `env:"SUPPORT_EMAIL" envDefault:"support@cardmia.app"`
	DevDir               string `env:"EMAIL_DEV_DIR" envDefault:"./data/emails"`
	PortalURL            string `env:"PORTAL_URL" envDefault:"http://localhost:5173"`
}

// New builds the sender named by cfg.Driver.
func New(cfg Config) (Sender, error) {
	switch cfg.Driver {
	case DriverPostmark:
		c, err := NewPostmarkClient(cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	case DriverDev, "":
		return NewDevSender(cfg.DevDir), nil
	default:
		return nil, fmt.Errorf("%w: unknown driver %q", ErrInvalidConfig, cfg.Driver)
	}
}
