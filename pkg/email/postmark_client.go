package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"

	"github.com/cardmia/ecgportal/pkg/validator"
)

// PostmarkAPI is the part of *postmark.Client the sender uses.
type PostmarkAPI interface {
	SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error)
}

// PostmarkClient sends email through Postmark's transactional API.
type PostmarkClient struct {
	api    PostmarkAPI
	config Config
}

// PostmarkOption configures a PostmarkClient.
type PostmarkOption func(*PostmarkClient)

// WithPostmarkAPI replaces the Postmark client, mainly for tests.
func WithPostmarkAPI(api PostmarkAPI) PostmarkOption {
	return func(c *PostmarkClient) {
		if api != nil {
			c.api = api
		}
	}
}

// NewPostmarkClient requires both tokens and valid sender and support addresses.
func NewPostmarkClient(cfg Config, opts ...PostmarkOption) (*PostmarkClient, error) {
	err := validator.Apply(
		validator.RequiredString("POSTMARK_SERVER_TOKEN", cfg.PostmarkServerToken),
		validator.RequiredString("POSTMARK_ACCOUNT_TOKEN", cfg.PostmarkAccountToken),
		validator.RequiredString("SENDER_EMAIL", cfg.SenderEmail),
		validator.ValidEmail("SENDER_EMAIL", cfg.SenderEmail),
		validator.ValidEmail("SUPPORT_EMAIL", cfg.SupportEmail),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	c := &PostmarkClient{
		api:    postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		config: cfg,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SendEmail tracks opens and HTML link clicks. Replies go to the support address.
func (c *PostmarkClient) SendEmail(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	resp, err := c.api.SendEmail(ctx, postmark.Email{
		From:       c.config.SenderEmail,
		ReplyTo:    c.config.SupportEmail,
		To:         msg.To,
		Subject:    msg.Subject,
		Tag:        msg.Tag,
		HTMLBody:   msg.HTML,
		TextBody:   msg.Text,
		TrackOpens: true,
		TrackLinks: "HtmlOnly",
	})
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(ErrFailedToSendEmail, fmt.Errorf("postmark error %d: %s", resp.ErrorCode, resp.Message))
	}
	return nil
}
