package email

import (
	"context"
	"errors"

	"github.com/cardmia/ecgportal/pkg/validator"
)

// Sender delivers a single email.
type Sender interface {
	SendEmail(ctx context.Context, msg Message) error
}

// Message is one outgoing email.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"-"`
	Text    string `json:"-"`
	Tag     string `json:"tag,omitempty"`
}

// Validate requires a valid recipient, a subject and at least one body.
func (m Message) Validate() error {
	err := validator.Apply(
		validator.RequiredString("to", m.To),
		validator.ValidEmail("to", m.To),
		validator.RequiredString("subject", m.Subject),
		validator.MaxLenString("subject", m.Subject, 255),
		validator.Required("body", m.HTML != "" || m.Text != "", "html or text body is required"),
	)
	if err != nil {
		return errors.Join(ErrInvalidMessage, err)
	}
	return nil
}
