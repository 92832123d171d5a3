package email

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Invitation is the data shown in the doctor invitation email.
type Invitation struct {
	DoctorID       string
	Name           string
	Email          string
	Specialization string
	Hospital       string
	LicenseNumber  string
	PortalURL      string
	SupportEmail   string
}

// InvitationMessage renders the invitation for inv.Email.
func InvitationMessage(inv Invitation) (Message, error) {
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, "invitation", inv); err != nil {
		return Message{}, fmt.Errorf("%w: %w", ErrFailedToRender, err)
	}

	return Message{
		To:      inv.Email,
		Subject: "You're invited to the Cardmia ECG portal",
		HTML:    b.String(),
		Text: fmt.Sprintf("Welcome, %s. Your doctor ID is %s. Sign in at %s.",
			inv.Name, inv.DoctorID, inv.PortalURL),
		Tag: "doctor-invitation",
	}, nil
}
