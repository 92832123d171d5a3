// Package email sends transactional email.
//
// Sender has two implementations: PostmarkClient for production and DevSender,
// which writes each message to a directory as HTML plus JSON metadata. New picks
// one from Config.Driver.
//
// InvitationMessage renders the doctor invitation from an embedded html/template:
//
//	msg, err := email.InvitationMessage(email.Invitation{
//		DoctorID: "DR-1A2B3C4D",
//		Name:     "Dr. Ana Silva",
//		Email:    "ana@clinic.example",
//	})
//	if err != nil {
//		return err
//	}
//	err = sender.SendEmail(ctx, msg)
//
// Messages are validated before sending; failures match ErrInvalidMessage, and
// delivery failures match ErrFailedToSendEmail.
package email
