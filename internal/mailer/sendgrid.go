package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/techieblitz/assignment-tracker/internal/types"
)

// Sender delivers one transactional email.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// SendGridSender sends mail through the SendGrid v3 API.
type SendGridSender struct {
	client *sendgrid.Client
	from   *mail.Email
}

// NewSendGridSender creates a sender with the given API key and from address.
func NewSendGridSender(apiKey, from string) *SendGridSender {
	return &SendGridSender{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail("Assignment Tracker", from),
	}
}

func (s *SendGridSender) Send(ctx context.Context, to, subject, text, html string) error {
	message := mail.NewSingleEmail(s.from, subject, mail.NewEmail("", to), text, html)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return &types.ExternalServiceError{Service: "sendgrid", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &types.ExternalServiceError{Service: "sendgrid", Status: resp.StatusCode}
	}
	return nil
}

// ReminderEmail renders the due-tomorrow reminder for one assignment.
func ReminderEmail(assignmentName string, dueDate time.Time) (subject, text, html string) {
	due := dueDate.Format("Mon, 02 Jan 2006 15:04")
	subject = fmt.Sprintf("Reminder: Upcoming Deadline for %q", assignmentName)
	text = fmt.Sprintf(
		"Hello, just a reminder that your assignment %q is due on %s. Please ensure it is completed before the deadline.",
		assignmentName, due)
	html = fmt.Sprintf(
		"<p>Hello,</p><p>Just a reminder that your assignment <strong>%q</strong> is due on <strong>%s</strong>.</p><p>Please ensure it is completed on time.</p>",
		assignmentName, due)
	return subject, text, html
}
