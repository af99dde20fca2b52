package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/rs/zerolog"

	"github.com/abhinavshiv7/portfolio/internal/contact"
)

// ConfirmationSubject is the subject of the email sent to visitors.
const ConfirmationSubject = "Thank you for reaching out!"

//go:embed templates/*.html
var templateFS embed.FS

var confirmationTmpl = template.Must(template.ParseFS(templateFS, "templates/confirmation.html"))

// Notifier sends the visitor confirmation and, when an owner address is
// set, a plain-text copy of the submission to the owner.
type Notifier struct {
	mailer    Mailer
	owner     string
	signature string
	log       zerolog.Logger
}

var _ contact.Notifier = (*Notifier)(nil)

// NotifierOption configures a Notifier.
type NotifierOption func(*Notifier)

// WithOwnerCopy sends a copy of every submission to addr.
func WithOwnerCopy(addr string) NotifierOption {
	return func(n *Notifier) { n.owner = addr }
}

// WithSignature sets the closing line of the confirmation email.
func WithSignature(s string) NotifierOption {
	return func(n *Notifier) { n.signature = s }
}

func NewNotifier(m Mailer, log zerolog.Logger, opts ...NotifierOption) *Notifier {
	n := &Notifier{mailer: m, signature: "Computer Science Student", log: log}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify emails the confirmation to r.Email. The owner copy is best effort.
func (n *Notifier) Notify(ctx context.Context, r contact.Record) error {
	html, err := n.RenderConfirmation(r)
	if err != nil {
		return err
	}

	if err := n.mailer.Send(ctx, Message{To: r.Email, Subject: ConfirmationSubject, HTML: html}); err != nil {
		return err
	}
	n.log.Info().Str("contact_id", r.ID).Msg("confirmation email sent")

	if n.owner != "" {
		copyMsg := Message{
			To:      n.owner,
			Subject: "Portfolio Contact: " + r.Name,
			Text:    ownerText(r),
			ReplyTo: r.Email,
		}
		if err := n.mailer.Send(ctx, copyMsg); err != nil {
			n.log.Warn().Err(err).Str("contact_id", r.ID).Msg("owner copy not sent")
		}
	}
	return nil
}

// RenderConfirmation renders the confirmation email body for r.
func (n *Notifier) RenderConfirmation(r contact.Record) (string, error) {
	var buf bytes.Buffer
	err := confirmationTmpl.Execute(&buf, struct {
		Name, Company, Signature string
	}{r.Name, r.Company, n.signature})
	if err != nil {
		return "", fmt.Errorf("render confirmation: %w", err)
	}
	return buf.String(), nil
}

func ownerText(r contact.Record) string {
	return fmt.Sprintf(`New contact form submission from your portfolio:

Name: %s
Email: %s
Company: %s
WhatsApp: %s
Message:
%s

---
Sent from your portfolio contact form
`, r.Name, r.Email, r.Company, r.WhatsApp, r.Message)
}
