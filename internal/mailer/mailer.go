// Package mailer turns queued mail messages into SMTP messages.
package mailer

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"

	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/domain"
	"github.com/wneessen/go-mail"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

var ErrUnsupportedType = errors.New("mailer: unsupported mail type")

const SubjectRosterReplaced = "Staff dashboard - roster updated"

// Envelope is a queued domain.MailMessage with its data left undecoded.
type Envelope struct {
	Type string          `json:"type"`
	To   string          `json:"to"`
	Data json.RawMessage `json:"data"`
}

func Decode(body []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Envelope{}, fmt.Errorf("failed to decode mail message: %w", err)
	}
	return env, nil
}

// Build renders env into a message sent from from.
func Build(from string, env Envelope) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("failed to set sender: %w", err)
	}
	if err := msg.To(env.To); err != nil {
		return nil, fmt.Errorf("failed to set recipient: %w", err)
	}

	switch env.Type {
	case domain.MailTypeRosterReplaced:
		var data domain.RosterReplacedMailData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("failed to decode %s data: %w", env.Type, err)
		}
		if err := msg.SetBodyHTMLTemplate(templates.Lookup("roster_replaced.html"), data); err != nil {
			return nil, fmt.Errorf("failed to render body: %w", err)
		}
		msg.Subject(SubjectRosterReplaced)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, env.Type)
	}

	return msg, nil
}
