// Package mail defines how passwordless login links leave the server.
package mail

import (
	"context"
	"fmt"

	"github.com/asorokin/decat/internal/logging"
)

// Mailer delivers a login link to an email address.
type Mailer interface {
	SendLoginLink(ctx context.Context, email, token string) error
}

// LogMailer writes the login link to the server log instead of sending mail.
// Useful for development and self-hosted installs without an SMTP relay.
type LogMailer struct {
	logger logging.Logger
}

func NewLogMailer(logger logging.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendLoginLink(ctx context.Context, email, token string) error {
	m.logger.Info(ctx, "login link issued",
		"email", email,
		"hint", fmt.Sprintf("decat login --token %s", token),
	)
	return nil
}
