package contact

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"playbeat/internal/feedback"
	"playbeat/internal/logging"
	"playbeat/internal/remote"
)

// Status lines shown under the form.
const (
	StatusMissingFields = "Please fill in all required fields."
	StatusSent          = "Message sent! ✅"
	StatusFailed        = "Something went wrong."
	StatusNetworkError  = "Network error."
)

// Target is the page region cued after a successful send.
const Target = "contact"

// ErrMissingFields reports a form without name, email, or message.
var ErrMissingFields = errors.New("name, email, and message are required")

// Form is the contact form's fields.
type Form struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate requires every field to be non-blank.
func (f Form) Validate() error {
	if strings.TrimSpace(f.Name) == "" || strings.TrimSpace(f.Email) == "" || strings.TrimSpace(f.Message) == "" {
		return ErrMissingFields
	}
	return nil
}

// Outcome is the result of one submission.
type Outcome struct {
	Status string `json:"status"`
	Sent   bool   `json:"sent"`
	// Form holds the fields to redisplay: empty after a send, intact otherwise.
	Form Form   `json:"form"`
	ID   string `json:"id,omitempty"`
}

// Submitter runs the form flow against a sender.
type Submitter struct {
	sender remote.ContactSender
	cue    feedback.Cue
	logger *slog.Logger
}

// NewSubmitter returns a Submitter. A nil cue is silent.
func NewSubmitter(sender remote.ContactSender, cue feedback.Cue, logger *slog.Logger) *Submitter {
	return &Submitter{
		sender: sender,
		cue:    feedback.OrNop(cue),
		logger: logging.NewComponentLogger(logger, "contact"),
	}
}

// Submit validates form and, when valid, sends it. Validation failures never
// reach the sender.
func (s *Submitter) Submit(ctx context.Context, form Form) Outcome {
	if err := form.Validate(); err != nil {
		return Outcome{Status: StatusMissingFields, Form: form}
	}
	res, err := s.sender.SendContact(ctx, remote.ContactPayload{
		Name:    strings.TrimSpace(form.Name),
		Email:   strings.TrimSpace(form.Email),
		Message: strings.TrimSpace(form.Message),
	})
	if err != nil {
		logging.WithContext(ctx, s.logger).Debug("contact send failed", logging.Error(err))
		return Outcome{Status: StatusNetworkError, Form: form}
	}
	if !res.OK {
		return Outcome{Status: StatusFailed, Form: form, ID: res.ID}
	}
	s.cue.Cue(ctx, Target)
	return Outcome{Status: StatusSent, Sent: true, ID: res.ID}
}
