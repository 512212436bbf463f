package remote

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"playbeat/internal/logging"
	"playbeat/internal/notifications"
)

// ContactAck is the message returned for an accepted contact submission.
const ContactAck = "Thanks, we received your message!"

// Quotes are the fixed quotes served by RandomQuote.
var Quotes = []string{
	"Music is the shorthand of emotion. — Tolstoy",
	"One good thing about music, when it hits you, you feel no pain. — Marley",
	"Where words fail, music speaks. — Andersen",
	"Without music, life would be a mistake. — Nietzsche",
}

// ContactPayload is a contact form submission.
type ContactPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ContactResult is the simulated endpoint's answer.
type ContactResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// Quote is a single quote.
type Quote struct {
	Text string `json:"text"`
}

// ContactSender submits contact payloads.
type ContactSender interface {
	SendContact(ctx context.Context, payload ContactPayload) (ContactResult, error)
}

// QuoteSource serves quotes.
type QuoteSource interface {
	RandomQuote(ctx context.Context) (Quote, error)
}

// Options configures a Service. Zero delays answer immediately.
type Options struct {
	ContactDelay time.Duration
	QuoteDelay   time.Duration
	Notifier     notifications.Service
	Logger       *slog.Logger
	// Intn picks an index in [0, n); defaults to math/rand/v2.
	Intn func(n int) int
}

// Service is the simulated backend.
type Service struct {
	contactDelay time.Duration
	quoteDelay   time.Duration
	notifier     notifications.Service
	logger       *slog.Logger
	intn         func(n int) int
}

// New builds a Service.
func New(opts Options) *Service {
	s := &Service{
		contactDelay: opts.ContactDelay,
		quoteDelay:   opts.QuoteDelay,
		notifier:     opts.Notifier,
		logger:       logging.NewComponentLogger(opts.Logger, "remote"),
		intn:         opts.Intn,
	}
	if s.intn == nil {
		s.intn = rand.IntN
	}
	return s
}

// SendContact waits for the contact delay and acknowledges the payload. A
// cancelled context is reported as an error, the way a dropped connection
// would be. When a notifier is configured, a failed forward yields ok=false.
func (s *Service) SendContact(ctx context.Context, payload ContactPayload) (ContactResult, error) {
	if err := wait(ctx, s.contactDelay); err != nil {
		return ContactResult{}, fmt.Errorf("send contact: %w", err)
	}
	id := uuid.NewString()
	logger := logging.WithContext(ctx, s.logger)
	if s.notifier != nil {
		err := s.notifier.NotifyContact(ctx, notifications.ContactMessage{
			ID:      id,
			Name:    payload.Name,
			Email:   payload.Email,
			Message: payload.Message,
		})
		if err != nil {
			logging.WarnWithContext(logger, "contact forward failed", "contact_forward_failed",
				logging.String("message_id", id),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check notifications.ntfy_topic and network reachability"),
				logging.String(logging.FieldImpact, "contact message was not delivered"),
			)
			return ContactResult{OK: false, Message: "Could not deliver your message.", ID: id}, nil
		}
	}
	logger.Info("contact message accepted",
		logging.String("message_id", id),
		logging.String(logging.FieldEventType, "contact_received"),
	)
	return ContactResult{OK: true, Message: ContactAck, ID: id}, nil
}

// RandomQuote waits for the quote delay and returns one of Quotes chosen uniformly.
func (s *Service) RandomQuote(ctx context.Context) (Quote, error) {
	if err := wait(ctx, s.quoteDelay); err != nil {
		return Quote{}, fmt.Errorf("load quote: %w", err)
	}
	return Quote{Text: Quotes[s.intn(len(Quotes))]}, nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var (
	_ ContactSender = (*Service)(nil)
	_ QuoteSource   = (*Service)(nil)
)
