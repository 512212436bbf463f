package remote_test

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"playbeat/internal/notifications"
	"playbeat/internal/remote"
)

type stubNotifier struct {
	messages []notifications.ContactMessage
	err      error
}

func (s *stubNotifier) NotifyContact(_ context.Context, msg notifications.ContactMessage) error {
	s.messages = append(s.messages, msg)
	return s.err
}

func (s *stubNotifier) NotifyError(context.Context, error, string) error { return nil }

func (s *stubNotifier) TestNotification(context.Context) error { return nil }

func TestSendContactAcknowledgesAfterDelay(t *testing.T) {
	svc := remote.New(remote.Options{ContactDelay: 20 * time.Millisecond})
	start := time.Now()
	res, err := svc.SendContact(context.Background(), remote.ContactPayload{Name: "Ann", Email: "a@b.c", Message: "hi"})
	if err != nil {
		t.Fatalf("SendContact failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("expected simulated delay, returned after %s", elapsed)
	}
	if !res.OK || res.Message != remote.ContactAck || res.ID == "" {
		t.Fatalf("unexpected result: %#v", res)
	}
}

func TestSendContactHonoursCancellation(t *testing.T) {
	svc := remote.New(remote.Options{ContactDelay: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.SendContact(ctx, remote.ContactPayload{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSendContactForwardsToNotifier(t *testing.T) {
	notifier := &stubNotifier{}
	svc := remote.New(remote.Options{Notifier: notifier})
	res, err := svc.SendContact(context.Background(), remote.ContactPayload{Name: "Ann", Email: "a@b.c", Message: "hi"})
	if err != nil || !res.OK {
		t.Fatalf("unexpected result %#v err=%v", res, err)
	}
	if len(notifier.messages) != 1 || notifier.messages[0].Name != "Ann" || notifier.messages[0].ID != res.ID {
		t.Fatalf("unexpected forwarded messages: %#v", notifier.messages)
	}

	notifier.err = errors.New("ntfy down")
	res, err = svc.SendContact(context.Background(), remote.ContactPayload{Name: "Bo"})
	if err != nil {
		t.Fatalf("forward failure should not be an error: %v", err)
	}
	if res.OK {
		t.Fatal("expected ok=false when forwarding fails")
	}
}

func TestRandomQuoteUsesInjectedChoice(t *testing.T) {
	for i, want := range remote.Quotes {
		svc := remote.New(remote.Options{Intn: func(n int) int {
			if n != len(remote.Quotes) {
				t.Fatalf("unexpected range %d", n)
			}
			return i
		}})
		q, err := svc.RandomQuote(context.Background())
		if err != nil {
			t.Fatalf("RandomQuote failed: %v", err)
		}
		if q.Text != want {
			t.Fatalf("quote %d = %q, want %q", i, q.Text, want)
		}
	}
}

func TestRandomQuoteDefaultSource(t *testing.T) {
	svc := remote.New(remote.Options{})
	q, err := svc.RandomQuote(context.Background())
	if err != nil {
		t.Fatalf("RandomQuote failed: %v", err)
	}
	if !slices.Contains(remote.Quotes, q.Text) {
		t.Fatalf("unexpected quote %q", q.Text)
	}
}
