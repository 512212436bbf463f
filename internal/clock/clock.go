package clock

import (
	"context"
	"time"
)

const (
	// DateLayout renders the long en-US date.
	DateLayout = "Monday, January 2, 2006"
	// TimeLayout renders the 12-hour time with seconds.
	TimeLayout = "03:04:05 PM"
)

// Reading is one rendering of the clock.
type Reading struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// Format renders now the way an en-US locale does.
func Format(now time.Time) Reading {
	return Reading{Date: now.Format(DateLayout), Time: now.Format(TimeLayout)}
}

// Run calls fn with a reading immediately and then once per interval until
// ctx ends or fn returns false. now defaults to time.Now.
func Run(ctx context.Context, interval time.Duration, now func() time.Time, fn func(Reading) bool) error {
	if now == nil {
		now = time.Now
	}
	if interval <= 0 {
		interval = time.Second
	}
	if !fn(Format(now())) {
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !fn(Format(now())) {
				return nil
			}
		}
	}
}
