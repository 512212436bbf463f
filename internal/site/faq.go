package site

import (
	"context"
	"strconv"

	"playbeat/internal/config"
	"playbeat/internal/feedback"
)

// FAQItem is one rendered accordion entry.
type FAQItem struct {
	Index    int
	Question string
	Answer   string
	Open     bool
	Target   string
	Href     string
}

// Accordion keeps at most one FAQ answer open.
type Accordion struct {
	entries []config.FAQEntry
	open    int
}

// NewAccordion returns an accordion with every answer closed.
func NewAccordion(entries []config.FAQEntry) *Accordion {
	return &Accordion{entries: entries, open: -1}
}

// FAQTarget is the page region for answer i.
func FAQTarget(i int) string {
	return "faq-" + strconv.Itoa(i)
}

// Select opens entry i, closes the others and bumps the opened answer.
// Out-of-range indexes close nothing and report false.
func (a *Accordion) Select(ctx context.Context, i int) bool {
	if i < 0 || i >= len(a.entries) {
		return false
	}
	a.open = i
	feedback.Bump(ctx, FAQTarget(i))
	return true
}

// Open returns the open index, or -1.
func (a *Accordion) Open() int {
	return a.open
}

// Items renders the entries.
func (a *Accordion) Items() []FAQItem {
	items := make([]FAQItem, len(a.entries))
	for i, entry := range a.entries {
		items[i] = FAQItem{
			Index:    i,
			Question: entry.Question,
			Answer:   entry.Answer,
			Open:     i == a.open,
			Target:   FAQTarget(i),
		}
	}
	return items
}
