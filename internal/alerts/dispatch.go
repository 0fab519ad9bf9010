package alerts

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Sender is the mail capability the dispatcher consumes.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

const (
	defaultSendDelay = 300 * time.Millisecond
	defaultMaxTitles = 10
)

// Dispatcher sends one digest email per recipient, strictly sequentially,
// with a fixed inter-send delay to stay under the provider's per-second
// budget. Sends must not be parallelized.
type Dispatcher struct {
	Sender    Sender
	SendDelay time.Duration
	MaxTitles int
}

// Dispatch walks the batch in recipient order and returns how many sends
// succeeded. A failed send is logged and skipped, never retried.
func (d Dispatcher) Dispatch(ctx context.Context, batch *Batch) int {
	delay := d.SendDelay
	if delay <= 0 {
		delay = defaultSendDelay
	}
	limiter := rate.NewLimiter(rate.Every(delay), 1)

	sent := 0
	for _, email := range batch.Recipients() {
		if err := limiter.Wait(ctx); err != nil {
			// run abandoned; nothing to roll back
			return sent
		}
		dg := batch.DigestFor(email)
		subject, body := d.render(dg)
		if err := d.Sender.Send(ctx, email, subject, body); err != nil {
			log.Printf("[alerts] send failed to=%s err=%v", email, err)
			continue
		}
		sent++
	}
	return sent
}

func (d Dispatcher) render(dg *Digest) (subject, body string) {
	maxTitles := d.MaxTitles
	if maxTitles <= 0 {
		maxTitles = defaultMaxTitles
	}
	titles := dg.Titles
	if len(titles) > maxTitles {
		titles = titles[:maxTitles]
	}

	keywords := strings.Join(dg.Keywords, ", ")
	subject = fmt.Sprintf("New remote jobs matching: %s", keywords)

	var b strings.Builder
	fmt.Fprintf(&b, "<p>New jobs matching your alerts (%s):</p>\n<ul>\n", html.EscapeString(keywords))
	for _, t := range titles {
		fmt.Fprintf(&b, "<li>%s</li>\n", html.EscapeString(t))
	}
	b.WriteString("</ul>\n")
	return subject, b.String()
}
