// Package alerts matches newly posted listings against keyword subscriptions
// and dispatches one rate-limited digest email per recipient.
package alerts

import (
	"strings"

	"remotejobs-engine/internal/store"
)

// Digest is one recipient's aggregated matches for a single run. Keywords and
// titles keep insertion order; duplicates are absorbed.
type Digest struct {
	Email    string
	Keywords []string
	Titles   []string

	keywordSeen map[string]bool
	titleSeen   map[string]bool
}

func (d *Digest) add(keyword, title string) {
	if !d.keywordSeen[keyword] {
		d.keywordSeen[keyword] = true
		d.Keywords = append(d.Keywords, keyword)
	}
	if !d.titleSeen[title] {
		d.titleSeen[title] = true
		d.Titles = append(d.Titles, title)
	}
}

// Batch groups the run's matches by recipient email. Two subscriptions
// sharing an email merge into one digest.
type Batch struct {
	order   []string
	byEmail map[string]*Digest
}

func (b *Batch) Len() int { return len(b.order) }

// Recipients returns emails in first-match order.
func (b *Batch) Recipients() []string { return b.order }

func (b *Batch) DigestFor(email string) *Digest { return b.byEmail[email] }

func (b *Batch) add(email, keyword, title string) {
	d, ok := b.byEmail[email]
	if !ok {
		d = &Digest{
			Email:       email,
			keywordSeen: map[string]bool{},
			titleSeen:   map[string]bool{},
		}
		b.byEmail[email] = d
		b.order = append(b.order, email)
	}
	d.add(keyword, title)
}

// Match folds subscriptions over candidate listings. It serves both the
// scheduled 24h scan and the on-publish notifier (a single-listing slice);
// the two paths must not drift apart.
func Match(listings []store.Listing, subs []store.Subscription) *Batch {
	b := &Batch{byEmail: map[string]*Digest{}}

	for _, sub := range subs {
		kw := strings.ToLower(strings.TrimSpace(sub.Keyword))
		if kw == "" {
			continue
		}
		for _, l := range listings {
			if listingMatches(l, kw) {
				b.add(sub.Email, sub.Keyword, l.Title)
			}
		}
	}
	return b
}

func listingMatches(l store.Listing, keyword string) bool {
	if strings.Contains(strings.ToLower(l.Title), keyword) {
		return true
	}
	for _, tag := range l.Tags {
		if strings.Contains(strings.ToLower(tag), keyword) {
			return true
		}
	}
	return false
}
