package alerts

import (
	"context"
	"log"
	"time"

	"remotejobs-engine/internal/store"
)

const defaultWindow = 24 * time.Hour

// Engine runs one digest scan per invocation. Store reads are injected so
// tests can drive it without a database.
type Engine struct {
	RecentListings      func(ctx context.Context, since time.Time) ([]store.Listing, error)
	ActiveSubscriptions func(ctx context.Context) ([]store.Subscription, error)
	Dispatcher          Dispatcher
	Window              time.Duration
}

// Run scans listings posted inside the window against every active
// subscription and dispatches the resulting digests. An empty window
// short-circuits before any subscription is loaded.
//
// Subscription frequency (daily/weekly) does not gate evaluation yet; every
// active subscription is scanned on every run.
func (e Engine) Run(ctx context.Context) (sent int, err error) {
	window := e.Window
	if window <= 0 {
		window = defaultWindow
	}
	since := time.Now().UTC().Add(-window)

	listings, err := e.RecentListings(ctx, since)
	if err != nil {
		return 0, err
	}
	if len(listings) == 0 {
		return 0, nil
	}

	subs, err := e.ActiveSubscriptions(ctx)
	if err != nil {
		return 0, err
	}

	batch := Match(listings, subs)
	if batch.Len() == 0 {
		return 0, nil
	}

	log.Printf("[alerts] run window=%s listings=%d subscriptions=%d recipients=%d",
		window, len(listings), len(subs), batch.Len())
	return e.Dispatcher.Dispatch(ctx, batch), nil
}

// NotifyListing is the on-publish path: the same match and dispatch over a
// single freshly created listing.
func (e Engine) NotifyListing(ctx context.Context, l store.Listing) (sent int, err error) {
	subs, err := e.ActiveSubscriptions(ctx)
	if err != nil {
		return 0, err
	}
	batch := Match([]store.Listing{l}, subs)
	if batch.Len() == 0 {
		return 0, nil
	}
	return e.Dispatcher.Dispatch(ctx, batch), nil
}
