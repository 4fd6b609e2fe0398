// Package mock provides function-field test doubles for the domain
// interfaces.
package mock

import (
	"context"

	"github.com/fwojciec/prospect"
)

var _ prospect.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of prospect.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error

	FetchInvoked bool
	CloseInvoked bool
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.FetchInvoked = true
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	f.CloseInvoked = true
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ prospect.RenderClassifier = (*RenderClassifier)(nil)

// RenderClassifier is a mock implementation of prospect.RenderClassifier.
type RenderClassifier struct {
	NeedsRenderFn      func(markup string) bool
	NeedsRenderInvoked bool
}

func (c *RenderClassifier) NeedsRender(markup string) bool {
	c.NeedsRenderInvoked = true
	return c.NeedsRenderFn(markup)
}

var _ prospect.ContactDiscoverer = (*ContactDiscoverer)(nil)

// ContactDiscoverer is a mock implementation of prospect.ContactDiscoverer.
type ContactDiscoverer struct {
	DiscoverContactsFn      func(ctx context.Context, websiteURL string) (*prospect.ScrapeResult, error)
	DiscoverContactsInvoked bool
}

func (d *ContactDiscoverer) DiscoverContacts(ctx context.Context, websiteURL string) (*prospect.ScrapeResult, error) {
	d.DiscoverContactsInvoked = true
	return d.DiscoverContactsFn(ctx, websiteURL)
}
