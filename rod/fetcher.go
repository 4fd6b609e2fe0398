package rod

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/prospect"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultRenderDelay is how long the fetcher waits after load for
// script-driven content to settle before reading the DOM.
const DefaultRenderDelay = 500 * time.Millisecond

// Ensure Fetcher implements prospect.Fetcher at compile time.
var _ prospect.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered markup using the shared browser owned by a
// BrowserManager. One page context is opened per render and closed before
// returning. Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager     *BrowserManager
	renderDelay time.Duration
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithRenderDelay sets the post-load settle delay.
// Defaults to DefaultRenderDelay.
func WithRenderDelay(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.renderDelay = d
	}
}

// NewFetcher creates a new Fetcher backed by the given manager.
// The manager may be shared with other fetchers; it is closed by the
// fetcher's Close.
func NewFetcher(manager *BrowserManager, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		manager:     manager,
		renderDelay: DefaultRenderDelay,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch navigates to the URL in a fresh page context, waits for scripts to
// render, and returns the resulting markup.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser, err := f.manager.Browser()
	if err != nil {
		return "", &prospect.Error{Code: prospect.EUNAVAILABLE, Message: "browser unavailable", Err: err}
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", &prospect.Error{Code: prospect.EUNAVAILABLE, Message: "opening page failed", Err: err}
	}
	defer page.Close()

	// Bind all subsequent page operations to the caller's context so a hung
	// site cannot stall the batch.
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", classifyRenderError(url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", classifyRenderError(url, err)
	}

	if f.renderDelay > 0 {
		select {
		case <-ctx.Done():
			return "", classifyRenderError(url, ctx.Err())
		case <-time.After(f.renderDelay):
		}
	}

	markup, err := page.HTML()
	if err != nil {
		return "", classifyRenderError(url, err)
	}

	f.manager.IncrementPageCount()
	return markup, nil
}

// Close shuts down the underlying browser manager.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

func classifyRenderError(url string, err error) error {
	code := prospect.EUNAVAILABLE
	if errors.Is(err, context.DeadlineExceeded) {
		code = prospect.ETIMEOUT
	}
	return &prospect.Error{Code: code, Message: "rendering " + url + " failed", Err: err}
}
