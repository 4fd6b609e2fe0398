package prospect

import "context"

// Fetcher retrieves markup from URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch retrieves the markup at the URL.
	// The context controls timeout and cancellation; implementations must
	// abort in-flight work when the context is done.
	Fetch(ctx context.Context, url string) (markup string, err error)

	// Close releases any resources held by the fetcher.
	// Must be safe to call more than once.
	Close() error
}

// RenderClassifier decides whether statically-fetched markup contains too
// little visible content to extract from, signalling that a heavier,
// script-executing fetch is required.
type RenderClassifier interface {
	NeedsRender(markup string) bool
}
