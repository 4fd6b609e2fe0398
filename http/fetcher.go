// Package http provides an HTTP-based implementation of prospect.Fetcher
// for fetching markup from sites that don't require JavaScript rendering.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/prospect"
)

// DefaultFetchTimeout is the default timeout applied when the caller's
// context carries no deadline. Kept consistent with the home-page budget.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBodyBytes caps how much of a response body is read, to bound
// memory on pathological pages.
const DefaultMaxBodyBytes = 1 << 20 // 1 MiB

// DefaultMaxRedirects bounds redirect following. The client re-issues the
// request to each redirect target rather than recursing unboundedly.
const DefaultMaxRedirects = 5

// defaultUserAgent mimics a desktop browser; some small-business hosts
// reject requests with an empty or Go-default agent string.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

const acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

// Ensure Fetcher implements prospect.Fetcher at compile time.
var _ prospect.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves markup from URLs using plain HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript and is suitable
// for static pages only.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	maxBody   int64
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the fallback timeout applied when the caller's context
// has no deadline. Defaults to DefaultFetchTimeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxBodyBytes sets the response body byte cap.
// Defaults to DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBody = n
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		maxBody:   DefaultMaxBodyBytes,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= DefaultMaxRedirects {
				return prospect.Errorf(prospect.EUNAVAILABLE, "stopped after %d redirects", DefaultMaxRedirects)
			}
			return nil
		},
	}

	return f
}

// Fetch retrieves the markup at the given URL. Failures are returned as
// coded errors so callers can distinguish timeouts, missing pages,
// oversized bodies and plain network failures.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if _, ok := ctx.Deadline(); !ok && f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", prospect.Errorf(prospect.EINVALID, "invalid URL %q", url)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", acceptHeader)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", classifyTransportError(url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", prospect.Errorf(prospect.ENOTFOUND, "HTTP 404 for %s", url)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", prospect.Errorf(prospect.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	// Read one byte past the cap so an at-cap body is distinguishable from
	// an oversized one.
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return "", classifyTransportError(url, err)
	}
	if int64(len(body)) > f.maxBody {
		return "", prospect.Errorf(prospect.ETOOLARGE, "response for %s exceeds %d bytes", url, f.maxBody)
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

func classifyTransportError(url string, err error) error {
	var appErr *prospect.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
		return &prospect.Error{
			Code:    prospect.ETIMEOUT,
			Message: "fetching " + url + " timed out",
			Err:     err,
		}
	}
	return &prospect.Error{
		Code:    prospect.EUNAVAILABLE,
		Message: "fetching " + url + " failed",
		Err:     err,
	}
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	if errors.As(err, &t) {
		return t.Timeout()
	}
	// url.Error sometimes only surfaces the deadline in its text.
	return strings.Contains(err.Error(), "deadline exceeded")
}
