package scrape

import (
	"context"
	"time"

	"github.com/fwojciec/prospect"
)

// DefaultRetryDelays returns the backoff delays for home-page fetch retries.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second}
}

// fetchWithRetry fetches a URL, retrying transient failures with the given
// backoff delays. Failures that retrying cannot fix (missing page, oversized
// body, invalid URL) are returned immediately.
func fetchWithRetry(ctx context.Context, fetcher prospect.Fetcher, url string, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		markup, err := fetcher.Fetch(ctx, url)
		if err == nil {
			return markup, nil
		}
		lastErr = err

		switch prospect.ErrorCode(err) {
		case prospect.ENOTFOUND, prospect.ETOOLARGE, prospect.EINVALID:
			return "", err
		}

		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", lastErr
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
