package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/prospect"
)

// Ensure LoggingDiscoverer implements prospect.ContactDiscoverer.
var _ prospect.ContactDiscoverer = (*LoggingDiscoverer)(nil)

// LoggingDiscoverer wraps a ContactDiscoverer with per-site logging.
type LoggingDiscoverer struct {
	next   prospect.ContactDiscoverer
	logger *slog.Logger
}

// NewLoggingDiscoverer creates a new LoggingDiscoverer.
func NewLoggingDiscoverer(next prospect.ContactDiscoverer, logger *slog.Logger) *LoggingDiscoverer {
	return &LoggingDiscoverer{next: next, logger: logger}
}

// DiscoverContacts delegates to the wrapped discoverer and logs the outcome.
func (d *LoggingDiscoverer) DiscoverContacts(ctx context.Context, websiteURL string) (result *prospect.ScrapeResult, err error) {
	defer func(begin time.Time) {
		persons, emails, claims := 0, 0, 0
		if result != nil {
			persons = len(result.Persons)
			emails = len(result.Emails)
			claims = len(result.Claims)
		}
		d.logger.Info("discover contacts",
			"url", websiteURL,
			"persons", persons,
			"emails", emails,
			"claims", claims,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.DiscoverContacts(ctx, websiteURL)
}
