// Package bloom provides probabilistic deduplication of business websites
// for batch runs.
package bloom

import (
	"net/url"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// SiteFilter tracks which sites a batch run has already processed. Sites are
// keyed by bare host, so https://www.practice.co.uk and practice.co.uk/home
// count as one site. Safe for concurrent use.
type SiteFilter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewSiteFilter creates a filter sized for n expected sites with the given
// false positive rate.
func NewSiteFilter(n uint, fpRate float64) *SiteFilter {
	return &SiteFilter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a site as processed.
func (f *SiteFilter) Add(websiteURL string) {
	key := siteKey(websiteURL)
	f.mu.Lock()
	f.f.AddString(key)
	f.mu.Unlock()
}

// Seen returns true if the site might have been processed already.
// False positives are possible; false negatives are not.
func (f *SiteFilter) Seen(websiteURL string) bool {
	key := siteKey(websiteURL)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestString(key)
}

// EstimatedCount returns the approximate number of sites in the filter.
func (f *SiteFilter) EstimatedCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}

// siteKey reduces a website URL to its bare host.
func siteKey(websiteURL string) string {
	raw := strings.TrimSpace(websiteURL)
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return strings.ToLower(strings.TrimSpace(websiteURL))
	}
	return strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
}
