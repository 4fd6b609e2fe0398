// Package scrape drives contact discovery for one business: fetching the
// home page, deciding whether a rendering fetch is needed, walking a bounded
// set of secondary pages, and resolving the merged candidates into claims.
package scrape

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/prospect"
	"github.com/fwojciec/prospect/claim"
	"github.com/fwojciec/prospect/extract"
	"github.com/fwojciec/prospect/goquery"
)

// Default fetch budgets. The home page gets a longer budget because its
// failure terminates the whole operation; secondary pages are best-effort.
const (
	DefaultHomeTimeout      = 10 * time.Second
	DefaultSecondaryTimeout = 5 * time.Second
	DefaultMaxSecondary     = 12
)

// minSecondaryVisible is the substance gate for secondary pages: thinner
// pages are almost always redirects or placeholders and merging them only
// adds noise.
const minSecondaryVisible = 150

// SitemapSource surfaces additional about/team/contact-style URLs for a
// site, typically from its sitemap.
type SitemapSource interface {
	ContactURLs(ctx context.Context, baseURL string) ([]string, error)
}

// Ensure Scraper implements prospect.ContactDiscoverer at compile time.
var _ prospect.ContactDiscoverer = (*Scraper)(nil)

// Scraper aggregates extraction over a business's home page and secondary
// pages. It holds no per-scrape state, so one Scraper is safe to use
// concurrently for different businesses.
type Scraper struct {
	static     prospect.Fetcher
	renderer   prospect.Fetcher
	classifier prospect.RenderClassifier
	sitemaps   SitemapSource
	persons    *extract.PersonExtractor
	resolver   *claim.Resolver

	homeTimeout      time.Duration
	secondaryTimeout time.Duration
	maxSecondary     int
	retryDelays      []time.Duration
	secondaryPaths   []string
	now              func() time.Time
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithRenderer enables the rendering fallback: when the classifier signals
// that static markup is a script shell, the renderer re-fetches the home
// page. Without this option thin pages are processed as-is.
func WithRenderer(renderer prospect.Fetcher, classifier prospect.RenderClassifier) Option {
	return func(s *Scraper) {
		s.renderer = renderer
		s.classifier = classifier
	}
}

// WithSitemaps supplements the fixed secondary path list with URLs
// discovered from the site's sitemap.
func WithSitemaps(src SitemapSource) Option {
	return func(s *Scraper) {
		s.sitemaps = src
	}
}

// WithHomeTimeout sets the home page fetch budget.
// Defaults to DefaultHomeTimeout.
func WithHomeTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		s.homeTimeout = d
	}
}

// WithSecondaryTimeout sets the per-page budget for secondary pages.
// Defaults to DefaultSecondaryTimeout.
func WithSecondaryTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		s.secondaryTimeout = d
	}
}

// WithMaxSecondaryPages bounds how many secondary pages are attempted.
// Defaults to DefaultMaxSecondary.
func WithMaxSecondaryPages(n int) Option {
	return func(s *Scraper) {
		s.maxSecondary = n
	}
}

// WithRetryDelays sets the backoff delays for the mandatory home page fetch.
// This is useful for testing without waiting for real delays.
func WithRetryDelays(delays []time.Duration) Option {
	return func(s *Scraper) {
		s.retryDelays = delays
	}
}

// WithPersonExtractor overrides the person extractor, e.g. to retune
// strategy precedence.
func WithPersonExtractor(e *extract.PersonExtractor) Option {
	return func(s *Scraper) {
		s.persons = e
	}
}

// NewScraper creates a Scraper that fetches with the given static fetcher.
func NewScraper(static prospect.Fetcher, opts ...Option) *Scraper {
	s := &Scraper{
		static:           static,
		persons:          extract.NewPersonExtractor(),
		resolver:         claim.NewResolver(),
		homeTimeout:      DefaultHomeTimeout,
		secondaryTimeout: DefaultSecondaryTimeout,
		maxSecondary:     DefaultMaxSecondary,
		retryDelays:      DefaultRetryDelays(),
		secondaryPaths:   DefaultSecondaryPaths(),
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DiscoverContacts produces a ScrapeResult for the business website. Only
// total home-page failure is an error; every secondary page problem is
// recovered locally by skipping the page.
func (s *Scraper) DiscoverContacts(ctx context.Context, websiteURL string) (*prospect.ScrapeResult, error) {
	base, err := normalizeURL(websiteURL)
	if err != nil {
		return nil, err
	}

	home, err := s.fetchHome(ctx, base.String())
	if err != nil {
		return nil, err
	}

	domain := base.Hostname()
	emails := extract.Emails(home.HTML, domain)
	persons := s.persons.Persons(home)

	seenPages := map[uint64]bool{xxhash.Sum64String(home.HTML): true}
	seenEmails := make(map[string]bool, len(emails))
	for _, e := range emails {
		seenEmails[e.Address] = true
	}
	seenPersons := make(map[string]bool, len(persons))
	for _, p := range persons {
		seenPersons[strings.ToLower(p.Name)] = true
	}

	for _, pageURL := range s.secondaryURLs(ctx, base) {
		page, ok := s.fetchSecondary(ctx, pageURL, seenPages)
		if !ok {
			continue
		}
		for _, e := range extract.Emails(page.HTML, domain) {
			if seenEmails[e.Address] {
				continue
			}
			seenEmails[e.Address] = true
			emails = append(emails, e)
		}
		for _, p := range s.persons.Persons(page) {
			key := strings.ToLower(p.Name)
			if seenPersons[key] {
				continue
			}
			seenPersons[key] = true
			persons = append(persons, p)
		}
	}

	sortEmails(emails)

	// Resolution runs once over the merged sets so a person named on one
	// page can claim an email found on another.
	resolved, claims := s.resolver.Resolve(persons, emails)

	return &prospect.ScrapeResult{
		URL:               base.String(),
		Persons:           resolved,
		Emails:            emails,
		Claims:            claims,
		RegistrationID:    extract.RegistrationID(home.VisibleText),
		RegisteredAddress: extract.RegisteredAddress(home.VisibleText),
		FetchedAt:         s.now(),
	}, nil
}

// fetchHome retrieves the home page, applying the render-need decision and
// the rendering fallback when enabled. Rendering failure falls back to the
// static markup rather than failing the scrape.
func (s *Scraper) fetchHome(ctx context.Context, homeURL string) (*prospect.Page, error) {
	hctx, cancel := context.WithTimeout(ctx, s.homeTimeout)
	defer cancel()

	markup, err := fetchWithRetry(hctx, s.static, homeURL, s.retryDelays)
	if err != nil {
		return nil, err
	}

	rendered := false
	if s.renderer != nil && s.classifier != nil && s.classifier.NeedsRender(markup) {
		rctx, rcancel := context.WithTimeout(ctx, s.homeTimeout)
		if rmarkup, rerr := s.renderer.Fetch(rctx, homeURL); rerr == nil && rmarkup != "" {
			markup = rmarkup
			rendered = true
		}
		rcancel()
	}

	return goquery.BuildPage(homeURL, markup, rendered), nil
}

// fetchSecondary retrieves one secondary page, returning ok=false for any
// condition that means the page should be skipped: fetch failure, content
// already seen on another path, thin content, or an error page.
func (s *Scraper) fetchSecondary(ctx context.Context, pageURL string, seenPages map[uint64]bool) (*prospect.Page, bool) {
	sctx, cancel := context.WithTimeout(ctx, s.secondaryTimeout)
	defer cancel()

	markup, err := s.static.Fetch(sctx, pageURL)
	if err != nil {
		return nil, false
	}

	sum := xxhash.Sum64String(markup)
	if seenPages[sum] {
		return nil, false
	}
	seenPages[sum] = true

	page := goquery.BuildPage(pageURL, markup, false)
	if !substantial(page) {
		return nil, false
	}
	return page, true
}

// secondaryURLs builds the bounded, deduplicated list of secondary pages.
// Sitemap-discovered URLs come first because they are site-specific; the
// fixed path list follows as the generic fallback.
func (s *Scraper) secondaryURLs(ctx context.Context, base *url.URL) []string {
	root := *base
	root.Path = ""
	root.RawQuery = ""
	root.Fragment = ""

	seen := map[string]bool{base.String(): true}
	var out []string
	add := func(u string) {
		if len(out) >= s.maxSecondary || seen[u] || u == "" {
			return
		}
		seen[u] = true
		out = append(out, u)
	}

	if s.sitemaps != nil {
		if extras, err := s.sitemaps.ContactURLs(ctx, root.String()); err == nil {
			for _, u := range extras {
				add(u)
			}
		}
	}

	for _, suffix := range s.secondaryPaths {
		add(root.ResolveReference(&url.URL{Path: suffix}).String())
	}

	return out
}

// substantial reports whether a secondary page has enough real content to
// merge: not thin, and not an error or "not found" page served with a 200.
func substantial(page *prospect.Page) bool {
	if len(page.VisibleText) < minSecondaryVisible {
		return false
	}
	title := strings.ToLower(page.Title)
	for _, marker := range []string{"not found", "404", "error"} {
		if strings.Contains(title, marker) {
			return false
		}
	}
	return !strings.Contains(strings.ToLower(page.VisibleText[:min(len(page.VisibleText), 200)]), "page not found")
}

// sortEmails re-sorts merged emails by ascending rank, preserving
// first-seen order within a rank.
func sortEmails(emails []prospect.Email) {
	// Insertion sort keeps the implementation allocation-free and stable;
	// candidate lists are tiny.
	for i := 1; i < len(emails); i++ {
		for j := i; j > 0 && emails[j].Rank < emails[j-1].Rank; j-- {
			emails[j], emails[j-1] = emails[j-1], emails[j]
		}
	}
}

// normalizeURL parses a website URL, defaulting the scheme to https when the
// input is a bare domain.
func normalizeURL(websiteURL string) (*url.URL, error) {
	raw := strings.TrimSpace(websiteURL)
	if raw == "" {
		return nil, prospect.Errorf(prospect.EINVALID, "website URL required")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return nil, prospect.Errorf(prospect.EINVALID, "invalid website URL %q", websiteURL)
	}
	return parsed, nil
}
