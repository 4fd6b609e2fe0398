package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
)

// maxSitemapURLs bounds how many contact-style URLs a sitemap probe may
// contribute to a scrape.
const maxSitemapURLs = 5

// maxSitemapBytes caps sitemap downloads; indexes on large sites can be huge.
const maxSitemapBytes = 2 << 20

// contactPathKeywords mark sitemap URLs worth visiting for contact discovery.
var contactPathKeywords = []string{
	"about", "team", "staff", "people", "contact", "meet",
}

// SitemapService discovers about/team/contact-style URLs from a site's
// sitemap. It is a best-effort supplement to the fixed secondary path list;
// every failure path returns an empty slice rather than an error the
// aggregator would have to handle.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// ContactURLs returns up to maxSitemapURLs URLs from the site's sitemap
// whose paths suggest about/team/contact content.
func (s *SitemapService) ContactURLs(ctx context.Context, baseURL string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return []string{}, nil
	}
	base.Path = ""
	base.RawQuery = ""
	base.Fragment = ""

	sitemapURLs := s.findSitemapURLs(ctx, base)

	seen := make(map[string]bool)
	var out []string
	for _, sitemapURL := range sitemapURLs {
		for _, u := range s.readSitemap(ctx, sitemapURL, 0) {
			if len(out) >= maxSitemapURLs {
				return out, nil
			}
			if !isContactPath(u) || seen[u] {
				continue
			}
			seen[u] = true
			out = append(out, u)
		}
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// findSitemapURLs discovers sitemap locations from robots.txt, falling back
// to the conventional /sitemap.xml path.
func (s *SitemapService) findSitemapURLs(ctx context.Context, base *url.URL) []string {
	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"})
	if sitemaps := s.sitemapsFromRobots(ctx, robotsURL.String()); len(sitemaps) > 0 {
		return sitemaps
	}
	return []string{base.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()}
}

// sitemapsFromRobots parses Sitemap: directives out of robots.txt.
func (s *SitemapService) sitemapsFromRobots(ctx context.Context, robotsURL string) []string {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(io.LimitReader(body, maxSitemapBytes))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if rest, ok := strings.CutPrefix(line, "Sitemap:"); ok {
			if u := strings.TrimSpace(rest); u != "" {
				sitemaps = append(sitemaps, u)
			}
		}
	}
	return sitemaps
}

// readSitemap returns the page URLs listed in a sitemap. Sitemap index files
// are followed one level deep.
func (s *SitemapService) readSitemap(ctx context.Context, sitemapURL string, depth int) []string {
	if depth > 1 {
		return nil
	}

	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(io.LimitReader(body, maxSitemapBytes)); err != nil {
		return nil
	}

	root := doc.Root()
	if root == nil {
		return nil
	}

	var urls []string
	switch root.Tag {
	case "urlset":
		for _, el := range root.SelectElements("url") {
			if loc := el.SelectElement("loc"); loc != nil {
				if u := strings.TrimSpace(loc.Text()); u != "" {
					urls = append(urls, u)
				}
			}
		}
	case "sitemapindex":
		for _, el := range root.SelectElements("sitemap") {
			if loc := el.SelectElement("loc"); loc != nil {
				if u := strings.TrimSpace(loc.Text()); u != "" {
					urls = append(urls, s.readSitemap(ctx, u, depth+1)...)
				}
			}
		}
	}
	return urls
}

func (s *SitemapService) get(ctx context.Context, u string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, u)
	}
	return resp.Body, nil
}

func isContactPath(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	path := strings.ToLower(parsed.Path)
	for _, kw := range contactPathKeywords {
		if strings.Contains(path, kw) {
			return true
		}
	}
	return false
}
