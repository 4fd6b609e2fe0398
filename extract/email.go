// Package extract pulls contact signals out of page markup: email
// candidates, person candidates via an ordered set of pattern strategies,
// and auxiliary registration details. Everything here is a pure function of
// its input, so repeated extraction over fixed markup is deterministic.
package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/fwojciec/prospect"
)

// emailPattern is deliberately permissive; the filters below carry the
// precision.
var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9](?:[a-zA-Z0-9\-.]*[a-zA-Z0-9])?\.[a-zA-Z]{2,}`)

// dimensionSuffix matches image-size annotations that end up glued to the
// local part when a filename like logo-300x200@2x.png sits near email-shaped
// text.
var dimensionSuffix = regexp.MustCompile(`\d+x\d*$`)

var imageExtensions = []string{
	".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg", ".bmp", ".ico", ".avif",
}

// platformDomains are infrastructure addresses that appear in page source
// but are never business contact points.
var platformDomains = []string{
	"sentry.io",
	"wixpress.com",
	"wix.com",
	"squarespace.com",
	"webflow.com",
	"godaddy.com",
	"shopify.com",
	"cloudflare.com",
	"duda.co",
	"example.com",
	"yourdomain.com",
	"domain.com",
	"schema.org",
	"w3.org",
}

// Emails scans markup for email candidates, filters out artifacts and
// platform addresses, and returns them deduplicated in ascending rank order.
// Ties keep first-seen order. businessDomain is the host of the business's
// own website and drives the ranking.
func Emails(markup, businessDomain string) []prospect.Email {
	seen := make(map[string]bool)
	var out []prospect.Email

	for _, token := range emailPattern.FindAllString(markup, -1) {
		addr := strings.ToLower(token)
		if seen[addr] {
			continue
		}
		seen[addr] = true

		local, domain, ok := splitAddress(addr)
		if !ok {
			continue
		}
		if isImageFilename(addr) || dimensionSuffix.MatchString(local) {
			continue
		}
		if isPlatformDomain(domain) {
			continue
		}

		out = append(out, prospect.Email{
			Address: addr,
			Rank:    rank(local, domain, businessDomain),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out
}

// rank scores an address's relevance to the business. Lower is better.
func rank(local, domain, businessDomain string) int {
	if !sameDomain(domain, businessDomain) {
		return prospect.RankForeignDomain
	}
	switch {
	case strings.Contains(local, "contact") || strings.Contains(local, "info"):
		return prospect.RankOwnDomainContact
	case strings.Contains(local, "hello") || strings.Contains(local, "enquir"):
		return prospect.RankOwnDomainHello
	default:
		return prospect.RankOwnDomainOther
	}
}

func splitAddress(addr string) (local, domain string, ok bool) {
	at := strings.LastIndex(addr, "@")
	if at <= 0 || at == len(addr)-1 {
		return "", "", false
	}
	return addr[:at], addr[at+1:], true
}

func isImageFilename(addr string) bool {
	for _, ext := range imageExtensions {
		if strings.HasSuffix(addr, ext) {
			return true
		}
	}
	return false
}

func isPlatformDomain(domain string) bool {
	for _, pd := range platformDomains {
		if domain == pd || strings.HasSuffix(domain, "."+pd) {
			return true
		}
	}
	return false
}

// sameDomain compares hosts ignoring a www prefix and matching subdomains
// of the business domain.
func sameDomain(domain, businessDomain string) bool {
	d := strings.TrimPrefix(strings.ToLower(domain), "www.")
	b := strings.TrimPrefix(strings.ToLower(businessDomain), "www.")
	if b == "" {
		return false
	}
	return d == b || strings.HasSuffix(d, "."+b)
}
