package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/prospect"
)

// Thresholds for the render-need decision.
const (
	// markerVisibleThreshold: below this much visible text, a recognized
	// script shell is assumed to render its content client-side.
	markerVisibleThreshold = 500

	// rawSizeThreshold/thinVisibleThreshold: a large payload with almost no
	// visible text is a script shell regardless of which framework produced
	// it.
	rawSizeThreshold     = 10000
	thinVisibleThreshold = 200
)

// shellStrings are markers of script-driven content shells that survive in
// raw markup even when DOM parsing fails.
var shellStrings = []string{
	"__NEXT_DATA__",
	"window.__NUXT__",
	"window.__INITIAL_STATE__",
	"wixBiSession",
	"Squarespace.afterBodyLoad",
}

// shellSelectors match root containers of single-page-application frameworks.
var shellSelectors = []string{
	"#__next",
	"#___gatsby",
	"#root",
	"#app",
	"[data-reactroot]",
	"[ng-app]",
	"[ng-version]",
	"[data-server-rendered]",
}

// builderGenerators are website-builder platforms known to serve script
// shells, matched against the meta generator tag.
var builderGenerators = []string{
	"wix", "squarespace", "webflow", "duda", "gatsby", "next.js", "nuxt",
}

// Ensure Classifier implements prospect.RenderClassifier at compile time.
var _ prospect.RenderClassifier = (*Classifier)(nil)

// Classifier decides whether statically-fetched markup needs a heavier,
// script-executing fetch before extraction is worthwhile.
type Classifier struct{}

// NewClassifier creates a new Classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// NeedsRender reports whether the markup should be re-fetched with a
// rendering fetcher. Content-rich pages never signal true, even when they
// happen to contain a framework marker.
func (c *Classifier) NeedsRender(markup string) bool {
	visibleLen := len(VisibleText(markup))

	// Generic heuristic: mostly script, little content.
	if len(markup) > rawSizeThreshold && visibleLen < thinVisibleThreshold {
		return true
	}

	return visibleLen < markerVisibleThreshold && c.hasShellMarker(markup)
}

// hasShellMarker reports whether the markup carries indicators of a
// script-driven content shell.
func (c *Classifier) hasShellMarker(markup string) bool {
	for _, s := range shellStrings {
		if strings.Contains(markup, s) {
			return true
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return false
	}

	if generator, ok := doc.Find(`meta[name="generator"]`).First().Attr("content"); ok {
		lower := strings.ToLower(generator)
		for _, g := range builderGenerators {
			if strings.Contains(lower, g) {
				return true
			}
		}
	}

	for _, sel := range shellSelectors {
		if doc.Find(sel).Length() > 0 {
			return true
		}
	}
	return false
}
