package prospect

// Page is the result of fetching one URL, projected into the forms the
// extractors consume. Pages are owned by the aggregator for the duration of
// one scrape and are not retained afterwards.
type Page struct {
	URL  string
	HTML string

	// VisibleText is the markup stripped of scripts, styles and tags.
	VisibleText string

	// Summary is the page's meta description, when present. Summary fields
	// are curated and less noisy than body text, so extraction treats them
	// as a high-precedence source.
	Summary string

	// Title is the document title, used to recognize error pages.
	Title string

	// Rendered records provenance: true when the markup came from a
	// script-executing fetch rather than a plain HTTP GET.
	Rendered bool
}
