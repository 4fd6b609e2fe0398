package goquery_test

import (
	"fmt"
	"strings"
	"testing"

	prospectquery "github.com/fwojciec/prospect/goquery"
	"github.com/stretchr/testify/assert"
)

// visibleFiller produces markup whose visible text is roughly n characters.
func visibleFiller(n int) string {
	word := "content "
	return "<p>" + strings.Repeat(word, n/len(word)+1) + "</p>"
}

func TestClassifier_NeedsRender(t *testing.T) {
	t.Parallel()

	c := prospectquery.NewClassifier()

	t.Run("large markup with almost no visible text needs rendering", func(t *testing.T) {
		t.Parallel()

		markup := fmt.Sprintf(
			"<html><head><script>%s</script></head><body><div>loading</div></body></html>",
			strings.Repeat("var x=1;", 2000),
		)
		assert.Greater(t, len(markup), 10000)
		assert.True(t, c.NeedsRender(markup))
	})

	t.Run("framework shell with thin visible text needs rendering", func(t *testing.T) {
		t.Parallel()

		markup := `<html><body><div id="__next"></div><script id="__NEXT_DATA__">{}</script></body></html>`
		assert.True(t, c.NeedsRender(markup))
	})

	t.Run("builder generator with thin visible text needs rendering", func(t *testing.T) {
		t.Parallel()

		markup := `<html><head><meta name="generator" content="Wix.com Website Builder"></head><body><p>Loading</p></body></html>`
		assert.True(t, c.NeedsRender(markup))
	})

	t.Run("content-rich page with a framework marker does not need rendering", func(t *testing.T) {
		t.Parallel()

		markup := `<html><body><div id="__next">` + visibleFiller(600) + `</div></body></html>`
		assert.False(t, c.NeedsRender(markup))
	})

	t.Run("ordinary content page does not need rendering", func(t *testing.T) {
		t.Parallel()

		markup := "<html><body>" + visibleFiller(1200) + "</body></html>"
		assert.False(t, c.NeedsRender(markup))
	})

	t.Run("small plain page without markers does not need rendering", func(t *testing.T) {
		t.Parallel()

		assert.False(t, c.NeedsRender("<html><body><p>Call us on 01234 567890</p></body></html>"))
	})
}

func TestVisibleText(t *testing.T) {
	t.Parallel()

	t.Run("strips scripts styles and tags", func(t *testing.T) {
		t.Parallel()

		markup := `<html><head><title>T</title><style>p{color:red}</style></head>` +
			`<body><script>var a=1;</script><p>Our   team</p><noscript>enable js</noscript><p>cares</p></body></html>`
		assert.Equal(t, "Our team cares", prospectquery.VisibleText(markup))
	})

	t.Run("tolerates malformed markup", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "hello", prospectquery.VisibleText("<p>hello"))
	})
}

func TestBuildPage(t *testing.T) {
	t.Parallel()

	markup := `<html><head><title>Acme Dental</title>` +
		`<meta name="description" content="Dr Jane Smith and the Acme team"></head>` +
		`<body><p>Welcome</p></body></html>`

	page := prospectquery.BuildPage("https://acme.example", markup, true)
	assert.Equal(t, "https://acme.example", page.URL)
	assert.Equal(t, "Acme Dental", page.Title)
	assert.Equal(t, "Dr Jane Smith and the Acme team", page.Summary)
	assert.Equal(t, "Welcome", page.VisibleText)
	assert.True(t, page.Rendered)
}

func TestBuildPage_FallsBackToOGDescription(t *testing.T) {
	t.Parallel()

	markup := `<html><head><meta property="og:description" content="Family practice founded by Dr Lee"></head><body></body></html>`
	page := prospectquery.BuildPage("https://x.example", markup, false)
	assert.Equal(t, "Family practice founded by Dr Lee", page.Summary)
}
