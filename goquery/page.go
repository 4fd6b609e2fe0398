// Package goquery provides HTML analysis for the contact discovery engine:
// projecting fetched markup into the forms the extractors consume and
// classifying whether static markup needs a script-executing fetch.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/prospect"
	"golang.org/x/net/html"
)

// nonContentTags hold no visible text.
var nonContentTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"svg":      true,
	"iframe":   true,
	"head":     true,
}

// BuildPage projects raw markup into a prospect.Page: visible text with
// scripts and styles stripped, the meta description, and the document title.
func BuildPage(url, markup string, rendered bool) *prospect.Page {
	page := &prospect.Page{
		URL:      url,
		HTML:     markup,
		Rendered: rendered,
	}
	page.VisibleText = VisibleText(markup)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return page
	}
	page.Summary = metaDescription(doc)
	page.Title = strings.TrimSpace(doc.Find("title").First().Text())
	return page
}

// VisibleText strips markup down to the text a visitor would see. It uses a
// tokenizer rather than a full DOM because the classifier calls it on every
// fetched page and only needs flat text.
func VisibleText(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))

	var b strings.Builder
	skipDepth := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			name, _ := z.TagName()
			if nonContentTags[string(name)] {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if nonContentTags[string(name)] && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(z.Text())
				b.WriteByte(' ')
			}
		}
	}
}

func metaDescription(doc *goquery.Document) string {
	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		if s := strings.TrimSpace(desc); s != "" {
			return s
		}
	}
	if desc, ok := doc.Find(`meta[property="og:description"]`).First().Attr("content"); ok {
		return strings.TrimSpace(desc)
	}
	return ""
}
