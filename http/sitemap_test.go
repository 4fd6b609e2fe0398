package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	prospecthttp "github.com/fwojciec/prospect/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapService_ContactURLs(t *testing.T) {
	t.Parallel()

	t.Run("returns contact-style URLs from sitemap.xml", func(t *testing.T) {
		t.Parallel()

		var server *httptest.Server
		mux := http.NewServeMux()
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>%[1]s/</loc></url>
  <url><loc>%[1]s/meet-the-team</loc></url>
  <url><loc>%[1]s/services/whitening</loc></url>
  <url><loc>%[1]s/about-us</loc></url>
</urlset>`, server.URL)
		})
		server = httptest.NewServer(mux)
		defer server.Close()

		svc := prospecthttp.NewSitemapService(server.Client())
		urls, err := svc.ContactURLs(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, []string{server.URL + "/meet-the-team", server.URL + "/about-us"}, urls)
	})

	t.Run("prefers sitemaps declared in robots.txt", func(t *testing.T) {
		t.Parallel()

		var server *httptest.Server
		mux := http.NewServeMux()
		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "User-agent: *\nSitemap: %s/custom-sitemap.xml\n", server.URL)
		})
		mux.HandleFunc("/custom-sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<urlset><url><loc>%s/our-staff</loc></url></urlset>`, server.URL)
		})
		server = httptest.NewServer(mux)
		defer server.Close()

		svc := prospecthttp.NewSitemapService(server.Client())
		urls, err := svc.ContactURLs(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, []string{server.URL + "/our-staff"}, urls)
	})

	t.Run("follows a sitemap index one level deep", func(t *testing.T) {
		t.Parallel()

		var server *httptest.Server
		mux := http.NewServeMux()
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<sitemapindex><sitemap><loc>%s/pages.xml</loc></sitemap></sitemapindex>`, server.URL)
		})
		mux.HandleFunc("/pages.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<urlset><url><loc>%s/contact</loc></url></urlset>`, server.URL)
		})
		server = httptest.NewServer(mux)
		defer server.Close()

		svc := prospecthttp.NewSitemapService(server.Client())
		urls, err := svc.ContactURLs(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, []string{server.URL + "/contact"}, urls)
	})

	t.Run("returns empty slice when no sitemap exists", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(http.NotFound))
		defer server.Close()

		svc := prospecthttp.NewSitemapService(server.Client())
		urls, err := svc.ContactURLs(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Empty(t, urls)
	})

	t.Run("bounds the number of returned URLs", func(t *testing.T) {
		t.Parallel()

		var server *httptest.Server
		mux := http.NewServeMux()
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<urlset>`)
			for i := 0; i < 20; i++ {
				fmt.Fprintf(w, `<url><loc>%s/about/page-%d</loc></url>`, server.URL, i)
			}
			fmt.Fprint(w, `</urlset>`)
		})
		server = httptest.NewServer(mux)
		defer server.Close()

		svc := prospecthttp.NewSitemapService(server.Client())
		urls, err := svc.ContactURLs(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Len(t, urls, 5)
	})
}
