package analyzer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
<title>Managed IT Services | AKRIN</title>
<meta name="description" content="Proactive monitoring and unlimited helpdesk support for businesses in Japan.">
<link rel="canonical" href="https://akrin.jp/services/it-managed-services">
</head>
<body>
<h1>Managed IT Services</h1>
<p>We keep your infrastructure running.</p>
</body>
</html>`

func TestFetchPage(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(samplePage))
	}))
	defer server.Close()

	fetcher := NewFetcher()

	page, err := fetcher.FetchPage(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}

	if page.Title != "Managed IT Services | AKRIN" {
		t.Errorf("Unexpected title: %q", page.Title)
	}
	if page.Headline != "Managed IT Services" {
		t.Errorf("Unexpected headline: %q", page.Headline)
	}
	if page.MetaDescription != "Proactive monitoring and unlimited helpdesk support for businesses in Japan." {
		t.Errorf("Unexpected meta description: %q", page.MetaDescription)
	}
	if page.CanonicalURL != "https://akrin.jp/services/it-managed-services" {
		t.Errorf("Unexpected canonical URL: %q", page.CanonicalURL)
	}

	t.Run("CacheHit", func(t *testing.T) {
		if _, err := fetcher.FetchPage(context.Background(), server.URL); err != nil {
			t.Fatalf("Second fetch failed: %v", err)
		}
		if atomic.LoadInt32(&hits) != 1 {
			t.Errorf("Expected 1 upstream hit, got %d", hits)
		}
	})
}

func TestFetchPageErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewFetcher()

	if _, err := fetcher.FetchPage(context.Background(), server.URL); err == nil {
		t.Error("Expected error for 404 response")
	}
	if _, err := fetcher.FetchPage(context.Background(), "http://127.0.0.1:1"); err == nil {
		t.Error("Expected error for unreachable host")
	}
}

func TestContentInput(t *testing.T) {
	page := &Page{
		URL:             "https://akrin.jp/about",
		Title:           "About AKRIN",
		Headline:        "Your Trusted IT Partner",
		MetaDescription: "Learn about AKRIN.",
		Content:         "<h1>Your Trusted IT Partner</h1><p>Body.</p>",
	}

	input := page.ContentInput()
	if input.Title != "Your Trusted IT Partner" {
		t.Errorf("Expected headline as title, got %q", input.Title)
	}
	if input.MetaTitle != "About AKRIN" {
		t.Errorf("Expected page title as meta title, got %q", input.MetaTitle)
	}

	page.Headline = ""
	if got := page.ContentInput().Title; got != "About AKRIN" {
		t.Errorf("Expected fallback to page title, got %q", got)
	}
}
