// Package analyzer fetches live pages and turns them into content inputs for
// the optimizer. Fetched pages are cached briefly so repeated analyses of the
// same URL don't hammer the target site.
package analyzer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	defaultCacheTTL   = 5 * time.Minute
	defaultMaxEntries = 100
	maxBodySize       = 5 << 20 // 5 MiB
)

type cacheEntry struct {
	page      *Page
	timestamp time.Time
}

// Fetcher retrieves and parses live pages. Safe for concurrent use.
type Fetcher struct {
	client     *http.Client
	cache      map[string]cacheEntry
	cacheMutex sync.RWMutex
	cacheTTL   time.Duration
	maxEntries int
}

// NewFetcher creates a page fetcher with connection pooling and keep-alive.
func NewFetcher() *Fetcher {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &Fetcher{
		client: &http.Client{
			Timeout:   15 * time.Second,
			Transport: transport,
		},
		cache:      make(map[string]cacheEntry),
		cacheTTL:   defaultCacheTTL,
		maxEntries: defaultMaxEntries,
	}
}

// FetchPage retrieves a URL and extracts the parts the optimizer needs.
// Cached results are served until their TTL expires.
func (f *Fetcher) FetchPage(ctx context.Context, pageURL string) (*Page, error) {
	if page := f.cached(pageURL); page != nil {
		return page, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "akrin-seo-analyzer/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}

	page := extractPage(pageURL, doc)
	f.store(pageURL, page)
	return page, nil
}

func (f *Fetcher) cached(pageURL string) *Page {
	f.cacheMutex.RLock()
	defer f.cacheMutex.RUnlock()

	entry, ok := f.cache[pageURL]
	if !ok || time.Since(entry.timestamp) > f.cacheTTL {
		return nil
	}
	return entry.page
}

func (f *Fetcher) store(pageURL string, page *Page) {
	f.cacheMutex.Lock()
	defer f.cacheMutex.Unlock()

	// Drop expired entries when the cache is full; if nothing expired,
	// skip caching rather than evicting live entries.
	if len(f.cache) >= f.maxEntries {
		for key, entry := range f.cache {
			if time.Since(entry.timestamp) > f.cacheTTL {
				delete(f.cache, key)
			}
		}
		if len(f.cache) >= f.maxEntries {
			return
		}
	}

	f.cache[pageURL] = cacheEntry{page: page, timestamp: time.Now()}
}

func extractPage(pageURL string, doc *goquery.Document) *Page {
	page := &Page{URL: pageURL}

	page.Title = strings.TrimSpace(doc.Find("title").First().Text())
	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		page.MetaDescription = strings.TrimSpace(desc)
	}
	if canonical, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok {
		page.CanonicalURL = canonical
	}

	body := doc.Find("body")
	if html, err := body.Html(); err == nil {
		page.Content = html
	}
	page.Headline = strings.TrimSpace(body.Find("h1").First().Text())

	return page
}
