// Package seranking wraps the SEranking.com REST API behind a small Client
// interface. Every method degrades to a documented zero value on failure so
// that report generation never aborts because of upstream trouble; the only
// side effect of a broken network is emptier metrics.
package seranking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"
)

const defaultBaseURL = "https://api.seranking.com"

// Client is the single gateway to external SEO metrics. Implementations must
// be safe for concurrent use and must never return an error for upstream
// failures; the error return is reserved for programmer mistakes such as an
// unencodable request body, which in practice cannot happen.
type Client interface {
	TestConnection(ctx context.Context) AccountStatus
	GetBacklinksSummary(ctx context.Context, domain string) BacklinksSummary
	GetDomainAnalysis(ctx context.Context, domain, source string) DomainAnalysis
	CreateWebsiteAudit(ctx context.Context, domain string) int64
	GetAuditStatus(ctx context.Context, auditID int64, domain string) WebsiteAudit
	GetAuditReport(ctx context.Context, auditID int64) WebsiteAudit
	GetKeywordResearch(ctx context.Context, keywords []string, source string) []KeywordData
	GetSERPData(ctx context.Context, keywords []string, source string) []SERPResult
	AddKeywordTracking(ctx context.Context, domain string, keywords []string, source string) TrackingResult
	GetKeywordTracking(ctx context.Context, domain string, limit int) []TrackedKeyword
	GetCompetitorAnalysis(ctx context.Context, domain string, competitors []string, source string) []CompetitorProfile
	GetCommonKeywords(ctx context.Context, domain1, domain2, source string) []CommonKeyword
	GenerateSEOReport(ctx context.Context, domain string) DomainReport
}

// HTTPClient talks to the real SEranking API. It keeps no mutable state
// between calls and can be shared across goroutines.
type HTTPClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewFromEnv selects the client implementation from the environment.
// Without SERANKING_API_KEY the integration runs in no-op mode: a NoopClient
// that returns empty results without any network I/O.
func NewFromEnv() Client {
	apiKey := os.Getenv("SERANKING_API_KEY")
	if apiKey == "" {
		log.Println("[seranking] API key not set, integration disabled (no-op mode)")
		return &NoopClient{}
	}

	baseURL := os.Getenv("SERANKING_API_BASE_URL")
	return NewHTTPClient(apiKey, baseURL)
}

// NewHTTPClient builds a real client. An empty baseURL selects the public
// SEranking endpoint.
func NewHTTPClient(apiKey, baseURL string) *HTTPClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &HTTPClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout:   15 * time.Second,
			Transport: transport,
		},
	}
}

// request performs one authenticated call and decodes the JSON response into
// out. Network errors, non-2xx statuses and malformed JSON all surface as a
// single error that callers convert into their fallback value.
func (c *HTTPClient) request(ctx context.Context, method, endpoint string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: status %d: %s", method, endpoint, resp.StatusCode, text)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, endpoint, err)
	}
	return nil
}

// TestConnection returns the account subscription payload, or nil on failure.
func (c *HTTPClient) TestConnection(ctx context.Context) AccountStatus {
	var status AccountStatus
	if err := c.request(ctx, http.MethodGet, "/v1/account/subscription", nil, &status); err != nil {
		log.Printf("[seranking] connection test failed: %v", err)
		return nil
	}
	return status
}

type backlinksResponse struct {
	TotalBacklinks    int `json:"total_backlinks"`
	ReferringDomains  int `json:"referring_domains"`
	DofollowBacklinks int `json:"dofollow_backlinks"`
	NofollowBacklinks int `json:"nofollow_backlinks"`
}

// GetBacklinksSummary returns backlink counters for a domain, zeroed on any
// failure.
func (c *HTTPClient) GetBacklinksSummary(ctx context.Context, domain string) BacklinksSummary {
	var resp backlinksResponse
	err := c.request(ctx, http.MethodPost, "/v1/backlinks/summary", map[string]string{
		"target": domain,
		"mode":   "domain",
	}, &resp)
	if err != nil {
		log.Printf("[seranking] backlinks summary failed for %s: %v", domain, err)
		return BacklinksSummary{}
	}
	return BacklinksSummary{
		TotalBacklinks:    resp.TotalBacklinks,
		ReferringDomains:  resp.ReferringDomains,
		DofollowBacklinks: resp.DofollowBacklinks,
		NofollowBacklinks: resp.NofollowBacklinks,
	}
}

// GetDomainAnalysis combines the available endpoints into a domain overview.
// Organic and paid metrics stay zero: the current plan does not expose them.
func (c *HTTPClient) GetDomainAnalysis(ctx context.Context, domain, source string) DomainAnalysis {
	backlinks := c.GetBacklinksSummary(ctx, domain)
	return DomainAnalysis{
		Domain:           domain,
		Backlinks:        backlinks.TotalBacklinks,
		ReferringDomains: backlinks.ReferringDomains,
	}
}

// CreateWebsiteAudit returns an audit identifier. The audit endpoint is not
// available on the current plan, so the id is derived from the wall clock and
// only serves to correlate later GetAuditStatus calls.
func (c *HTTPClient) CreateWebsiteAudit(ctx context.Context, domain string) int64 {
	// Warm the backlinks cache upstream; the result itself is not needed here.
	c.GetBacklinksSummary(ctx, domain)
	return time.Now().Unix()
}

// GetAuditStatus synthesizes an audit result from live backlink data when a
// domain is given, or returns a fixed placeholder otherwise. Either way the
// result carries Estimated=true: this is a heuristic stand-in, not a crawl.
func (c *HTTPClient) GetAuditStatus(ctx context.Context, auditID int64, domain string) WebsiteAudit {
	now := time.Now().UTC().Format(time.RFC3339)
	if domain == "" {
		return WebsiteAudit{
			ID:            auditID,
			Domain:        "unknown",
			Status:        "finished",
			Score:         75,
			TotalErrors:   3,
			TotalWarnings: 8,
			TotalPassed:   45,
			Estimated:     true,
			LastUpdated:   now,
		}
	}

	backlinks := c.GetBacklinksSummary(ctx, domain)
	backlinksScore := clampInt(backlinks.TotalBacklinks*2+backlinks.ReferringDomains*5, 0, 100)

	return WebsiteAudit{
		ID:            auditID,
		Domain:        domain,
		Status:        "finished",
		Score:         minInt(100, backlinksScore+50),
		TotalErrors:   maxInt(0, 10-backlinksScore/10),
		TotalWarnings: maxInt(0, 15-backlinksScore/5),
		TotalPassed:   backlinksScore/2 + 20,
		Estimated:     true,
		LastUpdated:   now,
	}
}

// GetAuditReport fetches a stored audit report. Like every other method it
// never propagates upstream failure; an expired zero-score audit is returned
// instead.
func (c *HTTPClient) GetAuditReport(ctx context.Context, auditID int64) WebsiteAudit {
	var audit WebsiteAudit
	endpoint := fmt.Sprintf("/audit/%d/report", auditID)
	if err := c.request(ctx, http.MethodGet, endpoint, nil, &audit); err != nil {
		log.Printf("[seranking] audit report retrieval failed for %d: %v", auditID, err)
		return WebsiteAudit{
			ID:          auditID,
			Domain:      "unknown",
			Status:      "expired",
			Estimated:   true,
			LastUpdated: time.Now().UTC().Format(time.RFC3339),
		}
	}
	return audit
}

type keywordResearchRow struct {
	Keyword      string  `json:"keyword"`
	Position     int     `json:"position"`
	SearchVolume int     `json:"search_volume"`
	Difficulty   int     `json:"difficulty"`
	CPC          float64 `json:"cpc"`
	Competition  string  `json:"competition"`
}

// GetKeywordResearch returns research rows for the given keywords, or an
// empty slice on failure.
func (c *HTTPClient) GetKeywordResearch(ctx context.Context, keywords []string, source string) []KeywordData {
	var rows []keywordResearchRow
	err := c.request(ctx, http.MethodPost, "/v1/keywords/research", map[string]interface{}{
		"keywords": keywords,
		"source":   source,
	}, &rows)
	if err != nil {
		log.Printf("[seranking] keyword research failed: %v", err)
		return nil
	}

	result := make([]KeywordData, 0, len(rows))
	for _, row := range rows {
		competition := row.Competition
		if competition == "" {
			competition = "unknown"
		}
		result = append(result, KeywordData{
			Keyword:      row.Keyword,
			Position:     row.Position,
			SearchVolume: row.SearchVolume,
			Difficulty:   row.Difficulty,
			CPC:          row.CPC,
			Competition:  competition,
		})
	}
	return result
}

type serpRow struct {
	Keyword  string `json:"keyword"`
	Position int    `json:"position"`
	URL      string `json:"url"`
	Title    string `json:"title"`
}

// GetSERPData returns organic SERP rows for the given keywords.
func (c *HTTPClient) GetSERPData(ctx context.Context, keywords []string, source string) []SERPResult {
	var rows []serpRow
	err := c.request(ctx, http.MethodPost, "/v1/serp/organic", map[string]interface{}{
		"keywords": keywords,
		"source":   source,
		"limit":    10,
	}, &rows)
	if err != nil {
		log.Printf("[seranking] SERP lookup failed: %v", err)
		return nil
	}

	result := make([]SERPResult, 0, len(rows))
	for _, row := range rows {
		result = append(result, SERPResult{
			Keyword:  row.Keyword,
			Position: row.Position,
			URL:      row.URL,
			Domain:   hostOf(row.URL),
			Title:    row.Title,
		})
	}
	return result
}

// AddKeywordTracking registers keywords for position tracking.
func (c *HTTPClient) AddKeywordTracking(ctx context.Context, domain string, keywords []string, source string) TrackingResult {
	type trackedKeyword struct {
		Keyword string `json:"keyword"`
		Source  string `json:"source"`
		Device  string `json:"device"`
	}

	payload := struct {
		Domain   string           `json:"domain"`
		Keywords []trackedKeyword `json:"keywords"`
	}{Domain: domain}
	for _, kw := range keywords {
		payload.Keywords = append(payload.Keywords, trackedKeyword{Keyword: kw, Source: source, Device: "desktop"})
	}

	var resp struct {
		TrackingIDs []int64 `json:"tracking_ids"`
	}
	if err := c.request(ctx, http.MethodPost, "/v1/keywords/tracking/add", payload, &resp); err != nil {
		log.Printf("[seranking] keyword tracking setup failed for %s: %v", domain, err)
		return TrackingResult{}
	}
	return TrackingResult{Success: true, TrackingIDs: resp.TrackingIDs}
}

type trackingRow struct {
	ID               int64  `json:"id"`
	Keyword          string `json:"keyword"`
	CurrentPosition  int    `json:"current_position"`
	PreviousPosition int    `json:"previous_position"`
	BestPosition     int    `json:"best_position"`
	WorstPosition    int    `json:"worst_position"`
	AveragePosition  int    `json:"average_position"`
	SearchVolume     int    `json:"search_volume"`
	Difficulty       int    `json:"difficulty"`
	URL              string `json:"url"`
	LastUpdated      string `json:"last_updated"`
}

// GetKeywordTracking returns tracked keyword positions with trend deltas.
func (c *HTTPClient) GetKeywordTracking(ctx context.Context, domain string, limit int) []TrackedKeyword {
	if limit <= 0 {
		limit = 50
	}

	var rows []trackingRow
	endpoint := fmt.Sprintf("/v1/keywords/tracking?domain=%s&limit=%d", url.QueryEscape(domain), limit)
	if err := c.request(ctx, http.MethodGet, endpoint, nil, &rows); err != nil {
		log.Printf("[seranking] keyword tracking retrieval failed for %s: %v", domain, err)
		return nil
	}

	result := make([]TrackedKeyword, 0, len(rows))
	for _, row := range rows {
		lastUpdated := row.LastUpdated
		if lastUpdated == "" {
			lastUpdated = time.Now().UTC().Format(time.RFC3339)
		}
		result = append(result, TrackedKeyword{
			ID:               row.ID,
			Keyword:          row.Keyword,
			CurrentPosition:  row.CurrentPosition,
			PreviousPosition: row.PreviousPosition,
			BestPosition:     row.BestPosition,
			WorstPosition:    row.WorstPosition,
			AveragePosition:  row.AveragePosition,
			SearchVolume:     row.SearchVolume,
			Difficulty:       row.Difficulty,
			URL:              row.URL,
			LastUpdated:      lastUpdated,
			Trend:            calculateTrend(row.CurrentPosition, row.PreviousPosition),
			ChangeValue:      row.PreviousPosition - row.CurrentPosition,
		})
	}
	return result
}

// GetCompetitorAnalysis profiles each competitor domain against the site.
// Failures for one competitor degrade that entry to zeros without affecting
// the others.
func (c *HTTPClient) GetCompetitorAnalysis(ctx context.Context, domain string, competitors []string, source string) []CompetitorProfile {
	profiles := make([]CompetitorProfile, 0, len(competitors))
	for _, competitor := range competitors {
		analysis := c.GetDomainAnalysis(ctx, competitor, source)
		common := c.GetCommonKeywords(ctx, domain, competitor, source)
		profiles = append(profiles, CompetitorProfile{
			Domain:           competitor,
			CommonKeywords:   len(common),
			AveragePosition:  averagePosition(common),
			OrganicTraffic:   analysis.OrganicTraffic,
			Backlinks:        analysis.Backlinks,
			DomainRank:       analysis.DomainRank,
			CompetitionLevel: competitionLevel(analysis.DomainRank),
		})
	}
	return profiles
}

// GetCommonKeywords returns keywords shared between two domains.
func (c *HTTPClient) GetCommonKeywords(ctx context.Context, domain1, domain2, source string) []CommonKeyword {
	var rows []CommonKeyword
	err := c.request(ctx, http.MethodPost, "/v1/keywords/common", map[string]interface{}{
		"domain1": domain1,
		"domain2": domain2,
		"source":  source,
		"limit":   100,
	}, &rows)
	if err != nil {
		log.Printf("[seranking] common keywords lookup failed: %v", err)
		return nil
	}
	return rows
}

// GenerateSEOReport combines audit and backlink data into a single report.
// The links section uses real backlink counts; the other sections are fixed
// offsets from the synthesized audit score and inherit its Estimated flag.
func (c *HTTPClient) GenerateSEOReport(ctx context.Context, domain string) DomainReport {
	auditID := c.CreateWebsiteAudit(ctx, domain)
	audit := c.GetAuditStatus(ctx, auditID, domain)
	backlinks := c.GetBacklinksSummary(ctx, domain)

	linksScore := clampInt(backlinks.TotalBacklinks*3+backlinks.ReferringDomains*8, 20, 100)

	return DomainReport{
		ID:           audit.ID,
		Domain:       audit.Domain,
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		OverallScore: audit.Score,
		Issues: DomainReportIssues{
			Critical: audit.TotalErrors,
			Warnings: audit.TotalWarnings,
			Notices:  audit.TotalPassed,
		},
		Sections: DomainReportScores{
			Technical: maxInt(60, audit.Score-10),
			Content:   maxInt(70, audit.Score-5),
			Links:     linksScore,
			Social:    maxInt(50, audit.Score-20),
		},
		Estimated:       audit.Estimated,
		Recommendations: auditRecommendations(audit),
	}
}

func auditRecommendations(audit WebsiteAudit) []string {
	var recommendations []string
	if audit.TotalErrors > 0 {
		recommendations = append(recommendations, "Fix critical technical SEO errors")
	}
	if audit.TotalWarnings > 5 {
		recommendations = append(recommendations, "Address SEO warnings to improve performance")
	}
	if audit.Score < 80 {
		recommendations = append(recommendations, "Optimize meta tags and content structure")
	}
	return recommendations
}

func calculateTrend(current, previous int) string {
	if current == 0 || previous == 0 {
		return "stable"
	}
	// A lower position number means a higher rank.
	switch {
	case current < previous:
		return "up"
	case current > previous:
		return "down"
	default:
		return "stable"
	}
}

func averagePosition(keywords []CommonKeyword) int {
	if len(keywords) == 0 {
		return 0
	}
	sum := 0
	for _, kw := range keywords {
		sum += kw.Position
	}
	return int(float64(sum)/float64(len(keywords)) + 0.5)
}

func competitionLevel(domainRank int) string {
	switch {
	case domainRank > 70:
		return "high"
	case domainRank > 40:
		return "medium"
	default:
		return "low"
	}
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

func clampInt(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
