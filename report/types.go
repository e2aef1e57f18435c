// Package report assembles the full SEO analysis report: every registry page
// scored, every blog post analyzed, optional live domain metrics, prioritized
// recommendations and an action plan. Report generation is a stateless
// single-pass batch; nothing here persists anything.
package report

import (
	"github.com/akrin/seo-analyzer/seoutils"
	"github.com/akrin/seo-analyzer/seranking"
)

// Priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Recommendation efforts.
const (
	EffortLow    = "low"
	EffortMedium = "medium"
	EffortHigh   = "high"
)

// Report is the complete generated report. DomainAnalysis stays nil when the
// enrichment call fails or is not requested.
type Report struct {
	ID              string                    `json:"id"`
	GeneratedAt     string                    `json:"generatedAt"`
	Summary         Summary                   `json:"summary"`
	DomainAnalysis  *seranking.DomainAnalysis `json:"domainAnalysis,omitempty"`
	WebsiteAnalysis WebsiteAnalysis           `json:"websiteAnalysis"`
	BlogAnalysis    BlogAnalysis              `json:"blogAnalysis"`
	TechnicalSEO    TechnicalStatus           `json:"technicalSEO"`
	Recommendations []Recommendation          `json:"recommendations"`
	ActionPlan      ActionPlan                `json:"actionPlan"`
}

// Summary is the executive rollup.
type Summary struct {
	OverallScore         int      `json:"overallScore"`
	TotalIssues          int      `json:"totalIssues"`
	CriticalIssues       int      `json:"criticalIssues"`
	ImprovementPotential string   `json:"improvementPotential"`
	KeyFindings          []string `json:"keyFindings"`
}

// WebsiteAnalysis covers the registry pages.
type WebsiteAnalysis struct {
	TotalPages            int              `json:"totalPages"`
	AverageScore          int              `json:"averageScore"`
	PagesAnalyzed         []PageAnalysis   `json:"pagesAnalyzed"`
	CommonIssues          []IssueFrequency `json:"commonIssues"`
	BestPerformingPages   []string         `json:"bestPerformingPages"`
	PagesNeedingAttention []string         `json:"pagesNeedingAttention"`
}

// PageAnalysis is the scored outcome for one registry page.
type PageAnalysis struct {
	Path            string   `json:"path"`
	Title           string   `json:"title"`
	Type            string   `json:"type"`
	Score           int      `json:"score"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
	Priority        string   `json:"priority"`
}

// BlogAnalysis covers the supplied blog posts.
type BlogAnalysis struct {
	TotalPosts            int                `json:"totalPosts"`
	AverageScore          int                `json:"averageScore"`
	PostsAnalyzed         []BlogPostAnalysis `json:"postsAnalyzed"`
	CommonIssues          []IssueFrequency   `json:"commonIssues"`
	BestPerformingPosts   []string           `json:"bestPerformingPosts"`
	PostsNeedingAttention []string           `json:"postsNeedingAttention"`
}

// BlogPostAnalysis is the scored outcome for one blog post.
type BlogPostAnalysis struct {
	Slug     string            `json:"slug"`
	Title    string            `json:"title"`
	Score    int               `json:"score"`
	Analysis seoutils.Analysis `json:"analysis"`
	Priority string            `json:"priority"`
}

// TechnicalStatus records the state of the site-wide technical SEO elements.
type TechnicalStatus struct {
	SitemapStatus             string `json:"sitemapStatus"`
	RobotsTxtStatus           string `json:"robotsTxtStatus"`
	MetaTagsImplemented       bool   `json:"metaTagsImplemented"`
	StructuredDataImplemented bool   `json:"structuredDataImplemented"`
	CanonicalURLsImplemented  bool   `json:"canonicalUrlsImplemented"`
	OpenGraphImplemented      bool   `json:"openGraphImplemented"`
	TwitterCardsImplemented   bool   `json:"twitterCardsImplemented"`
}

// StatusWorking is the healthy value for sitemap/robots status fields.
const StatusWorking = "working"

// IssueFrequency counts how often one issue appears and which pages or posts
// it affects.
type IssueFrequency struct {
	Issue         string   `json:"issue"`
	Frequency     int      `json:"frequency"`
	Severity      string   `json:"severity"`
	AffectedPosts []string `json:"affectedPosts"`
}

// Recommendation is one prioritized, actionable item.
type Recommendation struct {
	Priority       string   `json:"priority"`
	Category       string   `json:"category"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Impact         string   `json:"impact"`
	Effort         string   `json:"effort"`
	Implementation []string `json:"implementation"`
}

// ActionPlan buckets recommendations by urgency and effort.
type ActionPlan struct {
	Immediate []string `json:"immediate"`
	ShortTerm []string `json:"shortTerm"`
	LongTerm  []string `json:"longTerm"`
	Ongoing   []string `json:"ongoing"`
}
