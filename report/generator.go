package report

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/akrin/seo-analyzer/seoutils"
	"github.com/akrin/seo-analyzer/seranking"
	"github.com/akrin/seo-analyzer/siteconfig"
)

// TechnicalChecker reports the state of the site-wide technical SEO elements.
// The default assumes everything verified at deploy time; a live checker can
// probe the actual endpoints instead.
type TechnicalChecker interface {
	Check(ctx context.Context, baseURL string) TechnicalStatus
}

// StaticChecker returns a fixed status.
type StaticChecker struct {
	Status TechnicalStatus
}

func (c StaticChecker) Check(ctx context.Context, baseURL string) TechnicalStatus {
	return c.Status
}

// DefaultChecker reports every element as implemented, matching the state the
// site shipped with.
func DefaultChecker() TechnicalChecker {
	return StaticChecker{Status: TechnicalStatus{
		SitemapStatus:             StatusWorking,
		RobotsTxtStatus:           StatusWorking,
		MetaTagsImplemented:       true,
		StructuredDataImplemented: true,
		CanonicalURLsImplemented:  true,
		OpenGraphImplemented:      true,
		TwitterCardsImplemented:   true,
	}}
}

const defaultWorkers = 4

// Generator produces reports for one site configuration. Safe for concurrent
// use: it holds no mutable state across Generate calls.
type Generator struct {
	cfg     *siteconfig.SiteConfig
	client  seranking.Client
	checker TechnicalChecker
	workers int
}

// NewGenerator builds a report generator. A nil checker selects the default
// all-implemented status.
func NewGenerator(cfg *siteconfig.SiteConfig, client seranking.Client, checker TechnicalChecker) *Generator {
	if checker == nil {
		checker = DefaultChecker()
	}
	return &Generator{
		cfg:     cfg,
		client:  client,
		checker: checker,
		workers: defaultWorkers,
	}
}

// Options controls one report run.
type Options struct {
	IncludeDomainAnalysis bool
	BaseURL               string
	Domain                string
}

// Generate runs the full batch: every registry page, every supplied post,
// optional domain enrichment, recommendations and the action plan. It never
// fails; sub-failures degrade to partial data.
func (g *Generator) Generate(ctx context.Context, posts []BlogPost, opts Options) *Report {
	if opts.BaseURL == "" {
		opts.BaseURL = g.cfg.BaseURL
	}
	if opts.Domain == "" {
		opts.Domain = "akrin.jp"
	}

	log.Println("[report] generating SEO report")

	website := g.analyzeWebsitePages(ctx)
	blog := g.analyzeBlogPosts(ctx, posts, opts.BaseURL)

	var domainAnalysis *seranking.DomainAnalysis
	if opts.IncludeDomainAnalysis {
		analysis := g.client.GetDomainAnalysis(ctx, opts.Domain, "jp")
		if analysis.Domain != "" {
			domainAnalysis = &analysis
		}
	}

	technical := g.checker.Check(ctx, opts.BaseURL)
	recommendations := buildRecommendations(website, blog, technical)

	return &Report{
		ID:              uuid.NewString(),
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
		Summary:         buildSummary(website, blog, technical, domainAnalysis),
		DomainAnalysis:  domainAnalysis,
		WebsiteAnalysis: website,
		BlogAnalysis:    blog,
		TechnicalSEO:    technical,
		Recommendations: recommendations,
		ActionPlan:      buildActionPlan(recommendations),
	}
}

// analyzeWebsitePages scores every registry page. Pages are independent, so
// they fan out over a bounded worker set; results land in a slice by index to
// keep report ordering deterministic.
func (g *Generator) analyzeWebsitePages(ctx context.Context) WebsiteAnalysis {
	pages := g.cfg.Pages
	analyzed := make([]PageAnalysis, len(pages))

	var wg sync.WaitGroup
	sem := make(chan struct{}, g.workers)
	for i := range pages {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			page := pages[i]
			perf := g.cfg.AnalyzePagePerformance(page.Path)
			analyzed[i] = PageAnalysis{
				Path:            page.Path,
				Title:           page.Title,
				Type:            page.Type,
				Score:           perf.Score,
				Issues:          perf.Issues,
				Recommendations: perf.Recommendations,
				Priority:        pagePriority(perf.Score, page.Priority),
			}
		}(i)
	}
	wg.Wait()

	frequency := newIssueTable()
	for _, page := range analyzed {
		for _, issue := range page.Issues {
			frequency.add(issue, issue, seoutils.SeverityWarning, page.Path)
		}
	}

	return WebsiteAnalysis{
		TotalPages:            len(pages),
		AverageScore:          averagePageScore(analyzed),
		PagesAnalyzed:         analyzed,
		CommonIssues:          frequency.top(10),
		BestPerformingPages:   pageTitles(analyzed, func(p PageAnalysis) bool { return p.Score >= 90 }),
		PagesNeedingAttention: pageTitles(analyzed, func(p PageAnalysis) bool { return p.Priority == PriorityHigh }),
	}
}

func pagePriority(score int, weight float64) string {
	switch {
	case score < 60 || weight >= 0.9:
		return PriorityHigh
	case score < 80 || weight >= 0.7:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

func averagePageScore(pages []PageAnalysis) int {
	if len(pages) == 0 {
		return 0
	}
	sum := 0
	for _, p := range pages {
		sum += p.Score
	}
	return int(math.Round(float64(sum) / float64(len(pages))))
}

func pageTitles(pages []PageAnalysis, keep func(PageAnalysis) bool) []string {
	titles := []string{}
	for _, p := range pages {
		if keep(p) {
			titles = append(titles, p.Title)
		}
	}
	return titles
}

// analyzeBlogPosts runs the content analyzer over every post with the same
// bounded fan-out as the page pass.
func (g *Generator) analyzeBlogPosts(ctx context.Context, posts []BlogPost, baseURL string) BlogAnalysis {
	analyzed := make([]BlogPostAnalysis, len(posts))

	var wg sync.WaitGroup
	sem := make(chan struct{}, g.workers)
	for i := range posts {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			post := posts[i]
			analysis := seoutils.AnalyzeBlogPost(post.Title, post.Content, post.Slug, post.Category, post.Tags, baseURL, post.MetaDescription)
			analyzed[i] = BlogPostAnalysis{
				Slug:     post.Slug,
				Title:    post.Title,
				Score:    analysis.Score,
				Analysis: analysis,
				Priority: postPriority(analysis),
			}
		}(i)
	}
	wg.Wait()

	frequency := newIssueTable()
	for _, post := range analyzed {
		for _, issue := range post.Analysis.Issues {
			frequency.add(issue.Category+"-"+issue.Message, issue.Message, issue.Severity, post.Slug)
		}
	}

	avg := 0
	if len(analyzed) > 0 {
		sum := 0
		for _, p := range analyzed {
			sum += p.Score
		}
		avg = int(math.Round(float64(sum) / float64(len(analyzed))))
	}

	best := []string{}
	attention := []string{}
	for _, p := range analyzed {
		if p.Score >= 90 {
			best = append(best, p.Title)
		}
		if p.Priority == PriorityHigh {
			attention = append(attention, p.Title)
		}
	}

	return BlogAnalysis{
		TotalPosts:            len(posts),
		AverageScore:          avg,
		PostsAnalyzed:         analyzed,
		CommonIssues:          frequency.top(10),
		BestPerformingPosts:   best,
		PostsNeedingAttention: attention,
	}
}

func postPriority(analysis seoutils.Analysis) string {
	errors := 0
	for _, issue := range analysis.Issues {
		if issue.Severity == seoutils.SeverityError {
			errors++
		}
	}
	switch {
	case analysis.Score < 60 || errors > 2:
		return PriorityHigh
	case analysis.Score < 80 || errors > 0:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// issueTable accumulates issue frequencies while remembering first-seen order
// so equal frequencies rank deterministically.
type issueTable struct {
	entries map[string]*IssueFrequency
	order   []string
}

func newIssueTable() *issueTable {
	return &issueTable{entries: make(map[string]*IssueFrequency)}
}

func (t *issueTable) add(key, issue, severity, affected string) {
	if existing, ok := t.entries[key]; ok {
		existing.Frequency++
		existing.AffectedPosts = append(existing.AffectedPosts, affected)
		return
	}
	t.entries[key] = &IssueFrequency{
		Issue:         issue,
		Frequency:     1,
		Severity:      severity,
		AffectedPosts: []string{affected},
	}
	t.order = append(t.order, key)
}

func (t *issueTable) top(limit int) []IssueFrequency {
	out := make([]IssueFrequency, 0, len(t.order))
	for _, key := range t.order {
		out = append(out, *t.entries[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Frequency > out[j].Frequency
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func buildRecommendations(website WebsiteAnalysis, blog BlogAnalysis, technical TechnicalStatus) []Recommendation {
	var recommendations []Recommendation

	if website.AverageScore < 85 {
		recommendations = append(recommendations, Recommendation{
			Priority:    PriorityHigh,
			Category:    "content",
			Title:       "Improve Overall Website SEO Performance",
			Description: fmt.Sprintf("Website average SEO score is %d%%. Focus on optimizing page titles, meta descriptions, and content structure across all pages.", website.AverageScore),
			Impact:      "High - Better search rankings across entire website",
			Effort:      EffortMedium,
			Implementation: []string{
				"Review and optimize all page titles (30-60 characters)",
				"Write compelling meta descriptions for all pages (120-160 characters)",
				"Ensure consistent keyword usage across related pages",
				"Improve internal linking structure between pages",
			},
		})
	}

	if len(website.PagesNeedingAttention) > 0 {
		recommendations = append(recommendations, Recommendation{
			Priority:    PriorityHigh,
			Category:    "content",
			Title:       "Fix High-Priority Page Issues",
			Description: fmt.Sprintf("%d pages need immediate attention: %s", len(website.PagesNeedingAttention), strings.Join(website.PagesNeedingAttention, ", ")),
			Impact:      "High - Critical pages affecting overall site performance",
			Effort:      EffortMedium,
			Implementation: []string{
				"Prioritize optimization of homepage and main service pages",
				"Fix technical SEO issues on high-traffic pages",
				"Improve content quality on underperforming pages",
				"Add missing structured data to important pages",
			},
		})
	}

	if blog.AverageScore < 80 {
		recommendations = append(recommendations, Recommendation{
			Priority:    PriorityHigh,
			Category:    "content",
			Title:       "Improve Blog Post SEO Scores",
			Description: fmt.Sprintf("Average blog post SEO score is %d%%. Focus on optimizing titles, meta descriptions, and content structure.", blog.AverageScore),
			Impact:      "High - Better search rankings and click-through rates",
			Effort:      EffortMedium,
			Implementation: []string{
				"Review and optimize blog post titles (30-60 characters)",
				"Write compelling meta descriptions (120-160 characters)",
				"Improve heading structure (H1, H2, H3 hierarchy)",
				"Add relevant internal links between blog posts",
			},
		})
	}

	if technical.SitemapStatus != StatusWorking {
		recommendations = append(recommendations, Recommendation{
			Priority:    PriorityHigh,
			Category:    "technical",
			Title:       "Fix XML Sitemap",
			Description: "XML sitemap is not working properly, which affects search engine indexing.",
			Impact:      "High - Essential for search engine discovery",
			Effort:      EffortLow,
			Implementation: []string{
				"Ensure sitemap.xml is accessible",
				"Submit sitemap to Google Search Console",
				"Update sitemap when new content is published",
			},
		})
	}

	recommendations = append(recommendations, Recommendation{
		Priority:    PriorityMedium,
		Category:    "performance",
		Title:       "Optimize Page Loading Speed",
		Description: "Fast loading pages improve user experience and search rankings.",
		Impact:      "Medium - Better user experience and SEO",
		Effort:      EffortMedium,
		Implementation: []string{
			"Optimize images with proper compression",
			"Implement lazy loading for images",
			"Minimize CSS and JavaScript files",
			"Use CDN for static assets",
		},
	})

	if hasTitleIssue(blog.CommonIssues) {
		recommendations = append(recommendations, Recommendation{
			Priority:    PriorityHigh,
			Category:    "metadata",
			Title:       "Optimize Title Tags",
			Description: "Many blog posts have title tag issues that affect search visibility.",
			Impact:      "High - Directly affects search rankings",
			Effort:      EffortLow,
			Implementation: []string{
				"Ensure all titles are 30-60 characters",
				"Include target keywords in titles",
				"Make titles compelling and click-worthy",
				"Avoid duplicate titles across pages",
			},
		})
	}

	// Stable sort: ties keep the rule order above, which the action-plan
	// bucketing depends on.
	stableSortByPriority(recommendations)
	return recommendations
}

func stableSortByPriority(recommendations []Recommendation) {
	sort.SliceStable(recommendations, func(i, j int) bool {
		return priorityRank(recommendations[i].Priority) > priorityRank(recommendations[j].Priority)
	})
}

func hasTitleIssue(issues []IssueFrequency) bool {
	for _, issue := range issues {
		if strings.Contains(strings.ToLower(issue.Issue), "title") {
			return true
		}
	}
	return false
}

func priorityRank(priority string) int {
	switch priority {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}

func buildActionPlan(recommendations []Recommendation) ActionPlan {
	plan := ActionPlan{
		Immediate: []string{},
		ShortTerm: []string{},
		LongTerm:  []string{},
		Ongoing: []string{
			"Monitor SEO performance with regular audits",
			"Create new optimized blog content regularly",
			"Update existing content based on performance data",
			"Track keyword rankings and adjust strategy",
		},
	}

	for _, rec := range recommendations {
		switch {
		case rec.Priority == PriorityHigh && rec.Effort == EffortLow:
			plan.Immediate = append(plan.Immediate, rec.Title)
		case rec.Priority == PriorityHigh && rec.Effort == EffortMedium:
			plan.ShortTerm = append(plan.ShortTerm, rec.Title)
		}
		if rec.Effort == EffortHigh {
			plan.LongTerm = append(plan.LongTerm, rec.Title)
		}
	}
	return plan
}

func buildSummary(website WebsiteAnalysis, blog BlogAnalysis, technical TechnicalStatus, domainAnalysis *seranking.DomainAnalysis) Summary {
	totalIssues := 0
	for _, page := range website.PagesAnalyzed {
		totalIssues += len(page.Issues)
	}
	for _, post := range blog.PostsAnalyzed {
		totalIssues += len(post.Analysis.Issues)
	}

	criticalIssues := 0
	for _, post := range blog.PostsAnalyzed {
		for _, issue := range post.Analysis.Issues {
			if issue.Severity == seoutils.SeverityError {
				criticalIssues++
			}
		}
	}
	for _, page := range website.PagesAnalyzed {
		if page.Score < 60 {
			criticalIssues++
		}
	}

	// Website pages weigh more than blog posts.
	overall := float64(website.AverageScore)*0.6 + float64(blog.AverageScore)*0.4
	if technical.SitemapStatus == StatusWorking {
		overall += 5
	}
	if technical.RobotsTxtStatus == StatusWorking {
		overall += 5
	}
	if technical.MetaTagsImplemented {
		overall += 5
	}
	if technical.StructuredDataImplemented {
		overall += 5
	}
	overall = math.Min(100, overall)

	potential := "High"
	switch {
	case overall >= 90:
		potential = "Low"
	case overall >= 70:
		potential = "Medium"
	}

	technicalState := "needs improvement"
	if technical.MetaTagsImplemented {
		technicalState = "excellent"
	}

	domainFinding := "Domain analysis not available"
	if domainAnalysis != nil {
		domainFinding = fmt.Sprintf("Domain has %d backlinks from %d domains", domainAnalysis.Backlinks, domainAnalysis.ReferringDomains)
	}

	return Summary{
		OverallScore:         int(math.Round(overall)),
		TotalIssues:          totalIssues,
		CriticalIssues:       criticalIssues,
		ImprovementPotential: potential,
		KeyFindings: []string{
			fmt.Sprintf("%d website pages analyzed with average SEO score of %d%%", website.TotalPages, website.AverageScore),
			fmt.Sprintf("%d blog posts analyzed with average SEO score of %d%%", blog.TotalPosts, blog.AverageScore),
			fmt.Sprintf("%d critical SEO issues found across website and blog", criticalIssues),
			fmt.Sprintf("%d high-priority pages need immediate attention", len(website.PagesNeedingAttention)),
			fmt.Sprintf("Technical SEO implementation is %s", technicalState),
			domainFinding,
		},
	}
}
