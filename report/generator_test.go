package report

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/akrin/seo-analyzer/seranking"
	"github.com/akrin/seo-analyzer/siteconfig"
)

func testPosts() []BlogPost {
	goodBody := "<h1>Cybersecurity</h1><p>" + strings.Repeat("practical security guidance for growing teams ", 80) + "</p><h2>Next steps</h2>"
	badBody := "<p>too short</p>"

	return []BlogPost{
		{
			Slug:     "cybersecurity-guide",
			Title:    "Cybersecurity Guide for Japanese Companies | AKRIN",
			Content:  goodBody,
			Category: "Security",
			Tags:     []string{"security"},
		},
		{
			Slug:     "thin-post",
			Title:    "Thin",
			Content:  badBody,
			Category: "News",
			Tags:     []string{"news"},
		},
	}
}

func newTestGenerator() *Generator {
	return NewGenerator(siteconfig.Default(), &seranking.NoopClient{}, nil)
}

func TestGenerate(t *testing.T) {
	result := newTestGenerator().Generate(context.Background(), testPosts(), Options{})

	if result.ID == "" {
		t.Error("Expected a report ID")
	}
	if result.GeneratedAt == "" {
		t.Error("Expected a generation timestamp")
	}
	if result.WebsiteAnalysis.TotalPages != 7 {
		t.Errorf("Expected 7 pages, got %d", result.WebsiteAnalysis.TotalPages)
	}
	if result.BlogAnalysis.TotalPosts != 2 {
		t.Errorf("Expected 2 posts, got %d", result.BlogAnalysis.TotalPosts)
	}
	if result.DomainAnalysis != nil {
		t.Error("Domain analysis must be omitted unless requested")
	}
	if result.Summary.OverallScore < 0 || result.Summary.OverallScore > 100 {
		t.Errorf("Overall score out of range: %d", result.Summary.OverallScore)
	}
	if len(result.Summary.KeyFindings) != 6 {
		t.Errorf("Expected 6 key findings, got %d", len(result.Summary.KeyFindings))
	}

	// Page results must come back in registry order despite the concurrent
	// fan-out.
	for i, page := range result.WebsiteAnalysis.PagesAnalyzed {
		if page.Path != siteconfig.Default().Pages[i].Path {
			t.Errorf("Page order broken at %d: %s", i, page.Path)
		}
	}

	// The homepage has priority 1.0, which forces high regardless of score.
	if result.WebsiteAnalysis.PagesAnalyzed[0].Priority != PriorityHigh {
		t.Errorf("Homepage must be high priority, got %s", result.WebsiteAnalysis.PagesAnalyzed[0].Priority)
	}
}

func TestGenerateWithDomainAnalysis(t *testing.T) {
	result := newTestGenerator().Generate(context.Background(), nil, Options{
		IncludeDomainAnalysis: true,
	})

	if result.DomainAnalysis == nil {
		t.Fatal("Expected domain analysis when requested")
	}
	if result.DomainAnalysis.Domain != "akrin.jp" {
		t.Errorf("Unexpected domain: %q", result.DomainAnalysis.Domain)
	}
}

func TestPostPriorityRules(t *testing.T) {
	result := newTestGenerator().Generate(context.Background(), testPosts(), Options{})

	byslug := map[string]BlogPostAnalysis{}
	for _, post := range result.BlogAnalysis.PostsAnalyzed {
		byslug[post.Slug] = post
	}

	thin := byslug["thin-post"]
	if thin.Priority != PriorityHigh && thin.Priority != PriorityMedium {
		t.Errorf("Thin post should need attention, got %s", thin.Priority)
	}
	if thin.Score >= byslug["cybersecurity-guide"].Score {
		t.Error("Thin post must score below the healthy post")
	}
}

func TestRecommendationOrdering(t *testing.T) {
	recs := []Recommendation{
		{Priority: PriorityLow, Title: "low-1"},
		{Priority: PriorityHigh, Title: "high-1"},
		{Priority: PriorityMedium, Title: "medium-1"},
		{Priority: PriorityHigh, Title: "high-2"},
	}

	// Reuse the generator's comparator via a copy of its sort.
	sorted := make([]Recommendation, len(recs))
	copy(sorted, recs)
	stableSortByPriority(sorted)

	want := []string{"high-1", "high-2", "medium-1", "low-1"}
	for i, title := range want {
		if sorted[i].Title != title {
			t.Fatalf("Position %d: expected %s, got %s", i, title, sorted[i].Title)
		}
	}
}

func TestSummaryWeighting(t *testing.T) {
	// websiteAvg=80, blogAvg=90, all four technical flags true:
	// 80*0.6 + 90*0.4 + 20 = 104, clamped to 100.
	website := WebsiteAnalysis{AverageScore: 80}
	blog := BlogAnalysis{AverageScore: 90}
	technical := DefaultChecker().Check(context.Background(), "")

	summary := buildSummary(website, blog, technical, nil)
	if summary.OverallScore != 100 {
		t.Errorf("Expected clamped score 100, got %d", summary.OverallScore)
	}
	if summary.ImprovementPotential != "Low" {
		t.Errorf("Expected Low potential at 100, got %s", summary.ImprovementPotential)
	}
}

func TestSummaryBands(t *testing.T) {
	cases := []struct {
		website int
		blog    int
		want    string
	}{
		{90, 95, "Low"},    // 92 + 20 -> 100
		{60, 60, "Medium"}, // 60 + 20 -> 80
		{30, 30, "High"},   // 30 + 20 -> 50
	}

	for _, tc := range cases {
		summary := buildSummary(
			WebsiteAnalysis{AverageScore: tc.website},
			BlogAnalysis{AverageScore: tc.blog},
			DefaultChecker().Check(context.Background(), ""),
			nil,
		)
		if summary.ImprovementPotential != tc.want {
			t.Errorf("website=%d blog=%d: expected %s, got %s (score %d)",
				tc.website, tc.blog, tc.want, summary.ImprovementPotential, summary.OverallScore)
		}
	}
}

func TestActionPlanBucketing(t *testing.T) {
	recs := []Recommendation{
		{Priority: PriorityHigh, Effort: EffortLow, Title: "quick win"},
		{Priority: PriorityHigh, Effort: EffortMedium, Title: "project"},
		{Priority: PriorityMedium, Effort: EffortHigh, Title: "rebuild"},
	}

	plan := buildActionPlan(recs)
	if len(plan.Immediate) != 1 || plan.Immediate[0] != "quick win" {
		t.Errorf("Unexpected immediate bucket: %v", plan.Immediate)
	}
	if len(plan.ShortTerm) != 1 || plan.ShortTerm[0] != "project" {
		t.Errorf("Unexpected short-term bucket: %v", plan.ShortTerm)
	}
	if len(plan.LongTerm) != 1 || plan.LongTerm[0] != "rebuild" {
		t.Errorf("Unexpected long-term bucket: %v", plan.LongTerm)
	}
	if len(plan.Ongoing) != 4 {
		t.Errorf("Expected fixed 4-item ongoing list, got %d", len(plan.Ongoing))
	}
}

func TestExportJSON(t *testing.T) {
	result := newTestGenerator().Generate(context.Background(), testPosts(), Options{})

	out, err := ExportJSON(result)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var decoded Report
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("Exported JSON does not round-trip: %v", err)
	}
	if decoded.WebsiteAnalysis.TotalPages != result.WebsiteAnalysis.TotalPages {
		t.Error("Round-trip lost page count")
	}
	if _, ok := decodeMap(out)["domainAnalysis"]; ok {
		t.Error("Omitted domain analysis must not appear in JSON")
	}
}

func TestExportMarkdown(t *testing.T) {
	result := newTestGenerator().Generate(context.Background(), testPosts(), Options{})
	md := ExportMarkdown(result)

	headings := []string{
		"# SEO Analysis Report for AKRIN Website",
		"## Executive Summary",
		"## Website Analysis",
		"## Blog Analysis",
		"## Recommendations",
		"## Action Plan",
	}

	lastIndex := -1
	for _, heading := range headings {
		idx := strings.Index(md, heading)
		if idx < 0 {
			t.Fatalf("Missing heading %q", heading)
		}
		if idx < lastIndex {
			t.Fatalf("Heading %q out of order", heading)
		}
		lastIndex = idx
	}

	if !strings.Contains(md, "- **Overall SEO Score**: ") {
		t.Error("Missing overall score bullet")
	}
	if !strings.Contains(md, "### Ongoing Activities") {
		t.Error("Missing ongoing activities section")
	}
}

func TestLoadBlogPosts(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/posts.yaml"

	yaml := `- slug: first-post
  title: First Post
  content: "<h1>First</h1><p>Body.</p>"
  category: News
  tags: [a, b]
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	posts, err := LoadBlogPosts(path)
	if err != nil {
		t.Fatalf("LoadBlogPosts failed: %v", err)
	}
	if len(posts) != 1 || posts[0].Slug != "first-post" {
		t.Errorf("Unexpected posts: %+v", posts)
	}

	if _, err := LoadBlogPosts(dir + "/missing.yaml"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func decodeMap(data string) map[string]interface{} {
	m := map[string]interface{}{}
	json.Unmarshal([]byte(data), &m)
	return m
}
