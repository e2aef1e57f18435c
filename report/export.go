package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ExportJSON serializes the report with two-space indentation.
func ExportJSON(r *Report) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	return string(data), nil
}

// ExportMarkdown renders the fixed Markdown layout. Consumers parse this
// document, so section order and heading text must not change.
func ExportMarkdown(r *Report) string {
	var b strings.Builder

	generated := r.GeneratedAt
	if t, err := time.Parse(time.RFC3339, r.GeneratedAt); err == nil {
		generated = t.Format("1/2/2006, 3:04:05 PM")
	}

	fmt.Fprintf(&b, "# SEO Analysis Report for AKRIN Website\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", generated)

	fmt.Fprintf(&b, "## Executive Summary\n\n")
	fmt.Fprintf(&b, "- **Overall SEO Score**: %d%%\n", r.Summary.OverallScore)
	fmt.Fprintf(&b, "- **Total Issues Found**: %d\n", r.Summary.TotalIssues)
	fmt.Fprintf(&b, "- **Critical Issues**: %d\n", r.Summary.CriticalIssues)
	fmt.Fprintf(&b, "- **Improvement Potential**: %s\n\n", r.Summary.ImprovementPotential)

	fmt.Fprintf(&b, "### Key Findings\n")
	writeBullets(&b, r.Summary.KeyFindings)

	fmt.Fprintf(&b, "\n## Website Analysis\n\n")
	fmt.Fprintf(&b, "- **Total Pages**: %d\n", r.WebsiteAnalysis.TotalPages)
	fmt.Fprintf(&b, "- **Average SEO Score**: %d%%\n", r.WebsiteAnalysis.AverageScore)
	fmt.Fprintf(&b, "- **Pages Needing Attention**: %d\n\n", len(r.WebsiteAnalysis.PagesNeedingAttention))

	fmt.Fprintf(&b, "### Best Performing Pages\n")
	writeBullets(&b, limit(r.WebsiteAnalysis.BestPerformingPages, 5))

	fmt.Fprintf(&b, "\n### Pages Needing Attention\n")
	writeBullets(&b, r.WebsiteAnalysis.PagesNeedingAttention)

	fmt.Fprintf(&b, "\n## Blog Analysis\n\n")
	fmt.Fprintf(&b, "- **Total Posts**: %d\n", r.BlogAnalysis.TotalPosts)
	fmt.Fprintf(&b, "- **Average SEO Score**: %d%%\n", r.BlogAnalysis.AverageScore)
	fmt.Fprintf(&b, "- **Posts Needing Attention**: %d\n\n", len(r.BlogAnalysis.PostsNeedingAttention))

	fmt.Fprintf(&b, "### Top Issues\n")
	for _, issue := range limitIssues(r.BlogAnalysis.CommonIssues, 5) {
		fmt.Fprintf(&b, "- **%s** (%d posts affected)\n", issue.Issue, issue.Frequency)
	}

	fmt.Fprintf(&b, "\n## Recommendations\n\n")
	for _, rec := range r.Recommendations {
		fmt.Fprintf(&b, "### %s (%s Priority)\n", rec.Title, strings.ToUpper(rec.Priority))
		fmt.Fprintf(&b, "%s\n\n", rec.Description)
		fmt.Fprintf(&b, "**Impact**: %s\n", rec.Impact)
		fmt.Fprintf(&b, "**Effort**: %s\n\n", rec.Effort)
		fmt.Fprintf(&b, "**Implementation Steps**:\n")
		writeBullets(&b, rec.Implementation)
		fmt.Fprintf(&b, "\n")
	}

	fmt.Fprintf(&b, "## Action Plan\n\n")
	fmt.Fprintf(&b, "### Immediate Actions (Next 1-2 weeks)\n")
	writeBullets(&b, r.ActionPlan.Immediate)
	fmt.Fprintf(&b, "\n### Short-term Actions (Next 1-3 months)\n")
	writeBullets(&b, r.ActionPlan.ShortTerm)
	fmt.Fprintf(&b, "\n### Long-term Actions (3+ months)\n")
	writeBullets(&b, r.ActionPlan.LongTerm)
	fmt.Fprintf(&b, "\n### Ongoing Activities\n")
	writeBullets(&b, r.ActionPlan.Ongoing)

	return b.String()
}

func writeBullets(b *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func limit(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func limitIssues(items []IssueFrequency, n int) []IssueFrequency {
	if len(items) > n {
		return items[:n]
	}
	return items
}
