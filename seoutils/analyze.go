// Package seoutils analyzes a single piece of content (title, HTML body,
// meta description) for SEO issues. Everything in here is a pure function:
// no network, no shared state.
package seoutils

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Issue severities.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityNotice  = "notice"
)

// Issue categories.
const (
	CategoryTitle       = "title"
	CategoryDescription = "description"
	CategoryHeaders     = "headers"
	CategoryContent     = "content"
	CategoryImages      = "images"
	CategoryLinks       = "links"
	CategoryTechnical   = "technical"
	CategoryKeywords    = "keywords"
	CategoryMeta        = "meta"
)

// Issue is a single SEO finding with a remediation hint.
type Issue struct {
	Severity       string `json:"severity"`
	Category       string `json:"category"`
	Message        string `json:"message"`
	Recommendation string `json:"recommendation"`
}

// Analysis is the outcome of analyzing one blog post.
type Analysis struct {
	Score           int      `json:"score"`
	Issues          []Issue  `json:"issues"`
	Recommendations []string `json:"recommendations"`
	Metadata        Metadata `json:"metadata"`
}

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	h1BlockPattern    = regexp.MustCompile(`(?is)<h1[^>]*>.*?</h1>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// StripTags removes HTML markup, replacing each tag with a space and
// collapsing runs of whitespace.
func StripTags(html string) string {
	text := tagPattern.ReplaceAllString(html, " ")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}

// WordCount counts whitespace-separated words in the plain text of html.
func WordCount(html string) int {
	return len(strings.Fields(StripTags(html)))
}

// AnalyzeTitle checks a title against length and branding rules.
func AnalyzeTitle(title string) []Issue {
	var issues []Issue

	if len(title) < 30 {
		issues = append(issues, Issue{
			Severity:       SeverityWarning,
			Category:       CategoryTitle,
			Message:        "Title is too short",
			Recommendation: "Consider expanding the title to 30-60 characters for better SEO",
		})
	}
	if len(title) > 60 {
		issues = append(issues, Issue{
			Severity:       SeverityError,
			Category:       CategoryTitle,
			Message:        "Title is too long",
			Recommendation: "Shorten the title to under 60 characters to prevent truncation in search results",
		})
	}
	if !strings.Contains(title, "AKRIN") && !strings.Contains(title, "IT") {
		issues = append(issues, Issue{
			Severity:       SeverityNotice,
			Category:       CategoryTitle,
			Message:        "Title could include brand or industry keywords",
			Recommendation: "Consider including \"AKRIN\" or relevant IT keywords in the title",
		})
	}

	return issues
}

// AnalyzeContent checks the HTML body: word count, heading usage and image
// alt coverage.
func AnalyzeContent(content string) []Issue {
	var issues []Issue

	wordCount := WordCount(content)
	if wordCount < 300 {
		issues = append(issues, Issue{
			Severity:       SeverityWarning,
			Category:       CategoryContent,
			Message:        "Content is too short",
			Recommendation: "Expand content to at least 300 words for better SEO performance",
		})
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		// Unparseable markup: report the structural checks as unavailable
		// rather than guessing.
		issues = append(issues, Issue{
			Severity:       SeverityError,
			Category:       CategoryContent,
			Message:        "Content markup could not be parsed",
			Recommendation: "Fix malformed HTML in the content body",
		})
		return issues
	}

	h1Count := doc.Find("h1").Length()
	if h1Count == 0 {
		issues = append(issues, Issue{
			Severity:       SeverityError,
			Category:       CategoryHeaders,
			Message:        "Missing H1 tag",
			Recommendation: "Add an H1 tag to clearly define the main topic of the page",
		})
	} else if h1Count > 1 {
		issues = append(issues, Issue{
			Severity:       SeverityWarning,
			Category:       CategoryHeaders,
			Message:        "Multiple H1 tags found",
			Recommendation: "Use only one H1 tag per page and use H2-H6 for subheadings",
		})
	}

	// The H2 rule only matters for longer content.
	if doc.Find("h2").Length() == 0 && wordCount > 500 {
		issues = append(issues, Issue{
			Severity:       SeverityNotice,
			Category:       CategoryHeaders,
			Message:        "No H2 tags found",
			Recommendation: "Add H2 tags to structure longer content and improve readability",
		})
	}

	missingAlt := 0
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		if _, exists := s.Attr("alt"); !exists {
			missingAlt++
		}
	})
	if missingAlt > 0 {
		issues = append(issues, Issue{
			Severity:       SeverityError,
			Category:       CategoryImages,
			Message:        fmt.Sprintf("%d images missing alt text", missingAlt),
			Recommendation: "Add descriptive alt text to all images for accessibility and SEO",
		})
	}

	return issues
}

// AnalyzeDescription checks a meta description against length rules.
func AnalyzeDescription(description string) []Issue {
	var issues []Issue

	if len(description) < 120 {
		issues = append(issues, Issue{
			Severity:       SeverityWarning,
			Category:       CategoryDescription,
			Message:        "Meta description is too short",
			Recommendation: "Expand meta description to 120-160 characters for better search result display",
		})
	}
	if len(description) > 160 {
		issues = append(issues, Issue{
			Severity:       SeverityError,
			Category:       CategoryDescription,
			Message:        "Meta description is too long",
			Recommendation: "Shorten meta description to under 160 characters to prevent truncation",
		})
	}

	return issues
}

// DefaultMetaDescriptionLength is the target length for generated meta
// descriptions, slightly under the 160-character SERP cutoff.
const DefaultMetaDescriptionLength = 155

// GenerateMetaDescription derives a meta description from the content body.
// The tie-break ladder matters for snippet quality and must stay in this
// order: whole text if it fits; the first sentence when its length lands in
// (maxLength/2, maxLength]; the last full stop past 70% of maxLength; finally
// a word-boundary cut with an ellipsis.
func GenerateMetaDescription(content string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMetaDescriptionLength
	}

	text := h1BlockPattern.ReplaceAllString(content, "")
	text = tagPattern.ReplaceAllString(text, "")
	text = strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))

	if len(text) <= maxLength {
		return text
	}

	firstSentence := strings.SplitN(text, ".", 2)[0]
	if len(firstSentence) <= maxLength && float64(len(firstSentence)) > float64(maxLength)*0.5 {
		return firstSentence + "."
	}

	truncated := text[:maxLength]
	if lastStop := strings.LastIndex(truncated, "."); float64(lastStop) > float64(maxLength)*0.7 {
		return text[:lastStop+1]
	}

	lastSpace := strings.LastIndex(truncated, " ")
	if lastSpace < 0 {
		lastSpace = maxLength
	}
	return text[:lastSpace] + "..."
}

// CalculateSEOScore starts at 100 and deducts 15 per error, 10 per warning
// and 5 per notice, clamped to zero.
func CalculateSEOScore(issues []Issue) int {
	score := 100
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			score -= 15
		case SeverityWarning:
			score -= 10
		case SeverityNotice:
			score -= 5
		}
	}
	if score < 0 {
		return 0
	}
	return score
}

// AnalyzeBlogPost runs the full single-post pipeline: title, content and
// description checks, metadata generation and scoring. When no custom meta
// description is supplied one is generated from the content.
func AnalyzeBlogPost(title, content, slug, category string, tags []string, baseURL, customMetaDescription string) Analysis {
	var issues []Issue

	issues = append(issues, AnalyzeTitle(title)...)
	issues = append(issues, AnalyzeContent(content)...)

	description := customMetaDescription
	if description == "" {
		description = GenerateMetaDescription(content, DefaultMetaDescriptionLength)
	}
	issues = append(issues, AnalyzeDescription(description)...)

	metadata := GenerateBlogMetadata(title, content, slug, category, tags, baseURL, customMetaDescription)

	return Analysis{
		Score:           CalculateSEOScore(issues),
		Issues:          issues,
		Recommendations: issueRecommendations(issues),
		Metadata:        metadata,
	}
}

func issueRecommendations(issues []Issue) []string {
	var recommendations []string

	hasErrors := false
	hasWarnings := false
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			hasErrors = true
		case SeverityWarning:
			hasWarnings = true
		}
	}

	if hasErrors {
		recommendations = append(recommendations, "Critical: Fix all error-level SEO issues first")
	}
	if hasWarnings {
		recommendations = append(recommendations, "Important: Address warning-level issues to improve SEO performance")
	}

	recommendations = append(recommendations,
		"Ensure all images have descriptive alt text",
		"Use proper heading hierarchy (H1 -> H2 -> H3)",
		"Include relevant keywords naturally in content",
		"Add internal links to related blog posts",
		"Optimize page loading speed",
	)

	return recommendations
}

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {},
	"will": {}, "would": {}, "could": {}, "should": {}, "may": {}, "might": {},
	"can": {}, "this": {}, "that": {}, "these": {}, "those": {},
}

var nonWordPattern = regexp.MustCompile(`[^\w]`)

// ExtractKeywords returns the most frequent non-stop-words in the content,
// limited to limit entries. Ties break alphabetically so the result is
// deterministic.
func ExtractKeywords(content string, limit int) []string {
	if limit <= 0 {
		limit = 10
	}

	text := strings.ToLower(tagPattern.ReplaceAllString(content, " "))
	frequency := make(map[string]int)
	for _, word := range strings.Fields(text) {
		clean := nonWordPattern.ReplaceAllString(word, "")
		if len(clean) <= 3 {
			continue
		}
		if _, skip := stopWords[clean]; skip {
			continue
		}
		frequency[clean]++
	}

	words := make([]string, 0, len(frequency))
	for word := range frequency {
		words = append(words, word)
	}
	sort.Slice(words, func(i, j int) bool {
		if frequency[words[i]] != frequency[words[j]] {
			return frequency[words[i]] > frequency[words[j]]
		}
		return words[i] < words[j]
	})

	if len(words) > limit {
		words = words[:limit]
	}
	return words
}
