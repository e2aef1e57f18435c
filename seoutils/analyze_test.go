package seoutils

import (
	"strings"
	"testing"
)

func TestCalculateSEOScore(t *testing.T) {
	t.Run("PerfectScore", func(t *testing.T) {
		if score := CalculateSEOScore(nil); score != 100 {
			t.Errorf("Expected 100 for no issues, got %d", score)
		}
	})

	t.Run("Deductions", func(t *testing.T) {
		issues := []Issue{
			{Severity: SeverityError},
			{Severity: SeverityWarning},
			{Severity: SeverityNotice},
		}
		if score := CalculateSEOScore(issues); score != 70 {
			t.Errorf("Expected 70, got %d", score)
		}
	})

	t.Run("ClampedAtZero", func(t *testing.T) {
		issues := make([]Issue, 10)
		for i := range issues {
			issues[i] = Issue{Severity: SeverityError}
		}
		if score := CalculateSEOScore(issues); score != 0 {
			t.Errorf("Expected 0 for 10 errors, got %d", score)
		}
	})
}

func TestAnalyzeTitle(t *testing.T) {
	t.Run("TooShort", func(t *testing.T) {
		issues := AnalyzeTitle("Short")
		if !hasMessage(issues, "Title is too short") {
			t.Error("Expected short-title warning")
		}
	})

	t.Run("TooLong", func(t *testing.T) {
		title := strings.Repeat("x", 61)
		issues := AnalyzeTitle(title)
		if !hasMessage(issues, "Title is too long") {
			t.Error("Expected long-title error")
		}
	})

	t.Run("MissingBrand", func(t *testing.T) {
		issues := AnalyzeTitle("A perfectly sized headline about something")
		if !hasMessage(issues, "Title could include brand or industry keywords") {
			t.Error("Expected brand notice")
		}
	})

	t.Run("GoodTitle", func(t *testing.T) {
		issues := AnalyzeTitle("Managed IT Services for Japan | AKRIN")
		if len(issues) != 0 {
			t.Errorf("Expected no issues, got %v", issues)
		}
	})
}

func TestAnalyzeContent(t *testing.T) {
	longText := strings.Repeat("word ", 600)

	t.Run("ShortContentWithoutH2Notice", func(t *testing.T) {
		// 250 words, one H1, zero H2: short-content warning fires but the
		// H2 notice must not (that rule needs more than 500 words).
		content := "<h1>Heading</h1><p>" + strings.Repeat("word ", 250) + "</p>"
		issues := AnalyzeContent(content)
		if !hasMessage(issues, "Content is too short") {
			t.Error("Expected short-content warning")
		}
		if hasMessage(issues, "No H2 tags found") {
			t.Error("H2 notice must not fire below 500 words")
		}
	})

	t.Run("MissingH1", func(t *testing.T) {
		issues := AnalyzeContent("<p>" + longText + "</p>")
		if !hasMessage(issues, "Missing H1 tag") {
			t.Error("Expected missing-H1 error")
		}
	})

	t.Run("MultipleH1", func(t *testing.T) {
		issues := AnalyzeContent("<h1>One</h1><h1>Two</h1><p>" + longText + "</p>")
		if !hasMessage(issues, "Multiple H1 tags found") {
			t.Error("Expected multiple-H1 warning")
		}
	})

	t.Run("LongContentNeedsH2", func(t *testing.T) {
		issues := AnalyzeContent("<h1>One</h1><p>" + longText + "</p>")
		if !hasMessage(issues, "No H2 tags found") {
			t.Error("Expected H2 notice above 500 words")
		}
	})

	t.Run("MissingAltText", func(t *testing.T) {
		content := `<h1>T</h1><img src="a.png"><img src="b.png" alt="b"><p>` + longText + "</p>"
		issues := AnalyzeContent(content)
		if !hasMessage(issues, "1 images missing alt text") {
			t.Errorf("Expected alt-text error, got %v", issues)
		}
	})
}

func TestAnalyzeDescription(t *testing.T) {
	t.Run("TooShort", func(t *testing.T) {
		if !hasMessage(AnalyzeDescription("brief"), "Meta description is too short") {
			t.Error("Expected short-description warning")
		}
	})

	t.Run("TooLong", func(t *testing.T) {
		desc := strings.Repeat("x", 161)
		if !hasMessage(AnalyzeDescription(desc), "Meta description is too long") {
			t.Error("Expected long-description error")
		}
	})

	t.Run("OptimalLength", func(t *testing.T) {
		desc := strings.Repeat("x", 140)
		if issues := AnalyzeDescription(desc); len(issues) != 0 {
			t.Errorf("Expected no issues for 140 chars, got %v", issues)
		}
	})
}

func TestGenerateMetaDescription(t *testing.T) {
	t.Run("ShortContentPassesThrough", func(t *testing.T) {
		content := "<p>AKRIN delivers managed IT services across Japan.</p>"
		want := "AKRIN delivers managed IT services across Japan."
		if got := GenerateMetaDescription(content, 155); got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
	})

	t.Run("StripsLeadingH1", func(t *testing.T) {
		content := "<h1>Ignored Heading</h1><p>The actual body text.</p>"
		if got := GenerateMetaDescription(content, 155); got != "The actual body text." {
			t.Errorf("H1 content leaked into description: %q", got)
		}
	})

	t.Run("FirstSentencePreferred", func(t *testing.T) {
		first := strings.Repeat("a", 100)
		content := first + ". " + strings.Repeat("b", 200)
		if got := GenerateMetaDescription(content, 155); got != first+"." {
			t.Errorf("Expected first sentence, got %q", got)
		}
	})

	t.Run("LongContentBounded", func(t *testing.T) {
		content := strings.Repeat("word ", 100)
		got := GenerateMetaDescription(content, 155)
		if len(got) > 158 { // 155 plus the appended ellipsis
			t.Errorf("Result too long: %d chars", len(got))
		}
		if !strings.HasSuffix(got, "...") && !strings.HasSuffix(got, ".") {
			t.Errorf("Expected sentence terminator or ellipsis, got %q", got)
		}
	})
}

func TestAnalyzeBlogPost(t *testing.T) {
	content := "<h1>Cybersecurity in Japan</h1><p>" + strings.Repeat("security threat landscape review for enterprises ", 80) + "</p><h2>Risks</h2>"
	analysis := AnalyzeBlogPost(
		"Cybersecurity Best Practices for Japan | AKRIN",
		content,
		"cybersecurity-best-practices",
		"Security",
		[]string{"cybersecurity", "japan"},
		"https://akrin.jp",
		"",
	)

	if analysis.Score < 0 || analysis.Score > 100 {
		t.Errorf("Score out of range: %d", analysis.Score)
	}
	if analysis.Metadata.CanonicalURL != "https://akrin.jp/blog/cybersecurity-best-practices" {
		t.Errorf("Unexpected canonical URL: %q", analysis.Metadata.CanonicalURL)
	}
	if analysis.Metadata.Title != "Cybersecurity Best Practices for Japan | AKRIN | AKRIN Blog" {
		t.Errorf("Unexpected metadata title: %q", analysis.Metadata.Title)
	}
	if len(analysis.Recommendations) == 0 {
		t.Error("Expected standing recommendations")
	}
	if analysis.Metadata.StructuredData["@type"] != "BlogPosting" {
		t.Errorf("Expected BlogPosting structured data, got %v", analysis.Metadata.StructuredData["@type"])
	}
}

func TestExtractKeywords(t *testing.T) {
	content := "<p>cloud cloud cloud migration migration security and the with from</p>"
	keywords := ExtractKeywords(content, 10)

	if len(keywords) < 2 {
		t.Fatalf("Expected at least 2 keywords, got %v", keywords)
	}
	if keywords[0] != "cloud" {
		t.Errorf("Expected most frequent keyword first, got %q", keywords[0])
	}
	if keywords[1] != "migration" {
		t.Errorf("Expected second keyword migration, got %q", keywords[1])
	}
	for _, kw := range keywords {
		if kw == "the" || kw == "and" || kw == "with" || kw == "from" {
			t.Errorf("Stop word leaked into keywords: %q", kw)
		}
	}
}

func TestStripTags(t *testing.T) {
	if got := StripTags("<p>Hello <b>world</b></p>"); got != "Hello world" {
		t.Errorf("Expected %q, got %q", "Hello world", got)
	}
	if got := WordCount("<p>one two</p><p>three</p>"); got != 3 {
		t.Errorf("Expected 3 words, got %d", got)
	}
}

func hasMessage(issues []Issue, message string) bool {
	for _, issue := range issues {
		if issue.Message == message {
			return true
		}
	}
	return false
}
