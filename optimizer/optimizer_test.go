package optimizer

import (
	"context"
	"strings"
	"testing"

	"github.com/akrin/seo-analyzer/seranking"
)

func newTestOptimizer() *Optimizer {
	return New(&seranking.NoopClient{})
}

func TestKeywordDensity(t *testing.T) {
	// 3 occurrences in a 100-word body must yield exactly 3.0 percent.
	words := make([]string, 0, 100)
	words = append(words, "cloud", "cloud", "cloud")
	for len(words) < 100 {
		words = append(words, "alpha")
	}
	content := "<p>" + strings.Join(words, " ") + "</p>"

	result := newTestOptimizer().AnalyzeContent(context.Background(), ContentInput{
		Title:        "Cloud Migration",
		Content:      content,
		FocusKeyword: "cloud",
	})

	if result.KeywordAnalysis.KeywordDensity != 3.0 {
		t.Errorf("Expected density 3.0, got %v", result.KeywordAnalysis.KeywordDensity)
	}
	if result.ContentAnalysis.WordCount != 100 {
		t.Errorf("Expected 100 words, got %d", result.ContentAnalysis.WordCount)
	}
}

func TestImageOptimization(t *testing.T) {
	o := newTestOptimizer()

	t.Run("NoImages", func(t *testing.T) {
		result := o.AnalyzeContent(context.Background(), ContentInput{
			Title:   "No Images",
			Content: "<p>text only</p>",
		})
		if result.TechnicalSEO.ImageOptimization != 100 {
			t.Errorf("Expected 100 with no images, got %v", result.TechnicalSEO.ImageOptimization)
		}
	})

	t.Run("HalfMissingAlt", func(t *testing.T) {
		result := o.AnalyzeContent(context.Background(), ContentInput{
			Title:   "Images",
			Content: `<img src="a.png" alt="a"><img src="b.png">`,
		})
		if result.TechnicalSEO.ImageOptimization != 50 {
			t.Errorf("Expected 50 with one of two alts missing, got %v", result.TechnicalSEO.ImageOptimization)
		}
	})
}

func TestKeywordPlacement(t *testing.T) {
	content := `<h1>Cloud Migration Guide</h1>
<h2>Planning your cloud migration</h2>
<p>Cloud migration starts with an assessment.</p>
<p>Closing thoughts on moving infrastructure.</p>`

	result := newTestOptimizer().AnalyzeContent(context.Background(), ContentInput{
		Title:           "Cloud Migration for Japanese Enterprises",
		MetaDescription: "A practical cloud migration playbook.",
		Content:         content,
		FocusKeyword:    "cloud migration",
	})

	placement := result.KeywordAnalysis.KeywordPlacement
	if !placement.InTitle {
		t.Error("Expected keyword in title")
	}
	if !placement.InMetaDescription {
		t.Error("Expected keyword in meta description")
	}
	if !placement.InH1 {
		t.Error("Expected keyword in H1")
	}
	if !placement.InH2 {
		t.Error("Expected keyword in H2")
	}
	if !placement.InFirstParagraph {
		t.Error("Expected keyword in first paragraph")
	}
	if placement.InLastParagraph {
		t.Error("Keyword is not in the last paragraph")
	}
	if !result.ContentAnalysis.HeadingStructure.KeywordInHeadings {
		t.Error("Expected KeywordInHeadings to reflect H1/H2 placement")
	}
}

func TestTitleLengthScoring(t *testing.T) {
	o := newTestOptimizer()

	t.Run("OptimalLength", func(t *testing.T) {
		result := o.AnalyzeContent(context.Background(), ContentInput{
			Title:   "Managed IT Services for Business in Japan",
			Content: "<p>body</p>",
		})
		if result.TechnicalSEO.TitleOptimization != 100 {
			t.Errorf("Expected 100 for 41-char title, got %v", result.TechnicalSEO.TitleOptimization)
		}
	})

	t.Run("ShortTitleRampsUp", func(t *testing.T) {
		result := o.AnalyzeContent(context.Background(), ContentInput{
			Title:   "Fifteen chars!!",
			Content: "<p>body</p>",
		})
		if got := result.TechnicalSEO.TitleOptimization; got != 50 {
			t.Errorf("Expected 50 for 15-char title, got %v", got)
		}
	})
}

func TestURLStructure(t *testing.T) {
	o := newTestOptimizer()

	t.Run("CleanPath", func(t *testing.T) {
		result := o.AnalyzeContent(context.Background(), ContentInput{
			Title:   "Title within optimal length band",
			Content: "<p>body</p>",
			URL:     "/services/it-managed-services",
		})
		if result.TechnicalSEO.URLStructure != 100 {
			t.Errorf("Expected 100 for clean path, got %v", result.TechnicalSEO.URLStructure)
		}
	})

	t.Run("MessyURL", func(t *testing.T) {
		result := o.AnalyzeContent(context.Background(), ContentInput{
			Title:   "Title within optimal length band",
			Content: "<p>body</p>",
			URL:     "/Services/IT_Managed%20Services",
		})
		if got := result.TechnicalSEO.URLStructure; got != 70 {
			t.Errorf("Expected 70 for uppercase/underscore URL, got %v", got)
		}
	})
}

func TestRecommendations(t *testing.T) {
	result := newTestOptimizer().AnalyzeContent(context.Background(), ContentInput{
		Title:        "Short",
		Content:      "<p>tiny body</p>",
		FocusKeyword: "cybersecurity",
	})

	if !hasRecommendation(result.Recommendations, "Increase Content Length") {
		t.Error("Expected content-length recommendation for short content")
	}
	if !hasRecommendation(result.Recommendations, "Add Keyword to Title") {
		t.Error("Expected keyword-in-title recommendation")
	}
	if !hasRecommendation(result.Recommendations, "Improve Heading Structure") {
		t.Error("Expected heading-structure recommendation without H1/H2")
	}
	if !hasRecommendation(result.Recommendations, "Optimize Title Length") {
		t.Error("Expected title-length recommendation for a 5-char title")
	}
}

func TestRelatedKeywordsByLanguage(t *testing.T) {
	o := newTestOptimizer()

	t.Run("English", func(t *testing.T) {
		result := o.AnalyzeContent(context.Background(), ContentInput{
			Title:        "Cloud",
			Content:      "<p>cloud body</p>",
			FocusKeyword: "cloud",
			Language:     LanguageEN,
		})
		if len(result.KeywordAnalysis.RelatedKeywords) == 0 {
			t.Fatal("Expected related keywords")
		}
		if result.KeywordAnalysis.RelatedKeywords[0] != "cloud guide" {
			t.Errorf("Unexpected first related keyword: %q", result.KeywordAnalysis.RelatedKeywords[0])
		}
	})

	t.Run("JapaneseDetected", func(t *testing.T) {
		result := o.AnalyzeContent(context.Background(), ContentInput{
			Title:        "クラウド移行",
			Content:      "<p>クラウド移行はビジネスの俊敏性を高めます。計画的な移行が成功の鍵です。</p>",
			FocusKeyword: "クラウド移行",
		})
		if result.KeywordAnalysis.RelatedKeywords[0] != "クラウド移行 ガイド" {
			t.Errorf("Expected Japanese suffixes after detection, got %q", result.KeywordAnalysis.RelatedKeywords[0])
		}
	})
}

func TestOverallScoreBounds(t *testing.T) {
	longBody := strings.Repeat("Infrastructure strategy drives value. ", 120)
	content := "<h1>IT Strategy</h1><h2>Approach</h2><p>" + longBody + `</p><p>See <a href="/services">our services</a> and <a href="https://example.com">partners</a>.</p>`

	result := newTestOptimizer().AnalyzeContent(context.Background(), ContentInput{
		Title:           "IT Strategy Consulting for Enterprises",
		MetaDescription: strings.Repeat("d", 140),
		Content:         content,
		URL:             "/services/it-consulting",
	})

	if result.OverallScore < 0 || result.OverallScore > 100 {
		t.Errorf("Overall score out of range: %d", result.OverallScore)
	}
	if result.ContentAnalysis.InternalLinks != 1 || result.ContentAnalysis.ExternalLinks != 1 {
		t.Errorf("Link classification wrong: internal=%d external=%d",
			result.ContentAnalysis.InternalLinks, result.ContentAnalysis.ExternalLinks)
	}
	if !result.ContentAnalysis.HeadingStructure.HasProperHierarchy {
		t.Error("Expected proper hierarchy with one H1 and an H2")
	}
	if result.CompetitorAnalysis != nil {
		t.Error("Competitor analysis must be nil without SERP data")
	}
}

func TestGeneratedMetaSuggestions(t *testing.T) {
	result := newTestOptimizer().AnalyzeContent(context.Background(), ContentInput{
		Title:        "A headline without the term",
		Content:      "<p>First sentence of the body. Second sentence.</p>",
		FocusKeyword: "penetration testing",
	})

	meta := result.MetaOptimization
	if meta.Title.HasKeyword {
		t.Error("Title does not contain the focus keyword")
	}
	if len(meta.Title.Suggestions) == 0 {
		t.Error("Expected title suggestions")
	}
	if meta.GeneratedTitle != "penetration testing - A headline without the term" {
		t.Errorf("Unexpected generated title: %q", meta.GeneratedTitle)
	}
	if !strings.Contains(meta.GeneratedDescription, "penetration testing") {
		t.Errorf("Generated description missing keyword: %q", meta.GeneratedDescription)
	}
	if len(meta.GeneratedDescription) > 160 {
		t.Errorf("Generated description too long: %d chars", len(meta.GeneratedDescription))
	}
}

func hasRecommendation(recs []Recommendation, title string) bool {
	for _, rec := range recs {
		if rec.Title == title {
			return true
		}
	}
	return false
}
