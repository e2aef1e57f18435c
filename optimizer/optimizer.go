// Package optimizer performs the full multi-factor SEO analysis of a single
// page or post, optionally enriched with live keyword and SERP data from the
// external client. The enrichment is best-effort: any external failure is
// logged and the analysis continues with local data only.
package optimizer

import (
	"context"
	"log"
	"math"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pemistahl/lingua-go"

	"github.com/akrin/seo-analyzer/seoutils"
	"github.com/akrin/seo-analyzer/seranking"
)

// Optimizer analyzes content units. Safe for concurrent use: it holds only
// the stateless external client and the language detector built at
// construction.
type Optimizer struct {
	client   seranking.Client
	detector lingua.LanguageDetector
}

// New builds an Optimizer around the given external client.
func New(client seranking.Client) *Optimizer {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.English, lingua.Japanese).
		Build()
	return &Optimizer{client: client, detector: detector}
}

// AnalyzeContent runs every analysis dimension over one content unit and
// rolls them up into a weighted overall score.
func (o *Optimizer) AnalyzeContent(ctx context.Context, input ContentInput) Result {
	language := input.Language
	if language == "" {
		language = o.detectLanguage(input.Content)
	}

	contentAnalysis := analyzeContentStructure(input.Content)
	keywordAnalysis := o.analyzeKeywords(ctx, input, language)
	contentAnalysis.HeadingStructure.KeywordInHeadings = keywordAnalysis.KeywordPlacement.InH1 ||
		keywordAnalysis.KeywordPlacement.InH2

	technicalSEO := analyzeTechnicalSEO(input)
	metaOptimization := optimizeMetaTags(input)

	var competitorAnalysis *CompetitorAnalysis
	if input.FocusKeyword != "" {
		competitorAnalysis = o.analyzeCompetitors(ctx, input.FocusKeyword, language)
	}

	recommendations := generateRecommendations(contentAnalysis, keywordAnalysis, technicalSEO, metaOptimization)

	overall := calculateOverallScore(contentAnalysis, keywordAnalysis, technicalSEO, metaOptimization)

	return Result{
		OverallScore:       overall,
		ContentAnalysis:    contentAnalysis,
		KeywordAnalysis:    keywordAnalysis,
		TechnicalSEO:       technicalSEO,
		CompetitorAnalysis: competitorAnalysis,
		Recommendations:    recommendations,
		MetaOptimization:   metaOptimization,
	}
}

func (o *Optimizer) detectLanguage(content string) string {
	text := seoutils.StripTags(content)
	if text == "" {
		return LanguageEN
	}
	if lang, ok := o.detector.DetectLanguageOf(text); ok && lang == lingua.Japanese {
		return LanguageJA
	}
	return LanguageEN
}

var (
	sentencePattern   = regexp.MustCompile(`[.!?]+`)
	vowelGroupPattern = regexp.MustCompile(`[aeiouy]+`)
)

func analyzeContentStructure(content string) ContentAnalysis {
	text := seoutils.StripTags(content)
	wordCount := len(strings.Fields(text))

	var h1, h2, h3, h4, internal, external int
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(content)); err == nil {
		h1 = doc.Find("h1").Length()
		h2 = doc.Find("h2").Length()
		h3 = doc.Find("h3").Length()
		h4 = doc.Find("h4").Length()

		doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
			href, _ := s.Attr("href")
			switch {
			case strings.HasPrefix(href, "/"):
				internal++
			case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
				external++
			}
		})
	}

	hasProperHierarchy := h1 == 1 && h2 > 0
	readability := fleschReadingEase(text, wordCount)

	quality := 0
	if wordCount >= 300 {
		quality += 25
	}
	if wordCount >= 600 {
		quality += 15
	}
	if hasProperHierarchy {
		quality += 20
	}
	if readability >= 60 {
		quality += 20
	}
	if internal > 0 {
		quality += 10
	}
	if external > 0 {
		quality += 10
	}

	return ContentAnalysis{
		WordCount:        wordCount,
		ReadabilityScore: readability,
		HeadingStructure: HeadingStructure{
			H1Count:            h1,
			H2Count:            h2,
			H3Count:            h3,
			H4Count:            h4,
			HasProperHierarchy: hasProperHierarchy,
		},
		ContentQuality: quality,
		InternalLinks:  internal,
		ExternalLinks:  external,
	}
}

// fleschReadingEase computes the simplified Flesch score
// 206.835 - 1.015*(words/sentences) - 84.6*(syllables/words), clamped to
// [0,100]. Syllables are approximated by counting vowel-group runs, which is
// crude but stable and good enough for relative scoring.
func fleschReadingEase(text string, wordCount int) float64 {
	if wordCount == 0 {
		return 0
	}

	sentences := len(sentencePattern.Split(text, -1))
	if sentences == 0 {
		sentences = 1
	}

	syllables := len(vowelGroupPattern.FindAllString(strings.ToLower(text), -1))
	if syllables == 0 {
		syllables = 1
	}

	score := 206.835 - 1.015*(float64(wordCount)/float64(sentences)) - 84.6*(float64(syllables)/float64(wordCount))
	return clampFloat(score, 0, 100)
}

func (o *Optimizer) analyzeKeywords(ctx context.Context, input ContentInput, language string) KeywordAnalysis {
	if input.FocusKeyword == "" {
		return KeywordAnalysis{RelatedKeywords: []string{}}
	}

	keyword := strings.ToLower(input.FocusKeyword)
	text := seoutils.StripTags(input.Content)
	wordCount := len(strings.Fields(text))

	density := 0.0
	if wordCount > 0 {
		occurrences := strings.Count(strings.ToLower(text), keyword)
		density = float64(occurrences) / float64(wordCount) * 100
	}

	placement := KeywordPlacement{
		InTitle:           strings.Contains(strings.ToLower(input.Title), keyword),
		InMetaDescription: strings.Contains(strings.ToLower(input.MetaDescription), keyword),
	}
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(input.Content)); err == nil {
		placement.InH1 = selectionContains(doc.Find("h1"), keyword)
		placement.InH2 = selectionContains(doc.Find("h2"), keyword)
		paragraphs := doc.Find("p")
		if paragraphs.Length() > 0 {
			placement.InFirstParagraph = strings.Contains(strings.ToLower(paragraphs.First().Text()), keyword)
			placement.InLastParagraph = strings.Contains(strings.ToLower(paragraphs.Last().Text()), keyword)
		}
	}

	analysis := KeywordAnalysis{
		FocusKeyword:     input.FocusKeyword,
		KeywordDensity:   density,
		KeywordPlacement: placement,
		RelatedKeywords:  relatedKeywords(input.FocusKeyword, language),
	}

	// Live enrichment is optional: failure leaves the optional fields nil.
	rows := o.client.GetKeywordResearch(ctx, []string{input.FocusKeyword}, keywordSource(language))
	if len(rows) > 0 {
		row := rows[0]
		difficulty := row.Difficulty
		volume := row.SearchVolume
		analysis.KeywordDifficulty = &difficulty
		analysis.SearchVolume = &volume
		analysis.CompetitionLevel = row.Competition
	} else {
		log.Printf("[optimizer] no keyword data for %q, continuing without enrichment", input.FocusKeyword)
	}

	return analysis
}

func selectionContains(sel *goquery.Selection, keyword string) bool {
	found := false
	sel.Each(func(_ int, s *goquery.Selection) {
		if strings.Contains(strings.ToLower(s.Text()), keyword) {
			found = true
		}
	})
	return found
}

func keywordSource(language string) string {
	if language == LanguageJA {
		return "jp"
	}
	return "us"
}

var relatedSuffixesEN = []string{"guide", "how to", "best", "practices", "tips"}
var relatedSuffixesJA = []string{"ガイド", "とは", "方法", "手順", "ベスト"}

func relatedKeywords(keyword, language string) []string {
	suffixes := relatedSuffixesEN
	if language == LanguageJA {
		suffixes = relatedSuffixesJA
	}
	related := make([]string, 0, len(suffixes))
	for _, suffix := range suffixes {
		related = append(related, keyword+" "+suffix)
	}
	return related
}

func analyzeTechnicalSEO(input ContentInput) TechnicalSEO {
	title := input.MetaTitle
	if title == "" {
		title = input.Title
	}

	urlScore := 80.0
	if input.URL != "" {
		urlScore = analyzeURLStructure(input.URL)
	}

	return TechnicalSEO{
		TitleOptimization:           lengthRampScore(len(title), 30, 60),
		MetaDescriptionOptimization: lengthRampScore(len(input.MetaDescription), 120, 160),
		URLStructure:                urlScore,
		ImageOptimization:           imageAltScore(input.Content),
	}
}

// lengthRampScore scores 100 inside [idealMin, idealMax], ramps up linearly
// below the range and down linearly above it.
func lengthRampScore(length, idealMin, idealMax int) float64 {
	switch {
	case length >= idealMin && length <= idealMax:
		return 100
	case length < idealMin:
		return clampFloat(float64(length)/float64(idealMin)*100, 0, 100)
	default:
		return clampFloat(100-float64(length-idealMax)/float64(idealMax)*100, 0, 100)
	}
}

var urlShapePattern = regexp.MustCompile(`^[a-z0-9-/]+$`)

func analyzeURLStructure(url string) float64 {
	score := 100.0
	if len(url) > 60 {
		score -= 20
	}
	if !urlShapePattern.MatchString(url) {
		score -= 30
	}
	if len(strings.Split(url, "/")) > 5 {
		score -= 20
	}
	return clampFloat(score, 0, 100)
}

func imageAltScore(content string) float64 {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return 100
	}

	images := doc.Find("img")
	total := images.Length()
	if total == 0 {
		return 100
	}

	withAlt := 0
	images.Each(func(_ int, s *goquery.Selection) {
		if alt, exists := s.Attr("alt"); exists && alt != "" {
			withAlt++
		}
	})
	return float64(withAlt) / float64(total) * 100
}

func optimizeMetaTags(input ContentInput) MetaOptimization {
	currentTitle := input.MetaTitle
	if currentTitle == "" {
		currentTitle = input.Title
	}
	currentDescription := input.MetaDescription
	keyword := strings.ToLower(input.FocusKeyword)

	title := MetaFieldAnalysis{
		Length:      len(currentTitle),
		Optimal:     len(currentTitle) >= 30 && len(currentTitle) <= 60,
		HasKeyword:  keyword != "" && strings.Contains(strings.ToLower(currentTitle), keyword),
		Suggestions: []string{},
	}
	description := MetaFieldAnalysis{
		Length:      len(currentDescription),
		Optimal:     len(currentDescription) >= 120 && len(currentDescription) <= 160,
		HasKeyword:  keyword != "" && strings.Contains(strings.ToLower(currentDescription), keyword),
		Suggestions: []string{},
	}

	if title.Length < 30 {
		title.Suggestions = append(title.Suggestions, "Title is too short. Add more descriptive words.")
	}
	if title.Length > 60 {
		title.Suggestions = append(title.Suggestions, "Title is too long. Consider shortening to under 60 characters.")
	}
	if keyword != "" && !title.HasKeyword {
		title.Suggestions = append(title.Suggestions, "Include the focus keyword \""+input.FocusKeyword+"\" in the title.")
	}

	if description.Length < 120 {
		description.Suggestions = append(description.Suggestions, "Meta description is too short. Expand to 120-160 characters.")
	}
	if description.Length > 160 {
		description.Suggestions = append(description.Suggestions, "Meta description is too long. Shorten to under 160 characters.")
	}
	if keyword != "" && !description.HasKeyword {
		description.Suggestions = append(description.Suggestions, "Include the focus keyword \""+input.FocusKeyword+"\" in the description.")
	}

	return MetaOptimization{
		Title:                title,
		Description:          description,
		GeneratedTitle:       generateOptimizedTitle(input.Title, input.FocusKeyword),
		GeneratedDescription: generateOptimizedDescription(input.Content, input.FocusKeyword),
	}
}

func generateOptimizedTitle(title, keyword string) string {
	if keyword == "" {
		return title
	}

	if strings.Contains(strings.ToLower(title), strings.ToLower(keyword)) {
		if len(title) <= 60 {
			return title
		}
		return title[:57] + "..."
	}

	optimized := keyword + " - " + title
	if len(optimized) <= 60 {
		return optimized
	}
	combined := keyword + " " + title
	if len(combined) > 57 {
		combined = combined[:57]
	}
	return combined + "..."
}

func generateOptimizedDescription(content, keyword string) string {
	text := seoutils.StripTags(content)
	firstSentence := strings.SplitN(text, ".", 2)[0] + "."

	if keyword == "" {
		if len(firstSentence) <= 160 {
			return firstSentence
		}
		return firstSentence[:157] + "..."
	}

	withKeyword := firstSentence + " Learn about " + keyword + " and best practices."
	if len(withKeyword) <= 160 {
		return withKeyword
	}
	return withKeyword[:157] + "..."
}

// analyzeCompetitors builds a best-effort SERP picture for the focus keyword.
// Any upstream failure yields nil and the caller continues without it.
func (o *Optimizer) analyzeCompetitors(ctx context.Context, keyword, language string) *CompetitorAnalysis {
	rows := o.client.GetSERPData(ctx, []string{keyword}, keywordSource(language))
	if len(rows) == 0 {
		return nil
	}

	analysis := &CompetitorAnalysis{
		TopCompetitors:      make([]Competitor, 0, len(rows)),
		ContentGaps:         []string{},
		OpportunityKeywords: []string{},
	}
	for _, row := range rows {
		analysis.TopCompetitors = append(analysis.TopCompetitors, Competitor{
			Domain:  row.Domain,
			Title:   row.Title,
			URL:     row.URL,
			Ranking: row.Position,
		})
	}
	return analysis
}

func generateRecommendations(content ContentAnalysis, keywords KeywordAnalysis, technical TechnicalSEO, meta MetaOptimization) []Recommendation {
	var recommendations []Recommendation

	if content.WordCount < 300 {
		recommendations = append(recommendations, Recommendation{
			Type:        RecommendationCritical,
			Category:    seoutils.CategoryContent,
			Title:       "Increase Content Length",
			Description: "Content is too short for good SEO performance. Aim for at least 300 words.",
			Impact:      "high",
			Effort:      "medium",
		})
	}

	if !content.HeadingStructure.HasProperHierarchy {
		recommendations = append(recommendations, Recommendation{
			Type:        RecommendationImportant,
			Category:    seoutils.CategoryContent,
			Title:       "Improve Heading Structure",
			Description: "Use proper heading hierarchy with one H1 and multiple H2 subheadings.",
			Impact:      "medium",
			Effort:      "easy",
		})
	}

	if keywords.FocusKeyword != "" {
		if keywords.KeywordDensity < 0.5 {
			recommendations = append(recommendations, Recommendation{
				Type:        RecommendationImportant,
				Category:    seoutils.CategoryKeywords,
				Title:       "Increase Keyword Density",
				Description: "Use \"" + keywords.FocusKeyword + "\" more frequently in your content (aim for 0.5-2.5%).",
				Impact:      "medium",
				Effort:      "easy",
			})
		}
		if !keywords.KeywordPlacement.InTitle {
			recommendations = append(recommendations, Recommendation{
				Type:        RecommendationCritical,
				Category:    seoutils.CategoryKeywords,
				Title:       "Add Keyword to Title",
				Description: "Include \"" + keywords.FocusKeyword + "\" in your title for better SEO.",
				Impact:      "high",
				Effort:      "easy",
			})
		}
	}

	if technical.TitleOptimization < 80 {
		recommendations = append(recommendations, Recommendation{
			Type:        RecommendationImportant,
			Category:    seoutils.CategoryTechnical,
			Title:       "Optimize Title Length",
			Description: "Adjust title length to 30-60 characters for optimal display in search results.",
			Impact:      "medium",
			Effort:      "easy",
		})
	}
	if technical.MetaDescriptionOptimization < 80 {
		recommendations = append(recommendations, Recommendation{
			Type:        RecommendationImportant,
			Category:    seoutils.CategoryMeta,
			Title:       "Optimize Meta Description",
			Description: "Write a compelling meta description of 120-160 characters.",
			Impact:      "medium",
			Effort:      "easy",
		})
	}
	if technical.URLStructure < 80 {
		recommendations = append(recommendations, Recommendation{
			Type:        RecommendationImportant,
			Category:    seoutils.CategoryTechnical,
			Title:       "Improve URL Structure",
			Description: "Use short, lowercase, hyphen-separated URLs with few path segments.",
			Impact:      "medium",
			Effort:      "medium",
		})
	}
	if technical.ImageOptimization < 80 {
		recommendations = append(recommendations, Recommendation{
			Type:        RecommendationImportant,
			Category:    seoutils.CategoryImages,
			Title:       "Add Image Alt Text",
			Description: "Add descriptive alt text to every image for accessibility and SEO.",
			Impact:      "medium",
			Effort:      "easy",
		})
	}

	return recommendations
}

func calculateOverallScore(content ContentAnalysis, keywords KeywordAnalysis, technical TechnicalSEO, meta MetaOptimization) int {
	contentScore := float64(content.ContentQuality)
	keywordScore := calculateKeywordScore(keywords)
	technicalScore := (technical.TitleOptimization + technical.MetaDescriptionOptimization +
		technical.URLStructure + technical.ImageOptimization) / 4
	metaScore := calculateMetaScore(meta)

	overall := contentScore*0.4 + keywordScore*0.3 + technicalScore*0.2 + metaScore*0.1
	return int(math.Round(clampFloat(overall, 0, 100)))
}

func calculateKeywordScore(analysis KeywordAnalysis) float64 {
	if analysis.FocusKeyword == "" {
		return 50
	}

	score := 0.0
	if analysis.KeywordDensity >= 0.5 && analysis.KeywordDensity <= 2.5 {
		score += 30
	}
	if analysis.KeywordPlacement.InTitle {
		score += 25
	}
	if analysis.KeywordPlacement.InMetaDescription {
		score += 15
	}
	if analysis.KeywordPlacement.InH1 {
		score += 20
	}
	if analysis.KeywordPlacement.InFirstParagraph {
		score += 10
	}
	return score
}

func calculateMetaScore(meta MetaOptimization) float64 {
	score := 25.0
	if meta.Title.Optimal {
		score = 50
	}
	if meta.Description.Optimal {
		score += 50
	} else {
		score += 25
	}
	return score
}

func clampFloat(v, low, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
