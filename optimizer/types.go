package optimizer

// Languages the optimizer understands. When Language is left empty on the
// input it is detected from the content body.
const (
	LanguageEN = "EN"
	LanguageJA = "JA"
)

// ContentInput is one unit of content to analyze. Ephemeral: built per call,
// never stored.
type ContentInput struct {
	Title           string `json:"title"`
	Content         string `json:"content"`
	MetaTitle       string `json:"metaTitle,omitempty"`
	MetaDescription string `json:"metaDescription,omitempty"`
	FocusKeyword    string `json:"focusKeyword,omitempty"`
	URL             string `json:"url,omitempty"`
	Language        string `json:"language,omitempty"`
}

// Result is the full multi-factor analysis of one content unit.
type Result struct {
	OverallScore       int                 `json:"overallScore"`
	ContentAnalysis    ContentAnalysis     `json:"contentAnalysis"`
	KeywordAnalysis    KeywordAnalysis     `json:"keywordAnalysis"`
	TechnicalSEO       TechnicalSEO        `json:"technicalSEO"`
	CompetitorAnalysis *CompetitorAnalysis `json:"competitorAnalysis,omitempty"`
	Recommendations    []Recommendation    `json:"recommendations"`
	MetaOptimization   MetaOptimization    `json:"metaOptimization"`
}

// ContentAnalysis covers structure and quality of the body text.
type ContentAnalysis struct {
	WordCount        int              `json:"wordCount"`
	ReadabilityScore float64          `json:"readabilityScore"`
	HeadingStructure HeadingStructure `json:"headingStructure"`
	ContentQuality   int              `json:"contentQuality"`
	DuplicateContent bool             `json:"duplicateContent"`
	InternalLinks    int              `json:"internalLinks"`
	ExternalLinks    int              `json:"externalLinks"`
}

// HeadingStructure counts headings and records hierarchy health.
type HeadingStructure struct {
	H1Count            int  `json:"h1Count"`
	H2Count            int  `json:"h2Count"`
	H3Count            int  `json:"h3Count"`
	H4Count            int  `json:"h4Count"`
	HasProperHierarchy bool `json:"hasProperHierarchy"`
	KeywordInHeadings  bool `json:"keywordInHeadings"`
}

// KeywordAnalysis covers focus-keyword usage. Difficulty, volume and
// competition are optional live enrichments and stay nil when the external
// client has nothing to offer.
type KeywordAnalysis struct {
	FocusKeyword      string           `json:"focusKeyword,omitempty"`
	KeywordDensity    float64          `json:"keywordDensity"`
	KeywordPlacement  KeywordPlacement `json:"keywordPlacement"`
	RelatedKeywords   []string         `json:"relatedKeywords"`
	KeywordDifficulty *int             `json:"keywordDifficulty,omitempty"`
	SearchVolume      *int             `json:"searchVolume,omitempty"`
	CompetitionLevel  string           `json:"competitionLevel,omitempty"`
}

// KeywordPlacement records where the focus keyword appears.
type KeywordPlacement struct {
	InTitle           bool `json:"inTitle"`
	InMetaDescription bool `json:"inMetaDescription"`
	InH1              bool `json:"inH1"`
	InH2              bool `json:"inH2"`
	InFirstParagraph  bool `json:"inFirstParagraph"`
	InLastParagraph   bool `json:"inLastParagraph"`
}

// TechnicalSEO scores the technical elements of the page, each in [0,100].
type TechnicalSEO struct {
	TitleOptimization           float64 `json:"titleOptimization"`
	MetaDescriptionOptimization float64 `json:"metaDescriptionOptimization"`
	URLStructure                float64 `json:"urlStructure"`
	ImageOptimization           float64 `json:"imageOptimization"`
	SchemaMarkup                bool    `json:"schemaMarkup"`
}

// CompetitorAnalysis is the best-effort SERP-based competitive picture for a
// focus keyword.
type CompetitorAnalysis struct {
	TopCompetitors      []Competitor `json:"topCompetitors"`
	ContentGaps         []string     `json:"contentGaps"`
	OpportunityKeywords []string     `json:"opportunityKeywords"`
}

// Competitor is one ranking page for the focus keyword.
type Competitor struct {
	Domain  string `json:"domain"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Ranking int    `json:"ranking"`
}

// Recommendation types and impact/effort levels.
const (
	RecommendationCritical   = "critical"
	RecommendationImportant  = "important"
	RecommendationSuggestion = "suggestion"
)

// Recommendation is one deterministic rule outcome. Rules are independent:
// no rule suppresses another.
type Recommendation struct {
	Type        string `json:"type"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
	Effort      string `json:"effort"`
}

// MetaOptimization reports on current meta tags and suggests generated
// replacements when the focus keyword is missing from them.
type MetaOptimization struct {
	Title                MetaFieldAnalysis `json:"title"`
	Description          MetaFieldAnalysis `json:"description"`
	GeneratedTitle       string            `json:"generatedTitle,omitempty"`
	GeneratedDescription string            `json:"generatedDescription,omitempty"`
}

// MetaFieldAnalysis describes one meta tag's current state.
type MetaFieldAnalysis struct {
	Length      int      `json:"length"`
	Optimal     bool     `json:"optimal"`
	HasKeyword  bool     `json:"hasKeyword"`
	Suggestions []string `json:"suggestions"`
}
