package seranking

// BacklinksSummary holds the normalized backlink counters for a domain.
// A zero value is the documented fallback when the upstream call fails.
type BacklinksSummary struct {
	TotalBacklinks    int `json:"totalBacklinks"`
	ReferringDomains  int `json:"referringDomains"`
	DofollowBacklinks int `json:"dofollowBacklinks"`
	NofollowBacklinks int `json:"nofollowBacklinks"`
}

// DomainAnalysis aggregates domain-level metrics. OrganicKeywords,
// OrganicTraffic, PaidKeywords, PaidTraffic and DomainRank are always zero:
// they are not available on the current upstream plan, and fabricating values
// here would misrepresent the data source.
type DomainAnalysis struct {
	Domain           string `json:"domain"`
	Backlinks        int    `json:"backlinks"`
	ReferringDomains int    `json:"referringDomains"`
	OrganicKeywords  int    `json:"organicKeywords"`
	OrganicTraffic   int    `json:"organicTraffic"`
	PaidKeywords     int    `json:"paidKeywords"`
	PaidTraffic      int    `json:"paidTraffic"`
	DomainRank       int    `json:"domainRank"`
}

// WebsiteAudit describes the outcome of a website audit. The current upstream
// plan exposes no real audit endpoint, so scores are synthesized from backlink
// data and flagged with Estimated=true. Treat them as a health heuristic,
// never as an authoritative crawl result.
type WebsiteAudit struct {
	ID            int64  `json:"id"`
	Domain        string `json:"domain"`
	Status        string `json:"status"`
	Score         int    `json:"score"`
	TotalErrors   int    `json:"totalErrors"`
	TotalWarnings int    `json:"totalWarnings"`
	TotalPassed   int    `json:"totalPassed"`
	Estimated     bool   `json:"estimated"`
	LastUpdated   string `json:"lastUpdated"`
}

// KeywordData is one row of keyword research results.
type KeywordData struct {
	Keyword      string  `json:"keyword"`
	Position     int     `json:"position"`
	SearchVolume int     `json:"searchVolume"`
	Difficulty   int     `json:"difficulty"`
	CPC          float64 `json:"cpc"`
	Competition  string  `json:"competition"`
}

// SERPResult is one organic search result row for a keyword.
type SERPResult struct {
	Keyword  string `json:"keyword"`
	Position int    `json:"position"`
	URL      string `json:"url"`
	Domain   string `json:"domain"`
	Title    string `json:"title"`
}

// TrackingResult reports on keyword tracking registration.
type TrackingResult struct {
	Success     bool    `json:"success"`
	TrackingIDs []int64 `json:"trackingIds"`
}

// TrackedKeyword is a keyword position history entry.
type TrackedKeyword struct {
	ID               int64  `json:"id"`
	Keyword          string `json:"keyword"`
	CurrentPosition  int    `json:"currentPosition"`
	PreviousPosition int    `json:"previousPosition"`
	BestPosition     int    `json:"bestPosition"`
	WorstPosition    int    `json:"worstPosition"`
	AveragePosition  int    `json:"averagePosition"`
	SearchVolume     int    `json:"searchVolume"`
	Difficulty       int    `json:"difficulty"`
	URL              string `json:"url"`
	LastUpdated      string `json:"lastUpdated"`
	Trend            string `json:"trend"`
	ChangeValue      int    `json:"changeValue"`
}

// CompetitorProfile summarizes a competing domain for a tracked site.
type CompetitorProfile struct {
	Domain           string `json:"domain"`
	CommonKeywords   int    `json:"commonKeywords"`
	AveragePosition  int    `json:"averagePosition"`
	OrganicTraffic   int    `json:"organicTraffic"`
	Backlinks        int    `json:"backlinks"`
	DomainRank       int    `json:"domainRank"`
	CompetitionLevel string `json:"competitionLevel"`
}

// CommonKeyword is a keyword shared between two domains.
type CommonKeyword struct {
	Keyword  string `json:"keyword"`
	Position int    `json:"position"`
	Volume   int    `json:"volume"`
}

// DomainReport is the client-side SEO report assembled from audit and
// backlink data for a single domain.
type DomainReport struct {
	ID              int64              `json:"id"`
	Domain          string             `json:"domain"`
	GeneratedAt     string             `json:"generatedAt"`
	OverallScore    int                `json:"overallScore"`
	Issues          DomainReportIssues `json:"issues"`
	Sections        DomainReportScores `json:"sections"`
	Estimated       bool               `json:"estimated"`
	Recommendations []string           `json:"recommendations"`
}

type DomainReportIssues struct {
	Critical int `json:"critical"`
	Warnings int `json:"warnings"`
	Notices  int `json:"notices"`
}

type DomainReportScores struct {
	Technical int `json:"technical"`
	Content   int `json:"content"`
	Links     int `json:"links"`
	Social    int `json:"social"`
}

// AccountStatus is the passthrough payload of the subscription endpoint.
type AccountStatus map[string]interface{}
