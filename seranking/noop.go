package seranking

import (
	"context"
	"time"
)

// NoopClient is the disabled integration: every method returns its documented
// empty shape without touching the network. Selected by NewFromEnv when no
// API key is configured.
type NoopClient struct{}

var _ Client = (*NoopClient)(nil)

func (n *NoopClient) TestConnection(ctx context.Context) AccountStatus {
	return nil
}

func (n *NoopClient) GetBacklinksSummary(ctx context.Context, domain string) BacklinksSummary {
	return BacklinksSummary{}
}

func (n *NoopClient) GetDomainAnalysis(ctx context.Context, domain, source string) DomainAnalysis {
	return DomainAnalysis{Domain: domain}
}

func (n *NoopClient) CreateWebsiteAudit(ctx context.Context, domain string) int64 {
	return time.Now().Unix()
}

func (n *NoopClient) GetAuditStatus(ctx context.Context, auditID int64, domain string) WebsiteAudit {
	if domain == "" {
		domain = "unknown"
	}
	// Mirrors the zero-backlinks heuristic of the real client.
	return WebsiteAudit{
		ID:            auditID,
		Domain:        domain,
		Status:        "finished",
		Score:         50,
		TotalErrors:   10,
		TotalWarnings: 15,
		TotalPassed:   20,
		Estimated:     true,
		LastUpdated:   time.Now().UTC().Format(time.RFC3339),
	}
}

func (n *NoopClient) GetAuditReport(ctx context.Context, auditID int64) WebsiteAudit {
	return WebsiteAudit{
		ID:          auditID,
		Domain:      "unknown",
		Status:      "expired",
		Estimated:   true,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}
}

func (n *NoopClient) GetKeywordResearch(ctx context.Context, keywords []string, source string) []KeywordData {
	return nil
}

func (n *NoopClient) GetSERPData(ctx context.Context, keywords []string, source string) []SERPResult {
	return nil
}

func (n *NoopClient) AddKeywordTracking(ctx context.Context, domain string, keywords []string, source string) TrackingResult {
	return TrackingResult{}
}

func (n *NoopClient) GetKeywordTracking(ctx context.Context, domain string, limit int) []TrackedKeyword {
	return nil
}

func (n *NoopClient) GetCompetitorAnalysis(ctx context.Context, domain string, competitors []string, source string) []CompetitorProfile {
	profiles := make([]CompetitorProfile, 0, len(competitors))
	for _, competitor := range competitors {
		profiles = append(profiles, CompetitorProfile{Domain: competitor, CompetitionLevel: "low"})
	}
	return profiles
}

func (n *NoopClient) GetCommonKeywords(ctx context.Context, domain1, domain2, source string) []CommonKeyword {
	return nil
}

func (n *NoopClient) GenerateSEOReport(ctx context.Context, domain string) DomainReport {
	audit := n.GetAuditStatus(ctx, time.Now().Unix(), domain)
	return DomainReport{
		ID:           audit.ID,
		Domain:       audit.Domain,
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		OverallScore: audit.Score,
		Issues: DomainReportIssues{
			Critical: audit.TotalErrors,
			Warnings: audit.TotalWarnings,
			Notices:  audit.TotalPassed,
		},
		Sections: DomainReportScores{
			Technical: maxInt(60, audit.Score-10),
			Content:   maxInt(70, audit.Score-5),
			Links:     20,
			Social:    maxInt(50, audit.Score-20),
		},
		Estimated:       true,
		Recommendations: auditRecommendations(audit),
	}
}
