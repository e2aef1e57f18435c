// Package siteconfig holds the declarative SEO registry: one entry per
// marketing page with its intended title, description, keywords and crawl
// hints, plus the grouped keyword lists shared across the site. The registry
// is immutable after load and passed explicitly to consumers, never accessed
// as an ambient singleton.
package siteconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/akrin/seo-analyzer/seoutils"
)

// Page types.
const (
	TypeHomepage = "homepage"
	TypeService  = "service"
	TypeAbout    = "about"
	TypeContact  = "contact"
	TypeBlog     = "blog"
	TypeOther    = "other"
)

// PageConfig is the intended SEO state of one page. Defined once at load
// time and never mutated.
type PageConfig struct {
	Path               string   `yaml:"path" json:"path"`
	Title              string   `yaml:"title" json:"title"`
	Description        string   `yaml:"description" json:"description"`
	Keywords           []string `yaml:"keywords" json:"keywords"`
	Type               string   `yaml:"type" json:"type"`
	Priority           float64  `yaml:"priority" json:"priority"`
	ChangeFrequency    string   `yaml:"changeFrequency" json:"changeFrequency"`
	StructuredDataType string   `yaml:"structuredDataType,omitempty" json:"structuredDataType,omitempty"`
}

// SiteConfig is the full registry plus the shared keyword groups.
type SiteConfig struct {
	BaseURL            string       `yaml:"baseUrl" json:"baseUrl"`
	Pages              []PageConfig `yaml:"pages" json:"pages"`
	GlobalKeywords     []string     `yaml:"globalKeywords" json:"globalKeywords"`
	BrandKeywords      []string     `yaml:"brandKeywords" json:"brandKeywords"`
	LocationKeywords   []string     `yaml:"locationKeywords" json:"locationKeywords"`
	IndustryKeywords   []string     `yaml:"industryKeywords" json:"industryKeywords"`
	CompetitorKeywords []string     `yaml:"competitorKeywords" json:"competitorKeywords"`
}

// Load reads a registry from a YAML file. Fields absent from the file fall
// back to the built-in defaults so a partial override file stays valid.
func Load(path string) (*SiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read site config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse site config: %w", err)
	}
	return cfg, nil
}

// Default returns the built-in AKRIN registry.
func Default() *SiteConfig {
	return &SiteConfig{
		BaseURL: "https://akrin.jp",
		Pages: []PageConfig{
			{
				Path:               "/",
				Title:              "AKRIN - Leading IT Solutions Provider in Japan | Managed Services & Support",
				Description:        "Transform your business with AKRIN's comprehensive IT solutions. We offer managed services, cybersecurity, cloud migration, and 24/7 support for businesses in Japan and globally.",
				Keywords:           []string{"IT solutions Japan", "managed IT services Tokyo", "cybersecurity Japan", "cloud migration services", "IT support Tokyo"},
				Type:               TypeHomepage,
				Priority:           1.0,
				ChangeFrequency:    "weekly",
				StructuredDataType: "Organization",
			},
			{
				Path:               "/about",
				Title:              "About AKRIN - Your Trusted IT Partner Since Establishment",
				Description:        "Learn about AKRIN's mission, values, and commitment to delivering exceptional IT solutions. We combine Japanese precision with global innovation to transform businesses.",
				Keywords:           []string{"about AKRIN", "IT company Japan", "Tokyo IT services", "Japanese technology company"},
				Type:               TypeAbout,
				Priority:           0.8,
				ChangeFrequency:    "monthly",
				StructuredDataType: "AboutPage",
			},
			{
				Path:               "/services",
				Title:              "IT Services - Comprehensive Technology Solutions | AKRIN",
				Description:        "Explore our full range of IT services including managed IT, cybersecurity, cloud solutions, consulting, and 24/7 support. Professional technology solutions for businesses in Japan.",
				Keywords:           []string{"IT services Japan", "managed IT services", "cybersecurity solutions", "cloud services"},
				Type:               TypeService,
				Priority:           0.9,
				ChangeFrequency:    "monthly",
				StructuredDataType: "Service",
			},
			{
				Path:               "/services/it-managed-services",
				Title:              "Managed IT Services & 24/7 Support | AKRIN Japan MSP",
				Description:        "Proactive monitoring, unlimited helpdesk, and on-site support. Cut IT costs 30-50% and hit 99.9% uptime with AKRIN, Japan's trusted MSP.",
				Keywords:           []string{"managed IT services Japan", "24/7 IT support", "MSP Japan", "IT monitoring", "helpdesk support"},
				Type:               TypeService,
				Priority:           0.8,
				ChangeFrequency:    "monthly",
				StructuredDataType: "Service",
			},
			{
				Path:               "/services/it-consulting-project-management",
				Title:              "IT Consulting & Project Management | AKRIN Japan",
				Description:        "Strategy, PMO, and delivery for complex IT initiatives. AKRIN plans, budgets, and executes technology projects in Japan with zero day downtime.",
				Keywords:           []string{"IT consulting Japan", "project management", "PMO services", "IT strategy", "technology consulting"},
				Type:               TypeService,
				Priority:           0.8,
				ChangeFrequency:    "monthly",
				StructuredDataType: "Service",
			},
			{
				Path:               "/contact",
				Title:              "Contact AKRIN - Get Expert IT Solutions Today",
				Description:        "Contact AKRIN for professional IT solutions and support. Get a free consultation and discover how we can transform your business technology infrastructure.",
				Keywords:           []string{"contact AKRIN", "IT consultation Japan", "get IT support", "business technology help"},
				Type:               TypeContact,
				Priority:           0.7,
				ChangeFrequency:    "monthly",
				StructuredDataType: "ContactPage",
			},
			{
				Path:               "/blog",
				Title:              "AKRIN Blog - IT Insights & Technology Trends",
				Description:        "Discover insightful resources and expert advice from our seasoned team. Read about cybersecurity, cloud solutions, IT infrastructure, and digital transformation.",
				Keywords:           []string{"IT blog Japan", "technology insights", "cybersecurity tips", "cloud computing news"},
				Type:               TypeBlog,
				Priority:           0.9,
				ChangeFrequency:    "daily",
				StructuredDataType: "Blog",
			},
		},
		GlobalKeywords: []string{
			"AKRIN", "IT solutions", "technology services", "business IT",
			"enterprise solutions", "digital transformation", "IT consulting",
			"technology consulting",
		},
		BrandKeywords: []string{
			"AKRIN", "AKRIN Technologies", "AKRIN IT", "AKRIN Japan", "AKRIN solutions",
		},
		LocationKeywords: []string{
			"Japan", "Tokyo", "Japanese", "Asia Pacific", "international business Japan",
		},
		IndustryKeywords: []string{
			"information technology", "IT services", "managed services",
			"cybersecurity", "cloud computing", "IT infrastructure",
			"network security", "data protection", "business continuity", "IT support",
		},
		CompetitorKeywords: []string{
			"IT provider Japan", "managed IT services Tokyo", "enterprise IT solutions",
			"business technology partner", "IT outsourcing Japan",
		},
	}
}

// FindPage returns the registered config for a path, or nil when the path is
// unknown.
func (c *SiteConfig) FindPage(path string) *PageConfig {
	for i := range c.Pages {
		if c.Pages[i].Path == path {
			return &c.Pages[i]
		}
	}
	return nil
}

const (
	fallbackTitle       = "AKRIN - IT Solutions & Services"
	fallbackDescription = "Professional IT solutions and services from AKRIN."
)

// GenerateMetadata builds the full SEO metadata for a page. Unknown paths
// get the generic fallback rather than an error. Custom values override the
// registered ones.
func (c *SiteConfig) GenerateMetadata(path, customTitle, customDescription string, customKeywords []string) seoutils.Metadata {
	pageURL := c.BaseURL + path
	ogImage := c.BaseURL + "/og-image.png"

	page := c.FindPage(path)
	if page == nil {
		title := customTitle
		if title == "" {
			title = fallbackTitle
		}
		description := customDescription
		if description == "" {
			description = fallbackDescription
		}
		keywords := customKeywords
		if keywords == nil {
			keywords = c.GlobalKeywords
		}
		return seoutils.Metadata{
			Title:              title,
			Description:        description,
			Keywords:           keywords,
			CanonicalURL:       pageURL,
			OGTitle:            title,
			OGDescription:      description,
			OGImage:            ogImage,
			TwitterTitle:       title,
			TwitterDescription: description,
			TwitterImage:       ogImage,
			StructuredData:     c.structuredData("WebPage", title, description, pageURL),
		}
	}

	title := customTitle
	if title == "" {
		title = page.Title
	}
	description := customDescription
	if description == "" {
		description = page.Description
	}
	keywords := customKeywords
	if keywords == nil {
		keywords = make([]string, 0, len(page.Keywords)+len(c.GlobalKeywords)+len(c.BrandKeywords))
		keywords = append(keywords, page.Keywords...)
		keywords = append(keywords, c.GlobalKeywords...)
		keywords = append(keywords, c.BrandKeywords...)
	}

	structuredType := page.StructuredDataType
	if structuredType == "" {
		structuredType = "WebPage"
	}

	return seoutils.Metadata{
		Title:              title,
		Description:        description,
		Keywords:           keywords,
		CanonicalURL:       pageURL,
		OGTitle:            title,
		OGDescription:      description,
		OGImage:            ogImage,
		TwitterTitle:       title,
		TwitterDescription: description,
		TwitterImage:       ogImage,
		StructuredData:     c.structuredData(structuredType, title, description, pageURL),
	}
}

func (c *SiteConfig) structuredData(schemaType, title, description, url string) map[string]interface{} {
	organization := map[string]interface{}{
		"@type": "Organization",
		"name":  "AKRIN",
		"url":   c.BaseURL,
	}

	base := map[string]interface{}{
		"@context":    "https://schema.org",
		"name":        title,
		"description": description,
		"url":         url,
	}

	switch schemaType {
	case "Organization":
		base["@type"] = "Organization"
		base["logo"] = c.BaseURL + "/akrin-logo.svg"
		base["address"] = map[string]interface{}{
			"@type":          "PostalAddress",
			"addressCountry": "JP",
			"addressRegion":  "Tokyo",
		}
		base["contactPoint"] = map[string]interface{}{
			"@type":       "ContactPoint",
			"contactType": "customer service",
		}
		base["sameAs"] = []string{
			"https://www.linkedin.com/company/akrin",
			"https://twitter.com/AKRIN_JP",
		}
	case "Service":
		base["@type"] = "Service"
		base["provider"] = organization
		base["areaServed"] = map[string]interface{}{
			"@type": "Country",
			"name":  "Japan",
		}
		base["serviceType"] = "IT Services"
	case "ContactPage":
		base["@type"] = "ContactPage"
		base["mainEntity"] = organization
	case "AboutPage":
		base["@type"] = "AboutPage"
		base["mainEntity"] = organization
	default:
		base["@type"] = "WebPage"
		base["publisher"] = organization
	}

	return base
}

var generalRecommendations = []string{
	"Ensure page loads in under 3 seconds",
	"Optimize images with proper alt text and compression",
	"Use proper heading hierarchy (H1 -> H2 -> H3)",
	"Include internal links to related pages",
	"Ensure mobile responsiveness",
	"Add structured data markup",
	"Optimize meta title and description",
	"Use semantic HTML elements",
}

var typeRecommendations = map[string][]string{
	TypeHomepage: {
		"Include primary keywords in the first 100 words",
		"Add clear value proposition above the fold",
		"Include customer testimonials or trust signals",
		"Optimize for local SEO with location information",
	},
	TypeService: {
		"Include service-specific keywords naturally",
		"Add customer case studies or success stories",
		"Include clear call-to-action buttons",
		"Add FAQ section for common questions",
	},
	TypeBlog: {
		"Use long-tail keywords in content",
		"Include related blog post links",
		"Add social sharing buttons",
		"Optimize for featured snippets",
	},
	TypeContact: {
		"Include complete contact information",
		"Add location map if applicable",
		"Include business hours",
		"Add contact form with proper labels",
	},
}

// PageRecommendations returns general best-practice items plus the extras
// specific to the page's type. Unknown paths get the general list only.
func (c *SiteConfig) PageRecommendations(path string) []string {
	page := c.FindPage(path)
	if page == nil {
		return append([]string{}, generalRecommendations...)
	}

	specific := typeRecommendations[page.Type]
	out := make([]string, 0, len(specific)+len(generalRecommendations))
	out = append(out, specific...)
	out = append(out, generalRecommendations...)
	return out
}

// PagePerformance is the lightweight registry-level score for one path.
type PagePerformance struct {
	Score           int      `json:"score"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

// AnalyzePagePerformance scores a path against the registry: unknown paths,
// out-of-range title/description lengths and thin keyword sets each deduct
// from a base of 100.
func (c *SiteConfig) AnalyzePagePerformance(path string) PagePerformance {
	score := 100
	issues := []string{}

	page := c.FindPage(path)
	if page == nil {
		issues = append(issues, "Page not found in SEO configuration")
		score -= 20
	} else {
		if len(page.Title) > 60 {
			issues = append(issues, "Title is too long (over 60 characters)")
			score -= 10
		}
		if len(page.Description) > 160 {
			issues = append(issues, "Meta description is too long (over 160 characters)")
			score -= 10
		}
		if len(page.Description) < 120 {
			issues = append(issues, "Meta description is too short (under 120 characters)")
			score -= 10
		}
		if len(page.Keywords) < 3 {
			issues = append(issues, "Not enough target keywords defined")
			score -= 5
		}
	}

	if score < 0 {
		score = 0
	}

	return PagePerformance{
		Score:           score,
		Issues:          issues,
		Recommendations: c.PageRecommendations(path),
	}
}
