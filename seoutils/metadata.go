package seoutils

import (
	"strings"
	"time"
)

// Metadata is the full set of SEO tags for one page or post: canonical URL,
// Open Graph and Twitter fields plus a JSON-LD structured data block.
type Metadata struct {
	Title              string                 `json:"title"`
	Description        string                 `json:"description"`
	Keywords           []string               `json:"keywords"`
	CanonicalURL       string                 `json:"canonicalUrl"`
	OGTitle            string                 `json:"ogTitle,omitempty"`
	OGDescription      string                 `json:"ogDescription,omitempty"`
	OGImage            string                 `json:"ogImage,omitempty"`
	TwitterTitle       string                 `json:"twitterTitle,omitempty"`
	TwitterDescription string                 `json:"twitterDescription,omitempty"`
	TwitterImage       string                 `json:"twitterImage,omitempty"`
	StructuredData     map[string]interface{} `json:"structuredData,omitempty"`
}

// GenerateBlogMetadata builds the metadata set for a blog post, including a
// BlogPosting JSON-LD block. Keywords merge the post's tags and category with
// the standing brand terms.
func GenerateBlogMetadata(title, content, slug, category string, tags []string, baseURL, customMetaDescription string) Metadata {
	description := customMetaDescription
	if description == "" {
		description = GenerateMetaDescription(content, DefaultMetaDescriptionLength)
	}

	canonicalURL := baseURL + "/blog/" + slug
	ogImage := baseURL + "/blog-images/" + slug + "-og.png"

	keywords := make([]string, 0, len(tags)+5)
	keywords = append(keywords, tags...)
	if category != "" {
		keywords = append(keywords, category)
	}
	keywords = append(keywords, "AKRIN", "IT Solutions", "Technology", "Japan")

	return Metadata{
		Title:              title + " | AKRIN Blog",
		Description:        description,
		Keywords:           keywords,
		CanonicalURL:       canonicalURL,
		OGTitle:            title,
		OGDescription:      description,
		OGImage:            ogImage,
		TwitterTitle:       title,
		TwitterDescription: description,
		TwitterImage:       ogImage,
		StructuredData:     blogPostingStructuredData(title, description, canonicalURL, category, tags),
	}
}

func blogPostingStructuredData(title, description, url, category string, tags []string) map[string]interface{} {
	now := time.Now().UTC().Format(time.RFC3339)
	organization := map[string]interface{}{
		"@type": "Organization",
		"name":  "AKRIN",
		"url":   "https://akrin.jp",
	}
	publisher := map[string]interface{}{
		"@type": "Organization",
		"name":  "AKRIN",
		"url":   "https://akrin.jp",
		"logo": map[string]interface{}{
			"@type": "ImageObject",
			"url":   "https://akrin.jp/akrin-logo.svg",
		},
	}

	return map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      title,
		"description":   description,
		"url":           url,
		"datePublished": now,
		"dateModified":  now,
		"author":        organization,
		"publisher":     publisher,
		"mainEntityOfPage": map[string]interface{}{
			"@type": "WebPage",
			"@id":   url,
		},
		"articleSection": category,
		"keywords":       strings.Join(tags, ", "),
	}
}
