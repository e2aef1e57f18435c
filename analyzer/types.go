package analyzer

import "github.com/akrin/seo-analyzer/optimizer"

// Page is the extracted state of one fetched page.
type Page struct {
	URL             string `json:"url"`
	Title           string `json:"title"`
	Headline        string `json:"headline"`
	MetaDescription string `json:"metaDescription"`
	CanonicalURL    string `json:"canonicalUrl"`
	Content         string `json:"content"`
}

// ContentInput converts the page into the optimizer's input shape. The page
// title doubles as the meta title; the first H1 becomes the content title
// when present.
func (p *Page) ContentInput() optimizer.ContentInput {
	title := p.Headline
	if title == "" {
		title = p.Title
	}
	return optimizer.ContentInput{
		Title:           title,
		Content:         p.Content,
		MetaTitle:       p.Title,
		MetaDescription: p.MetaDescription,
		URL:             p.URL,
	}
}
