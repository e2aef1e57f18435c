package report

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BlogPost is one content record supplied by the content store. The report
// generator treats these as already-validated input and never fetches or
// parses content itself.
type BlogPost struct {
	Slug            string   `yaml:"slug" json:"slug"`
	Title           string   `yaml:"title" json:"title"`
	Content         string   `yaml:"content" json:"content"`
	Category        string   `yaml:"category" json:"category"`
	Tags            []string `yaml:"tags" json:"tags"`
	MetaDescription string   `yaml:"metaDescription,omitempty" json:"metaDescription,omitempty"`
}

// LoadBlogPosts reads blog post records from a YAML file holding a list of
// posts.
func LoadBlogPosts(path string) ([]BlogPost, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read blog posts: %w", err)
	}

	var posts []BlogPost
	if err := yaml.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("parse blog posts: %w", err)
	}
	return posts, nil
}
