package content

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"go-portfolio-backend/internal/domain"
)

// frontMatter is the YAML header of an article content file.
type frontMatter struct {
	Title       string    `yaml:"title"`
	Slug        string    `yaml:"slug"`
	Summary     string    `yaml:"summary"`
	Cover       string    `yaml:"cover"`
	Tags        []string  `yaml:"tags"`
	PublishedAt time.Time `yaml:"published_at"`
}

const frontMatterDelimiter = "---"

// LoadArticles reads every markdown file under dir/articles (recursively)
// and returns the parsed articles. The slug defaults to the file name when
// the front matter omits one.
func LoadArticles(dir string) ([]domain.Article, error) {
	pattern := filepath.Join(dir, "articles", "**", "*.md")
	paths, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob content files: %w", err)
	}

	articles := make([]domain.Article, 0, len(paths))
	for _, path := range paths {
		article, err := loadArticleFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		articles = append(articles, *article)
	}
	return articles, nil
}

func loadArticleFile(path string) (*domain.Article, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	fm, body, err := splitFrontMatter(string(raw))
	if err != nil {
		return nil, err
	}

	var meta frontMatter
	if err := yaml.Unmarshal([]byte(fm), &meta); err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}
	if meta.Title == "" {
		return nil, fmt.Errorf("front matter missing title")
	}

	slug := meta.Slug
	if slug == "" {
		slug = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	publishedAt := meta.PublishedAt
	if publishedAt.IsZero() {
		publishedAt = time.Now().UTC()
	}

	return &domain.Article{
		Slug:        slug,
		Title:       meta.Title,
		Summary:     meta.Summary,
		Body:        strings.TrimSpace(body),
		CoverURL:    meta.Cover,
		Tags:        meta.Tags,
		PublishedAt: publishedAt,
	}, nil
}

// splitFrontMatter separates the leading YAML block (delimited by ---) from
// the markdown body. A file without front matter is an error: every article
// needs at least a title.
func splitFrontMatter(raw string) (string, string, error) {
	trimmed := strings.TrimLeft(raw, "\ufeff\n\r")
	if !strings.HasPrefix(trimmed, frontMatterDelimiter) {
		return "", "", fmt.Errorf("missing front matter block")
	}

	rest := strings.TrimPrefix(trimmed, frontMatterDelimiter)
	rest = strings.TrimPrefix(rest, "\r\n")
	rest = strings.TrimPrefix(rest, "\n")

	idx := strings.Index(rest, "\n"+frontMatterDelimiter)
	if idx < 0 {
		return "", "", fmt.Errorf("unterminated front matter block")
	}

	fm := rest[:idx]
	body := rest[idx+len("\n"+frontMatterDelimiter):]
	// Drop the delimiter's own line ending.
	body = strings.TrimPrefix(body, "\r\n")
	body = strings.TrimPrefix(body, "\n")
	return fm, body, nil
}
