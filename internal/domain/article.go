package domain

import (
	"context"
	"errors"
	"time"
)

// ErrArticleNotFound is returned by repositories when no article matches.
var ErrArticleNotFound = errors.New("article not found")

// Article is a long-form post authored in markdown. Body holds the raw
// markdown source; rendering happens at read time.
type Article struct {
	ID          int64     `json:"id"`
	Slug        string    `json:"slug" validate:"required,max=200"`
	Title       string    `json:"title" validate:"required,max=300"`
	Summary     string    `json:"summary" validate:"max=500"`
	Body        string    `json:"body" validate:"required"`
	CoverURL    string    `json:"cover_url,omitempty" validate:"omitempty,max=500"`
	Tags        []string  `json:"tags,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RenderedArticle pairs article metadata with its processed HTML body.
type RenderedArticle struct {
	Article
	HTML string `json:"html"`
}

// ArticleRepository defines storage operations for articles
type ArticleRepository interface {
	Upsert(ctx context.Context, article *Article) error
	GetBySlug(ctx context.Context, slug string) (*Article, error)
	Fetch(ctx context.Context, limit, offset int) ([]Article, int64, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

// ArticleUsecase defines the interface for article operations
type ArticleUsecase interface {
	List(ctx context.Context, limit, offset int) ([]Article, int64, error)
	GetRendered(ctx context.Context, slug string) (*RenderedArticle, error)
	Save(ctx context.Context, article *Article) error
	Delete(ctx context.Context, slug string) error
}
