// Package memory backs the article service when no database is configured:
// articles come straight from the content directory and live in process
// memory.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go-portfolio-backend/internal/domain"
)

type articleRepo struct {
	mu       sync.RWMutex
	articles map[string]domain.Article
	nextID   int64
}

func NewArticleRepository() domain.ArticleRepository {
	return &articleRepo{articles: make(map[string]domain.Article), nextID: 1}
}

func (r *articleRepo) Upsert(_ context.Context, article *domain.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := r.articles[article.Slug]; ok {
		article.ID = existing.ID
		article.CreatedAt = existing.CreatedAt
	} else {
		article.ID = r.nextID
		r.nextID++
		article.CreatedAt = now
	}
	article.UpdatedAt = now

	r.articles[article.Slug] = *article
	return nil
}

func (r *articleRepo) GetBySlug(_ context.Context, slug string) (*domain.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	article, ok := r.articles[slug]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	return &article, nil
}

func (r *articleRepo) Fetch(_ context.Context, limit, offset int) ([]domain.Article, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]domain.Article, 0, len(r.articles))
	for _, a := range r.articles {
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].PublishedAt.After(all[j].PublishedAt)
	})

	total := int64(len(all))
	if offset >= len(all) {
		return []domain.Article{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *articleRepo) DeleteBySlug(_ context.Context, slug string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.articles[slug]; !ok {
		return domain.ErrArticleNotFound
	}
	delete(r.articles, slug)
	return nil
}
