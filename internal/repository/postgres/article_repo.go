package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"go-portfolio-backend/internal/domain"
)

type articleRepo struct {
	db *pgxpool.Pool
}

func NewArticleRepository(db *pgxpool.Pool) domain.ArticleRepository {
	return &articleRepo{db: db}
}

func (r *articleRepo) Upsert(ctx context.Context, article *domain.Article) error {
	now := time.Now().UTC()
	query := `INSERT INTO articles (slug, title, summary, body, cover_url, tags, published_at, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
              ON CONFLICT (slug) DO UPDATE SET
                  title = EXCLUDED.title, summary = EXCLUDED.summary, body = EXCLUDED.body,
                  cover_url = EXCLUDED.cover_url, tags = EXCLUDED.tags,
                  published_at = EXCLUDED.published_at, updated_at = EXCLUDED.updated_at
              RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		article.Slug, article.Title, article.Summary, article.Body, article.CoverURL,
		pq.Array(article.Tags), article.PublishedAt, now,
	).Scan(&article.ID, &article.CreatedAt)
}

func (r *articleRepo) GetBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	query := `SELECT id, slug, title, summary, body, cover_url, tags, published_at, created_at, updated_at
              FROM articles WHERE slug = $1`
	var a domain.Article
	err := r.db.QueryRow(ctx, query, slug).Scan(
		&a.ID, &a.Slug, &a.Title, &a.Summary, &a.Body, &a.CoverURL,
		pq.Array(&a.Tags), &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrArticleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *articleRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Article, int64, error) {
	query := `SELECT id, slug, title, summary, body, cover_url, tags, published_at, created_at, updated_at
              FROM articles ORDER BY published_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	articles := make([]domain.Article, 0, limit)
	for rows.Next() {
		var a domain.Article
		if err := rows.Scan(
			&a.ID, &a.Slug, &a.Title, &a.Summary, &a.Body, &a.CoverURL,
			pq.Array(&a.Tags), &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM articles`).Scan(&total); err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

func (r *articleRepo) DeleteBySlug(ctx context.Context, slug string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM articles WHERE slug = $1`, slug)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}
