package usecase

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"go-portfolio-backend/internal/content"
	"go-portfolio-backend/internal/domain"
)

// Renderer is the content pipeline slice the article usecase needs.
type Renderer interface {
	Render(source string) string
}

type articleUsecase struct {
	repo     domain.ArticleRepository
	renderer Renderer
	validate *validator.Validate
}

// NewArticleUsecase creates a new article usecase
func NewArticleUsecase(repo domain.ArticleRepository, renderer Renderer, validate *validator.Validate) domain.ArticleUsecase {
	return &articleUsecase{repo: repo, renderer: renderer, validate: validate}
}

func (uc *articleUsecase) List(ctx context.Context, limit, offset int) ([]domain.Article, int64, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repo.Fetch(ctx, limit, offset)
}

// GetRendered loads an article and runs its body through the content
// pipeline. Rendering never fails; a pipeline error degrades to the raw
// body inside the pipeline itself.
func (uc *articleUsecase) GetRendered(ctx context.Context, slug string) (*domain.RenderedArticle, error) {
	article, err := uc.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return &domain.RenderedArticle{
		Article: *article,
		HTML:    uc.renderer.Render(article.Body),
	}, nil
}

func (uc *articleUsecase) Save(ctx context.Context, article *domain.Article) error {
	if err := uc.validate.Struct(article); err != nil {
		return err
	}
	if err := uc.repo.Upsert(ctx, article); err != nil {
		return fmt.Errorf("save article: %w", err)
	}
	return nil
}

func (uc *articleUsecase) Delete(ctx context.Context, slug string) error {
	return uc.repo.DeleteBySlug(ctx, slug)
}

// SyncContent loads every article file under dir into the repository. Used
// at startup so the content directory stays the source of truth.
func SyncContent(ctx context.Context, dir string, repo domain.ArticleRepository) (int, error) {
	articles, err := content.LoadArticles(dir)
	if err != nil {
		return 0, err
	}
	for i := range articles {
		if err := repo.Upsert(ctx, &articles[i]); err != nil {
			return i, fmt.Errorf("sync %s: %w", articles[i].Slug, err)
		}
	}
	return len(articles), nil
}
