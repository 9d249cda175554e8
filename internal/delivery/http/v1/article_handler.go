package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/apperror"
)

type ArticleHandler struct {
	articleUC domain.ArticleUsecase
}

func NewArticleHandler(public *gin.RouterGroup, articleUC domain.ArticleUsecase) {
	handler := &ArticleHandler{articleUC: articleUC}

	articles := public.Group("/articles")
	{
		articles.GET("", handler.List)
		articles.GET("/:slug", handler.GetBySlug)
	}
}

// List returns article metadata, newest first. Body markdown is included but
// not rendered; the detail endpoint does the rendering.
func (h *ArticleHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	articles, total, err := h.articleUC.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	response.Success(c, http.StatusOK, "OK", gin.H{
		"articles": articles,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetBySlug returns one article with its body rendered to HTML.
func (h *ArticleHandler) GetBySlug(c *gin.Context) {
	rendered, err := h.articleUC.GetRendered(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrArticleNotFound) {
			c.Error(apperror.NotFound("Article not found"))
			return
		}
		c.Error(apperror.Internal(err))
		return
	}
	response.Success(c, http.StatusOK, "OK", rendered)
}
