package v1

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/apperror"
	"go-portfolio-backend/pkg/validation"
)

// Cover images render at a fixed slot in the article layout.
const (
	coverWidth  = 692
	coverHeight = 390
)

const maxCoverUploadBytes = 10 << 20 // 10 MB

type AdminHandler struct {
	articleUC domain.ArticleUsecase
	uploadDir string
}

func NewAdminHandler(protected *gin.RouterGroup, articleUC domain.ArticleUsecase, uploadDir string) {
	handler := &AdminHandler{
		articleUC: articleUC,
		uploadDir: uploadDir,
	}

	admin := protected.Group("/admin")
	{
		admin.POST("/articles", handler.SaveArticle)
		admin.PUT("/articles/:slug", handler.UpdateArticle)
		admin.DELETE("/articles/:slug", handler.DeleteArticle)
		admin.POST("/uploads/cover", handler.UploadCover)
	}
}

// SaveArticle creates or replaces an article. Upsert semantics keyed on slug:
// posting an existing slug overwrites it.
func (h *AdminHandler) SaveArticle(c *gin.Context) {
	var article domain.Article
	if err := c.ShouldBindJSON(&article); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.articleUC.Save(c.Request.Context(), &article); err != nil {
		messages := validation.FormatValidationErrors(err)
		c.Error(apperror.Unprocessable(strings.Join(messages, "; ")))
		return
	}
	response.Success(c, http.StatusCreated, "Article saved", article)
}

// UpdateArticle overwrites the article at the URL's slug. The slug in the
// path wins over any slug in the body.
func (h *AdminHandler) UpdateArticle(c *gin.Context) {
	var article domain.Article
	if err := c.ShouldBindJSON(&article); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	article.Slug = c.Param("slug")

	if err := h.articleUC.Save(c.Request.Context(), &article); err != nil {
		messages := validation.FormatValidationErrors(err)
		c.Error(apperror.Unprocessable(strings.Join(messages, "; ")))
		return
	}
	response.Success(c, http.StatusOK, "Article updated", article)
}

func (h *AdminHandler) DeleteArticle(c *gin.Context) {
	slug := c.Param("slug")
	if err := h.articleUC.Delete(c.Request.Context(), slug); err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	response.Success(c, http.StatusOK, "Article deleted", gin.H{"slug": slug})
}

// UploadCover accepts an image, scales it to the article cover dimensions,
// and stores it under the upload directory as JPEG. Returns the public path.
func (h *AdminHandler) UploadCover(c *gin.Context) {
	fileHeader, err := c.FormFile("cover")
	if err != nil {
		c.Error(apperror.BadRequest("Missing 'cover' file field"))
		return
	}
	if fileHeader.Size > maxCoverUploadBytes {
		c.Error(apperror.BadRequest("Cover image must be 10MB or smaller"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer file.Close()

	scaled, err := scaleCover(file)
	if err != nil {
		c.Error(apperror.BadRequest("Could not decode image: " + err.Error()))
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	name := uuid.NewString() + ".jpg"
	path := filepath.Join(h.uploadDir, name)
	if err := os.WriteFile(path, scaled, 0o644); err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	response.Success(c, http.StatusCreated, "Cover uploaded", gin.H{
		"url":    "/uploads/" + name,
		"width":  coverWidth,
		"height": coverHeight,
	})
}

// scaleCover decodes an image and resamples it to the fixed cover dimensions.
func scaleCover(reader io.Reader) ([]byte, error) {
	img, format, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("decode image (format: %s): %w", format, err)
	}

	resized := image.NewRGBA(image.Rect(0, 0, coverWidth, coverHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, img.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("encode cover: %w", err)
	}
	return buf.Bytes(), nil
}
