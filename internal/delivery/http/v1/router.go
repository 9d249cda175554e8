package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-portfolio-backend/config"
	"go-portfolio-backend/internal/delivery/http/middleware"
	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/internal/form"
	"go-portfolio-backend/pkg/audit"
	"go-portfolio-backend/pkg/geoip"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	ArticleUC domain.ArticleUsecase
	Sessions  *form.Store
	Geo       *geoip.Client
	Audit     *audit.Logger
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	r.Static("/uploads", deps.Config.UploadDir)

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	contactRateLimit := middleware.RateLimitMiddleware(middleware.ContactRateLimitConfig(
		deps.Config.RateLimitContactThreshold,
		deps.Config.RateLimitWindowSeconds,
		deps.Audit,
	))

	// Public routes
	NewContactHandler(v1, deps.ContactUC, deps.Sessions, deps.Geo, deps.Audit, contactRateLimit)
	NewArticleHandler(v1, deps.ArticleUC)
	NewPreferenceHandler(v1)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AdminAuth(deps.Config.AdminJWTSecret))
	{
		NewAdminHandler(protected, deps.ArticleUC, deps.Config.UploadDir)
	}

	return r
}
