package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/pkg/apperror"
)

const themeCookieName = "theme"

// One year; the theme choice should outlive the browser session.
const themeCookieMaxAge = 365 * 24 * 60 * 60

type PreferenceHandler struct{}

func NewPreferenceHandler(public *gin.RouterGroup) {
	handler := &PreferenceHandler{}

	prefs := public.Group("/preferences")
	{
		prefs.GET("/theme", handler.GetTheme)
		prefs.PUT("/theme", handler.SetTheme)
	}
}

// GetTheme returns the stored theme choice, defaulting to light.
func (h *PreferenceHandler) GetTheme(c *gin.Context) {
	theme, err := c.Cookie(themeCookieName)
	if err != nil || (theme != "dark" && theme != "light") {
		theme = "light"
	}
	response.Success(c, http.StatusOK, "OK", gin.H{"theme": theme})
}

type setThemeRequest struct {
	Theme string `json:"theme" binding:"required,oneof=light dark"`
}

// SetTheme persists the theme choice in a cookie.
func (h *PreferenceHandler) SetTheme(c *gin.Context) {
	var req setThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Theme must be 'light' or 'dark'"))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(themeCookieName, req.Theme, themeCookieMaxAge, "/", "", false, false)
	response.Success(c, http.StatusOK, "Theme updated", gin.H{"theme": req.Theme})
}
