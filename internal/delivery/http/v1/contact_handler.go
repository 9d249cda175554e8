package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/internal/form"
	"go-portfolio-backend/pkg/apperror"
	"go-portfolio-backend/pkg/audit"
	"go-portfolio-backend/pkg/geoip"
	"go-portfolio-backend/pkg/logger"
	"go-portfolio-backend/pkg/validation"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
	sessions  *form.Store
	geo       *geoip.Client
	audit     *audit.Logger
}

func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, sessions *form.Store, geo *geoip.Client, auditLog *audit.Logger, rateLimit gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC: contactUC,
		sessions:  sessions,
		geo:       geo,
		audit:     auditLog,
	}

	contact := public.Group("/contact")
	{
		contact.POST("", rateLimit, handler.Submit)
		contact.GET("/prefill", handler.Prefill)
	}

	// Stateful form sessions back the progressive-enhancement flow: the
	// page creates a session, patches fields as the user types, and submits
	// through it. The plain POST /contact above stays as the no-JS path.
	sess := public.Group("/contact/sessions")
	{
		sess.POST("", handler.CreateSession)
		sess.GET("/:id", handler.GetSession)
		sess.PATCH("/:id/fields", handler.PatchField)
		sess.POST("/:id/submit", rateLimit, handler.SubmitSession)
		sess.POST("/:id/dismiss", handler.DismissNotice)
		sess.DELETE("/:id", handler.DeleteSession)
	}
}

// Submit handles the direct form post. Browsers posting a classic form send
// a `redirect` value and get a 303 back to the page; API clients get JSON.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		h.respondSubmitError(c, http.StatusBadRequest, "Validation failed", validation.FormatValidationErrors(err))
		return
	}

	if err := h.contactUC.SendContactMessage(c.Request.Context(), &req); err != nil {
		logger.Log.Error("contact submission failed", "error", err)
		h.respondSubmitError(c, http.StatusBadGateway, "Something went wrong. Please try again.", nil)
		return
	}

	if redirect := c.PostForm("redirect"); redirect != "" {
		c.Redirect(http.StatusSeeOther, redirect+"?success=true")
		return
	}
	response.Success(c, http.StatusOK, "Thank you! Your message has been sent.", nil)
}

func (h *ContactHandler) respondSubmitError(c *gin.Context, code int, message string, details interface{}) {
	if redirect := c.PostForm("redirect"); redirect != "" {
		c.Redirect(http.StatusSeeOther, redirect+"?error=true")
		return
	}
	response.Error(c, code, message, details)
}

// Prefill resolves the caller's IP to a country code and dialing prefix.
// Failures return an empty 200: the lookup is a best-effort enhancement and
// the form must render identically without it.
func (h *ContactHandler) Prefill(c *gin.Context) {
	prefill, err := h.geo.Lookup(c.Request.Context(), c.ClientIP())
	if err != nil {
		logger.Log.Warn("geolocation lookup failed", "error", err, "ip", c.ClientIP())
		h.auditEvent(c, audit.EventGeoLookupFailed, map[string]interface{}{"error": err.Error()})
		response.Success(c, http.StatusOK, "Geolocation unavailable", gin.H{})
		return
	}
	response.Success(c, http.StatusOK, "OK", prefill)
}

// CreateSession opens a form session and applies the geolocation prefill
// before returning, so the first render already has country and dialing
// prefix filled in. Lookup failure degrades to a blank form.
func (h *ContactHandler) CreateSession(c *gin.Context) {
	id, controller := h.sessions.Create()

	if prefill, err := h.geo.Lookup(c.Request.Context(), c.ClientIP()); err == nil {
		controller.Prefill(prefill.CountryCode, prefill.CallingCode)
	} else {
		h.auditEvent(c, audit.EventGeoLookupFailed, map[string]interface{}{"error": err.Error()})
	}

	response.Success(c, http.StatusCreated, "Session created", gin.H{
		"session_id": id,
		"view":       controller.View(),
	})
}

func (h *ContactHandler) GetSession(c *gin.Context) {
	controller, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.Error(apperror.NotFound("Session not found or expired"))
		return
	}
	response.Success(c, http.StatusOK, "OK", controller.View())
}

type patchFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
	// Touched marks a focus event without a value change (phone only).
	Touched bool `json:"touched"`
}

// PatchField records one field edit and returns the recomputed validity, so
// the page can update inline errors and the submit control in one round trip.
func (h *ContactHandler) PatchField(c *gin.Context) {
	controller, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.Error(apperror.NotFound("Session not found or expired"))
		return
	}

	var req patchFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if req.Touched && form.Field(req.Field) == form.FieldPhone {
		controller.TouchPhone()
		response.Success(c, http.StatusOK, "OK", controller.View())
		return
	}

	if _, err := controller.SetField(form.Field(req.Field), req.Value); err != nil {
		if errors.Is(err, form.ErrUnknownField) {
			c.Error(apperror.BadRequest("Unknown form field: " + req.Field))
			return
		}
		c.Error(apperror.Internal(err))
		return
	}
	response.Success(c, http.StatusOK, "OK", controller.View())
}

// SubmitSession runs the controller's submit flow. An invalid form returns
// 422 with the validity detail and no delivery is attempted.
func (h *ContactHandler) SubmitSession(c *gin.Context) {
	controller, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.Error(apperror.NotFound("Session not found or expired"))
		return
	}

	validity, err := controller.Submit(c.Request.Context())
	switch {
	case errors.Is(err, form.ErrInvalidForm):
		response.Error(c, http.StatusUnprocessableEntity, "Form is not valid for submission", validity)
	case err != nil:
		logger.Log.Error("contact submission failed", "error", err)
		response.Error(c, http.StatusBadGateway, "Something went wrong. Please try again.", controller.View())
	default:
		response.Success(c, http.StatusOK, "Thank you! Your message has been sent.", controller.View())
	}
}

// DismissNotice hides the active notice ahead of its auto-dismiss timer.
// Dismissing an already-hidden notice is a no-op, not an error.
func (h *ContactHandler) DismissNotice(c *gin.Context) {
	controller, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.Error(apperror.NotFound("Session not found or expired"))
		return
	}
	controller.Dismiss()
	response.Success(c, http.StatusOK, "OK", controller.View())
}

func (h *ContactHandler) DeleteSession(c *gin.Context) {
	h.sessions.Delete(c.Param("id"))
	response.Success(c, http.StatusOK, "Session deleted", nil)
}

func (h *ContactHandler) auditEvent(c *gin.Context, event audit.EventType, details map[string]interface{}) {
	if h.audit == nil {
		return
	}
	requestID, _ := c.Get("RequestID")
	reqIDStr, _ := requestID.(string)
	h.audit.Event(event, c.ClientIP(), reqIDStr, details)
}
