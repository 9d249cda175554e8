package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-portfolio-backend/internal/content"
	"go-portfolio-backend/internal/delivery/http/middleware"
	v1 "go-portfolio-backend/internal/delivery/http/v1"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/internal/form"
	"go-portfolio-backend/internal/repository/memory"
	"go-portfolio-backend/internal/usecase"
	"go-portfolio-backend/pkg/geoip"
	"go-portfolio-backend/pkg/logger"
)

type stubContactUC struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (s *stubContactUC) SendContactMessage(_ context.Context, _ *domain.ContactRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.err
}

func (s *stubContactUC) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func newTestRouter(t *testing.T, contactUC domain.ContactUsecase, geoBody string, geoStatus int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Init()

	geoServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(geoStatus)
		fmt.Fprint(w, geoBody)
	}))
	t.Cleanup(geoServer.Close)

	sessions := form.NewStore(time.Minute, func() *form.Controller {
		return form.NewController(form.SubmitterFunc(contactUC.SendContactMessage), form.Config{})
	})

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	group := r.Group("/v1")
	rateLimit := middleware.RateLimitMiddleware(middleware.ContactRateLimitConfig(1000, 60, nil))
	v1.NewContactHandler(group, contactUC, sessions, geoip.NewClient(geoServer.URL, time.Second), nil, rateLimit)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func createSession(t *testing.T, r *gin.Engine) (string, form.View) {
	t.Helper()
	w, env := doJSON(t, r, http.MethodPost, "/v1/contact/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var data struct {
		SessionID string    `json:"session_id"`
		View      form.View `json:"view"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.SessionID)
	return data.SessionID, data.View
}

func patchField(t *testing.T, r *gin.Engine, id string, field form.Field, value string) form.View {
	t.Helper()
	w, env := doJSON(t, r, http.MethodPatch, "/v1/contact/sessions/"+id+"/fields",
		map[string]string{"field": string(field), "value": value})
	require.Equal(t, http.StatusOK, w.Code)

	var view form.View
	require.NoError(t, json.Unmarshal(env.Data, &view))
	return view
}

func TestCreateSession_AppliesGeoPrefill(t *testing.T) {
	uc := &stubContactUC{}
	r := newTestRouter(t, uc, `{"country_code":"DE","country_calling_code":"+49"}`, http.StatusOK)

	_, view := createSession(t, r)

	assert.Equal(t, "DE", view.Fields[form.FieldCountry])
	assert.Equal(t, "+49", view.Fields[form.FieldPhone])
	// A prefilled dialing prefix alone is not a valid number, but the
	// untouched field must not show an inline error.
	assert.Empty(t, view.Validity.PhoneError)
}

func TestCreateSession_GeoFailureDegradesToBlankForm(t *testing.T) {
	uc := &stubContactUC{}
	r := newTestRouter(t, uc, `oops`, http.StatusServiceUnavailable)

	w, view := createSessionRaw(t, r)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, view.Fields[form.FieldCountry])
	assert.Empty(t, view.Fields[form.FieldPhone])
}

func createSessionRaw(t *testing.T, r *gin.Engine) (*httptest.ResponseRecorder, form.View) {
	t.Helper()
	w, env := doJSON(t, r, http.MethodPost, "/v1/contact/sessions", nil)
	var data struct {
		View form.View `json:"view"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return w, data.View
}

func TestSessionLifecycle_FillSubmitDismiss(t *testing.T) {
	uc := &stubContactUC{}
	r := newTestRouter(t, uc, `{"country_code":"US","country_calling_code":"+1"}`, http.StatusOK)

	id, _ := createSession(t, r)

	patchField(t, r, id, form.FieldFirstName, "Ada")
	patchField(t, r, id, form.FieldLastName, "Lovelace")
	patchField(t, r, id, form.FieldCompany, "Analytical Engines")
	patchField(t, r, id, form.FieldEmail, "ada@example.com")
	patchField(t, r, id, form.FieldCountry, "UK")
	patchField(t, r, id, form.FieldMessage, "Hello there")
	view := patchField(t, r, id, form.FieldPhone, "+44 20 7946 0958")

	require.True(t, view.Validity.CanSubmit)

	w, env := doJSON(t, r, http.MethodPost, "/v1/contact/sessions/"+id+"/submit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, uc.callCount())

	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, form.StateSucceeded, view.State)
	assert.Empty(t, view.Fields[form.FieldEmail])
	require.NotNil(t, view.Notice)
	assert.Equal(t, form.NoticeSuccess, view.Notice.Kind)

	w, env = doJSON(t, r, http.MethodPost, "/v1/contact/sessions/"+id+"/dismiss", nil)
	require.Equal(t, http.StatusOK, w.Code)
	view = form.View{}
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Nil(t, view.Notice)
}

func TestSubmitSession_IncompleteFormIsRejectedWithoutDelivery(t *testing.T) {
	uc := &stubContactUC{}
	r := newTestRouter(t, uc, `{"country_code":"US","country_calling_code":"+1"}`, http.StatusOK)

	id, _ := createSession(t, r)
	patchField(t, r, id, form.FieldEmail, "ada@example.com")

	w, _ := doJSON(t, r, http.MethodPost, "/v1/contact/sessions/"+id+"/submit", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, 0, uc.callCount())
}

func TestPatchField_UnknownFieldAndSession(t *testing.T) {
	uc := &stubContactUC{}
	r := newTestRouter(t, uc, `{"country_code":"US","country_calling_code":"+1"}`, http.StatusOK)

	id, _ := createSession(t, r)

	w, _ := doJSON(t, r, http.MethodPatch, "/v1/contact/sessions/"+id+"/fields",
		map[string]string{"field": "favoriteColor", "value": "blue"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/v1/contact/sessions/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPrefillEndpoint_FailureReturnsEmptyOK(t *testing.T) {
	uc := &stubContactUC{}
	r := newTestRouter(t, uc, `not json`, http.StatusOK)

	w, env := doJSON(t, r, http.MethodGet, "/v1/contact/prefill", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "{}", string(env.Data))
}

func TestArticleEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger.Init()

	repo := memory.NewArticleRepository()
	require.NoError(t, repo.Upsert(context.Background(), &domain.Article{
		Slug:        "first-post",
		Title:       "First Post",
		Body:        "intro\n\n## Section\n\ncontent",
		PublishedAt: time.Now(),
	}))

	articleUC := usecase.NewArticleUsecase(repo, content.NewProcessor(logger.Log), validator.New())

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	v1.NewArticleHandler(r.Group("/v1"), articleUC)

	w, env := doJSON(t, r, http.MethodGet, "/v1/articles", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Articles []domain.Article `json:"articles"`
		Total    int64            `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Articles, 1)
	assert.Equal(t, int64(1), list.Total)

	w, env = doJSON(t, r, http.MethodGet, "/v1/articles/first-post", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rendered domain.RenderedArticle
	require.NoError(t, json.Unmarshal(env.Data, &rendered))
	assert.Contains(t, rendered.HTML, "post-section")
	assert.Contains(t, rendered.HTML, "Section")

	w, _ = doJSON(t, r, http.MethodGet, "/v1/articles/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
