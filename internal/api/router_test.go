package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	apimiddleware "github.com/Conceptual-Machines/mood-to-movie/internal/api/middleware"
	"github.com/Conceptual-Machines/mood-to-movie/internal/config"
	"github.com/Conceptual-Machines/mood-to-movie/internal/controller"
	"github.com/Conceptual-Machines/mood-to-movie/internal/models"
	"github.com/Conceptual-Machines/mood-to-movie/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecommender struct {
	result *models.RecommendationResult
	err    error
	calls  int
}

func (f *fakeRecommender) GetRecommendations(context.Context, string) (*models.RecommendationResult, error) {
	f.calls++
	return f.result, f.err
}

func sampleResult() *models.RecommendationResult {
	return &models.RecommendationResult{
		EmpatheticMessage: "That's understandable.",
		Suggestions: []models.MovieSuggestion{
			{Title: "A", Genre: "Comedy", Reason: "..."},
			{Title: "B", Genre: "Drama", Reason: "..."},
			{Title: "C", Genre: "Documentary", Reason: "..."},
		},
	}
}

type testApp struct {
	router   *gin.Engine
	registry *controller.Registry
	sessions sessions.Store
	cookies  []*http.Cookie
}

func newTestApp(t *testing.T, rec controller.Recommender) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := controller.NewRegistry(func() *controller.Controller { return controller.New(rec) })
	store := apimiddleware.NewSessionStore("test-secret-test-secret-test-secret", false)
	router := SetupRouter(&config.Config{Model: "gemini-3-flash-preview"}, "test", Dependencies{
		Recommender: rec,
		Registry:    registry,
		Sessions:    store,
		Configured:  true,
	})
	return &testApp{router: router, registry: registry, sessions: store}
}

// do sends a request, carrying cookies from earlier responses like a browser would
func (a *testApp) do(t *testing.T, method, path, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, cookie := range a.cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	if cookies := w.Result().Cookies(); len(cookies) > 0 {
		a.cookies = cookies
	}
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealthAndMetrics(t *testing.T) {
	app := newTestApp(t, &fakeRecommender{})

	w := app.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "configured", body["recommendations"].(map[string]any)["status"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = app.do(t, http.MethodGet, "/api/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test", decode(t, w)["version"])
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		name      string
		rec       *fakeRecommender
		body      string
		wantCode  int
		wantError string
		wantCalls int
	}{
		{"success", &fakeRecommender{result: sampleResult()}, `{"mood":"I feel overwhelmed"}`, http.StatusOK, "", 1},
		{"blank mood", &fakeRecommender{}, `{"mood":"   "}`, http.StatusBadRequest, "Mood is required", 0},
		{"bad json", &fakeRecommender{}, `{"mood":`, http.StatusBadRequest, "Invalid request body", 0},
		{
			"missing key", &fakeRecommender{err: &services.ConfigurationError{}}, `{"mood":"sad"}`,
			http.StatusServiceUnavailable, "API Key is missing.", 1,
		},
		{
			"service failure", &fakeRecommender{err: &services.ServiceError{Cause: errors.New("secret detail")}},
			`{"mood":"sad"}`, http.StatusBadGateway, "Failed to fetch movie recommendations. Please try again.", 1,
		},
		{
			"unexpected failure", &fakeRecommender{err: errors.New("secret detail")}, `{"mood":"sad"}`,
			http.StatusInternalServerError, "An unexpected error occurred.", 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, tt.rec)

			w := app.do(t, http.MethodPost, "/api/v1/recommendations", "application/json", tt.body)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantCalls, tt.rec.calls)
			assert.NotContains(t, w.Body.String(), "secret detail")
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decode(t, w)["error"])
				return
			}
			var result models.RecommendationResult
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
			assert.Equal(t, *sampleResult(), result)
		})
	}
}

func TestSessionAPI_Flow(t *testing.T) {
	app := newTestApp(t, &fakeRecommender{result: sampleResult()})

	w := app.do(t, http.MethodGet, "/api/v1/session", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, app.cookies, "session cookie must be issued")
	assert.Equal(t, "IDLE", decode(t, w)["state"].(map[string]any)["status"])

	w = app.do(t, http.MethodPut, "/api/v1/session/mood", "application/json", `{"mood":"draft"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "draft", decode(t, w)["state"].(map[string]any)["mood"])

	w = app.do(t, http.MethodPost, "/api/v1/session/submit", "application/json", `{"mood":"  "}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["accepted"])

	w = app.do(t, http.MethodPost, "/api/v1/session/submit", "application/json", `{"mood":"I feel overwhelmed"}`)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, true, decode(t, w)["accepted"])

	require.Equal(t, 1, app.registry.Len())
	sessionController(t, app).Wait()

	w = app.do(t, http.MethodGet, "/api/v1/session", "", "")
	state := decode(t, w)["state"].(map[string]any)
	assert.Equal(t, "SUCCESS", state["status"])
	assert.Equal(t, "That's understandable.", state["result"].(map[string]any)["empatheticMessage"])

	w = app.do(t, http.MethodPost, "/api/v1/session/reset", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	state = decode(t, w)["state"].(map[string]any)
	assert.Equal(t, "IDLE", state["status"])
	assert.Equal(t, "", state["mood"])
	assert.Nil(t, state["result"])
}

func TestWebPages_Flow(t *testing.T) {
	app := newTestApp(t, &fakeRecommender{err: &services.ServiceError{Cause: errors.New("timeout")}})

	w := app.do(t, http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/mood"`)

	form := url.Values{"mood": {"anxious"}}.Encode()
	w = app.do(t, http.MethodPost, "/mood", "application/x-www-form-urlencoded", form)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	sessionController(t, app).Wait()

	w = app.do(t, http.MethodGet, "/", "", "")
	assert.Contains(t, w.Body.String(), "Failed to fetch movie recommendations. Please try again.")
	assert.NotContains(t, w.Body.String(), "timeout")

	w = app.do(t, http.MethodPost, "/reset", "application/x-www-form-urlencoded", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = app.do(t, http.MethodGet, "/", "", "")
	assert.NotContains(t, w.Body.String(), `role="alert"`)
}

func TestPanicRecovery(t *testing.T) {
	app := newTestApp(t, &fakeRecommender{})
	app.router.GET("/boom", func(*gin.Context) { panic("boom") })

	w := app.do(t, http.MethodGet, "/boom", "", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", decode(t, w)["error"])
}

// sessionController returns the controller behind the test's session cookie
func sessionController(t *testing.T, app *testApp) *controller.Controller {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range app.cookies {
		c.Request.AddCookie(cookie)
	}

	apimiddleware.VisitorSession(app.sessions)(c)
	sessionID := apimiddleware.GetSessionID(c)
	require.NotEmpty(t, sessionID)
	return app.registry.Get(sessionID)
}
