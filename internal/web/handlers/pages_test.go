package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Conceptual-Machines/mood-to-movie/internal/controller"
	"github.com/Conceptual-Machines/mood-to-movie/internal/models"
	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cannedRecommender struct{}

func (cannedRecommender) GetRecommendations(context.Context, string) (*models.RecommendationResult, error) {
	return &models.RecommendationResult{
		EmpatheticMessage: "Quiet evenings call for gentle stories.",
		Suggestions: []models.MovieSuggestion{
			{Title: "Paterson", Genre: "Drama", Reason: "Calm and observant."},
			{Title: "Amelie", Genre: "Comedy", Reason: "Warm and whimsical."},
			{Title: "Columbus", Genre: "Drama", Reason: "Slow and soothing."},
		},
	}, nil
}

func newTestRouter(handler *WebHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("session_id", "visitor-1")
		c.Next()
	})
	router.GET("/", handler.Home)
	router.POST("/mood", handler.SubmitMood)
	router.POST("/reset", handler.Reset)
	return router
}

func TestHome_RendersHTML(t *testing.T) {
	registry := controller.NewRegistry(func() *controller.Controller { return controller.New(cannedRecommender{}) })
	router := newTestRouter(NewWebHandler(registry))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Contains(t, w.Body.String(), "<title>Mood to Movie</title>")
	assert.Contains(t, w.Body.String(), `action="/mood"`)
}

func TestSubmitMood_ThenHomeShowsResult(t *testing.T) {
	registry := controller.NewRegistry(func() *controller.Controller { return controller.New(cannedRecommender{}) })
	router := newTestRouter(NewWebHandler(registry))

	form := url.Values{"mood": {"quiet"}}
	req := httptest.NewRequest(http.MethodPost, "/mood", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	registry.Get("visitor-1").Wait()

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, w.Body.String(), "Paterson")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/reset", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, controller.StatusIdle, registry.Get("visitor-1").State().Status)
}

func TestRender_FailureReturns500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	broken := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<main>half a page"); err != nil {
			return err
		}
		return errors.New("template exploded")
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	render(c, http.StatusOK, broken)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to render template"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "half a page")
}
