package handlers

import (
	"bytes"
	"net/http"

	"github.com/Conceptual-Machines/mood-to-movie/internal/api/middleware"
	"github.com/Conceptual-Machines/mood-to-movie/internal/controller"
	"github.com/Conceptual-Machines/mood-to-movie/internal/logger"
	"github.com/Conceptual-Machines/mood-to-movie/internal/web/templates"
	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
)

// WebHandler serves the server-rendered page for each visitor
type WebHandler struct {
	registry *controller.Registry
}

func NewWebHandler(registry *controller.Registry) *WebHandler {
	return &WebHandler{registry: registry}
}

// Home renders the visitor's current state
func (h *WebHandler) Home(c *gin.Context) {
	ctrl := h.registry.Get(middleware.GetSessionID(c))

	c.Header("Cache-Control", "no-store")
	render(c, http.StatusOK, templates.Page(ctrl.State()))
}

// render buffers the component so a failed render can still answer with a 500
func render(c *gin.Context, status int, component templ.Component) {
	var buf bytes.Buffer
	if err := component.Render(c.Request.Context(), &buf); err != nil {
		logger.Error("Failed to render template", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render template"})
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// SubmitMood starts a recommendation request and sends the visitor back to the page,
// which polls while the request is loading
func (h *WebHandler) SubmitMood(c *gin.Context) {
	ctrl := h.registry.Get(middleware.GetSessionID(c))
	mood := c.PostForm("mood")

	// Blank or in-flight submissions are ignored; the page shows the unchanged state
	if ctrl.Start(c.Request.Context(), mood) {
		fields := logger.WithContext(c)
		fields["mood_length"] = len(mood)
		logger.Info("Mood submitted", fields)
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// Reset clears the visitor's mood and outcome
func (h *WebHandler) Reset(c *gin.Context) {
	ctrl := h.registry.Get(middleware.GetSessionID(c))
	ctrl.Reset()
	c.Redirect(http.StatusSeeOther, "/")
}
