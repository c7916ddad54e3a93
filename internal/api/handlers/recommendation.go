package handlers

import (
	"net/http"
	"strings"

	"github.com/Conceptual-Machines/mood-to-movie/internal/api/middleware"
	"github.com/Conceptual-Machines/mood-to-movie/internal/controller"
	"github.com/Conceptual-Machines/mood-to-movie/internal/logger"
	"github.com/Conceptual-Machines/mood-to-movie/internal/services"
	"github.com/gin-gonic/gin"
)

// RecommendationHandler serves the JSON API over the recommender and visitor controllers
type RecommendationHandler struct {
	recommender controller.Recommender
	registry    *controller.Registry
}

func NewRecommendationHandler(recommender controller.Recommender, registry *controller.Registry) *RecommendationHandler {
	return &RecommendationHandler{
		recommender: recommender,
		registry:    registry,
	}
}

// MoodRequest is the body of every mood submission
type MoodRequest struct {
	Mood string `json:"mood"`
}

// SessionResponse wraps a visitor's state for the session endpoints
type SessionResponse struct {
	Accepted *bool            `json:"accepted,omitempty"`
	Error    string           `json:"error,omitempty"`
	State    controller.State `json:"state"`
}

// Recommend handles POST /api/v1/recommendations without touching visitor state
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	var req MoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
		return
	}

	mood := strings.TrimSpace(req.Mood)
	if mood == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMoodRequired})
		return
	}

	result, err := h.recommender.GetRecommendations(c.Request.Context(), mood)
	if err != nil {
		fields := logger.WithContext(c)
		fields["error"] = err.Error()
		logger.Warn("Recommendation request failed", fields)

		c.JSON(statusForError(err), gin.H{"error": controller.UserMessage(err)})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetSession handles GET /api/v1/session
func (h *RecommendationHandler) GetSession(c *gin.Context) {
	ctrl, ok := h.visitor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, SessionResponse{State: ctrl.State()})
}

// SubmitSession handles POST /api/v1/session/submit. The request resolves in the
// background; clients poll GetSession until the status leaves LOADING.
func (h *RecommendationHandler) SubmitSession(c *gin.Context) {
	ctrl, ok := h.visitor(c)
	if !ok {
		return
	}

	var req MoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
		return
	}

	// Blank moods are ignored, not reported
	if strings.TrimSpace(req.Mood) == "" {
		c.JSON(http.StatusOK, SessionResponse{Accepted: boolPtr(false), State: ctrl.State()})
		return
	}

	if !ctrl.Start(c.Request.Context(), req.Mood) {
		c.JSON(http.StatusConflict, SessionResponse{
			Accepted: boolPtr(false),
			Error:    errRequestInFlight,
			State:    ctrl.State(),
		})
		return
	}

	c.JSON(http.StatusAccepted, SessionResponse{Accepted: boolPtr(true), State: ctrl.State()})
}

// UpdateMood handles PUT /api/v1/session/mood, recording draft text while the visitor types.
// Drafts are ignored while a request is loading.
func (h *RecommendationHandler) UpdateMood(c *gin.Context) {
	ctrl, ok := h.visitor(c)
	if !ok {
		return
	}

	var req MoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
		return
	}

	ctrl.SetMood(req.Mood)
	c.JSON(http.StatusOK, SessionResponse{State: ctrl.State()})
}

// ResetSession handles POST /api/v1/session/reset
func (h *RecommendationHandler) ResetSession(c *gin.Context) {
	ctrl, ok := h.visitor(c)
	if !ok {
		return
	}

	if !ctrl.Reset() {
		c.JSON(http.StatusConflict, SessionResponse{Error: errRequestInFlight, State: ctrl.State()})
		return
	}

	c.JSON(http.StatusOK, SessionResponse{State: ctrl.State()})
}

func (h *RecommendationHandler) visitor(c *gin.Context) (*controller.Controller, bool) {
	sessionID := middleware.GetSessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": errNoSession})
		return nil, false
	}
	return h.registry.Get(sessionID), true
}

// statusForError maps failure classes to HTTP status codes
func statusForError(err error) int {
	switch {
	case services.IsConfigurationError(err):
		return http.StatusServiceUnavailable
	case services.IsServiceError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func boolPtr(b bool) *bool {
	return &b
}
