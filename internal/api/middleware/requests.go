package middleware

import (
	"net/http"
	"time"

	"github.com/Conceptual-Machines/mood-to-movie/internal/logger"
	"github.com/Conceptual-Machines/mood-to-movie/internal/metrics"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"

	// Endpoint label for requests no route matched
	unmatchedEndpoint = "unmatched"
)

// TrackRequests tags every request with an ID, logs its outcome and records it per route
func TrackRequests(recorder metrics.Recorder) gin.HandlerFunc {
	if recorder == nil {
		recorder = metrics.Nop{}
	}

	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set(requestIDKey, requestID)
		c.Header(requestIDHeader, requestID)
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.Scope().SetTag(requestIDKey, requestID)
		}

		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		status := c.Writer.Status()
		fields := requestFields(c)
		fields["status_code"] = status
		fields["duration_ms"] = elapsed.Milliseconds()
		logOutcome(status, fields)

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = unmatchedEndpoint
		}
		recorder.RecordAPIRequest(c.Request.Context(), endpoint, status, elapsed)
	}
}

func requestFields(c *gin.Context) logger.Fields {
	fields := logger.Fields{
		requestIDKey: c.GetString(requestIDKey),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"client_ip":  c.ClientIP(),
	}
	if sessionID := GetSessionID(c); sessionID != "" {
		fields[sessionIDKey] = sessionID
	}
	return fields
}

func logOutcome(status int, fields logger.Fields) {
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("Request failed with server error", nil, fields)
	case status >= http.StatusBadRequest:
		logger.Warn("Request failed with client error", fields)
	default:
		logger.Info("Request completed", fields)
	}
}
