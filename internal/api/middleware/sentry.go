package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Conceptual-Machines/mood-to-movie/internal/logger"
	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

const sentryFlushTimeout = 2 * time.Second

// SentryHub gives each request its own Sentry hub. Panics are reported there
// and re-raised for RecoverPanics to answer.
func SentryHub() gin.HandlerFunc {
	return sentrygin.New(sentrygin.Options{
		Repanic: true,
		Timeout: sentryFlushTimeout,
	})
}

// RecoverPanics turns a panic into a 500 carrying the request ID.
// It must run before SentryHub so the panic is reported once, by the hub.
func RecoverPanics() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			fields := requestFields(c)
			fields["panic"] = fmt.Sprint(recovered)
			if sentrygin.GetHubFromContext(c) != nil {
				logger.Warn("Recovered from panic", fields)
			} else {
				logger.Error("Recovered from panic", fmt.Errorf("panic: %v", recovered), fields)
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":      "Internal server error",
				"request_id": c.GetString(requestIDKey),
			})
		}()
		c.Next()
	}
}

// identifyVisitor attaches the visitor session to events reported for this request
func identifyVisitor(c *gin.Context, sessionID string) {
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		hub.Scope().SetUser(sentry.User{ID: sessionID})
	}
}
