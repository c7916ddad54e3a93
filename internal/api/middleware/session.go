package middleware

import (
	"log"
	"net/http"

	"github.com/Conceptual-Machines/mood-to-movie/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	sessionName   = "mood_to_movie"
	sessionIDKey  = "session_id"
	sessionMaxAge = 7 * 24 * 60 * 60 // one week, in seconds
)

// NewSessionStore creates the cookie store holding visitor IDs.
// Without a secret a random per-process key is used, so sessions do not survive restarts.
func NewSessionStore(secret string, secure bool) *sessions.CookieStore {
	if secret == "" {
		log.Println("⚠️  SESSION_SECRET not set, using a random key (sessions reset on restart)")
		secret = uuid.New().String() + uuid.New().String()
	}

	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   secure, // Use secure cookies in production
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// VisitorSession assigns every visitor a stable session ID stored in a signed cookie
func VisitorSession(store sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := store.Get(c.Request, sessionName)
		if err != nil {
			// Tampered or stale cookies decode to a fresh session
			logger.Warn("Discarding unreadable session cookie", logger.Fields{
				"request_id": c.GetString("request_id"),
				"error":      err.Error(),
			})
		}
		if session == nil {
			session = sessions.NewSession(store, sessionName)
		}

		sessionID, _ := session.Values[sessionIDKey].(string)
		if sessionID == "" {
			sessionID = uuid.New().String()
			session.Values[sessionIDKey] = sessionID
			if err := session.Save(c.Request, c.Writer); err != nil {
				logger.Error("Failed to save session", err, logger.Fields{
					"request_id": c.GetString("request_id"),
				})
			}
		}

		c.Set(sessionIDKey, sessionID)
		identifyVisitor(c, sessionID)
		c.Next()
	}
}

// GetSessionID returns the visitor session ID set by VisitorSession
func GetSessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
