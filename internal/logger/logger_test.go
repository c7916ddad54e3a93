package logger

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOutput, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOutput)
		log.SetFlags(prevFlags)
	})
	return &buf
}

func TestFormatFields(t *testing.T) {
	assert.Equal(t, "", formatFields(nil))
	assert.Equal(t, "{a=x, b=3, c=1.50, d=true}", formatFields(Fields{
		"d": true,
		"c": 1.5,
		"b": 3,
		"a": "x",
	}))
}

func TestLevels(t *testing.T) {
	buf := captureLog(t)

	Info("hello", Fields{"k": "v"})
	Warn("careful", nil)
	Debug("details", Fields{"n": int64(2)})
	Error("boom", errors.New("cause"), Fields{"request_id": "r1"})

	out := buf.String()
	assert.Contains(t, out, "[INFO] hello {k=v}")
	assert.Contains(t, out, "[WARN] careful")
	assert.Contains(t, out, "[DEBUG] details {n=2}")
	assert.Contains(t, out, "[ERROR] boom: cause {request_id=r1}")
}

func TestLogGeneration(t *testing.T) {
	buf := captureLog(t)

	LogGeneration(context.Background(), "gemini", "gemini-2.5-flash", 1500*time.Millisecond, true, nil)

	out := buf.String()
	assert.Contains(t, out, "Generation request completed")
	assert.Contains(t, out, "duration_ms=1500")
	assert.Contains(t, out, "model=gemini-2.5-flash")
	assert.Contains(t, out, "success=true")
}

func TestWithContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/mood", nil)
	c.Set("request_id", "req-1")
	c.Set("session_id", "sess-1")

	fields := WithContext(c)

	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "sess-1", fields["session_id"])
	assert.Equal(t, "POST", fields["method"])
	assert.Equal(t, "/mood", fields["path"])
}
