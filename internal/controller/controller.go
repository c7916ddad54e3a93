package controller

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/Conceptual-Machines/mood-to-movie/internal/logger"
	"github.com/Conceptual-Machines/mood-to-movie/internal/models"
)

// Status is the request lifecycle phase of one visitor
type Status string

const (
	StatusIdle    Status = "IDLE"
	StatusLoading Status = "LOADING"
	StatusSuccess Status = "SUCCESS"
	StatusError   Status = "ERROR"
)

// UnexpectedErrorMessage is shown when a failure carries no user-facing message
const UnexpectedErrorMessage = "An unexpected error occurred."

// Recommender produces recommendations for a mood
type Recommender interface {
	GetRecommendations(ctx context.Context, mood string) (*models.RecommendationResult, error)
}

// userFacing is implemented by errors that carry text safe to show the visitor
type userFacing interface {
	UserMessage() string
}

// State is a snapshot of a controller. Result is set only in SUCCESS, Error only in ERROR.
type State struct {
	Status Status                       `json:"status"`
	Mood   string                       `json:"mood"`
	Result *models.RecommendationResult `json:"result"`
	Error  string                       `json:"error,omitempty"`
}

// Controller owns the request state of one visitor and drives the recommender.
// At most one request is outstanding at a time.
type Controller struct {
	recommender Recommender
	timeout     time.Duration

	mu         sync.Mutex
	state      State
	lastActive time.Time
	inflight   sync.WaitGroup
}

// Option configures a Controller
type Option func(*Controller)

// WithRequestTimeout bounds how long a request may stay LOADING. Zero disables the bound.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *Controller) {
		c.timeout = timeout
	}
}

// New creates an IDLE controller
func New(recommender Recommender, opts ...Option) *Controller {
	c := &Controller{
		recommender: recommender,
		state:       State{Status: StatusIdle},
		lastActive:  time.Now(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a copy of the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := c.state
	snapshot.Result = c.state.Result.Clone()
	return snapshot
}

// SetMood records typed text. Ignored while a request is in flight.
func (c *Controller) SetMood(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastActive = time.Now()
	if c.state.Status == StatusLoading {
		return
	}
	c.state.Mood = text
}

// Submit runs a request for moodText and blocks until it resolves.
// It returns false when the submission is rejected: blank text or a request already in flight.
func (c *Controller) Submit(ctx context.Context, moodText string) bool {
	mood, ok := c.begin(moodText)
	if !ok {
		return false
	}
	c.resolve(ctx, mood)
	return true
}

// Start is Submit without waiting: the request runs in the background, detached from
// ctx cancellation so a closed HTTP request does not abort it.
func (c *Controller) Start(ctx context.Context, moodText string) bool {
	mood, ok := c.begin(moodText)
	if !ok {
		return false
	}

	detached := context.WithoutCancel(ctx)
	go c.resolve(detached, mood)
	return true
}

// Wait blocks until the outstanding request, if any, has resolved
func (c *Controller) Wait() {
	c.inflight.Wait()
}

// Reset returns to IDLE and clears mood, result and error. Rejected while LOADING.
func (c *Controller) Reset() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastActive = time.Now()
	if c.state.Status == StatusLoading {
		return false
	}
	c.state = State{Status: StatusIdle}
	return true
}

// IdleSince reports when the controller was last touched; loading controllers are never idle
func (c *Controller) IdleSince() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Status == StatusLoading {
		return time.Time{}, false
	}
	return c.lastActive, true
}

func (c *Controller) touch() {
	c.mu.Lock()
	c.lastActive = time.Now()
	c.mu.Unlock()
}

// begin moves to LOADING, clearing the previous result and error
func (c *Controller) begin(moodText string) (string, bool) {
	mood := strings.TrimSpace(moodText)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastActive = time.Now()
	if mood == "" || c.state.Status == StatusLoading {
		return "", false
	}

	c.state = State{Status: StatusLoading, Mood: moodText}
	c.inflight.Add(1)
	return mood, true
}

func (c *Controller) resolve(ctx context.Context, mood string) {
	defer c.inflight.Done()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	result, err := c.recommender.GetRecommendations(ctx, mood)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastActive = time.Now()
	switch {
	case err != nil:
		c.state.Status = StatusError
		c.state.Result = nil
		c.state.Error = UserMessage(err)
	case result == nil:
		logger.Warn("Recommender returned neither result nor error", logger.Fields{"mood_length": len(mood)})
		c.state.Status = StatusError
		c.state.Result = nil
		c.state.Error = UnexpectedErrorMessage
	default:
		c.state.Status = StatusSuccess
		c.state.Result = result.Clone()
		c.state.Error = ""
	}
}

// UserMessage returns the text of err that is safe to show, or UnexpectedErrorMessage
func UserMessage(err error) string {
	var uf userFacing
	if errors.As(err, &uf) {
		if msg := uf.UserMessage(); msg != "" {
			return msg
		}
	}
	return UnexpectedErrorMessage
}
