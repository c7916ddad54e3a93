package metrics

import (
	"context"
	"time"
)

// Recorder receives request and generation measurements
type Recorder interface {
	RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration)
	RecordGeneration(ctx context.Context, model string, duration time.Duration, success bool)
	RecordTokenUsage(ctx context.Context, model string, inputTokens, outputTokens, totalTokens int)
}

// Multi fans every measurement out to each recorder in order
type Multi []Recorder

func (m Multi) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	for _, r := range m {
		r.RecordAPIRequest(ctx, endpoint, statusCode, duration)
	}
}

func (m Multi) RecordGeneration(ctx context.Context, model string, duration time.Duration, success bool) {
	for _, r := range m {
		r.RecordGeneration(ctx, model, duration, success)
	}
}

func (m Multi) RecordTokenUsage(ctx context.Context, model string, inputTokens, outputTokens, totalTokens int) {
	for _, r := range m {
		r.RecordTokenUsage(ctx, model, inputTokens, outputTokens, totalTokens)
	}
}

// Nop discards everything
type Nop struct{}

func (Nop) RecordAPIRequest(context.Context, string, int, time.Duration)  {}
func (Nop) RecordGeneration(context.Context, string, time.Duration, bool) {}
func (Nop) RecordTokenUsage(context.Context, string, int, int, int)       {}
