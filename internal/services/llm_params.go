package services

import (
	"github.com/Conceptual-Machines/mood-to-movie/internal/metrics"
	"github.com/Conceptual-Machines/mood-to-movie/internal/observability"
)

// Generation defaults for recommendation requests
const (
	DefaultModel       = "gemini-3-flash-preview"
	DefaultTemperature = float32(0.8)
)

// ClientOptions configures a RecommendationClient
type ClientOptions struct {
	APIKey      string
	Model       string   // Defaults to DefaultModel
	Temperature *float32 // Defaults to DefaultTemperature

	Metrics  metrics.Recorder              // Defaults to a no-op recorder
	Langfuse *observability.LangfuseClient // Defaults to the global client
}

func (o ClientOptions) withDefaults() ClientOptions {
	if o.Model == "" {
		o.Model = DefaultModel
	}
	if o.Temperature == nil {
		temperature := DefaultTemperature
		o.Temperature = &temperature
	}
	if o.Metrics == nil {
		o.Metrics = metrics.Nop{}
	}
	if o.Langfuse == nil {
		o.Langfuse = observability.GetClient()
	}
	return o
}
