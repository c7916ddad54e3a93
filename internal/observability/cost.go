package observability

import (
	"strconv"
	"strings"

	"github.com/Conceptual-Machines/mood-to-movie/internal/llm"
)

// Pricing constants
const (
	tokensPerKilo       = 1000.0
	costFormatPrecision = 6

	// Gemini flash pricing
	geminiFlashInputPrice  = 0.0003
	geminiFlashOutputPrice = 0.0025

	// Gemini pro pricing
	geminiProInputPrice  = 0.00125
	geminiProOutputPrice = 0.01

	// GPT-4o pricing
	gpt4oInputPrice  = 0.005
	gpt4oOutputPrice = 0.015

	// GPT-4o-mini pricing
	gpt4oMiniInputPrice  = 0.00015
	gpt4oMiniOutputPrice = 0.0006
)

// ModelPricing contains pricing information per 1K tokens
type ModelPricing struct {
	InputPricePer1K  float64 // Price per 1K input tokens in USD
	OutputPricePer1K float64 // Price per 1K output tokens in USD
}

// PricingTable contains pricing per model family, matched by prefix
var PricingTable = map[string]ModelPricing{
	"gemini-flash": {
		InputPricePer1K:  geminiFlashInputPrice,
		OutputPricePer1K: geminiFlashOutputPrice,
	},
	"gemini-pro": {
		InputPricePer1K:  geminiProInputPrice,
		OutputPricePer1K: geminiProOutputPrice,
	},
	"gpt-4o": {
		InputPricePer1K:  gpt4oInputPrice,
		OutputPricePer1K: gpt4oOutputPrice,
	},
	"gpt-4o-mini": {
		InputPricePer1K:  gpt4oMiniInputPrice,
		OutputPricePer1K: gpt4oMiniOutputPrice,
	},
}

// pricingFor resolves the pricing row of a model; unknown models fall back to gemini flash
func pricingFor(model string) ModelPricing {
	name := strings.ToLower(strings.TrimSpace(model))

	if pricing, ok := PricingTable[name]; ok {
		return pricing
	}
	switch {
	case strings.HasPrefix(name, "gpt-4o-mini"):
		return PricingTable["gpt-4o-mini"]
	case strings.HasPrefix(name, "gpt-"):
		return PricingTable["gpt-4o"]
	case strings.HasPrefix(name, "gemini") && strings.Contains(name, "pro"):
		return PricingTable["gemini-pro"]
	default:
		return PricingTable["gemini-flash"]
	}
}

// CalculateCost calculates the cost in USD of one generation
func CalculateCost(model string, usage *llm.TokenUsage) float64 {
	if usage == nil {
		return 0
	}

	pricing := pricingFor(model)
	inputCost := (float64(usage.InputTokens) / tokensPerKilo) * pricing.InputPricePer1K
	outputCost := (float64(usage.OutputTokens) / tokensPerKilo) * pricing.OutputPricePer1K

	return inputCost + outputCost
}

// FormatCost formats cost as a string with 6 decimal places
func FormatCost(cost float64) string {
	return "$" + strconv.FormatFloat(cost, 'f', costFormatPrecision, 64)
}
