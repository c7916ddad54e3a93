package templates

//go:generate templ generate

import "github.com/Conceptual-Machines/mood-to-movie/internal/controller"

const (
	pageTitle = "Mood to Movie"

	// LoadingRefreshSeconds is how often the loading page polls for the outcome
	LoadingRefreshSeconds = 2
)

func refreshSeconds(state controller.State) int {
	if isLoading(state) {
		return LoadingRefreshSeconds
	}
	return 0
}

func isLoading(state controller.State) bool {
	return state.Status == controller.StatusLoading
}

func hasOutcome(state controller.State) bool {
	return state.Status == controller.StatusSuccess || state.Status == controller.StatusError
}

func submitLabel(state controller.State) string {
	if isLoading(state) {
		return "Finding…"
	}
	return "Find movies"
}
