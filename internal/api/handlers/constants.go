package handlers

const (
	// Error bodies returned by the JSON API
	errInvalidBody     = "Invalid request body"
	errMoodRequired    = "Mood is required"
	errRequestInFlight = "A recommendation is already in progress"
	errNoSession       = "No visitor session"
)
