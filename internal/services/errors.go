package services

import "errors"

// User-facing failure messages. Causes are logged, never shown.
const (
	ConfigurationErrorMessage = "API Key is missing."
	ServiceErrorMessage       = "Failed to fetch movie recommendations. Please try again."
)

// ConfigurationError means the recommendation credential is absent
type ConfigurationError struct{}

func (e *ConfigurationError) Error() string {
	return ConfigurationErrorMessage
}

// UserMessage returns the text shown to the visitor
func (e *ConfigurationError) UserMessage() string {
	return ConfigurationErrorMessage
}

// ServiceError collapses every failed recommendation call: network faults, timeouts,
// non-2xx replies, unparsable bodies and schema mismatches
type ServiceError struct {
	Cause error
}

func (e *ServiceError) Error() string {
	if e.Cause == nil {
		return ServiceErrorMessage
	}
	return ServiceErrorMessage + ": " + e.Cause.Error()
}

// UserMessage returns the fixed generic text, whatever the cause
func (e *ServiceError) UserMessage() string {
	return ServiceErrorMessage
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// IsConfigurationError reports whether err is or wraps a ConfigurationError
func IsConfigurationError(err error) bool {
	var configErr *ConfigurationError
	return errors.As(err, &configErr)
}

// IsServiceError reports whether err is or wraps a ServiceError
func IsServiceError(err error) bool {
	var serviceErr *ServiceError
	return errors.As(err, &serviceErr)
}
