package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/Conceptual-Machines/mood-to-movie/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"configuration", &services.ConfigurationError{}, http.StatusServiceUnavailable},
		{"service", &services.ServiceError{}, http.StatusBadGateway},
		{"wrapped service", fmt.Errorf("call: %w", &services.ServiceError{}), http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusForError(tt.err))
		})
	}
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "5.00s", formatUptime(5*time.Second))
	assert.Equal(t, "2m3.50s", formatUptime(2*time.Minute+3500*time.Millisecond))
	assert.Equal(t, "1h1m1.00s", formatUptime(time.Hour+time.Minute+time.Second))
}
