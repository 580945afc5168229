package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckFailureError(t *testing.T) {
	err := &CheckFailureError{
		Message: "devnet: 2 required check(s) failed",
	}

	assert.Equal(t, "devnet: 2 required check(s) failed", err.Error())
}

func TestErrorTypeDetection(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		isCheckFailed bool
	}{
		{
			name:          "CheckFailureError",
			err:           &CheckFailureError{Message: "check failure"},
			isCheckFailed: true,
		},
		{
			name:          "regular error",
			err:           errors.New("config error"),
			isCheckFailed: false,
		},
		{
			name:          "wrapped CheckFailureError",
			err:           fmt.Errorf("networks: %w", &CheckFailureError{Message: "check failure"}),
			isCheckFailed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var checkErr *CheckFailureError
			assert.Equal(t, tt.isCheckFailed, errors.As(tt.err, &checkErr))
		})
	}
}
