/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googleexecutor

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/genai"
)

func TestIsRetryableGeminiError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error", err: nil, want: false},
		{name: "api 429", err: genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"}, want: true},
		{name: "wrapped api 503", err: fmt.Errorf("send: %w", genai.APIError{Code: 503}), want: true},
		{name: "api 400", err: genai.APIError{Code: 400, Status: "INVALID_ARGUMENT"}, want: false},
		{name: "api 403", err: genai.APIError{Code: 403}, want: false},
		{name: "RESOURCE_EXHAUSTED text", err: errors.New("googleapi: RESOURCE_EXHAUSTED"), want: true},
		{name: "Resource exhausted text", err: errors.New("Resource exhausted: too many requests"), want: true},
		{name: "Overloaded text", err: errors.New("model Overloaded, try again"), want: true},
		{name: "quota exceeded", err: errors.New("quota exceeded for project"), want: true},
		{name: "permission denied", err: errors.New("permission denied: insufficient access"), want: false},
		{name: "not found", err: errors.New("model not found"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := isRetryableGeminiError(tt.err); got != tt.want {
				t.Errorf("isRetryableGeminiError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
