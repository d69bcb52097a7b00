/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googleexecutor

import (
	"errors"
	"strings"

	"chainguard.dev/thinktank/agents/executor/retry"
	"google.golang.org/genai"
)

// isRetryableGeminiError reports whether err is a quota, overload or
// transient server error from the Gemini API.
func isRetryableGeminiError(err error) bool {
	if err == nil {
		return false
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return retry.IsRetryableStatus(apiErr.Code)
	}
	errStr := err.Error()
	return strings.Contains(errStr, "RESOURCE_EXHAUSTED") ||
		strings.Contains(errStr, "Resource exhausted") ||
		strings.Contains(errStr, "UNAVAILABLE") ||
		strings.Contains(errStr, "Overloaded") ||
		strings.Contains(errStr, "quota exceeded")
}
