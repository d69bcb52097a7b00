/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package claudeexecutor

import (
	"errors"

	"chainguard.dev/thinktank/agents/executor/retry"
	"github.com/anthropics/anthropic-sdk-go"
)

// isRetryableClaudeError reports whether err is a rate limit, overload or
// transient server error from the Anthropic API.
func isRetryableClaudeError(err error) bool {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return retry.IsRetryableStatus(apiErr.StatusCode)
	}
	return false
}
