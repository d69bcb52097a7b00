/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package claudetool adapts toolcall tools to the Anthropic Messages API.
package claudetool
