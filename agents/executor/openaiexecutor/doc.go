/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package openaiexecutor runs a tool-using conversation against the OpenAI
// Chat Completions API. It mirrors claudeexecutor: tool calls are answered
// with tool messages until a handler sets the result or the model replies
// with text.
package openaiexecutor
