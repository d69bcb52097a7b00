/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package toolcall

import (
	"fmt"
)

// Kind classifies how a tool invocation ended.
type Kind int

const (
	// KindOK means the tool produced a result.
	KindOK Kind = iota
	// KindNoResults means the call worked but found nothing.
	KindNoResults
	// KindTransportError means the remote service failed or was unreachable.
	KindTransportError
	// KindMissingCredentials means the tool is not configured.
	KindMissingCredentials
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindNoResults:
		return "no_results"
	case KindTransportError:
		return "transport_error"
	case KindMissingCredentials:
		return "missing_credentials"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Outcome is what a research or storage tool returns. Text is always
// suitable for a model to read. Go callers branch on Kind.
type Outcome struct {
	Kind Kind
	Text string
	// Err is set for KindTransportError.
	Err error
	// Value optionally carries a typed payload, such as a stored record.
	Value any
}

func OK(text string) Outcome {
	return Outcome{Kind: KindOK, Text: text}
}

func NoResults(format string, args ...any) Outcome {
	return Outcome{Kind: KindNoResults, Text: fmt.Sprintf(format, args...)}
}

// TransportError renders as "<action>: <err>", e.g. "Error searching web: EOF".
func TransportError(action string, err error) Outcome {
	return Outcome{Kind: KindTransportError, Text: fmt.Sprintf("%s: %v", action, err), Err: err}
}

func MissingCredentials(text string) Outcome {
	return Outcome{Kind: KindMissingCredentials, Text: text}
}

// Failed reports whether the tool could not do its job. NoResults is not a
// failure.
func (o Outcome) Failed() bool {
	return o.Kind == KindTransportError || o.Kind == KindMissingCredentials
}

// Response is the tool result sent back to the model.
func (o Outcome) Response() map[string]any {
	if o.Failed() {
		return map[string]any{"status": o.Kind.String(), "error": o.Text}
	}
	return map[string]any{"status": o.Kind.String(), "result": o.Text}
}

func (o Outcome) String() string {
	return o.Text
}
