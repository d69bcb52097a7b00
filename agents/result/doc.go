/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package result turns model output into Go values.

Models often wrap JSON in markdown fences. ExtractJSON finds the payload and
Extract decodes it:

	type verdict struct {
		Viable bool   `json:"viable"`
		Reason string `json:"reason"`
	}
	v, err := result.Extract[verdict]("```json\n{\"viable\": true}\n```")

Parse additionally accepts prose. If the JSON decode fails and the target
type implements encoding.TextUnmarshaler, the raw text is used instead, so a
stage that answers in markdown can still produce a typed result.
*/
package result
