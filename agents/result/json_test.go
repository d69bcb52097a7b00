/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package result

import (
	"strings"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{{
		name:  "fenced block with prose around it",
		input: "Here you go:\n```json\n{\"viable\": true}\n```\nThanks.",
		want:  `{"viable": true}`,
	}, {
		name:  "unterminated fence",
		input: "```json\n{\"a\": 1}\n",
		want:  `{"a": 1}`,
	}, {
		name:  "empty fence",
		input: "```json\n```",
		want:  "",
	}, {
		name:  "bare fence",
		input: "```\n{\"a\": 1}\n```",
		want:  `{"a": 1}`,
	}, {
		name:  "no fence",
		input: "  {\"a\": 1}  ",
		want:  `{"a": 1}`,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExtractJSON(tt.input); got != tt.want {
				t.Errorf("ExtractJSON(): got = %q, wanted = %q", got, tt.want)
			}
		})
	}
}

func TestExtract(t *testing.T) {
	type verdict struct {
		Viable bool   `json:"viable"`
		Reason string `json:"reason"`
	}
	got, err := Extract[verdict]("```json\n{\"viable\": true, \"reason\": \"cheap\"}\n```")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !got.Viable || got.Reason != "cheap" {
		t.Errorf("Extract(): got = %+v, wanted viable and cheap", got)
	}

	if _, err := Extract[verdict]("not json"); err == nil {
		t.Error("Extract(not json): got = nil, wanted error")
	}
}

type report struct {
	Body string
}

func (r *report) UnmarshalText(b []byte) error {
	r.Body = string(b)
	return nil
}

func TestParse(t *testing.T) {
	got, err := Parse[report]("# Final Report\n\nBuild it.\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !strings.HasPrefix(got.Body, "# Final Report") || strings.HasSuffix(got.Body, "\n") {
		t.Errorf("Parse(): got = %q, wanted trimmed report text", got.Body)
	}

	if _, err := Parse[map[string]any]("plain prose"); err == nil {
		t.Error("Parse[map](prose): got = nil, wanted error")
	}
}

func TestParsePointer(t *testing.T) {
	got, err := Parse[*report]("  done  ")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got == nil || got.Body != "done" {
		t.Errorf("Parse(): got = %+v, wanted body done", got)
	}
}
