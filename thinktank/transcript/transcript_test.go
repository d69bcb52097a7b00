/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package transcript

import "testing"

func TestTranscript(t *testing.T) {
	tests := []struct {
		name    string
		entries [][2]string
		want    string
	}{{
		name: "empty",
		want: "",
	}, {
		name:    "single",
		entries: [][2]string{{"Visionary Thinker (Prompt)", "Imagine it"}},
		want:    "Visionary Thinker (Prompt): Imagine it",
	}, {
		name: "call order",
		entries: [][2]string{
			{"Critical Analyst (Prompt)", "Poke holes"},
			{"Critical Analyst (Response)", "Cost is high"},
			{"Market Expert (Prompt)", ""},
		},
		want: "Critical Analyst (Prompt): Poke holes\n\nCritical Analyst (Response): Cost is high\n\nMarket Expert (Prompt): ",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New()
			for _, e := range tt.entries {
				l.Log(e[0], e[1])
			}
			if got := l.Transcript(); got != tt.want {
				t.Errorf("Transcript(): got = %q, wanted = %q", got, tt.want)
			}
			if got := l.Transcript(); got != tt.want {
				t.Errorf("Transcript() second call: got = %q, wanted = %q", got, tt.want)
			}
			if got := l.Len(); got != len(tt.entries) {
				t.Errorf("Len(): got = %d, wanted = %d", got, len(tt.entries))
			}
		})
	}
}
