/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package openaiexecutor

import (
	"testing"

	"chainguard.dev/thinktank/agents/promptbuilder"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

func TestNewOptions(t *testing.T) {
	t.Parallel()

	client := openai.NewClient(option.WithAPIKey("test"))
	prompt := promptbuilder.MustNewPrompt("Discuss {{topic}}")

	tests := []struct {
		name    string
		opt     Option[promptbuilder.Noop, string]
		wantErr bool
	}{
		{name: "gpt model", opt: WithModel[promptbuilder.Noop, string]("gpt-4.1")},
		{name: "reasoning model", opt: WithModel[promptbuilder.Noop, string]("o3")},
		{name: "claude model", opt: WithModel[promptbuilder.Noop, string]("claude-opus-4-1"), wantErr: true},
		{name: "temperature", opt: WithTemperature[promptbuilder.Noop, string](1.2)},
		{name: "temperature too high", opt: WithTemperature[promptbuilder.Noop, string](3), wantErr: true},
		{name: "zero tokens", opt: WithMaxTokens[promptbuilder.Noop, string](0), wantErr: true},
		{name: "zero turns", opt: WithMaxTurns[promptbuilder.Noop, string](0), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(client, prompt, tt.opt)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
