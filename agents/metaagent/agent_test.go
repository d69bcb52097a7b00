/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metaagent

import (
	"context"
	"strings"
	"testing"

	"chainguard.dev/thinktank/agents/agenttrace"
	"chainguard.dev/thinktank/agents/promptbuilder"
	"chainguard.dev/thinktank/agents/toolcall"
)

type testRequest struct{}

func (r *testRequest) Bind(p *promptbuilder.Prompt) (*promptbuilder.Prompt, error) {
	return p, nil
}

type testResponse struct {
	Content string `json:"content"`
}

func TestProviderFor(t *testing.T) {
	tests := []struct {
		model   string
		want    Provider
		wantErr bool
	}{
		{model: "claude-sonnet-4-5", want: Anthropic},
		{model: "Claude-Opus-4-1", want: Anthropic},
		{model: "gemini-2.5-pro", want: Google},
		{model: "gpt-4o", want: OpenAI},
		{model: "o3-mini", want: OpenAI},
		{model: "gem", wantErr: true},
		{model: "cla", wantErr: true},
		{model: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			got, err := ProviderFor(tt.model)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ProviderFor() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ProviderFor(): got = %q, wanted = %q", got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	ctx := context.Background()
	prompt := promptbuilder.MustNewPrompt("Think about the topic.")

	tests := []struct {
		name    string
		model   string
		config  Config[*testResponse, toolcall.EmptyTools]
		wantErr string
	}{{
		name:    "unsupported model",
		model:   "unknown-model",
		config:  Config[*testResponse, toolcall.EmptyTools]{UserPrompt: prompt},
		wantErr: "unsupported model",
	}, {
		name:    "missing prompt",
		model:   "claude-sonnet-4-5",
		config:  Config[*testResponse, toolcall.EmptyTools]{Credentials: Credentials{AnthropicAPIKey: "k"}},
		wantErr: "user prompt is required",
	}, {
		name:    "missing key",
		model:   "gpt-4o",
		config:  Config[*testResponse, toolcall.EmptyTools]{UserPrompt: prompt, Credentials: Credentials{AnthropicAPIKey: "k"}},
		wantErr: "OPENAI_API_KEY",
	}, {
		name:   "claude",
		model:  "claude-sonnet-4-5",
		config: Config[*testResponse, toolcall.EmptyTools]{UserPrompt: prompt, Credentials: Credentials{AnthropicAPIKey: "k"}},
	}, {
		name:   "openai",
		model:  "gpt-4o",
		config: Config[*testResponse, toolcall.EmptyTools]{UserPrompt: prompt, Credentials: Credentials{OpenAIAPIKey: "k"}},
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New[*testRequest](ctx, tt.model, tt.config)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("New() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("New() error = %v, wantErr containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestToolsForAddsSubmit(t *testing.T) {
	search := toolcall.Tool[*testResponse]{
		Def: toolcall.Definition{Name: "web_search"},
		Handler: func(context.Context, toolcall.ToolCall, *agenttrace.Trace[*testResponse], **testResponse) map[string]any {
			return nil
		},
	}
	submit := toolcall.Tool[*testResponse]{Def: toolcall.Definition{Name: "submit_result"}}
	config := Config[*testResponse, toolcall.EmptyTools]{
		Tools: toolcall.ProviderFunc[*testResponse, toolcall.EmptyTools](func(toolcall.EmptyTools) map[string]toolcall.Tool[*testResponse] {
			return map[string]toolcall.Tool[*testResponse]{"web_search": search}
		}),
	}

	got := toolsFor(config, submit, toolcall.EmptyTools{})
	if _, ok := got["submit_result"]; !ok || len(got) != 2 {
		t.Errorf("toolsFor(): got = %d tools, wanted web_search and submit_result", len(got))
	}
}
