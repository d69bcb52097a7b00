/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package openaiexecutor_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"chainguard.dev/thinktank/agents/agenttrace"
	"chainguard.dev/thinktank/agents/executor/openaiexecutor"
	"chainguard.dev/thinktank/agents/executor/retry"
	"chainguard.dev/thinktank/agents/promptbuilder"
	"chainguard.dev/thinktank/agents/submitresult"
	"chainguard.dev/thinktank/agents/toolcall"
	"chainguard.dev/thinktank/agents/toolcall/openaitool"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type answer struct {
	Text string
}

func (a *answer) UnmarshalText(b []byte) error {
	a.Text = string(b)
	return nil
}

type topicRequest struct {
	Topic string
}

func (r topicRequest) Bind(p *promptbuilder.Prompt) (*promptbuilder.Prompt, error) {
	return p.BindJSON("topic", r.Topic)
}

// completion renders a minimal chat.completion body.
func completion(message map[string]any) map[string]any {
	return map[string]any{
		"id":      "cmpl",
		"object":  "chat.completion",
		"created": 1,
		"model":   "gpt-4o",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       message,
		}},
		"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
	}
}

func newServer(t *testing.T, responses ...map[string]any) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(calls.Add(1)) - 1
		if n >= len(responses) {
			http.Error(w, "unexpected request", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(responses[n]); err != nil {
			t.Errorf("encode: %v", err)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newExecutor(t *testing.T, srv *httptest.Server) openaiexecutor.Interface[topicRequest, *answer] {
	t.Helper()
	client := openai.NewClient(option.WithAPIKey("test"), option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	exec, err := openaiexecutor.New[topicRequest, *answer](client,
		promptbuilder.MustNewPrompt("Discuss {{topic}}"),
		openaiexecutor.WithRetryConfig[topicRequest, *answer](retry.RetryConfig{MaxRetries: 0}),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return exec
}

func TestExecuteToolLoop(t *testing.T) {
	srv, calls := newServer(t,
		completion(map[string]any{
			"role":    "assistant",
			"content": "",
			"tool_calls": []map[string]any{{
				"id":       "call_1",
				"type":     "function",
				"function": map[string]any{"name": "web_search", "arguments": `{"query":"edtech"}`},
			}},
		}),
		completion(map[string]any{"role": "assistant", "content": "# Vision\n\nPersonal tutors for all."}),
	)

	var searched string
	tools := openaitool.Map(map[string]toolcall.Tool[*answer]{
		"web_search": {
			Def: toolcall.Definition{Name: "web_search", Parameters: []toolcall.Parameter{{Name: "query", Type: "string", Required: true}}},
			Handler: func(_ context.Context, call toolcall.ToolCall, _ *agenttrace.Trace[*answer], _ **answer) map[string]any {
				searched, _ = call.Args["query"].(string)
				return toolcall.OK("1. result").Response()
			},
		},
	})

	got, err := newExecutor(t, srv).Execute(context.Background(), topicRequest{Topic: "education"}, tools)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if searched != "edtech" {
		t.Errorf("tool query: got = %q, wanted = edtech", searched)
	}
	if got == nil || got.Text != "# Vision\n\nPersonal tutors for all." {
		t.Errorf("Execute(): got = %+v", got)
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("requests: got = %d, wanted = 2", n)
	}
}

func TestExecuteSubmitResult(t *testing.T) {
	srv, calls := newServer(t, completion(map[string]any{
		"role":    "assistant",
		"content": "",
		"tool_calls": []map[string]any{{
			"id":       "call_1",
			"type":     "function",
			"function": map[string]any{"name": "submit_result", "arguments": `{"reasoning":"done"}`},
		}},
	}))

	tools := map[string]openaitool.Metadata[*answer]{
		"submit_result": openaitool.FromTool(toolcall.Tool[*answer]{
			Def: toolcall.Definition{Name: "submit_result"},
			Handler: func(_ context.Context, _ toolcall.ToolCall, _ *agenttrace.Trace[*answer], result **answer) map[string]any {
				*result = &answer{Text: "submitted"}
				return map[string]any{"success": true}
			},
		}),
	}

	got, err := newExecutor(t, srv).Execute(context.Background(), topicRequest{Topic: "x"}, tools)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got.Text != "submitted" {
		t.Errorf("Execute(): got = %q, wanted = submitted", got.Text)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("requests: got = %d, wanted = 1", n)
	}
}

func TestExecuteEmptyAnswer(t *testing.T) {
	srv, _ := newServer(t, completion(map[string]any{"role": "assistant", "content": ""}))

	_, err := newExecutor(t, srv).Execute(context.Background(), topicRequest{Topic: "x"}, nil)
	if !errors.Is(err, submitresult.ErrNotSubmitted) {
		t.Errorf("Execute(): got = %v, wanted ErrNotSubmitted", err)
	}
}

func TestIsRetryable(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"error":{"message":"slow down","type":"rate_limit"}}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completion(map[string]any{"role": "assistant", "content": "ok"}))
	}))
	t.Cleanup(srv.Close)

	client := openai.NewClient(option.WithAPIKey("test"), option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	exec, err := openaiexecutor.New[topicRequest, *answer](client,
		promptbuilder.MustNewPrompt("Discuss {{topic}}"),
		openaiexecutor.WithRetryConfig[topicRequest, *answer](retry.RetryConfig{MaxRetries: 2, BaseBackoff: time.Millisecond, MaxBackoff: time.Millisecond}),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got, err := exec.Execute(context.Background(), topicRequest{Topic: "x"}, nil)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got.Text != "ok" || attempts.Load() != 2 {
		t.Errorf("Execute(): got = (%q, %d attempts), wanted (ok, 2)", got.Text, attempts.Load())
	}
}

func TestIsModel(t *testing.T) {
	for model, want := range map[string]bool{
		"gpt-4o":            true,
		"o3-mini":           true,
		"o4-mini":           true,
		"claude-sonnet-4-5": false,
		"gemini-2.5-pro":    false,
	} {
		if got := openaiexecutor.IsModel(model); got != want {
			t.Errorf("IsModel(%q): got = %v, wanted = %v", model, got, want)
		}
	}
}
