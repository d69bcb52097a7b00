/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package claudeexecutor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"chainguard.dev/thinktank/agents/agenttrace"
	"chainguard.dev/thinktank/agents/executor/retry"
	"chainguard.dev/thinktank/agents/metrics"
	"chainguard.dev/thinktank/agents/promptbuilder"
	"chainguard.dev/thinktank/agents/result"
	"chainguard.dev/thinktank/agents/submitresult"
	"chainguard.dev/thinktank/agents/toolcall/claudetool"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/chainguard-dev/clog"
)

// DefaultModel is used when WithModel is not given.
const DefaultModel = "claude-sonnet-4-5"

// Interface is the public interface for Claude agent execution
type Interface[Request promptbuilder.Bindable, Response any] interface {
	// Execute runs the agent conversation with the given request and tools
	Execute(ctx context.Context, request Request, tools map[string]claudetool.Metadata[Response]) (Response, error)
}

type executor[Request promptbuilder.Bindable, Response any] struct {
	client               anthropic.Client
	modelName            string
	systemInstructions   *promptbuilder.Prompt
	prompt               *promptbuilder.Prompt
	maxTokens            int64
	temperature          float64
	maxTurns             int
	thinkingBudgetTokens *int64 // nil = disabled
	genaiMetrics         *metrics.GenAI
	retryConfig          retry.RetryConfig
}

// New creates a new Executor with minimal required configuration
func New[Request promptbuilder.Bindable, Response any](
	client anthropic.Client,
	prompt *promptbuilder.Prompt,
	opts ...Option[Request, Response],
) (Interface[Request, Response], error) {
	if prompt == nil {
		return nil, errors.New("prompt cannot be nil")
	}

	e := &executor[Request, Response]{
		client:       client,
		modelName:    DefaultModel,
		prompt:       prompt,
		maxTokens:    8192,
		temperature:  0.7,
		maxTurns:     25,
		genaiMetrics: metrics.NewGenAI(metrics.MeterName),
		retryConfig:  retry.DefaultRetryConfig(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	return e, nil
}

// Execute runs the agent conversation with the given request and tools
func (e *executor[Request, Response]) Execute(
	ctx context.Context,
	request Request,
	tools map[string]claudetool.Metadata[Response],
) (response Response, err error) {
	log := clog.FromContext(ctx)

	boundPrompt, err := request.Bind(e.prompt)
	if err != nil {
		return response, fmt.Errorf("failed to bind request to prompt: %w", err)
	}
	prompt, err := boundPrompt.Build()
	if err != nil {
		return response, fmt.Errorf("failed to build prompt: %w", err)
	}

	trace := agenttrace.StartTrace[Response](ctx, prompt)
	defer func() {
		trace.Complete(response, err)
	}()
	ctx = trace.Context()

	log.With("prompt_length", len(prompt)).
		With("model", e.modelName).
		With("tools", len(tools)).
		Info("Starting Claude agent execution")

	toolDefs := make([]anthropic.ToolUnionParam, 0, len(tools))
	for _, meta := range tools {
		toolDefs = append(toolDefs, anthropic.ToolUnionParam{
			OfTool: &meta.Definition,
		})
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(e.modelName),
		MaxTokens: e.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		Tools:       toolDefs,
		Temperature: anthropic.Float(e.temperature),
	}

	if e.systemInstructions != nil {
		systemPrompt, err := e.systemInstructions.Build()
		if err != nil {
			return response, fmt.Errorf("building system prompt: %w", err)
		}
		params.System = []anthropic.TextBlockParam{{Text: systemPrompt}}
	}

	// Extended thinking requires temperature 1.0.
	if e.thinkingBudgetTokens != nil {
		params.Temperature = anthropic.Float(1.0)
		params.Thinking = anthropic.ThinkingConfigParamUnion{
			OfEnabled: &anthropic.ThinkingConfigEnabledParam{
				BudgetTokens: *e.thinkingBudgetTokens,
			},
		}
	}

	var finalResult Response

	executeToolCall := func(toolUse anthropic.ToolUseBlock) (anthropic.ContentBlockParamUnion, error) {
		log.With("tool", toolUse.Name).With("id", toolUse.ID).Info("Executing tool call")
		e.genaiMetrics.RecordToolCall(ctx, e.modelName, toolUse.Name)

		var out map[string]any
		if meta, ok := tools[toolUse.Name]; ok {
			out = meta.Handler(ctx, toolUse, trace, &finalResult)
		} else {
			log.With("tool", toolUse.Name).Error("Unknown tool requested")
			trace.BadToolCall(toolUse.ID, toolUse.Name,
				map[string]any{"input": string(toolUse.Input)},
				fmt.Errorf("unknown tool: %q", toolUse.Name))
			out = map[string]any{"error": fmt.Sprintf("unknown tool: %q", toolUse.Name)}
		}

		b, err := json.Marshal(out)
		if err != nil {
			return anthropic.ContentBlockParamUnion{}, fmt.Errorf("failed to marshal tool result: %w", err)
		}
		return anthropic.NewToolResultBlock(toolUse.ID, string(b), false), nil
	}

	for turn := 0; turn < e.maxTurns; turn++ {
		message, err := retry.RetryWithBackoff(ctx, e.retryConfig, "stream_message", isRetryableClaudeError, func() (anthropic.Message, error) {
			stream := e.client.Messages.NewStreaming(ctx, params)
			defer stream.Close()
			var msg anthropic.Message
			for stream.Next() {
				if err := msg.Accumulate(stream.Current()); err != nil {
					return msg, fmt.Errorf("failed to accumulate event: %w", err)
				}
			}
			return msg, stream.Err()
		})
		if err != nil {
			return response, fmt.Errorf("failed to stream Claude response: %w", err)
		}

		if message.Usage.InputTokens > 0 || message.Usage.OutputTokens > 0 {
			e.genaiMetrics.RecordTokens(ctx, e.modelName, message.Usage.InputTokens, message.Usage.OutputTokens)
			trace.RecordTokenUsage(e.modelName, message.Usage.InputTokens, message.Usage.OutputTokens)
		}

		var toolUseBlocks []anthropic.ToolUseBlock
		var textContent string
		for _, content := range message.Content {
			switch content.Type {
			case "text":
				textContent += content.Text
			case "tool_use":
				toolUseBlocks = append(toolUseBlocks, anthropic.ToolUseBlock{
					ID:    content.ID,
					Name:  content.Name,
					Input: content.Input,
				})
			case "thinking":
				trace.AddReasoning(content.Thinking)
			}
		}

		if len(toolUseBlocks) > 0 {
			params.Messages = append(params.Messages, message.ToParam())

			toolResults := make([]anthropic.ContentBlockParamUnion, 0, len(toolUseBlocks))
			for _, toolUse := range toolUseBlocks {
				res, err := executeToolCall(toolUse)
				if err != nil {
					return response, err
				}
				toolResults = append(toolResults, res)

				if !reflect.ValueOf(&finalResult).Elem().IsZero() {
					log.Info("Tool set final result, exiting conversation loop")
					return finalResult, nil
				}
			}

			params.Messages = append(params.Messages, anthropic.NewUserMessage(toolResults...))
			continue
		}

		if textContent == "" {
			return response, submitresult.ErrNotSubmitted
		}

		resp, err := result.Parse[Response](textContent)
		if err != nil {
			log.With("response_length", len(textContent)).
				With("error", err).
				Error("Failed to parse Claude response")
			return response, fmt.Errorf("failed to parse response: %w", err)
		}
		log.Info("Successfully completed Claude agent execution")
		return resp, nil
	}

	return response, fmt.Errorf("conversation exceeded %d turns", e.maxTurns)
}
