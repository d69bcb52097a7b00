/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package openaiexecutor

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
	"chainguard.dev/thinktank/agents/toolcall/openaitool"
	"github.com/chainguard-dev/clog"
	"github.com/openai/openai-go"
)

// DefaultModel is used when WithModel is not given.
const DefaultModel = "gpt-4o"

// Interface is the public interface for OpenAI agent execution
type Interface[Request promptbuilder.Bindable, Response any] interface {
	// Execute runs the agent conversation with the given request and tools
	Execute(ctx context.Context, request Request, tools map[string]openaitool.Metadata[Response]) (Response, error)
}

type executor[Request promptbuilder.Bindable, Response any] struct {
	client             openai.Client
	model              string
	prompt             *promptbuilder.Prompt
	systemInstructions *promptbuilder.Prompt
	temperature        *float64 // nil leaves the model default, which reasoning models require
	maxTokens          int64
	maxTurns           int
	genaiMetrics       *metrics.GenAI
	retryConfig        retry.RetryConfig
}

// New creates a new Executor with minimal required configuration
func New[Request promptbuilder.Bindable, Response any](
	client openai.Client,
	prompt *promptbuilder.Prompt,
	opts ...Option[Request, Response],
) (Interface[Request, Response], error) {
	if prompt == nil {
		return nil, errors.New("prompt cannot be nil")
	}

	e := &executor[Request, Response]{
		client:       client,
		model:        DefaultModel,
		prompt:       prompt,
		maxTokens:    8192,
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
	tools map[string]openaitool.Metadata[Response],
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
		With("model", e.model).
		With("tools", len(tools)).
		Info("Starting OpenAI agent execution")

	var messages []openai.ChatCompletionMessageParamUnion
	if e.systemInstructions != nil {
		systemPrompt, err := e.systemInstructions.Build()
		if err != nil {
			return response, fmt.Errorf("building system prompt: %w", err)
		}
		messages = append(messages, openai.SystemMessage(systemPrompt))
	}
	messages = append(messages, openai.UserMessage(prompt))

	params := openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(e.model),
		Messages:            messages,
		MaxCompletionTokens: openai.Int(e.maxTokens),
	}
	if e.temperature != nil {
		params.Temperature = openai.Float(*e.temperature)
	}
	for _, meta := range tools {
		params.Tools = append(params.Tools, meta.Definition)
	}

	var finalResult Response
	for turn := 0; turn < e.maxTurns; turn++ {
		completion, err := retry.RetryWithBackoff(ctx, e.retryConfig, "chat_completion", isRetryableOpenAIError, func() (*openai.ChatCompletion, error) {
			return e.client.Chat.Completions.New(ctx, params)
		})
		if err != nil {
			return response, fmt.Errorf("failed to create chat completion: %w", err)
		}

		if completion.Usage.PromptTokens > 0 || completion.Usage.CompletionTokens > 0 {
			e.genaiMetrics.RecordTokens(ctx, e.model, completion.Usage.PromptTokens, completion.Usage.CompletionTokens)
			trace.RecordTokenUsage(e.model, completion.Usage.PromptTokens, completion.Usage.CompletionTokens)
		}

		if len(completion.Choices) == 0 {
			return response, errors.New("no choices in completion")
		}
		msg := completion.Choices[0].Message

		if len(msg.ToolCalls) > 0 {
			params.Messages = append(params.Messages, msg.ToParam())

			for _, tc := range msg.ToolCalls {
				log.With("tool", tc.Function.Name).With("id", tc.ID).Info("Executing tool call")
				e.genaiMetrics.RecordToolCall(ctx, e.model, tc.Function.Name)

				var out map[string]any
				if meta, ok := tools[tc.Function.Name]; ok {
					out = meta.Handler(ctx, tc, trace, &finalResult)
				} else {
					log.With("tool", tc.Function.Name).Error("Unknown tool requested")
					trace.BadToolCall(tc.ID, tc.Function.Name,
						map[string]any{"arguments": tc.Function.Arguments},
						fmt.Errorf("unknown tool: %q", tc.Function.Name))
					out = map[string]any{"error": fmt.Sprintf("unknown tool: %q", tc.Function.Name)}
				}

				if !reflect.ValueOf(&finalResult).Elem().IsZero() {
					log.Info("Tool set final result, exiting conversation loop")
					return finalResult, nil
				}

				b, err := json.Marshal(out)
				if err != nil {
					return response, fmt.Errorf("failed to marshal tool result: %w", err)
				}
				params.Messages = append(params.Messages, openai.ToolMessage(string(b), tc.ID))
			}
			continue
		}

		if msg.Content == "" {
			return response, submitresult.ErrNotSubmitted
		}

		resp, err := result.Parse[Response](msg.Content)
		if err != nil {
			log.With("response_length", len(msg.Content)).
				With("error", err).
				Error("Failed to parse OpenAI response")
			return response, fmt.Errorf("failed to parse response: %w", err)
		}
		log.Info("Successfully completed OpenAI agent execution")
		return resp, nil
	}

	return response, fmt.Errorf("conversation exceeded %d turns", e.maxTurns)
}
