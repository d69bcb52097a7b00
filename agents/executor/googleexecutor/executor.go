/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googleexecutor

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"chainguard.dev/thinktank/agents/agenttrace"
	"chainguard.dev/thinktank/agents/executor/retry"
	"chainguard.dev/thinktank/agents/metrics"
	"chainguard.dev/thinktank/agents/promptbuilder"
	"chainguard.dev/thinktank/agents/result"
	"chainguard.dev/thinktank/agents/submitresult"
	"chainguard.dev/thinktank/agents/toolcall/googletool"
	"github.com/chainguard-dev/clog"
	"google.golang.org/genai"
)

// DefaultModel is used when WithModel is not given.
const DefaultModel = "gemini-2.5-flash"

// Interface defines the contract for Google AI executors
type Interface[Request promptbuilder.Bindable, Response any] interface {
	// Execute runs the Google AI conversation with the given request and tools
	Execute(ctx context.Context, request Request, tools map[string]googletool.Metadata[Response]) (Response, error)
}

type executor[Request promptbuilder.Bindable, Response any] struct {
	client             *genai.Client
	prompt             *promptbuilder.Prompt
	model              string
	temperature        float32
	maxOutputTokens    int32
	maxTurns           int
	systemInstructions *promptbuilder.Prompt
	thinkingBudget     *int32 // nil = disabled
	genaiMetrics       *metrics.GenAI
	retryConfig        retry.RetryConfig
}

// New creates a new Google AI executor with the given configuration
func New[Request promptbuilder.Bindable, Response any](
	client *genai.Client,
	prompt *promptbuilder.Prompt,
	options ...Option[Request, Response],
) (Interface[Request, Response], error) {
	if client == nil {
		return nil, errors.New("client is required")
	}
	if prompt == nil {
		return nil, errors.New("prompt is required")
	}

	exec := &executor[Request, Response]{
		client:          client,
		prompt:          prompt,
		model:           DefaultModel,
		temperature:     0.7,
		maxOutputTokens: 8192,
		maxTurns:        25,
		genaiMetrics:    metrics.NewGenAI(metrics.MeterName),
		retryConfig:     retry.DefaultRetryConfig(),
	}

	for _, opt := range options {
		if err := opt(exec); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	return exec, nil
}

// Execute implements the Interface
func (e *executor[Request, Response]) Execute(
	ctx context.Context,
	request Request,
	tools map[string]googletool.Metadata[Response],
) (resp Response, err error) {
	log := clog.FromContext(ctx)

	boundPrompt, err := request.Bind(e.prompt)
	if err != nil {
		return resp, fmt.Errorf("failed to bind request to prompt: %w", err)
	}
	prompt, err := boundPrompt.Build()
	if err != nil {
		return resp, fmt.Errorf("failed to build prompt: %w", err)
	}

	trace := agenttrace.StartTrace[Response](ctx, prompt)
	defer func() {
		trace.Complete(resp, err)
	}()
	ctx = trace.Context()

	toolDeclarations := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, meta := range tools {
		toolDeclarations = append(toolDeclarations, meta.Definition)
	}

	config := &genai.GenerateContentConfig{
		Temperature:     ptr(e.temperature),
		MaxOutputTokens: e.maxOutputTokens,
	}

	if e.systemInstructions != nil {
		systemPrompt, err := e.systemInstructions.Build()
		if err != nil {
			return resp, fmt.Errorf("building system prompt: %w", err)
		}
		config.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	if len(toolDeclarations) > 0 {
		config.Tools = []*genai.Tool{{
			FunctionDeclarations: toolDeclarations,
		}}
	}

	if e.thinkingBudget != nil {
		config.ThinkingConfig = &genai.ThinkingConfig{
			IncludeThoughts: true,
			ThinkingBudget:  e.thinkingBudget,
		}
	}

	log.With("model", e.model).With("tools", len(tools)).Info("Creating Google AI chat session")

	chat, err := e.client.Chats.Create(ctx, e.model, config, nil)
	if err != nil {
		return resp, fmt.Errorf("failed to create chat with model %q: %w", e.model, err)
	}

	send := func(operation string, parts ...*genai.Part) (*genai.GenerateContentResponse, error) {
		r, err := retry.RetryWithBackoff(ctx, e.retryConfig, operation, isRetryableGeminiError, func() (*genai.GenerateContentResponse, error) {
			return chat.Send(ctx, parts...)
		})
		if err != nil {
			return nil, err
		}
		if r != nil && r.UsageMetadata != nil {
			in, out := int64(r.UsageMetadata.PromptTokenCount), int64(r.UsageMetadata.CandidatesTokenCount)
			e.genaiMetrics.RecordTokens(ctx, e.model, in, out)
			trace.RecordTokenUsage(e.model, in, out)
		}
		return r, nil
	}

	response, err := send("send_prompt", genai.NewPartFromText(prompt))
	if err != nil {
		return resp, fmt.Errorf("failed to send prompt: %w", err)
	}

	var finalResult Response
	for turn := 0; turn < e.maxTurns; turn++ {
		if len(response.Candidates) == 0 {
			return resp, errors.New("no content generated - no candidates")
		}
		candidate := response.Candidates[0]

		if candidate.FinishReason == genai.FinishReasonMalformedFunctionCall {
			log.With("finish_message", candidate.FinishMessage).
				Warn("Model attempted a malformed function call, asking it to retry")

			names := make([]string, 0, len(toolDeclarations))
			for _, decl := range toolDeclarations {
				names = append(names, decl.Name)
			}
			response, err = send("send_malformed_retry", genai.NewPartFromText(
				fmt.Sprintf("The function call was malformed. Please try again using the available functions: %v", names)))
			if err != nil {
				return resp, fmt.Errorf("failed to send retry message after malformed function call: %w", err)
			}
			continue
		}

		if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
			return resp, submitresult.ErrNotSubmitted
		}

		var calls []*genai.FunctionCall
		var text string
		for _, part := range candidate.Content.Parts {
			switch {
			case part.Thought:
				trace.AddReasoning(part.Text)
			case part.FunctionCall != nil:
				calls = append(calls, part.FunctionCall)
			case part.Text != "":
				text += part.Text
			}
		}

		if len(calls) > 0 {
			parts := make([]*genai.Part, 0, len(calls))
			for _, call := range calls {
				log.With("tool", call.Name).With("id", call.ID).Info("Executing tool call")
				e.genaiMetrics.RecordToolCall(ctx, e.model, call.Name)

				var fr *genai.FunctionResponse
				if meta, ok := tools[call.Name]; ok {
					fr = meta.Handler(ctx, call, trace, &finalResult)
				} else {
					log.With("function", call.Name).Error("Unknown function call requested by model")
					trace.BadToolCall(call.ID, call.Name, call.Args, fmt.Errorf("unknown function: %q", call.Name))
					fr = &genai.FunctionResponse{
						ID:       call.ID,
						Name:     call.Name,
						Response: map[string]any{"error": fmt.Sprintf("unknown function: %q", call.Name)},
					}
				}

				if !reflect.ValueOf(&finalResult).Elem().IsZero() {
					log.Info("Tool set final result, exiting conversation loop")
					return finalResult, nil
				}
				parts = append(parts, &genai.Part{FunctionResponse: fr})
			}

			response, err = send("send_tool_responses", parts...)
			if err != nil {
				return resp, fmt.Errorf("failed to send tool responses: %w", err)
			}
			continue
		}

		if text == "" {
			return resp, submitresult.ErrNotSubmitted
		}

		out, err := result.Parse[Response](text)
		if err != nil {
			log.With("response_length", len(text)).With("error", err).Error("Failed to parse AI response")
			return resp, fmt.Errorf("failed to parse AI response: %w", err)
		}
		return out, nil
	}

	return resp, fmt.Errorf("conversation exceeded %d turns", e.maxTurns)
}

func ptr[T any](v T) *T {
	return &v
}
