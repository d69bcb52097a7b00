/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metaagent

import (
	"context"
	"fmt"

	"chainguard.dev/thinktank/agents/executor/googleexecutor"
	"chainguard.dev/thinktank/agents/promptbuilder"
	"chainguard.dev/thinktank/agents/toolcall"
	"chainguard.dev/thinktank/agents/toolcall/googletool"
	"google.golang.org/genai"
)

// googleAgent implements Agent using the Gemini API.
type googleAgent[Req promptbuilder.Bindable, Resp, CB any] struct {
	executor googleexecutor.Interface[Req, Resp]
	config   Config[Resp, CB]
	submit   toolcall.Tool[Resp]
}

func newGoogleAgent[Req promptbuilder.Bindable, Resp, CB any](
	ctx context.Context,
	apiKey, model string,
	config Config[Resp, CB],
	submit toolcall.Tool[Resp],
) (Agent[Req, Resp, CB], error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Google AI client: %w", err)
	}

	executorOpts := []googleexecutor.Option[Req, Resp]{
		googleexecutor.WithModel[Req, Resp](model),
		googleexecutor.WithMaxOutputTokens[Req, Resp](32768),
	}
	if config.Temperature != nil {
		executorOpts = append(executorOpts, googleexecutor.WithTemperature[Req, Resp](float32(*config.Temperature)))
	}
	if config.SystemInstructions != nil {
		executorOpts = append(executorOpts, googleexecutor.WithSystemInstructions[Req, Resp](config.SystemInstructions))
	}

	executor, err := googleexecutor.New[Req, Resp](client, config.UserPrompt, executorOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating Google executor: %w", err)
	}

	return &googleAgent[Req, Resp, CB]{
		executor: executor,
		config:   config,
		submit:   submit,
	}, nil
}

func (a *googleAgent[Req, Resp, CB]) Execute(ctx context.Context, request Req, callbacks CB) (Resp, error) {
	return a.executor.Execute(ctx, request, googletool.Map(toolsFor(a.config, a.submit, callbacks)))
}
