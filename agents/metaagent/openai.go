/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metaagent

import (
	"context"
	"fmt"

	"chainguard.dev/thinktank/agents/executor/openaiexecutor"
	"chainguard.dev/thinktank/agents/promptbuilder"
	"chainguard.dev/thinktank/agents/toolcall"
	"chainguard.dev/thinktank/agents/toolcall/openaitool"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// openaiAgent implements Agent using OpenAI chat completions.
type openaiAgent[Req promptbuilder.Bindable, Resp, CB any] struct {
	executor openaiexecutor.Interface[Req, Resp]
	config   Config[Resp, CB]
	submit   toolcall.Tool[Resp]
}

func newOpenAIAgent[Req promptbuilder.Bindable, Resp, CB any](
	apiKey, model string,
	config Config[Resp, CB],
	submit toolcall.Tool[Resp],
) (Agent[Req, Resp, CB], error) {
	client := openai.NewClient(option.WithAPIKey(apiKey))

	executorOpts := []openaiexecutor.Option[Req, Resp]{
		openaiexecutor.WithModel[Req, Resp](model),
		openaiexecutor.WithMaxTokens[Req, Resp](16000),
	}
	if config.Temperature != nil {
		executorOpts = append(executorOpts, openaiexecutor.WithTemperature[Req, Resp](*config.Temperature))
	}
	if config.SystemInstructions != nil {
		executorOpts = append(executorOpts, openaiexecutor.WithSystemInstructions[Req, Resp](config.SystemInstructions))
	}

	executor, err := openaiexecutor.New[Req, Resp](client, config.UserPrompt, executorOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating OpenAI executor: %w", err)
	}

	return &openaiAgent[Req, Resp, CB]{
		executor: executor,
		config:   config,
		submit:   submit,
	}, nil
}

func (a *openaiAgent[Req, Resp, CB]) Execute(ctx context.Context, request Req, callbacks CB) (Resp, error) {
	return a.executor.Execute(ctx, request, openaitool.Map(toolsFor(a.config, a.submit, callbacks)))
}
