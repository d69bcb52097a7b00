/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metaagent

import (
	"context"
	"fmt"

	"chainguard.dev/thinktank/agents/executor/claudeexecutor"
	"chainguard.dev/thinktank/agents/promptbuilder"
	"chainguard.dev/thinktank/agents/toolcall"
	"chainguard.dev/thinktank/agents/toolcall/claudetool"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// claudeAgent implements Agent using the Anthropic Messages API.
type claudeAgent[Req promptbuilder.Bindable, Resp, CB any] struct {
	executor claudeexecutor.Interface[Req, Resp]
	config   Config[Resp, CB]
	submit   toolcall.Tool[Resp]
}

func newClaudeAgent[Req promptbuilder.Bindable, Resp, CB any](
	apiKey, model string,
	config Config[Resp, CB],
	submit toolcall.Tool[Resp],
) (Agent[Req, Resp, CB], error) {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	executorOpts := []claudeexecutor.Option[Req, Resp]{
		claudeexecutor.WithModel[Req, Resp](model),
		claudeexecutor.WithMaxTokens[Req, Resp](16000),
	}
	if config.Temperature != nil {
		executorOpts = append(executorOpts, claudeexecutor.WithTemperature[Req, Resp](*config.Temperature))
	}
	if config.SystemInstructions != nil {
		executorOpts = append(executorOpts, claudeexecutor.WithSystemInstructions[Req, Resp](config.SystemInstructions))
	}

	executor, err := claudeexecutor.New[Req, Resp](client, config.UserPrompt, executorOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating Claude executor: %w", err)
	}

	return &claudeAgent[Req, Resp, CB]{
		executor: executor,
		config:   config,
		submit:   submit,
	}, nil
}

func (a *claudeAgent[Req, Resp, CB]) Execute(ctx context.Context, request Req, callbacks CB) (Resp, error) {
	return a.executor.Execute(ctx, request, claudetool.Map(toolsFor(a.config, a.submit, callbacks)))
}
