/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package crew

import (
	"context"
	"fmt"

	"chainguard.dev/thinktank/agents/metaagent"
	"chainguard.dev/thinktank/agents/toolcall"
	"chainguard.dev/thinktank/thinktank/discussions"
	"chainguard.dev/thinktank/thinktank/research"
)

// AgentOptions configures NewAgents.
type AgentOptions struct {
	Model       string
	Credentials metaagent.Credentials
	Temperature *float64
	Research    *research.Tools
	// Session receives store, search and history calls for this run.
	Session *discussions.Session
}

// NewAgents builds one agent per role, each limited to its own tools.
func NewAgents(ctx context.Context, cfg *Config, opts AgentOptions) (map[Role]Agent, error) {
	if opts.Research == nil {
		return nil, fmt.Errorf("research tools are required")
	}
	if opts.Session == nil {
		return nil, fmt.Errorf("a discussions session is required")
	}
	base := Toolbox(opts.Research)

	agents := make(map[Role]Agent, len(Roles()))
	for _, s := range cfg.Stages() {
		system, err := cfg.systemPrompt(s.Role)
		if err != nil {
			return nil, fmt.Errorf("agent %s: %w", s.Role, err)
		}
		a, err := metaagent.New[*Request, *StageResult, *discussions.Session](ctx, opts.Model, metaagent.Config[*StageResult, *discussions.Session]{
			SystemInstructions: system,
			UserPrompt:         s.Prompt,
			Tools:              toolcall.Select(base, s.Role.Tools()...),
			Credentials:        opts.Credentials,
			Temperature:        opts.Temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("agent %s: %w", s.Role, err)
		}
		agents[s.Role] = sessionAgent{agent: a, session: opts.Session}
	}
	return agents, nil
}

// Toolbox offers every research and discussion tool.
func Toolbox(t *research.Tools) toolcall.ToolProvider[*StageResult, *discussions.Session] {
	return toolcall.Merge(
		research.NewProvider[*StageResult, *discussions.Session](t),
		discussions.NewProvider[*StageResult](),
	)
}

type sessionAgent struct {
	agent   metaagent.Agent[*Request, *StageResult, *discussions.Session]
	session *discussions.Session
}

func (a sessionAgent) Execute(ctx context.Context, req *Request) (*StageResult, error) {
	return a.agent.Execute(ctx, req, a.session)
}
