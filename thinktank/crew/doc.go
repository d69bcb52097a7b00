/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package crew runs the think tank: six role agents in a fixed sequential
// pipeline where every stage sees the outputs of the stages before it.
//
// Prompts come from YAML compiled into the binary:
//
//	cfg, err := crew.LoadConfig()
//	agents, err := crew.NewAgents(ctx, cfg, crew.AgentOptions{...})
//	p := &crew.Pipeline{
//		Stages:     cfg.Stages(),
//		Agents:     agents,
//		Middleware: []crew.Middleware{crew.Logging(), crew.Transcript(logger)},
//	}
//	out, err := p.Run(ctx, "solar-powered water purifiers")
//
// Stage invocations pass through Middleware, which is how the transcript is
// captured. The synthesis stage's output is the report and is written to
// Pipeline.ReportPath.
package crew
