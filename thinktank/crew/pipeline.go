/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package crew

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"chainguard.dev/thinktank/agents/agenttrace"
	"chainguard.dev/thinktank/thinktank/discussions"
	"github.com/chainguard-dev/clog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultReportPath is where the synthesis report is written.
const DefaultReportPath = "thinktank_report.md"

var (
	stageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "thinktank_stage_duration_seconds",
			Help:    "Think tank stage duration by role",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
		[]string{"role"},
	)
	stageFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thinktank_stage_failures_total",
			Help: "Think tank stage failures by role",
		},
		[]string{"role"},
	)
)

// Agent produces the result of one stage.
type Agent interface {
	Execute(ctx context.Context, req *Request) (*StageResult, error)
}

// AgentFunc adapts a function to Agent.
type AgentFunc func(ctx context.Context, req *Request) (*StageResult, error)

func (f AgentFunc) Execute(ctx context.Context, req *Request) (*StageResult, error) {
	return f(ctx, req)
}

// StageOutput is the result of a completed stage.
type StageOutput struct {
	Role     Role
	Result   *StageResult
	Duration time.Duration
}

// Outcome is the result of a completed run.
type Outcome struct {
	Topic   string
	Results []StageOutput
	// Report is the synthesis stage's content.
	Report     string
	ReportPath string
}

// Discussion converts the outcome for storage.
func (o *Outcome) Discussion(transcript string) discussions.Discussion {
	d := discussions.Discussion{
		Topic:      o.Topic,
		Report:     o.Report,
		Transcript: transcript,
	}
	for _, r := range o.Results {
		d.Outputs = append(d.Outputs, discussions.RoleOutput{Label: r.Role.Label(), Content: r.Result.Content})
	}
	return d
}

// Pipeline runs stages one after another.
type Pipeline struct {
	Stages     []Stage
	Agents     map[Role]Agent
	Middleware []Middleware
	// ReportPath defaults to DefaultReportPath.
	ReportPath string
	// Now defaults to time.Now.
	Now func() time.Time
}

// Run executes every stage in order. Stage i receives the results of stages
// before it. The first failure ends the run and nothing is written.
func (p *Pipeline) Run(ctx context.Context, topic string) (*Outcome, error) {
	if len(p.Stages) == 0 {
		return nil, errors.New("running think tank: no stages")
	}
	for _, s := range p.Stages {
		if p.Agents[s.Role] == nil {
			return nil, fmt.Errorf("running think tank: no agent for %s", s.Role)
		}
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	path := p.ReportPath
	if path == "" {
		path = DefaultReportPath
	}

	runID := agenttrace.NewRunID()
	log := clog.FromContext(ctx).With("topic", topic, "run_id", runID)
	ctx = clog.WithLogger(ctx, log)
	wrap := Chain(p.Middleware...)
	year := now().Year()

	out := &Outcome{Topic: topic, ReportPath: path}
	for i, s := range p.Stages {
		req := &Request{Topic: topic, CurrentYear: year, Context: out.Results}
		bound, err := req.Bind(s.Prompt)
		if err != nil {
			return nil, fmt.Errorf("running think tank: stage %s: binding prompt: %w", s.Role, err)
		}
		prompt, err := bound.Build()
		if err != nil {
			return nil, fmt.Errorf("running think tank: stage %s: building prompt: %w", s.Role, err)
		}

		agent := p.Agents[s.Role]
		h := wrap(func(ctx context.Context, call *Call) (*StageResult, error) {
			return agent.Execute(ctx, call.Request)
		})

		stageCtx := agenttrace.WithExecutionContext(ctx, agenttrace.ExecutionContext{
			RunID: runID,
			Topic: topic,
			Role:  string(s.Role),
			Stage: i + 1,
		})
		start := now()
		res, err := h(stageCtx, &Call{Role: s.Role, Label: s.Role.Label(), Prompt: prompt, Request: req})
		elapsed := now().Sub(start)
		stageDuration.WithLabelValues(string(s.Role)).Observe(elapsed.Seconds())
		if err == nil && res == nil {
			err = errors.New("agent returned no result")
		}
		if err != nil {
			stageFailures.WithLabelValues(string(s.Role)).Inc()
			return nil, fmt.Errorf("running think tank: stage %s: %w", s.Role, err)
		}
		out.Results = append(out.Results, StageOutput{Role: s.Role, Result: res, Duration: elapsed})
	}

	out.Report = out.Results[len(out.Results)-1].Result.Content
	if err := os.WriteFile(path, []byte(out.Report), 0o644); err != nil {
		return nil, fmt.Errorf("running think tank: writing report: %w", err)
	}
	log.With("path", path).Info("Wrote think tank report")
	return out, nil
}
