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
	"path/filepath"
	"strings"
	"testing"
	"time"

	"chainguard.dev/thinktank/agents/agenttrace"
	"chainguard.dev/thinktank/agents/toolcall"
	"chainguard.dev/thinktank/thinktank/discussions"
	"chainguard.dev/thinktank/thinktank/transcript"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// scripted answers every stage with "<label> on <topic>" and records the
// order and context it saw.
type scripted struct {
	calls    []Role
	contexts [][]Role
	failOn   Role
}

func (s *scripted) agents() map[Role]Agent {
	out := make(map[Role]Agent)
	for _, r := range Roles() {
		out[r] = AgentFunc(func(_ context.Context, req *Request) (*StageResult, error) {
			s.calls = append(s.calls, r)
			var seen []Role
			for _, c := range req.Context {
				seen = append(seen, c.Role)
			}
			s.contexts = append(s.contexts, seen)
			if r == s.failOn {
				return nil, errors.New("model unavailable")
			}
			return &StageResult{Content: fmt.Sprintf("%s on %s", r.Label(), req.Topic)}, nil
		})
	}
	return out
}

func newPipeline(t *testing.T, s *scripted, mw ...Middleware) *Pipeline {
	t.Helper()
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() = %v", err)
	}
	return &Pipeline{
		Stages:     cfg.Stages(),
		Agents:     s.agents(),
		Middleware: mw,
		ReportPath: filepath.Join(t.TempDir(), "report.md"),
		Now:        func() time.Time { return time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC) },
	}
}

func TestRunOrder(t *testing.T) {
	s := &scripted{}
	p := newPipeline(t, s)

	out, err := p.Run(context.Background(), "solar-powered water purifiers")
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if diff := cmp.Diff(Roles(), s.calls); diff != "" {
		t.Errorf("call order (-want +got):\n%s", diff)
	}
	for i, seen := range s.contexts {
		if diff := cmp.Diff(Roles()[:i], seen, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("stage %d context (-want +got):\n%s", i, diff)
		}
	}

	want := "Synthesis Coordinator on solar-powered water purifiers"
	if out.Report != want {
		t.Errorf("Report: got = %q, wanted = %q", out.Report, want)
	}
	b, err := os.ReadFile(p.ReportPath)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if string(b) != want {
		t.Errorf("report file: got = %q, wanted = %q", b, want)
	}
}

func TestRunAbortsOnFailure(t *testing.T) {
	s := &scripted{failOn: Market}
	p := newPipeline(t, s)

	before := testutil.ToFloat64(stageFailures.WithLabelValues(string(Market)))
	out, err := p.Run(context.Background(), "topic")
	if err == nil {
		t.Fatalf("Run(): got = %+v, wanted error", out)
	}
	if want := "running think tank: stage market_expert: model unavailable"; err.Error() != want {
		t.Errorf("Run() error: got = %q, wanted = %q", err, want)
	}
	if got := s.calls[len(s.calls)-1]; got != Market || len(s.calls) != 4 {
		t.Errorf("calls: got = %v, wanted to stop at market_expert", s.calls)
	}
	if _, err := os.Stat(p.ReportPath); !os.IsNotExist(err) {
		t.Errorf("report: got stat err = %v, wanted not exist", err)
	}
	if got := testutil.ToFloat64(stageFailures.WithLabelValues(string(Market))); got != before+1 {
		t.Errorf("failure counter: got = %v, wanted = %v", got, before+1)
	}
}

func TestRunMissingAgent(t *testing.T) {
	s := &scripted{}
	p := newPipeline(t, s)
	delete(p.Agents, Technical)

	if _, err := p.Run(context.Background(), "topic"); err == nil || !strings.Contains(err.Error(), "no agent for technical_specialist") {
		t.Errorf("Run(): got = %v, wanted missing agent error", err)
	}
	if len(s.calls) != 0 {
		t.Errorf("calls: got = %v, wanted none", s.calls)
	}
}

func TestRunNilResult(t *testing.T) {
	s := &scripted{}
	p := newPipeline(t, s)
	p.Agents[Visionary] = AgentFunc(func(context.Context, *Request) (*StageResult, error) { return nil, nil })

	if _, err := p.Run(context.Background(), "topic"); err == nil {
		t.Error("Run(): got nil error, wanted failure for a nil result")
	}
}

func TestRunStoresDiscussion(t *testing.T) {
	const topic = "solar-powered water purifiers"
	s := &scripted{}
	logger := transcript.New()
	p := newPipeline(t, s, Transcript(logger))

	out, err := p.Run(context.Background(), topic)
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}

	fb := &recordingBackend{}
	session := discussions.NewSession(discussions.NewServiceWithBackend(fb))
	o := session.Store(context.Background(), out.Discussion(logger.Transcript()))
	if o.Kind != toolcall.KindOK {
		t.Fatalf("Store(): got = (%v, %q)", o.Kind, o.Text)
	}

	if got := fb.spec.Topic; got != topic {
		t.Errorf("title: got = %q, wanted = %q", got, topic)
	}
	if got := fb.spec.Status; got != "Completed" {
		t.Errorf("status: got = %q, wanted Completed", got)
	}
	if len(fb.spec.Agents) != 6 {
		t.Errorf("agents: got = %v, wanted all six", fb.spec.Agents)
	}
	// The report paragraph follows the "Final Synthesis Report" heading.
	for i, b := range fb.blocks {
		if b.Text == "Final Synthesis Report" {
			if got := fb.blocks[i+1].Text; got != out.Report {
				t.Errorf("report block: got = %q, wanted = %q", got, out.Report)
			}
		}
	}
	if !strings.Contains(o.Text, "https://notion.so/rec") {
		t.Errorf("Store() text: got = %q", o.Text)
	}
}

func TestRunStoresCanonicalAfterAgentRequest(t *testing.T) {
	const topic = "solar-powered water purifiers"
	s := &scripted{}
	logger := transcript.New()
	p := newPipeline(t, s, Transcript(logger))

	fb := &recordingBackend{}
	session := discussions.NewSession(discussions.NewServiceWithBackend(fb))
	store := discussions.NewProvider[*StageResult]().Tools(session)[discussions.StoreDiscussion]
	p.Agents[Synthesis] = AgentFunc(func(ctx context.Context, req *Request) (*StageResult, error) {
		trace := agenttrace.ByCode[*StageResult]().NewTrace(ctx, "synthesis")
		var res *StageResult
		resp := store.Handler(ctx, toolcall.ToolCall{
			ID:   "1",
			Name: discussions.StoreDiscussion,
			Args: map[string]any{"topic": "Solar-Powered Water Purification"},
		}, trace, &res)
		if resp["status"] != "ok" {
			return nil, fmt.Errorf("store tool: %v", resp)
		}
		return &StageResult{Content: "FINAL synthesis output"}, nil
	})

	out, err := p.Run(context.Background(), topic)
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if fb.pages != 0 {
		t.Fatalf("pages created during the run: got = %d, wanted = 0", fb.pages)
	}

	o := session.Store(context.Background(), out.Discussion(logger.Transcript()))
	if o.Kind != toolcall.KindOK || strings.Contains(o.Text, "already stored") {
		t.Fatalf("Store(): got = (%v, %q)", o.Kind, o.Text)
	}
	if fb.pages != 1 {
		t.Errorf("pages created: got = %d, wanted = 1", fb.pages)
	}
	if got := fb.spec.Topic; got != topic {
		t.Errorf("title: got = %q, wanted = %q", got, topic)
	}
	var headings []string
	for i, b := range fb.blocks {
		if b.Kind == discussions.Heading3 {
			headings = append(headings, b.Text)
		}
		if b.Text == "Final Synthesis Report" {
			if got := fb.blocks[i+1].Text; got != "FINAL synthesis output" {
				t.Errorf("report block: got = %q, wanted = %q", got, "FINAL synthesis output")
			}
		}
	}
	if len(headings) != len(Roles()) || headings[0] != "Visionary Thinker Perspective" {
		t.Errorf("role sections: got = %v, wanted all six in order", headings)
	}
}

func TestRunExecutionContext(t *testing.T) {
	s := &scripted{}
	p := newPipeline(t, s)
	var seen []agenttrace.ExecutionContext
	for _, r := range Roles() {
		p.Agents[r] = AgentFunc(func(ctx context.Context, _ *Request) (*StageResult, error) {
			seen = append(seen, agenttrace.GetExecutionContext(ctx))
			return &StageResult{Content: r.Label()}, nil
		})
	}

	if _, err := p.Run(context.Background(), "tidal kites"); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if len(seen) != len(Roles()) {
		t.Fatalf("executions: got = %d, wanted = %d", len(seen), len(Roles()))
	}
	runID := seen[0].RunID
	if runID == "" {
		t.Fatal("RunID: got empty, wanted a run identifier")
	}
	for i, r := range Roles() {
		want := agenttrace.ExecutionContext{RunID: runID, Topic: "tidal kites", Role: string(r), Stage: i + 1}
		if diff := cmp.Diff(want, seen[i]); diff != "" {
			t.Errorf("stage %d context (-want +got):\n%s", i+1, diff)
		}
	}

	seen = nil
	if _, err := p.Run(context.Background(), "tidal kites"); err != nil {
		t.Fatalf("second Run() = %v", err)
	}
	if seen[0].RunID == runID {
		t.Errorf("RunID: got the same id %q for two runs", runID)
	}
}

type recordingBackend struct {
	pages  int
	spec   discussions.PageSpec
	blocks []discussions.Block
}

func (r *recordingBackend) CreatePage(_ context.Context, spec discussions.PageSpec) (discussions.Record, error) {
	r.pages++
	r.spec = spec
	return discussions.Record{ID: "rec", URL: "https://notion.so/rec", Topic: spec.Topic}, nil
}

func (r *recordingBackend) AppendBlocks(_ context.Context, _ string, blocks []discussions.Block) error {
	r.blocks = append(r.blocks, blocks...)
	return nil
}

func (r *recordingBackend) Query(context.Context, discussions.Query) ([]discussions.Record, error) {
	return nil, nil
}
