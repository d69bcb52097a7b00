/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"chainguard.dev/thinktank/thinktank/crew"
	"chainguard.dev/thinktank/thinktank/discussions"
	"chainguard.dev/thinktank/thinktank/research"
	"chainguard.dev/thinktank/thinktank/transcript"
	"github.com/chainguard-dev/clog"
	"github.com/charmbracelet/huh"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

// promptTopic asks for a topic. Blank input falls back to defaultTopic.
func promptTopic(in io.Reader, out io.Writer) (string, error) {
	var topic string
	form := newForm(in, out, huh.NewInput().
		Title("💡 What topic or idea would you like the think tank to explore?").
		Placeholder(defaultTopic).
		Value(&topic))
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("reading topic: %w", err)
	}

	if topic = strings.TrimSpace(topic); topic == "" {
		fmt.Fprintf(out, "Using default topic: %s\n", defaultTopic)
		return defaultTopic, nil
	}
	return topic, nil
}

func printWelcome(w io.Writer, notion discussions.Config, noNotion bool) {
	fmt.Fprintln(w, titleStyle.Render("\n🤖 Welcome to the Think Tank!"))
	fmt.Fprintln(w, "This is a collaborative AI think tank where 6 specialized agents will discuss your idea.")
	fmt.Fprintln(w, "\nThe agents include:")
	for _, line := range []string{
		"Visionary Thinker - Generates bold, innovative ideas",
		"Critical Analyst - Identifies risks and challenges",
		"Practical Implementer - Creates actionable plans",
		"Market Expert - Analyzes business viability",
		"Technical Specialist - Evaluates technical feasibility",
		"Synthesis Coordinator - Integrates all perspectives",
	} {
		fmt.Fprintln(w, "• "+line)
	}

	fmt.Fprintln(w)
	if notion.Configured() {
		fmt.Fprintln(w, okStyle.Render(notion.Status()))
		return
	}
	fmt.Fprintln(w, warnStyle.Render(notion.Status()))
	if !noNotion {
		fmt.Fprintln(w, hintStyle.Render("💡 Run with --setup-notion to configure Notion integration"))
		fmt.Fprintln(w, hintStyle.Render("💡 Or use --no-notion to run without Notion storage"))
	}
}

func serveMetrics(ctx context.Context, port int) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			clog.FromContext(ctx).With("error", err).Warn("Metrics server stopped")
		}
	}()
}

func (a *app) runDiscussion(cmd *cobra.Command) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	notion := a.cfg.Notion
	useNotion := notion.Configured() && !a.noNotion

	topic := a.topic
	if a.interactive {
		printWelcome(out, notion, a.noNotion)
		t, err := promptTopic(cmd.InOrStdin(), out)
		if err != nil {
			return err
		}
		topic = t
	}

	if a.cfg.MetricsPort > 0 {
		serveMetrics(ctx, a.cfg.MetricsPort)
	}

	svc := discussions.NewService(discussions.Config{})
	if useNotion {
		svc = a.service()
	}
	session := discussions.NewSession(svc)

	crewCfg, err := crew.LoadConfig()
	if err != nil {
		return err
	}
	agents, err := crew.NewAgents(ctx, crewCfg, crew.AgentOptions{
		Model:       a.model,
		Credentials: a.cfg.credentials(),
		Research:    research.New(research.NewDuckDuckGo()),
		Session:     session,
	})
	if err != nil {
		return err
	}

	logger := transcript.New()
	p := &crew.Pipeline{
		Stages:     crewCfg.Stages(),
		Agents:     agents,
		Middleware: []crew.Middleware{crew.Logging(), crew.Transcript(logger)},
		ReportPath: a.output,
	}

	fmt.Fprintln(out, titleStyle.Render("\n🚀 Starting think tank discussion on: "+topic))
	fmt.Fprintln(out, "The agents will now engage in a collaborative discussion...")
	result, err := p.Run(ctx, topic)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, okStyle.Render("\n✅ Think tank discussion completed!"))
	fmt.Fprintf(out, "📄 Full report saved as: %s\n\n", result.ReportPath)
	if err := crew.Summary(out, result); err != nil {
		return err
	}

	if a.html {
		path := strings.TrimSuffix(result.ReportPath, filepath.Ext(result.ReportPath)) + ".html"
		page, err := crew.RenderHTML("Think Tank Discussion: "+topic, result.Report)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, page, 0o644); err != nil {
			return fmt.Errorf("writing HTML report: %w", err)
		}
		fmt.Fprintf(out, "🌐 HTML report saved as: %s\n", path)
	}

	if !useNotion {
		fmt.Fprintln(out, "💾 Discussion saved locally only")
		if !a.noNotion {
			fmt.Fprintln(out, hintStyle.Render("💡 Run --setup-notion to enable Notion storage"))
		}
		return nil
	}

	o := session.Store(ctx, result.Discussion(logger.Transcript()))
	if o.Failed() {
		// Storage failures are reported, not fatal.
		fmt.Fprintln(out, warnStyle.Render("⚠️ "+o.Text))
		return nil
	}
	fmt.Fprintln(out, "📊 "+o.Text)
	fmt.Fprintln(out, hintStyle.Render("💡 Agents can now reference previous discussions in future sessions"))
	return nil
}
