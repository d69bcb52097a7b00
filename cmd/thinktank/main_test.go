/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"chainguard.dev/thinktank/thinktank/discussions"
	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootFlags(t *testing.T) {
	cmd := newRootCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-t", "solar stills", "--no-notion", "--html", "-o", "out.md", "--model", "gpt-4o"}))

	flags := cmd.Flags()
	topic, _ := flags.GetString("topic")
	noNotion, _ := flags.GetBool("no-notion")
	html, _ := flags.GetBool("html")
	output, _ := flags.GetString("output")
	model, _ := flags.GetString("model")

	assert.Equal(t, "solar stills", topic)
	assert.True(t, noNotion)
	assert.True(t, html)
	assert.Equal(t, "out.md", output)
	assert.Equal(t, "gpt-4o", model)
}

func TestRootDefaults(t *testing.T) {
	cmd := newRootCommand()
	require.NoError(t, cmd.ParseFlags(nil))

	topic, _ := cmd.Flags().GetString("topic")
	assert.Equal(t, "AI-powered education platforms", topic)
	assert.False(t, runFlagsSet(cmd), "no flags set means interactive mode")

	for _, name := range []string{"setup-notion", "sample", "search", "history"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
	history, _, _ := cmd.Find([]string{"history"})
	limit, _ := history.Flags().GetInt("limit")
	assert.Equal(t, discussions.DefaultHistoryLimit, limit)
}

func TestRunFlagsSet(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{name: "none", args: nil, want: false},
		{name: "debug only", args: []string{"--debug"}, want: false},
		{name: "env file only", args: []string{"--env-file", "other.env", "--debug"}, want: false},
		{name: "topic", args: []string{"-t", "vertical farms"}, want: true},
		{name: "no notion with debug", args: []string{"--no-notion", "--debug"}, want: true},
		{name: "explicit interactive", args: []string{"-i"}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCommand()
			require.NoError(t, cmd.ParseFlags(tt.args))
			assert.Equal(t, tt.want, runFlagsSet(cmd))
		})
	}
}

func TestRootRejectsArgs(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env"), "stray"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}

func TestLoadConfig(t *testing.T) {
	ctx := context.Background()

	cfg, err := loadConfig(ctx, envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)
	assert.Equal(t, "claude-sonnet-4-5", cfg.Model)
	assert.Zero(t, cfg.MetricsPort)
	assert.False(t, cfg.Notion.Configured())

	cfg, err = loadConfig(ctx, envconfig.MapLookuper(map[string]string{
		"THINKTANK_MODEL":    "gemini-2.5-flash",
		"GOOGLE_API_KEY":     "g-key",
		"NOTION_TOKEN":       "secret",
		"NOTION_DATABASE_ID": "db",
		"METRICS_PORT":       "2112",
	}))
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.Equal(t, "g-key", cfg.credentials().GeminiAPIKey)
	assert.True(t, cfg.Notion.Configured())
	assert.Equal(t, 2112, cfg.MetricsPort)

	_, err = loadConfig(ctx, envconfig.MapLookuper(map[string]string{"METRICS_PORT": "many"}))
	assert.Error(t, err)
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		level string
		debug bool
		want  slog.Level
	}{
		{level: "info", want: slog.LevelInfo},
		{level: "warn", want: slog.LevelWarn},
		{level: "nonsense", want: slog.LevelInfo},
		{level: "error", debug: true, want: slog.LevelDebug},
	}
	for _, tt := range tests {
		c := &config{LogLevel: tt.level}
		assert.Equal(t, tt.want, c.level(tt.debug), "level(%q, %v)", tt.level, tt.debug)
	}
}

func TestPromptTopic(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "typed", input: "solar-powered water purifiers\n", want: "solar-powered water purifiers"},
		{name: "blank", input: "\n", want: defaultTopic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := promptTopic(strings.NewReader(tt.input), &out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrintWelcome(t *testing.T) {
	var out bytes.Buffer
	printWelcome(&out, discussions.Config{Token: "t"}, false)
	got := out.String()
	assert.Contains(t, got, "Synthesis Coordinator - Integrates all perspectives")
	assert.Contains(t, got, "Missing Notion configuration: NOTION_DATABASE_ID")
	assert.Contains(t, got, "--setup-notion")
}

func TestSearchRequiresNotion(t *testing.T) {
	t.Setenv("NOTION_TOKEN", "")
	t.Setenv("NOTION_DATABASE_ID", "")

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env"), "search", "solar"})
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, out.String(), "Missing Notion configuration")
}
