/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"chainguard.dev/thinktank/agents/metaagent"
	"chainguard.dev/thinktank/thinktank/discussions"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type config struct {
	Model       string `env:"THINKTANK_MODEL,default=claude-sonnet-4-5"`
	MetricsPort int    `env:"METRICS_PORT,default=0"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`

	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	GeminiAPIKey    string `env:"GEMINI_API_KEY"`
	GoogleAPIKey    string `env:"GOOGLE_API_KEY"`
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`

	Notion discussions.Config
}

// loadDotEnv sets variables from path that are not already set. A missing
// file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func loadConfig(ctx context.Context, l envconfig.Lookuper) (*config, error) {
	var cfg config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("processing config: %w", err)
	}
	return &cfg, nil
}

func (c *config) credentials() metaagent.Credentials {
	gemini := c.GeminiAPIKey
	if gemini == "" {
		gemini = c.GoogleAPIKey
	}
	return metaagent.Credentials{
		AnthropicAPIKey: c.AnthropicAPIKey,
		GeminiAPIKey:    gemini,
		OpenAIAPIKey:    c.OpenAIAPIKey,
	}
}

func (c *config) level(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return l
}
