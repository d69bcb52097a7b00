/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package discussions

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Config holds the Notion credentials.
type Config struct {
	Token      string `env:"NOTION_TOKEN"`
	DatabaseID string `env:"NOTION_DATABASE_ID"`
}

// LoadConfig reads Config from the environment.
func LoadConfig(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return cfg, fmt.Errorf("loading notion config: %w", err)
	}
	return cfg, nil
}

// Missing names the unset variables.
func (c Config) Missing() []string {
	var missing []string
	if c.Token == "" {
		missing = append(missing, "NOTION_TOKEN")
	}
	if c.DatabaseID == "" {
		missing = append(missing, "NOTION_DATABASE_ID")
	}
	return missing
}

// Configured reports whether both variables are set.
func (c Config) Configured() bool {
	return len(c.Missing()) == 0
}

// Status is the one-line configuration report shown by the CLI.
func (c Config) Status() string {
	if c.Configured() {
		return "✅ Notion integration configured"
	}
	return "⚠️ Missing Notion configuration: " + strings.Join(c.Missing(), ", ")
}
