/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"
	"io"
	"log/slog"

	"chainguard.dev/thinktank/thinktank/discussions"
	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"
)

// defaultTopic is discussed when no topic is given.
const defaultTopic = "AI-powered education platforms"

type app struct {
	cfg *config

	topic       string
	interactive bool
	noNotion    bool
	setupNotion bool
	output      string
	html        bool
	model       string
	debug       bool
	envFile     string
}

func newRootCommand() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "thinktank",
		Short: "Run a collaborative AI think tank on a topic",
		Long: `thinktank runs six specialized agents in sequence over a topic: a visionary
thinker, a critical analyst, a practical implementer, a market expert, a
technical specialist and a synthesis coordinator. Each agent builds on the
work of the ones before it. The final report is written to a markdown file
and, when configured, stored in a Notion database.

Run without arguments to be prompted for a topic.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.setupNotion {
				return a.runSetupWizard(cmd)
			}
			if !runFlagsSet(cmd) {
				a.interactive = true
			}
			return a.runDiscussion(cmd)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&a.topic, "topic", "t", defaultTopic, "Topic for the think tank to discuss")
	flags.BoolVarP(&a.interactive, "interactive", "i", false, "Prompt for the topic")
	flags.BoolVar(&a.noNotion, "no-notion", false, "Disable Notion storage (the report is only saved locally)")
	flags.BoolVar(&a.setupNotion, "setup-notion", false, "Run the Notion setup wizard and exit")
	flags.StringVarP(&a.output, "output", "o", "", "Report path (default thinktank_report.md)")
	flags.BoolVar(&a.html, "html", false, "Also write the report as HTML next to the markdown file")
	flags.StringVar(&a.model, "model", "", "Model to use (overrides THINKTANK_MODEL)")

	pflags := cmd.PersistentFlags()
	pflags.BoolVar(&a.debug, "debug", false, "Enable debug logging")
	pflags.StringVar(&a.envFile, "env-file", ".env", "Dotenv file to load before reading the environment")

	cmd.AddCommand(
		newSetupNotionCommand(a),
		newSampleCommand(a),
		newSearchCommand(a),
		newHistoryCommand(a),
	)
	return cmd
}

// runFlags shape a discussion run. Giving none of them prompts for a topic;
// --debug and --env-file do not count.
var runFlags = []string{"topic", "interactive", "no-notion", "setup-notion", "output", "html", "model"}

func runFlagsSet(cmd *cobra.Command) bool {
	for _, name := range runFlags {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// setup loads configuration and installs the logger.
func (a *app) setup(cmd *cobra.Command) error {
	if err := loadDotEnv(a.envFile); err != nil {
		return err
	}
	cfg, err := loadConfig(cmd.Context(), envconfig.OsLookuper())
	if err != nil {
		return err
	}
	a.cfg = cfg
	if a.model == "" {
		a.model = cfg.Model
	}

	logger := clog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.level(a.debug)}))
	cmd.SetContext(clog.WithLogger(cmd.Context(), logger))
	return nil
}

func (a *app) service() *discussions.Service {
	return discussions.NewService(a.cfg.Notion)
}

// requireNotion fails when the Notion variables are unset.
func (a *app) requireNotion(w io.Writer) error {
	if a.cfg.Notion.Configured() {
		return nil
	}
	fmt.Fprintln(w, warnStyle.Render(a.cfg.Notion.Status()))
	fmt.Fprintln(w, hintStyle.Render("💡 Run thinktank setup-notion to configure Notion integration"))
	return fmt.Errorf("notion is not configured")
}
