/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"chainguard.dev/thinktank/thinktank/discussions"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newSetupNotionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "setup-notion",
		Short: "Create the Notion database and save its credentials to the env file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSetupWizard(cmd)
		},
	}
}

func newSampleCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Store an example discussion in the Notion database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if err := a.requireNotion(out); err != nil {
				return err
			}
			fmt.Fprintln(out, "📊 Creating sample discussion...")
			o := a.service().Store(cmd.Context(), discussions.SampleDiscussion())
			if o.Failed() {
				return errors.New(o.Text)
			}
			fmt.Fprintln(out, okStyle.Render("✅ Sample discussion created: "+o.Text))
			return nil
		},
	}
}

func newSearchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search stored discussions by topic",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if err := a.requireNotion(out); err != nil {
				return err
			}
			o := a.service().Search(cmd.Context(), strings.Join(args, " "))
			if o.Failed() {
				return errors.New(o.Text)
			}
			fmt.Fprintln(out, o.Text)
			return nil
		},
	}
}

func newHistoryCommand(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the most recent stored discussions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if err := a.requireNotion(out); err != nil {
				return err
			}
			o := a.service().History(cmd.Context(), limit)
			if o.Failed() {
				return errors.New(o.Text)
			}
			fmt.Fprintln(out, o.Text)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", discussions.DefaultHistoryLimit, "Number of discussions to list")
	return cmd
}

// newForm builds a prompt form. Input that is not a terminal, such as a
// pipe, uses accessible mode.
func newForm(in io.Reader, out io.Writer, fields ...huh.Field) *huh.Form {
	form := huh.NewForm(huh.NewGroup(fields...)).WithInput(in).WithOutput(out)
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}
	return form
}

// runSetupWizard walks through token verification, database creation and
// saving the credentials.
func (a *app) runSetupWizard(cmd *cobra.Command) error {
	ctx := cmd.Context()
	in, out := cmd.InOrStdin(), cmd.OutOrStdout()

	fmt.Fprintln(out, titleStyle.Render("🚀 Think Tank Notion Integration Setup"))
	fmt.Fprintln(out, strings.Repeat("=", 50))

	if n := a.cfg.Notion; n.Configured() {
		fmt.Fprintln(out, okStyle.Render("✅ Notion integration already configured!"))
		fmt.Fprintf(out, "Token: %s...\n", n.Token[:min(10, len(n.Token))])
		fmt.Fprintf(out, "Database ID: %s\n", n.DatabaseID)
		return nil
	}

	fmt.Fprintln(out, "\n🔑 Step 1: Get your Notion Integration Token")
	fmt.Fprintln(out, "1. Go to https://www.notion.so/my-integrations")
	fmt.Fprintln(out, "2. Click 'New integration'")
	fmt.Fprintln(out, "3. Give it a name (e.g., 'Think Tank')")
	fmt.Fprintln(out, "4. Select the workspace where you want to create the database")
	fmt.Fprintln(out, "5. Copy the 'Internal Integration Token'")

	var token string
	if err := newForm(in, out, huh.NewInput().
		Title("Enter your Notion integration token").
		EchoMode(huh.EchoModePassword).
		Value(&token).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("token is required")
			}
			return nil
		}),
	).Run(); err != nil {
		return fmt.Errorf("reading token: %w", err)
	}
	token = strings.TrimSpace(token)

	setup := discussions.NewSetup(token)
	name, err := setup.VerifyToken(ctx)
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}
	fmt.Fprintln(out, okStyle.Render("✅ Token verified! Connected as: "+name))

	fmt.Fprintln(out, "\n🗄️ Step 2: Create Notion Database")
	fmt.Fprintln(out, "Share a page with your integration, then enter that page's ID.")
	var parent string
	if err := newForm(in, out, huh.NewInput().
		Title("Parent page ID").
		Value(&parent).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("a parent page ID is required")
			}
			return nil
		}),
	).Run(); err != nil {
		return fmt.Errorf("reading parent page: %w", err)
	}

	db, err := setup.CreateDatabase(ctx, parent)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, okStyle.Render("✅ Database created successfully!"))
	fmt.Fprintf(out, "Database ID: %s\nDatabase URL: %s\n", db.ID, db.URL)

	fmt.Fprintln(out, "\n💾 Step 3: Save Configuration")
	err = discussions.WriteEnv(a.envFile, token, db.ID, false)
	if errors.Is(err, discussions.ErrEnvExists) {
		fmt.Fprintln(out, warnStyle.Render("⚠️ Notion variables already exist in "+a.envFile))
		var overwrite bool
		if ferr := newForm(in, out, huh.NewConfirm().
			Title("Do you want to overwrite them?").
			Value(&overwrite),
		).Run(); ferr != nil {
			return fmt.Errorf("reading confirmation: %w", ferr)
		}
		if !overwrite {
			fmt.Fprintln(out, "Setup cancelled.")
			return nil
		}
		err = discussions.WriteEnv(a.envFile, token, db.ID, true)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(out, okStyle.Render("✅ Configuration saved to "+a.envFile))

	fmt.Fprintln(out, "\n🧪 Step 4: Testing Integration")
	o := discussions.NewService(discussions.Config{Token: token, DatabaseID: db.ID}).History(ctx, 1)
	if o.Failed() {
		return fmt.Errorf("integration test failed: %s", o.Text)
	}
	fmt.Fprintln(out, okStyle.Render("✅ Integration test successful!"))
	fmt.Fprintf(out, "Test result: %s\n", o.Text)

	fmt.Fprintln(out, titleStyle.Render("\n🎉 Notion integration setup complete!"))
	fmt.Fprintln(out, "Run thinktank --interactive and discussions will be stored in your Notion database.")
	return nil
}
