/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package discussions

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/jomei/notionapi"
)

// DatabaseTitle is the title given to databases created by Setup.
const DatabaseTitle = "Think Tank Discussions"

// Schema returns the recommended property configuration for the
// discussions database.
func Schema() notionapi.PropertyConfigs {
	options := func(pairs ...string) []notionapi.Option {
		out := make([]notionapi.Option, 0, len(pairs)/2)
		for i := 0; i+1 < len(pairs); i += 2 {
			out = append(out, notionapi.Option{Name: pairs[i], Color: notionapi.Color(pairs[i+1])})
		}
		return out
	}
	return notionapi.PropertyConfigs{
		PropTopic: &notionapi.TitlePropertyConfig{Type: notionapi.PropertyConfigTypeTitle},
		PropDate:  &notionapi.DatePropertyConfig{Type: notionapi.PropertyConfigTypeDate},
		PropStatus: &notionapi.SelectPropertyConfig{
			Type: notionapi.PropertyConfigTypeSelect,
			Select: notionapi.Select{Options: options(
				"In Progress", "yellow",
				StatusCompleted, "green",
				"Archived", "gray",
			)},
		},
		PropType: &notionapi.SelectPropertyConfig{
			Type: notionapi.PropertyConfigTypeSelect,
			Select: notionapi.Select{Options: options(
				TypeDiscussion, "blue",
				"Research", "purple",
				"Analysis", "orange",
			)},
		},
		PropAgents: &notionapi.MultiSelectPropertyConfig{
			Type: notionapi.PropertyConfigTypeMultiSelect,
			MultiSelect: notionapi.Select{Options: options(
				"Visionary Thinker", "blue",
				"Critical Analyst", "red",
				"Practical Implementer", "green",
				"Market Expert", "yellow",
				"Technical Specialist", "purple",
				"Synthesis Coordinator", "orange",
			)},
		},
		PropKeyInsights: &notionapi.RichTextPropertyConfig{Type: notionapi.PropertyConfigTypeRichText},
	}
}

// Setup performs the one time integration steps.
type Setup struct {
	client *notionapi.Client
}

// NewSetup returns a Setup authenticated with token.
func NewSetup(token string, opts ...NotionOption) *Setup {
	return &Setup{client: newClient(token, opts)}
}

// VerifyToken checks the token and returns the integration's name.
func (s *Setup) VerifyToken(ctx context.Context) (string, error) {
	u, err := s.client.User.Me(ctx)
	if err != nil {
		return "", fmt.Errorf("verifying token: %w", err)
	}
	if u.Name == "" {
		return "Unknown", nil
	}
	return u.Name, nil
}

// Database identifies a created database.
type Database struct {
	ID  string
	URL string
}

// CreateDatabase creates the discussions database under parentPageID.
// Internal integrations cannot create databases at the workspace root, so a
// parent page is required.
func (s *Setup) CreateDatabase(ctx context.Context, parentPageID string) (Database, error) {
	parentPageID = strings.TrimSpace(parentPageID)
	if parentPageID == "" {
		return Database{}, errors.New("a parent page ID is required")
	}
	db, err := s.client.Database.Create(ctx, &notionapi.DatabaseCreateRequest{
		Parent: notionapi.Parent{
			Type:   notionapi.ParentTypePageID,
			PageID: notionapi.PageID(parentPageID),
		},
		Title:      richText(DatabaseTitle),
		Properties: Schema(),
	})
	if err != nil {
		return Database{}, fmt.Errorf("creating database: %w", err)
	}
	id := db.ID.String()
	url := db.URL
	if url == "" {
		url = "https://notion.so/" + strings.ReplaceAll(id, "-", "")
	}
	return Database{ID: id, URL: url}, nil
}

// ErrEnvExists is returned by WriteEnv when the file already holds Notion
// settings and overwrite is false.
var ErrEnvExists = errors.New("notion variables already exist in env file")

// WriteEnv records the Notion settings in the dotenv file at path, creating
// it when absent. Other keys in an existing file are kept.
func WriteEnv(path, token, databaseID string, overwrite bool) error {
	env := map[string]string{}
	if _, err := os.Stat(path); err == nil {
		existing, err := godotenv.Read(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if _, ok := existing["NOTION_TOKEN"]; ok && !overwrite {
			return ErrEnvExists
		}
		env = existing
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	env["NOTION_TOKEN"] = token
	env["NOTION_DATABASE_ID"] = databaseID
	if err := godotenv.Write(env, path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
