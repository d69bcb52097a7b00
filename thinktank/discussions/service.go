/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package discussions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"chainguard.dev/thinktank/agents/toolcall"
	"github.com/chainguard-dev/clog"
)

const (
	// StatusCompleted is the Status of every stored discussion.
	StatusCompleted = "Completed"
	// TypeDiscussion is the Type of every stored discussion.
	TypeDiscussion = "Think Tank Discussion"
	// DefaultHistoryLimit is used when History gets a non-positive limit.
	DefaultHistoryLimit = 5
	// MaxTextLength is Notion's limit for one rich text value.
	MaxTextLength = 2000
)

// Service stores and looks up discussions.
type Service struct {
	backend Backend
	missing []string
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService returns a Service writing to the Notion database in cfg. When
// cfg is incomplete the Service has no backend.
func NewService(cfg Config, opts ...Option) *Service {
	var b Backend
	if cfg.Configured() {
		b = NewNotion(cfg.Token, cfg.DatabaseID)
	}
	s := &Service{backend: b, missing: cfg.Missing(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewServiceWithBackend returns a Service over b.
func NewServiceWithBackend(b Backend, opts ...Option) *Service {
	s := &Service{backend: b, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Available reports whether the Service has a backend.
func (s *Service) Available() bool {
	return s.backend != nil
}

func (s *Service) unavailable() toolcall.Outcome {
	missing := s.missing
	if len(missing) == 0 {
		missing = []string{"NOTION_TOKEN", "NOTION_DATABASE_ID"}
	}
	return toolcall.MissingCredentials(fmt.Sprintf("Notion is not configured (missing %s)", strings.Join(missing, ", ")))
}

const storeAction = "Error storing in Notion"

// Store creates one page for d. On success the Outcome's Value is the
// Record. When the page is created but its content is not fully appended,
// the Value is a Partial that Resume can finish.
func (s *Service) Store(ctx context.Context, d Discussion) toolcall.Outcome {
	if !s.Available() {
		return s.unavailable()
	}
	now := s.now()

	var agents []string
	for _, o := range d.Outputs {
		if o.Content != "" {
			agents = append(agents, o.Label)
		}
	}

	rec, err := s.backend.CreatePage(ctx, PageSpec{
		Topic:  d.Topic,
		Date:   now,
		Status: StatusCompleted,
		Type:   TypeDiscussion,
		Agents: agents,
	})
	if err != nil {
		return toolcall.TransportError(storeAction, err)
	}
	return s.fill(ctx, Partial{Record: rec, Date: now}, d)
}

// Partial is the Value of a failed Store whose page exists but whose content
// was only partly appended.
type Partial struct {
	Record Record
	Date   time.Time
	// Appended counts the content groups already on the page.
	Appended int
}

// Resume appends the content of d that p is missing, without creating
// another page.
func (s *Service) Resume(ctx context.Context, p Partial, d Discussion) toolcall.Outcome {
	if !s.Available() {
		return s.unavailable()
	}
	return s.fill(ctx, p, d)
}

func (s *Service) fill(ctx context.Context, p Partial, d Discussion) toolcall.Outcome {
	log := clog.FromContext(ctx).With("page", p.Record.ID)
	groups := layout(d, p.Date)
	for p.Appended < len(groups) {
		if err := s.backend.AppendBlocks(ctx, p.Record.ID, groups[p.Appended]); err != nil {
			log.With("error", err, "appended", p.Appended).Warn("Page created but content append failed")
			o := toolcall.TransportError(storeAction, err)
			o.Value = p
			return o
		}
		p.Appended++
	}

	log.Info("Stored think tank discussion")
	return toolcall.Outcome{
		Kind:  toolcall.KindOK,
		Text:  "Think tank discussion stored in Notion! View at: " + p.Record.URL,
		Value: p.Record,
	}
}

// layout returns the page content as the groups appended in order: the
// report section, the transcript section when present, then one section per
// role with output.
func layout(d Discussion, now time.Time) [][]Block {
	report := []Block{
		{Kind: Heading1, Text: "Think Tank Discussion: " + d.Topic},
		{Kind: Paragraph, Text: "Discussion completed on " + now.Format("January 02, 2006 at 03:04 PM")},
		{Kind: Divider},
		{Kind: Heading2, Text: "Final Synthesis Report"},
	}
	groups := [][]Block{append(report, paragraphs(d.Report)...)}

	if d.Transcript != "" {
		groups = append(groups, append([]Block{{Kind: Heading2, Text: "Full Conversation Transcript"}}, paragraphs(d.Transcript)...))
	}

	for _, o := range d.Outputs {
		if o.Content == "" {
			continue
		}
		groups = append(groups, append([]Block{{Kind: Heading3, Text: o.Label + " Perspective"}}, paragraphs(o.Content)...))
	}
	return groups
}

// paragraphs splits text into paragraph blocks of at most MaxTextLength runes.
func paragraphs(text string) []Block {
	chunks := Chunk(text, MaxTextLength)
	out := make([]Block, 0, len(chunks))
	for _, c := range chunks {
		out = append(out, Block{Kind: Paragraph, Text: c})
	}
	return out
}

// Chunk splits s into consecutive pieces of at most n runes. An empty s is
// one empty piece.
func Chunk(s string, n int) []string {
	runes := []rune(s)
	if len(runes) <= n {
		return []string{s}
	}
	out := make([]string, 0, len(runes)/n+1)
	for len(runes) > n {
		out = append(out, string(runes[:n]))
		runes = runes[n:]
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}

// Search lists discussions whose topic contains query, in the order the
// database returns them.
func (s *Service) Search(ctx context.Context, query string) toolcall.Outcome {
	if !s.Available() {
		return s.unavailable()
	}
	recs, err := s.backend.Query(ctx, Query{TopicContains: query})
	if err != nil {
		return toolcall.TransportError("Error searching Notion", err)
	}
	if len(recs) == 0 {
		return toolcall.NoResults("No previous discussions found for '%s'", query)
	}

	lines := make([]string, 0, len(recs))
	for _, r := range recs {
		lines = append(lines, fmt.Sprintf("• %s (Date: %s) - %s", r.Topic, r.Date, r.URL))
	}
	return toolcall.Outcome{
		Kind:  toolcall.KindOK,
		Text:  fmt.Sprintf("Found %d previous discussions:\n", len(recs)) + strings.Join(lines, "\n"),
		Value: recs,
	}
}

// History lists the limit most recent discussions, newest first.
func (s *Service) History(ctx context.Context, limit int) toolcall.Outcome {
	if !s.Available() {
		return s.unavailable()
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	recs, err := s.backend.Query(ctx, Query{NewestFirst: true, Limit: limit})
	if err != nil {
		return toolcall.TransportError("Error retrieving history", err)
	}
	if len(recs) == 0 {
		return toolcall.NoResults("No previous discussions found.")
	}

	lines := make([]string, 0, len(recs))
	for _, r := range recs {
		lines = append(lines, fmt.Sprintf("• %s (%s) - %s", r.Topic, r.Status, r.Date))
	}
	return toolcall.Outcome{
		Kind:  toolcall.KindOK,
		Text:  fmt.Sprintf("Recent %d discussions:\n", len(recs)) + strings.Join(lines, "\n"),
		Value: recs,
	}
}
