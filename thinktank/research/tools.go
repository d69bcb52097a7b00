/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package research

import (
	"context"
	"fmt"
	"strings"

	"chainguard.dev/thinktank/agents/toolcall"
	"github.com/chainguard-dev/clog"
)

// DefaultMaxResults is used when a caller passes a non-positive limit.
const DefaultMaxResults = 5

// comprehensiveMax is the per-source cap of Comprehensive.
const comprehensiveMax = 3

// Tools renders Searcher results for agents.
type Tools struct {
	Searcher Searcher
}

// New returns Tools over s.
func New(s Searcher) *Tools {
	return &Tools{Searcher: s}
}

// kind describes one flavor of research. prefix is prepended to the query
// sent to the engine; the rendered text always names the caller's query.
type kind struct {
	header  string
	empty   string
	action  string
	prefix  string
	news    bool
	showAge bool
}

var (
	webKind = kind{
		header: "Web search results",
		empty:  "No web search results found for '%s'",
		action: "Error searching web",
	}
	newsKind = kind{
		header:  "Recent news",
		empty:   "No recent news found for '%s'",
		action:  "Error searching news",
		news:    true,
		showAge: true,
	}
	marketKind = kind{
		header: "Market research",
		empty:  "No market research found for '%s'",
		action: "Error searching market research",
		prefix: "market trends business ",
	}
	technicalKind = kind{
		header: "Technical research",
		empty:  "No technical information found for '%s'",
		action: "Error searching technical information",
		prefix: "technical implementation ",
	}
)

// Web searches the general web for query.
func (t *Tools) Web(ctx context.Context, query string, limit int) toolcall.Outcome {
	return t.run(ctx, webKind, query, limit)
}

// News searches recent news for query. Entries carry their publication date.
func (t *Tools) News(ctx context.Context, query string, limit int) toolcall.Outcome {
	return t.run(ctx, newsKind, query, limit)
}

// Market searches for market trends and business coverage of query.
func (t *Tools) Market(ctx context.Context, query string, limit int) toolcall.Outcome {
	return t.run(ctx, marketKind, query, limit)
}

// Technical searches for implementation details of query.
func (t *Tools) Technical(ctx context.Context, query string, limit int) toolcall.Outcome {
	return t.run(ctx, technicalKind, query, limit)
}

// Comprehensive runs Web, News, Market and Technical in that order, three
// results each, and joins their text under fixed headings. Every heading is
// present whatever the sub-searches returned. The outcome is OK unless all
// four sub-searches failed in transport.
func (t *Tools) Comprehensive(ctx context.Context, query string) toolcall.Outcome {
	sections := []struct {
		heading string
		outcome toolcall.Outcome
	}{
		{"## General Web Information", t.Web(ctx, query, comprehensiveMax)},
		{"## Recent News and Developments", t.News(ctx, query, comprehensiveMax)},
		{"## Market and Business Insights", t.Market(ctx, query, comprehensiveMax)},
		{"## Technical Information", t.Technical(ctx, query, comprehensiveMax)},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Comprehensive Research Results for: %s\n", query)
	failed := 0
	var lastErr error
	for _, s := range sections {
		fmt.Fprintf(&b, "\n%s\n%s\n", s.heading, s.outcome.Text)
		if s.outcome.Kind == toolcall.KindTransportError {
			failed++
			lastErr = s.outcome.Err
		}
	}

	if failed == len(sections) {
		return toolcall.Outcome{Kind: toolcall.KindTransportError, Text: b.String(), Err: lastErr}
	}
	return toolcall.OK(b.String())
}

func (t *Tools) run(ctx context.Context, k kind, query string, limit int) toolcall.Outcome {
	if limit <= 0 {
		limit = DefaultMaxResults
	}

	search := t.Searcher.Text
	if k.news {
		search = t.Searcher.News
	}
	hits, err := search(ctx, k.prefix+query, limit)
	if err != nil {
		clog.FromContext(ctx).With("query", query).With("error", err).Warn(k.action)
		return toolcall.TransportError(k.action, err)
	}
	if len(hits) == 0 {
		return toolcall.NoResults(k.empty, query)
	}
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return toolcall.Outcome{
		Kind:  toolcall.KindOK,
		Text:  format(k, query, hits),
		Value: hits,
	}
}

func format(k kind, query string, hits []Hit) string {
	entries := make([]string, 0, len(hits))
	for i, h := range hits {
		var b strings.Builder
		fmt.Fprintf(&b, "%d. %s\n", i+1, or(h.Title, "No title"))
		if k.showAge {
			fmt.Fprintf(&b, "   Date: %s\n", or(h.Date, "No date"))
		}
		fmt.Fprintf(&b, "   %s\n", or(h.Snippet, "No description"))
		fmt.Fprintf(&b, "   Source: %s\n", or(h.URL, "No link"))
		entries = append(entries, b.String())
	}
	return fmt.Sprintf("%s for '%s':\n\n", k.header, query) + strings.Join(entries, "\n")
}

func or(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
